package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"Neighbor_Share/internal/pkg"
)

const (
	ContextUserIDKey  = "user_id"
	ContextEmailKey   = "email"
	ContextIsAdminKey = "is_admin"

	AccessCookieName  = "access_token"
	RefreshCookieName = "refresh_token"
)

// AuthMiddleware 无状态鉴权：cookie 优先，Bearer 头兜底。
// 过期只靠 exp，没有服务端吊销表。
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := extractToken(c)
		if tokenStr == "" {
			pkg.Fail(c, pkg.NewUnauthorized(pkg.CodeTokenMissing, "missing access token"))
			return
		}

		claims, err := pkg.ParseAccess(tokenStr)
		if err != nil {
			if errors.Is(err, pkg.ErrTokenExpired) {
				pkg.Fail(c, pkg.NewUnauthorized(pkg.CodeTokenExpired, "access token expired"))
				return
			}
			pkg.Fail(c, pkg.NewUnauthorized(pkg.CodeTokenInvalid, "invalid access token"))
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextEmailKey, claims.Email)
		c.Set(ContextIsAdminKey, claims.IsAdmin)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	if cookie, err := c.Cookie(AccessCookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

func UserID(c *gin.Context) uint64 {
	v, _ := c.Get(ContextUserIDKey)
	id, _ := v.(uint64)
	return id
}
