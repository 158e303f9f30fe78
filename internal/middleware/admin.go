package middleware

import (
	"github.com/gin-gonic/gin"

	"Neighbor_Share/internal/pkg"
)

// AdminMiddleware 管理员为配置白名单，不落库
func AdminMiddleware(adminIDs []uint64) gin.HandlerFunc {
	allow := make(map[uint64]struct{}, len(adminIDs))
	for _, id := range adminIDs {
		allow[id] = struct{}{}
	}
	return func(c *gin.Context) {
		if _, ok := allow[UserID(c)]; !ok {
			pkg.Fail(c, pkg.NewForbidden(pkg.CodeForbiddenAdminOnly, "admin only"))
			return
		}
		c.Next()
	}
}
