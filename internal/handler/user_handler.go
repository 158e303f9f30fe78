package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Neighbor_Share/internal/middleware"
	"Neighbor_Share/internal/pkg"
	"Neighbor_Share/internal/service"
)

type UserHandler struct {
	svc          *service.UserService
	cookieDomain string
}

func NewUserHandler(svc *service.UserService, cookieDomain string) *UserHandler {
	return &UserHandler{svc: svc, cookieDomain: cookieDomain}
}

type RegisterReq struct {
	Username string `json:"username" binding:"required,min=3,max=32"`
	Password string `json:"password" binding:"required,min=8"`
	Email    string `json:"email" binding:"required,email"`
}

type LoginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ResetCodeReq struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetReq struct {
	Code        string `json:"code" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// cookie 层给一年 Max-Age，真正的有效期由 token 内的 exp 决定
const cookieMaxAge = 365 * 24 * 3600

func (h *UserHandler) setAuthCookies(c *gin.Context, pair *pkg.Pair) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.AccessCookieName, pair.AccessToken, cookieMaxAge, "/", h.cookieDomain, true, true)
	c.SetCookie(middleware.RefreshCookieName, pair.RefreshToken, cookieMaxAge, "/", h.cookieDomain, true, true)
}

func (h *UserHandler) clearAuthCookies(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.AccessCookieName, "", -1, "/", h.cookieDomain, true, true)
	c.SetCookie(middleware.RefreshCookieName, "", -1, "/", h.cookieDomain, true, true)
}

func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pkg.Fail(c, err)
		return
	}

	user, err := h.svc.Register(req.Username, req.Password, req.Email)
	if err != nil {
		pkg.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": user.ID, "username": user.Username, "email": user.Email})
}

func (h *UserHandler) Login(c *gin.Context) {
	var req LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pkg.Fail(c, err)
		return
	}

	pair, user, err := h.svc.Login(req.Username, req.Password)
	if err != nil {
		pkg.Fail(c, err)
		return
	}

	h.setAuthCookies(c, pair)
	c.JSON(http.StatusOK, gin.H{"id": user.ID, "username": user.Username, "email": user.Email})
}

func (h *UserHandler) Logout(c *gin.Context) {
	h.clearAuthCookies(c)
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// TokenRefresh 凭 refresh cookie 重发两枚 cookie
func (h *UserHandler) TokenRefresh(c *gin.Context) {
	refreshToken, err := c.Cookie(middleware.RefreshCookieName)
	if err != nil || refreshToken == "" {
		pkg.Fail(c, pkg.NewUnauthorized(pkg.CodeRefreshMissing, "missing refresh token"))
		return
	}

	pair, err := h.svc.Refresh(refreshToken)
	if err != nil {
		pkg.Fail(c, err)
		return
	}

	h.setAuthCookies(c, pair)
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Session 当前登录身份
func (h *UserHandler) Session(c *gin.Context) {
	user, err := h.svc.FindByID(middleware.UserID(c))
	if err != nil {
		pkg.Fail(c, err)
		return
	}

	isAdmin, _ := c.Get(middleware.ContextIsAdminKey)
	c.JSON(http.StatusOK, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
		"is_admin": isAdmin,
	})
}

func (h *UserHandler) SendResetCode(c *gin.Context) {
	var req ResetCodeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pkg.Fail(c, err)
		return
	}

	if err := h.svc.SendResetCode(c.Request.Context(), req.Email); err != nil {
		pkg.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req ResetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pkg.Fail(c, err)
		return
	}

	if err := h.svc.ResetPassword(c.Request.Context(), req.Code, req.NewPassword); err != nil {
		pkg.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "reset password successfully"})
}

func (h *UserHandler) Unsubscribe(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		pkg.Fail(c, pkg.NewValidation("token required"))
		return
	}

	if err := h.svc.Unsubscribe(token); err != nil {
		pkg.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "unsubscribed"})
}
