package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"Neighbor_Share/internal/middleware"
	"Neighbor_Share/internal/pkg"
	"Neighbor_Share/internal/service"
)

type NotificationHandler struct {
	svc *service.NotificationService
}

func NewNotificationHandler(svc *service.NotificationService) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

type ChatStartReq struct {
	RecipientID uint64 `json:"recipient_id" binding:"required"`
	CommunityID uint64 `json:"community_id" binding:"required"`
}

// List 按社区列出本人的通知，读取顺带清未读计数
func (h *NotificationHandler) List(c *gin.Context) {
	result, err := h.svc.List(c.Request.Context(), middleware.UserID(c), middleware.CommunityID(c))
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *NotificationHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		pkg.Fail(c, pkg.NewValidation("invalid notification id"))
		return
	}

	n, err := h.svc.Get(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}

// Unread 全部社区的未读角标，查看列表才清零
func (h *NotificationHandler) Unread(c *gin.Context) {
	counts, err := h.svc.UnreadSummary(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": counts})
}

// StartChat 幂等：同一对用户在同一社区的第二次调用返回同一条通知
func (h *NotificationHandler) StartChat(c *gin.Context) {
	var req ChatStartReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pkg.Fail(c, err)
		return
	}

	n, err := h.svc.StartChat(c.Request.Context(), middleware.UserID(c), req.RecipientID, req.CommunityID)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, n)
}
