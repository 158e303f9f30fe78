package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"Neighbor_Share/internal/middleware"
	"Neighbor_Share/internal/pkg"
	"Neighbor_Share/internal/service"
)

type MessageHandler struct {
	svc *service.MessageService
}

func NewMessageHandler(svc *service.MessageService) *MessageHandler {
	return &MessageHandler{svc: svc}
}

type MessageCreateReq struct {
	NotificationID uint64 `json:"notification_id" binding:"required"`
	Content        string `json:"content" binding:"required"`
}

func (h *MessageHandler) Create(c *gin.Context) {
	var req MessageCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pkg.Fail(c, err)
		return
	}

	msg, err := h.svc.Send(c.Request.Context(), middleware.UserID(c), req.NotificationID, req.Content)
	if err != nil {
		pkg.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, msg)
}

func (h *MessageHandler) ListByNotification(c *gin.Context) {
	notificationID, err := strconv.ParseUint(c.Param("notification_id"), 10, 64)
	if err != nil || notificationID == 0 {
		pkg.Fail(c, pkg.NewValidation("invalid notification id"))
		return
	}

	list, err := h.svc.List(c.Request.Context(), middleware.UserID(c), notificationID)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}
