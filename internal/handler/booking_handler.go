package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"Neighbor_Share/internal/middleware"
	"Neighbor_Share/internal/pkg"
	"Neighbor_Share/internal/service"
)

type BookingHandler struct {
	svc *service.BookingService
}

func NewBookingHandler(svc *service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

type BookingCreateReq struct {
	PostID      uint64     `json:"post_id" binding:"required"`
	CommunityID uint64     `json:"community_id" binding:"required"`
	TimeFrame   string     `json:"time_frame" binding:"required"`
	DateNeed    *time.Time `json:"date_need"`
	DateReturn  *time.Time `json:"date_return"`
}

type BookingUpdateReq struct {
	Status string `json:"status" binding:"required"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	var req BookingCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pkg.Fail(c, err)
		return
	}

	booking, err := h.svc.Create(c.Request.Context(), middleware.UserID(c), service.CreateBookingInput{
		PostID:      req.PostID,
		CommunityID: req.CommunityID,
		TimeFrame:   req.TimeFrame,
		DateNeed:    req.DateNeed,
		DateReturn:  req.DateReturn,
	})
	if err != nil {
		pkg.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":         booking.ID,
		"post_id":    booking.PostID,
		"status":     booking.Status,
		"time_frame": booking.TimeFrame,
	})
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || bookingID == 0 {
		pkg.Fail(c, pkg.NewValidation("invalid booking id"))
		return
	}

	var req BookingUpdateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pkg.Fail(c, err)
		return
	}

	booking, err := h.svc.UpdateStatus(c.Request.Context(), middleware.UserID(c), bookingID, req.Status)
	if err != nil {
		pkg.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": booking.ID, "status": booking.Status})
}
