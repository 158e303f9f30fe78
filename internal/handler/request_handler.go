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

type RequestHandler struct {
	svc *service.RequestService
}

func NewRequestHandler(svc *service.RequestService) *RequestHandler {
	return &RequestHandler{svc: svc}
}

type RequestCreateReq struct {
	Title       string     `json:"title" binding:"required,max=200"`
	Description string     `json:"description"`
	Image       string     `json:"image"`
	CommunityID uint64     `json:"community_id" binding:"required"`
	TimeFrame   string     `json:"time_frame" binding:"required"`
	DateNeed    *time.Time `json:"date_need"`
	DateReturn  *time.Time `json:"date_return"`
}

func (h *RequestHandler) Create(c *gin.Context) {
	var req RequestCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pkg.Fail(c, err)
		return
	}

	request, err := h.svc.Create(middleware.UserID(c), service.CreateRequestInput{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		CommunityID: req.CommunityID,
		TimeFrame:   req.TimeFrame,
		DateNeed:    req.DateNeed,
		DateReturn:  req.DateReturn,
	})
	if err != nil {
		pkg.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": request.ID, "title": request.Title})
}

func (h *RequestHandler) ListByCommunity(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))

	list, err := h.svc.ListByCommunity(middleware.CommunityID(c), page, size)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}
