package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"Neighbor_Share/internal/middleware"
	"Neighbor_Share/internal/pkg"
	"Neighbor_Share/internal/service"
)

type PostHandler struct {
	svc *service.PostService
}

func NewPostHandler(svc *service.PostService) *PostHandler {
	return &PostHandler{svc: svc}
}

type PostCreateReq struct {
	Title        string   `json:"title" binding:"required,max=200"`
	Description  string   `json:"description"`
	Image        string   `json:"image"`
	CommunityIDs []uint64 `json:"community_ids" binding:"required,min=1"`
	RequestID    *uint64  `json:"request_id"`
}

func (h *PostHandler) Create(c *gin.Context) {
	var req PostCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pkg.Fail(c, err)
		return
	}

	post, err := h.svc.Create(middleware.UserID(c), service.CreatePostInput{
		Title:        req.Title,
		Description:  req.Description,
		Image:        req.Image,
		CommunityIDs: req.CommunityIDs,
		RequestID:    req.RequestID,
	})
	if err != nil {
		pkg.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": post.ID, "title": post.Title})
}

func (h *PostHandler) ListByCommunity(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))

	list, err := h.svc.ListByCommunity(middleware.CommunityID(c), page, size)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

// Delete 所有权已由 PostOwnerMiddleware 校验
func (h *PostHandler) Delete(c *gin.Context) {
	post := middleware.ContextPost(c)

	if err := h.svc.Delete(post.ID); err != nil {
		pkg.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}
