package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"Neighbor_Share/internal/middleware"
	"Neighbor_Share/internal/pkg"
	"Neighbor_Share/internal/service"
)

type CommunityHandler struct {
	svc *service.CommunityService
}

func NewCommunityHandler(svc *service.CommunityService) *CommunityHandler {
	return &CommunityHandler{svc: svc}
}

type CommunityCreateReq struct {
	Code        string `json:"code" binding:"required,min=3,max=32"`
	Name        string `json:"name" binding:"required,max=64"`
	Description string `json:"description"`
}

type CommunityJoinReq struct {
	Code string `json:"code" binding:"required"`
}

func (h *CommunityHandler) Create(c *gin.Context) {
	var req CommunityCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pkg.Fail(c, err)
		return
	}

	community, err := h.svc.Create(middleware.UserID(c), req.Code, req.Name, req.Description)
	if err != nil {
		pkg.Fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":          community.ID,
		"code":        community.Code,
		"name":        community.Name,
		"description": community.Description,
	})
}

func (h *CommunityHandler) Join(c *gin.Context) {
	var req CommunityJoinReq
	if err := c.ShouldBindJSON(&req); err != nil {
		pkg.Fail(c, err)
		return
	}

	community, err := h.svc.Join(middleware.UserID(c), req.Code)
	if err != nil {
		pkg.Fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": community.ID, "name": community.Name})
}

func (h *CommunityHandler) Leave(c *gin.Context) {
	communityID, _ := strconv.ParseUint(c.Param("community_id"), 10, 64)

	if err := h.svc.Leave(middleware.UserID(c), communityID); err != nil {
		pkg.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *CommunityHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))

	list, err := h.svc.List(page, size)
	if err != nil {
		pkg.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

// Delete 管理端接口
func (h *CommunityHandler) Delete(c *gin.Context) {
	communityID, _ := strconv.ParseUint(c.Param("community_id"), 10, 64)

	if err := h.svc.Delete(communityID); err != nil {
		pkg.Fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}
