package middleware

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"Neighbor_Share/internal/model"
	"Neighbor_Share/internal/pkg"
	"Neighbor_Share/internal/repository/mysql"
)

const ContextPostKey = "post"

// PostOwnerMiddleware 解析 :id 指向的帖子并要求调用者是发布人，
// 命中后把帖子挂进上下文，handler 不用再查一次
func PostOwnerMiddleware(posts *mysql.PostRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.Param("id")
		postID, err := strconv.ParseUint(idStr, 10, 64)
		if err != nil || postID == 0 {
			pkg.Fail(c, pkg.NewValidation("invalid post id"))
			return
		}

		post, err := posts.FindByID(postID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				pkg.Fail(c, pkg.NewNotFound("post not found"))
				return
			}
			pkg.Fail(c, err)
			return
		}

		if post.CreatorID != UserID(c) {
			pkg.Fail(c, pkg.NewForbidden(pkg.CodeForbiddenItem, "not the owner of this post"))
			return
		}

		c.Set(ContextPostKey, post)
		c.Next()
	}
}

func ContextPost(c *gin.Context) *model.Post {
	v, _ := c.Get(ContextPostKey)
	post, _ := v.(*model.Post)
	return post
}
