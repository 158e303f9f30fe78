package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"Neighbor_Share/internal/pkg"
	"Neighbor_Share/internal/repository/mysql"
)

const ContextCommunityIDKey = "community_id"

// MemberMiddleware 社区成员关卡：从 path/query 解析 community_id，
// 非成员直接 403。请求体里带社区的接口（预订、发消息）在 service 层补查。
func MemberMiddleware(members *mysql.CommunityMemberRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		communityID := resolveCommunityID(c)
		if communityID == 0 {
			pkg.Fail(c, pkg.NewValidation("community_id required"))
			return
		}

		userID := UserID(c)
		ok, err := members.IsMember(communityID, userID)
		if err != nil {
			pkg.Fail(c, err)
			return
		}
		if !ok {
			pkg.Fail(c, pkg.NewForbidden(pkg.CodeForbiddenNotMember, "not a member of this community"))
			return
		}

		c.Set(ContextCommunityIDKey, communityID)
		c.Next()
	}
}

func resolveCommunityID(c *gin.Context) uint64 {
	if s := c.Param("community_id"); s != "" {
		id, _ := strconv.ParseUint(s, 10, 64)
		return id
	}
	if s := c.Query("community_id"); s != "" {
		id, _ := strconv.ParseUint(s, 10, 64)
		return id
	}
	return 0
}

func CommunityID(c *gin.Context) uint64 {
	v, _ := c.Get(ContextCommunityIDKey)
	id, _ := v.(uint64)
	return id
}
