package service

import (
	"errors"

	"gorm.io/gorm"

	"Neighbor_Share/internal/model"
	"Neighbor_Share/internal/pkg"
	"Neighbor_Share/internal/repository/mysql"
)

type PostService struct {
	repo        *mysql.PostRepository
	requestRepo *mysql.RequestRepository
	members     MemberChecker
}

func NewPostService(repo *mysql.PostRepository, requestRepo *mysql.RequestRepository, members MemberChecker) *PostService {
	return &PostService{
		repo:        repo,
		requestRepo: requestRepo,
		members:     members,
	}
}

type CreatePostInput struct {
	Title        string
	Description  string
	Image        string
	CommunityIDs []uint64
	// RequestID 非空表示本帖是对某个求借贴的响应
	RequestID *uint64
}

func (s *PostService) Create(userID uint64, in CreatePostInput) (*model.Post, error) {
	if in.Title == "" {
		return nil, pkg.NewValidation("title required")
	}
	if len(in.CommunityIDs) == 0 {
		return nil, pkg.NewValidation("at least one community required")
	}

	// 必须是每个目标社区的成员
	for _, cid := range in.CommunityIDs {
		ok, err := s.members.IsMember(cid, userID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, pkg.NewForbidden(pkg.CodeForbiddenNotMember, "not a member of a target community")
		}
	}

	if in.RequestID != nil {
		if _, err := s.requestRepo.FindByID(*in.RequestID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkg.NewNotFound("request not found")
			}
			return nil, err
		}
	}

	post := &model.Post{
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
		CreatorID:   userID,
		RequestID:   in.RequestID,
	}
	if err := s.repo.Create(post, in.CommunityIDs); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) ListByCommunity(communityID uint64, page, size int) ([]model.Post, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	return s.repo.ListByCommunity(communityID, (page-1)*size, size)
}

func (s *PostService) Delete(postID uint64) error {
	return s.repo.Delete(postID)
}
