package service

import (
	"time"

	"Neighbor_Share/internal/model"
	"Neighbor_Share/internal/pkg"
	"Neighbor_Share/internal/repository/mysql"
)

type RequestService struct {
	repo    *mysql.RequestRepository
	members MemberChecker
}

func NewRequestService(repo *mysql.RequestRepository, members MemberChecker) *RequestService {
	return &RequestService{
		repo:    repo,
		members: members,
	}
}

type CreateRequestInput struct {
	Title       string
	Description string
	Image       string
	CommunityID uint64
	TimeFrame   string
	DateNeed    *time.Time
	DateReturn  *time.Time
}

// Create 求借贴的时间档规则与预订一致
func (s *RequestService) Create(userID uint64, in CreateRequestInput) (*model.Request, error) {
	if in.Title == "" {
		return nil, pkg.NewValidation("title required")
	}

	ok, err := s.members.IsMember(in.CommunityID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, pkg.NewForbidden(pkg.CodeForbiddenNotMember, "not a member of this community")
	}

	dateNeed, dateReturn, err := resolveTimeFrame(in.TimeFrame, in.DateNeed, in.DateReturn)
	if err != nil {
		return nil, err
	}

	req := &model.Request{
		Title:       in.Title,
		Description: in.Description,
		Image:       in.Image,
		CreatorID:   userID,
		CommunityID: in.CommunityID,
		TimeFrame:   in.TimeFrame,
		DateNeed:    dateNeed,
		DateReturn:  dateReturn,
	}
	if err := s.repo.Create(req); err != nil {
		return nil, err
	}
	return req, nil
}

func (s *RequestService) ListByCommunity(communityID uint64, page, size int) ([]model.Request, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	return s.repo.ListByCommunity(communityID, (page-1)*size, size)
}
