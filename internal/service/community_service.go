package service

import (
	"errors"

	"gorm.io/gorm"

	"Neighbor_Share/internal/model"
	"Neighbor_Share/internal/pkg"
	"Neighbor_Share/internal/repository/mysql"
)

type CommunityService struct {
	repo       *mysql.CommunityRepository
	memberRepo *mysql.CommunityMemberRepository
}

func NewCommunityService(repo *mysql.CommunityRepository, memberRepo *mysql.CommunityMemberRepository) *CommunityService {
	return &CommunityService{
		repo:       repo,
		memberRepo: memberRepo,
	}
}

func (s *CommunityService) Create(userID uint64, code, name, desc string) (*model.Community, error) {
	if code == "" || name == "" {
		return nil, pkg.NewValidation("community code and name required")
	}

	community := &model.Community{
		Code:        code,
		Name:        name,
		Description: desc,
		CreatorID:   userID,
	}

	if _, err := s.repo.Create(community); err != nil {
		return nil, err
	}

	return community, nil
}

// Join 凭社区口令加入，幂等
func (s *CommunityService) Join(userID uint64, code string) (*model.Community, error) {
	community, err := s.repo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.NewNotFound("community not found")
		}
		return nil, err
	}

	if err := s.memberRepo.Join(&model.CommunityMember{
		CommunityID: community.ID,
		UserID:      userID,
	}); err != nil {
		return nil, err
	}
	return community, nil
}

func (s *CommunityService) Leave(userID, communityID uint64) error {
	return s.memberRepo.Leave(communityID, userID)
}

func (s *CommunityService) List(page, size int) ([]model.Community, error) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}

	offset := (page - 1) * size
	return s.repo.List(offset, size)
}

// Delete 管理端接口，白名单中间件把关
func (s *CommunityService) Delete(communityID uint64) error {
	return s.repo.DeleteByID(communityID)
}
