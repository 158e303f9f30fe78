package mysql

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"Neighbor_Share/internal/model"
)

type CommunityMemberRepository struct {
	DB *gorm.DB
}

func NewCommunityMemberRepository(db *gorm.DB) *CommunityMemberRepository {
	return &CommunityMemberRepository{DB: db}
}

func (r *CommunityMemberRepository) Join(member *model.CommunityMember) error {
	// 幂等插入：若已存在 (community_id, user_id) 则不报错
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "community_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(member).Error
}

func (r *CommunityMemberRepository) Leave(communityID, userID uint64) error {
	return r.DB.Where("community_id = ? AND user_id = ?", communityID, userID).
		Delete(&model.CommunityMember{}).Error
}

func (r *CommunityMemberRepository) IsMember(communityID, userID uint64) (bool, error) {
	var count int64
	err := r.DB.Model(&model.CommunityMember{}).
		Where("community_id = ? AND user_id = ?", communityID, userID).
		Count(&count).Error
	return count > 0, err
}

// ListCommunityIDs 用户加入的全部社区 id
func (r *CommunityMemberRepository) ListCommunityIDs(userID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.DB.Model(&model.CommunityMember{}).
		Where("user_id = ?", userID).
		Pluck("community_id", &ids).Error
	return ids, err
}
