package mysql

import (
	"gorm.io/gorm"

	"Neighbor_Share/internal/model"
)

type CommunityRepository struct {
	DB *gorm.DB
}

func NewCommunityRepository(db *gorm.DB) *CommunityRepository {
	return &CommunityRepository{DB: db}
}

// Create 幂等地让创建者加入
func (r *CommunityRepository) Create(c *model.Community) (*model.Community, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		mRepo := &CommunityMemberRepository{DB: tx}

		if err := tx.Create(c).Error; err != nil {
			return err
		}

		if err := mRepo.Join(&model.CommunityMember{
			CommunityID: c.ID,
			UserID:      c.CreatorID,
		}); err != nil {
			return err
		}

		return nil
	})
	return c, err
}

func (r *CommunityRepository) FindByID(id uint64) (*model.Community, error) {
	var community model.Community
	err := r.DB.First(&community, id).Error
	return &community, err
}

func (r *CommunityRepository) FindByCode(code string) (*model.Community, error) {
	var community model.Community
	err := r.DB.Where("code = ?", code).First(&community).Error
	return &community, err
}

func (r *CommunityRepository) List(offset, limit int) ([]model.Community, error) {
	var list []model.Community
	err := r.DB.Order("id desc").Offset(offset).Limit(limit).Find(&list).Error
	return list, err
}

func (r *CommunityRepository) DeleteByID(id uint64) error {
	// 幂等硬删除：即使不存在也视为成功
	tx := r.DB.Delete(&model.Community{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	return nil
}
