package mysql

import (
	"gorm.io/gorm"

	"Neighbor_Share/internal/model"
)

type RequestRepository struct {
	DB *gorm.DB
}

func NewRequestRepository(db *gorm.DB) *RequestRepository {
	return &RequestRepository{DB: db}
}

func (r *RequestRepository) Create(req *model.Request) error {
	return r.DB.Create(req).Error
}

func (r *RequestRepository) FindByID(id uint64) (*model.Request, error) {
	var req model.Request
	err := r.DB.First(&req, id).Error
	return &req, err
}

func (r *RequestRepository) ListByCommunity(communityID uint64, offset, limit int) ([]model.Request, error) {
	var list []model.Request
	err := r.DB.
		Where("community_id = ?", communityID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, err
}
