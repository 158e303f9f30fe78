package mysql

import (
	"context"

	"gorm.io/gorm"

	"Neighbor_Share/internal/model"
)

type OutboxRepository struct {
	DB *gorm.DB
}

func NewOutboxRepository(db *gorm.DB) *OutboxRepository {
	return &OutboxRepository{DB: db}
}

func (r *OutboxRepository) ListPending(ctx context.Context, limit int) ([]model.BookingOutbox, error) {
	var rows []model.BookingOutbox
	err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.BookingOutbox{}).
		Where("id = ?", id).
		Update("status", 1).Error
}

func (r *OutboxRepository) MarkFailed(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.BookingOutbox{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"status": gorm.Expr("CASE WHEN retry >= 5 THEN 2 ELSE 0 END"),
			"retry":  gorm.Expr("retry + 1"),
		}).Error
}
