package mysql

import (
	"context"

	"gorm.io/gorm"

	"Neighbor_Share/internal/model"
)

type MessageRepository struct {
	DB *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{DB: db}
}

func (r *MessageRepository) Create(ctx context.Context, m *model.Message) error {
	return r.DB.WithContext(ctx).Create(m).Error
}

// ListByNotification 创建时间升序
func (r *MessageRepository) ListByNotification(ctx context.Context, notificationID uint64) ([]model.Message, error) {
	var list []model.Message
	err := r.DB.WithContext(ctx).
		Where("notification_id = ?", notificationID).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}
