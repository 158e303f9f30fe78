package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"Neighbor_Share/internal/model"
)

type BookingRepository struct {
	DB *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{DB: db}
}

// CreateWithNotification 预订与其 BOOKING 通知、outbox 行在一个事务内落库。
// 不允许出现有预订无通知的中间态。
func (r *BookingRepository) CreateWithNotification(ctx context.Context, b *model.Booking, n *model.Notification, ob *model.BookingOutbox) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(b).Error; err != nil {
			return err
		}
		n.BookingID = &b.ID
		if err := tx.Create(n).Error; err != nil {
			return err
		}
		ob.BookingID = b.ID
		return tx.Create(ob).Error
	})
}

func (r *BookingRepository) FindByID(ctx context.Context, id uint64) (*model.Booking, error) {
	var b model.Booking
	err := r.DB.WithContext(ctx).First(&b, id).Error
	return &b, err
}

// UpdateStatus 状态变更连带父通知的 notifier/modified_at 与 outbox 行一起写
func (r *BookingRepository) UpdateStatus(ctx context.Context, b *model.Booking, status string, notifierID uint64, ob *model.BookingOutbox) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Booking{}).
			Where("id = ?", b.ID).
			Update("status", status).Error; err != nil {
			return err
		}
		if err := tx.Model(&model.Notification{}).
			Where("booking_id = ?", b.ID).
			Updates(map[string]any{
				"notifier_id": notifierID,
				"modified_at": time.Now(),
			}).Error; err != nil {
			return err
		}
		ob.BookingID = b.ID
		return tx.Create(ob).Error
	})
}
