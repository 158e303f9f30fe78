package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"Neighbor_Share/internal/model"
)

type NotificationRepository struct {
	DB *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return r.DB.WithContext(ctx).Create(n).Error
}

func (r *NotificationRepository) FindByID(ctx context.Context, id uint64) (*model.Notification, error) {
	var n model.Notification
	err := r.DB.WithContext(ctx).First(&n, id).Error
	return &n, err
}

func (r *NotificationRepository) FindByBookingID(ctx context.Context, bookingID uint64) (*model.Notification, error) {
	var n model.Notification
	err := r.DB.WithContext(ctx).Where("booking_id = ?", bookingID).First(&n).Error
	return &n, err
}

// FindChatBetween CHAT 去重查询：同一社区内 {a,b} 正反方向各查一次
func (r *NotificationRepository) FindChatBetween(ctx context.Context, communityID, a, b uint64) (*model.Notification, error) {
	var n model.Notification
	err := r.DB.WithContext(ctx).
		Where("type = ? AND community_id = ?", model.NotificationTypeChat, communityID).
		Where("(creator_id = ? AND recipient_id = ?) OR (creator_id = ? AND recipient_id = ?)", a, b, b, a).
		First(&n).Error
	return &n, err
}

// ListForUser 本人参与的通知，按 modified_at 倒序（会话新鲜度排序）
func (r *NotificationRepository) ListForUser(ctx context.Context, userID, communityID uint64) ([]model.Notification, error) {
	var list []model.Notification
	err := r.DB.WithContext(ctx).
		Where("community_id = ?", communityID).
		Where("creator_id = ? OR recipient_id = ?", userID, userID).
		Order("modified_at DESC").
		Find(&list).Error
	return list, err
}

// SetNotifier 置位最近动态方并刷新 modified_at
func (r *NotificationRepository) SetNotifier(ctx context.Context, id, notifierID uint64) error {
	return r.DB.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"notifier_id": notifierID,
			"modified_at": time.Now(),
		}).Error
}

// ClearNotifier 被标记方查看后清空
func (r *NotificationRepository) ClearNotifier(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ?", id).
		Update("notifier_id", gorm.Expr("NULL")).Error
}
