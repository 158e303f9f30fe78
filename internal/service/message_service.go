package service

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"Neighbor_Share/internal/model"
	"Neighbor_Share/internal/pkg"
)

type MessageStore interface {
	Create(ctx context.Context, m *model.Message) error
	ListByNotification(ctx context.Context, notificationID uint64) ([]model.Message, error)
}

type EventPublisher interface {
	PublishMessageCreated(ctx context.Context, msg *model.Message) error
}

type MessageService struct {
	messages      MessageStore
	notifications NotificationStore
	counter       UnreadCounter
	bus           EventPublisher
}

func NewMessageService(messages MessageStore, notifications NotificationStore, counter UnreadCounter, bus EventPublisher) *MessageService {
	return &MessageService{
		messages:      messages,
		notifications: notifications,
		counter:       counter,
		bus:           bus,
	}
}

// Send 消息落库是持久性边界；其后的 notifier 置位、计数自增、事件发布
// 都是尽力而为，失败不回滚消息。notifier 置位顺序决定会话的新鲜度排序。
func (s *MessageService) Send(ctx context.Context, callerID, notificationID uint64, content string) (*model.Message, error) {
	if content == "" {
		return nil, pkg.NewValidation("content required")
	}

	n, err := s.notifications.FindByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.NewNotFound("notification not found")
		}
		return nil, err
	}
	if !n.HasParticipant(callerID) {
		return nil, pkg.NewForbidden(pkg.CodeForbiddenItem, "not a participant of this notification")
	}

	msg := &model.Message{
		Content:        content,
		CreatorID:      callerID,
		NotificationID: notificationID,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	other := n.OtherParticipant(callerID)

	if err := s.notifications.SetNotifier(ctx, notificationID, other); err != nil {
		log.Printf("message %d: notifier update failed: %v", msg.ID, err)
	}
	if err := s.counter.Incr(ctx, other, n.CommunityID); err != nil {
		log.Printf("message %d: unread counter incr failed: %v", msg.ID, err)
	}
	if err := s.bus.PublishMessageCreated(ctx, msg); err != nil {
		log.Printf("message %d: publish failed: %v", msg.ID, err)
	}

	return msg, nil
}

func (s *MessageService) List(ctx context.Context, callerID, notificationID uint64) ([]model.Message, error) {
	n, err := s.notifications.FindByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.NewNotFound("notification not found")
		}
		return nil, err
	}
	if !n.HasParticipant(callerID) {
		return nil, pkg.NewForbidden(pkg.CodeForbiddenItem, "not a participant of this notification")
	}
	return s.messages.ListByNotification(ctx, notificationID)
}
