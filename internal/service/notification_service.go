package service

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"Neighbor_Share/internal/model"
	"Neighbor_Share/internal/pkg"
)

type NotificationStore interface {
	Create(ctx context.Context, n *model.Notification) error
	FindByID(ctx context.Context, id uint64) (*model.Notification, error)
	FindChatBetween(ctx context.Context, communityID, a, b uint64) (*model.Notification, error)
	ListForUser(ctx context.Context, userID, communityID uint64) ([]model.Notification, error)
	SetNotifier(ctx context.Context, id, notifierID uint64) error
	ClearNotifier(ctx context.Context, id uint64) error
}

type CommunityLister interface {
	ListCommunityIDs(userID uint64) ([]uint64, error)
}

type NotificationService struct {
	notifications NotificationStore
	members       MemberChecker
	communities   CommunityLister
	counter       UnreadCounter
}

func NewNotificationService(notifications NotificationStore, members MemberChecker, communities CommunityLister, counter UnreadCounter) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		members:       members,
		communities:   communities,
		counter:       counter,
	}
}

// StartChat 开启会话的幂等契约：同社区内 {creator, recipient}
// 无序对已有 CHAT 通知则复用，不产生重复行
func (s *NotificationService) StartChat(ctx context.Context, creatorID, recipientID, communityID uint64) (*model.Notification, error) {
	if creatorID == recipientID {
		return nil, pkg.NewValidation("cannot start a chat with yourself")
	}

	for _, uid := range []uint64{creatorID, recipientID} {
		ok, err := s.members.IsMember(communityID, uid)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, pkg.NewForbidden(pkg.CodeForbiddenNotMember, "both users must belong to the community")
		}
	}

	existing, err := s.notifications.FindChatBetween(ctx, communityID, creatorID, recipientID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	n := &model.Notification{
		Type:        model.NotificationTypeChat,
		CreatorID:   creatorID,
		RecipientID: recipientID,
		CommunityID: communityID,
		ModifiedAt:  time.Now(),
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// Get 单条读取。只有当前被 notifier 标记的那一方查看时才清标记：
// 看自己刚制造的动态不算已读
func (s *NotificationService) Get(ctx context.Context, callerID, id uint64) (*model.Notification, error) {
	n, err := s.notifications.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.NewNotFound("notification not found")
		}
		return nil, err
	}
	if !n.HasParticipant(callerID) {
		return nil, pkg.NewForbidden(pkg.CodeForbiddenItem, "not a participant of this notification")
	}

	if n.NotifierID != nil && *n.NotifierID == callerID {
		if err := s.notifications.ClearNotifier(ctx, n.ID); err != nil {
			return nil, err
		}
		n.NotifierID = nil
	}
	return n, nil
}

type NotificationList struct {
	Notifications []model.Notification `json:"notifications"`
	UnreadCount   int64                `json:"unread_count"`
}

// List 列出本人在该社区的通知；读取本身清空该社区的未读计数
func (s *NotificationService) List(ctx context.Context, callerID, communityID uint64) (*NotificationList, error) {
	list, err := s.notifications.ListForUser(ctx, callerID, communityID)
	if err != nil {
		return nil, err
	}

	counts, err := s.counter.GetMany(ctx, callerID, []uint64{communityID})
	if err != nil {
		log.Printf("user %d: unread counter read failed: %v", callerID, err)
		counts = map[uint64]int64{}
	}

	// 读即清零，失败不影响列表返回
	if err := s.counter.Clear(ctx, callerID, communityID); err != nil {
		log.Printf("user %d: unread counter clear failed: %v", callerID, err)
	}

	return &NotificationList{
		Notifications: list,
		UnreadCount:   counts[communityID],
	}, nil
}

// UnreadSummary 本人加入的全部社区的未读角标，只读不清零
func (s *NotificationService) UnreadSummary(ctx context.Context, callerID uint64) (map[uint64]int64, error) {
	ids, err := s.communities.ListCommunityIDs(callerID)
	if err != nil {
		return nil, err
	}
	return s.counter.GetMany(ctx, callerID, ids)
}
