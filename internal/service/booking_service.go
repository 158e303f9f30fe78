package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"Neighbor_Share/internal/model"
	"Neighbor_Share/internal/pkg"
)

// 服务层依赖收窄成小接口，mysql/redis 仓储天然满足，测试用假实现
type BookingStore interface {
	CreateWithNotification(ctx context.Context, b *model.Booking, n *model.Notification, ob *model.BookingOutbox) error
	FindByID(ctx context.Context, id uint64) (*model.Booking, error)
	UpdateStatus(ctx context.Context, b *model.Booking, status string, notifierID uint64, ob *model.BookingOutbox) error
}

type PostFinder interface {
	FindByID(id uint64) (*model.Post, error)
	CommunityIDs(postID uint64) ([]uint64, error)
}

type MemberChecker interface {
	IsMember(communityID, userID uint64) (bool, error)
}

type NotificationFinder interface {
	FindByBookingID(ctx context.Context, bookingID uint64) (*model.Notification, error)
}

type UnreadCounter interface {
	Incr(ctx context.Context, recipientID, communityID uint64) error
	GetMany(ctx context.Context, recipientID uint64, communityIDs []uint64) (map[uint64]int64, error)
	Clear(ctx context.Context, recipientID, communityID uint64) error
}

type BookingService struct {
	bookings      BookingStore
	posts         PostFinder
	members       MemberChecker
	notifications NotificationFinder
	counter       UnreadCounter
}

func NewBookingService(bookings BookingStore, posts PostFinder, members MemberChecker, notifications NotificationFinder, counter UnreadCounter) *BookingService {
	return &BookingService{
		bookings:      bookings,
		posts:         posts,
		members:       members,
		notifications: notifications,
		counter:       counter,
	}
}

type CreateBookingInput struct {
	PostID      uint64
	CommunityID uint64
	TimeFrame   string
	DateNeed    *time.Time
	DateReturn  *time.Time
}

// resolveTimeFrame SPECIFIC 必须带 date_need，date_return 缺省取 date_need
func resolveTimeFrame(timeFrame string, dateNeed, dateReturn *time.Time) (*time.Time, *time.Time, error) {
	if !model.ValidTimeFrame(timeFrame) {
		return nil, nil, pkg.NewValidation("invalid time_frame")
	}
	if timeFrame != model.TimeFrameSpecific {
		return nil, nil, nil
	}
	if dateNeed == nil {
		return nil, nil, pkg.NewBadRequest(pkg.CodeMissingDate, "date_need required for specific time frame")
	}
	if dateReturn == nil {
		dateReturn = dateNeed
	}
	return dateNeed, dateReturn, nil
}

// Create 预订与 BOOKING 通知原子落库；未读计数在提交后尽力自增
func (s *BookingService) Create(ctx context.Context, userID uint64, in CreateBookingInput) (*model.Booking, error) {
	post, err := s.posts.FindByID(in.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.NewNotFound("post not found")
		}
		return nil, err
	}

	// 自己不能借自己的东西，任何写入之前拦截
	if post.CreatorID == userID {
		return nil, pkg.NewForbidden(pkg.CodeForbiddenSelfBooking, "cannot book your own post")
	}

	// 帖子必须真的挂在请求声称的社区下，否则通知和计数会落进错误的社区
	communityIDs, err := s.posts.CommunityIDs(in.PostID)
	if err != nil {
		return nil, err
	}
	attached := false
	for _, cid := range communityIDs {
		if cid == in.CommunityID {
			attached = true
			break
		}
	}
	if !attached {
		return nil, pkg.NewNotFound("post not found in this community")
	}

	ok, err := s.members.IsMember(in.CommunityID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, pkg.NewForbidden(pkg.CodeForbiddenNotMember, "not a member of this community")
	}

	dateNeed, dateReturn, err := resolveTimeFrame(in.TimeFrame, in.DateNeed, in.DateReturn)
	if err != nil {
		return nil, err
	}

	booking := &model.Booking{
		PostID:     in.PostID,
		UserID:     userID,
		Status:     model.BookingStatusPending,
		TimeFrame:  in.TimeFrame,
		DateNeed:   dateNeed,
		DateReturn: dateReturn,
	}

	creatorID := post.CreatorID
	notification := &model.Notification{
		Type:        model.NotificationTypeBooking,
		CreatorID:   userID,
		RecipientID: creatorID,
		PostID:      &post.ID,
		NotifierID:  &creatorID,
		CommunityID: in.CommunityID,
		ModifiedAt:  time.Now(),
	}

	payload, err := json.Marshal(map[string]any{
		"post_id":   in.PostID,
		"booker_id": userID,
		"status":    model.BookingStatusPending,
	})
	if err != nil {
		return nil, err
	}
	outbox := &model.BookingOutbox{
		EventType: "booking_created",
		Payload:   string(payload),
	}

	if err := s.bookings.CreateWithNotification(ctx, booking, notification, outbox); err != nil {
		return nil, err
	}

	// 事务外的尽力步骤，失败只记日志
	if err := s.counter.Incr(ctx, post.CreatorID, in.CommunityID); err != nil {
		log.Printf("booking %d: unread counter incr failed: %v", booking.ID, err)
	}

	return booking, nil
}

// UpdateStatus 只有物品发布人能推进状态，且不能退回 PENDING
func (s *BookingService) UpdateStatus(ctx context.Context, callerID, bookingID uint64, status string) (*model.Booking, error) {
	booking, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.NewNotFound("booking not found")
		}
		return nil, err
	}

	post, err := s.posts.FindByID(booking.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkg.NewNotFound("post not found")
		}
		return nil, err
	}
	if post.CreatorID != callerID {
		return nil, pkg.NewForbidden(pkg.CodeForbiddenItem, "only the post owner may update the booking")
	}

	if !model.ValidBookingStatus(status) {
		return nil, pkg.NewBadRequest(pkg.CodeInvalidBookingStatus, "invalid booking status")
	}

	payload, err := json.Marshal(map[string]any{
		"post_id":   booking.PostID,
		"booker_id": booking.UserID,
		"status":    status,
	})
	if err != nil {
		return nil, err
	}
	outbox := &model.BookingOutbox{
		EventType: "booking_status_changed",
		Payload:   string(payload),
	}

	if err := s.bookings.UpdateStatus(ctx, booking, status, booking.UserID, outbox); err != nil {
		return nil, err
	}
	booking.Status = status

	if n, err := s.notifications.FindByBookingID(ctx, bookingID); err == nil {
		if err := s.counter.Incr(ctx, booking.UserID, n.CommunityID); err != nil {
			log.Printf("booking %d: unread counter incr failed: %v", bookingID, err)
		}
	} else {
		log.Printf("booking %d: notification lookup failed: %v", bookingID, err)
	}

	return booking, nil
}
