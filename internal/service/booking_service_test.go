package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Neighbor_Share/internal/model"
	"Neighbor_Share/internal/pkg"
)

func newBookingFixture() (*BookingService, *fakeBookingStore, *fakeNotificationStore, *fakeCounter) {
	bookings := newFakeBookingStore()
	notifications := newFakeNotificationStore()
	counter := &fakeCounter{}
	posts := &fakePostFinder{
		posts: map[uint64]*model.Post{
			10: {ID: 10, Title: "ladder", CreatorID: 1},
		},
		communities: map[uint64][]uint64{10: {100}},
	}
	// 社区 100：发布人 1 和借用人 2 都是成员
	members := newFakeMembers([2]uint64{100, 1}, [2]uint64{100, 2})

	svc := NewBookingService(bookings, posts, members, notifications, counter)
	return svc, bookings, notifications, counter
}

func TestCreateBookingSelfBookingForbidden(t *testing.T) {
	svc, bookings, _, _ := newBookingFixture()

	_, err := svc.Create(context.Background(), 1, CreateBookingInput{
		PostID:      10,
		CommunityID: 100,
		TimeFrame:   model.TimeFrameASAP,
	})

	var appErr *pkg.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkg.CodeForbiddenSelfBooking, appErr.Code)
	// 任何写入都不能发生
	assert.Empty(t, bookings.createdB)
}

func TestCreateBookingSpecificRequiresDateNeed(t *testing.T) {
	svc, bookings, _, _ := newBookingFixture()

	_, err := svc.Create(context.Background(), 2, CreateBookingInput{
		PostID:      10,
		CommunityID: 100,
		TimeFrame:   model.TimeFrameSpecific,
	})

	var appErr *pkg.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkg.CodeMissingDate, appErr.Code)
	assert.Empty(t, bookings.createdB)
}

func TestCreateBookingDateReturnDefaultsToDateNeed(t *testing.T) {
	svc, bookings, _, _ := newBookingFixture()

	need := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	booking, err := svc.Create(context.Background(), 2, CreateBookingInput{
		PostID:      10,
		CommunityID: 100,
		TimeFrame:   model.TimeFrameSpecific,
		DateNeed:    &need,
	})
	require.NoError(t, err)

	require.NotNil(t, booking.DateReturn)
	assert.Equal(t, need, *booking.DateReturn)
	assert.Len(t, bookings.createdB, 1)
}

func TestCreateBookingPostNotInClaimedCommunity(t *testing.T) {
	svc, bookings, _, counter := newBookingFixture()

	// 帖子只挂在社区 100，声称 200 必须被拒，通知与计数不能落进别的社区
	_, err := svc.Create(context.Background(), 2, CreateBookingInput{
		PostID:      10,
		CommunityID: 200,
		TimeFrame:   model.TimeFrameASAP,
	})

	var appErr *pkg.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkg.CodeNotFound, appErr.Code)
	assert.Empty(t, bookings.createdB)
	assert.Empty(t, counter.incrs)
}

func TestCreateBookingNonMemberForbidden(t *testing.T) {
	svc, bookings, _, _ := newBookingFixture()

	_, err := svc.Create(context.Background(), 3, CreateBookingInput{
		PostID:      10,
		CommunityID: 100,
		TimeFrame:   model.TimeFrameASAP,
	})

	var appErr *pkg.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkg.CodeForbiddenNotMember, appErr.Code)
	assert.Empty(t, bookings.createdB)
}

func TestCreateBookingAtomicWithNotification(t *testing.T) {
	svc, bookings, _, counter := newBookingFixture()

	booking, err := svc.Create(context.Background(), 2, CreateBookingInput{
		PostID:      10,
		CommunityID: 100,
		TimeFrame:   model.TimeFrameASAP,
	})
	require.NoError(t, err)

	assert.Equal(t, model.BookingStatusPending, booking.Status)

	// 预订、通知、outbox 一次写入
	require.Len(t, bookings.createdB, 1)
	require.Len(t, bookings.createdN, 1)
	require.Len(t, bookings.createdOB, 1)

	n := bookings.createdN[0]
	assert.Equal(t, model.NotificationTypeBooking, n.Type)
	assert.Equal(t, uint64(2), n.CreatorID)
	assert.Equal(t, uint64(1), n.RecipientID)
	require.NotNil(t, n.NotifierID)
	assert.Equal(t, uint64(1), *n.NotifierID)
	require.NotNil(t, n.BookingID)
	assert.Equal(t, booking.ID, *n.BookingID)

	// 发布人的未读计数 +1
	require.Len(t, counter.incrs, 1)
	assert.Equal(t, counterCall{1, 100}, counter.incrs[0])
}

func TestUpdateBookingStatusOnlyPostOwner(t *testing.T) {
	svc, bookings, notifications, _ := newBookingFixture()

	booking, err := svc.Create(context.Background(), 2, CreateBookingInput{
		PostID:      10,
		CommunityID: 100,
		TimeFrame:   model.TimeFrameASAP,
	})
	require.NoError(t, err)
	notifications.add(bookings.createdN[0])

	// 借用人自己不许改状态
	_, err = svc.UpdateStatus(context.Background(), 2, booking.ID, model.BookingStatusAccepted)
	var appErr *pkg.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkg.CodeForbiddenItem, appErr.Code)

	// 发布人可以
	updated, err := svc.UpdateStatus(context.Background(), 1, booking.ID, model.BookingStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusAccepted, updated.Status)
}

func TestUpdateBookingStatusCannotGoBackToPending(t *testing.T) {
	svc, bookings, notifications, _ := newBookingFixture()

	booking, err := svc.Create(context.Background(), 2, CreateBookingInput{
		PostID:      10,
		CommunityID: 100,
		TimeFrame:   model.TimeFrameASAP,
	})
	require.NoError(t, err)
	notifications.add(bookings.createdN[0])

	_, err = svc.UpdateStatus(context.Background(), 1, booking.ID, model.BookingStatusPending)
	var appErr *pkg.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkg.CodeInvalidBookingStatus, appErr.Code)
}

func TestUpdateBookingStatusIncrementsBookerCounter(t *testing.T) {
	svc, bookings, notifications, counter := newBookingFixture()

	booking, err := svc.Create(context.Background(), 2, CreateBookingInput{
		PostID:      10,
		CommunityID: 100,
		TimeFrame:   model.TimeFrameASAP,
	})
	require.NoError(t, err)
	notifications.add(bookings.createdN[0])
	counter.incrs = nil

	_, err = svc.UpdateStatus(context.Background(), 1, booking.ID, model.BookingStatusDeclined)
	require.NoError(t, err)

	require.Len(t, counter.incrs, 1)
	assert.Equal(t, counterCall{2, 100}, counter.incrs[0])
}

func TestUpdateBookingStatusNotFound(t *testing.T) {
	svc, _, _, _ := newBookingFixture()

	_, err := svc.UpdateStatus(context.Background(), 1, 999, model.BookingStatusAccepted)
	var appErr *pkg.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, pkg.CodeNotFound, appErr.Code)
}
