package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"Neighbor_Share/internal/model"
)

// 手写假实现，覆盖服务层的小接口

type fakeBookingStore struct {
	byID      map[uint64]*model.Booking
	createdB  []*model.Booking
	createdN  []*model.Notification
	createdOB []*model.BookingOutbox
	updates   []string
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{byID: make(map[uint64]*model.Booking)}
}

func (f *fakeBookingStore) CreateWithNotification(ctx context.Context, b *model.Booking, n *model.Notification, ob *model.BookingOutbox) error {
	b.ID = uint64(len(f.createdB) + 1)
	n.BookingID = &b.ID
	f.createdB = append(f.createdB, b)
	f.createdN = append(f.createdN, n)
	f.createdOB = append(f.createdOB, ob)
	f.byID[b.ID] = b
	return nil
}

func (f *fakeBookingStore) FindByID(ctx context.Context, id uint64) (*model.Booking, error) {
	b, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (f *fakeBookingStore) UpdateStatus(ctx context.Context, b *model.Booking, status string, notifierID uint64, ob *model.BookingOutbox) error {
	f.updates = append(f.updates, status)
	f.createdOB = append(f.createdOB, ob)
	f.byID[b.ID].Status = status
	return nil
}

type fakePostFinder struct {
	posts       map[uint64]*model.Post
	communities map[uint64][]uint64
}

func (f *fakePostFinder) FindByID(id uint64) (*model.Post, error) {
	p, ok := f.posts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return p, nil
}

func (f *fakePostFinder) CommunityIDs(postID uint64) ([]uint64, error) {
	return f.communities[postID], nil
}

type memberKey struct {
	communityID uint64
	userID      uint64
}

type fakeMembers struct {
	members map[memberKey]bool
}

func newFakeMembers(pairs ...[2]uint64) *fakeMembers {
	f := &fakeMembers{members: make(map[memberKey]bool)}
	for _, p := range pairs {
		f.members[memberKey{p[0], p[1]}] = true
	}
	return f
}

func (f *fakeMembers) IsMember(communityID, userID uint64) (bool, error) {
	return f.members[memberKey{communityID, userID}], nil
}

func (f *fakeMembers) ListCommunityIDs(userID uint64) ([]uint64, error) {
	var ids []uint64
	for k := range f.members {
		if k.userID == userID {
			ids = append(ids, k.communityID)
		}
	}
	return ids, nil
}

type counterCall struct {
	recipientID uint64
	communityID uint64
}

type fakeCounter struct {
	incrs    []counterCall
	cleared  []counterCall
	counts   map[uint64]int64
	failIncr bool
}

func (f *fakeCounter) Incr(ctx context.Context, recipientID, communityID uint64) error {
	if f.failIncr {
		return errors.New("redis down")
	}
	f.incrs = append(f.incrs, counterCall{recipientID, communityID})
	return nil
}

func (f *fakeCounter) GetMany(ctx context.Context, recipientID uint64, communityIDs []uint64) (map[uint64]int64, error) {
	out := make(map[uint64]int64)
	for _, id := range communityIDs {
		out[id] = f.counts[id]
	}
	return out, nil
}

func (f *fakeCounter) Clear(ctx context.Context, recipientID, communityID uint64) error {
	f.cleared = append(f.cleared, counterCall{recipientID, communityID})
	return nil
}

type fakeNotificationStore struct {
	byID        map[uint64]*model.Notification
	nextID      uint64
	setNotifier []counterCall // recipientID 字段复用为 notifierID
	clearedIDs  []uint64
	failSet     bool
}

func newFakeNotificationStore() *fakeNotificationStore {
	return &fakeNotificationStore{byID: make(map[uint64]*model.Notification)}
}

func (f *fakeNotificationStore) add(n *model.Notification) *model.Notification {
	f.nextID++
	n.ID = f.nextID
	f.byID[n.ID] = n
	return n
}

func (f *fakeNotificationStore) Create(ctx context.Context, n *model.Notification) error {
	f.add(n)
	return nil
}

func (f *fakeNotificationStore) FindByID(ctx context.Context, id uint64) (*model.Notification, error) {
	n, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return n, nil
}

func (f *fakeNotificationStore) FindByBookingID(ctx context.Context, bookingID uint64) (*model.Notification, error) {
	for _, n := range f.byID {
		if n.BookingID != nil && *n.BookingID == bookingID {
			return n, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNotificationStore) FindChatBetween(ctx context.Context, communityID, a, b uint64) (*model.Notification, error) {
	for _, n := range f.byID {
		if n.Type != model.NotificationTypeChat || n.CommunityID != communityID {
			continue
		}
		if (n.CreatorID == a && n.RecipientID == b) || (n.CreatorID == b && n.RecipientID == a) {
			return n, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeNotificationStore) ListForUser(ctx context.Context, userID, communityID uint64) ([]model.Notification, error) {
	var out []model.Notification
	for _, n := range f.byID {
		if n.CommunityID == communityID && n.HasParticipant(userID) {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotificationStore) SetNotifier(ctx context.Context, id, notifierID uint64) error {
	if f.failSet {
		return errors.New("db down")
	}
	f.setNotifier = append(f.setNotifier, counterCall{notifierID, id})
	if n, ok := f.byID[id]; ok {
		nid := notifierID
		n.NotifierID = &nid
	}
	return nil
}

func (f *fakeNotificationStore) ClearNotifier(ctx context.Context, id uint64) error {
	f.clearedIDs = append(f.clearedIDs, id)
	if n, ok := f.byID[id]; ok {
		n.NotifierID = nil
	}
	return nil
}

type fakeMessageStore struct {
	created []*model.Message
	list    []model.Message
}

func (f *fakeMessageStore) Create(ctx context.Context, m *model.Message) error {
	m.ID = uint64(len(f.created) + 1)
	f.created = append(f.created, m)
	return nil
}

func (f *fakeMessageStore) ListByNotification(ctx context.Context, notificationID uint64) ([]model.Message, error) {
	return f.list, nil
}

type fakeBus struct {
	published []*model.Message
	fail      bool
}

func (f *fakeBus) PublishMessageCreated(ctx context.Context, msg *model.Message) error {
	if f.fail {
		return errors.New("redis down")
	}
	f.published = append(f.published, msg)
	return nil
}
