package model

import "time"

const (
	NotificationTypeBooking = "BOOKING"
	NotificationTypeRequest = "REQUEST"
	NotificationTypeChat    = "CHAT"
)

// Notification 关联两个用户的会话/动态线索，可挂接 Booking 或 Post。
// CHAT 类型在同一社区内对 {creator, recipient} 无序对去重，至多一条。
type Notification struct {
	ID          uint64  `gorm:"primaryKey" json:"id"`
	Type        string  `gorm:"size:16;not null;index" json:"type"`
	CreatorID   uint64  `gorm:"not null;index" json:"creator_id"`
	RecipientID uint64  `gorm:"not null;index" json:"recipient_id"`
	BookingID   *uint64 `json:"booking_id,omitempty"`
	PostID      *uint64 `json:"post_id,omitempty"`
	// NotifierID 最近一次产生新动态的一方；被标记方查看后清空
	NotifierID  *uint64   `json:"notifier_id,omitempty"`
	CommunityID uint64    `gorm:"not null;index" json:"community_id"`
	ModifiedAt  time.Time `gorm:"not null;index" json:"modified_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"-"`

	Messages []Message `gorm:"foreignKey:NotificationID" json:"-"`
}

type Message struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	CreatorID      uint64    `gorm:"not null;index" json:"creator_id"`
	NotificationID uint64    `gorm:"not null;index" json:"notification_id"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"-"`
}

// OtherParticipant 返回会话中除 userID 外的另一方
func (n *Notification) OtherParticipant(userID uint64) uint64 {
	if n.CreatorID == userID {
		return n.RecipientID
	}
	return n.CreatorID
}

func (n *Notification) HasParticipant(userID uint64) bool {
	return n.CreatorID == userID || n.RecipientID == userID
}
