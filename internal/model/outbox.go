package model

import "time"

// BookingOutbox 预订事件监控表，由后台 relayer 投递到 kafka
type BookingOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:32;not null"` // booking_created / booking_status_changed
	BookingID uint64 `gorm:"not null;index"`
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (BookingOutbox) TableName() string { return "booking_outbox" }
