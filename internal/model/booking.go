package model

import "time"

const (
	BookingStatusPending  = "PENDING"
	BookingStatusAccepted = "ACCEPTED"
	BookingStatusDeclined = "DECLINED"
)

const (
	TimeFrameASAP     = "ASAP"
	TimeFrameRandom   = "RANDOM"
	TimeFrameSpecific = "SPECIFIC"
)

type Booking struct {
	ID     uint64 `gorm:"primaryKey"`
	PostID uint64 `gorm:"not null;index"`
	// UserID 借用人，不允许等于物品发布人
	UserID     uint64 `gorm:"not null;index"`
	Status     string `gorm:"size:16;not null;default:'PENDING'"`
	TimeFrame  string `gorm:"size:16;not null"`
	DateNeed   *time.Time
	DateReturn *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func ValidBookingStatus(s string) bool {
	return s == BookingStatusAccepted || s == BookingStatusDeclined
}

func ValidTimeFrame(s string) bool {
	return s == TimeFrameASAP || s == TimeFrameRandom || s == TimeFrameSpecific
}
