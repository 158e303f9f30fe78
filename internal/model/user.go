package model

import "time"

type User struct {
	ID               uint64 `gorm:"primaryKey"`
	Username         string `gorm:"uniqueIndex;size:32;not null"`
	Email            string `gorm:"uniqueIndex;size:64;not null"`
	Password         string `gorm:"size:255;not null"`
	IsNotified       bool   `gorm:"not null;default:true"`
	UnsubscribeToken string `gorm:"size:64;not null"`
	LastLoginAt      *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
