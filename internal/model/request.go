package model

import "time"

type Request struct {
	ID          uint64     `gorm:"primaryKey" json:"id"`
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Image       string     `gorm:"size:255" json:"image"`
	CreatorID   uint64     `gorm:"not null;index" json:"creator_id"`
	CommunityID uint64     `gorm:"not null;index" json:"community_id"`
	TimeFrame   string     `gorm:"size:16;not null" json:"time_frame"` // ASAP / RANDOM / SPECIFIC
	DateNeed    *time.Time `json:"date_need,omitempty"`
	DateReturn  *time.Time `json:"date_return,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"-"`
}
