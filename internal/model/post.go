package model

import "time"

type Post struct {
	ID          uint64 `gorm:"primaryKey" json:"id"`
	Title       string `gorm:"size:200;not null" json:"title"`
	Description string `gorm:"type:text" json:"description"`
	Image       string `gorm:"size:255" json:"image"`
	CreatorID   uint64 `gorm:"not null;index" json:"creator_id"`
	// RequestID 非空时表示该物品是为响应某个求借贴发布的
	RequestID *uint64   `gorm:"index" json:"request_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// PostCommunity 物品可同时挂在多个社区下
type PostCommunity struct {
	ID          uint64 `gorm:"primaryKey"`
	PostID      uint64 `gorm:"not null;index;uniqueIndex:uk_post_community"`
	CommunityID uint64 `gorm:"not null;index;uniqueIndex:uk_post_community"`
	CreatedAt   time.Time
}
