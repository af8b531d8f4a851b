package models

import (
	"time"
)

type Post struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"` // owner, immutable after creation

	// Author fields denormalized onto the post so the feed renders without a join.
	Username string `gorm:"not null" json:"username"`
	Fullname string `json:"fullname"`

	Content  string `gorm:"type:text;not null" json:"content"`
	ImageURL string `json:"image_url"`

	// Likes is a read-side counter re-derived from LikedBy on every toggle,
	// never incremented independently.
	Likes    int           `gorm:"default:0" json:"likes"`
	LikedBy  IDSet         `gorm:"type:jsonb;default:'[]'" json:"liked_by"`
	Comments CommentThread `gorm:"type:jsonb;default:'[]'" json:"comments"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Comment is embedded in its post, append-only, in insertion order.
type Comment struct {
	Cid       string    `json:"cid"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
	Replies   []Reply   `json:"replies"`
}

// Reply is embedded in its comment, append-only, in insertion order.
type Reply struct {
	Cid       string    `json:"cid"`
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
