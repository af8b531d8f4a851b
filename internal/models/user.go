package models

import (
	"time"
)

type User struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Username   string `gorm:"uniqueIndex;not null" json:"username"`
	Firstname  string `gorm:"not null" json:"firstname"`
	Lastname   string `gorm:"not null" json:"lastname"`
	Email      string `gorm:"uniqueIndex;not null" json:"email"`
	Password   string `gorm:"not null" json:"-"` // bcrypt hash
	ProfilePic string `json:"profile_pic"`
	Bio        string `gorm:"size:200" json:"bio"`

	// Denormalized edge sets. Followings mirrors the Followers set of the
	// target user; the pair is kept consistent by the toggle service.
	Followers  IDSet `gorm:"type:jsonb;default:'[]'" json:"followers"`
	Followings IDSet `gorm:"type:jsonb;default:'[]'" json:"followings"`
	Bookmarks  IDSet `gorm:"type:jsonb;default:'[]'" json:"bookmarks"`
	Retweets   IDSet `gorm:"type:jsonb;default:'[]'" json:"retweets"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Fullname joins first and last name the way tokens and post denormalization use it.
func (u *User) Fullname() string {
	return u.Firstname + " " + u.Lastname
}
