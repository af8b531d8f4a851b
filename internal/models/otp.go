package models

import (
	"time"
)

// OtpRecord holds the single live verification code for an email address.
// Issuance upserts, so at most one record exists per address and only the
// latest code verifies.
type OtpRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Code      string    `gorm:"size:6;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
