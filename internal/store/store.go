// Package store is the document-store adapter: opaque per-entity CRUD with
// no cross-document transaction primitive. Engines read whole documents,
// mutate them, and write them back; correctness under concurrent requests
// comes from idempotent set operations and re-derivable counters, not from
// anything this layer promises.
package store

import (
	"context"

	"github.com/codewithemmax/WordLinkapp/internal/models"
)

// Find methods return (nil, nil) when no document matches; callers decide
// whether that is an error.

type UserStore interface {
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
}

type PostStore interface {
	FindByID(ctx context.Context, id uint) (*models.Post, error)
	// FindAll returns every post, newest first.
	FindAll(ctx context.Context) ([]models.Post, error)
	Insert(ctx context.Context, post *models.Post) error
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
}

type OtpStore interface {
	FindByEmail(ctx context.Context, email string) (*models.OtpRecord, error)
	// Upsert replaces the single record for the address, keyed by email.
	Upsert(ctx context.Context, rec *models.OtpRecord) error
}

type NotificationStore interface {
	Insert(ctx context.Context, n *models.Notification) error
	FindByID(ctx context.Context, id uint) (*models.Notification, error)
	// FindByUser returns the receiver's notifications, newest first, capped at limit.
	FindByUser(ctx context.Context, userID uint, limit int) ([]models.Notification, error)
	Update(ctx context.Context, n *models.Notification) error
	MarkAllRead(ctx context.Context, userID uint) error
}

// Stores bundles the per-entity adapters for wiring.
type Stores struct {
	Users         UserStore
	Posts         PostStore
	Otps          OtpStore
	Notifications NotificationStore
}
