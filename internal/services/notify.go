package services

import (
	"context"
	"fmt"
	"log"

	"github.com/codewithemmax/WordLinkapp/internal/models"
	"github.com/codewithemmax/WordLinkapp/internal/store"
)

// NotificationService writes engagement notifications. Emission is
// best-effort: a failed write is logged and dropped, never surfaced to the
// mutation that triggered it.
type NotificationService struct {
	store store.NotificationStore
}

func NewNotificationService(notifs store.NotificationStore) *NotificationService {
	return &NotificationService{store: notifs}
}

func (s *NotificationService) Emit(ctx context.Context, n *models.Notification) {
	if n.UserID == n.ActorID {
		return // no self-notifications
	}
	if err := s.store.Insert(ctx, n); err != nil {
		log.Printf("Failed to emit %s notification for user %d: %v", n.Type, n.UserID, err)
	}
}

func (s *NotificationService) EmitFollow(ctx context.Context, target uint, actor *models.User) {
	s.Emit(ctx, &models.Notification{
		UserID:  target,
		ActorID: actor.ID,
		Type:    models.NotificationTypeFollow,
		Message: fmt.Sprintf("%s started following you", actor.Username),
	})
}

func (s *NotificationService) EmitLike(ctx context.Context, post *models.Post, actor *models.User) {
	s.Emit(ctx, &models.Notification{
		UserID:  post.UserID,
		ActorID: actor.ID,
		PostID:  &post.ID,
		Type:    models.NotificationTypeLike,
		Message: fmt.Sprintf("%s liked your post", actor.Username),
	})
}

func (s *NotificationService) EmitComment(ctx context.Context, post *models.Post, target uint, actor *models.User) {
	s.Emit(ctx, &models.Notification{
		UserID:  target,
		ActorID: actor.ID,
		PostID:  &post.ID,
		Type:    models.NotificationTypeComment,
		Message: fmt.Sprintf("%s commented on your post", actor.Username),
	})
}

// List returns the receiver's notifications, newest first.
func (s *NotificationService) List(ctx context.Context, userID uint, limit int) ([]models.Notification, error) {
	return s.store.FindByUser(ctx, userID, limit)
}

// MarkRead flips one notification's read flag; only the receiver may do so.
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uint) error {
	n, err := s.store.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if n == nil || n.UserID != userID {
		return fmt.Errorf("%w: notification %d", ErrNotFound, id)
	}
	if n.IsRead {
		return nil
	}
	n.IsRead = true
	return s.store.Update(ctx, n)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.store.MarkAllRead(ctx, userID)
}
