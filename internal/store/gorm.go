package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/codewithemmax/WordLinkapp/internal/models"
)

// NewGormStores wires every adapter to one gorm connection. No method opens
// a transaction spanning more than one document.
func NewGormStores(db *gorm.DB) *Stores {
	return &Stores{
		Users:         &gormUserStore{db: db},
		Posts:         &gormPostStore{db: db},
		Otps:          &gormOtpStore{db: db},
		Notifications: &gormNotificationStore{db: db},
	}
}

func firstOrNil[T any](tx *gorm.DB, dest *T) (*T, error) {
	if err := tx.First(dest).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return dest, nil
}

type gormUserStore struct {
	db *gorm.DB
}

func (s *gormUserStore) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	return firstOrNil(s.db.WithContext(ctx).Where("id = ?", id), &user)
}

func (s *gormUserStore) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	return firstOrNil(s.db.WithContext(ctx).Where("username = ?", username), &user)
}

func (s *gormUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	return firstOrNil(s.db.WithContext(ctx).Where("email = ?", email), &user)
}

func (s *gormUserStore) Insert(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *gormUserStore) Update(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Save(user).Error
}

type gormPostStore struct {
	db *gorm.DB
}

func (s *gormPostStore) FindByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	return firstOrNil(s.db.WithContext(ctx).Where("id = ?", id), &post)
}

func (s *gormPostStore) FindAll(ctx context.Context) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&posts).Error
	return posts, err
}

func (s *gormPostStore) Insert(ctx context.Context, post *models.Post) error {
	return s.db.WithContext(ctx).Create(post).Error
}

func (s *gormPostStore) Update(ctx context.Context, post *models.Post) error {
	return s.db.WithContext(ctx).Save(post).Error
}

func (s *gormPostStore) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Delete(&models.Post{}, id).Error
}

type gormOtpStore struct {
	db *gorm.DB
}

func (s *gormOtpStore) FindByEmail(ctx context.Context, email string) (*models.OtpRecord, error) {
	var rec models.OtpRecord
	return firstOrNil(s.db.WithContext(ctx).Where("email = ?", email), &rec)
}

func (s *gormOtpStore) Upsert(ctx context.Context, rec *models.OtpRecord) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "expires_at", "updated_at"}),
	}).Create(rec).Error
}

type gormNotificationStore struct {
	db *gorm.DB
}

func (s *gormNotificationStore) Insert(ctx context.Context, n *models.Notification) error {
	return s.db.WithContext(ctx).Create(n).Error
}

func (s *gormNotificationStore) FindByID(ctx context.Context, id uint) (*models.Notification, error) {
	var n models.Notification
	return firstOrNil(s.db.WithContext(ctx).Where("id = ?", id), &n)
}

func (s *gormNotificationStore) FindByUser(ctx context.Context, userID uint, limit int) ([]models.Notification, error) {
	var out []models.Notification
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (s *gormNotificationStore) Update(ctx context.Context, n *models.Notification) error {
	return s.db.WithContext(ctx).Save(n).Error
}

func (s *gormNotificationStore) MarkAllRead(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error
}
