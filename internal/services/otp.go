package services

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/codewithemmax/WordLinkapp/internal/models"
	"github.com/codewithemmax/WordLinkapp/internal/store"
)

// Notifier is the external transactional-message capability.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

const otpTTL = time.Minute

// Verify failure reasons.
const (
	OtpReasonNotFound = "not_found"
	OtpReasonMismatch = "mismatch"
	OtpReasonExpired  = "expired"
)

type VerifyResult struct {
	OK     bool   `json:"success"`
	Reason string `json:"reason,omitempty"`
}

// OtpService issues and validates single-use, time-boxed codes keyed by
// email address. One live record per address; a new issue replaces it.
type OtpService struct {
	store    store.OtpStore
	notifier Notifier
	ttl      time.Duration
	now      func() time.Time
}

func NewOtpService(otps store.OtpStore, notifier Notifier) *OtpService {
	return &OtpService{
		store:    otps,
		notifier: notifier,
		ttl:      otpTTL,
		now:      time.Now,
	}
}

// Issue generates a fresh 6-digit code and mails it. The record is upserted
// only after the notifier accepts the message, so a dispatch failure leaves
// the previous code (if any) valid and is reported as ErrDispatch.
func (s *OtpService) Issue(ctx context.Context, email string) error {
	code := fmt.Sprintf("%d", 100000+rand.Intn(900000))

	subject := "Verify your email address"
	body := fmt.Sprintf("Your verification code is: %s\nPlease use this code to verify your email address on Wordlink.", code)
	if err := s.notifier.Send(ctx, email, subject, body); err != nil {
		return fmt.Errorf("%w: %w", ErrDispatch, err)
	}

	return s.store.Upsert(ctx, &models.OtpRecord{
		Email:     email,
		Code:      code,
		ExpiresAt: s.now().Add(s.ttl),
	})
}

// Verify checks the candidate code against the live record for the address.
// Comparison is exact; expiry is evaluated at verification time.
func (s *OtpService) Verify(ctx context.Context, email, code string) (*VerifyResult, error) {
	rec, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return &VerifyResult{Reason: OtpReasonNotFound}, nil
	}
	if rec.Code != code {
		return &VerifyResult{Reason: OtpReasonMismatch}, nil
	}
	if s.now().After(rec.ExpiresAt) {
		return &VerifyResult{Reason: OtpReasonExpired}, nil
	}
	return &VerifyResult{OK: true}, nil
}
