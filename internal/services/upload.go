package services

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"
)

// BlobStore is the external image-hosting capability.
type BlobStore interface {
	Upload(ctx context.Context, localPath, folder string) (url string, err error)
}

const (
	defaultUploadFolder   = "wordlink_posts"
	defaultMaxAttempts    = 3
	defaultAttemptTimeout = 60 * time.Second
	defaultBackoffBase    = 500 * time.Millisecond
)

// UploadService wraps the blob store with retry, per-attempt timeout and
// exponential backoff. The retry loop blocks only the request that owns it.
type UploadService struct {
	blobs          BlobStore
	folder         string
	maxAttempts    int
	attemptTimeout time.Duration
	backoffBase    time.Duration
}

func NewUploadService(blobs BlobStore) *UploadService {
	return &UploadService{
		blobs:          blobs,
		folder:         defaultUploadFolder,
		maxAttempts:    defaultMaxAttempts,
		attemptTimeout: defaultAttemptTimeout,
		backoffBase:    defaultBackoffBase,
	}
}

// UploadWithRetry uploads the file at localPath and returns its public URL.
// The local temp file is removed on every exit path; a caller seeing an
// error must not persist anything referencing the attempted upload.
func (s *UploadService) UploadWithRetry(ctx context.Context, localPath string) (string, error) {
	defer func() {
		if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
			log.Printf("Failed to remove temp file %s: %v", localPath, err)
		}
	}()

	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		url, err := s.attempt(ctx, localPath)
		if err == nil {
			return url, nil
		}
		lastErr = err
		log.Printf("Upload attempt %d/%d failed: %v", attempt, s.maxAttempts, err)

		if attempt < s.maxAttempts {
			// backoff = base * 2^attempt
			delay := s.backoffBase << uint(attempt)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return "", fmt.Errorf("%w: %w", ErrUploadFailed, ctx.Err())
			}
		}
	}
	return "", fmt.Errorf("%w after %d attempts: %w", ErrUploadFailed, s.maxAttempts, lastErr)
}

// attempt runs one upload bounded by the per-attempt timeout. An attempt
// that overruns counts as a failure, not a crash; the goroutine is left to
// finish against the cancelled context.
func (s *UploadService) attempt(ctx context.Context, localPath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.attemptTimeout)
	defer cancel()

	type result struct {
		url string
		err error
	}
	done := make(chan result, 1)
	go func() {
		url, err := s.blobs.Upload(ctx, localPath, s.folder)
		done <- result{url: url, err: err}
	}()

	select {
	case r := <-done:
		return r.url, r.err
	case <-ctx.Done():
		return "", fmt.Errorf("%w after %s", ErrUploadTimeout, s.attemptTimeout)
	}
}
