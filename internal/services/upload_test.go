package services

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubBlobStore fails the first failCount calls, then succeeds.
type stubBlobStore struct {
	failCount int32
	hang      time.Duration
	url       string

	calls atomic.Int32
}

func (s *stubBlobStore) Upload(ctx context.Context, localPath, folder string) (string, error) {
	n := s.calls.Add(1)
	if s.hang > 0 {
		select {
		case <-time.After(s.hang):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	if n <= s.failCount {
		return "", errors.New("upstream unavailable")
	}
	return s.url, nil
}

func newTestUploadService(blobs BlobStore) *UploadService {
	svc := NewUploadService(blobs)
	svc.attemptTimeout = 50 * time.Millisecond
	svc.backoffBase = time.Millisecond
	return svc
}

func makeTempUpload(t *testing.T) string {
	t.Helper()
	f, err := os.CreateTemp(t.TempDir(), "upload-*.png")
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func TestUploadRetriesThenSucceeds(t *testing.T) {
	stub := &stubBlobStore{failCount: 2, url: "https://cdn/final.png"}
	svc := newTestUploadService(stub)
	path := makeTempUpload(t)

	url, err := svc.UploadWithRetry(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/final.png", url)
	assert.Equal(t, int32(3), stub.calls.Load())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "temp file should be removed")
}

func TestUploadExhaustsAttempts(t *testing.T) {
	stub := &stubBlobStore{failCount: 10}
	svc := newTestUploadService(stub)
	path := makeTempUpload(t)

	_, err := svc.UploadWithRetry(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.Contains(t, err.Error(), "upstream unavailable")
	assert.Equal(t, int32(3), stub.calls.Load())

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "temp file should be removed on failure too")
}

func TestUploadAttemptTimeout(t *testing.T) {
	stub := &stubBlobStore{failCount: 10, hang: time.Second}
	svc := newTestUploadService(stub)
	path := makeTempUpload(t)

	start := time.Now()
	_, err := svc.UploadWithRetry(context.Background(), path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.ErrorIs(t, err, ErrUploadTimeout)
	// Three 50ms attempts plus millisecond backoffs, never the stub's full hang.
	assert.Less(t, time.Since(start), 600*time.Millisecond)
}

func TestUploadCancelledContext(t *testing.T) {
	stub := &stubBlobStore{failCount: 10}
	svc := newTestUploadService(stub)
	svc.backoffBase = time.Second
	path := makeTempUpload(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.UploadWithRetry(ctx, path)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.LessOrEqual(t, stub.calls.Load(), int32(1), "no retry after the caller gave up")

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestUploadMissingTempFileIsNotFatal(t *testing.T) {
	stub := &stubBlobStore{url: "https://cdn/ok.png"}
	svc := newTestUploadService(stub)

	// Cleanup of an already-gone path must not panic or fail the upload.
	url, err := svc.UploadWithRetry(context.Background(), "/nonexistent/upload.png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/ok.png", url)
}
