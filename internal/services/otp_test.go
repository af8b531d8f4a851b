package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codewithemmax/WordLinkapp/internal/store"
)

// fakeNotifier records sent messages in memory.
type fakeNotifier struct {
	sent []string // message bodies, in order
	err  error
}

func (f *fakeNotifier) Send(ctx context.Context, to, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, body)
	return nil
}

var codePattern = regexp.MustCompile(`\d{6}`)

func (f *fakeNotifier) lastCode(t *testing.T) string {
	t.Helper()
	require.NotEmpty(t, f.sent)
	code := codePattern.FindString(f.sent[len(f.sent)-1])
	require.Len(t, code, 6)
	return code
}

func newOtpFixture(t *testing.T) (*OtpService, *fakeNotifier, *store.Stores) {
	t.Helper()
	stores := store.NewMemoryStores()
	notifier := &fakeNotifier{}
	return NewOtpService(stores.Otps, notifier), notifier, stores
}

func TestOtpIssueAndVerify(t *testing.T) {
	svc, notifier, _ := newOtpFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Issue(ctx, "alice@example.com"))
	code := notifier.lastCode(t)

	res, err := svc.Verify(ctx, "alice@example.com", code)
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Empty(t, res.Reason)
}

func TestOtpVerifyUnknownEmail(t *testing.T) {
	svc, _, _ := newOtpFixture(t)

	res, err := svc.Verify(context.Background(), "nobody@example.com", "123456")
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, OtpReasonNotFound, res.Reason)
}

func TestOtpVerifyMismatch(t *testing.T) {
	svc, notifier, _ := newOtpFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Issue(ctx, "alice@example.com"))
	code := notifier.lastCode(t)

	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}
	res, err := svc.Verify(ctx, "alice@example.com", wrong)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, OtpReasonMismatch, res.Reason)

	// The live code is still usable after a bad guess.
	res, err = svc.Verify(ctx, "alice@example.com", code)
	require.NoError(t, err)
	assert.True(t, res.OK)
}

func TestOtpReissueReplacesCode(t *testing.T) {
	svc, notifier, _ := newOtpFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Issue(ctx, "alice@example.com"))
	first := notifier.lastCode(t)

	// Re-issue until the fresh code differs; the generator may repeat.
	second := first
	for i := 0; second == first && i < 10; i++ {
		require.NoError(t, svc.Issue(ctx, "alice@example.com"))
		second = notifier.lastCode(t)
	}
	require.NotEqual(t, first, second)

	res, err := svc.Verify(ctx, "alice@example.com", first)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, OtpReasonMismatch, res.Reason)

	res, err = svc.Verify(ctx, "alice@example.com", second)
	require.NoError(t, err)
	assert.True(t, res.OK)
}

func TestOtpExpiry(t *testing.T) {
	svc, notifier, _ := newOtpFixture(t)
	ctx := context.Background()

	issued := time.Now()
	svc.now = func() time.Time { return issued }

	require.NoError(t, svc.Issue(ctx, "alice@example.com"))
	code := notifier.lastCode(t)

	// Just inside the window.
	svc.now = func() time.Time { return issued.Add(otpTTL) }
	res, err := svc.Verify(ctx, "alice@example.com", code)
	require.NoError(t, err)
	assert.True(t, res.OK)

	// Just past it.
	svc.now = func() time.Time { return issued.Add(otpTTL + time.Second) }
	res, err = svc.Verify(ctx, "alice@example.com", code)
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, OtpReasonExpired, res.Reason)
}

func TestOtpExpiredCodeMismatchWinsOverExpiry(t *testing.T) {
	svc, notifier, _ := newOtpFixture(t)
	ctx := context.Background()

	issued := time.Now()
	svc.now = func() time.Time { return issued }
	require.NoError(t, svc.Issue(ctx, "alice@example.com"))
	_ = notifier.lastCode(t)

	// A wrong code against an expired record reports mismatch, not expiry.
	svc.now = func() time.Time { return issued.Add(time.Hour) }
	res, err := svc.Verify(ctx, "alice@example.com", "no-match")
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, OtpReasonMismatch, res.Reason)
}

func TestOtpDispatchFailureLeavesNoRecord(t *testing.T) {
	svc, notifier, stores := newOtpFixture(t)
	ctx := context.Background()

	notifier.err = errors.New("smtp: connection refused")
	err := svc.Issue(ctx, "alice@example.com")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDispatch)

	rec, err := stores.Otps.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestOtpDispatchFailureKeepsPreviousCode(t *testing.T) {
	svc, notifier, _ := newOtpFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.Issue(ctx, "alice@example.com"))
	code := notifier.lastCode(t)

	notifier.err = errors.New("smtp: connection refused")
	assert.ErrorIs(t, svc.Issue(ctx, "alice@example.com"), ErrDispatch)

	res, err := svc.Verify(ctx, "alice@example.com", code)
	require.NoError(t, err)
	assert.True(t, res.OK)
}
