package mail

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPasswordReset(t *testing.T) {
	html, err := RenderPasswordReset(PasswordReset{
		To:        "a@example.com",
		Username:  "<alice>",
		ResetURL:  "http://localhost:3000/reset-password?token=abc",
		ExpiresIn: time.Hour,
	})
	require.NoError(t, err)

	assert.Contains(t, html, "&lt;alice&gt;")
	assert.Contains(t, html, "token=abc")
	assert.Contains(t, html, "60 minutes")
}

func TestRenderPasswordResetWithoutName(t *testing.T) {
	html, err := RenderPasswordReset(PasswordReset{ResetURL: "http://x/reset?token=t", ExpiresIn: time.Hour})
	require.NoError(t, err)
	assert.Contains(t, html, "Hi there,")
}

func TestLogSenderOmitsLink(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSender(slog.New(slog.NewTextHandler(&buf, nil)))

	err := s.SendPasswordReset(context.Background(), PasswordReset{
		To:        "a@example.com",
		ResetURL:  "http://x/reset?token=secret-token",
		ExpiresIn: time.Hour,
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "a@example.com")
	assert.NotContains(t, buf.String(), "secret-token")
}

func TestRenderLockoutAlert(t *testing.T) {
	until := time.Date(2026, 3, 1, 12, 15, 0, 0, time.UTC)
	html, err := RenderLockoutAlert(LockoutAlert{To: "a@example.com", Username: "alice", LockedUntil: until})
	require.NoError(t, err)

	assert.Contains(t, html, "Hi alice,")
	assert.Contains(t, html, until.Format(time.RFC1123))
}

func TestLogSenderLockoutAlert(t *testing.T) {
	var buf bytes.Buffer
	s := NewLogSender(slog.New(slog.NewTextHandler(&buf, nil)))

	err := s.SendLockoutAlert(context.Background(), LockoutAlert{To: "a@example.com", LockedUntil: time.Now()})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "lockout alert")
	assert.Contains(t, buf.String(), "a@example.com")
}

func TestNewPicksSender(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	assert.IsType(t, &LogSender{}, New("", "from@example.com", logger))
	assert.IsType(t, &ResendSender{}, New("re_test", "from@example.com", logger))
}

func TestResendSenderHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewResendSender("re_test", "from@example.com").SendPasswordReset(ctx, PasswordReset{To: "a@example.com"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResendSenderLockoutAlertHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewResendSender("re_test", "from@example.com").SendLockoutAlert(ctx, LockoutAlert{To: "a@example.com"})
	assert.ErrorIs(t, err, context.Canceled)
}
