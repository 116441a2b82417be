package mail

import (
	"context"
	"log/slog"
)

// LogSender records that an email would have been sent. The reset link is
// never logged.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) SendPasswordReset(ctx context.Context, msg PasswordReset) error {
	s.logger.InfoContext(ctx, "password reset email not delivered", "to", msg.To, "expires_in", msg.ExpiresIn.String())
	return nil
}

func (s *LogSender) SendLockoutAlert(ctx context.Context, msg LockoutAlert) error {
	s.logger.InfoContext(ctx, "lockout alert email not delivered", "to", msg.To, "locked_until", msg.LockedUntil)
	return nil
}
