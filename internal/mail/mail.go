// Package mail sends transactional emails.
package mail

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"
	"time"
)

// PasswordReset is the content of a password reset email.
type PasswordReset struct {
	To        string
	Username  string
	ResetURL  string
	ExpiresIn time.Duration
}

// LockoutAlert tells a user their account was locked after repeated failed
// logins.
type LockoutAlert struct {
	To          string
	Username    string
	LockedUntil time.Time
}

// Sender delivers transactional emails. Implementations are swapped for
// fakes in tests.
type Sender interface {
	SendPasswordReset(ctx context.Context, msg PasswordReset) error
	SendLockoutAlert(ctx context.Context, msg LockoutAlert) error
}

// New returns a Resend-backed sender when apiKey is set, otherwise a sender
// that only logs.
func New(apiKey, from string, logger *slog.Logger) Sender {
	if apiKey == "" {
		logger.Warn("RESEND_API_KEY not set, emails will not be delivered")
		return NewLogSender(logger)
	}
	return NewResendSender(apiKey, from)
}

const resetSubject = "Reset your PortForYou password"

var resetTemplate = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #111827;">
  <p>Hi {{.Username}},</p>
  <p>We received a request to reset the password for your PortForYou account.</p>
  <p><a href="{{.ResetURL}}" style="display:inline-block;padding:10px 16px;background:#111827;color:#ffffff;text-decoration:none;border-radius:6px;">Reset password</a></p>
  <p>This link expires in {{.Minutes}} minutes. If you did not ask for a reset you can ignore this email.</p>
</body>
</html>
`))

// RenderPasswordReset returns the HTML body for msg.
func RenderPasswordReset(msg PasswordReset) (string, error) {
	name := msg.Username
	if name == "" {
		name = "there"
	}
	var buf bytes.Buffer
	err := resetTemplate.Execute(&buf, struct {
		Username string
		ResetURL string
		Minutes  int
	}{name, msg.ResetURL, int(msg.ExpiresIn.Minutes())})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

const lockoutSubject = "Alert: Suspicious login attempts on your PortForYou account"

var lockoutTemplate = template.Must(template.New("lockout").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #111827;">
  <p>Hi {{.Username}},</p>
  <p>Multiple failed login attempts were detected on your PortForYou account. It has been temporarily locked until {{.LockedUntil}}.</p>
  <p>If this wasn't you, reset your password to secure your account.</p>
</body>
</html>
`))

// RenderLockoutAlert returns the HTML body for msg.
func RenderLockoutAlert(msg LockoutAlert) (string, error) {
	name := msg.Username
	if name == "" {
		name = "there"
	}
	var buf bytes.Buffer
	err := lockoutTemplate.Execute(&buf, struct {
		Username    string
		LockedUntil string
	}{name, msg.LockedUntil.UTC().Format(time.RFC1123)})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
