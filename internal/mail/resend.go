package mail

import (
	"context"
	"fmt"

	"github.com/resendlabs/resend-go"
)

// ResendSender delivers email through the Resend API.
type ResendSender struct {
	client *resend.Client
	from   string
}

func NewResendSender(apiKey, from string) *ResendSender {
	return &ResendSender{client: resend.NewClient(apiKey), from: from}
}

func (s *ResendSender) SendPasswordReset(ctx context.Context, msg PasswordReset) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	html, err := RenderPasswordReset(msg)
	if err != nil {
		return fmt.Errorf("render password reset email: %w", err)
	}
	_, err = s.client.Emails.Send(&resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: resetSubject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("failed to send password reset email via Resend: %w", err)
	}
	return nil
}

func (s *ResendSender) SendLockoutAlert(ctx context.Context, msg LockoutAlert) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	html, err := RenderLockoutAlert(msg)
	if err != nil {
		return fmt.Errorf("render lockout alert email: %w", err)
	}
	_, err = s.client.Emails.Send(&resend.SendEmailRequest{
		From:    s.from,
		To:      []string{msg.To},
		Subject: lockoutSubject,
		Html:    html,
	})
	if err != nil {
		return fmt.Errorf("failed to send lockout alert email via Resend: %w", err)
	}
	return nil
}
