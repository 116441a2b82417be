// Package auth implements registration, login with lockout, password reset
// and session tokens.
package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net/url"
	"time"

	"portforyou/internal/apperrors"
	"portforyou/internal/database"
	"portforyou/internal/mail"
	"portforyou/internal/models"
	"portforyou/internal/util"
)

const (
	MaxLoginAttempts = 5
	LockDuration     = 15 * time.Minute
	ResetTokenTTL    = time.Hour
	resetTokenBytes  = 32
)

const (
	msgInvalidCredentials = "Invalid email or password"
	msgEmailTaken         = "Email already exists"
	msgInvalidResetToken  = "Invalid or expired password reset token"
)

// Service holds the account security state machine.
type Service struct {
	store    database.Store
	tokens   *TokenIssuer
	mailer   mail.Sender
	logger   *slog.Logger
	resetURL string
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithResetURL sets the frontend page that receives reset tokens.
func WithResetURL(u string) Option {
	return func(s *Service) { s.resetURL = u }
}

// NewService wires the account services to a store, token issuer and mailer.
func NewService(store database.Store, tokens *TokenIssuer, mailer mail.Sender, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		store:    store,
		tokens:   tokens,
		mailer:   mailer,
		logger:   logger,
		resetURL: "http://localhost:3000/reset-password",
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Session is returned by Register and Login.
type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// RegisterInput carries the registration form.
type RegisterInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// Register creates an account with default templates and returns a session.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	email := models.NormalizeEmail(in.Email)
	if email == "" {
		return nil, apperrors.Validation("Email is required")
	}

	_, err := s.store.FindOne(ctx, database.Filter{Equal: map[string]any{"email": email}})
	switch {
	case err == nil:
		return nil, apperrors.Validation(msgEmailTaken)
	case !errors.Is(err, database.ErrNotFound):
		return nil, apperrors.Internal("lookup user by email", err)
	}

	if !util.ValidateEmail(email) {
		return nil, apperrors.Validation("Invalid email format")
	}
	if !util.ValidateUsername(in.Username) {
		return nil, apperrors.Validation("Username is required")
	}

	user := models.NewUser(email, in.Username, s.now())
	if err := user.SetPassword(in.Password); err != nil {
		if errors.Is(err, models.ErrPasswordTooShort) {
			return nil, apperrors.Validation(err.Error())
		}
		return nil, apperrors.Internal("hash password", err)
	}

	user, err = s.store.Insert(ctx, user)
	if err != nil {
		var dup *database.DuplicateKeyError
		if errors.As(err, &dup) {
			return nil, apperrors.Validation(msgEmailTaken)
		}
		return nil, apperrors.Internal("insert user", err)
	}
	s.logger.InfoContext(ctx, "user registered", "user_id", user.HexID())

	return s.session(user)
}

// Login checks credentials and applies the lockout policy.
func (s *Service) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.store.FindOne(ctx, database.Filter{Equal: map[string]any{"email": models.NormalizeEmail(email)}})
	if errors.Is(err, database.ErrNotFound) {
		models.CheckDecoyPassword(password)
		return nil, apperrors.Authentication(msgInvalidCredentials)
	}
	if err != nil {
		return nil, apperrors.Internal("lookup user by email", err)
	}

	user, err = s.checkLock(ctx, user)
	if err != nil {
		return nil, err
	}

	if !user.CheckPassword(password) {
		s.recordFailure(ctx, user)
		return nil, apperrors.Authentication(msgInvalidCredentials)
	}

	if user.LoginAttempts != 0 || user.Locked {
		user, err = s.store.UpdateByID(ctx, user.HexID(), database.Update{
			Set: map[string]any{"loginAttempts": 0, "locked": false},
		}, database.UpdateOptions{ReturnUpdated: true})
		if err != nil {
			return nil, apperrors.Internal("reset login attempts", err)
		}
	}
	s.logger.InfoContext(ctx, "user logged in", "user_id", user.HexID())

	return s.session(user)
}

// checkLock rejects a locked account inside its lock window and clears an
// expired lock.
func (s *Service) checkLock(ctx context.Context, user *models.User) (*models.User, error) {
	if !user.Locked || user.LastLoginAttempt == nil {
		return user, nil
	}
	now := s.now()
	until := user.LastLoginAttempt.Add(LockDuration)
	if now.Before(until) {
		minutes := int(math.Ceil(until.Sub(now).Minutes()))
		return nil, apperrors.Authentication(fmt.Sprintf("Account is locked. Please try again in %d minutes", minutes))
	}

	unlocked, err := s.store.UpdateByID(ctx, user.HexID(), database.Update{
		Set: map[string]any{"loginAttempts": 0, "locked": false},
	}, database.UpdateOptions{ReturnUpdated: true})
	if err != nil {
		return nil, apperrors.Internal("unlock account", err)
	}
	s.logger.InfoContext(ctx, "account lock expired", "user_id", user.HexID())
	return unlocked, nil
}

// recordFailure increments the attempt counter atomically and locks the
// account once it reaches MaxLoginAttempts, alerting the owner by email.
// Store and mail errors are logged only so the caller's response stays
// uniform.
func (s *Service) recordFailure(ctx context.Context, user *models.User) {
	at := s.now()
	updated, err := s.store.UpdateByID(ctx, user.HexID(), database.Update{
		Inc: map[string]int{"loginAttempts": 1},
		Set: map[string]any{"lastLoginAttempt": at},
	}, database.UpdateOptions{ReturnUpdated: true})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to record login failure", "user_id", user.HexID(), "error", err)
		return
	}
	if updated.LoginAttempts < MaxLoginAttempts || updated.Locked {
		return
	}
	_, err = s.store.UpdateByID(ctx, user.HexID(), database.Update{
		Set: map[string]any{"locked": true},
	}, database.UpdateOptions{})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to lock account", "user_id", user.HexID(), "error", err)
		return
	}
	s.logger.WarnContext(ctx, "account locked after repeated login failures",
		"user_id", user.HexID(), "attempts", updated.LoginAttempts)

	err = s.mailer.SendLockoutAlert(ctx, mail.LockoutAlert{
		To:          updated.Email,
		Username:    updated.Username,
		LockedUntil: at.Add(LockDuration),
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to send lockout alert email", "user_id", user.HexID(), "error", err)
	}
}

// GeneratePasswordResetToken stores a fresh reset token for email and mails
// the reset link. Unknown emails succeed silently.
func (s *Service) GeneratePasswordResetToken(ctx context.Context, email string) error {
	user, err := s.store.FindOne(ctx, database.Filter{Equal: map[string]any{"email": models.NormalizeEmail(email)}})
	if errors.Is(err, database.ErrNotFound) {
		s.logger.DebugContext(ctx, "password reset requested for unknown email")
		return nil
	}
	if err != nil {
		return apperrors.Internal("lookup user by email", err)
	}

	token, err := generateResetToken()
	if err != nil {
		return apperrors.Internal("generate reset token", err)
	}
	expires := s.now().Add(ResetTokenTTL)
	_, err = s.store.UpdateByID(ctx, user.HexID(), database.Update{
		Set: map[string]any{"passwordResetToken": token, "passwordResetExpires": expires},
	}, database.UpdateOptions{Validate: true})
	if err != nil {
		return apperrors.Internal("store reset token", err)
	}

	link, err := s.resetLink(token)
	if err != nil {
		return apperrors.Internal("build reset link", err)
	}
	err = s.mailer.SendPasswordReset(ctx, mail.PasswordReset{
		To:        user.Email,
		Username:  user.Username,
		ResetURL:  link,
		ExpiresIn: ResetTokenTTL,
	})
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to send password reset email", "user_id", user.HexID(), "error", err)
	}
	return nil
}

// ResetPassword sets a new password for the holder of a live reset token and
// clears the token.
func (s *Service) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return apperrors.Validation(msgInvalidResetToken)
	}
	user, err := s.store.FindOne(ctx, database.Filter{
		Equal: map[string]any{"passwordResetToken": token},
		After: map[string]time.Time{"passwordResetExpires": s.now()},
	})
	if errors.Is(err, database.ErrNotFound) {
		return apperrors.Validation(msgInvalidResetToken)
	}
	if err != nil {
		return apperrors.Internal("lookup reset token", err)
	}

	hash, err := models.HashPassword(newPassword)
	if err != nil {
		if errors.Is(err, models.ErrPasswordTooShort) {
			return apperrors.Validation(err.Error())
		}
		return apperrors.Internal("hash password", err)
	}

	// The token must still be in place at write time, so only one of
	// several concurrent redemptions succeeds.
	_, err = s.store.UpdateByID(ctx, user.HexID(), database.Update{
		Set:   map[string]any{"passwordHash": hash},
		Unset: []string{"passwordResetToken", "passwordResetExpires"},
		Match: map[string]any{"passwordResetToken": token},
	}, database.UpdateOptions{Validate: true})
	if errors.Is(err, database.ErrNotFound) {
		return apperrors.Validation(msgInvalidResetToken)
	}
	if err != nil {
		return apperrors.Internal("update password", err)
	}
	s.logger.InfoContext(ctx, "password reset", "user_id", user.HexID())
	return nil
}

// Authenticate verifies a session token and loads its user.
func (s *Service) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}
	user, err := s.store.FindByID(ctx, claims.UserID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, apperrors.Authentication("User not found")
	}
	if err != nil {
		return nil, apperrors.Internal("load session user", err)
	}
	return user, nil
}

func (s *Service) session(user *models.User) (*Session, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, apperrors.Internal("sign session token", err)
	}
	return &Session{Token: token, User: user}, nil
}

func (s *Service) resetLink(token string) (string, error) {
	u, err := url.Parse(s.resetURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("token", token)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// generateResetToken creates a 32 byte random token, hex encoded.
func generateResetToken() (string, error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
