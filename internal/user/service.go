// Package user implements account management, the template update engine and
// visit analytics on top of the document store.
package user

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"portforyou/internal/apperrors"
	"portforyou/internal/database"
	"portforyou/internal/dotpath"
	"portforyou/internal/models"
	"portforyou/internal/util"
)

// Service owns every user-scoped operation after authentication.
type Service struct {
	store  database.Store
	logger *slog.Logger
	now    func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for visit timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// NewService returns a Service backed by store.
func NewService(store database.Store, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{store: store, logger: logger, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// authorize allows the owner of userID, and admins when adminAllowed is set.
func authorize(actor *models.User, userID string, adminAllowed bool) error {
	if actor == nil {
		return apperrors.Authentication("Authentication required")
	}
	if actor.HexID() == userID || (adminAllowed && actor.IsAdmin) {
		return nil
	}
	return apperrors.Authorization("Not authorized to access this user")
}

// GetUser returns the user with id to its owner or an admin.
func (s *Service) GetUser(ctx context.Context, actor *models.User, id string) (*models.User, error) {
	if err := authorize(actor, id, true); err != nil {
		return nil, err
	}
	u, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, translate(err, "find user")
	}
	return u, nil
}

// GetUserByEmail looks a user up by email. Non-admins may only look up their
// own address; any other address is refused before the store is queried, so
// the answer does not depend on whether the account exists.
func (s *Service) GetUserByEmail(ctx context.Context, actor *models.User, email string) (*models.User, error) {
	if actor == nil {
		return nil, apperrors.Authentication("Authentication required")
	}
	email = models.NormalizeEmail(email)
	if !actor.IsAdmin && email != actor.Email {
		return nil, apperrors.Authorization("Not authorized to access this user")
	}
	u, err := s.store.FindOne(ctx, database.Filter{Equal: map[string]any{"email": email}})
	if err != nil {
		return nil, translate(err, "find user by email")
	}
	return u, nil
}

// ListUsers returns every user. Only admins may list.
func (s *Service) ListUsers(ctx context.Context, actor *models.User) ([]models.User, error) {
	if actor == nil {
		return nil, apperrors.Authentication("Authentication required")
	}
	if !actor.IsAdmin {
		return nil, apperrors.Authorization("Admin access required")
	}
	users, err := s.store.Find(ctx, database.Filter{})
	if err != nil {
		return nil, translate(err, "list users")
	}
	return users, nil
}

// UpdateUser applies a sparse account patch. A password in the patch is
// hashed into passwordHash; it is never stored as given.
func (s *Service) UpdateUser(ctx context.Context, actor *models.User, id string, patch models.UserPatch) (*models.User, error) {
	if err := authorize(actor, id, false); err != nil {
		return nil, err
	}

	if patch.Email != nil {
		email := models.NormalizeEmail(*patch.Email)
		if !util.ValidateEmail(email) {
			return nil, apperrors.Validation("Invalid email format")
		}
		patch.Email = &email
	}
	if patch.Username != nil && !util.ValidateUsername(*patch.Username) {
		return nil, apperrors.Validation("Username is required")
	}
	if patch.Subscription != nil && !patch.Subscription.Valid() {
		return nil, apperrors.Validation("Invalid subscription")
	}

	set := dotpath.Flatten("", patch)
	if patch.Password != nil {
		hash, err := models.HashPassword(*patch.Password)
		if err != nil {
			if errors.Is(err, models.ErrPasswordTooShort) {
				return nil, apperrors.Validation(err.Error())
			}
			return nil, apperrors.Internal("hash password", err)
		}
		set["passwordHash"] = hash
	}
	return s.set(ctx, id, set)
}

// DeleteUser removes the user with id. It reports false when nothing was
// deleted.
func (s *Service) DeleteUser(ctx context.Context, actor *models.User, id string) (bool, error) {
	if err := authorize(actor, id, true); err != nil {
		return false, err
	}
	ok, err := s.store.DeleteByID(ctx, id)
	if err != nil {
		return false, translate(err, "delete user")
	}
	if ok {
		s.logger.InfoContext(ctx, "user deleted", "user_id", id, "by", actor.HexID())
	}
	return ok, nil
}

// AddSelectedTemplate adds name to the user's selected templates. Adding a
// name twice is a no-op.
func (s *Service) AddSelectedTemplate(ctx context.Context, actor *models.User, id, name string) (*models.User, error) {
	if err := authorize(actor, id, false); err != nil {
		return nil, err
	}
	v, err := models.ParseVariant(name)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return s.update(ctx, id, database.Update{
		AddToSet: map[string]any{"selectedTemplates": string(v)},
	})
}

// RemoveSelectedTemplate removes name from the user's selected templates.
func (s *Service) RemoveSelectedTemplate(ctx context.Context, actor *models.User, id, name string) (*models.User, error) {
	if err := authorize(actor, id, false); err != nil {
		return nil, err
	}
	v, err := models.ParseVariant(name)
	if err != nil {
		return nil, apperrors.Validation(err.Error())
	}
	return s.update(ctx, id, database.Update{
		Pull: map[string]any{"selectedTemplates": string(v)},
	})
}

// UpdatePreferences sets the provided preference fields and keeps the rest.
func (s *Service) UpdatePreferences(ctx context.Context, actor *models.User, id string, patch models.PreferencesPatch) (*models.User, error) {
	if err := authorize(actor, id, false); err != nil {
		return nil, err
	}
	return s.set(ctx, id, dotpath.Flatten("preferences", patch))
}

// set writes the flattened paths, or returns the current user when there is
// nothing to write.
func (s *Service) set(ctx context.Context, id string, paths map[string]any) (*models.User, error) {
	if len(paths) == 0 {
		u, err := s.store.FindByID(ctx, id)
		if err != nil {
			return nil, translate(err, "find user")
		}
		return u, nil
	}
	return s.update(ctx, id, database.Update{Set: paths})
}

func (s *Service) update(ctx context.Context, id string, update database.Update) (*models.User, error) {
	u, err := s.store.UpdateByID(ctx, id, update, database.UpdateOptions{ReturnUpdated: true, Validate: true})
	if err != nil {
		return nil, translate(err, "update user")
	}
	return u, nil
}

// translate maps store errors onto the application error kinds.
func translate(err error, op string) error {
	var (
		dup  *database.DuplicateKeyError
		verr *database.ValidationError
	)
	switch {
	case errors.Is(err, database.ErrNotFound):
		return apperrors.NotFound("User")
	case errors.As(err, &dup):
		return apperrors.DuplicateKey(dup.Field)
	case errors.As(err, &verr):
		return apperrors.Validation(verr.Error())
	default:
		return apperrors.Internal(op, err)
	}
}
