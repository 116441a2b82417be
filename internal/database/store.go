// Package database defines the user document store contract and its MongoDB
// and in-memory implementations.
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"portforyou/internal/models"
)

// ErrNotFound is returned when no document matches.
var ErrNotFound = errors.New("document not found")

// DuplicateKeyError reports a unique index violation on Field.
type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key on %s", e.Field)
}

// ValidationError reports a document that failed store-level validation.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return "document validation failed: " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Filter selects documents. All conditions must hold.
type Filter struct {
	// Equal matches dot paths against exact values.
	Equal map[string]any
	// After matches dot paths holding a time strictly after the given instant.
	After map[string]time.Time
}

// Update is one atomic set of writes against a single document. Paths use
// dot notation and address nested fields directly.
type Update struct {
	Set      map[string]any
	Inc      map[string]int
	Push     map[string]any // append one element to an array
	AddToSet map[string]any // append if not already present
	Pull     map[string]any // remove every equal element
	Unset    []string
	// Require lists paths that must already exist for the update to match.
	Require []string
	// Match lists paths that must hold exactly these values for the update
	// to match. A document that no longer matches yields ErrNotFound.
	Match map[string]any
}

// IsEmpty reports whether the update writes nothing.
func (u Update) IsEmpty() bool {
	return len(u.Set) == 0 && len(u.Inc) == 0 && len(u.Push) == 0 &&
		len(u.AddToSet) == 0 && len(u.Pull) == 0 && len(u.Unset) == 0
}

// UpdateOptions tunes UpdateByID.
type UpdateOptions struct {
	// ReturnUpdated returns the post-update document instead of the pre-image.
	ReturnUpdated bool
	// Validate rejects the update if the resulting document is invalid.
	// MongoStore never bypasses the collection validator, so there every
	// update is checked against the installed schema.
	Validate bool
}

// Store is the document store the services depend on. Each call is atomic at
// the single-document level.
type Store interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	FindOne(ctx context.Context, filter Filter) (*models.User, error)
	Find(ctx context.Context, filter Filter) ([]models.User, error)
	UpdateByID(ctx context.Context, id string, update Update, opts UpdateOptions) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (*models.User, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
}
