package database

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portforyou/internal/models"
)

func newTestUser(email string) *models.User {
	u := models.NewUser(email, "tester", time.Now())
	u.PasswordHash = "hash"
	return u
}

func seed(t *testing.T, s *MemoryStore, email string) *models.User {
	t.Helper()
	u, err := s.Insert(context.Background(), newTestUser(email))
	require.NoError(t, err)
	return u
}

func TestMemoryInsertAndFind(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	u := seed(t, s, "a@example.com")

	got, err := s.FindByID(ctx, u.HexID())
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", got.Email)
	assert.Len(t, got.ArikTemplate.Logos, 6)

	got, err = s.FindOne(ctx, Filter{Equal: map[string]any{"email": "a@example.com"}})
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.FindOne(ctx, Filter{Equal: map[string]any{"email": "b@example.com"}})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.FindByID(ctx, "not-an-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryInsertDuplicateEmail(t *testing.T) {
	s := NewMemoryStore()
	seed(t, s, "a@example.com")

	_, err := s.Insert(context.Background(), newTestUser("a@example.com"))
	var dup *DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "email", dup.Field)
}

func TestMemoryReadsAreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	u := seed(t, s, "a@example.com")

	got, err := s.FindByID(ctx, u.HexID())
	require.NoError(t, err)
	got.Username = "mutated"

	again, err := s.FindByID(ctx, u.HexID())
	require.NoError(t, err)
	assert.Equal(t, "tester", again.Username)
}

func TestMemoryUpdateDotPathsPreserveSiblings(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	u := seed(t, s, "a@example.com")

	updated, err := s.UpdateByID(ctx, u.HexID(), Update{
		Set: map[string]any{"novaTemplate.hero.heading": "New heading"},
	}, UpdateOptions{ReturnUpdated: true, Validate: true})
	require.NoError(t, err)

	assert.Equal(t, "New heading", updated.NovaTemplate.Hero.Heading)
	assert.Equal(t, u.NovaTemplate.Hero.Subheading, updated.NovaTemplate.Hero.Subheading)
	assert.Equal(t, u.NovaTemplate.Skills, updated.NovaTemplate.Skills)
}

func TestMemoryUpdateReturnsPreImage(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	u := seed(t, s, "a@example.com")

	before, err := s.UpdateByID(ctx, u.HexID(), Update{
		Set: map[string]any{"username": "renamed"},
	}, UpdateOptions{})
	require.NoError(t, err)
	assert.Equal(t, "tester", before.Username)

	after, err := s.FindByID(ctx, u.HexID())
	require.NoError(t, err)
	assert.Equal(t, "renamed", after.Username)
}

func TestMemoryIncPushAtomic(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	u := seed(t, s, "a@example.com")

	visitor := models.Visitor{IP: "1.2.3.4", Country: "NZ", Browser: "Firefox", Device: models.DeviceDesktop, VisitDate: time.Now()}
	updated, err := s.UpdateByID(ctx, u.HexID(), Update{
		Push: map[string]any{"arikTemplate.analytics.visitors": visitor},
		Inc:  map[string]int{"arikTemplate.analytics.totalVisits": 1},
	}, UpdateOptions{ReturnUpdated: true})
	require.NoError(t, err)
	assert.Equal(t, 1, updated.ArikTemplate.Analytics.TotalVisits)
	require.Len(t, updated.ArikTemplate.Analytics.Visitors, 1)
	assert.Equal(t, "1.2.3.4", updated.ArikTemplate.Analytics.Visitors[0].IP)
}

func TestMemoryUpdateIsAllOrNothing(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	u := seed(t, s, "a@example.com")

	_, err := s.UpdateByID(ctx, u.HexID(), Update{
		Set: map[string]any{"username": "changed"},
		Inc: map[string]int{"email": 1},
	}, UpdateOptions{})
	require.Error(t, err)

	got, err := s.FindByID(ctx, u.HexID())
	require.NoError(t, err)
	assert.Equal(t, "tester", got.Username)
}

func TestMemoryUpdateValidation(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	u := seed(t, s, "a@example.com")

	_, err := s.UpdateByID(ctx, u.HexID(), Update{
		Set: map[string]any{"subscription": "gold"},
	}, UpdateOptions{Validate: true})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)

	got, err := s.FindByID(ctx, u.HexID())
	require.NoError(t, err)
	assert.Equal(t, models.SubscriptionTrial, got.Subscription)
}

func TestMemoryUpdateTypeMismatchFailsDecoding(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	u := seed(t, s, "a@example.com")

	_, err := s.UpdateByID(ctx, u.HexID(), Update{
		Set: map[string]any{"loginAttempts": "many"},
	}, UpdateOptions{})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestMemoryUpdateRequire(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	u := newTestUser("a@example.com")
	u.NovaTemplate = nil
	u, err := s.Insert(ctx, u)
	require.NoError(t, err)

	_, err = s.UpdateByID(ctx, u.HexID(), Update{
		Inc:     map[string]int{"novaTemplate.analytics.totalVisits": 1},
		Require: []string{"novaTemplate"},
	}, UpdateOptions{})
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := s.FindByID(ctx, u.HexID())
	require.NoError(t, err)
	assert.Nil(t, got.NovaTemplate)
}

func TestMemoryAddToSetAndPull(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	u := seed(t, s, "a@example.com")

	for i := 0; i < 2; i++ {
		_, err := s.UpdateByID(ctx, u.HexID(), Update{
			AddToSet: map[string]any{"selectedTemplates": "arik"},
		}, UpdateOptions{})
		require.NoError(t, err)
	}
	got, err := s.FindByID(ctx, u.HexID())
	require.NoError(t, err)
	assert.Equal(t, []string{"arik"}, got.SelectedTemplates)

	got, err = s.UpdateByID(ctx, u.HexID(), Update{
		Pull: map[string]any{"selectedTemplates": "arik"},
	}, UpdateOptions{ReturnUpdated: true})
	require.NoError(t, err)
	assert.Empty(t, got.SelectedTemplates)
}

func TestMemoryUnsetAndAfterFilter(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	u := seed(t, s, "a@example.com")
	now := time.Now()

	_, err := s.UpdateByID(ctx, u.HexID(), Update{
		Set: map[string]any{"passwordResetToken": "tok", "passwordResetExpires": now.Add(time.Hour)},
	}, UpdateOptions{Validate: true})
	require.NoError(t, err)

	found, err := s.FindOne(ctx, Filter{
		Equal: map[string]any{"passwordResetToken": "tok"},
		After: map[string]time.Time{"passwordResetExpires": now},
	})
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = s.FindOne(ctx, Filter{
		Equal: map[string]any{"passwordResetToken": "tok"},
		After: map[string]time.Time{"passwordResetExpires": now.Add(2 * time.Hour)},
	})
	assert.ErrorIs(t, err, ErrNotFound)

	cleared, err := s.UpdateByID(ctx, u.HexID(), Update{
		Unset: []string{"passwordResetToken", "passwordResetExpires"},
	}, UpdateOptions{ReturnUpdated: true, Validate: true})
	require.NoError(t, err)
	assert.Empty(t, cleared.PasswordResetToken)
	assert.Nil(t, cleared.PasswordResetExpires)
}

func TestMemoryUpdateMatch(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	u := seed(t, s, "a@example.com")

	_, err := s.UpdateByID(ctx, u.HexID(), Update{
		Set: map[string]any{"passwordResetToken": "tok"},
	}, UpdateOptions{})
	require.NoError(t, err)

	redeem := Update{
		Set:   map[string]any{"passwordHash": "new"},
		Unset: []string{"passwordResetToken"},
		Match: map[string]any{"passwordResetToken": "tok"},
	}
	_, err = s.UpdateByID(ctx, u.HexID(), Update{
		Set:   map[string]any{"passwordHash": "other"},
		Match: map[string]any{"passwordResetToken": "different"},
	}, UpdateOptions{})
	assert.ErrorIs(t, err, ErrNotFound)

	got, err := s.UpdateByID(ctx, u.HexID(), redeem, UpdateOptions{ReturnUpdated: true})
	require.NoError(t, err)
	assert.Equal(t, "new", got.PasswordHash)

	_, err = s.UpdateByID(ctx, u.HexID(), redeem, UpdateOptions{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryUpdateEmailUniqueness(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	seed(t, s, "a@example.com")
	b := seed(t, s, "b@example.com")

	_, err := s.UpdateByID(ctx, b.HexID(), Update{
		Set: map[string]any{"email": "a@example.com"},
	}, UpdateOptions{})
	var dup *DuplicateKeyError
	require.ErrorAs(t, err, &dup)

	_, err = s.UpdateByID(ctx, b.HexID(), Update{
		Set: map[string]any{"email": "c@example.com"},
	}, UpdateOptions{})
	require.NoError(t, err)

	// the old address is free again
	seed(t, s, "b@example.com")
}

func TestMemoryDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	u := seed(t, s, "a@example.com")

	ok, err := s.DeleteByID(ctx, u.HexID())
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.DeleteByID(ctx, u.HexID())
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = s.UpdateByID(ctx, u.HexID(), Update{Set: map[string]any{"username": "x"}}, UpdateOptions{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryConcurrentIncrements(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	u := seed(t, s, "a@example.com")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.UpdateByID(ctx, u.HexID(), Update{
				Inc: map[string]int{"loginAttempts": 1},
			}, UpdateOptions{})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := s.FindByID(ctx, u.HexID())
	require.NoError(t, err)
	assert.Equal(t, 50, got.LoginAttempts)
}

func TestFindOrdersByID(t *testing.T) {
	s := NewMemoryStore()
	first := seed(t, s, "a@example.com")
	second := seed(t, s, "b@example.com")

	users, err := s.Find(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, first.ID, users[0].ID)
	assert.Equal(t, second.ID, users[1].ID)
}
