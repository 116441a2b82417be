package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"portforyou/internal/apperrors"
	"portforyou/internal/models"
)

func visit() VisitInput {
	return VisitInput{IP: "203.0.113.7", Country: "NZ", Browser: "Firefox", Device: models.DeviceMobile}
}

func TestRecordVisitCountsMatchVisitors(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()
	u := seedUser(t, store, "alice@example.com", false)

	const n = 7
	for i := 0; i < n; i++ {
		ok, err := svc.RecordVisit(ctx, u.HexID(), models.VariantArik, visit())
		require.NoError(t, err)
		assert.True(t, ok)
	}

	a, err := svc.GetAnalytics(ctx, u, u.HexID(), models.VariantArik)
	require.NoError(t, err)
	assert.Equal(t, n, a.TotalVisits)
	assert.Len(t, a.Visitors, n)
	assert.True(t, a.Visitors[0].VisitDate.Equal(fixedNow))

	nova, err := svc.GetAnalytics(ctx, u, u.HexID(), models.VariantNova)
	require.NoError(t, err)
	assert.Equal(t, 0, nova.TotalVisits)
	assert.NotNil(t, nova.Visitors)
	assert.Empty(t, nova.Visitors)
}

func TestRecordVisitNotFound(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()
	noNova := models.NewUser("alice@example.com", "alice", fixedNow)
	noNova.PasswordHash = "hash"
	noNova.NovaTemplate = nil
	u, err := store.Insert(ctx, noNova)
	require.NoError(t, err)

	_, err = svc.RecordVisit(ctx, primitive.NewObjectID().Hex(), models.VariantArik, visit())
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.EqualError(t, err, "User not found")

	_, err = svc.RecordVisit(ctx, u.HexID(), models.VariantNova, visit())
	require.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.EqualError(t, err, "Template not found")

	_, err = svc.GetAnalytics(ctx, u, u.HexID(), models.VariantNova)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRecordVisitValidatesVisitor(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()
	u := seedUser(t, store, "alice@example.com", false)

	bad := visit()
	bad.Device = "tablet"
	_, err := svc.RecordVisit(ctx, u.HexID(), models.VariantArik, bad)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.RecordVisit(ctx, u.HexID(), models.VariantArik, VisitInput{Device: models.DeviceDesktop})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.EqualError(t, err, "visitor is missing ip, country, browser")

	a, err := svc.GetAnalytics(ctx, u, u.HexID(), models.VariantArik)
	require.NoError(t, err)
	assert.Zero(t, a.TotalVisits)
}

func TestGetAnalyticsOwnerOnly(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()
	alice := seedUser(t, store, "alice@example.com", false)
	admin := seedUser(t, store, "admin@example.com", true)

	_, err := svc.GetAnalytics(ctx, admin, alice.HexID(), models.VariantArik)
	assert.ErrorIs(t, err, apperrors.ErrAuthorization)
}
