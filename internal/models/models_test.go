package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	PasswordCost = bcrypt.MinCost
}

func TestNewUserDefaults(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	u := NewUser("  Alice@Example.COM ", " alice ", now)

	assert.Equal(t, "alice@example.com", u.Email)
	assert.Equal(t, "alice", u.Username)
	assert.Equal(t, SubscriptionTrial, u.Subscription)
	assert.Equal(t, 0, u.LoginAttempts)
	assert.False(t, u.Locked)
	assert.NotNil(t, u.SelectedTemplates)
	assert.Equal(t, now, u.CreatedAt)

	require.NotNil(t, u.ArikTemplate)
	assert.Len(t, u.ArikTemplate.Logos, ArikLogoCount)
	assert.Len(t, u.ArikTemplate.Services, 3)
	assert.Len(t, u.ArikTemplate.Work, 4)
	assert.Len(t, u.ArikTemplate.Process.Steps, 5)
	assert.Len(t, u.ArikTemplate.Testimonials.Testimonials, 6)
	assert.Equal(t, "What my clients say", u.ArikTemplate.Testimonials.TestimonialsHeading)
	for _, w := range u.ArikTemplate.Work {
		assert.False(t, w.ID.IsZero())
	}

	require.NotNil(t, u.NovaTemplate)
	assert.Len(t, u.NovaTemplate.Skills, 8)
	assert.Len(t, u.NovaTemplate.Contact.SocialLinks, 4)
	assert.Empty(t, u.NovaTemplate.Analytics.Visitors)
	assert.Equal(t, 0, u.NovaTemplate.Analytics.TotalVisits)
}

func TestParseVariant(t *testing.T) {
	v, err := ParseVariant(" Arik ")
	require.NoError(t, err)
	assert.Equal(t, VariantArik, v)
	assert.Equal(t, "arikTemplate", v.Field())

	v, err = ParseVariant("nova")
	require.NoError(t, err)
	assert.Equal(t, "novaTemplate", v.Field())

	_, err = ParseVariant("zeta")
	assert.Error(t, err)
}

func TestUserAnalytics(t *testing.T) {
	u := NewUser("a@b.c", "a", time.Now())
	a, ok := u.Analytics(VariantNova)
	require.True(t, ok)
	assert.Same(t, &u.NovaTemplate.Analytics, a)

	u.ArikTemplate = nil
	_, ok = u.Analytics(VariantArik)
	assert.False(t, ok)
	_, ok = u.Analytics(Variant("zeta"))
	assert.False(t, ok)
}

func TestPasswordHashing(t *testing.T) {
	u := NewUser("a@b.c", "a", time.Now())

	assert.ErrorIs(t, u.SetPassword("short"), ErrPasswordTooShort)
	require.NoError(t, u.SetPassword("correct horse"))
	assert.NotEqual(t, "correct horse", u.PasswordHash)
	assert.True(t, u.CheckPassword("correct horse"))
	assert.False(t, u.CheckPassword("wrong horse"))
	assert.False(t, u.CheckPassword(""))
}

func TestCheckDecoyPassword(t *testing.T) {
	CheckDecoyPassword("anything")
	CheckDecoyPassword("")

	cost, err := bcrypt.Cost(decoyHash)
	require.NoError(t, err)
	assert.Equal(t, PasswordCost, cost)
}

func TestUserValidate(t *testing.T) {
	valid := func() *User {
		u := NewUser("a@b.c", "a", time.Now())
		u.PasswordHash = "hash"
		return u
	}

	require.NoError(t, valid().Validate())

	u := valid()
	u.Subscription = "gold"
	assert.ErrorContains(t, u.Validate(), "subscription")

	u = valid()
	u.PasswordResetToken = "tok"
	assert.ErrorContains(t, u.Validate(), "passwordResetToken")

	u = valid()
	u.Locked = true
	assert.ErrorContains(t, u.Validate(), "lastLoginAttempt")

	u = valid()
	u.NovaTemplate.Analytics.Visitors = []Visitor{{IP: "1.1.1.1", Country: "NZ", Browser: "Firefox", Device: "tablet"}}
	assert.ErrorContains(t, u.Validate(), "novaTemplate.analytics.visitors.0")
}

func TestVisitorValidate(t *testing.T) {
	ok := Visitor{IP: "1.1.1.1", Country: "NZ", Browser: "Firefox", Device: DeviceMobile}
	assert.NoError(t, ok.Validate())

	missing := Visitor{Device: DeviceDesktop}
	assert.ErrorContains(t, missing.Validate(), "ip, country, browser")

	bad := ok
	bad.Device = "watch"
	assert.Error(t, bad.Validate())
}
