package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Subscription is the billing tier of a user.
type Subscription string

const (
	SubscriptionTrial   Subscription = "trial"
	SubscriptionRegular Subscription = "regular"
	SubscriptionPremium Subscription = "premium"
	SubscriptionVIP     Subscription = "vip"
)

// Valid reports whether s is a known tier.
func (s Subscription) Valid() bool {
	switch s {
	case SubscriptionTrial, SubscriptionRegular, SubscriptionPremium, SubscriptionVIP:
		return true
	}
	return false
}

// Preferences holds free-form user preferences.
type Preferences struct {
	Colors     []string `bson:"colors" json:"colors"`
	Profession string   `bson:"profession" json:"profession"`
}

// User represents a registered user and owns the embedded templates.
type User struct {
	ID                   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Email                string             `bson:"email" json:"email"`
	Username             string             `bson:"username" json:"username"`
	PasswordHash         string             `bson:"passwordHash" json:"-"`
	PasswordResetToken   string             `bson:"passwordResetToken,omitempty" json:"-"`
	PasswordResetExpires *time.Time         `bson:"passwordResetExpires,omitempty" json:"-"`
	LastLoginAttempt     *time.Time         `bson:"lastLoginAttempt,omitempty" json:"-"`
	LoginAttempts        int                `bson:"loginAttempts" json:"-"`
	Locked               bool               `bson:"locked" json:"-"`
	ArikTemplate         *ArikTemplate      `bson:"arikTemplate,omitempty" json:"arikTemplate,omitempty"`
	NovaTemplate         *NovaTemplate      `bson:"novaTemplate,omitempty" json:"novaTemplate,omitempty"`
	SelectedTemplates    []string           `bson:"selectedTemplates" json:"selectedTemplates"`
	Subscription         Subscription       `bson:"subscription" json:"subscription"`
	Preferences          Preferences        `bson:"preferences" json:"preferences"`
	IsAdmin              bool               `bson:"isAdmin" json:"isAdmin"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// NewUser builds a user with default-filled templates. The password hash must
// be set separately with SetPassword.
func NewUser(email, username string, now time.Time) *User {
	return &User{
		Email:             NormalizeEmail(email),
		Username:          strings.TrimSpace(username),
		ArikTemplate:      NewArikTemplate(),
		NovaTemplate:      NewNovaTemplate(),
		SelectedTemplates: []string{},
		Subscription:      SubscriptionTrial,
		Preferences:       Preferences{Colors: []string{}},
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HexID returns the user id as a hex string.
func (u *User) HexID() string {
	return u.ID.Hex()
}

// Analytics returns the analytics block of template v, or false if the user
// has no such template.
func (u *User) Analytics(v Variant) (*Analytics, bool) {
	switch v {
	case VariantArik:
		if u.ArikTemplate == nil {
			return nil, false
		}
		return &u.ArikTemplate.Analytics, true
	case VariantNova:
		if u.NovaTemplate == nil {
			return nil, false
		}
		return &u.NovaTemplate.Analytics, true
	}
	return nil, false
}

// Validate checks document-level invariants. It is run by the store when an
// update requests validation.
func (u *User) Validate() error {
	var errs []error
	if u.Email == "" {
		errs = append(errs, errors.New("email is required"))
	}
	if u.Username == "" {
		errs = append(errs, errors.New("username is required"))
	}
	if u.PasswordHash == "" {
		errs = append(errs, errors.New("passwordHash is required"))
	}
	if !u.Subscription.Valid() {
		errs = append(errs, fmt.Errorf("subscription %q is not a valid enum value", u.Subscription))
	}
	if (u.PasswordResetToken == "") != (u.PasswordResetExpires == nil) {
		errs = append(errs, errors.New("passwordResetToken and passwordResetExpires must be set together"))
	}
	if u.Locked && u.LastLoginAttempt == nil {
		errs = append(errs, errors.New("locked account requires lastLoginAttempt"))
	}
	for _, v := range Variants {
		analytics, ok := u.Analytics(v)
		if !ok {
			continue
		}
		for i, visitor := range analytics.Visitors {
			if err := visitor.Validate(); err != nil {
				errs = append(errs, fmt.Errorf("%s.analytics.visitors.%d: %w", v.Field(), i, err))
			}
		}
	}
	return errors.Join(errs...)
}
