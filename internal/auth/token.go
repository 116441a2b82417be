package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"portforyou/internal/apperrors"
	"portforyou/internal/models"
)

const (
	// TokenTTL is the fixed validity of a session token.
	TokenTTL = 24 * time.Hour
	// TokenVersion is bumped to invalidate every outstanding token.
	TokenVersion = 1

	DefaultAudience = "portforyou-api"
	DefaultIssuer   = "portforyou-auth"
)

// Claims is the session token payload.
type Claims struct {
	UserID      string             `json:"userId"`
	Email       string             `json:"email"`
	Username    string             `json:"username"`
	Preferences models.Preferences `json:"preferences"`
	Version     int                `json:"version"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies HS256 session tokens.
type TokenIssuer struct {
	secret   []byte
	audience string
	issuer   string
	now      func() time.Time
}

// NewTokenIssuer returns an issuer. Empty audience or issuer fall back to the
// defaults.
func NewTokenIssuer(secret, audience, issuer string, now func() time.Time) *TokenIssuer {
	if audience == "" {
		audience = DefaultAudience
	}
	if issuer == "" {
		issuer = DefaultIssuer
	}
	if now == nil {
		now = time.Now
	}
	return &TokenIssuer{secret: []byte(secret), audience: audience, issuer: issuer, now: now}
}

// Issue signs a token for u valid for TokenTTL.
func (t *TokenIssuer) Issue(u *models.User) (string, error) {
	now := t.now()
	claims := Claims{
		UserID:      u.HexID(),
		Email:       u.Email,
		Username:    u.Username,
		Preferences: u.Preferences,
		Version:     TokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.HexID(),
			Audience:  jwt.ClaimStrings{t.audience},
			Issuer:    t.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// Verify parses tokenString and checks signature, audience, issuer, expiry
// and version. Every failure is an authentication error.
func (t *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, apperrors.Authentication("Authentication required")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithAudience(t.audience),
		jwt.WithIssuer(t.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, apperrors.Authentication("Token has expired")
		}
		return nil, apperrors.Authentication("Invalid token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, apperrors.Authentication("Invalid token")
	}
	// Checked again independently of the parser.
	if claims.ExpiresAt == nil || !t.now().Before(claims.ExpiresAt.Time) {
		return nil, apperrors.Authentication("Token has expired")
	}
	if claims.Version != TokenVersion || claims.UserID == "" {
		return nil, apperrors.Authentication("Invalid token")
	}
	return claims, nil
}
