package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsMatchesByKind(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", Validation("Email already exists"))

	assert.True(t, errors.Is(err, ErrValidation))
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, KindValidation, KindOf(err))
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestToResponse(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{"validation", Validation("bad input"), http.StatusBadRequest, "bad input"},
		{"authentication", Authentication("Invalid email or password"), http.StatusUnauthorized, "Invalid email or password"},
		{"authorization", Authorization("nope"), http.StatusForbidden, "nope"},
		{"not found", NotFound("User"), http.StatusNotFound, "User not found"},
		{"duplicate", DuplicateKey("email"), http.StatusConflict, "email already exists"},
		{"internal hides cause", Internal("store failure", errors.New("dial tcp: refused")), http.StatusInternalServerError, "Internal server error"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ToResponse(tt.err)
			assert.Equal(t, tt.status, resp.Status)
			assert.Equal(t, tt.message, resp.Error.Message)
		})
	}
}

func TestInternalUnwrap(t *testing.T) {
	cause := errors.New("timeout")
	err := Internal("find user", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "timeout")
}
