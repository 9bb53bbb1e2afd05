package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMyError(t *testing.T) {
	inner := errors.New("underlying")
	e := NewMyError(ErrBadParameter, "invalid input", inner)
	require.NotNil(t, e)
	assert.Equal(t, ErrBadParameter, e.Code)
	assert.Equal(t, "invalid input", e.Message)
	assert.Same(t, inner, e.Inner)
	assert.Equal(t, "bad_parameter invalid input: underlying", e.Error())
}

func TestNewInternalServerError(t *testing.T) {
	t.Run("plain_inner", func(t *testing.T) {
		e := NewInternalServerError("redis failed", nil)
		require.NotNil(t, e)
		assert.Equal(t, ErrInternalServerError, e.Code)
		assert.Equal(t, "internal_server_error redis failed", e.Error())
	})

	t.Run("my_error_inner_is_kept", func(t *testing.T) {
		inner := NewBadParameterError("bad key", nil)
		e := NewInternalServerError("write failed", fmt.Errorf("wrapped: %w", inner))
		assert.Same(t, inner, e)
	})
}

func TestNewRegistryUnavailableError_AlwaysOwnCode(t *testing.T) {
	inner := NewInternalServerError("boom", nil)
	e := NewRegistryUnavailableError("registry did not answer", inner)
	assert.Equal(t, ErrRegistryUnavailable, e.Code)
	assert.True(t, errors.Is(e, inner))
}

func TestToMyError(t *testing.T) {
	t.Run("with_my_error", func(t *testing.T) {
		e := NewNotFoundError("gone", nil)
		got := ToMyError(fmt.Errorf("ctx: %w", e))
		require.NotNil(t, got)
		assert.Same(t, e, got)
	})

	t.Run("with_ordinary_error", func(t *testing.T) {
		assert.Nil(t, ToMyError(errors.New("plain")))
		assert.Equal(t, "", ToMyErrorCode(errors.New("plain")))
	})
}

func TestIsHelpers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"internal", NewInternalServerError("x", nil), IsInternalServerError},
		{"bad_parameter", NewBadParameterError("x", nil), IsBadParameterError},
		{"not_found", NewNotFoundError("x", nil), IsNotFoundError},
		{"registry_unavailable", NewRegistryUnavailableError("x", nil), IsRegistryUnavailableError},
		{"registration_failed", NewRegistrationFailedError("x", nil), IsRegistrationFailedError},
		{"delivery_failed", NewDeliveryFailedError("x", nil), IsDeliveryFailedError},
		{"service_unavailable", NewServiceUnavailableError("x", nil), IsServiceUnavailableError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.False(t, tt.check(errors.New(tt.name)))
			assert.Equal(t, tt.name, ToMyErrorCode(tt.err))
		})
	}
}
