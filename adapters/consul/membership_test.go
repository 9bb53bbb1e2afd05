package consul

import (
	"context"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nopLogger() log.Logger { return log.NewNopLogger() }

func TestMembership(t *testing.T) {
	fake, client := newFakeConsul(t)
	m := NewMembership(client)
	ctx := context.Background()

	t.Run("join_succeeds_when_one_seed_answers", func(t *testing.T) {
		require.NoError(t, m.Join(ctx, []string{"unreachable-1", "10.0.0.10"}))
		assert.Equal(t, []string{"10.0.0.10"}, fake.joined)
	})

	t.Run("join_fails_when_no_seed_answers", func(t *testing.T) {
		assert.Error(t, m.Join(ctx, []string{"unreachable-1", "unreachable-2"}))
	})

	t.Run("members_are_host_port", func(t *testing.T) {
		members, err := m.Members(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"10.0.0.9:8301", "10.0.0.10:8301"}, members)
	})

	t.Run("leave", func(t *testing.T) {
		require.NoError(t, m.Leave(ctx))
		assert.True(t, fake.left)
	})
}

func TestNewMembership_Panics(t *testing.T) {
	assert.PanicsWithValue(t, "consul.membership.go: client is required", func() {
		NewMembership(nil)
	})
}
