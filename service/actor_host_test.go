package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActorHost_Spawn(t *testing.T) {
	h := NewActorHost(4, log.NewNopLogger())
	defer h.Stop(context.Background())

	noop := func(ctx context.Context, payload any) {}
	require.NoError(t, h.Spawn("/user/customers-actor", noop))
	assert.True(t, IsBadParameterError(h.Spawn("/user/customers-actor", noop)))
	assert.True(t, IsBadParameterError(h.Spawn("user/x", noop)))
	assert.True(t, IsBadParameterError(h.Spawn("/user/x", nil)))
}

func TestActorHost_Deliver(t *testing.T) {
	t.Run("handler_receives_messages_in_order", func(t *testing.T) {
		h := NewActorHost(8, log.NewNopLogger())
		var mu sync.Mutex
		var got []any
		require.NoError(t, h.Spawn("/user/customers-actor", func(ctx context.Context, payload any) {
			mu.Lock()
			defer mu.Unlock()
			got = append(got, payload)
		}))

		require.NoError(t, h.Deliver("/user/customers-actor", "100"))
		require.NoError(t, h.Deliver("/user/customers-actor", "101"))
		require.NoError(t, h.Stop(context.Background()))

		assert.Equal(t, []any{"100", "101"}, got)
	})

	t.Run("unknown_path_is_not_found", func(t *testing.T) {
		h := NewActorHost(1, log.NewNopLogger())
		defer h.Stop(context.Background())
		assert.True(t, IsNotFoundError(h.Deliver("/user/nobody", 1)))
	})

	t.Run("full_mailbox_is_service_unavailable", func(t *testing.T) {
		h := NewActorHost(1, log.NewNopLogger())
		release := make(chan struct{})
		started := make(chan struct{}, 1)
		require.NoError(t, h.Spawn("/user/slow", func(ctx context.Context, payload any) {
			started <- struct{}{}
			<-release
		}))

		require.NoError(t, h.Deliver("/user/slow", 1))
		<-started
		require.NoError(t, h.Deliver("/user/slow", 2))
		assert.True(t, IsServiceUnavailableError(h.Deliver("/user/slow", 3)))

		close(release)
		require.NoError(t, h.Stop(context.Background()))
	})

	t.Run("stopped_host_rejects", func(t *testing.T) {
		h := NewActorHost(1, log.NewNopLogger())
		require.NoError(t, h.Spawn("/user/a", func(ctx context.Context, payload any) {}))
		require.NoError(t, h.Stop(context.Background()))
		require.NoError(t, h.Stop(context.Background()))
		assert.True(t, IsServiceUnavailableError(h.Deliver("/user/a", 1)))
		assert.True(t, IsServiceUnavailableError(h.Spawn("/user/b", func(ctx context.Context, payload any) {})))
	})

	t.Run("panicking_handler_keeps_actor_alive", func(t *testing.T) {
		h := NewActorHost(4, log.NewNopLogger())
		done := make(chan any, 1)
		require.NoError(t, h.Spawn("/user/a", func(ctx context.Context, payload any) {
			if payload == "boom" {
				panic("boom")
			}
			done <- payload
		}))
		require.NoError(t, h.Deliver("/user/a", "boom"))
		require.NoError(t, h.Deliver("/user/a", "ok"))
		select {
		case v := <-done:
			assert.Equal(t, "ok", v)
		case <-time.After(2 * time.Second):
			require.FailNow(t, "actor stopped after panic")
		}
		require.NoError(t, h.Stop(context.Background()))
	})
}

func TestActorHost_Stop_RespectsContext(t *testing.T) {
	h := NewActorHost(1, log.NewNopLogger())
	release := make(chan struct{})
	defer close(release)
	require.NoError(t, h.Spawn("/user/stuck", func(ctx context.Context, payload any) { <-release }))
	require.NoError(t, h.Deliver("/user/stuck", 1))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, h.Stop(ctx), context.DeadlineExceeded)
}
