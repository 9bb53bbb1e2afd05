package bootstrap

import (
	"context"
	"testing"

	"mymesh/adapters/consul"
	"mymesh/adapters/etcd"
	"mymesh/service"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry(t *testing.T) {
	ctx := context.Background()

	t.Run("consul", func(t *testing.T) {
		r, err := NewRegistry(ctx, DefaultRegistryConfig(), log.NewNopLogger())
		require.NoError(t, err)
		assert.IsType(t, &consul.Registry{}, r.Backend)
		assert.IsType(t, &consul.Membership{}, r.Membership)
		require.NoError(t, r.Close())
	})

	t.Run("etcd", func(t *testing.T) {
		cfg := DefaultRegistryConfig()
		cfg.Backend = BackendEtcd
		r, err := NewRegistry(ctx, cfg, log.NewNopLogger())
		require.NoError(t, err)
		assert.IsType(t, &etcd.Registry{}, r.Backend)
		assert.IsType(t, &service.LocalMembership{}, r.Membership)
		require.NoError(t, r.Close())
	})

	t.Run("redis_unreachable", func(t *testing.T) {
		cfg := DefaultRegistryConfig()
		cfg.Backend = BackendRedis
		cfg.Redis.Addr = "redis://127.0.0.1:1"
		_, err := NewRegistry(ctx, cfg, log.NewNopLogger())
		require.Error(t, err)
	})

	t.Run("redis_invalid_url", func(t *testing.T) {
		cfg := DefaultRegistryConfig()
		cfg.Backend = BackendRedis
		cfg.Redis.Addr = "://invalid"
		_, err := NewRegistry(ctx, cfg, log.NewNopLogger())
		require.Error(t, err)
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := DefaultRegistryConfig()
		cfg.Backend = "zookeeper"
		_, err := NewRegistry(ctx, cfg, log.NewNopLogger())
		require.Error(t, err)
	})
}

func TestNewRegistryClient(t *testing.T) {
	r, err := NewRegistry(context.Background(), DefaultRegistryConfig(), log.NewNopLogger())
	require.NoError(t, err)
	assert.NotNil(t, NewRegistryClient(r, DefaultRegistryConfig(), log.NewNopLogger()))
}

func TestRegistry_CloseWithoutClient(t *testing.T) {
	assert.NoError(t, (&Registry{}).Close())
}
