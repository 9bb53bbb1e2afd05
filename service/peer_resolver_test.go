package service

import (
	"context"
	"errors"
	"testing"

	"mymesh/domain"
	"mymesh/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPeerResolver_Panics(t *testing.T) {
	t.Run("registry_nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.peer_resolver.go: registry is required", func() {
			NewPeerResolver(nil, &RoundRobinBalancer{}, log.NewNopLogger())
		})
	})
	t.Run("balancer_nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.peer_resolver.go: balancer is required", func() {
			NewPeerResolver(&mock.RegistryMock{}, nil, log.NewNopLogger())
		})
	})
}

func TestPeerResolver_Resolve(t *testing.T) {
	actorSystem := func(id string, healthy bool) domain.ServiceInstance {
		return domain.ServiceInstance{ID: id, ServiceName: "customer-actor-system", Address: "10.0.0.2", Port: 41000, Healthy: healthy}
	}

	t.Run("returns_healthy_instances_round_robin_by_id", func(t *testing.T) {
		registry := &mock.RegistryMock{
			QueryInstancesFunc: func(ctx context.Context, key string) ([]domain.ServiceInstance, error) {
				return []domain.ServiceInstance{actorSystem("c", true), actorSystem("a", true), actorSystem("b", false)}, nil
			},
		}
		r := NewPeerResolver(registry, &RoundRobinBalancer{}, log.NewNopLogger())

		first, err := r.Resolve(context.Background(), "customer-actor-system")
		require.NoError(t, err)
		second, err := r.Resolve(context.Background(), "customer-actor-system")
		require.NoError(t, err)
		assert.Equal(t, "a", first.ID)
		assert.Equal(t, "c", second.ID)
		assert.Equal(t, "customer-actor-system", registry.QueryInstancesCalls()[0].Key)
	})

	t.Run("no_healthy_instance_is_not_found", func(t *testing.T) {
		registry := &mock.RegistryMock{
			QueryInstancesFunc: func(ctx context.Context, key string) ([]domain.ServiceInstance, error) {
				return []domain.ServiceInstance{actorSystem("a", false)}, nil
			},
		}
		_, err := NewPeerResolver(registry, &RoundRobinBalancer{}, log.NewNopLogger()).Resolve(context.Background(), "customer-actor-system")
		assert.True(t, IsNotFoundError(err))
	})

	t.Run("every_call_queries_the_registry", func(t *testing.T) {
		current := []domain.ServiceInstance{actorSystem("a", true)}
		registry := &mock.RegistryMock{
			QueryInstancesFunc: func(ctx context.Context, key string) ([]domain.ServiceInstance, error) {
				return current, nil
			},
		}
		r := NewPeerResolver(registry, &RoundRobinBalancer{}, log.NewNopLogger())

		inst, err := r.Resolve(context.Background(), "customer-actor-system")
		require.NoError(t, err)
		assert.Equal(t, "a", inst.ID)

		current = []domain.ServiceInstance{actorSystem("b", true)}
		inst, err = r.Resolve(context.Background(), "customer-actor-system")
		require.NoError(t, err)
		assert.Equal(t, "b", inst.ID)
		assert.Len(t, registry.QueryInstancesCalls(), 2)
	})

	t.Run("registry_failure_is_registry_unavailable", func(t *testing.T) {
		registry := &mock.RegistryMock{
			QueryInstancesFunc: func(ctx context.Context, key string) ([]domain.ServiceInstance, error) {
				return nil, errors.New("dial tcp: connection refused")
			},
		}
		_, err := NewPeerResolver(registry, &RoundRobinBalancer{}, log.NewNopLogger()).Resolve(context.Background(), "customer-actor-system")
		assert.True(t, IsRegistryUnavailableError(err))
	})
}
