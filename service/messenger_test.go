package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"mymesh/domain"
	"mymesh/interfaces/mock"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessenger_Panics(t *testing.T) {
	t.Run("resolver_nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.messenger.go: resolver is required", func() {
			NewMessenger(nil, &mock.RemoteSenderMock{}, time.Second, log.NewNopLogger())
		})
	})
	t.Run("sender_nil", func(t *testing.T) {
		assert.PanicsWithValue(t, "service.messenger.go: sender is required", func() {
			NewMessenger(&mock.PeerResolverMock{}, nil, time.Second, log.NewNopLogger())
		})
	})
}

func TestMessenger_Send(t *testing.T) {
	peer := domain.ServiceInstance{ID: "cas-a", ServiceName: "customer-actor-system", Address: "10.0.0.7", Port: 41234, Healthy: true}

	t.Run("delivers_to_resolved_peer", func(t *testing.T) {
		resolver := &mock.PeerResolverMock{
			ResolveFunc: func(ctx context.Context, serviceName string) (domain.ServiceInstance, error) {
				return peer, nil
			},
		}
		sender := &mock.RemoteSenderMock{
			SendRawFunc: func(ctx context.Context, target string, path string, payload any) error {
				_, hasDeadline := ctx.Deadline()
				assert.True(t, hasDeadline)
				return nil
			},
		}
		m := NewMessenger(resolver, sender, time.Second, log.NewNopLogger())

		require.NoError(t, m.Send(context.Background(), "customer-actor-system", "/user/customers-actor", 100))
		require.Len(t, sender.SendRawCalls(), 1)
		call := sender.SendRawCalls()[0]
		assert.Equal(t, "10.0.0.7:41234", call.Target)
		assert.Equal(t, "/user/customers-actor", call.Path)
		assert.Equal(t, 100, call.Payload)
	})

	t.Run("no_peer_is_not_found_without_transport_call", func(t *testing.T) {
		resolver := &mock.PeerResolverMock{
			ResolveFunc: func(ctx context.Context, serviceName string) (domain.ServiceInstance, error) {
				return domain.ServiceInstance{}, NewNotFoundError("no healthy instance of customers", nil)
			},
		}
		sender := &mock.RemoteSenderMock{}
		m := NewMessenger(resolver, sender, time.Second, log.NewNopLogger())

		err := m.Send(context.Background(), "customers", "/user/customers-actor", 100)
		assert.True(t, IsNotFoundError(err))
		assert.Empty(t, sender.SendRawCalls())
	})

	t.Run("transport_error_is_delivery_failed_and_not_retried", func(t *testing.T) {
		resolver := &mock.PeerResolverMock{
			ResolveFunc: func(ctx context.Context, serviceName string) (domain.ServiceInstance, error) {
				return peer, nil
			},
		}
		cause := errors.New("connection reset")
		sender := &mock.RemoteSenderMock{
			SendRawFunc: func(ctx context.Context, target string, path string, payload any) error {
				return cause
			},
		}
		m := NewMessenger(resolver, sender, time.Second, log.NewNopLogger())

		err := m.Send(context.Background(), "customer-actor-system", "/user/customers-actor", 100)
		assert.True(t, IsDeliveryFailedError(err))
		assert.ErrorIs(t, err, cause)
		assert.Len(t, sender.SendRawCalls(), 1)
	})

	t.Run("registry_unavailable_passes_through", func(t *testing.T) {
		resolver := &mock.PeerResolverMock{
			ResolveFunc: func(ctx context.Context, serviceName string) (domain.ServiceInstance, error) {
				return domain.ServiceInstance{}, NewRegistryUnavailableError("query failed", nil)
			},
		}
		m := NewMessenger(resolver, &mock.RemoteSenderMock{}, time.Second, log.NewNopLogger())
		err := m.Send(context.Background(), "customer-actor-system", "/user/customers-actor", 100)
		assert.True(t, IsRegistryUnavailableError(err))
	})

	t.Run("empty_arguments_are_bad_parameter", func(t *testing.T) {
		m := NewMessenger(&mock.PeerResolverMock{}, &mock.RemoteSenderMock{}, time.Second, log.NewNopLogger())
		assert.True(t, IsBadParameterError(m.Send(context.Background(), "", "/user/x", 1)))
		assert.True(t, IsBadParameterError(m.Send(context.Background(), "svc", "", 1)))
	})
}

func TestMessenger_OrdersScenario(t *testing.T) {
	// A registered, deregistered, then B registered: the next send goes to B, and with none registered it is
	// NotFound without touching the transport.
	a := domain.ServiceInstance{ID: "cas-a", ServiceName: "customer-actor-system", Address: "10.0.0.1", Port: 41000, Healthy: true}
	b := domain.ServiceInstance{ID: "cas-b", ServiceName: "customer-actor-system", Address: "10.0.0.2", Port: 42000, Healthy: true}
	current := []domain.ServiceInstance{a}
	registry := &mock.RegistryMock{
		QueryInstancesFunc: func(ctx context.Context, key string) ([]domain.ServiceInstance, error) {
			return current, nil
		},
	}
	sender := &mock.RemoteSenderMock{}
	m := NewMessenger(NewPeerResolver(registry, &RoundRobinBalancer{}, log.NewNopLogger()), sender, time.Second, log.NewNopLogger())
	ctx := context.Background()

	require.NoError(t, m.Send(ctx, "customer-actor-system", "/user/customers-actor", 100))
	current = nil
	assert.True(t, IsNotFoundError(m.Send(ctx, "customer-actor-system", "/user/customers-actor", 100)))
	current = []domain.ServiceInstance{b}
	require.NoError(t, m.Send(ctx, "customer-actor-system", "/user/customers-actor", 100))

	calls := sender.SendRawCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, "10.0.0.1:41000", calls[0].Target)
	assert.Equal(t, "10.0.0.2:42000", calls[1].Target)
}
