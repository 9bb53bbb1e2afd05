package interfaces

import (
	"context"

	"mymesh/domain"
)

// Registry is the retrying facade over a RegistryBackend consumed by the registrar, the routing synchronizer
// and the peer resolver. Implemented by service.RegistryClient.
//
//go:generate moq -stub -out mock/registry.go -pkg mock . Registry
type Registry interface {
	// Register publishes reg. Returns a registry_unavailable MyError when the backend stays unreachable past the
	// configured deadline.
	Register(ctx context.Context, reg domain.Registration) error

	// Deregister withdraws instanceID. Deregistering an unknown ID succeeds.
	Deregister(ctx context.Context, instanceID string) error

	// QueryInstances returns every instance of the services whose name equals key or whose tags contain key,
	// sorted by ID.
	QueryInstances(ctx context.Context, key string) ([]domain.ServiceInstance, error)

	// Watch emits the full, current instance list for key on every change until ctx ends, then closes the channel.
	// Calling Watch again restarts the sequence.
	Watch(ctx context.Context, key string) <-chan []domain.ServiceInstance
}
