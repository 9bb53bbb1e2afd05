package interfaces

import (
	"context"

	"mymesh/domain"
)

// RegistryBackend is one registry technology (Consul, etcd, Redis) spoken to with single-attempt calls.
// Retry, backoff and deadlines are layered on top by service.RegistryClient; implementations must simply respect ctx.
//
// Implemented by adapters/consul.Registry, adapters/etcd.Registry and adapters/myredis.Registry.
//
//go:generate moq -stub -out mock/registry_backend.go -pkg mock . RegistryBackend
type RegistryBackend interface {
	// Register stores reg. Registering an ID that already exists replaces the entry.
	// Returns: nil on success; a bad_parameter MyError when the registry rejects the request itself (never retried);
	// any other error for transport or server failures.
	Register(ctx context.Context, reg domain.Registration) error

	// Deregister removes the instance with the given ID. An unknown ID is not an error.
	Deregister(ctx context.Context, instanceID string) error

	// Services returns every registered service name with the union of its instance tags.
	Services(ctx context.Context) (map[string][]string, error)

	// Instances returns all instances of serviceName, healthy or not, with Healthy filled in.
	// An unknown service yields an empty list, not an error.
	Instances(ctx context.Context, serviceName string) ([]domain.ServiceInstance, error)
}

// ChangeWaiter is implemented by backends that can block until the registry changes (Consul blocking queries,
// etcd revision watches). service.RegistryClient.Watch uses it instead of fixed-interval polling when present.
//
//go:generate moq -stub -out mock/change_waiter.go -pkg mock . ChangeWaiter
type ChangeWaiter interface {
	// WaitForChange blocks until the registry index moves past lastIndex, the backend's own wait time elapses or
	// ctx ends, and returns the current index. lastIndex 0 returns immediately.
	WaitForChange(ctx context.Context, lastIndex uint64) (uint64, error)
}
