package interfaces

import (
	"context"

	"mymesh/domain"
)

// PeerResolver turns a logical service name into one healthy instance, querying the registry on every call.
// A missing peer is reported as a not_found MyError.
//
//go:generate moq -stub -out mock/peer_resolver.go -pkg mock . PeerResolver
type PeerResolver interface {
	Resolve(ctx context.Context, serviceName string) (domain.ServiceInstance, error)
}

// Balancer picks one instance out of a non-empty candidate list. Implementations must be safe for concurrent use.
type Balancer interface {
	Pick(instances []domain.ServiceInstance) (domain.ServiceInstance, error)
	Name() string
}
