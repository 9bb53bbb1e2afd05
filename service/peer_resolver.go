package service

import (
	"context"

	"mymesh/domain"
	"mymesh/helpers"
	"mymesh/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// peerResolver implements interfaces.PeerResolver. It keeps no cache: every Resolve asks the registry, so an
// instance that registered a moment ago is a candidate on the very next call.
type peerResolver struct {
	registry interfaces.Registry
	balancer interfaces.Balancer
	logger   log.Logger
}

// NewPeerResolver creates a resolver picking among healthy instances with balancer. Panics on nil dependencies.
func NewPeerResolver(registry interfaces.Registry, balancer interfaces.Balancer, logger log.Logger) interfaces.PeerResolver {
	return &peerResolver{
		registry: helpers.NilPanic(registry, "service.peer_resolver.go: registry is required"),
		balancer: helpers.NilPanic(balancer, "service.peer_resolver.go: balancer is required"),
		logger:   log.With(helpers.NilPanic(logger, "service.peer_resolver.go: logger is required"), "component", "peer_resolver"),
	}
}

// Resolve returns one healthy instance of serviceName. No healthy instance is a not_found MyError;
// registry failures come back as registry_unavailable.
func (r *peerResolver) Resolve(ctx context.Context, serviceName string) (domain.ServiceInstance, error) {
	instances, err := r.registry.QueryInstances(ctx, serviceName)
	if err != nil {
		if ToMyError(err) == nil {
			err = NewRegistryUnavailableError("query "+serviceName, err)
		}
		return domain.ServiceInstance{}, err
	}

	healthy := make([]domain.ServiceInstance, 0, len(instances))
	for _, inst := range instances {
		if inst.Healthy {
			healthy = append(healthy, inst)
		}
	}
	if len(healthy) == 0 {
		level.Debug(r.logger).Log("msg", "no healthy peer", "service", serviceName, "registered", len(instances))
		return domain.ServiceInstance{}, NewNotFoundError("no healthy instance of "+serviceName, nil)
	}
	sortInstances(healthy)

	inst, err := r.balancer.Pick(healthy)
	if err != nil {
		return domain.ServiceInstance{}, err
	}
	level.Debug(r.logger).Log("msg", "peer resolved", "service", serviceName, "id", inst.ID, "balancer", r.balancer.Name())
	return inst, nil
}
