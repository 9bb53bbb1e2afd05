package service

import (
	"fmt"
	"math/rand/v2"
	"sync/atomic"

	"mymesh/domain"
	"mymesh/interfaces"
)

const (
	BalancerRoundRobin = "round_robin"
	BalancerRandom     = "random"
)

// NewBalancer returns the balancer registered under name; an empty name selects round robin.
func NewBalancer(name string) (interfaces.Balancer, error) {
	switch name {
	case "", BalancerRoundRobin:
		return &RoundRobinBalancer{}, nil
	case BalancerRandom:
		return RandomBalancer{}, nil
	default:
		return nil, fmt.Errorf("unknown balancer %q", name)
	}
}

// RoundRobinBalancer cycles through the candidates with a shared atomic counter. Candidates are expected in a
// stable order (the resolver sorts them by ID), so successive picks over an unchanged set visit every instance.
type RoundRobinBalancer struct {
	next atomic.Uint64
}

func (b *RoundRobinBalancer) Pick(instances []domain.ServiceInstance) (domain.ServiceInstance, error) {
	if len(instances) == 0 {
		return domain.ServiceInstance{}, NewNotFoundError("no candidate instance", nil)
	}
	n := b.next.Add(1) - 1
	return instances[n%uint64(len(instances))], nil
}

func (b *RoundRobinBalancer) Name() string { return BalancerRoundRobin }

// RandomBalancer picks uniformly.
type RandomBalancer struct{}

func (RandomBalancer) Pick(instances []domain.ServiceInstance) (domain.ServiceInstance, error) {
	if len(instances) == 0 {
		return domain.ServiceInstance{}, NewNotFoundError("no candidate instance", nil)
	}
	return instances[rand.IntN(len(instances))], nil
}

func (RandomBalancer) Name() string { return BalancerRandom }
