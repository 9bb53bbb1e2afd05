package service

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"mymesh/helpers"
	"mymesh/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

type shutdownHook struct {
	name string
	stop func(ctx context.Context) error
}

// Node is the per-process context: everything the process announced to the registry, the servers it runs and
// its cluster membership. It is built once in main and passed explicitly.
type Node struct {
	registry   interfaces.Registry
	membership interfaces.Membership
	logger     log.Logger

	mu         sync.Mutex
	registrars []*Registrar
	hooks      []shutdownHook
	joined     bool
	shutdown   bool
}

// NewNode creates a node. Panics on nil registry, membership or logger.
func NewNode(registry interfaces.Registry, membership interfaces.Membership, logger log.Logger) *Node {
	return &Node{
		registry:   helpers.NilPanic(registry, "service.node.go: registry is required"),
		membership: helpers.NilPanic(membership, "service.node.go: membership is required"),
		logger:     log.With(helpers.NilPanic(logger, "service.node.go: logger is required"), "component", "node"),
	}
}

// Announce registers lis under name. A process may announce several listeners, typically its HTTP service and
// its actor system. The returned registrar is stopped by Shutdown.
func (n *Node) Announce(ctx context.Context, name string, tags []string, lis net.Listener, opts RegistrarOptions) (*Registrar, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.shutdown {
		return nil, NewServiceUnavailableError("node is shutting down", nil)
	}
	r := NewRegistrar(n.registry, opts, n.logger)
	inst, err := r.Start(ctx, name, tags, lis)
	if err != nil {
		return nil, err
	}
	n.registrars = append(n.registrars, r)
	if local, ok := n.membership.(*LocalMembership); ok {
		local.Add(inst.HostPort())
	}
	return r, nil
}

// OnShutdown adds a stop function for a server or listener. Hooks run in reverse order of addition.
func (n *Node) OnShutdown(name string, stop func(ctx context.Context) error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.hooks = append(n.hooks, shutdownHook{name: name, stop: stop})
}

// JoinCluster joins the membership through seeds. No seeds means a single-node cluster and nothing is joined.
func (n *Node) JoinCluster(ctx context.Context, seeds []string) error {
	if len(seeds) == 0 {
		return nil
	}
	if err := n.membership.Join(ctx, seeds); err != nil {
		return fmt.Errorf("join cluster via %v: %w", seeds, err)
	}
	n.mu.Lock()
	n.joined = true
	n.mu.Unlock()
	level.Info(n.logger).Log("msg", "joined cluster", "seeds", fmt.Sprint(seeds))
	return nil
}

// Members lists the cluster members. With a LocalMembership these are the addresses this node announced.
func (n *Node) Members(ctx context.Context) ([]string, error) {
	return n.membership.Members(ctx)
}

// Serving is true until any announced registration starts to deregister.
func (n *Node) Serving() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	for _, r := range n.registrars {
		if !r.Serving() {
			return false
		}
	}
	return !n.shutdown
}

// Shutdown withdraws every registration first, so peers stop resolving this process, then stops servers in
// reverse order and finally leaves the cluster. Every step is bounded by ctx; failures are logged and joined.
// Only the first call does anything.
func (n *Node) Shutdown(ctx context.Context) error {
	n.mu.Lock()
	if n.shutdown {
		n.mu.Unlock()
		return nil
	}
	n.shutdown = true
	registrars := append([]*Registrar(nil), n.registrars...)
	hooks := append([]shutdownHook(nil), n.hooks...)
	joined := n.joined
	n.mu.Unlock()

	var errs []error
	for _, r := range registrars {
		if err := r.Stop(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i].stop(ctx); err != nil {
			level.Error(n.logger).Log("msg", "stop failed", "hook", hooks[i].name, "err", err)
			errs = append(errs, fmt.Errorf("stop %s: %w", hooks[i].name, err))
		}
	}
	if joined {
		if err := n.membership.Leave(ctx); err != nil {
			level.Error(n.logger).Log("msg", "leave cluster failed", "err", err)
			errs = append(errs, fmt.Errorf("leave cluster: %w", err))
		}
	}
	level.Info(n.logger).Log("msg", "node shut down", "registrations", len(registrars), "servers", len(hooks))
	return errors.Join(errs...)
}
