package bootstrap

import (
	"context"
	"fmt"
	"time"

	"mymesh/adapters/consul"
	"mymesh/adapters/etcd"
	"mymesh/adapters/myredis"
	"mymesh/interfaces"
	"mymesh/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// Registry is the backend selected by RegistryConfig with its membership collaborator.
type Registry struct {
	Backend    interfaces.RegistryBackend
	Membership interfaces.Membership
	close      func() error
}

// Close releases the backend's client. Safe on a nil close.
func (r *Registry) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}

// NewRegistry connects to the configured backend. Only Consul provides cluster membership; the other backends
// get a service.LocalMembership.
func NewRegistry(ctx context.Context, cfg RegistryConfig, logger log.Logger) (*Registry, error) {
	switch cfg.Backend {
	case BackendConsul:
		client, err := consul.NewClient(consul.Config{
			Address:    cfg.Consul.Address,
			Token:      cfg.Consul.Token,
			Datacenter: cfg.Consul.Datacenter,
		})
		if err != nil {
			return nil, err
		}
		level.Info(logger).Log("msg", "using consul registry", "addr", cfg.Consul.Address)
		return &Registry{
			Backend:    consul.NewRegistry(client, Millis(cfg.Consul.WaitTimeMs)),
			Membership: consul.NewMembership(client),
		}, nil

	case BackendEtcd:
		dialTimeout := Millis(cfg.Etcd.DialTimeoutMs)
		if dialTimeout <= 0 {
			dialTimeout = 5 * time.Second
		}
		client, err := etcd.NewClient(cfg.Etcd.Endpoints, dialTimeout)
		if err != nil {
			return nil, err
		}
		backend := etcd.NewRegistry(client, cfg.Etcd.Prefix, Millis(cfg.Etcd.WaitTimeMs), logger)
		level.Info(logger).Log("msg", "using etcd registry", "endpoints", fmt.Sprint(cfg.Etcd.Endpoints))
		return &Registry{
			Backend:    backend,
			Membership: service.NewLocalMembership(),
			close: func() error {
				backend.Close()
				return client.Close()
			},
		}, nil

	case BackendRedis:
		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		backend, client, err := myredis.Open(pingCtx, cfg.Redis, logger)
		if err != nil {
			return nil, err
		}
		level.Info(logger).Log("msg", "using redis registry", "prefix", cfg.Redis.KeyPrefix())
		return &Registry{
			Backend:    backend,
			Membership: service.NewLocalMembership(),
			close: func() error {
				backend.Close()
				return client.Close()
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown registry backend %q", cfg.Backend)
	}
}

// NewRegistryClient wraps the backend with the retrying client configured by cfg.
func NewRegistryClient(r *Registry, cfg RegistryConfig, logger log.Logger) *service.RegistryClient {
	return service.NewRegistryClient(r.Backend, cfg.Backoff(), cfg.PollInterval(), logger)
}
