package service

import (
	"context"
	"reflect"
	"sort"
	"time"

	"mymesh/domain"
	"mymesh/helpers"
	"mymesh/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/errgroup"
)

const maxConcurrentInstanceLookups = 8

// RegistryClient implements interfaces.Registry on top of one RegistryBackend. Every call is retried with
// Backoff; Watch uses the backend's blocking query when it implements interfaces.ChangeWaiter and falls back
// to polling every pollInterval otherwise.
type RegistryClient struct {
	backend      interfaces.RegistryBackend
	backoff      Backoff
	pollInterval time.Duration
	logger       log.Logger
}

var _ interfaces.Registry = (*RegistryClient)(nil)

// NewRegistryClient creates a retrying registry client. Panics on nil backend or logger.
//
// Called from bootstrap when wiring every binary.
func NewRegistryClient(backend interfaces.RegistryBackend, backoff Backoff, pollInterval time.Duration, logger log.Logger) *RegistryClient {
	if pollInterval <= 0 {
		pollInterval = 2 * time.Second
	}
	return &RegistryClient{
		backend:      helpers.NilPanic(backend, "service.registry_client.go: backend is required"),
		backoff:      backoff.withDefaults(),
		pollInterval: pollInterval,
		logger:       log.With(helpers.NilPanic(logger, "service.registry_client.go: logger is required"), "component", "registry_client"),
	}
}

func (c *RegistryClient) Register(ctx context.Context, reg domain.Registration) error {
	if reg.Instance.ID == "" || reg.Instance.ServiceName == "" {
		return NewBadParameterError("registration needs an instance id and a service name", nil)
	}
	return retry(ctx, c.backoff, "register "+reg.Instance.ID, func(ctx context.Context) error {
		return c.backend.Register(ctx, reg)
	})
}

// Deregister is idempotent: backends treat an unknown ID as success.
func (c *RegistryClient) Deregister(ctx context.Context, instanceID string) error {
	if instanceID == "" {
		return NewBadParameterError("instance id is required", nil)
	}
	return retry(ctx, c.backoff, "deregister "+instanceID, func(ctx context.Context) error {
		return c.backend.Deregister(ctx, instanceID)
	})
}

func (c *RegistryClient) QueryInstances(ctx context.Context, key string) ([]domain.ServiceInstance, error) {
	if key == "" {
		return nil, NewBadParameterError("service name or tag is required", nil)
	}
	return retryValue(ctx, c.backoff, "query "+key, func(ctx context.Context) ([]domain.ServiceInstance, error) {
		return c.queryOnce(ctx, key)
	})
}

// queryOnce lists services matching key by name or tag and fetches their instances concurrently.
func (c *RegistryClient) queryOnce(ctx context.Context, key string) ([]domain.ServiceInstance, error) {
	services, err := c.backend.Services(ctx)
	if err != nil {
		return nil, err
	}
	names := matchingServices(services, key)

	results := make([][]domain.ServiceInstance, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentInstanceLookups)
	for i, name := range names {
		g.Go(func() error {
			instances, err := c.backend.Instances(gctx, name)
			if err != nil {
				return err
			}
			results[i] = instances
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]domain.ServiceInstance, 0)
	for _, instances := range results {
		out = append(out, instances...)
	}
	sortInstances(out)
	return out, nil
}

func matchingServices(services map[string][]string, key string) []string {
	names := make([]string, 0)
	for name, tags := range services {
		if name == key {
			names = append(names, name)
			continue
		}
		for _, tag := range tags {
			if tag == key {
				names = append(names, name)
				break
			}
		}
	}
	sort.Strings(names)
	return names
}

// Watch emits the full instance list for key whenever it changes. The channel holds at most one pending list,
// so a slow reader only ever sees the latest one. Failures are logged and retried with backoff; the channel is
// closed when ctx ends.
func (c *RegistryClient) Watch(ctx context.Context, key string) <-chan []domain.ServiceInstance {
	out := make(chan []domain.ServiceInstance, 1)
	waiter, blocking := c.backend.(interfaces.ChangeWaiter)
	logger := log.With(c.logger, "watch", key)

	go func() {
		defer close(out)
		var (
			lastIndex uint64
			last      []domain.ServiceInstance
			emitted   bool
			failures  int
		)
		for {
			if blocking {
				idx, err := waiter.WaitForChange(ctx, lastIndex)
				if ctx.Err() != nil {
					return
				}
				if err != nil {
					level.Warn(logger).Log("msg", "registry wait failed", "err", err)
					if !sleepCtx(ctx, c.backoff.Delay(failures)) {
						return
					}
					failures++
					continue
				}
				lastIndex = idx
			} else if emitted || failures > 0 {
				if !sleepCtx(ctx, c.pollInterval) {
					return
				}
			}

			instances, err := c.QueryInstances(ctx, key)
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				level.Warn(logger).Log("msg", "registry query failed", "err", err)
				if !sleepCtx(ctx, c.backoff.Delay(failures)) {
					return
				}
				failures++
				lastIndex = 0
				continue
			}
			failures = 0

			if emitted && sameInstances(last, instances) {
				continue
			}
			last, emitted = instances, true
			select {
			case <-out:
			default:
			}
			out <- instances
		}
	}()
	return out
}

func sleepCtx(ctx context.Context, d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func sortInstances(instances []domain.ServiceInstance) {
	sort.SliceStable(instances, func(i, j int) bool {
		return instances[i].ID < instances[j].ID
	})
}

func sameInstances(a, b []domain.ServiceInstance) bool {
	if len(a) != len(b) {
		return false
	}
	return reflect.DeepEqual(a, b)
}
