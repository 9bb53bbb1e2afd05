package service

import (
	"context"
	"reflect"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"mymesh/domain"
	"mymesh/helpers"
	"mymesh/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/time/rate"
)

// EventStaleSnapshotServed is logged on every failed refresh once failures reach StaleAfterFailures.
const EventStaleSnapshotServed = "StaleSnapshotServed"

// SynchronizerConfig tunes the routing table synchronizer.
type SynchronizerConfig struct {
	// ProxyTag selects the instances that take part in routing. Defaults to "mymesh-proxy".
	ProxyTag string
	// RefreshInterval is the periodic full rebuild and therefore the staleness bound when watches miss events.
	RefreshInterval time.Duration
	// MinRebuildInterval throttles rebuilds; events arriving faster are coalesced.
	MinRebuildInterval time.Duration
	// StaleAfterFailures is the number of consecutive failed refreshes after which the served snapshot is reported stale.
	StaleAfterFailures int
}

func (c SynchronizerConfig) withDefaults() SynchronizerConfig {
	if c.ProxyTag == "" {
		c.ProxyTag = "mymesh-proxy"
	}
	if c.RefreshInterval <= 0 {
		c.RefreshInterval = 10 * time.Second
	}
	if c.StaleAfterFailures <= 0 {
		c.StaleAfterFailures = 3
	}
	return c
}

// Synchronizer keeps an immutable RoutingSnapshot in step with the registry. Refresh (and the apply step of
// watch events) is the only writer; Current is a lock-free atomic load, so readers always see either the whole
// previous snapshot or the whole next one.
type Synchronizer struct {
	registry interfaces.Registry
	clock    interfaces.TimeProvider
	cfg      SynchronizerConfig
	logger   log.Logger
	limiter  *rate.Limiter

	current  atomic.Pointer[domain.RoutingSnapshot]
	failures atomic.Int64

	mu        sync.Mutex
	callbacks []func(*domain.RoutingSnapshot)
}

var _ interfaces.SnapshotSource = (*Synchronizer)(nil)

// NewSynchronizer creates a synchronizer serving the empty version 0 snapshot. Panics on nil registry, clock
// or logger.
//
// Called from cmd/gateway; Run is started on its own goroutine.
func NewSynchronizer(registry interfaces.Registry, clock interfaces.TimeProvider, cfg SynchronizerConfig, logger log.Logger) *Synchronizer {
	cfg = cfg.withDefaults()
	limit := rate.Inf
	if cfg.MinRebuildInterval > 0 {
		limit = rate.Every(cfg.MinRebuildInterval)
	}
	s := &Synchronizer{
		registry: helpers.NilPanic(registry, "service.synchronizer.go: registry is required"),
		clock:    helpers.NilPanic(clock, "service.synchronizer.go: clock is required"),
		cfg:      cfg,
		logger:   log.With(helpers.NilPanic(logger, "service.synchronizer.go: logger is required"), "component", "synchronizer"),
		limiter:  rate.NewLimiter(limit, 1),
	}
	s.current.Store(domain.EmptySnapshot(s.clock.Now()))
	return s
}

// Current returns the latest published snapshot. Never nil, never blocks.
func (s *Synchronizer) Current() *domain.RoutingSnapshot {
	return s.current.Load()
}

func (s *Synchronizer) ConsecutiveFailures() int {
	return int(s.failures.Load())
}

// OnChange registers fn to be called with every newly published snapshot, on the publishing goroutine.
// Callbacks run without the synchronizer lock held, so they may call Current, Refresh or OnChange.
func (s *Synchronizer) OnChange(fn func(*domain.RoutingSnapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callbacks = append(s.callbacks, fn)
}

// Run refreshes once, then on every watch event and every RefreshInterval tick until ctx ends.
// Failed refreshes are logged and retried on the next trigger; Run only returns when ctx is done.
func (s *Synchronizer) Run(ctx context.Context) error {
	_ = s.Refresh(ctx)

	events := s.registry.Watch(ctx, s.cfg.ProxyTag)
	ticker := time.NewTicker(s.cfg.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case instances, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if err := s.limiter.Wait(ctx); err != nil {
				return nil
			}
			s.mu.Lock()
			s.recoverLocked()
			next := s.applyLocked(s.latest(events, instances))
			s.mu.Unlock()
			s.notify(next)
		case <-ticker.C:
			if err := s.limiter.Wait(ctx); err != nil {
				return nil
			}
			_ = s.Refresh(ctx)
		}
	}
}

// latest picks up a list that arrived while the limiter was holding us back.
func (s *Synchronizer) latest(events <-chan []domain.ServiceInstance, instances []domain.ServiceInstance) []domain.ServiceInstance {
	select {
	case newer, ok := <-events:
		if ok {
			return newer
		}
	default:
	}
	return instances
}

// Refresh queries the registry once and publishes a new snapshot if the routing content changed.
// On failure the previous snapshot keeps being served and the error is returned.
func (s *Synchronizer) Refresh(ctx context.Context) error {
	s.mu.Lock()
	next, err := s.refreshLocked(ctx)
	s.mu.Unlock()
	s.notify(next)
	return err
}

func (s *Synchronizer) refreshLocked(ctx context.Context) (*domain.RoutingSnapshot, error) {
	instances, err := s.registry.QueryInstances(ctx, s.cfg.ProxyTag)
	if err != nil {
		n := s.failures.Add(1)
		cur := s.current.Load()
		if n >= int64(s.cfg.StaleAfterFailures) {
			level.Warn(s.logger).Log(
				"msg", "registry query failed, serving stale routing snapshot",
				"event", EventStaleSnapshotServed,
				"consecutive_failures", n,
				"version", cur.Version,
				"built_at", cur.BuiltAt,
				"err", err,
			)
		} else {
			level.Error(s.logger).Log("msg", "registry query failed", "consecutive_failures", n, "err", err)
		}
		return nil, err
	}
	s.recoverLocked()
	return s.applyLocked(instances), nil
}

func (s *Synchronizer) recoverLocked() {
	if n := s.failures.Swap(0); n > 0 {
		level.Info(s.logger).Log("msg", "registry reachable again", "failed_refreshes", n)
	}
}

// applyLocked builds the routing content from instances and publishes it when it differs from the current one.
// It returns the published snapshot, or nil when nothing changed.
func (s *Synchronizer) applyLocked(instances []domain.ServiceInstance) *domain.RoutingSnapshot {
	prev := s.current.Load()
	routes, clusters := s.build(prev, instances)
	if reflect.DeepEqual(prev.Routes, routes) && reflect.DeepEqual(prev.Clusters, clusters) {
		return nil
	}

	next := &domain.RoutingSnapshot{
		Version:  prev.Version + 1,
		BuiltAt:  s.clock.Now(),
		Routes:   routes,
		Clusters: clusters,
	}
	s.current.Store(next)
	level.Info(s.logger).Log("msg", "routing snapshot published", "version", next.Version, "routes", len(next.Routes))
	return next
}

func (s *Synchronizer) notify(next *domain.RoutingSnapshot) {
	if next == nil {
		return
	}
	s.mu.Lock()
	callbacks := make([]func(*domain.RoutingSnapshot), len(s.callbacks))
	copy(callbacks, s.callbacks)
	s.mu.Unlock()
	for _, fn := range callbacks {
		fn(next)
	}
}

func (s *Synchronizer) build(prev *domain.RoutingSnapshot, instances []domain.ServiceInstance) ([]domain.RouteRule, map[domain.ClusterID][]domain.ServiceInstance) {
	members := make(map[string][]domain.ServiceInstance)
	tags := make(map[string][]string)
	for _, inst := range instances {
		if _, ok := members[inst.ServiceName]; !ok {
			members[inst.ServiceName] = []domain.ServiceInstance{}
		}
		if inst.Healthy {
			members[inst.ServiceName] = append(members[inst.ServiceName], inst)
		}
		tags[inst.ServiceName] = append(tags[inst.ServiceName], inst.Tags...)
	}
	names := make([]string, 0, len(members))
	for name := range members {
		names = append(names, name)
	}
	sort.Strings(names)

	routes := make([]domain.RouteRule, 0, len(names))
	clusters := make(map[domain.ClusterID][]domain.ServiceInstance, len(names))
	prefixes := make(map[string]string)
	add := func(rule domain.RouteRule, m []domain.ServiceInstance) {
		if owner, taken := prefixes[rule.Prefix]; taken {
			level.Warn(s.logger).Log("msg", "duplicate route prefix skipped", "prefix", rule.Prefix, "route", rule.ID, "kept", owner)
			return
		}
		prefixes[rule.Prefix] = rule.ID
		routes = append(routes, rule)
		clusters[rule.Cluster] = m
	}

	for _, name := range names {
		rule := domain.RouteRuleFor(name, tags[name])
		if err := domain.ValidateRouteRule(rule); err != nil {
			level.Warn(s.logger).Log("msg", "invalid route skipped", "err", err)
			continue
		}
		m := members[name]
		sortInstances(m)
		add(rule, m)
	}

	// Services that vanished from the registry keep their route with zero members, so the forwarding side
	// can tell "temporarily empty" from "never existed".
	for _, rule := range prev.Routes {
		if _, ok := members[rule.ID]; ok {
			continue
		}
		if _, ok := prefixes[rule.Prefix]; ok {
			continue
		}
		add(rule, []domain.ServiceInstance{})
	}

	domain.SortRoutes(routes)
	return routes, clusters
}
