package myredis

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"mymesh/domain"
	"mymesh/helpers"
	"mymesh/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

var _ interfaces.RegistryBackend = (*Registry)(nil)

const (
	defaultTTL         = 15 * time.Second
	minRefreshInterval = time.Second
)

// InstanceRecord is the cached form of a registered instance.
type InstanceRecord struct {
	ID          string            `json:"id"`
	ServiceName string            `json:"service_name"`
	Scheme      string            `json:"scheme,omitempty"`
	Address     string            `json:"address"`
	Port        int               `json:"port"`
	Tags        []string          `json:"tags,omitempty"`
	Meta        map[string]string `json:"meta,omitempty"`
}

func MarshalInstanceRecord(r InstanceRecord) ([]byte, error) { return json.Marshal(r) }

func UnmarshalInstanceRecord(b []byte) (InstanceRecord, error) {
	var r InstanceRecord
	err := json.Unmarshal(b, &r)
	return r, err
}

// Registry keeps one TTL cache entry per instance and rewrites it every TTL/3 while the instance is registered.
// A process that dies stops rewriting and its entry expires. Redis has no blocking query here, so
// service.RegistryClient polls it.
type Registry struct {
	cache  interfaces.Cache[InstanceRecord]
	logger log.Logger

	minRefresh time.Duration

	mu         sync.Mutex
	refreshers map[string]context.CancelFunc
}

// NewRegistry creates the backend over cache. Panics on nil cache or logger.
func NewRegistry(cache interfaces.Cache[InstanceRecord], logger log.Logger) *Registry {
	return &Registry{
		cache:      helpers.NilPanic(cache, "myredis.registry.go: cache is required"),
		logger:     log.With(helpers.NilPanic(logger, "myredis.registry.go: logger is required"), "component", "redis_registry"),
		minRefresh: minRefreshInterval,
		refreshers: make(map[string]context.CancelFunc),
	}
}

func (r *Registry) Register(ctx context.Context, reg domain.Registration) error {
	inst := reg.Instance
	rec := InstanceRecord{
		ID:          inst.ID,
		ServiceName: inst.ServiceName,
		Scheme:      inst.Scheme,
		Address:     inst.Address,
		Port:        inst.Port,
		Tags:        inst.Tags,
		Meta:        inst.Meta,
	}
	ttl := reg.TTL
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if err := r.cache.WriteValue(ctx, inst.ID, rec, ttl); err != nil {
		return err
	}

	refreshCtx, cancel := context.WithCancel(context.Background())
	r.mu.Lock()
	if old, ok := r.refreshers[inst.ID]; ok {
		old()
	}
	r.refreshers[inst.ID] = cancel
	r.mu.Unlock()

	go r.refresh(refreshCtx, rec, ttl)
	return nil
}

func (r *Registry) refresh(ctx context.Context, rec InstanceRecord, ttl time.Duration) {
	interval := r.refreshInterval(ttl)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			writeCtx, cancel := context.WithTimeout(ctx, interval)
			err := r.cache.WriteValue(writeCtx, rec.ID, rec, ttl)
			cancel()
			if err != nil && ctx.Err() == nil {
				level.Warn(r.logger).Log("msg", "ttl refresh failed", "id", rec.ID, "err", err)
			}
		}
	}
}

// refreshInterval is a third of ttl, never below r.minRefresh.
func (r *Registry) refreshInterval(ttl time.Duration) time.Duration {
	if d := ttl / 3; d >= r.minRefresh {
		return d
	}
	return r.minRefresh
}

// Deregister stops the refresher and deletes the entry. Deleting a missing key succeeds.
func (r *Registry) Deregister(ctx context.Context, instanceID string) error {
	r.mu.Lock()
	if cancel, ok := r.refreshers[instanceID]; ok {
		cancel()
		delete(r.refreshers, instanceID)
	}
	r.mu.Unlock()
	return r.cache.DeleteValue(ctx, instanceID)
}

func (r *Registry) Services(ctx context.Context) (map[string][]string, error) {
	records, err := r.cache.ListAllValues(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string][]string)
	for _, rec := range records {
		out[rec.ServiceName] = append(out[rec.ServiceName], rec.Tags...)
	}
	return out, nil
}

func (r *Registry) Instances(ctx context.Context, serviceName string) ([]domain.ServiceInstance, error) {
	records, err := r.cache.ListAllValues(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.ServiceInstance, 0)
	for _, rec := range records {
		if rec.ServiceName != serviceName {
			continue
		}
		out = append(out, domain.ServiceInstance{
			ID:          rec.ID,
			ServiceName: rec.ServiceName,
			Scheme:      rec.Scheme,
			Address:     rec.Address,
			Port:        rec.Port,
			Tags:        rec.Tags,
			Meta:        rec.Meta,
			Healthy:     true,
		})
	}
	return out, nil
}

// Close stops all refreshers, leaving entries to expire.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, cancel := range r.refreshers {
		cancel()
		delete(r.refreshers, id)
	}
}
