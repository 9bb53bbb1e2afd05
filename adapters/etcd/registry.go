// Package etcd is the etcd v3 registry backend. Every instance is one key,
//
//	/mymesh/services/{serviceName}/{instanceID} = JSON record
//
// attached to a lease that a background KeepAlive renews. A crashed process stops renewing and etcd removes its
// entry once the lease expires; a graceful shutdown revokes the lease right away.
package etcd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"mymesh/domain"
	"mymesh/helpers"
	"mymesh/interfaces"
	"mymesh/service"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	clientv3 "go.etcd.io/etcd/client/v3"
)

// DefaultPrefix is the key prefix under which instances are stored.
const DefaultPrefix = "/mymesh/services/"

var (
	_ interfaces.RegistryBackend = (*Registry)(nil)
	_ interfaces.ChangeWaiter    = (*Registry)(nil)
)

// record is the stored value. Health is implied by the key being present.
type record struct {
	ID          string            `json:"id"`
	ServiceName string            `json:"service_name"`
	Scheme      string            `json:"scheme,omitempty"`
	Address     string            `json:"address"`
	Port        int               `json:"port"`
	Tags        []string          `json:"tags,omitempty"`
	Meta        map[string]string `json:"meta,omitempty"`
}

func toRecord(inst domain.ServiceInstance) record {
	return record{
		ID:          inst.ID,
		ServiceName: inst.ServiceName,
		Scheme:      inst.Scheme,
		Address:     inst.Address,
		Port:        inst.Port,
		Tags:        inst.Tags,
		Meta:        inst.Meta,
	}
}

func (r record) instance() domain.ServiceInstance {
	return domain.ServiceInstance{
		ID:          r.ID,
		ServiceName: r.ServiceName,
		Scheme:      r.Scheme,
		Address:     r.Address,
		Port:        r.Port,
		Tags:        r.Tags,
		Meta:        r.Meta,
		Healthy:     true,
	}
}

type lease struct {
	key    string
	id     clientv3.LeaseID
	cancel context.CancelFunc
}

// Registry implements interfaces.RegistryBackend over etcd.
type Registry struct {
	client   *clientv3.Client
	prefix   string
	waitTime time.Duration
	logger   log.Logger

	mu     sync.Mutex
	leases map[string]lease
}

// NewRegistry creates the backend. Panics on nil client or logger.
func NewRegistry(client *clientv3.Client, prefix string, waitTime time.Duration, logger log.Logger) *Registry {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	if waitTime <= 0 {
		waitTime = 55 * time.Second
	}
	return &Registry{
		client:   helpers.NilPanic(client, "etcd.registry.go: client is required"),
		prefix:   prefix,
		waitTime: waitTime,
		logger:   log.With(helpers.NilPanic(logger, "etcd.registry.go: logger is required"), "component", "etcd_registry"),
		leases:   make(map[string]lease),
	}
}

// NewClient connects to endpoints.
func NewClient(endpoints []string, dialTimeout time.Duration) (*clientv3.Client, error) {
	if dialTimeout <= 0 {
		dialTimeout = 5 * time.Second
	}
	c, err := clientv3.New(clientv3.Config{
		Endpoints:   endpoints,
		DialTimeout: dialTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("cant create etcd client for %v: %w", endpoints, err)
	}
	return c, nil
}

func (r *Registry) key(serviceName, id string) string {
	return r.prefix + serviceName + "/" + id
}

// Register grants a lease of reg.TTL, stores the record under it and keeps the lease alive until Deregister.
// Registering an ID again replaces the previous entry and lease.
func (r *Registry) Register(ctx context.Context, reg domain.Registration) error {
	inst := reg.Instance
	if strings.Contains(inst.ServiceName, "/") || strings.Contains(inst.ID, "/") {
		return service.NewBadParameterError("service name and id must not contain /", nil)
	}
	ttl := int64(reg.TTL / time.Second)
	if ttl < 1 {
		ttl = 1
	}
	value, err := json.Marshal(toRecord(inst))
	if err != nil {
		return service.NewBadParameterError("cant marshal instance "+inst.ID, err)
	}

	granted, err := r.client.Grant(ctx, ttl)
	if err != nil {
		return fmt.Errorf("etcd grant lease for %s: %w", inst.ID, err)
	}
	key := r.key(inst.ServiceName, inst.ID)
	if _, err := r.client.Put(ctx, key, string(value), clientv3.WithLease(granted.ID)); err != nil {
		_, _ = r.client.Revoke(context.WithoutCancel(ctx), granted.ID)
		return fmt.Errorf("etcd put %s: %w", key, err)
	}

	keepCtx, cancel := context.WithCancel(context.Background())
	ch, err := r.client.KeepAlive(keepCtx, granted.ID)
	if err != nil {
		cancel()
		return fmt.Errorf("etcd keepalive %s: %w", inst.ID, err)
	}
	go func() {
		for range ch {
		}
		if keepCtx.Err() == nil {
			level.Warn(r.logger).Log("msg", "lease keepalive stopped, entry will expire", "id", inst.ID)
		}
	}()

	r.mu.Lock()
	old, replaced := r.leases[inst.ID]
	r.leases[inst.ID] = lease{key: key, id: granted.ID, cancel: cancel}
	r.mu.Unlock()
	if replaced {
		old.cancel()
		_, _ = r.client.Revoke(ctx, old.id)
	}
	return nil
}

// Deregister revokes the lease of an instance registered through this Registry, or deletes a matching key
// written by another process. An unknown ID succeeds.
func (r *Registry) Deregister(ctx context.Context, instanceID string) error {
	r.mu.Lock()
	l, ok := r.leases[instanceID]
	r.mu.Unlock()
	if ok {
		l.cancel()
		if _, err := r.client.Revoke(ctx, l.id); err != nil {
			return fmt.Errorf("etcd revoke %s: %w", instanceID, err)
		}
		r.mu.Lock()
		delete(r.leases, instanceID)
		r.mu.Unlock()
		return nil
	}

	resp, err := r.client.Get(ctx, r.prefix, clientv3.WithPrefix(), clientv3.WithKeysOnly())
	if err != nil {
		return fmt.Errorf("etcd list %s: %w", r.prefix, err)
	}
	for _, kv := range resp.Kvs {
		if strings.HasSuffix(string(kv.Key), "/"+instanceID) {
			if _, err := r.client.Delete(ctx, string(kv.Key)); err != nil {
				return fmt.Errorf("etcd delete %s: %w", kv.Key, err)
			}
		}
	}
	return nil
}

func (r *Registry) Services(ctx context.Context) (map[string][]string, error) {
	records, err := r.list(ctx, r.prefix)
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
	records, err := r.list(ctx, r.prefix+serviceName+"/")
	if err != nil {
		return nil, err
	}
	out := make([]domain.ServiceInstance, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.instance())
	}
	return out, nil
}

func (r *Registry) list(ctx context.Context, prefix string) ([]record, error) {
	resp, err := r.client.Get(ctx, prefix, clientv3.WithPrefix())
	if err != nil {
		return nil, fmt.Errorf("etcd get %s: %w", prefix, err)
	}
	out := make([]record, 0, len(resp.Kvs))
	for _, kv := range resp.Kvs {
		var rec record
		if err := json.Unmarshal(kv.Value, &rec); err != nil {
			level.Debug(r.logger).Log("msg", "skipping malformed entry", "key", string(kv.Key), "err", err)
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

// WaitForChange watches the prefix from the revision after lastIndex. It returns the revision of the first
// change, lastIndex when waitTime passes quietly, and 0 when the revision was compacted away.
func (r *Registry) WaitForChange(ctx context.Context, lastIndex uint64) (uint64, error) {
	if lastIndex == 0 {
		resp, err := r.client.Get(ctx, r.prefix, clientv3.WithPrefix(), clientv3.WithCountOnly())
		if err != nil {
			return 0, fmt.Errorf("etcd revision: %w", err)
		}
		return uint64(resp.Header.Revision), nil
	}

	wctx, cancel := context.WithTimeout(ctx, r.waitTime)
	defer cancel()
	ch := r.client.Watch(clientv3.WithRequireLeader(wctx), r.prefix, clientv3.WithPrefix(), clientv3.WithRev(int64(lastIndex)+1))
	for resp := range ch {
		if resp.CompactRevision != 0 {
			return 0, nil
		}
		if err := resp.Err(); err != nil {
			return lastIndex, fmt.Errorf("etcd watch: %w", err)
		}
		if len(resp.Events) > 0 {
			return uint64(resp.Header.Revision), nil
		}
	}
	if err := ctx.Err(); err != nil {
		return lastIndex, err
	}
	return lastIndex, nil
}

// Close stops every keepalive without revoking, leaving entries to expire.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, l := range r.leases {
		l.cancel()
		delete(r.leases, id)
	}
}
