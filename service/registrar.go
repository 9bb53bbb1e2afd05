package service

import (
	"context"
	"net"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"mymesh/domain"
	"mymesh/helpers"
	"mymesh/interfaces"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"
)

// RegistrarOptions shape the registration a Registrar publishes.
type RegistrarOptions struct {
	// Scheme is domain.SchemeHTTP (default) or domain.SchemeGRPC. It also selects the health check kind.
	Scheme string
	Meta   map[string]string
	// HealthPath is probed on HTTP instances. Defaults to "/health".
	HealthPath      string
	CheckInterval   time.Duration
	CheckTimeout    time.Duration
	DeregisterAfter time.Duration
	// TTL is used by backends without health probes (etcd, Redis).
	TTL time.Duration
}

func (o RegistrarOptions) withDefaults() RegistrarOptions {
	if o.Scheme == "" {
		o.Scheme = domain.SchemeHTTP
	}
	if o.HealthPath == "" {
		o.HealthPath = "/health"
	}
	if o.CheckInterval <= 0 {
		o.CheckInterval = 10 * time.Second
	}
	if o.CheckTimeout <= 0 {
		o.CheckTimeout = 5 * time.Second
	}
	if o.DeregisterAfter <= 0 {
		o.DeregisterAfter = time.Minute
	}
	if o.TTL <= 0 {
		o.TTL = 15 * time.Second
	}
	return o
}

func (o RegistrarOptions) check(host string, port int) *domain.HealthCheck {
	hc := &domain.HealthCheck{
		Interval:        o.CheckInterval,
		Timeout:         o.CheckTimeout,
		DeregisterAfter: o.DeregisterAfter,
	}
	hostPort := net.JoinHostPort(host, strconv.Itoa(port))
	if o.Scheme == domain.SchemeGRPC {
		hc.GRPC = hostPort
	} else {
		hc.HTTP = o.Scheme + "://" + hostPort + o.HealthPath
	}
	return hc
}

// Registrar owns the registry entry of one listener of this process. Start and Stop are serialized;
// State and Serving may be read from any goroutine.
type Registrar struct {
	registry interfaces.Registry
	opts     RegistrarOptions
	logger   log.Logger

	mu       sync.Mutex
	state    atomic.Int32
	instance domain.ServiceInstance
}

// NewRegistrar creates a registrar in the Unregistered state. Panics on nil registry or logger.
func NewRegistrar(registry interfaces.Registry, opts RegistrarOptions, logger log.Logger) *Registrar {
	return &Registrar{
		registry: helpers.NilPanic(registry, "service.registrar.go: registry is required"),
		opts:     opts.withDefaults(),
		logger:   log.With(helpers.NilPanic(logger, "service.registrar.go: logger is required"), "component", "registrar"),
	}
}

// Start publishes the address lis is actually bound to under serviceName with a fresh unique ID.
// On failure it returns a registration_failed MyError and the registrar is Unregistered again.
func (r *Registrar) Start(ctx context.Context, serviceName string, tags []string, lis net.Listener) (domain.ServiceInstance, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if serviceName == "" {
		return domain.ServiceInstance{}, NewBadParameterError("service name is required", nil)
	}
	if st := r.State(); st != domain.StateUnregistered {
		return domain.ServiceInstance{}, NewBadParameterError("registrar is "+st.String(), nil)
	}
	host, port, err := helpers.ExtractHostPort(lis)
	if err != nil {
		return domain.ServiceInstance{}, NewRegistrationFailedError("cannot derive address for "+serviceName, err)
	}

	inst := domain.ServiceInstance{
		ID:          serviceName + "-" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		ServiceName: serviceName,
		Scheme:      r.opts.Scheme,
		Address:     host,
		Port:        port,
		Tags:        append([]string(nil), tags...),
		Meta:        r.opts.Meta,
		Healthy:     true,
	}
	reg := domain.Registration{
		Instance: inst,
		Check:    r.opts.check(host, port),
		TTL:      r.opts.TTL,
	}

	r.state.Store(int32(domain.StateRegistering))
	if err := r.registry.Register(ctx, reg); err != nil {
		r.state.Store(int32(domain.StateUnregistered))
		level.Error(r.logger).Log("msg", "registration failed", "service", serviceName, "id", inst.ID, "err", err)
		return domain.ServiceInstance{}, NewRegistrationFailedError("register "+inst.ID, err)
	}
	r.instance = inst
	r.state.Store(int32(domain.StateRegistered))
	level.Info(r.logger).Log("msg", "instance registered", "service", serviceName, "id", inst.ID, "address", inst.HostPort())
	return inst, nil
}

// Stop withdraws the registration within ctx. Stopping twice, or stopping a registrar that never started,
// is a no-op. A failed deregistration is logged and returned; the registrar still ends Deregistered and the
// registry's own expiry removes the entry.
func (r *Registrar) Stop(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch r.State() {
	case domain.StateDeregistered:
		return nil
	case domain.StateUnregistered:
		r.state.Store(int32(domain.StateDeregistered))
		return nil
	}

	r.state.Store(int32(domain.StateDeregistering))
	err := r.registry.Deregister(ctx, r.instance.ID)
	r.state.Store(int32(domain.StateDeregistered))
	if err != nil {
		level.Warn(r.logger).Log("msg", "deregistration failed, entry left to registry expiry", "id", r.instance.ID, "err", err)
		return err
	}
	level.Info(r.logger).Log("msg", "instance deregistered", "id", r.instance.ID)
	return nil
}

func (r *Registrar) State() domain.RegistrationState {
	return domain.RegistrationState(r.state.Load())
}

// Serving is false from the moment deregistration begins. The /health endpoint reports it.
func (r *Registrar) Serving() bool {
	return r.State().Serving()
}

// Instance returns the registered instance; zero before a successful Start.
func (r *Registrar) Instance() domain.ServiceInstance {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.instance
}
