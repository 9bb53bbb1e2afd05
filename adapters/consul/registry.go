package consul

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"mymesh/domain"
	"mymesh/helpers"
	"mymesh/interfaces"
	"mymesh/service"

	"github.com/hashicorp/consul/api"
)

// metaScheme carries ServiceInstance.Scheme in the service meta, Consul has no field for it.
const metaScheme = "mymesh-scheme"

var (
	_ interfaces.RegistryBackend = (*Registry)(nil)
	_ interfaces.ChangeWaiter    = (*Registry)(nil)
)

// Registry is the Consul registry backend: registrations go to the local agent, reads go to the catalog and
// health endpoints, and WaitForChange is a blocking query on the health state index.
type Registry struct {
	client   *api.Client
	waitTime time.Duration
}

// NewRegistry creates the backend. Panics on nil client.
func NewRegistry(client *api.Client, waitTime time.Duration) *Registry {
	if waitTime <= 0 {
		waitTime = 55 * time.Second
	}
	return &Registry{
		client:   helpers.NilPanic(client, "consul.registry.go: client is required"),
		waitTime: waitTime,
	}
}

func (r *Registry) Register(ctx context.Context, reg domain.Registration) error {
	asr := toAgentRegistration(reg)
	err := r.client.Agent().ServiceRegisterOpts(asr, api.ServiceRegisterOpts{}.WithContext(ctx))
	if err != nil {
		if statusCode(err) == http.StatusBadRequest {
			return service.NewBadParameterError("consul rejected registration of "+asr.ID, err)
		}
		return fmt.Errorf("consul register %s: %w", asr.ID, err)
	}
	return nil
}

// Deregister treats "unknown service" as success, so repeated deregistration is harmless.
func (r *Registry) Deregister(ctx context.Context, instanceID string) error {
	q := (&api.QueryOptions{}).WithContext(ctx)
	if err := r.client.Agent().ServiceDeregisterOpts(instanceID, q); err != nil {
		if isUnknownService(err) {
			return nil
		}
		return fmt.Errorf("consul deregister %s: %w", instanceID, err)
	}
	return nil
}

func (r *Registry) Services(ctx context.Context) (map[string][]string, error) {
	q := (&api.QueryOptions{}).WithContext(ctx)
	services, _, err := r.client.Catalog().Services(q)
	if err != nil {
		return nil, fmt.Errorf("consul catalog services: %w", err)
	}
	return services, nil
}

func (r *Registry) Instances(ctx context.Context, serviceName string) ([]domain.ServiceInstance, error) {
	q := (&api.QueryOptions{}).WithContext(ctx)
	entries, _, err := r.client.Health().Service(serviceName, "", false, q)
	if err != nil {
		return nil, fmt.Errorf("consul health service %s: %w", serviceName, err)
	}
	out := make([]domain.ServiceInstance, 0, len(entries))
	for _, e := range entries {
		if e.Service == nil {
			continue
		}
		out = append(out, fromServiceEntry(e))
	}
	return out, nil
}

// WaitForChange blocks on the health state index, which moves whenever an instance registers, deregisters
// or changes health.
func (r *Registry) WaitForChange(ctx context.Context, lastIndex uint64) (uint64, error) {
	q := (&api.QueryOptions{WaitIndex: lastIndex, WaitTime: r.waitTime}).WithContext(ctx)
	_, meta, err := r.client.Health().State(api.HealthAny, q)
	if err != nil {
		return lastIndex, fmt.Errorf("consul blocking query: %w", err)
	}
	if meta.LastIndex < lastIndex {
		// index went backwards (agent restart), start over
		return 0, nil
	}
	return meta.LastIndex, nil
}

func toAgentRegistration(reg domain.Registration) *api.AgentServiceRegistration {
	inst := reg.Instance
	meta := make(map[string]string, len(inst.Meta)+1)
	for k, v := range inst.Meta {
		meta[k] = v
	}
	meta[metaScheme] = inst.Scheme

	asr := &api.AgentServiceRegistration{
		ID:      inst.ID,
		Name:    inst.ServiceName,
		Tags:    inst.Tags,
		Address: inst.Address,
		Port:    inst.Port,
		Meta:    meta,
	}
	if hc := reg.Check; hc != nil {
		asr.Check = &api.AgentServiceCheck{
			HTTP:                           hc.HTTP,
			GRPC:                           hc.GRPC,
			Interval:                       hc.Interval.String(),
			Timeout:                        hc.Timeout.String(),
			DeregisterCriticalServiceAfter: hc.DeregisterAfter.String(),
		}
	}
	return asr
}

func fromServiceEntry(e *api.ServiceEntry) domain.ServiceInstance {
	address := e.Service.Address
	if address == "" && e.Node != nil {
		address = e.Node.Address
	}
	meta := make(map[string]string, len(e.Service.Meta))
	for k, v := range e.Service.Meta {
		if k != metaScheme {
			meta[k] = v
		}
	}
	return domain.ServiceInstance{
		ID:          e.Service.ID,
		ServiceName: e.Service.Service,
		Scheme:      e.Service.Meta[metaScheme],
		Address:     address,
		Port:        e.Service.Port,
		Tags:        e.Service.Tags,
		Meta:        meta,
		Healthy:     e.Checks.AggregatedStatus() == api.HealthPassing,
	}
}

func statusCode(err error) int {
	var se api.StatusError
	if errors.As(err, &se) {
		return se.Code
	}
	return 0
}

func isUnknownService(err error) bool {
	return statusCode(err) == http.StatusNotFound || strings.Contains(err.Error(), "Unknown service")
}
