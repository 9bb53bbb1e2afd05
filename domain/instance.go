package domain

import (
	"net"
	"net/url"
	"strconv"
	"time"
)

// ServiceInstance is one live, addressable process registered under ServiceName.
// Address is a host or IP; together with Scheme and Port it forms the instance URI.
// Values are never mutated after construction; re-registration builds a new value with the same ID.
type ServiceInstance struct {
	ID          string
	ServiceName string
	Scheme      string
	Address     string
	Port        int
	Tags        []string
	Meta        map[string]string
	Healthy     bool
}

// HostPort returns "address:port" suitable for net.Dial and grpc.NewClient.
func (i ServiceInstance) HostPort() string {
	return net.JoinHostPort(i.Address, strconv.Itoa(i.Port))
}

// URL returns the instance URI. An empty Scheme defaults to http.
func (i ServiceInstance) URL() *url.URL {
	scheme := i.Scheme
	if scheme == "" {
		scheme = SchemeHTTP
	}
	return &url.URL{Scheme: scheme, Host: i.HostPort()}
}

// HasTag reports whether tag is one of the instance tags.
func (i ServiceInstance) HasTag(tag string) bool {
	for _, t := range i.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

const (
	SchemeHTTP = "http"
	SchemeGRPC = "grpc"
)

// HealthCheck is the registry-side liveness probe for a registration. Exactly one of HTTP (a URL answered with 200)
// or GRPC (host:port serving grpc.health.v1) is expected to be set.
type HealthCheck struct {
	HTTP            string
	GRPC            string
	Interval        time.Duration
	Timeout         time.Duration
	DeregisterAfter time.Duration
}

// Registration is what a registrar hands to the registry: the instance, its probe and, for backends without
// probes (etcd, Redis), the TTL after which an unrefreshed entry disappears.
type Registration struct {
	Instance ServiceInstance
	Check    *HealthCheck
	TTL      time.Duration
}
