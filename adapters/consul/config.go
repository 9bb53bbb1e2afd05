package consul

import (
	"fmt"
	"time"

	"github.com/hashicorp/consul/api"
)

// Config points the adapter at a Consul agent.
type Config struct {
	// Address is "host:port" or a URL such as "http://consul:8500".
	Address    string
	Token      string
	Datacenter string
	// WaitTime bounds one blocking query. Defaults to 55s.
	WaitTime time.Duration
}

// NewClient creates a Consul API client for cfg. Unset fields fall back to the CONSUL_* environment defaults
// of the api package.
func NewClient(cfg Config) (*api.Client, error) {
	c := api.DefaultConfig()
	if cfg.Address != "" {
		c.Address = cfg.Address
	}
	if cfg.Token != "" {
		c.Token = cfg.Token
	}
	if cfg.Datacenter != "" {
		c.Datacenter = cfg.Datacenter
	}
	client, err := api.NewClient(c)
	if err != nil {
		return nil, fmt.Errorf("cant create consul client for %q: %w", c.Address, err)
	}
	return client, nil
}
