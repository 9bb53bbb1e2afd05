package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validServiceConfig() ServiceConfig {
	return ServiceConfig{
		ServiceName:       "orders-service",
		URLSegment:        "orders",
		ActorSystemName:   "orders-actor-system",
		ProxyTag:          "mymesh-proxy",
		ShutdownTimeoutMs: 1000,
	}
}

func TestServiceConfig_Validate(t *testing.T) {
	require.NoError(t, validServiceConfig().Validate())

	tests := []struct {
		name   string
		mutate func(c *ServiceConfig)
	}{
		{name: "empty_service_name", mutate: func(c *ServiceConfig) { c.ServiceName = "" }},
		{name: "empty_actor_system", mutate: func(c *ServiceConfig) { c.ActorSystemName = "" }},
		{name: "empty_proxy_tag", mutate: func(c *ServiceConfig) { c.ProxyTag = "" }},
		{name: "empty_segment", mutate: func(c *ServiceConfig) { c.URLSegment = "" }},
		{name: "nested_segment", mutate: func(c *ServiceConfig) { c.URLSegment = "a/b" }},
		{name: "negative_http_port", mutate: func(c *ServiceConfig) { c.HTTPPort = -1 }},
		{name: "remote_port_too_big", mutate: func(c *ServiceConfig) { c.RemotePort = 65536 }},
		{name: "negative_ttl", mutate: func(c *ServiceConfig) { c.RegistrationTTLMs = -5 }},
		{name: "zero_shutdown_timeout", mutate: func(c *ServiceConfig) { c.ShutdownTimeoutMs = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validServiceConfig()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestServiceConfig_ApplyEnv(t *testing.T) {
	t.Setenv(EnvServiceName, "billing-service")
	t.Setenv(EnvHTTPPort, "5005")
	t.Setenv(EnvRemotePort, "")
	t.Setenv(EnvURLSegment, "  ")

	c := validServiceConfig()
	c.RemotePort = 6000
	require.NoError(t, c.ApplyEnv())
	assert.Equal(t, "billing-service", c.ServiceName)
	assert.Equal(t, 5005, c.HTTPPort)
	assert.Equal(t, 6000, c.RemotePort)
	assert.Equal(t, "orders", c.URLSegment)

	t.Setenv(EnvRemotePort, "x")
	assert.Error(t, c.ApplyEnv())
}

func TestServiceConfig_HTTPTags(t *testing.T) {
	assert.Equal(t, []string{"mymesh-proxy", "urlprefix=/orders"}, validServiceConfig().HTTPTags())
}
