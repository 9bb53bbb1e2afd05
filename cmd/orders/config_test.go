package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"mymesh/bootstrap"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		bootstrap.EnvConfigPath, bootstrap.EnvRegistryBackend, bootstrap.EnvMembershipSeeds,
		bootstrap.EnvServiceName, bootstrap.EnvURLSegment, bootstrap.EnvActorSystemName, bootstrap.EnvProxyTag,
		bootstrap.EnvHTTPPort, bootstrap.EnvRemotePort, bootstrap.EnvRegistrationTTLMs, bootstrap.EnvShutdownTimeoutMs,
		envTargetService, envTargetActorPath, envSendTimeoutMs, envBalancer,
	} {
		t.Setenv(name, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "orders-service", cfg.Service.ServiceName)
	assert.Equal(t, "orders-actor-system", cfg.Service.ActorSystemName)
	assert.Equal(t, []string{"mymesh-proxy", "urlprefix=/orders"}, cfg.Service.HTTPTags())
	assert.Equal(t, 0, cfg.Service.HTTPPort)
	assert.Equal(t, "customer-actor-system", cfg.TargetService)
	assert.Equal(t, "/user/customers-actor", cfg.TargetActorPath)
	assert.Equal(t, 5*time.Second, bootstrap.Millis(cfg.SendTimeoutMs))
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	clearEnv(t)
	p := filepath.Join(t.TempDir(), "orders.toml")
	require.NoError(t, os.WriteFile(p, []byte(`
target_service = "billing-actor-system"
send_timeout_ms = 1500

[service]
http_port = 5001
remote_port = 6001
`), 0o644))
	t.Setenv(bootstrap.EnvConfigPath, p)
	t.Setenv(bootstrap.EnvRemotePort, "7001")
	t.Setenv(envTargetActorPath, "/user/billing")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "billing-actor-system", cfg.TargetService)
	assert.Equal(t, "/user/billing", cfg.TargetActorPath)
	assert.Equal(t, 1500, cfg.SendTimeoutMs)
	assert.Equal(t, 5001, cfg.Service.HTTPPort)
	assert.Equal(t, 7001, cfg.Service.RemotePort)
	assert.Equal(t, "orders-service", cfg.Service.ServiceName)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "relative_actor_path", env: map[string]string{envTargetActorPath: "user/customers-actor"}},
		{name: "zero_send_timeout", env: map[string]string{envSendTimeoutMs: "0"}},
		{name: "unknown_balancer", env: map[string]string{envBalancer: "least_conn"}},
		{name: "port_out_of_range", env: map[string]string{bootstrap.EnvHTTPPort: "70000"}},
		{name: "segment_with_slash", env: map[string]string{bootstrap.EnvURLSegment: "orders/v1"}},
		{name: "port_not_a_number", env: map[string]string{bootstrap.EnvRemotePort: "abc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
