package bootstrap

import (
	"fmt"
	"strings"

	"mymesh/domain"
)

// Env variable names of a mesh service binary.
const (
	EnvServiceName       = "SERVICE_NAME"
	EnvURLSegment        = "URL_SEGMENT"
	EnvActorSystemName   = "ACTOR_SYSTEM_NAME"
	EnvProxyTag          = "PROXY_TAG"
	EnvHTTPPort          = "SERVICE_PORT_HTTP"
	EnvRemotePort        = "SERVICE_PORT_REMOTE"
	EnvRegistrationTTLMs = "REGISTRATION_TTL_MS"
	EnvShutdownTimeoutMs = "SHUTDOWN_TIMEOUT_MS"
)

// ServiceConfig describes a binary that serves HTTP under a URL segment and hosts an actor system.
// Port 0 binds an ephemeral port; the registered address is always taken from the bound listener.
type ServiceConfig struct {
	ServiceName       string `yaml:"service_name" toml:"service_name"`
	URLSegment        string `yaml:"url_segment" toml:"url_segment"`
	ActorSystemName   string `yaml:"actor_system_name" toml:"actor_system_name"`
	ProxyTag          string `yaml:"proxy_tag" toml:"proxy_tag"`
	HTTPPort          int    `yaml:"http_port" toml:"http_port"`
	RemotePort        int    `yaml:"remote_port" toml:"remote_port"`
	RegistrationTTLMs int    `yaml:"registration_ttl_ms" toml:"registration_ttl_ms"`
	ShutdownTimeoutMs int    `yaml:"shutdown_timeout_ms" toml:"shutdown_timeout_ms"`
}

// ApplyEnv overrides file values with the service env variables that are set.
func (c *ServiceConfig) ApplyEnv() error {
	EnvString(EnvServiceName, &c.ServiceName)
	EnvString(EnvURLSegment, &c.URLSegment)
	EnvString(EnvActorSystemName, &c.ActorSystemName)
	EnvString(EnvProxyTag, &c.ProxyTag)
	for name, dst := range map[string]*int{
		EnvHTTPPort:          &c.HTTPPort,
		EnvRemotePort:        &c.RemotePort,
		EnvRegistrationTTLMs: &c.RegistrationTTLMs,
		EnvShutdownTimeoutMs: &c.ShutdownTimeoutMs,
	} {
		if err := EnvInt(name, dst); err != nil {
			return err
		}
	}
	return nil
}

func (c ServiceConfig) Validate() error {
	switch {
	case c.ServiceName == "":
		return fmt.Errorf("%s must be non-empty", EnvServiceName)
	case c.ActorSystemName == "":
		return fmt.Errorf("%s must be non-empty", EnvActorSystemName)
	case c.ProxyTag == "":
		return fmt.Errorf("%s must be non-empty", EnvProxyTag)
	case c.URLSegment == "" || strings.Contains(c.URLSegment, "/"):
		return fmt.Errorf("%s must be a single path segment, got %q", EnvURLSegment, c.URLSegment)
	case c.HTTPPort < 0 || c.HTTPPort > 65535:
		return fmt.Errorf("%s must be 0-65535, got %d", EnvHTTPPort, c.HTTPPort)
	case c.RemotePort < 0 || c.RemotePort > 65535:
		return fmt.Errorf("%s must be 0-65535, got %d", EnvRemotePort, c.RemotePort)
	case c.RegistrationTTLMs < 0:
		return fmt.Errorf("%s must not be negative, got %d", EnvRegistrationTTLMs, c.RegistrationTTLMs)
	case c.ShutdownTimeoutMs <= 0:
		return fmt.Errorf("%s must be positive, got %d", EnvShutdownTimeoutMs, c.ShutdownTimeoutMs)
	}
	return nil
}

// HTTPTags are the tags of the HTTP registration: the proxy opt-in and the route prefix.
func (c ServiceConfig) HTTPTags() []string {
	return []string{c.ProxyTag, domain.RouteTagPrefix + "/" + c.URLSegment}
}
