package main

import (
	"fmt"

	"mymesh/bootstrap"
	"mymesh/service"
)

// Env variable names.
const (
	envHTTPPort             = "SERVICE_PORT_HTTP"
	envProxyTag             = "PROXY_TAG"
	envRefreshIntervalMs    = "REFRESH_INTERVAL_MS"
	envMinRebuildIntervalMs = "MIN_REBUILD_INTERVAL_MS"
	envStaleAfterFailures   = "STALE_AFTER_FAILURES"
	envBalancer             = "BALANCER"
	envShutdownTimeoutMs    = "SHUTDOWN_TIMEOUT_MS"
)

// Config is the gateway configuration: defaults, then the file at CONFIG_PATH (YAML or TOML), then env variables.
type Config struct {
	Registry             bootstrap.RegistryConfig `yaml:"registry" toml:"registry"`
	HTTPPort             int                      `yaml:"http_port" toml:"http_port"`
	ProxyTag             string                   `yaml:"proxy_tag" toml:"proxy_tag"`
	RefreshIntervalMs    int                      `yaml:"refresh_interval_ms" toml:"refresh_interval_ms"`
	MinRebuildIntervalMs int                      `yaml:"min_rebuild_interval_ms" toml:"min_rebuild_interval_ms"`
	StaleAfterFailures   int                      `yaml:"stale_after_failures" toml:"stale_after_failures"`
	Balancer             string                   `yaml:"balancer" toml:"balancer"`
	ShutdownTimeoutMs    int                      `yaml:"shutdown_timeout_ms" toml:"shutdown_timeout_ms"`
}

func defaultConfig() Config {
	return Config{
		Registry:           bootstrap.DefaultRegistryConfig(),
		HTTPPort:           5000,
		ProxyTag:           "mymesh-proxy",
		RefreshIntervalMs:  10000,
		StaleAfterFailures: 3,
		Balancer:           service.BalancerRoundRobin,
		ShutdownTimeoutMs:  10000,
	}
}

// LoadConfig builds the gateway config. SERVICE_PORT_HTTP must be 1-65535; intervals must be positive.
func LoadConfig() (*Config, error) {
	cfg := defaultConfig()
	path, err := bootstrap.ConfigPath()
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := bootstrap.LoadFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	if err := cfg.Registry.ApplyEnv(); err != nil {
		return nil, err
	}
	for name, dst := range map[string]*int{
		envHTTPPort:             &cfg.HTTPPort,
		envRefreshIntervalMs:    &cfg.RefreshIntervalMs,
		envMinRebuildIntervalMs: &cfg.MinRebuildIntervalMs,
		envStaleAfterFailures:   &cfg.StaleAfterFailures,
		envShutdownTimeoutMs:    &cfg.ShutdownTimeoutMs,
	} {
		if err := bootstrap.EnvInt(name, dst); err != nil {
			return nil, err
		}
	}
	bootstrap.EnvString(envProxyTag, &cfg.ProxyTag)
	bootstrap.EnvString(envBalancer, &cfg.Balancer)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) validate() error {
	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("%s must be 1-65535, got %d", envHTTPPort, c.HTTPPort)
	}
	if c.ProxyTag == "" {
		return fmt.Errorf("%s must be non-empty", envProxyTag)
	}
	if c.RefreshIntervalMs <= 0 {
		return fmt.Errorf("%s must be positive, got %d", envRefreshIntervalMs, c.RefreshIntervalMs)
	}
	if c.MinRebuildIntervalMs < 0 {
		return fmt.Errorf("%s must not be negative, got %d", envMinRebuildIntervalMs, c.MinRebuildIntervalMs)
	}
	if c.StaleAfterFailures <= 0 {
		return fmt.Errorf("%s must be positive, got %d", envStaleAfterFailures, c.StaleAfterFailures)
	}
	if c.ShutdownTimeoutMs <= 0 {
		return fmt.Errorf("%s must be positive, got %d", envShutdownTimeoutMs, c.ShutdownTimeoutMs)
	}
	if _, err := service.NewBalancer(c.Balancer); err != nil {
		return fmt.Errorf("%s: %w", envBalancer, err)
	}
	return c.Registry.Validate()
}

func (c Config) synchronizerConfig() service.SynchronizerConfig {
	return service.SynchronizerConfig{
		ProxyTag:           c.ProxyTag,
		RefreshInterval:    bootstrap.Millis(c.RefreshIntervalMs),
		MinRebuildInterval: bootstrap.Millis(c.MinRebuildIntervalMs),
		StaleAfterFailures: c.StaleAfterFailures,
	}
}
