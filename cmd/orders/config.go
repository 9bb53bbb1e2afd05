package main

import (
	"fmt"
	"strings"

	"mymesh/bootstrap"
	"mymesh/service"
)

const (
	envTargetService   = "TARGET_SERVICE"
	envTargetActorPath = "TARGET_ACTOR_PATH"
	envSendTimeoutMs   = "SEND_TIMEOUT_MS"
	envBalancer        = "BALANCER"
)

// Config is the orders service configuration: defaults, then the file at CONFIG_PATH, then env variables.
type Config struct {
	Registry        bootstrap.RegistryConfig `yaml:"registry" toml:"registry"`
	Service         bootstrap.ServiceConfig  `yaml:"service" toml:"service"`
	TargetService   string                   `yaml:"target_service" toml:"target_service"`
	TargetActorPath string                   `yaml:"target_actor_path" toml:"target_actor_path"`
	SendTimeoutMs   int                      `yaml:"send_timeout_ms" toml:"send_timeout_ms"`
	Balancer        string                   `yaml:"balancer" toml:"balancer"`
}

func defaultConfig() Config {
	return Config{
		Registry: bootstrap.DefaultRegistryConfig(),
		Service: bootstrap.ServiceConfig{
			ServiceName:       "orders-service",
			URLSegment:        "orders",
			ActorSystemName:   "orders-actor-system",
			ProxyTag:          "mymesh-proxy",
			ShutdownTimeoutMs: 10000,
		},
		TargetService:   "customer-actor-system",
		TargetActorPath: "/user/customers-actor",
		SendTimeoutMs:   5000,
		Balancer:        service.BalancerRoundRobin,
	}
}

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
	if err := cfg.Service.ApplyEnv(); err != nil {
		return nil, err
	}
	bootstrap.EnvString(envTargetService, &cfg.TargetService)
	bootstrap.EnvString(envTargetActorPath, &cfg.TargetActorPath)
	bootstrap.EnvString(envBalancer, &cfg.Balancer)
	if err := bootstrap.EnvInt(envSendTimeoutMs, &cfg.SendTimeoutMs); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) validate() error {
	if c.TargetService == "" {
		return fmt.Errorf("%s must be non-empty", envTargetService)
	}
	if !strings.HasPrefix(c.TargetActorPath, "/") {
		return fmt.Errorf("%s must start with '/', got %q", envTargetActorPath, c.TargetActorPath)
	}
	if c.SendTimeoutMs <= 0 {
		return fmt.Errorf("%s must be positive, got %d", envSendTimeoutMs, c.SendTimeoutMs)
	}
	if _, err := service.NewBalancer(c.Balancer); err != nil {
		return fmt.Errorf("%s: %w", envBalancer, err)
	}
	if err := c.Service.Validate(); err != nil {
		return err
	}
	return c.Registry.Validate()
}
