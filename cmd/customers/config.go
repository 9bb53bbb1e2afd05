package main

import (
	"fmt"
	"strings"

	"mymesh/bootstrap"
)

const (
	envActorPath   = "ACTOR_PATH"
	envMailboxSize = "MAILBOX_SIZE"
)

// Config is the customers service configuration: defaults, then the file at CONFIG_PATH, then env variables.
type Config struct {
	Registry    bootstrap.RegistryConfig `yaml:"registry" toml:"registry"`
	Service     bootstrap.ServiceConfig  `yaml:"service" toml:"service"`
	ActorPath   string                   `yaml:"actor_path" toml:"actor_path"`
	MailboxSize int                      `yaml:"mailbox_size" toml:"mailbox_size"`
}

func defaultConfig() Config {
	return Config{
		Registry: bootstrap.DefaultRegistryConfig(),
		Service: bootstrap.ServiceConfig{
			ServiceName:       "customers-service",
			URLSegment:        "customers",
			ActorSystemName:   "customer-actor-system",
			ProxyTag:          "mymesh-proxy",
			ShutdownTimeoutMs: 10000,
		},
		ActorPath:   "/user/customers-actor",
		MailboxSize: 64,
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
	bootstrap.EnvString(envActorPath, &cfg.ActorPath)
	if err := bootstrap.EnvInt(envMailboxSize, &cfg.MailboxSize); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c Config) validate() error {
	if !strings.HasPrefix(c.ActorPath, "/") {
		return fmt.Errorf("%s must start with '/', got %q", envActorPath, c.ActorPath)
	}
	if c.MailboxSize <= 0 {
		return fmt.Errorf("%s must be positive, got %d", envMailboxSize, c.MailboxSize)
	}
	if err := c.Service.Validate(); err != nil {
		return err
	}
	return c.Registry.Validate()
}
