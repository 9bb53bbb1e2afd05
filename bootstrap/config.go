package bootstrap

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"mymesh/adapters/myredis"
	"mymesh/service"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Env variable names shared by every binary.
const (
	EnvConfigPath      = "CONFIG_PATH"
	EnvRegistryBackend = "REGISTRY_BACKEND"
	EnvConsulAddr      = "CONSUL_HTTP_ADDR"
	EnvConsulToken     = "CONSUL_HTTP_TOKEN"
	EnvEtcdEndpoints   = "ETCD_ENDPOINTS"
	EnvRedisAddr       = "REDIS_ADDR"
	EnvMembershipSeeds = "MEMBERSHIP_SEEDS"
	EnvPollIntervalMs  = "REGISTRY_POLL_INTERVAL_MS"
	EnvRetryDeadlineMs = "REGISTRY_RETRY_DEADLINE_MS"
)

// Registry backends.
const (
	BackendConsul = "consul"
	BackendEtcd   = "etcd"
	BackendRedis  = "redis"
)

// RegistryConfig selects and configures the registry backend. Durations are milliseconds.
type RegistryConfig struct {
	Backend        string         `yaml:"backend" toml:"backend"`
	Consul         ConsulConfig   `yaml:"consul" toml:"consul"`
	Etcd           EtcdConfig     `yaml:"etcd" toml:"etcd"`
	Redis          myredis.Config `yaml:"redis" toml:"redis"`
	Retry          RetryConfig    `yaml:"retry" toml:"retry"`
	PollIntervalMs int            `yaml:"poll_interval_ms" toml:"poll_interval_ms"`
	Seeds          []string       `yaml:"seeds" toml:"seeds"`
}

type ConsulConfig struct {
	Address    string `yaml:"address" toml:"address"`
	Token      string `yaml:"token" toml:"token"`
	Datacenter string `yaml:"datacenter" toml:"datacenter"`
	WaitTimeMs int    `yaml:"wait_time_ms" toml:"wait_time_ms"`
}

type EtcdConfig struct {
	Endpoints     []string `yaml:"endpoints" toml:"endpoints"`
	Prefix        string   `yaml:"prefix" toml:"prefix"`
	DialTimeoutMs int      `yaml:"dial_timeout_ms" toml:"dial_timeout_ms"`
	WaitTimeMs    int      `yaml:"wait_time_ms" toml:"wait_time_ms"`
}

type RetryConfig struct {
	InitialMs        int `yaml:"initial_ms" toml:"initial_ms"`
	MaxMs            int `yaml:"max_ms" toml:"max_ms"`
	DeadlineMs       int `yaml:"deadline_ms" toml:"deadline_ms"`
	AttemptTimeoutMs int `yaml:"attempt_timeout_ms" toml:"attempt_timeout_ms"`
}

// DefaultRegistryConfig talks to a local Consul agent.
func DefaultRegistryConfig() RegistryConfig {
	return RegistryConfig{
		Backend: BackendConsul,
		Consul:  ConsulConfig{Address: "127.0.0.1:8500"},
		Etcd:    EtcdConfig{Endpoints: []string{"127.0.0.1:2379"}, Prefix: "/mymesh/services/", DialTimeoutMs: 5000},
		Redis:   myredis.DefaultConfig(),
	}
}

// LoadFile unmarshals the file at path into out. The format follows the extension: .yaml/.yml or .toml.
func LoadFile(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("parse yaml %s: %w", path, err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, out); err != nil {
			return fmt.Errorf("parse toml %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config format %q (want .yaml, .yml or .toml)", filepath.Ext(path))
	}
	return nil
}

// ConfigPath returns CONFIG_PATH made absolute, or "" when unset.
func ConfigPath() (string, error) {
	p := strings.TrimSpace(os.Getenv(EnvConfigPath))
	if p == "" || filepath.IsAbs(p) {
		return p, nil
	}
	return filepath.Abs(p)
}

// ApplyEnv overrides file values with the registry env variables that are set.
func (c *RegistryConfig) ApplyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvRegistryBackend)); v != "" {
		c.Backend = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvConsulAddr)); v != "" {
		c.Consul.Address = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvConsulToken)); v != "" {
		c.Consul.Token = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvEtcdEndpoints)); v != "" {
		c.Etcd.Endpoints = SplitList(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvRedisAddr)); v != "" {
		c.Redis.Addr = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvMembershipSeeds)); v != "" {
		c.Seeds = SplitList(v)
	}
	if err := EnvInt(EnvPollIntervalMs, &c.PollIntervalMs); err != nil {
		return err
	}
	return EnvInt(EnvRetryDeadlineMs, &c.Retry.DeadlineMs)
}

// Validate checks the selected backend has what it needs.
func (c RegistryConfig) Validate() error {
	switch c.Backend {
	case BackendConsul:
		if c.Consul.Address == "" {
			return fmt.Errorf("consul address is required")
		}
	case BackendEtcd:
		if len(c.Etcd.Endpoints) == 0 {
			return fmt.Errorf("etcd endpoints are required")
		}
	case BackendRedis:
		if err := c.Redis.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("registry backend must be one of %s, %s, %s, got %q", BackendConsul, BackendEtcd, BackendRedis, c.Backend)
	}
	if len(c.Seeds) > 0 && c.Backend != BackendConsul {
		return fmt.Errorf("membership seeds require the %s backend", BackendConsul)
	}
	for name, v := range map[string]int{
		"poll_interval_ms":         c.PollIntervalMs,
		"retry.initial_ms":         c.Retry.InitialMs,
		"retry.max_ms":             c.Retry.MaxMs,
		"retry.deadline_ms":        c.Retry.DeadlineMs,
		"retry.attempt_timeout_ms": c.Retry.AttemptTimeoutMs,
	} {
		if v < 0 {
			return fmt.Errorf("%s must not be negative, got %d", name, v)
		}
	}
	return nil
}

// Backoff converts the retry settings; zero fields take service.DefaultBackoff values.
func (c RegistryConfig) Backoff() service.Backoff {
	return service.Backoff{
		Initial:        Millis(c.Retry.InitialMs),
		Max:            Millis(c.Retry.MaxMs),
		Deadline:       Millis(c.Retry.DeadlineMs),
		AttemptTimeout: Millis(c.Retry.AttemptTimeoutMs),
	}
}

func (c RegistryConfig) PollInterval() time.Duration {
	return Millis(c.PollIntervalMs)
}

// Millis converts a millisecond count to a duration.
func Millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// SplitList splits a comma separated list, dropping blanks.
func SplitList(s string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// EnvInt parses env variable name into dst when it is set.
func EnvInt(name string, dst *int) error {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	*dst = v
	return nil
}

// EnvString sets dst to env variable name when it is set to a non-blank value.
func EnvString(name string, dst *string) {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		*dst = v
	}
}
