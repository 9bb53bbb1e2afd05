package myredis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-kit/log"
	"github.com/go-redis/redis/v8"
)

const (
	DefaultAddr   = "redis://localhost:6379"
	DefaultPrefix = "mymesh-instance"
)

// Config selects the Redis server holding instance records and the key namespace they live under.
type Config struct {
	// Addr is a redis:// or rediss:// URL. Credentials and DB index come from the URL.
	Addr          string `yaml:"addr" toml:"addr"`
	Prefix        string `yaml:"prefix" toml:"prefix"`
	DialTimeoutMs int    `yaml:"dial_timeout_ms" toml:"dial_timeout_ms"`
	PoolSize      int    `yaml:"pool_size" toml:"pool_size"`
}

func DefaultConfig() Config {
	return Config{Addr: DefaultAddr, Prefix: DefaultPrefix}
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("redis addr is required")
	}
	if c.DialTimeoutMs < 0 || c.PoolSize < 0 {
		return fmt.Errorf("redis dial_timeout_ms and pool_size must not be negative")
	}
	return nil
}

// KeyPrefix is Prefix, or DefaultPrefix when unset.
func (c Config) KeyPrefix() string {
	if c.Prefix == "" {
		return DefaultPrefix
	}
	return c.Prefix
}

// NewClient parses Addr and applies the dial and pool overrides. It does not connect.
func NewClient(cfg Config) (redis.UniversalClient, error) {
	opts, err := redis.ParseURL(cfg.Addr)
	if err != nil {
		return nil, fmt.Errorf("parse redis addr %q: %w", cfg.Addr, err)
	}
	if cfg.DialTimeoutMs > 0 {
		opts.DialTimeout = time.Duration(cfg.DialTimeoutMs) * time.Millisecond
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	return redis.NewUniversalClient(&redis.UniversalOptions{
		Addrs:        []string{opts.Addr},
		DB:           opts.DB,
		Username:     opts.Username,
		Password:     opts.Password,
		TLSConfig:    opts.TLSConfig,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.ReadTimeout,
		WriteTimeout: opts.WriteTimeout,
		PoolSize:     opts.PoolSize,
	}), nil
}

// Open connects to the configured server and returns a registry over it. The caller closes the registry
// before the client.
func Open(ctx context.Context, cfg Config, logger log.Logger) (*Registry, redis.UniversalClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	client, err := NewClient(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}
	cache := NewCache[InstanceRecord](client, cfg.KeyPrefix(), MarshalInstanceRecord, UnmarshalInstanceRecord)
	return NewRegistry(cache, logger), client, nil
}
