// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Package config loads the datastore configuration from the environment and
// opens the configured backend.
package config

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/tochemey/audience/datastore"
	"github.com/tochemey/audience/datastore/bolt"
	"github.com/tochemey/audience/datastore/etcd"
	"github.com/tochemey/audience/datastore/memory"
	"github.com/tochemey/audience/datastore/nats"
	"github.com/tochemey/audience/datastore/redis"
	"github.com/tochemey/audience/datastore/sqlite"
	gerrors "github.com/tochemey/audience/errors"
	"github.com/tochemey/audience/internal/validation"
	"github.com/tochemey/audience/log"
)

// Supported datastore backends
const (
	BackendMemory = "memory"
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendNATS   = "nats"
	BackendEtcd   = "etcd"
)

// Config represents the datastore configuration
type Config struct {
	// Specifies the datastore backend. One of memory, bolt, sqlite, redis, nats or etcd
	Backend string `env:"AUDIENCE_DATASTORE_BACKEND" envDefault:"bolt"`
	// Specifies the bolt database file
	BoltPath string `env:"AUDIENCE_BOLT_PATH" envDefault:"audience.db"`
	// Specifies the sqlite database file
	SQLitePath string `env:"AUDIENCE_SQLITE_PATH" envDefault:"audience.sqlite"`
	// Specifies the redis server address
	// example: 127.0.0.1:6379
	RedisAddr string `env:"AUDIENCE_REDIS_ADDR" envDefault:"127.0.0.1:6379"`
	// Specifies the NATS server url
	NATSURL string `env:"AUDIENCE_NATS_URL" envDefault:"nats://127.0.0.1:4222"`
	// Specifies the etcd endpoints, comma separated in the environment
	EtcdEndpoints []string `env:"AUDIENCE_ETCD_ENDPOINTS" envSeparator:"," envDefault:"127.0.0.1:2379"`
	// Specifies how long a single datastore operation may take. The default value is 5s
	Timeout time.Duration `env:"AUDIENCE_DATASTORE_TIMEOUT" envDefault:"5s"`
	// Specifies the log level. One of debug, info, warn or error
	LogLevel string `env:"AUDIENCE_LOG_LEVEL" envDefault:"info"`
}

// LoadFromEnv loads and validates the configuration from environment variables.
func LoadFromEnv() (*Config, error) {
	config := new(Config)
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	config.Backend = strings.ToLower(strings.TrimSpace(config.Backend))
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// logLevelPattern accepts the levels understood by log.ParseLevel. Blank means info.
const logLevelPattern = `^(?i)\s*(debug|info|warn|warning|error)?\s*$`

// Validate checks the log level and the configuration of the selected backend.
// Every violation is reported.
func (c *Config) Validate() error {
	chain := validation.New(validation.AllErrors()).
		AddValidator(validation.ValidatorFunc(func() error {
			if c.Timeout <= 0 {
				return fmt.Errorf("%w: %s", gerrors.ErrInvalidTimeout, c.Timeout)
			}
			return nil
		})).
		AddValidator(validation.NewPatternValidator(logLevelPattern, c.LogLevel,
			fmt.Errorf("%w: %q", gerrors.ErrInvalidLogLevel, c.LogLevel)))

	switch c.Backend {
	case BackendMemory:
	case BackendBolt:
		chain.AddValidator(validation.NewEmptyStringValidator("bolt path", c.BoltPath))
	case BackendSQLite:
		chain.AddValidator(validation.NewEmptyStringValidator("sqlite path", c.SQLitePath))
	case BackendRedis:
		chain.AddValidator(validation.NewTCPAddressValidator(c.RedisAddr))
	case BackendNATS:
		chain.AddValidator(validation.NewEmptyStringValidator("nats url", c.NATSURL))
	case BackendEtcd:
		chain.AddAssertion(len(c.EtcdEndpoints) > 0, "at least one etcd endpoint is required")
		for _, endpoint := range c.EtcdEndpoints {
			chain.AddValidator(validation.NewTCPAddressValidator(endpoint))
		}
	default:
		chain.AddValidator(validation.ValidatorFunc(func() error {
			return fmt.Errorf("%w: %q", gerrors.ErrUnsupportedBackend, c.Backend)
		}))
	}
	return chain.Validate()
}

// Logger returns a logger writing to stdout at the configured level.
func (c *Config) Logger() log.Logger {
	return log.NewZap(log.ParseLevel(c.LogLevel), os.Stdout)
}

// NewBackend builds the configured backend without connecting it.
func (c *Config) NewBackend() (datastore.Backend, error) {
	switch c.Backend {
	case BackendMemory:
		return memory.New(), nil
	case BackendBolt:
		return bolt.New(c.BoltPath), nil
	case BackendSQLite:
		return sqlite.New(c.SQLitePath), nil
	case BackendRedis:
		return redis.New(c.RedisAddr), nil
	case BackendNATS:
		return nats.New(c.NATSURL), nil
	case BackendEtcd:
		return etcd.New(c.EtcdEndpoints), nil
	default:
		return nil, fmt.Errorf("%w: %q", gerrors.ErrUnsupportedBackend, c.Backend)
	}
}

// OpenBackend builds and connects the configured backend.
func OpenBackend(ctx context.Context, config *Config) (datastore.Backend, error) {
	if err := validation.New(validation.FailFast()).
		AddAssertion(config != nil, "datastore configuration is required").
		AddValidator(config).
		Validate(); err != nil {
		return nil, err
	}

	backend, err := config.NewBackend()
	if err != nil {
		return nil, err
	}

	if err := backend.Connect(ctx); err != nil {
		return nil, err
	}
	return backend, nil
}

// OpenService connects the configured backend and wraps it in a datastore.Service.
func OpenService(ctx context.Context, config *Config, logger log.Logger) (*datastore.Service, error) {
	backend, err := OpenBackend(ctx, config)
	if err != nil {
		return nil, err
	}

	service, err := datastore.NewService(backend,
		datastore.WithLogger(logger),
		datastore.WithTimeout(config.Timeout),
	)
	if err != nil {
		_ = backend.Disconnect(ctx)
		return nil, err
	}
	return service, nil
}
