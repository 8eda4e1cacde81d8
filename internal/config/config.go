// Package config carries the toolchain's tunables: pool and arena
// sizing, instance limits, and reload debounce.
package config

import (
	"time"

	"github.com/kryonlabs/kryon-ir/internal/kirtree"
)

// Config is the resolved configuration for one toolchain process.
type Config struct {
	PoolBlockSize  int
	ArenaChunkSize int
	MaxInstances   int
	ReloadDebounce time.Duration
	DefaultEasing  kirtree.Easing
}

// Option mutates a Config during New.
type Option func(*Config)

// New builds a Config from defaults plus options.
func New(opts ...Option) *Config {
	c := &Config{
		PoolBlockSize:  64,
		ArenaChunkSize: 32 * 1024,
		MaxInstances:   16,
		ReloadDebounce: 500 * time.Millisecond,
		DefaultEasing:  kirtree.Easing{Type: kirtree.EasingLinear},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithPoolBlockSize sets the component pool's block size.
func WithPoolBlockSize(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.PoolBlockSize = n
		}
	}
}

// WithArenaChunkSize sets the parser arena's chunk size.
func WithArenaChunkSize(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.ArenaChunkSize = n
		}
	}
}

// WithMaxInstances caps the instance registry.
func WithMaxInstances(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.MaxInstances = n
		}
	}
}

// WithReloadDebounce sets the hot-reload debounce window.
func WithReloadDebounce(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.ReloadDebounce = d
		}
	}
}

// WithDefaultEasing sets the easing used when none is specified.
func WithDefaultEasing(e kirtree.Easing) Option {
	return func(c *Config) { c.DefaultEasing = e }
}
