// Package config reads the amplification factor of the layer from the environment.
package config

import (
	"math"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

const (
	// EnvAmplify is the environment variable holding the amplification factor.
	EnvAmplify = "XR_HEADTURN_AMPLIFY"
	// DefaultAmplify is used when EnvAmplify is unset, unparseable or not strictly positive.
	DefaultAmplify float32 = 3.0
)

// ParseAmplify converts the raw value of EnvAmplify. present is false when the variable is unset.
func ParseAmplify(raw string, present bool) float32 {
	if !present {
		return DefaultAmplify
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 32)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return DefaultAmplify
	}

	return float32(v)
}

// Env reads the amplification factor from the environment. It is safe for concurrent use.
type Env struct {
	lookup   func(key string) (string, bool)
	now      func() time.Time
	interval time.Duration

	cached  atomic.Uint32
	expires atomic.Int64
}

// EnvOption configures an Env.
type EnvOption func(e *Env)

// WithLookup replaces os.LookupEnv.
func WithLookup(lookup func(key string) (string, bool)) EnvOption {
	return func(e *Env) {
		e.lookup = lookup
	}
}

// WithRefreshInterval keeps a parsed value for interval before reading the environment again.
// Zero, the default, reads it on every call.
func WithRefreshInterval(interval time.Duration) EnvOption {
	return func(e *Env) {
		e.interval = interval
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) EnvOption {
	return func(e *Env) {
		e.now = now
	}
}

// NewEnv creates an Env.
func NewEnv(opts ...EnvOption) *Env {
	env := &Env{
		lookup: os.LookupEnv,
		now:    time.Now,
	}

	for _, opt := range opts {
		opt(env)
	}

	return env
}

// Amplification returns the current amplification factor.
func (e *Env) Amplification() float32 {
	if e.interval <= 0 {
		return ParseAmplify(e.lookup(EnvAmplify))
	}

	now := e.now().UnixNano()
	if now < e.expires.Load() {
		return math.Float32frombits(e.cached.Load())
	}

	v := ParseAmplify(e.lookup(EnvAmplify))
	e.cached.Store(math.Float32bits(v))
	e.expires.Store(now + int64(e.interval))

	return v
}
