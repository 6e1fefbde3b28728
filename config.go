package dgpl

import (
	"errors"
	"fmt"
	"time"

	"github.com/Tejaswanth2406/dgpl/token"
)

// Config is the full engine configuration. It is read once during
// [Builder.Build] and treated as immutable afterwards; in particular the
// token algorithm and secret cannot change for the lifetime of an Engine.
type Config struct {
	Token    TokenConfig
	Password PasswordConfig
	Store    StoreConfig
	Audit    AuditConfig
	Metrics  MetricsConfig
}

// TokenConfig pins the signing algorithm, the secret, and the lifetime of
// issued access tokens. The secret comes from trusted process
// configuration, never from a request.
type TokenConfig struct {
	Algorithm string
	Secret    []byte
	AccessTTL time.Duration
}

// PasswordConfig carries the argon2id cost parameters.
type PasswordConfig struct {
	Memory      uint32
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// StoreConfig configures the Redis-backed credential store.
type StoreConfig struct {
	RedisPrefix string
}

// AuditConfig configures the asynchronous audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig configures the in-process metrics registry.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig returns the baseline configuration. The token secret is
// intentionally absent and must be supplied by the caller.
func DefaultConfig() Config {
	return Config{
		Token: TokenConfig{
			Algorithm: string(token.AlgorithmHS256),
			AccessTTL: 60 * time.Minute,
		},
		Password: PasswordConfig{
			Memory:      64 * 1024,
			Time:        2,
			Parallelism: 2,
			SaltLength:  16,
			KeyLength:   32,
		},
		Store: StoreConfig{
			RedisPrefix: "dgpl:user:",
		},
		Audit: AuditConfig{
			Enabled:    true,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate checks the configuration for values the engine refuses to run
// with. Error messages never include the secret itself.
func (c Config) Validate() error {
	if c.Token.Algorithm != string(token.AlgorithmHS256) {
		return fmt.Errorf("unsupported token algorithm %q", c.Token.Algorithm)
	}
	if len(c.Token.Secret) < 16 {
		return errors.New("token secret must be at least 16 bytes")
	}
	if c.Token.AccessTTL <= 0 {
		return errors.New("token access ttl must be positive")
	}
	if c.Store.RedisPrefix == "" {
		return errors.New("store redis prefix must not be empty")
	}
	return nil
}

func cloneConfig(c Config) Config {
	c.Token.Secret = cloneBytes(c.Token.Secret)
	return c
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
