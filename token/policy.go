package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Algorithm identifies a signing algorithm supported by the policy.
type Algorithm string

// AlgorithmHS256 is HMAC-SHA-256, the only algorithm the policy accepts.
const AlgorithmHS256 Algorithm = "HS256"

// Policy is the single source of truth for token validity: the signing
// algorithm, the secret material, and the default token lifetime. A Policy
// is constructed once from trusted configuration and is immutable; it is
// never derived from anything a token carries.
//
// Secret rotation (multiple valid secrets during a transition window) is a
// deliberate extension point: introduce it here, not in the verifier.
type Policy struct {
	alg        Algorithm
	method     jwt.SigningMethod
	secret     []byte
	defaultTTL time.Duration
}

// NewPolicy builds a Policy for the given algorithm, secret, and default
// token lifetime. The secret is copied and is not length-checked here;
// enforcing minimum secret strength is the caller's configuration concern.
func NewPolicy(alg Algorithm, secret []byte, defaultTTL time.Duration) (*Policy, error) {
	var method jwt.SigningMethod
	switch alg {
	case AlgorithmHS256:
		method = jwt.SigningMethodHS256
	default:
		return nil, fmt.Errorf("unsupported signing algorithm %q", alg)
	}
	if defaultTTL <= 0 {
		return nil, errors.New("default ttl must be positive")
	}

	p := &Policy{
		alg:        alg,
		method:     method,
		secret:     make([]byte, len(secret)),
		defaultTTL: defaultTTL,
	}
	copy(p.secret, secret)
	return p, nil
}

// Algorithm returns the configured algorithm identifier.
func (p *Policy) Algorithm() Algorithm {
	return p.alg
}

// DefaultTTL returns the configured default token lifetime.
func (p *Policy) DefaultTTL() time.Duration {
	return p.defaultTTL
}

// String never includes secret material.
func (p *Policy) String() string {
	return fmt.Sprintf("token.Policy{alg:%s ttl:%s}", p.alg, p.defaultTTL)
}
