package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Issuer builds and signs claims under a fixed [Policy]. It keeps no state
// beyond the policy and is safe for concurrent use.
type Issuer struct {
	policy *Policy
}

// NewIssuer returns an Issuer signing with the given policy.
func NewIssuer(policy *Policy) *Issuer {
	return &Issuer{policy: policy}
}

// Issue signs a token for subject with the given role and lifetime.
// The resulting claims always satisfy expires_at > issued_at; a zero or
// negative ttl fails with [ErrInvalidTTL] before anything is signed.
func (i *Issuer) Issue(subject, role string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		return "", ErrInvalidTTL
	}

	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(i.policy.method, claims).SignedString(i.policy.secret)
}
