package token

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates presented tokens strictly against a fixed [Policy].
// Verification walks a fixed sequence of checks, each able to reject with
// its own typed error, and no check is skipped or reordered:
//
//  1. structure and header decode: [ErrMalformed]
//  2. header algorithm equals the policy's: [ErrAlgorithmNotAllowed]
//  3. signature recomputed with the policy's method and secret,
//     constant-time compare: [ErrSignatureInvalid]
//  4. payload decode and required claims: [ErrMalformed]
//  5. expiry in the future: [ErrExpired]
//
// Step 2 compares only; it never selects the verification routine. Step 3
// always runs the policy's configured method, so a forged header cannot
// route verification through a weaker algorithm.
type Verifier struct {
	policy    *Policy
	parser    *jwt.Parser
	validator *jwt.Validator
}

// NewVerifier returns a Verifier bound to the given policy.
func NewVerifier(policy *Policy) *Verifier {
	return &Verifier{
		policy:    policy,
		parser:    jwt.NewParser(),
		validator: jwt.NewValidator(jwt.WithExpirationRequired()),
	}
}

type tokenHeader struct {
	Alg string `json:"alg"`
}

// Verify checks raw against the policy and returns its claims, or exactly
// one of [ErrMalformed], [ErrAlgorithmNotAllowed], [ErrSignatureInvalid],
// [ErrExpired].
func (v *Verifier) Verify(raw string) (*Claims, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, ErrMalformed
	}

	headerBytes, err := v.parser.DecodeSegment(parts[0])
	if err != nil {
		return nil, ErrMalformed
	}
	var header tokenHeader
	if err := json.Unmarshal(headerBytes, &header); err != nil {
		return nil, ErrMalformed
	}

	// The header's algorithm field is diagnostic only. Anything other than
	// the pinned algorithm is rejected here, before any cryptographic work.
	if header.Alg != string(v.policy.alg) {
		return nil, ErrAlgorithmNotAllowed
	}

	sig, err := v.parser.DecodeSegment(parts[2])
	if err != nil {
		return nil, ErrSignatureInvalid
	}
	if err := v.policy.method.Verify(parts[0]+"."+parts[1], sig, v.policy.secret); err != nil {
		return nil, ErrSignatureInvalid
	}

	// Payload fields are read only after the signature has checked out.
	payload, err := v.parser.DecodeSegment(parts[1])
	if err != nil {
		return nil, ErrMalformed
	}
	claims := &Claims{}
	if err := json.Unmarshal(payload, claims); err != nil {
		return nil, ErrMalformed
	}
	if claims.Subject == "" || claims.Role == "" {
		return nil, ErrMalformed
	}

	if err := v.validator.Validate(claims); err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrMalformed
	}

	return claims, nil
}
