package token

import "errors"

var (
	// ErrInvalidTTL is returned by Issue when the requested lifetime is
	// zero or negative.
	ErrInvalidTTL = errors.New("token ttl must be positive")
	// ErrMalformed is returned when a token's structure, encoding, or
	// required claim fields cannot be decoded.
	ErrMalformed = errors.New("malformed token")
	// ErrAlgorithmNotAllowed is returned when a token's header declares
	// an algorithm other than the policy's configured one.
	ErrAlgorithmNotAllowed = errors.New("token algorithm not allowed")
	// ErrSignatureInvalid is returned when the recomputed signature does
	// not match the token's signature segment.
	ErrSignatureInvalid = errors.New("token signature invalid")
	// ErrExpired is returned when a token's expiry is not in the future.
	ErrExpired = errors.New("token expired")
)
