// Package token implements signed bearer token issuance and verification
// pinned to a single server-configured signing algorithm.
//
// The package is built around three values: [Policy] holds the algorithm,
// secret material, and default lifetime and is constructed once at startup;
// [Issuer] builds and signs claims; [Verifier] checks a presented token
// strictly against the policy and returns either [Claims] or one of the
// typed rejection errors ([ErrMalformed], [ErrAlgorithmNotAllowed],
// [ErrSignatureInvalid], [ErrExpired]).
//
// Verification never trusts the token's self-declared algorithm: the header
// field is read for comparison only and the policy's method is always the
// one applied. A header claiming "none" or any algorithm other than the
// configured one is rejected before any cryptographic work runs, so
// alg=none and algorithm-confusion tokens never reach signature handling.
// Signature verification always precedes reading any payload claim, and
// the signature comparison is constant-time (HMAC).
//
// Issuer and Verifier hold no mutable state beyond the immutable Policy and
// are safe for use from any number of goroutines.
package token
