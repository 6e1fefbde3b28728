package token

import "github.com/golang-jwt/jwt/v5"

// Claims is the set of assertions embedded in a token: the subject
// (username), the subject's role, and the issued-at/expiry timestamps.
// Claims values are produced by [Issuer.Issue] and only ever reach a
// caller through [Verifier.Verify] after the signature has been checked.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
