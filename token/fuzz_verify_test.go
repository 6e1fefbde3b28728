package token

import (
	"errors"
	"strings"
	"testing"
	"time"
)

// FuzzVerify throws arbitrary byte soup at the verifier. Whatever comes
// in, it must either accept a genuinely valid token or return exactly one
// of the typed rejection errors. It must never panic.
func FuzzVerify(f *testing.F) {
	p, err := NewPolicy(AlgorithmHS256, []byte("fuzz-secret-material"), time.Minute)
	if err != nil {
		f.Fatalf("new policy: %v", err)
	}
	issuer := NewIssuer(p)
	verifier := NewVerifier(p)

	valid, err := issuer.Issue("alice", "user", time.Minute)
	if err != nil {
		f.Fatalf("issue seed: %v", err)
	}

	f.Add(valid)
	f.Add("")
	f.Add("a.b.c")
	f.Add(strings.Repeat(".", 10))
	f.Add("eyJhbGciOiJub25lIn0.eyJzdWIiOiJ4In0.")
	f.Add(valid + "x")

	f.Fuzz(func(t *testing.T, raw string) {
		claims, err := verifier.Verify(raw)
		if err == nil {
			if claims == nil {
				t.Fatal("nil claims with nil error")
			}
			if claims.Subject == "" || claims.Role == "" {
				t.Fatalf("accepted token without identity: %+v", claims)
			}
			return
		}
		switch {
		case errors.Is(err, ErrMalformed),
			errors.Is(err, ErrAlgorithmNotAllowed),
			errors.Is(err, ErrSignatureInvalid),
			errors.Is(err, ErrExpired):
		default:
			t.Fatalf("unexpected error class: %v", err)
		}
	})
}
