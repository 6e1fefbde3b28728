package token

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signRaw(t *testing.T, method jwt.SigningMethod, claims jwt.Claims, secret []byte) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(method, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return raw
}

func encodeSegment(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal segment: %v", err)
	}
	return base64.RawURLEncoding.EncodeToString(data)
}

func TestVerifyRejectsMalformedInput(t *testing.T) {
	verifier := NewVerifier(newTestPolicy(t, "secret-secret-16"))

	cases := []string{
		"",
		"garbage",
		"a.b",
		"a.b.c.d",
		"!!!.###.$$$",
		"eyJub3QiOiJqd3QifQ",
	}
	for _, raw := range cases {
		if _, err := verifier.Verify(raw); !errors.Is(err, ErrMalformed) {
			t.Fatalf("Verify(%q) = %v, want ErrMalformed", raw, err)
		}
	}
}

func TestVerifyRejectsAlgNone(t *testing.T) {
	// A policy with an empty secret is the worst case for the classic
	// alg=none downgrade. The header algorithm check must fire before
	// any signature handling.
	p, err := NewPolicy(AlgorithmHS256, nil, time.Minute)
	if err != nil {
		t.Fatalf("new policy: %v", err)
	}
	verifier := NewVerifier(p)

	header := encodeSegment(t, map[string]string{"typ": "JWT", "alg": "none"})
	payload := encodeSegment(t, map[string]any{
		"sub":  "attacker",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	raw := header + "." + payload + "."

	if _, err := verifier.Verify(raw); !errors.Is(err, ErrAlgorithmNotAllowed) {
		t.Fatalf("Verify = %v, want ErrAlgorithmNotAllowed", err)
	}
}

func TestVerifyRejectsForeignAlgorithm(t *testing.T) {
	secret := []byte("secret-secret-16")
	p, err := NewPolicy(AlgorithmHS256, secret, time.Minute)
	if err != nil {
		t.Fatalf("new policy: %v", err)
	}
	verifier := NewVerifier(p)

	// Correctly signed under HS384, so only the pinned-algorithm check
	// can reject it.
	raw := signRaw(t, jwt.SigningMethodHS384, Claims{
		Role: "user",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}, secret)

	if _, err := verifier.Verify(raw); !errors.Is(err, ErrAlgorithmNotAllowed) {
		t.Fatalf("Verify = %v, want ErrAlgorithmNotAllowed", err)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewIssuer(newTestPolicy(t, "attacker-guess-secret"))
	verifier := NewVerifier(newTestPolicy(t, "secret-secret-16"))

	raw, err := issuer.Issue("alice", "user", time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := verifier.Verify(raw); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("Verify = %v, want ErrSignatureInvalid", err)
	}
}

func TestVerifyRejectsPayloadTampering(t *testing.T) {
	p := newTestPolicy(t, "secret-secret-16")
	issuer := NewIssuer(p)
	verifier := NewVerifier(p)

	raw, err := issuer.Issue("alice", "user", time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Replace the payload with an escalated one while keeping the
	// original signature. Must fail as a signature mismatch, never as
	// a malformed token.
	parts := strings.Split(raw, ".")
	forged := encodeSegment(t, map[string]any{
		"sub":  "alice",
		"role": "admin",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	tampered := parts[0] + "." + forged + "." + parts[2]

	if _, err := verifier.Verify(tampered); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("Verify = %v, want ErrSignatureInvalid", err)
	}
}

func TestVerifyRejectsSingleCharacterFlip(t *testing.T) {
	p := newTestPolicy(t, "secret-secret-16")
	issuer := NewIssuer(p)
	verifier := NewVerifier(p)

	raw, err := issuer.Issue("alice", "user", time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(raw, ".")
	payload := []byte(parts[1])
	if payload[0] == 'A' {
		payload[0] = 'B'
	} else {
		payload[0] = 'A'
	}
	tampered := parts[0] + "." + string(payload) + "." + parts[2]

	if _, err := verifier.Verify(tampered); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("Verify = %v, want ErrSignatureInvalid", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	secret := []byte("secret-secret-16")
	p, err := NewPolicy(AlgorithmHS256, secret, time.Minute)
	if err != nil {
		t.Fatalf("new policy: %v", err)
	}
	verifier := NewVerifier(p)

	raw := signRaw(t, jwt.SigningMethodHS256, Claims{
		Role: "user",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Minute)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}, secret)

	if _, err := verifier.Verify(raw); !errors.Is(err, ErrExpired) {
		t.Fatalf("Verify = %v, want ErrExpired", err)
	}
}

func TestVerifyRequiresExpiryClaim(t *testing.T) {
	secret := []byte("secret-secret-16")
	p, err := NewPolicy(AlgorithmHS256, secret, time.Minute)
	if err != nil {
		t.Fatalf("new policy: %v", err)
	}
	verifier := NewVerifier(p)

	// Well signed but eternal. Tokens without exp never pass.
	raw := signRaw(t, jwt.SigningMethodHS256, Claims{
		Role: "user",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:  "alice",
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}, secret)

	if _, err := verifier.Verify(raw); !errors.Is(err, ErrMalformed) {
		t.Fatalf("Verify = %v, want ErrMalformed", err)
	}
}

func TestVerifyRequiresSubjectAndRole(t *testing.T) {
	secret := []byte("secret-secret-16")
	p, err := NewPolicy(AlgorithmHS256, secret, time.Minute)
	if err != nil {
		t.Fatalf("new policy: %v", err)
	}
	verifier := NewVerifier(p)

	cases := []struct {
		name   string
		claims Claims
	}{
		{"missing subject", Claims{
			Role: "user",
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}},
		{"missing role", Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "alice",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			raw := signRaw(t, jwt.SigningMethodHS256, tc.claims, secret)
			if _, err := verifier.Verify(raw); !errors.Is(err, ErrMalformed) {
				t.Fatalf("Verify = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestVerifyRejectsCorruptSignatureEncoding(t *testing.T) {
	p := newTestPolicy(t, "secret-secret-16")
	issuer := NewIssuer(p)
	verifier := NewVerifier(p)

	raw, err := issuer.Issue("alice", "user", time.Minute)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	parts := strings.Split(raw, ".")
	tampered := parts[0] + "." + parts[1] + "." + "!!!not-base64!!!"

	if _, err := verifier.Verify(tampered); !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("Verify = %v, want ErrSignatureInvalid", err)
	}
}
