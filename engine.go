package dgpl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Tejaswanth2406/dgpl/password"
	"github.com/Tejaswanth2406/dgpl/token"
	"github.com/google/uuid"
)

// Engine orchestrates the credential store, the password hasher, and the
// token issuer/verifier behind a single concurrency-safe API. Construct it
// through [Builder.Build]; the zero value is not usable.
type Engine struct {
	config   Config
	store    CredentialStore
	hasher   *password.Hasher
	issuer   *token.Issuer
	verifier *token.Verifier
	audit    *auditDispatcher
	metrics  *Metrics
}

// Close drains and stops the audit dispatcher. The Engine must not be used
// afterwards.
func (e *Engine) Close() {
	e.audit.Close()
}

// AuditDropped reports how many audit events were discarded because the
// dispatch buffer was full.
func (e *Engine) AuditDropped() uint64 {
	return e.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time copy of all counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	e.metrics.Inc(id)
}

// Register creates a new account with role "user". The username uniqueness
// check and the insert are one atomic store operation, so of two racing
// registrations for the same username exactly one succeeds and the other
// fails with [ErrAccountExists].
func (e *Engine) Register(ctx context.Context, req RegisterRequest) (*RegisterResult, error) {
	if e.store == nil || e.hasher == nil {
		return nil, ErrEngineNotReady
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		e.emitAudit(ctx, auditEventAccountCreationFailure, false, req.Username, ErrRegistrationInvalid, func() map[string]string {
			return map[string]string{"reason": "missing_fields"}
		})
		return nil, ErrRegistrationInvalid
	}

	hash, err := e.hasher.Hash(req.Password)
	if err != nil {
		e.emitAudit(ctx, auditEventAccountCreationFailure, false, req.Username, err, func() map[string]string {
			return map[string]string{"reason": "hash_failed"}
		})
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := e.store.Create(ctx, CreateUserInput{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         RoleUser,
	})
	if err != nil {
		if errors.Is(err, ErrAccountExists) {
			e.metricInc(MetricRegisterDuplicate)
			e.emitAudit(ctx, auditEventAccountDuplicate, false, req.Username, ErrAccountExists, nil)
			return nil, ErrAccountExists
		}
		e.metricInc(MetricRegisterFailure)
		e.emitAudit(ctx, auditEventAccountCreationFailure, false, req.Username, err, func() map[string]string {
			return map[string]string{"reason": "store_create_failed"}
		})
		return nil, err
	}

	req.Password = ""
	e.metricInc(MetricRegisterSuccess)
	e.emitAudit(ctx, auditEventAccountCreated, true, created.Username, nil, func() map[string]string {
		return map[string]string{"role": string(created.Role)}
	})

	return &RegisterResult{
		UserID:   created.UserID,
		Username: created.Username,
		Role:     created.Role,
	}, nil
}

// Login authenticates the credentials and, on success, issues a signed
// access token with the configured lifetime. An unknown username and a
// wrong password produce the identical [ErrInvalidCredentials].
func (e *Engine) Login(ctx context.Context, username, pass string) (*LoginResult, error) {
	if e.store == nil || e.hasher == nil || e.issuer == nil {
		return nil, ErrEngineNotReady
	}

	user, err := e.store.GetByUsername(ctx, username)
	if err != nil {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, username, ErrInvalidCredentials, func() map[string]string {
			return map[string]string{"reason": "unknown_user"}
		})
		return nil, ErrInvalidCredentials
	}

	ok, err := e.hasher.Verify(pass, user.PasswordHash)
	if err != nil || !ok {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, username, ErrInvalidCredentials, func() map[string]string {
			return map[string]string{"reason": "password_mismatch"}
		})
		return nil, ErrInvalidCredentials
	}

	accessToken, err := e.issuer.Issue(user.Username, string(user.Role), e.config.Token.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	e.metricInc(MetricLoginSuccess)
	e.emitAudit(ctx, auditEventLoginSuccess, true, username, nil, nil)

	return &LoginResult{
		AccessToken: accessToken,
		TokenType:   "bearer",
		ExpiresIn:   e.config.Token.AccessTTL,
	}, nil
}

// Validate verifies a presented token against the engine's algorithm
// policy. Rejections surface as the token package's typed errors
// (token.ErrMalformed, token.ErrAlgorithmNotAllowed,
// token.ErrSignatureInvalid, token.ErrExpired) so the boundary can apply
// its message policy.
func (e *Engine) Validate(ctx context.Context, tokenStr string) (*AuthResult, error) {
	if e.verifier == nil {
		return nil, ErrEngineNotReady
	}
	if e.metrics.LatencyEnabled() {
		start := time.Now()
		defer func() { e.metrics.Observe(MetricValidateLatency, time.Since(start)) }()
	}

	claims, err := e.verifier.Verify(tokenStr)
	if err != nil {
		if errors.Is(err, token.ErrExpired) {
			e.metricInc(MetricTokenExpired)
		} else {
			e.metricInc(MetricTokenRejected)
		}
		return nil, err
	}

	role := Role(claims.Role)
	if !role.Valid() {
		e.metricInc(MetricTokenRejected)
		return nil, token.ErrMalformed
	}

	e.metricInc(MetricTokenAccepted)
	return &AuthResult{Username: claims.Subject, Role: role}, nil
}

// User returns the stored record for username with the password hash
// cleared, or [ErrUserNotFound].
func (e *Engine) User(ctx context.Context, username string) (UserRecord, error) {
	if e.store == nil {
		return UserRecord{}, ErrEngineNotReady
	}
	user, err := e.store.GetByUsername(ctx, username)
	if err != nil {
		return UserRecord{}, err
	}
	user.PasswordHash = ""
	return user, nil
}
