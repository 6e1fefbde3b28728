package dgpl

import (
	"context"
	"time"
)

// Role is the permission level carried in a user record and in token
// claims.
type Role string

const (
	// RoleUser is the default role assigned at registration.
	RoleUser Role = "user"
	// RoleAdmin is the elevated role; it is only ever set through an
	// explicit administrative path, never through registration.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Satisfies reports whether a holder of r meets required. Admin satisfies
// every valid role; user satisfies only user.
func (r Role) Satisfies(required Role) bool {
	if !required.Valid() {
		return false
	}
	return r == RoleAdmin || r == required
}

// UserRecord is the full account record owned by a [CredentialStore].
// PasswordHash is an opaque output of the password hasher; nothing outside
// the store and the login path reads it.
type UserRecord struct {
	UserID       string `json:"user_id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
	Role         Role   `json:"role"`
}

// CreateUserInput carries the fields for a new account record.
type CreateUserInput struct {
	UserID       string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
}

// CredentialStore owns user records keyed by unique username. Implementers
// must make Create a single atomic check-and-insert: two concurrent
// creations of the same username must never both succeed.
type CredentialStore interface {
	// Create inserts a new record, failing with [ErrAccountExists] if the
	// username is already present. The existence check and the insert are
	// one indivisible step.
	Create(ctx context.Context, input CreateUserInput) (UserRecord, error)
	// GetByUsername returns a consistent snapshot of the record, or
	// [ErrUserNotFound].
	GetByUsername(ctx context.Context, username string) (UserRecord, error)
}

// RegisterRequest carries the fields of a registration call.
type RegisterRequest struct {
	Username string
	Email    string
	Password string
}

// RegisterResult is returned by [Engine.Register].
type RegisterResult struct {
	UserID   string
	Username string
	Role     Role
}

// LoginResult is returned by [Engine.Login]. TokenType is always "bearer".
type LoginResult struct {
	AccessToken string
	TokenType   string
	ExpiresIn   time.Duration
}

// AuthResult is returned by [Engine.Validate] for an accepted token. It is
// derived entirely from verified claims; no store lookup is involved.
type AuthResult struct {
	Username string
	Role     Role
}
