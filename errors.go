package dgpl

import "errors"

var (
	// ErrInvalidCredentials is returned by Login for an unknown username
	// and for a wrong password alike, so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountExists is returned when registering a username that is
	// already taken.
	ErrAccountExists = errors.New("account already exists")
	// ErrRegistrationInvalid is returned when a registration request is
	// missing required fields.
	ErrRegistrationInvalid = errors.New("invalid registration request")
	// ErrUserNotFound is returned when a looked-up user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrPermissionDenied is returned by Authorize when the claims' role
	// does not satisfy the required role.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrEngineNotReady is returned when an Engine is used before it was
	// fully constructed through the Builder.
	ErrEngineNotReady = errors.New("engine not initialized")
)
