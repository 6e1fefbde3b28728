// Package httpapi is the JSON-over-HTTP boundary in front of the engine.
// It owns the mapping from typed engine errors to status codes and
// caller-safe messages: every token rejection except expiry collapses into
// one generic "Invalid token" response so error differentiation cannot be
// used as a forgery oracle.
package httpapi
