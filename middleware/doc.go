// Package middleware provides the HTTP guard that verifies bearer tokens
// through an Engine and enforces a required role before the wrapped
// handler runs.
package middleware
