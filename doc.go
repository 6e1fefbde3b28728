// Package dgpl is a credential-and-token authentication core: it registers
// user credentials, authenticates them, and issues and verifies signed
// bearer tokens that other services use to authorize requests.
//
// The package is the public surface. It exposes [Engine], [Builder],
// [Config], the [CredentialStore] abstraction with in-memory and Redis
// backends, and value types (AuthResult, MetricsSnapshot, AuditEvent).
// Token mechanics live in the token subpackage, credential hashing in
// password, and the HTTP boundary in httpapi.
//
// # Architecture boundaries
//
//   - The signing algorithm and secret are fixed in an immutable
//     token.Policy built once by [Builder.Build]; nothing read from a
//     request or a token ever influences how verification runs.
//   - The Engine never logs; it reports through the audit sink and the
//     metrics registry, and secret material never appears in either.
//   - Engine methods are safe to call from any number of goroutines after
//     Build. Validate and Authorize are pure apart from the clock; only
//     the credential store mutates shared state, and it enforces atomic
//     check-and-insert on registration.
package dgpl
