package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	dgpl "github.com/Tejaswanth2406/dgpl"
)

type authResultContextKey struct{}

// AuthResultFromContext returns the result stored by [Guard] for the
// current request.
func AuthResultFromContext(ctx context.Context) (*dgpl.AuthResult, bool) {
	res, ok := ctx.Value(authResultContextKey{}).(*dgpl.AuthResult)
	return res, ok
}

// ErrMissingToken is passed to the error handler when the Authorization
// header carries no bearer token.
var ErrMissingToken = errors.New("missing bearer token")

// ErrorHandler renders a rejected request. err is one of the token
// package's typed verification errors, [ErrMissingToken], or
// dgpl.ErrPermissionDenied.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// Option configures Guard.
type Option func(*options)

type options struct {
	onError ErrorHandler
}

// WithErrorHandler replaces the default plain-text 401/403 renderer.
func WithErrorHandler(fn ErrorHandler) Option {
	return func(o *options) {
		if fn != nil {
			o.onError = fn
		}
	}
}

func defaultErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	if errors.Is(err, dgpl.ErrPermissionDenied) {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	http.Error(w, "unauthorized", http.StatusUnauthorized)
}

// Guard verifies the request's bearer token through engine and checks the
// claims against required. On success the AuthResult is attached to the
// request context; on failure the error handler renders the response and
// the wrapped handler never runs.
func Guard(engine *dgpl.Engine, required dgpl.Role, opts ...Option) func(http.Handler) http.Handler {
	o := options{onError: defaultErrorHandler}
	for _, opt := range opts {
		opt(&o)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				o.onError(w, r, dgpl.ErrEngineNotReady)
				return
			}

			bearer, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				o.onError(w, r, ErrMissingToken)
				return
			}

			res, err := engine.Validate(r.Context(), bearer)
			if err != nil {
				o.onError(w, r, err)
				return
			}
			if err := engine.Authorize(res, required); err != nil {
				o.onError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), authResultContextKey{}, res)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
