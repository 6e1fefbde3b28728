package httpapi

import (
	"context"
	"net"
	"net/http"

	dgpl "github.com/Tejaswanth2406/dgpl"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Tejaswanth2406/dgpl/middleware"
)

// Server exposes the engine over HTTP.
type Server struct {
	engine *dgpl.Engine
}

// NewServer returns a Server backed by engine.
func NewServer(engine *dgpl.Engine) *Server {
	return &Server{engine: engine}
}

// Routes builds the router:
//
//	POST /register   create an account
//	POST /login      authenticate and receive a bearer token
//	GET  /profile    token-guarded account lookup
//	GET  /health     liveness probe
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)

	r.Post("/register", s.handleRegister)
	r.Post("/login", s.handleLogin)
	r.With(middleware.Guard(s.engine, dgpl.RoleUser, middleware.WithErrorHandler(writeAuthError))).
		Get("/profile", s.handleProfile)
	r.Get("/health", s.handleHealth)

	return r
}

// requestContext enriches the engine context with caller attribution for
// audit events.
func requestContext(r *http.Request) context.Context {
	ctx := r.Context()

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	ctx = dgpl.WithClientIP(ctx, host)
	ctx = dgpl.WithUserAgent(ctx, r.UserAgent())

	return ctx
}
