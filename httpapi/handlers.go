package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	dgpl "github.com/Tejaswanth2406/dgpl"
	"github.com/Tejaswanth2406/dgpl/middleware"
	"github.com/Tejaswanth2406/dgpl/token"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	Msg      string `json:"msg"`
	Username string `json:"username"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken      string `json:"access_token"`
	TokenType        string `json:"token_type"`
	ExpiresInMinutes int    `json:"expires_in_minutes"`
}

type profileResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.engine.Register(requestContext(r), dgpl.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, dgpl.ErrAccountExists):
			writeDetail(w, http.StatusBadRequest, "Username already exists")
		case errors.Is(err, dgpl.ErrRegistrationInvalid):
			writeDetail(w, http.StatusBadRequest, "Invalid registration request")
		default:
			writeDetail(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{
		Msg:      "user registered",
		Username: result.Username,
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.engine.Login(requestContext(r), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, dgpl.ErrInvalidCredentials) {
			writeDetail(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken:      result.AccessToken,
		TokenType:        result.TokenType,
		ExpiresInMinutes: int(result.ExpiresIn.Minutes()),
	})
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	res, ok := middleware.AuthResultFromContext(r.Context())
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	user, err := s.engine.User(r.Context(), res.Username)
	if err != nil {
		if errors.Is(err, dgpl.ErrUserNotFound) {
			writeDetail(w, http.StatusNotFound, "User not found")
			return
		}
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{
		Username: user.Username,
		Email:    user.Email,
		Role:     string(user.Role),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeAuthError renders guard rejections. Expiry is the only rejection a
// caller can tell apart; everything else reads the same.
func writeAuthError(w http.ResponseWriter, _ *http.Request, err error) {
	switch {
	case errors.Is(err, dgpl.ErrPermissionDenied):
		writeDetail(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, token.ErrExpired):
		writeDetail(w, http.StatusUnauthorized, "Token expired")
	default:
		writeDetail(w, http.StatusUnauthorized, "Invalid token")
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
