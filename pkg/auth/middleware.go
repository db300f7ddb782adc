// Package auth provides bearer token authentication for the admin API.
package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// Middleware validates admin bearer tokens (HS256) on protected routes.
type Middleware struct {
	secret  []byte
	enabled bool
	logger  *zap.Logger
}

// NewMiddleware creates the auth middleware. When enabled is false all
// requests pass through (local development).
func NewMiddleware(secret string, enabled bool, logger *zap.Logger) *Middleware {
	return &Middleware{
		secret:  []byte(secret),
		enabled: enabled,
		logger:  logger.Named("auth"),
	}
}

// RequireAdmin validates the Authorization bearer token before calling next.
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !m.enabled {
			next(w, r)
			return
		}

		token, err := bearerToken(r)
		if err != nil {
			m.unauthorized(w, "Authentication required")
			return
		}

		if err := m.validateToken(token); err != nil {
			m.logger.Debug("token rejected", zap.Error(err))
			m.unauthorized(w, "Invalid or expired token")
			return
		}

		next(w, r)
	}
}

// validateToken parses and verifies an HS256 JWT against the admin secret.
func (m *Middleware) validateToken(tokenStr string) error {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return fmt.Errorf("token is not valid")
	}
	return nil
}

// bearerToken extracts the token from the Authorization header.
func bearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", fmt.Errorf("missing Authorization header")
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", fmt.Errorf("malformed Authorization header")
	}

	return parts[1], nil
}

func (m *Middleware) unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
