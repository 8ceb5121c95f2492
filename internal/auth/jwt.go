// Package auth issues and validates the bearer JWTs that guard the demo
// HTTP API's extraction endpoint.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var signingKey []byte

const tokenTTL = 24 * time.Hour

// Init loads the HMAC signing key from JWT_SECRET. A missing secret is a
// configuration error — the service never falls back to a hardcoded key.
func Init() error {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return errors.New("JWT_SECRET is not set")
	}
	signingKey = []byte(secret)
	return nil
}

// Claims is the JWT payload: caller identity plus the registered expiry.
type Claims struct {
	Subject string `json:"sub"`
	jwt.RegisteredClaims
}

// GenerateToken issues an HS256 token for subject, valid for tokenTTL.
func GenerateToken(subject string) (string, error) {
	claims := Claims{
		Subject: subject,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(signingKey)
}

func parseToken(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return signingKey, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

type contextKey int

const claimsContextKey contextKey = iota

// GetClaimsFromContext retrieves the Claims attached by JWTMiddleware.
func GetClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(claimsContextKey).(*Claims)
	if !ok || claims == nil {
		return nil, errors.New("no claims in context")
	}
	return claims, nil
}

// noAuthPaths lists request paths that bypass the bearer-token check.
var noAuthPaths = map[string]bool{
	"/health":    true,
	"/api/token": true,
}

// tokenRequest is the POST /api/token request body. There is no credential
// store behind this demo service — any non-empty subject is accepted, the
// same way the teacher's LoginHandler minted a token once a PIN check
// passed. A production deployment would replace this with real
// authentication; the token issuance and middleware plumbing is unchanged.
type tokenRequest struct {
	Subject string `json:"subject"`
}

// TokenHandler issues a bearer token for the subject named in the request
// body, for use against the middleware-guarded endpoints below.
func TokenHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Subject == "" {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "subject is required"})
		return
	}

	token, err := GenerateToken(req.Subject)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "failed to issue token: " + err.Error()})
		return
	}

	json.NewEncoder(w).Encode(map[string]string{"token": token})
}

// JWTMiddleware validates the Authorization: Bearer header on every
// request except noAuthPaths, attaching the parsed Claims to the request
// context on success.
func JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if noAuthPaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			http.Error(w, `{"error":"missing bearer token"}`, http.StatusUnauthorized)
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claims, err := parseToken(raw)
		if err != nil {
			http.Error(w, `{"error":"invalid or expired token"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), claimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
