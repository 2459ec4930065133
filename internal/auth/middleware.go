package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

const (
	emailKey contextKey = "email"
	tokenKey contextKey = "token"
)

// Claims are the fields zkpark reads from a managed-auth access token.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Middleware verifies HS256 access tokens issued by the managed-auth provider.
type Middleware struct {
	secret []byte
}

func NewMiddleware(secret string) *Middleware {
	return &Middleware{secret: []byte(secret)}
}

func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			unauthorized(w)
			return
		}
		raw := strings.TrimPrefix(header, "Bearer ")

		claims, err := m.Parse(raw)
		if err != nil {
			log.Printf("token error: %v", err)
			unauthorized(w)
			return
		}

		ctx := context.WithValue(r.Context(), emailKey, claims.Email)
		ctx = context.WithValue(ctx, tokenKey, raw)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Middleware) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	tkn, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !tkn.Valid {
		return nil, errors.New("token not valid")
	}
	if claims.Email == "" {
		return nil, errors.New("token has no email claim")
	}
	return claims, nil
}

// EmailFromContext returns the authenticated caller's email.
func EmailFromContext(ctx context.Context) string {
	email, _ := ctx.Value(emailKey).(string)
	return email
}

// TokenFromContext returns the raw bearer token of the request.
func TokenFromContext(ctx context.Context) string {
	tok, _ := ctx.Value(tokenKey).(string)
	return tok
}

// WithEmail is used by tests and internal callers to attach an identity.
func WithEmail(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, emailKey, email)
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": "Please login to continue"})
}
