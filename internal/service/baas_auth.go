package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"
	"zkpark/internal/entities"
)

// AuthProvider is the managed-auth backend that owns credentials and sessions.
type AuthProvider interface {
	SignUp(ctx context.Context, email, password string) error
	SignIn(ctx context.Context, email, password string) (*entities.Session, error)
	SignOut(ctx context.Context, accessToken string) error
}

// AuthError is a rejection reported by the provider, with its own message.
type AuthError struct {
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// SupabaseAuth is a GoTrue client.
type SupabaseAuth struct {
	baseURL    string
	anonKey    string
	httpClient *http.Client
}

func NewSupabaseAuth(baseURL, anonKey string, httpClient *http.Client) *SupabaseAuth {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &SupabaseAuth{baseURL: strings.TrimRight(baseURL, "/"), anonKey: anonKey, httpClient: httpClient}
}

func (s *SupabaseAuth) SignUp(ctx context.Context, email, password string) error {
	_, err := s.post(ctx, "/auth/v1/signup", "", map[string]string{"email": email, "password": password})
	return err
}

func (s *SupabaseAuth) SignIn(ctx context.Context, email, password string) (*entities.Session, error) {
	raw, err := s.post(ctx, "/auth/v1/token?grant_type=password", "", map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, err
	}
	var session entities.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("error parsing auth session: %w", err)
	}
	if session.AccessToken == "" {
		return nil, &AuthError{Status: http.StatusUnauthorized, Message: "No session returned"}
	}
	return &session, nil
}

func (s *SupabaseAuth) SignOut(ctx context.Context, accessToken string) error {
	_, err := s.post(ctx, "/auth/v1/logout", accessToken, nil)
	return err
}

func (s *SupabaseAuth) post(ctx context.Context, path, bearer string, payload interface{}) ([]byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("apikey", s.anonKey)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth provider call failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &AuthError{Status: resp.StatusCode, Message: providerMessage(raw, resp.StatusCode)}
	}
	return raw, nil
}

// GoTrue reports errors under different keys depending on the endpoint.
func providerMessage(raw []byte, status int) string {
	for _, path := range []string{"error_description", "msg", "message", "error"} {
		if v := gjson.GetBytes(raw, path); v.Exists() && v.String() != "" {
			return v.String()
		}
	}
	return fmt.Sprintf("auth provider returned %d", status)
}
