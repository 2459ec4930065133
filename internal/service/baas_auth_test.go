package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupabaseAuth_SignIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon-key", r.Header.Get("apikey"))
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "ana@example.com", body["email"])
		w.Write([]byte(`{"access_token":"jwt","token_type":"bearer","expires_in":3600,"refresh_token":"r1"}`))
	}))
	defer srv.Close()

	session, err := NewSupabaseAuth(srv.URL, "anon-key", srv.Client()).SignIn(context.Background(), "ana@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "jwt", session.AccessToken)
	assert.Equal(t, 3600, session.ExpiresIn)
}

func TestSupabaseAuth_ErrorMessages(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{`{"error":"invalid_grant","error_description":"Invalid login credentials"}`, "Invalid login credentials"},
		{`{"code":422,"msg":"User already registered"}`, "User already registered"},
		{`not json`, "auth provider returned 400"},
	}
	for _, tt := range tests {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(tt.body))
		}))

		err := NewSupabaseAuth(srv.URL, "anon-key", srv.Client()).SignUp(context.Background(), "ana@example.com", "x")
		var authErr *AuthError
		require.ErrorAs(t, err, &authErr)
		assert.Equal(t, tt.want, authErr.Message)
		assert.Equal(t, http.StatusBadRequest, authErr.Status)
		srv.Close()
	}
}

func TestSupabaseAuth_SignOut(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/logout", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	require.NoError(t, NewSupabaseAuth(srv.URL+"/", "anon-key", srv.Client()).SignOut(context.Background(), "jwt"))
	assert.Equal(t, "Bearer jwt", gotAuth)
}
