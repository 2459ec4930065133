package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"zkpark/internal/entities"
)

func TestChainClient_CreateReservation(t *testing.T) {
	var got entities.BookingRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/reservations", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Write([]byte(`{"success":true,"message":"created","sessionId":"sess-42"}`))
	}))
	defer srv.Close()

	c := NewChainClient(srv.URL+"/", srv.Client())
	resp, err := c.CreateReservation(context.Background(), entities.BookingRequest{
		User:      "0xuser",
		SpotOwner: "0xowner",
		StartTime: "2025-03-23T09:00:00Z",
		EndTime:   "2025-03-23T12:00:00Z",
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "sess-42", resp.SessionID)
	assert.Equal(t, "0xowner", got.SpotOwner)
	assert.Equal(t, "2025-03-23T12:00:00Z", got.EndTime)
}

func TestChainClient_CreateReservationHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "spot taken", http.StatusConflict)
	}))
	defer srv.Close()

	_, err := NewChainClient(srv.URL, srv.Client()).CreateReservation(context.Background(), entities.BookingRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "409")
	assert.Contains(t, err.Error(), "spot taken")
}

func TestChainClient_TokenBalance(t *testing.T) {
	cases := map[string]string{
		`{"balance":"120"}`: "120",
		`{"balance":42.5}`:  "42.5",
		`{"other":1}`:       "0",
	}
	for body, want := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/token/balance/0xabc", r.URL.Path)
			w.Write([]byte(body))
		}))
		got, err := NewChainClient(srv.URL, srv.Client()).TokenBalance(context.Background(), "0xabc")
		srv.Close()
		require.NoError(t, err)
		assert.Equal(t, want, got, body)
	}
}

func TestChainClient_TokenBalanceServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewChainClient(srv.URL, srv.Client()).TokenBalance(context.Background(), "0xabc")
	assert.Error(t, err)
}
