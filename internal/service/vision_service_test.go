package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisionService_DetectText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/images:annotate", r.URL.Path)
		key := r.URL.Query().Get("key")
		if key == "" {
			key = r.Header.Get("X-Goog-Api-Key")
		}
		assert.Equal(t, "test-key", key)

		var body struct {
			Requests []struct {
				Image struct {
					Content string `json:"content"`
				} `json:"image"`
				Features []struct {
					Type string `json:"type"`
				} `json:"features"`
			} `json:"requests"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Requests, 1)
		assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("png-bytes")), body.Requests[0].Image.Content)
		assert.Equal(t, "TEXT_DETECTION", body.Requests[0].Features[0].Type)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"responses":[{"fullTextAnnotation":{"text":"Name: JANE DOE\nDate of Birth: 01/02/1990"}}]}`))
	}))
	defer srv.Close()

	svc, err := NewVisionService(context.Background(), "test-key", srv.URL+"/")
	require.NoError(t, err)

	text, err := svc.DetectText(context.Background(), []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "Name: JANE DOE\nDate of Birth: 01/02/1990", text)
}

func TestVisionService_NoText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"responses":[{}]}`))
	}))
	defer srv.Close()

	svc, err := NewVisionService(context.Background(), "test-key", srv.URL+"/")
	require.NoError(t, err)

	text, err := svc.DetectText(context.Background(), []byte("blank"))
	require.NoError(t, err)
	assert.Empty(t, text)
}
