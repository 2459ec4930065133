package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"

	"zkpark/internal/entities"
)

// CredentialIssuer issues a verifiable credential for a subject.
type CredentialIssuer interface {
	Issue(ctx context.Context, req entities.CredentialRequest) (map[string]interface{}, error)
}

type HumanityService struct {
	url        string
	apiKey     string
	httpClient *http.Client
}

func NewHumanityService(url, apiKey string, httpClient *http.Client) *HumanityService {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HumanityService{url: url, apiKey: apiKey, httpClient: httpClient}
}

func (s *HumanityService) Issue(ctx context.Context, req entities.CredentialRequest) (map[string]interface{}, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("X-API-Token", s.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("credential issuance call failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("credential issuer returned %d: %s", resp.StatusCode, raw)
	}

	var out map[string]interface{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("error parsing credential response: %w", err)
	}
	log.Printf("VC issued for subject %s", req.SubjectAddress)
	return out, nil
}
