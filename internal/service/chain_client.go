package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"zkpark/internal/entities"
)

// BookingAPI creates reservation sessions on the external booking service.
type BookingAPI interface {
	CreateReservation(ctx context.Context, req entities.BookingRequest) (*entities.BookingResponse, error)
}

// RewardsAPI reads the reward token balance of a wallet.
type RewardsAPI interface {
	TokenBalance(ctx context.Context, wallet string) (string, error)
}

// ChainClient talks to the zkpark booking/rewards service.
type ChainClient struct {
	baseURL    string
	httpClient *http.Client
}

func NewChainClient(baseURL string, httpClient *http.Client) *ChainClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &ChainClient{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

func (c *ChainClient) CreateReservation(ctx context.Context, req entities.BookingRequest) (*entities.BookingResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/reservations", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("reservation API call failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading reservation API response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("API error: %d - %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var out entities.BookingResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("error parsing reservation API response: %w", err)
	}
	return &out, nil
}

// TokenBalance returns the "balance" field as a string; a missing field is "0".
func (c *ChainClient) TokenBalance(ctx context.Context, wallet string) (string, error) {
	endpoint := c.baseURL + "/api/token/balance/" + url.PathEscape(wallet)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("token balance call failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token balance API error: %d", resp.StatusCode)
	}

	balance := gjson.GetBytes(raw, "balance")
	if !balance.Exists() || balance.String() == "" {
		log.Printf("No rewards data found for wallet %s", wallet)
		return "0", nil
	}
	return balance.String(), nil
}
