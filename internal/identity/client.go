package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// MirrorRequest is the account payload pushed to the external identity provider.
type MirrorRequest struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
	PhoneNumber string `json:"phone_number"`
}

// Client talks to the external identity provider's admin API. Mirroring is
// best effort: the relational store is the source of truth, so callers log
// and swallow any error from this client.
type Client struct {
	baseURL    *url.URL
	apiKey     string
	httpClient *http.Client
}

// NewClient builds an identity API client. An empty base URL returns a nil
// client; MirrorAccount on a nil client is a no-op.
func NewClient(baseURL, apiKey string) (*Client, error) {
	if baseURL == "" {
		return nil, nil
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse identity API URL: %w", err)
	}
	return &Client{
		baseURL:    parsed,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// MirrorAccount creates the account on the external provider.
func (c *Client) MirrorAccount(ctx context.Context, account MirrorRequest) error {
	if c == nil {
		return nil
	}

	payload, err := json.Marshal(account)
	if err != nil {
		return fmt.Errorf("marshal account: %w", err)
	}

	rel := &url.URL{Path: "/v1/accounts"}
	u := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("identity API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("identity API returned %s", resp.Status)
	}
	return nil
}
