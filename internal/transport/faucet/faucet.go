// Package faucet implements the testnet faucet claim client.
package faucet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client requests token claims from a testnet faucet.
type Client struct {
	base string
	http *http.Client
}

// New creates a faucet client for the given base URL.
func New(endpoint string) *Client {
	return &Client{
		base: strings.TrimRight(endpoint, "/"),
		http: &http.Client{Timeout: 30 * time.Second},
	}
}

// Claim requests a top-up for address and returns the faucet's HTTP status.
// The faucet processes claims asynchronously; the caller polls the balance
// to learn when the funds arrive.
func (c *Client) Claim(ctx context.Context, address string) (int, error) {
	payload, err := json.Marshal(map[string]string{"address": address})
	if err != nil {
		return 0, fmt.Errorf("marshaling claim: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+"/api/v3/claims", bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("claiming from faucet: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body) //nolint:errcheck

	return resp.StatusCode, nil
}
