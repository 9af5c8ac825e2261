// Package chain holds the client for the external ledger gateway. The
// gateway fronts the chain itself; this process only ever submits value
// transfers and reads back their transaction references.
package chain

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"hopechain/config"

	"github.com/rs/zerolog"
)

// GatewayClient implements ports.ChainClient against the ledger gateway's
// HTTP API. Submissions are never retried here: the caller decides what a
// failed or ambiguous submission means.
type GatewayClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        zerolog.Logger
}

// NewGatewayClient creates a ledger gateway client.
func NewGatewayClient(cfg config.ChainConfig, log zerolog.Logger) *GatewayClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GatewayClient{
		baseURL: cfg.GatewayURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		log: log,
	}
}

type submitRequest struct {
	Operation string   `json:"operation"`
	Args      []string `json:"args"`
	Value     int64    `json:"value"`
}

type submitResponse struct {
	TransactionHash string `json:"transaction_hash"`
	Error           string `json:"error,omitempty"`
}

// Submit hands a value transfer to the gateway and returns the transaction
// reference the ledger assigned. Any non-2xx response or transport failure
// is an error; the transfer must then be treated as not having happened.
func (c *GatewayClient) Submit(ctx context.Context, operation string, args []string, value int64) (string, error) {
	body, err := json.Marshal(submitRequest{Operation: operation, Args: args, Value: value})
	if err != nil {
		return "", fmt.Errorf("marshal submit request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transactions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build submit request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("submit to ledger gateway: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read gateway response: %w", err)
	}

	var out submitResponse
	if err := json.Unmarshal(payload, &out); err != nil {
		return "", fmt.Errorf("decode gateway response (status %d): %w", resp.StatusCode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := out.Error
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		c.log.Warn().
			Int("status", resp.StatusCode).
			Str("operation", operation).
			Msg("ledger gateway rejected submission")
		return "", fmt.Errorf("ledger gateway rejected submission: %s", msg)
	}

	if out.TransactionHash == "" {
		return "", fmt.Errorf("ledger gateway returned no transaction hash")
	}

	c.log.Debug().
		Str("operation", operation).
		Str("tx_ref", out.TransactionHash).
		Msg("ledger submission confirmed")

	return out.TransactionHash, nil
}
