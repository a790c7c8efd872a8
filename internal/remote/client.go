// Package remote is the thin client for the external transaction service.
// Each call is a single blocking round trip; there is no retry, no backoff,
// and no idempotency key. Failures surface as generic wrapped errors and
// callers re-fetch the list after mutations to observe authoritative state.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fintrack/internal/core"
)

// ErrNotFound reports that the remote service has no record with the
// requested id.
var ErrNotFound = errors.New("transaction not found")

type Client struct {
	baseURL string
	http    *http.Client
}

// New builds a client for the given base URL (e.g. "http://localhost:8000").
// The transport timeout is the only deadline this client enforces.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

// List fetches all transactions.
func (c *Client) List(ctx context.Context) ([]core.Transaction, error) {
	var txs []core.Transaction
	if err := c.do(ctx, http.MethodGet, "/api/transactions", nil, &txs); err != nil {
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}
	if txs == nil {
		txs = []core.Transaction{}
	}
	return txs, nil
}

// Create posts a new transaction and returns the stored record.
func (c *Client) Create(ctx context.Context, in core.TransactionInput) (core.Transaction, error) {
	var tx core.Transaction
	if err := c.do(ctx, http.MethodPost, "/api/transactions", in, &tx); err != nil {
		return core.Transaction{}, fmt.Errorf("failed to create transaction: %w", err)
	}
	return tx, nil
}

// Push posts a full transaction record, preserving its id. Mirror replays
// use this so that both sides agree on ids.
func (c *Client) Push(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	var out core.Transaction
	if err := c.do(ctx, http.MethodPost, "/api/transactions", tx, &out); err != nil {
		return core.Transaction{}, fmt.Errorf("failed to create transaction: %w", err)
	}
	return out, nil
}

// Update sends a partial update for the given id.
func (c *Client) Update(ctx context.Context, id string, patch core.TransactionPatch) (core.Transaction, error) {
	var tx core.Transaction
	if err := c.do(ctx, http.MethodPut, "/api/transactions/"+url.PathEscape(id), patch, &tx); err != nil {
		return core.Transaction{}, fmt.Errorf("failed to update transaction: %w", err)
	}
	return tx, nil
}

// Delete removes the transaction with the given id.
func (c *Client) Delete(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/api/transactions/"+url.PathEscape(id), nil, nil); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		bs, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(bs)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		// Drain so the connection can be reused; the body is not part of
		// the error surface.
		_, _ = io.Copy(io.Discard, resp.Body)
		if resp.StatusCode == http.StatusNotFound {
			return ErrNotFound
		}
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
