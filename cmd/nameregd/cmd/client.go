package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"namereg/app"
	"namereg/server/api"
)

// apiClient talks to a running node's HTTP API.
type apiClient struct {
	base string
	http *http.Client
}

func newAPIClient(base string) *apiClient {
	return &apiClient{base: base, http: &http.Client{Timeout: 15 * time.Second}}
}

// APIError is a non-2xx reply decoded from the node.
type APIError struct {
	Status int
	api.ErrorResponse
}

func (e *APIError) Error() string {
	if e.Codespace != "" {
		return fmt.Sprintf("%s (codespace %s, code %d, http %d)", e.Message, e.Codespace, e.Code, e.Status)
	}
	return fmt.Sprintf("%s (http %d)", e.Message, e.Status)
}

func (c *apiClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := c.base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var rdr io.Reader
	if body != nil {
		bz, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rdr = bytes.NewReader(bz)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rdr)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bz, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode/100 != 2 {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(bz, &apiErr.ErrorResponse); err != nil || apiErr.Message == "" {
			apiErr.Message = string(bytes.TrimSpace(bz))
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(bz, out)
}

func (c *apiClient) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *apiClient) health(ctx context.Context) (api.HealthResponse, error) {
	var out api.HealthResponse
	err := c.get(ctx, "/healthz", nil, &out)
	return out, err
}

func (c *apiClient) account(ctx context.Context, address string) (api.AccountResponse, error) {
	var out api.AccountResponse
	err := c.get(ctx, "/auth/v1/accounts/"+url.PathEscape(address), nil, &out)
	return out, err
}

func (c *apiClient) broadcast(ctx context.Context, tx app.SignedTx) (app.TxResult, error) {
	var out app.TxResult
	err := c.do(ctx, http.MethodPost, "/txs", nil, tx, &out)
	return out, err
}
