package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"homegrid-backend/internal/models"
)

const (
	configPath = "/api/config"
	importPath = "/api/config/import"
)

// DocumentClient talks to the opaque config document store. The store owns
// the document; this client only gets, merge-patches and replaces it.
type DocumentClient struct {
	baseURL string
	http    *http.Client
}

func NewDocumentClient(baseURL string, timeout time.Duration) *DocumentClient {
	return &DocumentClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// Get fetches the full current document.
func (c *DocumentClient) Get(ctx context.Context) (*models.Config, error) {
	var out models.Config
	if err := c.do(ctx, http.MethodGet, configPath, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Merge sends a partial document; the store merges it into the persisted
// document and acknowledges.
func (c *DocumentClient) Merge(ctx context.Context, patch models.ConfigPatch) error {
	return c.do(ctx, http.MethodPost, configPath, patch, nil)
}

// Replace swaps the persisted document wholesale.
func (c *DocumentClient) Replace(ctx context.Context, cfg *models.Config) error {
	return c.do(ctx, http.MethodPost, importPath, cfg, nil)
}

func (c *DocumentClient) do(ctx context.Context, method, path string, body, out interface{}) error {
	endpoint := c.baseURL + path

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request %s: %w", path, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &TransportError{
			Op:  method + " " + path,
			Err: fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: method + " " + path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
