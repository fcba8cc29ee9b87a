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
	iconsBatchPath   = "/api/icons/batch"
	widgetsBatchPath = "/api/widgets/batch"
)

// AssetClient talks to the icon/widget-data collaborator. Both calls are
// batched; an empty input short-circuits without a network round trip.
type AssetClient struct {
	baseURL string
	http    *http.Client
}

func NewAssetClient(baseURL string, timeout time.Duration) *AssetClient {
	return &AssetClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// ResolveIcons exchanges a deduplicated path list for a path → renderable
// icon map.
func (c *AssetClient) ResolveIcons(ctx context.Context, paths []string) (map[string]string, error) {
	if len(paths) == 0 {
		return map[string]string{}, nil
	}

	var out map[string]string
	if err := c.post(ctx, iconsBatchPath, map[string]interface{}{"paths": paths}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]string{}
	}
	return out, nil
}

// ResolveWidgetData exchanges {id, type, config} entries for an id → initial
// payload map.
func (c *AssetClient) ResolveWidgetData(ctx context.Context, requests []models.WidgetDataRequest) (map[string]json.RawMessage, error) {
	if len(requests) == 0 {
		return map[string]json.RawMessage{}, nil
	}

	var out map[string]json.RawMessage
	if err := c.post(ctx, widgetsBatchPath, map[string]interface{}{"widgets": requests}, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = map[string]json.RawMessage{}
	}
	return out, nil
}

func (c *AssetClient) post(ctx context.Context, path string, body, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("build request %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return &TransportError{Op: "POST " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &TransportError{
			Op:  "POST " + path,
			Err: fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Op: "POST " + path, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
