// Package contentapi talks to the external content API that serves the sign catalogs.
package contentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/aliskhannn/auslan-bot/internal/domain/entities"
)

var (
	ErrUnavailable = errors.New("content api unavailable")
	ErrNoEndpoint  = errors.New("no endpoint configured for module")
)

const maxResponseBytes = 8 << 20

// Client fetches catalogs over HTTP. It never retries; a failed fetch is reported
// to the caller, which degrades to an empty pool.
type Client struct {
	baseURL string
	paths   map[entities.ModuleKey]string
	http    *http.Client
}

// NewClient builds a client for baseURL with one path per catalog module.
func NewClient(baseURL string, paths map[entities.ModuleKey]string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		paths:   paths,
		http:    &http.Client{Timeout: timeout},
	}
}

// Fetch returns the raw catalog entries for module.
func (c *Client) Fetch(ctx context.Context, module entities.ModuleKey) ([]entities.CatalogEntry, error) {
	p, ok := c.paths[module]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoEndpoint, module)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+p, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	entries, err := DecodeEntries(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return entries, nil
}

// wireEntry accepts the field spellings the content API has used over time.
type wireEntry struct {
	ID       json.RawMessage `json:"id"`
	Title    string          `json:"title"`
	Name     string          `json:"name"`
	Filename string          `json:"filename"`
	URL      string          `json:"url"`
	MediaURL string          `json:"media_url"`
	VideoURL string          `json:"video_url"`
	ImageURL string          `json:"image_url"`
}

// DecodeEntries parses either a bare JSON array or an object wrapping the
// array under "items" or "data".
func DecodeEntries(body []byte) ([]entities.CatalogEntry, error) {
	body = bytes.TrimSpace(body)

	var list []wireEntry
	if len(body) > 0 && body[0] == '{' {
		var wrapper struct {
			Items []wireEntry `json:"items"`
			Data  []wireEntry `json:"data"`
		}
		if err := json.Unmarshal(body, &wrapper); err != nil {
			return nil, fmt.Errorf("decode catalog: %w", err)
		}
		list = wrapper.Items
		if list == nil {
			list = wrapper.Data
		}
	} else if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	out := make([]entities.CatalogEntry, 0, len(list))
	for _, w := range list {
		out = append(out, entities.CatalogEntry{
			ID:       rawID(w.ID),
			Title:    firstNonEmpty(w.Title, w.Name),
			Filename: w.Filename,
			MediaURL: firstNonEmpty(w.MediaURL, w.VideoURL, w.ImageURL, w.URL),
		})
	}

	return out, nil
}

// rawID accepts string and numeric ids.
func rawID(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		if i, err := strconv.ParseInt(n.String(), 10, 64); err == nil {
			return strconv.FormatInt(i, 10)
		}
		return n.String()
	}

	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
