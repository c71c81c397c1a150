// Package inference is the client for the external AI endpoints: image
// similarity search, description enhancement, item matching and face
// detection. Without a base URL it degrades to local fallbacks where one
// exists.
package inference

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

// ErrUnavailable is returned by operations that have no local fallback when
// the service is not configured.
var ErrUnavailable = errors.New("inference service unavailable")

// StatusError is a non-2xx response from the service.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("inference service returned %d: %s", e.Code, e.Body)
}

// Options configures a Client.
type Options struct {
	BaseURL    string
	APIKey     string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client calls the inference service.
type Client struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	http    *http.Client
}

// New creates a client. An empty BaseURL yields a client that only uses the
// local fallbacks.
func New(opts Options) *Client {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{}
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		apiKey:  opts.APIKey,
		timeout: opts.Timeout,
		http:    opts.HTTPClient,
	}
}

// Enabled reports whether a remote service is configured.
func (c *Client) Enabled() bool {
	return c.baseURL != ""
}

// Candidate is an item offered to the matcher.
type Candidate struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	Location    string `json:"location,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// Match is a scored candidate, higher is more similar.
type Match struct {
	ItemID string  `json:"item_id"`
	Score  float64 `json:"score"`
}

type enhanceRequest struct {
	Text string `json:"text"`
}

type enhanceResponse struct {
	Text string `json:"text"`
}

// EnhanceDescription rewrites a free-text item description.
func (c *Client) EnhanceDescription(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if !c.Enabled() {
		return text, nil
	}
	var resp enhanceResponse
	if err := c.post(ctx, "/enhance", enhanceRequest{Text: text}, &resp); err != nil {
		return "", err
	}
	if strings.TrimSpace(resp.Text) == "" {
		return text, nil
	}
	return strings.TrimSpace(resp.Text), nil
}

type imageSearchRequest struct {
	Image       string      `json:"image"`
	ContentType string      `json:"content_type"`
	Candidates  []Candidate `json:"candidates"`
	Limit       int         `json:"limit"`
}

type matchesResponse struct {
	Matches []Match `json:"matches"`
}

// SearchByImage ranks candidates by visual similarity to image.
func (c *Client) SearchByImage(ctx context.Context, image []byte, contentType string, candidates []Candidate, limit int) ([]Match, error) {
	if !c.Enabled() {
		return nil, ErrUnavailable
	}
	req := imageSearchRequest{
		Image:       base64.StdEncoding.EncodeToString(image),
		ContentType: contentType,
		Candidates:  candidates,
		Limit:       limit,
	}
	var resp matchesResponse
	if err := c.post(ctx, "/search/image", req, &resp); err != nil {
		return nil, err
	}
	return truncate(resp.Matches, limit), nil
}

type matchRequest struct {
	Item       Candidate   `json:"item"`
	Candidates []Candidate `json:"candidates"`
	Limit      int         `json:"limit"`
}

// Match ranks candidates by how likely they describe the same object as
// item. Without a service it scores by word overlap.
func (c *Client) Match(ctx context.Context, item Candidate, candidates []Candidate, limit int) ([]Match, error) {
	if !c.Enabled() {
		return LocalMatch(item, candidates, limit), nil
	}
	var resp matchesResponse
	if err := c.post(ctx, "/match", matchRequest{Item: item, Candidates: candidates, Limit: limit}, &resp); err != nil {
		return nil, err
	}
	return truncate(resp.Matches, limit), nil
}

type facesRequest struct {
	Image       string `json:"image"`
	ContentType string `json:"content_type"`
}

type facesResponse struct {
	Faces int `json:"faces"`
}

// DetectFaces returns how many faces the image contains.
func (c *Client) DetectFaces(ctx context.Context, image []byte, contentType string) (int, error) {
	if !c.Enabled() {
		return 0, ErrUnavailable
	}
	var resp facesResponse
	req := facesRequest{Image: base64.StdEncoding.EncodeToString(image), ContentType: contentType}
	if err := c.post(ctx, "/faces", req, &resp); err != nil {
		return 0, err
	}
	return resp.Faces, nil
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("inference request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	slog.Debug("Inference call", "path", path, "status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", path, err)
	}
	return nil
}

func truncate(matches []Match, limit int) []Match {
	if limit > 0 && len(matches) > limit {
		return matches[:limit]
	}
	return matches
}
