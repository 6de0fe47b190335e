// Package api talks to the trade evaluation service.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/jask/tradedesk/internal/trade"
)

// Endpoint is one of the two proposal submission routes.
type Endpoint string

const (
	ValidatePath Endpoint = "/trade/validate"
	EvaluatePath Endpoint = "/trade/evaluate"
	searchPath            = "/players/search"
	healthPath            = "/health"
)

var ErrNoBaseURL = errors.New("api: base url not configured")

// Client is a thin HTTP client for the service. The zero timeout means
// submissions wait for as long as the server takes.
type Client struct {
	baseURL string
	timeout time.Duration
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		timeout: timeout,
		http:    &http.Client{},
	}
}

// WithHTTPClient swaps the transport, mostly for tests.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.http = h
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

func (c *Client) url(path string) (string, error) {
	if c.baseURL == "" {
		return "", ErrNoBaseURL
	}
	return c.baseURL + path, nil
}

// Response is a settled submission: the status and the body as text.
type Response struct {
	Status int
	Body   string
}

// Submit posts p as JSON to endpoint and returns the raw reply. Only transport
// failures are errors; any HTTP status comes back as a Response.
func (c *Client) Submit(ctx context.Context, endpoint Endpoint, p trade.Proposal, requestID string) (Response, error) {
	target, err := c.url(string(endpoint))
	if err != nil {
		return Response{}, err
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(p.Clone())
	if err != nil {
		return Response{}, fmt.Errorf("encode proposal: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return Response{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("read response: %w", err)
	}
	return Response{Status: resp.StatusCode, Body: string(body)}, nil
}

// SearchPlayers asks the catalog for names matching q.
func (c *Client) SearchPlayers(ctx context.Context, q string, limit int) ([]Player, error) {
	target, err := c.url(searchPath)
	if err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("q", q)
	params.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("search players: status %d", resp.StatusCode)
	}

	var out []Player
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode players: %w", err)
	}
	return out, nil
}

// Health pings GET /health and expects {"ok": true}.
func (c *Client) Health(ctx context.Context) error {
	target, err := c.url(healthPath)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var body struct {
		OK bool `json:"ok"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("health: decode: %w", err)
	}
	if resp.StatusCode/100 != 2 || !body.OK {
		return fmt.Errorf("health: status %d", resp.StatusCode)
	}
	return nil
}
