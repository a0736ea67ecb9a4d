// Package client fetches sample sets from a running weather-placeholder server.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/i474232898/weather-placeholder/internal/weather"
)

// Options configures a Client. Zero values fall back to defaults.
type Options struct {
	HTTPClient *http.Client
	Timeout    time.Duration
	Backoff    *BackoffConfig
}

// Client talks to the /api/v1/weather endpoints.
type Client struct {
	baseURL string
	http    *http.Client
	backoff BackoffConfig
	circuit *gobreaker.CircuitBreaker
}

// New creates a Client for the server at baseURL (e.g. "http://localhost:8080").
func New(baseURL string, opts Options) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid base url %q", baseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 5 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	backoff := DefaultBackoff
	if opts.Backoff != nil {
		backoff = *opts.Backoff
	}

	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "weather-placeholder",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		backoff: backoff,
		circuit: cb,
	}, nil
}

// Samples asks the server to generate days of samples from start. A nil seed
// lets the server pick a non-deterministic source.
func (c *Client) Samples(ctx context.Context, start weather.Date, days int, seed *int32) (weather.SampleSet, error) {
	values := url.Values{}
	values.Set("start", start.String())
	values.Set("days", strconv.Itoa(days))
	if seed != nil {
		values.Set("seed", strconv.FormatInt(int64(*seed), 10))
	}
	return c.get(ctx, "/api/v1/weather/samples?"+values.Encode())
}

// Sample fetches a previously generated set by ID.
func (c *Client) Sample(ctx context.Context, id string) (weather.SampleSet, error) {
	return c.get(ctx, "/api/v1/weather/samples/"+url.PathEscape(id))
}

// Today fetches the server's set for the current day.
func (c *Client) Today(ctx context.Context) (weather.SampleSet, error) {
	return c.get(ctx, "/api/v1/weather/today")
}

// Reference fetches the regression sequence.
func (c *Client) Reference(ctx context.Context) (weather.SampleSet, error) {
	return c.get(ctx, "/api/v1/weather/reference")
}

func (c *Client) get(ctx context.Context, path string) (weather.SampleSet, error) {
	buildRequest := func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Accept", "application/json")
		return req, nil
	}

	resp, err := doRequestWithResilience(ctx, c.http, c.backoff, c.circuit, buildRequest)
	if err != nil {
		return weather.SampleSet{}, err
	}
	defer resp.Body.Close()

	var set weather.SampleSet
	if err := json.NewDecoder(resp.Body).Decode(&set); err != nil {
		return weather.SampleSet{}, fmt.Errorf("decode sample set: %w", err)
	}
	return set, nil
}

// readErrorMessage extracts the message from the server's error body, falling
// back to the status text.
func readErrorMessage(resp *http.Response) string {
	var payload struct {
		Message string `json:"message"`
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err == nil && json.Unmarshal(body, &payload) == nil && payload.Message != "" {
		return payload.Message
	}
	return http.StatusText(resp.StatusCode)
}
