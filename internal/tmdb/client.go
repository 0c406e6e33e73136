// Package tmdb is a small client for The Movie Database v3 API covering movie
// search, movie details and video lists.
package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/metinatakli/movie-catalog/internal/domain"
	"github.com/metinatakli/movie-catalog/internal/metrics"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://api.themoviedb.org/3"

	breakerFailureThreshold = 5
	breakerOpenTimeout      = 30 * time.Second
	maxErrorBody            = 512
)

// Config configures a Client. A zero RequestsPerSecond disables pacing and
// CircuitBreaker is off unless set, so a zero Config keeps no state between
// calls.
type Config struct {
	APIKey            string
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	CircuitBreaker    bool
}

// Client calls TMDB without retries. Batch jobs can pace requests with a token
// bucket and guard them with a circuit breaker, so a failing upstream is
// reported immediately.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	breaker    *gobreaker.CircuitBreaker[[]byte]
	logger     *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	c := &Client{
		apiKey:     cfg.APIKey,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}

	if cfg.RequestsPerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	if !cfg.CircuitBreaker {
		return c
	}

	c.breaker = gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        "tmdb",
		MaxRequests: 1,
		Timeout:     breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, domain.ErrRecordNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("circuit breaker state changed", "breaker", name, "from", from.String(), "to", to.String())
			metrics.SetTMDBCircuitOpen(to == gobreaker.StateOpen)
		},
	})

	return c
}

// Configured reports whether an API key is available.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// MovieVideos returns the video list of a movie. An unknown id yields
// domain.ErrRecordNotFound.
func (c *Client) MovieVideos(ctx context.Context, tmdbID int) ([]domain.Video, error) {
	var resp videosResponse

	err := c.get(ctx, "videos", fmt.Sprintf("/movie/%d/videos", tmdbID), nil, &resp)
	if err != nil {
		return nil, err
	}

	return resp.toVideos(), nil
}

// SearchMovie returns the most relevant hit for the title, or
// domain.ErrRecordNotFound when the search is empty.
func (c *Client) SearchMovie(ctx context.Context, title string) (*domain.MovieMatch, error) {
	params := url.Values{}
	params.Set("query", title)
	params.Set("language", "en-US")
	params.Set("page", "1")
	params.Set("include_adult", "false")

	var resp searchResponse

	err := c.get(ctx, "search", "/search/movie", params, &resp)
	if err != nil {
		return nil, err
	}

	if len(resp.Results) == 0 {
		return nil, domain.ErrRecordNotFound
	}

	best := resp.Results[0]

	return &domain.MovieMatch{TmdbID: best.ID, Title: best.Title}, nil
}

// MovieDetails fetches a movie with its credits, videos and release dates in a
// single request.
func (c *Client) MovieDetails(ctx context.Context, tmdbID int) (*domain.MovieDetails, error) {
	params := url.Values{}
	params.Set("language", "en-US")
	params.Set("append_to_response", "credits,videos,release_dates")

	var resp detailsResponse

	err := c.get(ctx, "details", "/movie/"+strconv.Itoa(tmdbID), params, &resp)
	if err != nil {
		return nil, err
	}

	return resp.toDetails(), nil
}

func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values, dst any) error {
	if !c.Configured() {
		return domain.ErrProviderNotConfigured
	}

	if c.limiter != nil {
		err := c.limiter.Wait(ctx)
		if err != nil {
			return fmt.Errorf("tmdb %s: %w", endpoint, err)
		}
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_key", c.apiKey)

	body, err := c.fetch(ctx, c.baseURL+path+"?"+params.Encode())
	if err != nil {
		metrics.RecordTMDBRequest(endpoint, outcome(err))

		if errors.Is(err, domain.ErrRecordNotFound) {
			return err
		}

		return fmt.Errorf("tmdb %s: %w", endpoint, err)
	}

	metrics.RecordTMDBRequest(endpoint, "ok")

	err = json.Unmarshal(body, dst)
	if err != nil {
		return fmt.Errorf("tmdb %s: failed to decode response: %w", endpoint, err)
	}

	return nil
}

func (c *Client) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if c.breaker == nil {
		return c.do(ctx, rawURL)
	}

	return c.breaker.Execute(func() ([]byte, error) {
		return c.do(ctx, rawURL)
	})
}

func (c *Client) do(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch results: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, domain.ErrRecordNotFound
	case resp.StatusCode != http.StatusOK:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(snippet)}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	return body, nil
}

// StatusError is returned when TMDB answers with an unexpected status code.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("provider returned status %d", e.StatusCode)
}

func outcome(err error) string {
	var statusErr *StatusError

	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return "not_found"
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "circuit_open"
	case errors.As(err, &statusErr):
		return "status_" + strconv.Itoa(statusErr.StatusCode)
	default:
		return "error"
	}
}
