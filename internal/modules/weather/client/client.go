package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"shoresquad-server/internal/modules/weather/types"
)

const (
	TemperaturePath = "/air-temperature"
	HumidityPath    = "/relative-humidity"
	WindPath        = "/wind-speed"

	maxBodyBytes = 4 << 20
)

// StatusError is returned when the weather service answers with a non-2xx status.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.URL, e.Code)
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// FetchAll issues the three feed requests concurrently. It succeeds only if
// all three succeed; the first failure cancels the others and is returned.
func (c *Client) FetchAll(ctx context.Context) (types.Feeds, error) {
	var feeds types.Feeds

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return c.fetch(gctx, TemperaturePath, &feeds.Temperature) })
	g.Go(func() error { return c.fetch(gctx, HumidityPath, &feeds.Humidity) })
	g.Go(func() error { return c.fetch(gctx, WindPath, &feeds.Wind) })

	if err := g.Wait(); err != nil {
		return types.Feeds{}, err
	}
	return feeds, nil
}

func (c *Client) fetch(ctx context.Context, path string, out *types.Feed) error {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", url, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Warn("close weather response body", "url", url, "error", err)
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{URL: url, Code: resp.StatusCode}
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodyBytes)).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", url, err)
	}

	c.logger.Debug("weather feed fetched",
		"url", url,
		"stations", len(out.Metadata.Stations),
		"items", len(out.Items),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return nil
}
