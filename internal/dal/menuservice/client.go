package menuservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/allo/restaurant/internal/service/models/menuitem"
	"github.com/sethvargo/go-retry"
	"github.com/sony/gobreaker/v2"
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel"
)

// Client is a resilient client for the menu service lookup endpoint.
//
// A 404 from the menu service is a business outcome, not a fault: it is
// returned as menuitem.ErrNotFound immediately, is never retried and never
// counts against the circuit breaker. Everything else is retried with backoff
// and, once retries exhaust or the breaker opens, coalesced into
// menuitem.ErrUnavailable.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[menuitem.MenuItem]

	maxRetries     uint64
	retryBackoff   time.Duration
	attemptTimeout time.Duration
}

// Config holds the retry and circuit breaker policies of the client.
type Config struct {
	BaseURL             string
	MaxRetries          uint64
	RetryBackoff        time.Duration
	AttemptTimeout      time.Duration
	BreakerMinRequests  uint32
	BreakerFailureRatio float64
	BreakerInterval     time.Duration
	BreakerCooldown     time.Duration
}

// NewClient creates a menu service client with an injected HTTP client so the
// transport, the retry policy and the breaker are each testable in isolation.
func NewClient(cfg Config, httpClient *http.Client) *Client {
	breaker := gobreaker.NewCircuitBreaker[menuitem.MenuItem](gobreaker.Settings{
		Name:        "menu-service",
		Interval:    cfg.BreakerInterval,
		Timeout:     cfg.BreakerCooldown,
		ReadyToTrip: readyToTrip(cfg.BreakerMinRequests, cfg.BreakerFailureRatio),
		// A definitive not-found must not pollute availability metrics.
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, menuitem.ErrNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("Circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})

	return &Client{
		baseURL:        cfg.BaseURL,
		httpClient:     httpClient,
		breaker:        breaker,
		maxRetries:     cfg.MaxRetries,
		retryBackoff:   cfg.RetryBackoff,
		attemptTimeout: cfg.AttemptTimeout,
	}
}

// MustNewClient creates a menu service client from viper configuration.
func MustNewClient() *Client {
	cfg := Config{
		BaseURL:             viper.GetString("menu_service.url"),
		MaxRetries:          viper.GetUint64("menu_service.retry.max_retries"),
		RetryBackoff:        viper.GetDuration("menu_service.retry.backoff"),
		AttemptTimeout:      viper.GetDuration("menu_service.attempt_timeout"),
		BreakerMinRequests:  viper.GetUint32("menu_service.breaker.min_requests"),
		BreakerFailureRatio: viper.GetFloat64("menu_service.breaker.failure_ratio"),
		BreakerInterval:     viper.GetDuration("menu_service.breaker.interval"),
		BreakerCooldown:     viper.GetDuration("menu_service.breaker.cooldown"),
	}
	if cfg.BaseURL == "" {
		panic("menu_service.url is not set in config")
	}

	return NewClient(cfg, &http.Client{})
}

func readyToTrip(minRequests uint32, failureRatio float64) func(gobreaker.Counts) bool {
	return func(counts gobreaker.Counts) bool {
		ratio := float64(counts.TotalFailures) / float64(counts.Requests)
		return counts.Requests >= minRequests && ratio >= failureRatio
	}
}

// GetMenuItemByID resolves a menu item through the breaker and retry policies.
func (c *Client) GetMenuItemByID(ctx context.Context, id string) (menuitem.MenuItem, error) {
	ctx, span := otel.Tracer("order-svc").Start(ctx, "MenuServiceClient.GetMenuItemByID")
	defer span.End()

	item, err := c.breaker.Execute(func() (menuitem.MenuItem, error) {
		return c.getWithRetry(ctx, id)
	})
	if err != nil {
		if errors.Is(err, menuitem.ErrNotFound) {
			return menuitem.MenuItem{}, err
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			slog.Error("Circuit breaker short-circuited menu service call", "menu_item_id", id)

			return menuitem.MenuItem{}, menuitem.ErrUnavailable
		}

		slog.Error("Menu service call failed after retries", "menu_item_id", id, "error", err)

		return menuitem.MenuItem{}, fmt.Errorf("%w: %v", menuitem.ErrUnavailable, err)
	}

	return item, nil
}

// getWithRetry performs the lookup with bounded exponential backoff. Each
// attempt carries its own timeout, so total latency is bounded by
// attempts x (timeout + backoff).
func (c *Client) getWithRetry(ctx context.Context, id string) (menuitem.MenuItem, error) {
	var item menuitem.MenuItem

	backoff := retry.WithMaxRetries(c.maxRetries, retry.NewExponential(c.retryBackoff))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		found, err := c.getMenuItem(ctx, id)
		if err != nil {
			if errors.Is(err, menuitem.ErrNotFound) {
				return err
			}

			return retry.RetryableError(err)
		}
		item = found

		return nil
	})

	return item, err
}

func (c *Client) getMenuItem(ctx context.Context, id string) (menuitem.MenuItem, error) {
	ctx, cancel := context.WithTimeout(ctx, c.attemptTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/menu-items/%s", c.baseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return menuitem.MenuItem{}, fmt.Errorf("failed to build menu service request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return menuitem.MenuItem{}, fmt.Errorf("menu service request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return menuitem.MenuItem{}, menuitem.ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return menuitem.MenuItem{}, fmt.Errorf("menu service returned status %d", resp.StatusCode)
	}

	var item menuitem.MenuItem
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		return menuitem.MenuItem{}, fmt.Errorf("failed to decode menu item: %w", err)
	}

	return item, nil
}
