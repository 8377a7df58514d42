package menuservice

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/allo/restaurant/internal/service/models/menuitem"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(baseURL string) Config {
	return Config{
		BaseURL:             baseURL,
		MaxRetries:          2,
		RetryBackoff:        time.Millisecond,
		AttemptTimeout:      100 * time.Millisecond,
		BreakerMinRequests:  3,
		BreakerFailureRatio: 0.6,
		BreakerInterval:     time.Minute,
		BreakerCooldown:     time.Minute,
	}
}

func TestGetMenuItemByID(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		assert.Equal(t, "/menu-items/pizza-1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(menuitem.MenuItem{
			ID:    "pizza-1",
			Name:  "Margherita",
			Price: decimal.RequireFromString("8.90"),
		})
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), srv.Client())

	item, err := client.GetMenuItemByID(context.Background(), "pizza-1")

	require.NoError(t, err)
	assert.Equal(t, "pizza-1", item.ID)
	assert.Equal(t, "Margherita", item.Name)
	assert.True(t, item.Price.Equal(decimal.RequireFromString("8.90")))
	assert.EqualValues(t, 1, requests.Load())
}

func TestGetMenuItemByID_NotFoundIsNotRetried(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), srv.Client())

	_, err := client.GetMenuItemByID(context.Background(), "ghost-item")

	require.ErrorIs(t, err, menuitem.ErrNotFound)
	assert.NotErrorIs(t, err, menuitem.ErrUnavailable)
	assert.EqualValues(t, 1, requests.Load(), "404 must terminate without retries")
}

func TestGetMenuItemByID_ServerErrorsRetriedThenUnavailable(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), srv.Client())

	_, err := client.GetMenuItemByID(context.Background(), "pizza-1")

	require.ErrorIs(t, err, menuitem.ErrUnavailable)
	assert.EqualValues(t, 3, requests.Load(), "initial attempt plus two retries")
}

func TestGetMenuItemByID_RecoversWithinRetryBudget(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusBadGateway)

			return
		}
		_ = json.NewEncoder(w).Encode(menuitem.MenuItem{ID: "pizza-1", Name: "Margherita"})
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), srv.Client())

	item, err := client.GetMenuItemByID(context.Background(), "pizza-1")

	require.NoError(t, err)
	assert.Equal(t, "pizza-1", item.ID)
	assert.EqualValues(t, 2, requests.Load())
}

func TestGetMenuItemByID_BreakerOpensAndShortCircuits(t *testing.T) {
	var requests atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		requests.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), srv.Client())

	// Three breaker-visible failures cross min_requests at a 100% failure
	// ratio and open the breaker.
	for i := 0; i < 3; i++ {
		_, err := client.GetMenuItemByID(context.Background(), "pizza-1")
		require.ErrorIs(t, err, menuitem.ErrUnavailable)
	}
	afterTrip := requests.Load()

	_, err := client.GetMenuItemByID(context.Background(), "pizza-1")

	require.ErrorIs(t, err, menuitem.ErrUnavailable)
	assert.Equal(t, afterTrip, requests.Load(), "open breaker must not reach the server")
}

func TestGetMenuItemByID_NotFoundNeverTripsBreaker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/menu-items/pizza-1" {
			_ = json.NewEncoder(w).Encode(menuitem.MenuItem{ID: "pizza-1", Name: "Margherita"})

			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(testConfig(srv.URL), srv.Client())

	for i := 0; i < 10; i++ {
		_, err := client.GetMenuItemByID(context.Background(), "ghost-item")
		require.ErrorIs(t, err, menuitem.ErrNotFound)
	}

	// Known items still resolve: not-found responses counted as successes.
	item, err := client.GetMenuItemByID(context.Background(), "pizza-1")
	require.NoError(t, err)
	assert.Equal(t, "pizza-1", item.ID)
}
