package clients_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ordermgmt/internal/clients"
	"ordermgmt/internal/models"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clientFor(t *testing.T, baseURL string) *clients.ProductClient {
	t.Helper()
	return clients.NewProductClient(clients.Config{
		BaseURL:        baseURL,
		Username:       "admin",
		Password:       "password",
		ConnectTimeout: 2 * time.Second,
		ReadTimeout:    2 * time.Second,
	}, zerolog.Nop())
}

func TestProductClient_ValidateExists(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/prod-1", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		username, password, ok := r.BasicAuth()
		require.True(t, ok, "expected basic auth credentials")
		assert.Equal(t, "admin", username)
		assert.Equal(t, "password", password)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.ProductSnapshot{
			ID:          "prod-1",
			Name:        "Laptop",
			Description: "High performance laptop",
			Price:       decimal.RequireFromString("1200.00"),
			Quantity:    10,
			SKU:         "LAP-001",
		})
	}))
	defer server.Close()

	client := clientFor(t, server.URL)
	snapshot, err := client.ValidateExists(context.Background(), "prod-1")

	require.NoError(t, err)
	assert.Equal(t, "prod-1", snapshot.ID)
	assert.Equal(t, "Laptop", snapshot.Name)
	assert.Equal(t, "LAP-001", snapshot.SKU)
	assert.True(t, snapshot.Price.Equal(decimal.RequireFromString("1200.00")))
}

func TestProductClient_NotFoundIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := clientFor(t, server.URL)
	snapshot, err := client.ValidateExists(context.Background(), "missing")

	assert.ErrorIs(t, err, models.ErrProductUnavailable)
	assert.Nil(t, snapshot)
}

func TestProductClient_EmptyBodyIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := clientFor(t, server.URL)
	_, err := client.ValidateExists(context.Background(), "prod-1")

	assert.ErrorIs(t, err, models.ErrProductUnavailable)
}

func TestProductClient_ConnectionRefusedIsUnavailable(t *testing.T) {
	// Grab a port that nothing listens on.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	client := clientFor(t, url)
	_, err := client.ValidateExists(context.Background(), "prod-1")

	assert.ErrorIs(t, err, models.ErrProductUnavailable)
}

func TestProductClient_TimeoutIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	client := clients.NewProductClient(clients.Config{
		BaseURL:        server.URL,
		Username:       "admin",
		Password:       "password",
		ConnectTimeout: 50 * time.Millisecond,
		ReadTimeout:    50 * time.Millisecond,
	}, zerolog.Nop())

	_, err := client.ValidateExists(context.Background(), "prod-1")
	assert.ErrorIs(t, err, models.ErrProductUnavailable)
}

func TestProductClient_CancelledContextIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := clientFor(t, server.URL)
	_, err := client.ValidateExists(ctx, "prod-1")

	assert.ErrorIs(t, err, models.ErrProductUnavailable)
}
