package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"ordermgmt/internal/models"

	"github.com/rs/zerolog"
)

// ProductLookup is the remote-catalog dependency of the order workflow.
type ProductLookup interface {
	ValidateExists(ctx context.Context, productID string) (*models.ProductSnapshot, error)
}

// Config holds the connection details for the product service. It is an
// explicit value injected at construction, never read from process-wide
// state.
type Config struct {
	BaseURL        string
	Username       string
	Password       string
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
}

// ProductClient calls the product service's "get by id" endpoint with
// fixed service credentials attached.
type ProductClient struct {
	cfg        Config
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewProductClient creates a ProductClient bounded by the configured
// connect and read timeouts.
func NewProductClient(cfg Config, logger zerolog.Logger) *ProductClient {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: cfg.ConnectTimeout,
		}).DialContext,
	}
	return &ProductClient{
		cfg: cfg,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.ReadTimeout,
		},
		logger: logger.With().Str("client", "product").Logger(),
	}
}

// ValidateExists asks the product service whether the product exists and
// returns its descriptive data. Every failure mode, whether connection
// error, non-2xx status, timeout or empty body, collapses into
// models.ErrProductUnavailable: the workflow cannot proceed either way,
// and it does not get to distinguish "not found" from "unreachable".
func (c *ProductClient) ValidateExists(ctx context.Context, productID string) (*models.ProductSnapshot, error) {
	url := fmt.Sprintf("%s/products/%s", c.cfg.BaseURL, productID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("product %s: %w", productID, models.ErrProductUnavailable)
	}
	req.SetBasicAuth(c.cfg.Username, c.cfg.Password)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn().Err(err).Str("product_id", productID).Msg("product lookup request failed")
		return nil, fmt.Errorf("product %s: %w", productID, models.ErrProductUnavailable)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn().Int("status", resp.StatusCode).Str("product_id", productID).Msg("product lookup returned non-2xx")
		return nil, fmt.Errorf("product %s: %w", productID, models.ErrProductUnavailable)
	}

	var snapshot models.ProductSnapshot
	if err := json.NewDecoder(resp.Body).Decode(&snapshot); err != nil {
		c.logger.Warn().Err(err).Str("product_id", productID).Msg("product lookup body undecodable")
		return nil, fmt.Errorf("product %s: %w", productID, models.ErrProductUnavailable)
	}
	if snapshot.ID == "" {
		c.logger.Warn().Str("product_id", productID).Msg("product lookup returned empty body")
		return nil, fmt.Errorf("product %s: %w", productID, models.ErrProductUnavailable)
	}

	c.logger.Debug().Str("product_id", productID).Str("name", snapshot.Name).Msg("product validated")
	return &snapshot, nil
}
