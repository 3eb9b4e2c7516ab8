package openfoodfacts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/soychecker/backend/internal/domain"
	"go.uber.org/zap"
)

// DefaultBaseURL is the public Open Food Facts v2 API
const DefaultBaseURL = "https://world.openfoodfacts.net/api/v2"

// Client handles communication with the Open Food Facts product API
type Client struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
	debug      bool
}

// productResponse is the envelope returned by GET /product/{barcode}
type productResponse struct {
	Product json.RawMessage `json:"product"`
}

// NewClient creates a new Open Food Facts client.
// The client has no timeout of its own; callers bound requests through ctx.
func NewClient(baseURL string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger.Named("openfoodfacts"),
	}
}

// SetDebug enables logging of every request and response status
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// productURL builds {base}/product/{barcode}
func (c *Client) productURL(barcode string) string {
	return fmt.Sprintf("%s/product/%s", c.baseURL, url.PathEscape(barcode))
}

// GetProduct fetches the product record for a barcode.
// Any non-2xx status, undecodable body or missing product yields ErrProductNotFound.
// The returned record keeps the product bytes exactly as sent.
func (c *Client) GetProduct(ctx context.Context, barcode string) (*domain.Record, error) {
	reqURL := c.productURL(barcode)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.debug {
		c.logger.Debug("requesting product", zap.String("barcode", barcode), zap.String("url", reqURL))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("error fetching product", zap.String("barcode", barcode), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err)
	}
	defer resp.Body.Close()

	if c.debug {
		c.logger.Debug("product response", zap.String("barcode", barcode), zap.Int("status", resp.StatusCode))
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status %d", domain.ErrProductNotFound, resp.StatusCode)
	}

	var body productResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrProductNotFound, err)
	}

	if len(body.Product) == 0 {
		return nil, domain.ErrProductNotFound
	}

	record, err := domain.NewRecord(body.Product)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: invalid product: %v", domain.ErrProductNotFound, err)
	}

	return record, nil
}
