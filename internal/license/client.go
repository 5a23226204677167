// Package license talks to the remote license validation endpoint.
//
// The client deliberately separates "the server said no" from "the
// server could not be reached": the first is a definitive verdict, the
// second is a transport error that callers must not cache.
package license

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cnsrgl/stock-gestion-codeon/internal/engine"
)

const (
	// DefaultEndpoint is the production validation endpoint.
	DefaultEndpoint = "https://codeon.ch/wp-json/codeon-license/v1/validate"

	// DefaultProductID identifies this product to the license server.
	DefaultProductID = "4092"

	defaultTimeout = 15 * time.Second
)

// Client validates license keys against a remote HTTP endpoint.
// It satisfies engine.LicenseValidator.
type Client struct {
	endpoint  string
	productID string
	httpc     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithEndpoint overrides the validation endpoint URL.
func WithEndpoint(url string) Option {
	return func(c *Client) { c.endpoint = url }
}

// WithProductID overrides the product identifier sent to the server.
func WithProductID(id string) Option {
	return func(c *Client) { c.productID = id }
}

// WithHTTPClient substitutes the underlying HTTP client, mostly for
// tests that need a custom transport.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// NewClient returns a validation client with production defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		endpoint:  DefaultEndpoint,
		productID: DefaultProductID,
		httpc:     &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type validateRequest struct {
	LicenseKey string `json:"license_key"`
	ProductID  string `json:"product_id"`
}

type validateResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message"`
}

// Validate posts the key to the license server and returns its verdict.
// A non-nil error means the server could not give a verdict at all;
// the returned verdict is then zero-valued and must not be cached.
func (c *Client) Validate(ctx context.Context, key string) (engine.Verdict, error) {
	payload, err := json.Marshal(validateRequest{
		LicenseKey: key,
		ProductID:  c.productID,
	})
	if err != nil {
		return engine.Verdict{}, fmt.Errorf("encode license request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return engine.Verdict{}, fmt.Errorf("build license request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return engine.Verdict{}, fmt.Errorf("contact license server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return engine.Verdict{}, fmt.Errorf("license server returned status %d", resp.StatusCode)
	}

	var body validateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return engine.Verdict{}, fmt.Errorf("decode license response: %w", err)
	}

	return engine.Verdict{Valid: body.Valid, Message: body.Message}, nil
}
