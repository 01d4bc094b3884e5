package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Veraticus/folio/internal/model"
)

// RefreshPrices asks the backend to fetch live prices for every holding.
func (c *Client) RefreshPrices(ctx context.Context) error {
	return c.send(ctx, http.MethodPost, pathRefreshPrices, nil, nil)
}

// RefreshTicker asks the backend to refresh the market ticker.
func (c *Client) RefreshTicker(ctx context.Context) error {
	return c.send(ctx, http.MethodPost, pathRefreshTicker, nil, nil)
}

// SetRefreshInterval stores the server-side auto-refresh interval.
func (c *Client) SetRefreshInterval(ctx context.Context, interval time.Duration) error {
	if interval < time.Second {
		return fmt.Errorf("refresh interval must be at least one second, got %s", interval)
	}
	body := map[string]int{"seconds": int(interval / time.Second)}
	return c.send(ctx, http.MethodPut, pathRefreshInterval, body, nil)
}

// SetZerodhaToken stores a broker access token.
func (c *Client) SetZerodhaToken(ctx context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("access token is required")
	}
	body := map[string]string{"access_token": token}
	return c.send(ctx, http.MethodPost, pathZerodhaToken, body, nil)
}

// ValidateZerodhaToken checks the stored token against the broker.
func (c *Client) ValidateZerodhaToken(ctx context.Context) (*model.ZerodhaStatus, error) {
	var out model.ZerodhaStatus
	if err := c.do(ctx, http.MethodGet, pathZerodhaValidate, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
