package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/Veraticus/folio/internal/model"
)

// Portfolio returns the combined per-asset portfolio view.
func (c *Client) Portfolio(ctx context.Context) ([]model.PortfolioEntry, error) {
	var out []model.PortfolioEntry
	if err := c.get(ctx, pathPortfolio, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// DashboardSummary returns headline totals.
func (c *Client) DashboardSummary(ctx context.Context) (*model.DashboardSummary, error) {
	var out model.DashboardSummary
	if err := c.get(ctx, pathDashboardSummary, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Transactions returns the buy/sell history.
func (c *Client) Transactions(ctx context.Context) ([]model.TransactionRecord, error) {
	var out []model.TransactionRecord
	if err := c.get(ctx, pathTransactions, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// StockSummary returns stock lots with live prices.
func (c *Client) StockSummary(ctx context.Context) (*model.StockSummary, error) {
	var out model.StockSummary
	if err := c.get(ctx, pathStockSummary, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MFSummary returns mutual-fund holdings.
func (c *Client) MFSummary(ctx context.Context) (*model.MFSummary, error) {
	var out model.MFSummary
	if err := c.get(ctx, pathMFSummary, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MFTransactions returns already-imported mutual-fund rows grouped by fund.
func (c *Client) MFTransactions(ctx context.Context) ([]model.MFFundStatement, error) {
	var out []model.MFFundStatement
	if err := c.get(ctx, pathMFTransactions, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// FDSummary returns fixed deposits.
func (c *Client) FDSummary(ctx context.Context) (*model.FDSummary, error) {
	var out model.FDSummary
	if err := c.get(ctx, pathFDSummary, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// RDSummary returns recurring deposits.
func (c *Client) RDSummary(ctx context.Context) (*model.RDSummary, error) {
	var out model.RDSummary
	if err := c.get(ctx, pathRDSummary, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// InsuranceSummary returns insurance policies.
func (c *Client) InsuranceSummary(ctx context.Context) (*model.InsuranceSummary, error) {
	var out model.InsuranceSummary
	if err := c.get(ctx, pathInsuranceSummary, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PPFSummary returns PPF accounts.
func (c *Client) PPFSummary(ctx context.Context) (*model.PPFSummary, error) {
	var out model.PPFSummary
	if err := c.get(ctx, pathPPFSummary, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SIPConfigs returns every configured SIP.
func (c *Client) SIPConfigs(ctx context.Context) ([]model.SIPConfig, error) {
	var out []model.SIPConfig
	if err := c.get(ctx, pathSIP, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MarketTicker returns index and watchlist quotes. It is polled in the
// background, so responses are reused for the poll TTL and failures are
// only logged at debug level by callers.
func (c *Client) MarketTicker(ctx context.Context) ([]model.TickerItem, error) {
	if cached, ok := c.polls.Get(pathTicker); ok {
		return cached.([]model.TickerItem), nil
	}
	var out []model.TickerItem
	if err := c.do(ctx, http.MethodGet, pathTicker, nil, &out); err != nil {
		slog.Debug("Ticker poll failed", "error", err)
		return nil, err
	}
	c.polls.SetDefault(pathTicker, out)
	return out, nil
}

// ZerodhaStatus reports whether the broker session is connected. Cached like MarketTicker.
func (c *Client) ZerodhaStatus(ctx context.Context) (*model.ZerodhaStatus, error) {
	if cached, ok := c.polls.Get(pathZerodhaStatus); ok {
		status := cached.(model.ZerodhaStatus)
		return &status, nil
	}
	var out model.ZerodhaStatus
	if err := c.do(ctx, http.MethodGet, pathZerodhaStatus, nil, &out); err != nil {
		slog.Debug("Zerodha status poll failed", "error", err)
		return nil, err
	}
	c.polls.SetDefault(pathZerodhaStatus, out)
	return &out, nil
}
