package api

import (
	"context"
	"io"
	"net/http"

	"github.com/Veraticus/folio/internal/model"
)

// AddStock records a stock purchase lot.
func (c *Client) AddStock(ctx context.Context, lot model.Lot) error {
	return c.send(ctx, http.MethodPost, pathStocks, lot, nil)
}

// SellStock sells quantity of one held lot.
func (c *Client) SellStock(ctx context.Context, order model.SellOrder) error {
	return c.send(ctx, http.MethodPost, pathStockSell, order, nil)
}

// AddDividend records a dividend.
func (c *Client) AddDividend(ctx context.Context, d model.Dividend) error {
	return c.send(ctx, http.MethodPost, pathDividends, d, nil)
}

// AddMF records a mutual-fund purchase.
func (c *Client) AddMF(ctx context.Context, h model.MFHolding) error {
	return c.send(ctx, http.MethodPost, pathMutualFunds, h, nil)
}

// RedeemMF redeems units of a mutual-fund holding.
func (c *Client) RedeemMF(ctx context.Context, r model.MFRedemption) error {
	return c.send(ctx, http.MethodPost, pathMFRedeem, r, nil)
}

// SaveSIP creates or replaces the SIP for cfg.FundCode.
func (c *Client) SaveSIP(ctx context.Context, cfg model.SIPConfig) error {
	return c.send(ctx, http.MethodPost, pathSIP, cfg, nil)
}

// DeleteSIP removes the SIP for a fund.
func (c *Client) DeleteSIP(ctx context.Context, fundCode string) error {
	return c.send(ctx, http.MethodDelete, item(pathSIP, fundCode), nil, nil)
}

// ExecuteSIP runs one SIP installment now.
func (c *Client) ExecuteSIP(ctx context.Context, fundCode string) error {
	return c.send(ctx, http.MethodPost, item(pathSIP, fundCode, "execute"), nil, nil)
}

// AddFD creates a fixed deposit.
func (c *Client) AddFD(ctx context.Context, fd model.FixedDeposit) error {
	return c.send(ctx, http.MethodPost, pathFD, fd, nil)
}

// UpdateFD replaces a fixed deposit.
func (c *Client) UpdateFD(ctx context.Context, id string, fd model.FixedDeposit) error {
	return c.send(ctx, http.MethodPut, item(pathFD, id), fd, nil)
}

// DeleteFD removes a fixed deposit.
func (c *Client) DeleteFD(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, item(pathFD, id), nil, nil)
}

// AddRD creates a recurring deposit.
func (c *Client) AddRD(ctx context.Context, rd model.RecurringDeposit) error {
	return c.send(ctx, http.MethodPost, pathRD, rd, nil)
}

// UpdateRD replaces a recurring deposit.
func (c *Client) UpdateRD(ctx context.Context, id string, rd model.RecurringDeposit) error {
	return c.send(ctx, http.MethodPut, item(pathRD, id), rd, nil)
}

// DeleteRD removes a recurring deposit.
func (c *Client) DeleteRD(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, item(pathRD, id), nil, nil)
}

// AddRDInstallment records one RD deposit.
func (c *Client) AddRDInstallment(ctx context.Context, id string, inst model.Installment) error {
	return c.send(ctx, http.MethodPost, item(pathRD, id, "installments"), inst, nil)
}

// AddInsurance creates a policy.
func (c *Client) AddInsurance(ctx context.Context, p model.InsurancePolicy) error {
	return c.send(ctx, http.MethodPost, pathInsurance, p, nil)
}

// UpdateInsurance replaces a policy.
func (c *Client) UpdateInsurance(ctx context.Context, id string, p model.InsurancePolicy) error {
	return c.send(ctx, http.MethodPut, item(pathInsurance, id), p, nil)
}

// DeleteInsurance removes a policy.
func (c *Client) DeleteInsurance(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, item(pathInsurance, id), nil, nil)
}

// AddPPF creates a PPF account.
func (c *Client) AddPPF(ctx context.Context, a model.PPFAccount) error {
	return c.send(ctx, http.MethodPost, pathPPF, a, nil)
}

// UpdatePPF replaces a PPF account, including its phases.
func (c *Client) UpdatePPF(ctx context.Context, id string, a model.PPFAccount) error {
	return c.send(ctx, http.MethodPut, item(pathPPF, id), a, nil)
}

// DeletePPF removes a PPF account.
func (c *Client) DeletePPF(ctx context.Context, id string) error {
	return c.send(ctx, http.MethodDelete, item(pathPPF, id), nil, nil)
}

// AddPPFContribution records one PPF deposit.
func (c *Client) AddPPFContribution(ctx context.Context, id string, contrib model.Contribution) error {
	return c.send(ctx, http.MethodPost, item(pathPPF, id, "contributions"), contrib, nil)
}

// ParseContractNote uploads one contract-note PDF and returns its parsed trades.
func (c *Client) ParseContractNote(ctx context.Context, fileName string, content io.Reader) (*model.ContractNotePreview, error) {
	var out model.ContractNotePreview
	if err := c.upload(ctx, pathNoteParse, fileName, content, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ImportContractNote confirms one (contract_no, trade_date) group of trades.
func (c *Client) ImportContractNote(ctx context.Context, req model.ContractNoteImportRequest) (*model.ContractNoteImportResult, error) {
	var out model.ContractNoteImportResult
	if err := c.send(ctx, http.MethodPost, pathNoteImport, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ParseMFStatement uploads one mutual-fund statement.
func (c *Client) ParseMFStatement(ctx context.Context, fileName string, content io.Reader) (*model.MFStatementPreview, error) {
	var out model.MFStatementPreview
	if err := c.upload(ctx, pathMFStmtParse, fileName, content, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ImportMFStatement confirms the rows of one fund.
func (c *Client) ImportMFStatement(ctx context.Context, req model.MFImportRequest) (*model.MFImportResult, error) {
	var out model.MFImportResult
	if err := c.send(ctx, http.MethodPost, pathMFStmtImport, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
