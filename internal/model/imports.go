package model

import (
	"math"
	"strings"
)

// TradeAction is the side of a contract-note trade.
type TradeAction string

// Trade actions as reported by the contract-note parser.
const (
	ActionBuy  TradeAction = "Buy"
	ActionSell TradeAction = "Sell"
)

// ParsedTrade is one trade extracted from a contract note. SourceFile and
// ContractNo are attached client-side so merged previews can be regrouped.
type ParsedTrade struct {
	Symbol     string      `json:"symbol"`
	Exchange   string      `json:"exchange,omitempty"`
	Action     TradeAction `json:"action"`
	TradeDate  string      `json:"trade_date"`
	ContractNo string      `json:"contract_no,omitempty"`
	SourceFile string      `json:"source_file,omitempty"`
	Quantity   float64     `json:"quantity"`
	Price      float64     `json:"price"`
	Charges    float64     `json:"charges,omitempty"`
}

// ContractNotePreview is the parse result for one or more contract notes.
type ContractNotePreview struct {
	ContractNo  string        `json:"contract_no"`
	TradeDate   string        `json:"trade_date"`
	Trades      []ParsedTrade `json:"transactions"`
	SourceFiles []string      `json:"source_files,omitempty"`
	Total       int           `json:"total"`
	Buys        int           `json:"buys"`
	Sells       int           `json:"sells"`
}

// Recount refreshes Total, Buys and Sells from Trades.
func (p *ContractNotePreview) Recount() {
	p.Total = len(p.Trades)
	p.Buys, p.Sells = 0, 0
	for _, t := range p.Trades {
		switch t.Action {
		case ActionBuy:
			p.Buys++
		case ActionSell:
			p.Sells++
		}
	}
}

// ImportedRow is one trade the backend reports as imported.
type ImportedRow struct {
	Symbol    string  `json:"symbol"`
	TradeDate string  `json:"trade_date,omitempty"`
	Quantity  float64 `json:"quantity"`
	Price     float64 `json:"price"`
}

// ContractNoteImportRequest submits one (contract_no, trade_date) group.
type ContractNoteImportRequest struct {
	ContractNo string        `json:"contract_no"`
	TradeDate  string        `json:"trade_date"`
	Trades     []ParsedTrade `json:"transactions"`
}

// ContractNoteImportResult is the backend response for one group.
type ContractNoteImportResult struct {
	BuyDetails        []ImportedRow `json:"buy_details"`
	SellDetails       []ImportedRow `json:"sell_details"`
	Errors            []string      `json:"errors"`
	ImportedBuys      int           `json:"imported_buys"`
	ImportedSells     int           `json:"imported_sells"`
	SkippedDuplicates int           `json:"skipped_duplicates"`
}

// MFTransactionType distinguishes statement rows.
type MFTransactionType string

// Statement row types.
const (
	MFPurchase       MFTransactionType = "Purchase"
	MFSIP            MFTransactionType = "SIP"
	MFTypeRedemption MFTransactionType = "Redemption"
	MFSwitchIn       MFTransactionType = "Switch In"
	MFSwitchOut      MFTransactionType = "Switch Out"
)

// MFTransaction is one row of a mutual-fund statement.
type MFTransaction struct {
	Date       Date              `json:"date"`
	Type       MFTransactionType `json:"type"`
	SourceFile string            `json:"source_file,omitempty"`
	Units      float64           `json:"units"`
	NAV        float64           `json:"nav"`
	Amount     float64           `json:"amount"`
	Duplicate  bool              `json:"is_duplicate"`
}

// SameAs reports whether two rows describe the same event, within statement rounding.
func (t MFTransaction) SameAs(other MFTransaction) bool {
	return t.Date.Equal(other.Date) &&
		strings.EqualFold(string(t.Type), string(other.Type)) &&
		math.Abs(t.Units-other.Units) < 0.001 &&
		math.Abs(t.Amount-other.Amount) < 0.01
}

// MFFundStatement groups statement rows for one scheme.
type MFFundStatement struct {
	FundCode     string          `json:"fund_code"`
	FundName     string          `json:"fund_name"`
	Folio        string          `json:"folio_number"`
	Transactions []MFTransaction `json:"transactions"`
}

// MFStatementPreview is the parse result for one or more statements.
type MFStatementPreview struct {
	Funds       []MFFundStatement `json:"funds"`
	SourceFiles []string          `json:"source_files,omitempty"`
}

// Count returns the number of rows and how many of them are flagged duplicates.
func (p MFStatementPreview) Count() (total, duplicates int) {
	for _, f := range p.Funds {
		for _, t := range f.Transactions {
			total++
			if t.Duplicate {
				duplicates++
			}
		}
	}
	return total, duplicates
}

// MFImportRequest submits the non-duplicate rows of one fund.
type MFImportRequest struct {
	FundCode     string          `json:"fund_code"`
	FundName     string          `json:"fund_name"`
	Folio        string          `json:"folio_number"`
	Transactions []MFTransaction `json:"transactions"`
}

// MFImportResult is the backend response for one fund.
type MFImportResult struct {
	Errors   []string `json:"errors"`
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
}
