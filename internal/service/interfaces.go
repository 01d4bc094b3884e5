// Package service defines the interfaces between the workflows and the
// backend or local persistence that serve them.
package service

import (
	"context"
	"io"
	"time"

	"github.com/Veraticus/folio/internal/model"
)

// DashboardReader is every read a full dashboard load issues.
type DashboardReader interface {
	Portfolio(ctx context.Context) ([]model.PortfolioEntry, error)
	DashboardSummary(ctx context.Context) (*model.DashboardSummary, error)
	Transactions(ctx context.Context) ([]model.TransactionRecord, error)
	StockSummary(ctx context.Context) (*model.StockSummary, error)
	MFSummary(ctx context.Context) (*model.MFSummary, error)
	FDSummary(ctx context.Context) (*model.FDSummary, error)
	RDSummary(ctx context.Context) (*model.RDSummary, error)
	InsuranceSummary(ctx context.Context) (*model.InsuranceSummary, error)
	PPFSummary(ctx context.Context) (*model.PPFSummary, error)
	SIPConfigs(ctx context.Context) ([]model.SIPConfig, error)
}

// StockSeller sells one lot.
type StockSeller interface {
	SellStock(ctx context.Context, order model.SellOrder) error
}

// ContractNoteService parses and imports broker contract notes.
type ContractNoteService interface {
	ParseContractNote(ctx context.Context, fileName string, content io.Reader) (*model.ContractNotePreview, error)
	ImportContractNote(ctx context.Context, req model.ContractNoteImportRequest) (*model.ContractNoteImportResult, error)
}

// MFStatementService parses and imports mutual-fund statements.
type MFStatementService interface {
	ParseMFStatement(ctx context.Context, fileName string, content io.Reader) (*model.MFStatementPreview, error)
	ImportMFStatement(ctx context.Context, req model.MFImportRequest) (*model.MFImportResult, error)
	MFTransactions(ctx context.Context) ([]model.MFFundStatement, error)
}

// PriceRefresher asks the backend to pull live prices.
type PriceRefresher interface {
	RefreshPrices(ctx context.Context) error
}

// PreferenceStore is a namespaced key/value store for UI preferences.
type PreferenceStore interface {
	Get(ctx context.Context, namespace, key string) (string, bool, error)
	Set(ctx context.Context, namespace, key, value string) error
	Delete(ctx context.Context, namespace, key string) error
	List(ctx context.Context, namespace string) (map[string]string, error)
}

// BatchJournal records completed batch runs.
type BatchJournal interface {
	RecordBatchRun(ctx context.Context, run *BatchRun) error
	ListBatchRuns(ctx context.Context, limit int) ([]BatchRun, error)
}

// Batch run kinds.
const (
	KindBulkSell      = "bulk_sell"
	KindContractNotes = "contract_notes"
	KindMFStatements  = "mf_statements"
)

// BatchRun is the journal entry for one bulk-sell or import.
type BatchRun struct {
	StartedAt time.Time
	ID        string
	Kind      string
	Errors    []string
	Succeeded int
	Failed    int
	Duration  time.Duration
}
