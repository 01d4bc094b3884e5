package dashboard

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/Veraticus/folio/internal/model"
	"github.com/Veraticus/folio/internal/service"
)

var errDown = errors.New("connection refused")

type fakeBackend struct {
	failing  map[Section]bool
	sellErrs map[string]error
	writeErr error
	sells    []model.SellOrder
	loads    int
	mu       sync.Mutex
}

func (f *fakeBackend) fail(s Section) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if s == SectionPortfolio {
		f.loads++
	}
	if f.failing[s] {
		return errDown
	}
	return nil
}

func (f *fakeBackend) Portfolio(context.Context) ([]model.PortfolioEntry, error) {
	if err := f.fail(SectionPortfolio); err != nil {
		return nil, err
	}
	return []model.PortfolioEntry{{AssetType: "stocks", Name: "Equity", Invested: 1000, CurrentValue: 1200}}, nil
}

func (f *fakeBackend) DashboardSummary(context.Context) (*model.DashboardSummary, error) {
	if err := f.fail(SectionSummary); err != nil {
		return nil, err
	}
	return &model.DashboardSummary{TotalInvested: 1000, CurrentValue: 1200}, nil
}

func (f *fakeBackend) Transactions(context.Context) ([]model.TransactionRecord, error) {
	if err := f.fail(SectionTransactions); err != nil {
		return nil, err
	}
	return []model.TransactionRecord{{ID: "t1", Symbol: "INFY", Type: "BUY"}}, nil
}

func (f *fakeBackend) StockSummary(context.Context) (*model.StockSummary, error) {
	if err := f.fail(SectionStocks); err != nil {
		return nil, err
	}
	return &model.StockSummary{Holdings: []model.Lot{
		{ID: "h1", Symbol: "INFY", Quantity: 10, BuyPrice: 1400, BuyDate: model.MustParseDate("2024-01-02"), LivePrice: 1500},
	}}, nil
}

func (f *fakeBackend) MFSummary(context.Context) (*model.MFSummary, error) {
	if err := f.fail(SectionMF); err != nil {
		return nil, err
	}
	return &model.MFSummary{}, nil
}

func (f *fakeBackend) FDSummary(context.Context) (*model.FDSummary, error) {
	if err := f.fail(SectionFD); err != nil {
		return nil, err
	}
	return &model.FDSummary{}, nil
}

func (f *fakeBackend) RDSummary(context.Context) (*model.RDSummary, error) {
	if err := f.fail(SectionRD); err != nil {
		return nil, err
	}
	return &model.RDSummary{}, nil
}

func (f *fakeBackend) InsuranceSummary(context.Context) (*model.InsuranceSummary, error) {
	if err := f.fail(SectionInsurance); err != nil {
		return nil, err
	}
	return &model.InsuranceSummary{}, nil
}

func (f *fakeBackend) PPFSummary(context.Context) (*model.PPFSummary, error) {
	if err := f.fail(SectionPPF); err != nil {
		return nil, err
	}
	return &model.PPFSummary{}, nil
}

func (f *fakeBackend) SIPConfigs(context.Context) ([]model.SIPConfig, error) {
	if err := f.fail(SectionSIP); err != nil {
		return nil, err
	}
	return []model.SIPConfig{}, nil
}

func (f *fakeBackend) SellStock(_ context.Context, order model.SellOrder) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sells = append(f.sells, order)
	return f.sellErrs[order.HoldingID]
}

func (f *fakeBackend) ParseContractNote(context.Context, string, io.Reader) (*model.ContractNotePreview, error) {
	return nil, errors.New("not used")
}

func (f *fakeBackend) ImportContractNote(_ context.Context, req model.ContractNoteImportRequest) (*model.ContractNoteImportResult, error) {
	if req.ContractNo == "BAD" {
		return nil, errors.New("Duplicate contract note")
	}
	return &model.ContractNoteImportResult{ImportedBuys: len(req.Trades)}, nil
}

func (f *fakeBackend) ParseMFStatement(context.Context, string, io.Reader) (*model.MFStatementPreview, error) {
	return nil, errors.New("not used")
}

func (f *fakeBackend) ImportMFStatement(_ context.Context, req model.MFImportRequest) (*model.MFImportResult, error) {
	return &model.MFImportResult{Imported: len(req.Transactions)}, nil
}

func (f *fakeBackend) MFTransactions(context.Context) ([]model.MFFundStatement, error) {
	return nil, nil
}

func (f *fakeBackend) RefreshPrices(context.Context) error {
	return f.writeErr
}

func (f *fakeBackend) loadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loads
}

type toast struct {
	level string
	msg   string
}

type recordingNotifier struct {
	toasts []toast
}

func (n *recordingNotifier) Success(msg string) { n.toasts = append(n.toasts, toast{"success", msg}) }
func (n *recordingNotifier) Warning(msg string) { n.toasts = append(n.toasts, toast{"warning", msg}) }
func (n *recordingNotifier) Error(msg string)   { n.toasts = append(n.toasts, toast{"error", msg}) }

func (n *recordingNotifier) last() toast {
	if len(n.toasts) == 0 {
		return toast{}
	}
	return n.toasts[len(n.toasts)-1]
}

type memJournal struct {
	runs []service.BatchRun
}

func (j *memJournal) RecordBatchRun(_ context.Context, run *service.BatchRun) error {
	j.runs = append(j.runs, *run)
	return nil
}

func (j *memJournal) ListBatchRuns(context.Context, int) ([]service.BatchRun, error) {
	return j.runs, nil
}
