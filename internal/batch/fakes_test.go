package batch

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/Veraticus/folio/internal/model"
)

func memUpload(name, content string) Upload {
	return Upload{
		Name: name,
		Open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewBufferString(content)), nil },
	}
}

type fakeNotes struct {
	previews   map[string]*model.ContractNotePreview
	parseErrs  map[string]error
	importErrs map[string]error
	results    map[string]*model.ContractNoteImportResult
	parsed     []string
	imported   []model.ContractNoteImportRequest
}

func (f *fakeNotes) ParseContractNote(_ context.Context, fileName string, content io.Reader) (*model.ContractNotePreview, error) {
	f.parsed = append(f.parsed, fileName)
	if _, err := io.ReadAll(content); err != nil {
		return nil, err
	}
	if err := f.parseErrs[fileName]; err != nil {
		return nil, err
	}
	p, ok := f.previews[fileName]
	if !ok {
		return nil, errors.New("unknown file")
	}
	cp := *p
	cp.Trades = append([]model.ParsedTrade(nil), p.Trades...)
	return &cp, nil
}

func (f *fakeNotes) ImportContractNote(_ context.Context, req model.ContractNoteImportRequest) (*model.ContractNoteImportResult, error) {
	f.imported = append(f.imported, req)
	if err := f.importErrs[req.ContractNo]; err != nil {
		return nil, err
	}
	if res, ok := f.results[req.ContractNo]; ok {
		return res, nil
	}
	return &model.ContractNoteImportResult{}, nil
}

type fakeSeller struct {
	fail  map[string]error
	calls []model.SellOrder
}

func (f *fakeSeller) SellStock(_ context.Context, order model.SellOrder) error {
	f.calls = append(f.calls, order)
	return f.fail[order.HoldingID]
}

type fakeStatements struct {
	previews   map[string]*model.MFStatementPreview
	existing   []model.MFFundStatement
	importErrs map[string]error
	imported   []model.MFImportRequest
}

func (f *fakeStatements) ParseMFStatement(_ context.Context, fileName string, _ io.Reader) (*model.MFStatementPreview, error) {
	p, ok := f.previews[fileName]
	if !ok {
		return nil, errors.New("not a statement")
	}
	cp := *p
	cp.Funds = nil
	for _, fund := range p.Funds {
		fund.Transactions = append([]model.MFTransaction(nil), fund.Transactions...)
		cp.Funds = append(cp.Funds, fund)
	}
	return &cp, nil
}

func (f *fakeStatements) ImportMFStatement(_ context.Context, req model.MFImportRequest) (*model.MFImportResult, error) {
	f.imported = append(f.imported, req)
	if err := f.importErrs[req.FundCode]; err != nil {
		return nil, err
	}
	return &model.MFImportResult{Imported: len(req.Transactions)}, nil
}

func (f *fakeStatements) MFTransactions(context.Context) ([]model.MFFundStatement, error) {
	return f.existing, nil
}
