package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/Veraticus/folio/internal/model"
	"github.com/Veraticus/folio/internal/service"
)

// ParseMFStatements parses each statement in turn and merges the funds. Rows
// of the same fund code from several files are combined under one fund.
func ParseMFStatements(ctx context.Context, parser service.MFStatementService, files []Upload, progress ProgressFunc) (model.MFStatementPreview, []FileError) {
	var merged model.MFStatementPreview
	index := make(map[string]int)

	result := Fold(files, func(u Upload) error {
		preview, err := parseUpload(u, func(r io.Reader) (*model.MFStatementPreview, error) {
			return parser.ParseMFStatement(ctx, u.Name, r)
		})
		if err != nil {
			return err
		}
		if total, _ := preview.Count(); total == 0 {
			return ErrNoTrades
		}

		for _, fund := range preview.Funds {
			for i := range fund.Transactions {
				fund.Transactions[i].SourceFile = u.Name
			}
			i, ok := index[fund.FundCode]
			if !ok {
				index[fund.FundCode] = len(merged.Funds)
				merged.Funds = append(merged.Funds, fund)
				continue
			}
			merged.Funds[i].Transactions = append(merged.Funds[i].Transactions, fund.Transactions...)
		}
		merged.SourceFiles = append(merged.SourceFiles, u.Name)
		return nil
	}, progress)

	errs := fileErrors(result.Failed)
	for _, e := range errs {
		slog.Warn("MF statement parse failed", "file", e.File, "error", e.Err)
	}
	return merged, errs
}

// FlagDuplicates marks rows that match an already-imported record of the
// same fund. Flagged rows stay in the preview. It returns the number flagged.
func FlagDuplicates(preview *model.MFStatementPreview, existing []model.MFFundStatement) int {
	known := make(map[string][]model.MFTransaction)
	for _, f := range existing {
		code := strings.ToUpper(f.FundCode)
		known[code] = append(known[code], f.Transactions...)
	}

	flagged := 0
	for fi := range preview.Funds {
		fund := &preview.Funds[fi]
		prior := known[strings.ToUpper(fund.FundCode)]
		for ti := range fund.Transactions {
			t := &fund.Transactions[ti]
			t.Duplicate = false
			for _, p := range prior {
				if t.SameAs(p) {
					t.Duplicate = true
					flagged++
					break
				}
			}
		}
	}
	return flagged
}

// MFImportSummary aggregates the per-fund import results.
type MFImportSummary struct {
	Errors      []string
	Funds       int
	FailedFunds int
	Imported    int
	Skipped     int
}

// ConfirmMFStatements submits the unflagged rows of each fund, one fund at a
// time. Funds left with no rows are skipped without a call.
func ConfirmMFStatements(ctx context.Context, importer service.MFStatementService, preview model.MFStatementPreview, progress ProgressFunc) MFImportSummary {
	var summary MFImportSummary
	var requests []model.MFImportRequest

	for _, fund := range preview.Funds {
		req := model.MFImportRequest{FundCode: fund.FundCode, FundName: fund.FundName, Folio: fund.Folio}
		for _, t := range fund.Transactions {
			if t.Duplicate {
				summary.Skipped++
				continue
			}
			req.Transactions = append(req.Transactions, t)
		}
		if len(req.Transactions) > 0 {
			requests = append(requests, req)
		}
	}
	summary.Funds = len(requests)

	result := Fold(requests, func(req model.MFImportRequest) error {
		res, err := importer.ImportMFStatement(ctx, req)
		if err != nil {
			return err
		}
		summary.Imported += res.Imported
		summary.Skipped += res.Skipped
		summary.Errors = append(summary.Errors, res.Errors...)
		return nil
	}, progress)

	for _, f := range result.Failed {
		slog.Warn("MF statement import failed", "fund_code", f.Item.FundCode, "error", f.Err)
		summary.Errors = append(summary.Errors, fmt.Sprintf("%s: %v", f.Item.FundName, f.Err))
	}
	summary.FailedFunds = len(result.Failed)
	return summary
}
