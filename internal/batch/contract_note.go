package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"sort"
	"strings"

	"github.com/Veraticus/folio/internal/common"
	"github.com/Veraticus/folio/internal/model"
	"github.com/Veraticus/folio/internal/service"
)

// ParseContractNotes parses each file in turn. Every trade of a successful
// parse is tagged with its source file and contract number; files that fail
// or contain no trades are reported as FileErrors and left out.
func ParseContractNotes(ctx context.Context, parser service.ContractNoteService, files []Upload, progress ProgressFunc) ([]model.ContractNotePreview, []FileError) {
	var previews []model.ContractNotePreview

	result := Fold(files, func(u Upload) error {
		preview, err := parseUpload(u, func(r io.Reader) (*model.ContractNotePreview, error) {
			return parser.ParseContractNote(ctx, u.Name, r)
		})
		if err != nil {
			return err
		}
		if len(preview.Trades) == 0 {
			return ErrNoTrades
		}

		for i := range preview.Trades {
			t := &preview.Trades[i]
			t.SourceFile = u.Name
			if t.ContractNo == "" {
				t.ContractNo = preview.ContractNo
			}
			if t.TradeDate == "" {
				t.TradeDate = preview.TradeDate
			}
		}
		preview.SourceFiles = []string{u.Name}
		preview.Recount()
		previews = append(previews, *preview)
		return nil
	}, progress)

	errs := fileErrors(result.Failed)
	for _, e := range errs {
		slog.Warn("Contract note parse failed", "file", e.File, "error", e.Err)
	}
	return previews, errs
}

// MergePreviews combines previews into one, keeping every trade and its tags.
// Trade dates are sorted and de-duplicated; contract numbers are concatenated.
func MergePreviews(previews []model.ContractNotePreview) model.ContractNotePreview {
	var merged model.ContractNotePreview
	var dates, contracts []string

	for _, p := range previews {
		merged.Trades = append(merged.Trades, p.Trades...)
		merged.SourceFiles = append(merged.SourceFiles, p.SourceFiles...)
		for _, d := range strings.Split(p.TradeDate, ",") {
			if d = strings.TrimSpace(d); d != "" {
				dates = append(dates, d)
			}
		}
		if p.ContractNo != "" {
			contracts = append(contracts, p.ContractNo)
		}
	}

	sort.Strings(dates)
	merged.TradeDate = strings.Join(slices.Compact(dates), ", ")
	merged.ContractNo = strings.Join(contracts, ", ")
	merged.Recount()
	return merged
}

// ApplySymbolCorrections replaces the symbol of the trades at the given
// indexes. Nothing is changed if any correction is invalid.
func ApplySymbolCorrections(preview *model.ContractNotePreview, corrections map[int]string) error {
	for idx, symbol := range corrections {
		if idx < 0 || idx >= len(preview.Trades) {
			return common.Validationf("trade index %d out of range (have %d trades)", idx, len(preview.Trades))
		}
		if strings.TrimSpace(symbol) == "" {
			return common.Validationf("empty symbol for trade %d", idx)
		}
	}
	for idx, symbol := range corrections {
		preview.Trades[idx].Symbol = strings.ToUpper(strings.TrimSpace(symbol))
	}
	return nil
}

// TradeGroup is the unit the backend imports atomically.
type TradeGroup struct {
	ContractNo string
	TradeDate  string
	Trades     []model.ParsedTrade
}

// GroupTrades groups trades by (contract number, trade date) in first-seen order.
func GroupTrades(trades []model.ParsedTrade) []TradeGroup {
	type key struct{ contract, date string }
	index := make(map[key]int)
	var groups []TradeGroup

	for _, t := range trades {
		k := key{t.ContractNo, t.TradeDate}
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, TradeGroup{ContractNo: t.ContractNo, TradeDate: t.TradeDate})
		}
		groups[i].Trades = append(groups[i].Trades, t)
	}
	return groups
}

// ImportSummary aggregates the per-group import results.
type ImportSummary struct {
	BuyDetails        []model.ImportedRow
	SellDetails       []model.ImportedRow
	Errors            []string
	Groups            int
	FailedGroups      int
	ImportedBuys      int
	ImportedSells     int
	SkippedDuplicates int
}

// ConfirmContractNotes imports each (contract number, trade date) group in
// turn. A failed group is recorded in Errors and the remaining groups still run.
func ConfirmContractNotes(ctx context.Context, importer service.ContractNoteService, preview model.ContractNotePreview, progress ProgressFunc) ImportSummary {
	groups := GroupTrades(preview.Trades)
	summary := ImportSummary{Groups: len(groups)}

	result := Fold(groups, func(g TradeGroup) error {
		res, err := importer.ImportContractNote(ctx, model.ContractNoteImportRequest{
			ContractNo: g.ContractNo,
			TradeDate:  g.TradeDate,
			Trades:     g.Trades,
		})
		if err != nil {
			return err
		}

		summary.ImportedBuys += res.ImportedBuys
		summary.ImportedSells += res.ImportedSells
		summary.SkippedDuplicates += res.SkippedDuplicates
		summary.BuyDetails = append(summary.BuyDetails, stamp(res.BuyDetails, g.TradeDate)...)
		summary.SellDetails = append(summary.SellDetails, stamp(res.SellDetails, g.TradeDate)...)
		summary.Errors = append(summary.Errors, res.Errors...)
		return nil
	}, progress)

	for _, f := range result.Failed {
		slog.Warn("Contract note import failed",
			"contract_no", f.Item.ContractNo,
			"trade_date", f.Item.TradeDate,
			"error", f.Err)
		summary.Errors = append(summary.Errors, fmt.Sprintf("%s (%s): %v", f.Item.ContractNo, f.Item.TradeDate, f.Err))
	}
	summary.FailedGroups = len(result.Failed)
	return summary
}

func stamp(rows []model.ImportedRow, tradeDate string) []model.ImportedRow {
	out := make([]model.ImportedRow, len(rows))
	for i, r := range rows {
		r.TradeDate = tradeDate
		out[i] = r
	}
	return out
}
