package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Veraticus/folio/internal/api"
	"github.com/Veraticus/folio/internal/batch"
	"github.com/Veraticus/folio/internal/common"
	"github.com/Veraticus/folio/internal/model"
	"github.com/Veraticus/folio/internal/service"
)

// Notifier shows transient messages to the user.
type Notifier interface {
	Success(msg string)
	Warning(msg string)
	Error(msg string)
}

// Backend is everything the shell drives.
type Backend interface {
	service.DashboardReader
	service.StockSeller
	service.ContractNoteService
	service.MFStatementService
	service.PriceRefresher
}

// Shell owns the current snapshot. Every successful write is followed by a
// full reload, which is the only way local state is brought up to date.
type Shell struct {
	snapshot *Snapshot
	backend  Backend
	loader   *Loader
	notify   Notifier
	journal  service.BatchJournal
	mu       sync.RWMutex
}

// NewShell wires a shell. journal may be nil.
func NewShell(backend Backend, notify Notifier, journal service.BatchJournal) *Shell {
	return &Shell{
		backend: backend,
		loader:  NewLoader(backend),
		notify:  notify,
		journal: journal,
	}
}

// Snapshot returns the last loaded snapshot, or nil before the first load.
func (s *Shell) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Reload replaces the snapshot. Sections that failed stay empty until the
// next reload; an unreachable backend leaves the previous snapshot in place.
func (s *Shell) Reload(ctx context.Context) (*Snapshot, error) {
	snap, err := s.loader.Load(ctx)
	if err != nil {
		s.notify.Error("Could not reach the portfolio backend. Is it running?")
		return nil, err
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	if snap.Partial() {
		s.notify.Warning(fmt.Sprintf("Some sections failed to load: %v", snap.Failed()))
	}
	return snap, nil
}

// Mutate runs one write. On failure the backend's detail is shown verbatim
// and nothing is reloaded; on success the dashboard reloads, then a toast is shown.
func (s *Shell) Mutate(ctx context.Context, label string, fn func(context.Context) error) error {
	if err := fn(ctx); err != nil {
		slog.Error("Write failed", "action", label, "error", err)
		s.notify.Error(userMessage(err, label+" failed"))
		return err
	}

	if _, err := s.Reload(ctx); err != nil {
		slog.Warn("Reload after write failed", "action", label, "error", err)
	}
	s.notify.Success(label + " succeeded")
	return nil
}

// BulkSell sells every lot of plan at its group price on date, then reloads once.
func (s *Shell) BulkSell(ctx context.Context, plan *batch.SellPlan, date model.Date, progress batch.ProgressFunc) (batch.Result[model.SellOrder], error) {
	orders, err := plan.Flatten(date)
	if err != nil {
		s.notify.Error(userMessage(err, "Cannot sell"))
		return batch.Result[model.SellOrder]{}, err
	}

	started := time.Now()
	result := batch.ExecuteBulkSell(ctx, s.backend, orders, progress)
	succeeded, failed := result.Counts()

	errs := make([]string, 0, failed)
	for _, f := range result.Failed {
		errs = append(errs, fmt.Sprintf("%s (%s): %s", f.Item.Symbol, f.Item.HoldingID, userMessage(f.Err, "sell failed")))
	}
	s.record(ctx, service.KindBulkSell, started, succeeded, failed, errs)

	if _, err := s.Reload(ctx); err != nil {
		slog.Warn("Reload after bulk sell failed", "error", err)
	}

	switch {
	case failed == 0:
		s.notify.Success(fmt.Sprintf("Sold %d lots", succeeded))
	case succeeded == 0:
		s.notify.Error(fmt.Sprintf("All %d sells failed", failed))
	default:
		s.notify.Warning(fmt.Sprintf("Sold %d lots, %d failed", succeeded, failed))
	}
	return result, nil
}

// ImportContractNotes confirms a reviewed preview group by group, then reloads once.
func (s *Shell) ImportContractNotes(ctx context.Context, preview model.ContractNotePreview, progress batch.ProgressFunc) batch.ImportSummary {
	started := time.Now()
	summary := batch.ConfirmContractNotes(ctx, s.backend, preview, progress)
	s.record(ctx, service.KindContractNotes, started, summary.Groups-summary.FailedGroups, summary.FailedGroups, summary.Errors)

	if _, err := s.Reload(ctx); err != nil {
		slog.Warn("Reload after import failed", "error", err)
	}

	msg := fmt.Sprintf("Imported %d buys and %d sells", summary.ImportedBuys, summary.ImportedSells)
	if summary.SkippedDuplicates > 0 {
		msg += fmt.Sprintf(", skipped %d duplicates", summary.SkippedDuplicates)
	}
	if len(summary.Errors) > 0 {
		s.notify.Warning(fmt.Sprintf("%s with %d errors", msg, len(summary.Errors)))
	} else {
		s.notify.Success(msg)
	}
	return summary
}

// ImportMFStatements confirms the unflagged rows of a preview fund by fund, then reloads once.
func (s *Shell) ImportMFStatements(ctx context.Context, preview model.MFStatementPreview, progress batch.ProgressFunc) batch.MFImportSummary {
	started := time.Now()
	summary := batch.ConfirmMFStatements(ctx, s.backend, preview, progress)
	s.record(ctx, service.KindMFStatements, started, summary.Funds-summary.FailedFunds, summary.FailedFunds, summary.Errors)

	if _, err := s.Reload(ctx); err != nil {
		slog.Warn("Reload after import failed", "error", err)
	}

	msg := fmt.Sprintf("Imported %d transactions, skipped %d", summary.Imported, summary.Skipped)
	if len(summary.Errors) > 0 {
		s.notify.Warning(fmt.Sprintf("%s with %d errors", msg, len(summary.Errors)))
	} else {
		s.notify.Success(msg)
	}
	return summary
}

// RefreshPrices asks for live prices and reloads. Failures are logged only.
func (s *Shell) RefreshPrices(ctx context.Context) {
	if err := s.backend.RefreshPrices(ctx); err != nil {
		slog.Warn("Price refresh failed", "error", err)
		return
	}
	if _, err := s.Reload(ctx); err != nil {
		slog.Warn("Reload after price refresh failed", "error", err)
	}
}

func (s *Shell) record(ctx context.Context, kind string, started time.Time, succeeded, failed int, errs []string) {
	if s.journal == nil {
		return
	}
	run := &service.BatchRun{
		StartedAt: started,
		Kind:      kind,
		Errors:    errs,
		Succeeded: succeeded,
		Failed:    failed,
		Duration:  time.Since(started),
	}
	if err := s.journal.RecordBatchRun(ctx, run); err != nil {
		slog.Warn("Failed to record batch run", "kind", kind, "error", err)
	}
}

// userMessage picks the text shown for err: the backend detail, a local
// validation message, or fallback.
func userMessage(err error, fallback string) string {
	if detail := api.DetailOf(err, ""); detail != "" {
		return detail
	}
	var userErr *common.UserError
	if errors.As(err, &userErr) {
		return userErr.UserMessage
	}
	if errors.Is(err, common.ErrValidation) || errors.Is(err, batch.ErrMissingSellPrice) {
		return err.Error()
	}
	return fallback
}
