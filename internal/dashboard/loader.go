package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/Veraticus/folio/internal/common"
	"github.com/Veraticus/folio/internal/service"
)

// Loader fans out every dashboard read at once.
type Loader struct {
	reader service.DashboardReader
	now    func() time.Time
}

// NewLoader creates a loader over reader.
func NewLoader(reader service.DashboardReader) *Loader {
	return &Loader{reader: reader, now: time.Now}
}

// Load issues all reads concurrently and merges whatever succeeded. A failed
// read never cancels its siblings. When every read fails the backend is
// considered unreachable.
func (l *Loader) Load(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{Errors: make(map[Section]error)}
	var mu sync.Mutex
	var wg sync.WaitGroup

	run := func(section Section, read func(context.Context) error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := read(ctx); err != nil {
				mu.Lock()
				snap.Errors[section] = err
				mu.Unlock()
			}
		}()
	}

	// Each read assigns its own field, so only the error map is shared.
	run(SectionPortfolio, func(ctx context.Context) (err error) {
		snap.Portfolio, err = l.reader.Portfolio(ctx)
		return err
	})
	run(SectionSummary, func(ctx context.Context) (err error) {
		snap.Summary, err = l.reader.DashboardSummary(ctx)
		return err
	})
	run(SectionTransactions, func(ctx context.Context) (err error) {
		snap.Transactions, err = l.reader.Transactions(ctx)
		return err
	})
	run(SectionStocks, func(ctx context.Context) (err error) {
		snap.Stocks, err = l.reader.StockSummary(ctx)
		return err
	})
	run(SectionMF, func(ctx context.Context) (err error) {
		snap.MF, err = l.reader.MFSummary(ctx)
		return err
	})
	run(SectionFD, func(ctx context.Context) (err error) {
		snap.FD, err = l.reader.FDSummary(ctx)
		return err
	})
	run(SectionRD, func(ctx context.Context) (err error) {
		snap.RD, err = l.reader.RDSummary(ctx)
		return err
	})
	run(SectionInsurance, func(ctx context.Context) (err error) {
		snap.Insurance, err = l.reader.InsuranceSummary(ctx)
		return err
	})
	run(SectionPPF, func(ctx context.Context) (err error) {
		snap.PPF, err = l.reader.PPFSummary(ctx)
		return err
	})
	run(SectionSIP, func(ctx context.Context) (err error) {
		snap.SIPs, err = l.reader.SIPConfigs(ctx)
		return err
	})

	wg.Wait()
	snap.LoadedAt = l.now()

	if len(snap.Errors) == len(Sections) {
		errs := make([]error, 0, len(snap.Errors))
		for _, section := range Sections {
			errs = append(errs, snap.Errors[section])
		}
		return nil, fmt.Errorf("%w: %w", common.ErrBackendUnreachable, errors.Join(errs...))
	}

	for _, section := range snap.Failed() {
		slog.Warn("Dashboard section failed to load", "section", section, "error", snap.Errors[section])
	}
	slog.Debug("Dashboard loaded", "sections", len(Sections)-len(snap.Errors), "failed", len(snap.Errors))
	return snap, nil
}
