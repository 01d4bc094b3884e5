// Package dashboard loads every portfolio section concurrently and runs
// mutations through a single reload-after-write path.
package dashboard

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Veraticus/folio/internal/common"
	"github.com/Veraticus/folio/internal/model"
)

// Section names one independently loaded part of the dashboard.
type Section string

// Dashboard sections.
const (
	SectionPortfolio    Section = "portfolio"
	SectionSummary      Section = "summary"
	SectionTransactions Section = "transactions"
	SectionStocks       Section = "stocks"
	SectionMF           Section = "mutual_funds"
	SectionFD           Section = "fd"
	SectionRD           Section = "rd"
	SectionInsurance    Section = "insurance"
	SectionPPF          Section = "ppf"
	SectionSIP          Section = "sip"
)

// Sections lists every section in display order.
var Sections = []Section{
	SectionPortfolio, SectionSummary, SectionTransactions, SectionStocks, SectionMF,
	SectionFD, SectionRD, SectionInsurance, SectionPPF, SectionSIP,
}

// Snapshot is the result of one load cycle. Sections that failed are nil and
// have an entry in Errors.
type Snapshot struct {
	LoadedAt     time.Time
	Summary      *model.DashboardSummary
	Stocks       *model.StockSummary
	MF           *model.MFSummary
	FD           *model.FDSummary
	RD           *model.RDSummary
	Insurance    *model.InsuranceSummary
	PPF          *model.PPFSummary
	Errors       map[Section]error
	Portfolio    []model.PortfolioEntry
	Transactions []model.TransactionRecord
	SIPs         []model.SIPConfig
}

// Partial reports whether at least one section failed.
func (s *Snapshot) Partial() bool {
	return len(s.Errors) > 0
}

// Failed returns the failed sections in display order.
func (s *Snapshot) Failed() []Section {
	failed := make([]Section, 0, len(s.Errors))
	for section := range s.Errors {
		failed = append(failed, section)
	}
	sort.Slice(failed, func(i, j int) bool { return sectionRank(failed[i]) < sectionRank(failed[j]) })
	return failed
}

// Err summarizes the failed sections as an ErrPartialLoad, or nil.
func (s *Snapshot) Err() error {
	if !s.Partial() {
		return nil
	}
	names := make([]string, 0, len(s.Errors))
	errs := make([]error, 0, len(s.Errors))
	for _, section := range s.Failed() {
		names = append(names, string(section))
		errs = append(errs, s.Errors[section])
	}
	return fmt.Errorf("%w: %s: %w", common.ErrPartialLoad, strings.Join(names, ", "), errors.Join(errs...))
}

// HeldLots returns the open stock lots, or nil when stocks failed to load.
func (s *Snapshot) HeldLots() []model.Lot {
	if s.Stocks == nil {
		return nil
	}
	return s.Stocks.HeldLots()
}

func sectionRank(s Section) int {
	for i, section := range Sections {
		if section == s {
			return i
		}
	}
	return len(Sections)
}
