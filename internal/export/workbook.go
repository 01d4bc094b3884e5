// Package export writes dashboard snapshots to spreadsheet files.
package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/folio/internal/dashboard"
	"github.com/Veraticus/folio/internal/model"
)

// Sheet names.
const (
	SheetHoldings  = "Holdings"
	SheetDeposits  = "Deposits"
	SheetInsurance = "Insurance"
)

var (
	holdingsHeader  = []any{"Type", "Symbol", "Name", "Bought", "Quantity", "Buy Price", "Current Price", "Invested", "Current Value", "Gain"}
	depositsHeader  = []any{"Type", "Institution", "Status", "Start", "Maturity", "Rate %", "Invested"}
	insuranceHeader = []any{"Provider", "Policy", "Type", "Status", "Start", "End", "Frequency", "Premium", "Sum Assured"}
)

// Workbook renders snap as an in-memory workbook. Sections that failed to
// load are left out of their sheet. The caller must Close the file.
func Workbook(snap *dashboard.Snapshot) (*excelize.File, error) {
	f := excelize.NewFile()

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	sheets := []struct {
		name   string
		header []any
		rows   [][]any
	}{
		{SheetHoldings, holdingsHeader, holdingRows(snap)},
		{SheetDeposits, depositsHeader, depositRows(snap)},
		{SheetInsurance, insuranceHeader, insuranceRows(snap)},
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.name); err != nil {
				_ = f.Close()
				return nil, fmt.Errorf("failed to name sheet %s: %w", s.name, err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("failed to add sheet %s: %w", s.name, err)
		}
		if err := writeSheet(f, s.name, s.header, s.rows, bold); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

// Write renders snap and streams the xlsx bytes to w.
func Write(w io.Writer, snap *dashboard.Snapshot) error {
	f, err := Workbook(snap)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// Save renders snap to an xlsx file at path.
func Save(path string, snap *dashboard.Snapshot) error {
	f, err := Workbook(snap)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook to %s: %w", path, err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []any, rows [][]any, headerStyle int) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return fmt.Errorf("failed to address %s header: %w", sheet, err)
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address %s row %d: %w", sheet, i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func holdingRows(snap *dashboard.Snapshot) [][]any {
	var rows [][]any
	for _, l := range snap.HeldLots() {
		current := l.LivePrice
		if current <= 0 {
			current = l.BuyPrice
		}
		rows = append(rows, []any{
			"Stock", l.Symbol, l.Name, l.BuyDate.String(), l.Quantity, l.BuyPrice, current,
			l.Invested(), l.CurrentValue(), l.CurrentValue() - l.Invested(),
		})
	}
	if snap.MF != nil {
		for _, h := range snap.MF.Holdings {
			nav := h.CurrentNAV
			if nav <= 0 {
				nav = h.NAV
			}
			invested := h.Units * h.NAV
			value := h.Units * nav
			rows = append(rows, []any{
				"Mutual Fund", h.FundCode, h.FundName, h.BuyDate.String(), h.Units, h.NAV, nav,
				invested, value, value - invested,
			})
		}
	}
	return rows
}

func depositRows(snap *dashboard.Snapshot) [][]any {
	var rows [][]any
	if snap.FD != nil {
		for _, d := range snap.FD.Deposits {
			rows = append(rows, []any{
				"FD", d.Bank, string(d.Status), d.StartDate.String(), d.MaturityDate().String(), d.Rate, d.Principal,
			})
		}
	}
	if snap.RD != nil {
		for _, d := range snap.RD.Deposits {
			rows = append(rows, []any{
				"RD", d.Bank, string(d.Status), d.StartDate.String(), d.StartDate.AddMonths(d.TenureMonths).String(), d.Rate, d.Deposited(),
			})
		}
	}
	if snap.PPF != nil {
		for _, a := range snap.PPF.Accounts {
			rows = append(rows, []any{
				"PPF", ppfInstitution(a), string(a.Status), a.StartDate.String(), a.StartDate.AddMonths(a.TenureYears * 12).String(), a.Rate, a.Contributed(),
			})
		}
	}
	return rows
}

func ppfInstitution(a model.PPFAccount) string {
	if a.Bank == "" {
		return a.Holder
	}
	return a.Bank + " (" + a.Holder + ")"
}

func insuranceRows(snap *dashboard.Snapshot) [][]any {
	if snap.Insurance == nil {
		return nil
	}
	rows := make([][]any, 0, len(snap.Insurance.Policies))
	for _, p := range snap.Insurance.Policies {
		rows = append(rows, []any{
			p.Provider, p.PolicyName, p.PolicyType, string(p.Status), p.StartDate.String(), p.EndDate.String(),
			string(p.PremiumFrequency), p.Premium, p.SumAssured,
		})
	}
	return rows
}
