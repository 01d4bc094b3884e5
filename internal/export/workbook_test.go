package export

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Veraticus/folio/internal/dashboard"
	"github.com/Veraticus/folio/internal/model"
)

func testSnapshot() *dashboard.Snapshot {
	sold := model.MustParseDate("2024-01-10")
	return &dashboard.Snapshot{
		Stocks: &model.StockSummary{Holdings: []model.Lot{
			{ID: "h1", Symbol: "INFY", Name: "Infosys", BuyDate: model.MustParseDate("2023-04-01"), Quantity: 10, BuyPrice: 1400, LivePrice: 1500},
			{ID: "h2", Symbol: "TCS", BuyDate: model.MustParseDate("2023-05-01"), Quantity: 2, BuyPrice: 3000, SellDate: &sold},
		}},
		MF: &model.MFSummary{Holdings: []model.MFHolding{
			{ID: "m1", FundCode: "120503", FundName: "Axis Bluechip", BuyDate: model.MustParseDate("2022-01-03"), Units: 100, NAV: 40},
		}},
		FD: &model.FDSummary{Deposits: []model.FixedDeposit{
			{Bank: "HDFC", Status: model.StatusActive, StartDate: model.MustParseDate("2024-01-01"), Principal: 100000, Rate: 7, TenureMonths: 12},
		}},
		PPF: &model.PPFSummary{Accounts: []model.PPFAccount{
			{Holder: "Asha", Bank: "SBI", Status: model.StatusActive, StartDate: model.MustParseDate("2015-04-01"), Rate: 7.1, TenureYears: 15,
				Contributions: []model.Contribution{{Amount: 50000}, {Amount: 25000}}},
		}},
		Errors: map[dashboard.Section]error{
			dashboard.SectionRD:        errors.New("boom"),
			dashboard.SectionInsurance: errors.New("boom"),
		},
	}
}

func readBack(t *testing.T, data []byte) *excelize.File {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testSnapshot()))

	f := readBack(t, buf.Bytes())
	assert.Equal(t, []string{SheetHoldings, SheetDeposits, SheetInsurance}, f.GetSheetList())

	holdings, err := f.GetRows(SheetHoldings)
	require.NoError(t, err)
	require.Len(t, holdings, 3, "header, one held lot and one fund")
	assert.Equal(t, "Type", holdings[0][0])
	assert.Equal(t, []string{"Stock", "INFY", "Infosys", "2023-04-01", "10", "1400", "1500", "14000", "15000", "1000"}, holdings[1])
	assert.Equal(t, "Mutual Fund", holdings[2][0])
	assert.Equal(t, "40", holdings[2][6], "cost NAV stands in for a missing live NAV")
	assert.Equal(t, "0", holdings[2][9])

	deposits, err := f.GetRows(SheetDeposits)
	require.NoError(t, err)
	require.Len(t, deposits, 3)
	assert.Equal(t, []string{"FD", "HDFC", "Active", "2024-01-01", "2025-01-01", "7", "100000"}, deposits[1])
	assert.Equal(t, "SBI (Asha)", deposits[2][1])
	assert.Equal(t, "2030-04-01", deposits[2][4])
	assert.Equal(t, "75000", deposits[2][6])

	insurance, err := f.GetRows(SheetInsurance)
	require.NoError(t, err)
	require.Len(t, insurance, 1, "failed section leaves only the header")
}

func TestWorkbookEmptySnapshot(t *testing.T) {
	f, err := Workbook(&dashboard.Snapshot{})
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	for _, sheet := range []string{SheetHoldings, SheetDeposits, SheetInsurance} {
		rows, err := f.GetRows(sheet)
		require.NoError(t, err)
		assert.Len(t, rows, 1, sheet)
	}
}

func TestSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.xlsx")
	require.NoError(t, Save(path, testSnapshot()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(SheetHoldings)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}
