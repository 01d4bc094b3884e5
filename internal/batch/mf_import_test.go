package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Veraticus/folio/internal/model"
)

func mfRow(date string, typ model.MFTransactionType, units, amount float64) model.MFTransaction {
	return model.MFTransaction{
		Date:   model.MustParseDate(date),
		Type:   typ,
		Units:  units,
		NAV:    amount / units,
		Amount: amount,
	}
}

func statementFake() *fakeStatements {
	return &fakeStatements{
		previews: map[string]*model.MFStatementPreview{
			"cams.pdf": {Funds: []model.MFFundStatement{
				{FundCode: "PPFAS", FundName: "Parag Parikh Flexi Cap", Transactions: []model.MFTransaction{
					mfRow("2024-01-05", model.MFSIP, 75.123, 5000),
					mfRow("2024-02-05", model.MFSIP, 73.456, 5000),
				}},
			}},
			"kfin.pdf": {Funds: []model.MFFundStatement{
				{FundCode: "PPFAS", FundName: "Parag Parikh Flexi Cap", Transactions: []model.MFTransaction{
					mfRow("2024-03-05", model.MFSIP, 71.0, 5000),
				}},
				{FundCode: "NIFTY50", FundName: "UTI Nifty 50 Index", Transactions: []model.MFTransaction{
					mfRow("2024-03-10", model.MFPurchase, 100, 15000),
				}},
			}},
		},
		existing: []model.MFFundStatement{
			{FundCode: "ppfas", Transactions: []model.MFTransaction{
				mfRow("2024-01-05", model.MFSIP, 75.1234, 5000.004),
				mfRow("2024-02-05", model.MFSIP, 73.5, 5000),
			}},
		},
	}
}

func TestParseMFStatementsMergesFunds(t *testing.T) {
	fake := statementFake()

	preview, errs := ParseMFStatements(context.Background(), fake, []Upload{
		memUpload("cams.pdf", ""),
		memUpload("junk.pdf", ""),
		memUpload("kfin.pdf", ""),
	}, nil)

	require.Len(t, errs, 1)
	assert.Equal(t, "junk.pdf", errs[0].File)
	assert.Equal(t, []string{"cams.pdf", "kfin.pdf"}, preview.SourceFiles)

	require.Len(t, preview.Funds, 2)
	assert.Equal(t, "PPFAS", preview.Funds[0].FundCode)
	require.Len(t, preview.Funds[0].Transactions, 3)
	assert.Equal(t, "kfin.pdf", preview.Funds[0].Transactions[2].SourceFile)
	assert.Equal(t, "cams.pdf", preview.Funds[0].Transactions[0].SourceFile)

	total, dups := preview.Count()
	assert.Equal(t, 4, total)
	assert.Zero(t, dups)
}

func TestFlagDuplicates(t *testing.T) {
	fake := statementFake()
	preview, _ := ParseMFStatements(context.Background(), fake, []Upload{memUpload("cams.pdf", ""), memUpload("kfin.pdf", "")}, nil)

	flagged := FlagDuplicates(&preview, fake.existing)

	assert.Equal(t, 1, flagged)
	ppfas := preview.Funds[0].Transactions
	assert.True(t, ppfas[0].Duplicate, "within rounding tolerance")
	assert.False(t, ppfas[1].Duplicate, "units differ beyond tolerance")
	assert.False(t, ppfas[2].Duplicate)

	total, dups := preview.Count()
	assert.Equal(t, 4, total, "flagged rows stay in the preview")
	assert.Equal(t, 1, dups)
}

func TestConfirmMFStatements(t *testing.T) {
	fake := statementFake()
	fake.importErrs = map[string]error{"NIFTY50": errors.New("Unknown scheme")}
	preview, _ := ParseMFStatements(context.Background(), fake, []Upload{memUpload("cams.pdf", ""), memUpload("kfin.pdf", "")}, nil)
	FlagDuplicates(&preview, fake.existing)

	summary := ConfirmMFStatements(context.Background(), fake, preview, nil)

	require.Len(t, fake.imported, 2)
	assert.Equal(t, "PPFAS", fake.imported[0].FundCode)
	assert.Len(t, fake.imported[0].Transactions, 2)
	for _, row := range fake.imported[0].Transactions {
		assert.False(t, row.Duplicate)
	}

	assert.Equal(t, 2, summary.Imported)
	assert.Equal(t, 1, summary.Skipped)
	assert.Equal(t, 2, summary.Funds)
	assert.Equal(t, 1, summary.FailedFunds)
	require.Len(t, summary.Errors, 1)
	assert.Contains(t, summary.Errors[0], "Unknown scheme")
}

func TestConfirmMFStatementsSkipsFullyDuplicateFunds(t *testing.T) {
	fake := &fakeStatements{}
	row := mfRow("2024-01-05", model.MFSIP, 10, 1000)
	row.Duplicate = true
	preview := model.MFStatementPreview{Funds: []model.MFFundStatement{{FundCode: "X", Transactions: []model.MFTransaction{row}}}}

	summary := ConfirmMFStatements(context.Background(), fake, preview, nil)
	assert.Empty(t, fake.imported)
	assert.Equal(t, 1, summary.Skipped)
	assert.Zero(t, summary.Funds)
}
