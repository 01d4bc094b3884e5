package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMFTransaction_SameAs(t *testing.T) {
	base := MFTransaction{
		Date:   MustParseDate("2024-03-05"),
		Type:   MFTypeRedemption,
		Units:  12.345,
		Amount: 2500,
	}

	tests := []struct {
		name  string
		other MFTransaction
		want  bool
	}{
		{
			name:  "identical",
			other: base,
			want:  true,
		},
		{
			name:  "type compared case-insensitively",
			other: MFTransaction{Date: base.Date, Type: "redemption", Units: 12.345, Amount: 2500},
			want:  true,
		},
		{
			name:  "within statement rounding",
			other: MFTransaction{Date: base.Date, Type: MFTypeRedemption, Units: 12.3455, Amount: 2500.005},
			want:  true,
		},
		{
			name:  "different type",
			other: MFTransaction{Date: base.Date, Type: MFPurchase, Units: 12.345, Amount: 2500},
			want:  false,
		},
		{
			name:  "different date",
			other: MFTransaction{Date: MustParseDate("2024-03-06"), Type: MFTypeRedemption, Units: 12.345, Amount: 2500},
			want:  false,
		},
		{
			name:  "units outside tolerance",
			other: MFTransaction{Date: base.Date, Type: MFTypeRedemption, Units: 12.35, Amount: 2500},
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.SameAs(tt.other))
		})
	}
}

func TestMFStatementPreview_Count(t *testing.T) {
	preview := MFStatementPreview{Funds: []MFFundStatement{
		{FundCode: "F1", Transactions: []MFTransaction{
			{Type: MFSIP},
			{Type: MFTypeRedemption, Duplicate: true},
		}},
		{FundCode: "F2", Transactions: []MFTransaction{
			{Type: MFSwitchIn},
		}},
	}}

	total, dups := preview.Count()
	assert.Equal(t, 3, total)
	assert.Equal(t, 1, dups)
	assert.Equal(t, "Redemption", string(MFTypeRedemption))
}

func TestContractNotePreview_Recount(t *testing.T) {
	p := ContractNotePreview{Trades: []ParsedTrade{
		{Symbol: "INFY", Action: ActionBuy},
		{Symbol: "TCS", Action: ActionSell},
		{Symbol: "INFY", Action: ActionBuy},
	}}
	p.Recount()
	assert.Equal(t, 3, p.Total)
	assert.Equal(t, 2, p.Buys)
	assert.Equal(t, 1, p.Sells)
}
