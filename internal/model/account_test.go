package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAccountStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    AccountStatus
		wantErr bool
	}{
		{input: "Active", want: StatusActive},
		{input: "matured", want: StatusMatured},
		{input: " PREMATURE ", want: StatusPremature},
		{input: "cancelled", want: StatusCancelled},
		{input: "frozen", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAccountStatus(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownStatus)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPPFAccount_AddPhaseClosesPriorPhase(t *testing.T) {
	acct := PPFAccount{Holder: "A", Rate: 7.1, TenureYears: 15, StartDate: MustParseDate("2020-04-01")}

	require.NoError(t, acct.AddPhase(PPFPhase{Start: MustParseDate("2020-04-01"), Frequency: FrequencyMonthly, Amount: 5000}))
	require.NoError(t, acct.AddPhase(PPFPhase{Start: MustParseDate("2022-04-01"), Frequency: FrequencyMonthly, Amount: 12500}))

	require.Len(t, acct.Phases, 2)
	require.NotNil(t, acct.Phases[0].End)
	assert.Equal(t, "2022-04-01", acct.Phases[0].End.String())
	assert.Nil(t, acct.Phases[1].End)

	phase, ok := acct.ActivePhase(MustParseDate("2021-01-15"))
	require.True(t, ok)
	assert.InDelta(t, 5000, phase.Amount, 0.001)

	phase, ok = acct.ActivePhase(MustParseDate("2022-04-01"))
	require.True(t, ok)
	assert.InDelta(t, 12500, phase.Amount, 0.001)

	_, ok = acct.ActivePhase(MustParseDate("2019-01-01"))
	assert.False(t, ok)
}

func TestPPFAccount_AddPhaseRejectsOverlap(t *testing.T) {
	end := MustParseDate("2023-01-01")
	acct := PPFAccount{Phases: []PPFPhase{
		{Start: MustParseDate("2021-01-01"), End: &end, Frequency: FrequencyYearly, Amount: 150000},
	}}

	err := acct.AddPhase(PPFPhase{Start: MustParseDate("2022-06-01"), Frequency: FrequencyMonthly, Amount: 1000})
	assert.ErrorIs(t, err, ErrPhaseOverlap)

	err = acct.AddPhase(PPFPhase{Start: MustParseDate("2020-06-01"), Frequency: FrequencyMonthly, Amount: 1000})
	assert.ErrorIs(t, err, ErrPhaseOverlap)

	require.NoError(t, acct.AddPhase(PPFPhase{Start: MustParseDate("2023-01-01"), Frequency: FrequencyMonthly, Amount: 1000}))
	assert.Len(t, acct.Phases, 2)
}

func TestPPFAccount_AddPhaseLeavesPhasesUntouchedOnError(t *testing.T) {
	acct := PPFAccount{}
	require.NoError(t, acct.AddPhase(PPFPhase{Start: MustParseDate("2022-01-01"), Frequency: FrequencyMonthly, Amount: 1000}))

	err := acct.AddPhase(PPFPhase{Start: MustParseDate("2021-01-01"), Frequency: FrequencyMonthly, Amount: 1000})
	require.ErrorIs(t, err, ErrPhaseOverlap)
	assert.Nil(t, acct.Phases[0].End)
}

func TestFixedDeposit_Validate(t *testing.T) {
	valid := FixedDeposit{Bank: "SBI", Principal: 100000, Rate: 7, TenureMonths: 12, StartDate: MustParseDate("2024-01-01")}
	require.NoError(t, valid.Validate())
	assert.Equal(t, "2025-01-01", valid.MaturityDate().String())

	bad := valid
	bad.PayoutMonths = 5
	assert.ErrorIs(t, bad.Validate(), ErrInvalidAccount)

	bad = valid
	bad.Principal = 0
	assert.ErrorIs(t, bad.Validate(), ErrInvalidAccount)
}

func TestInsurancePolicy_Validate(t *testing.T) {
	p := InsurancePolicy{
		Provider: "LIC", PolicyName: "Jeevan", Premium: 12000, SumAssured: 500000,
		StartDate: MustParseDate("2020-01-01"), EndDate: MustParseDate("2019-01-01"),
	}
	assert.ErrorIs(t, p.Validate(), ErrInvalidAccount)

	p.EndDate = MustParseDate("2040-01-01")
	assert.NoError(t, p.Validate())
}
