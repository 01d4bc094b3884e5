package finance

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompoundMaturity(t *testing.T) {
	p := CompoundMaturity(100000, 7, 12, 4)
	require.NotNil(t, p)

	want := 100000 * math.Pow(1+7.0/400, 4)
	assert.InDelta(t, want, p.Maturity, 0.005)
	assert.InDelta(t, 100000, p.Invested, 0)
	assert.Equal(t, 4, p.Periods)
}

func TestCompoundMaturity_InterestNeverNegativeAndConsistent(t *testing.T) {
	principals := []float64{1, 999.99, 25000, 100000, 1234567.89}
	rates := []float64{0.01, 3.5, 7.25, 9.1, 18}
	tenures := []int{1, 6, 13, 36, 120}
	frequencies := []int{1, 2, 4, 12}

	for _, principal := range principals {
		for _, rate := range rates {
			for _, tenure := range tenures {
				for _, n := range frequencies {
					p := CompoundMaturity(principal, rate, tenure, n)
					require.NotNil(t, p)
					assert.GreaterOrEqual(t, p.Maturity, p.Invested)
					assert.GreaterOrEqual(t, p.Interest, 0.0)
					assert.InDelta(t, p.Maturity-p.Invested, p.Interest, 0.01)
				}
			}
		}
	}
}

func TestProjections_SuppressedForNonPositiveInputs(t *testing.T) {
	tests := []struct {
		got  *Projection
		name string
	}{
		{name: "fd zero principal", got: CompoundMaturity(0, 7, 12, 4)},
		{name: "fd negative rate", got: CompoundMaturity(1000, -1, 12, 4)},
		{name: "fd zero tenure", got: CompoundMaturity(1000, 7, 0, 4)},
		{name: "payout zero principal", got: PeriodicPayout(0, 7, 12, 3)},
		{name: "payout zero interval", got: PeriodicPayout(1000, 7, 12, 0)},
		{name: "payout interval longer than a year", got: PeriodicPayout(100000, 8, 48, 24)},
		{name: "payout interval not dividing a year", got: PeriodicPayout(100000, 8, 10, 5)},
		{name: "accrued interval not dividing a year", got: AccruedPayout(100000, 8, 24, 7, 14)},
		{name: "accrued negative rate", got: AccruedPayout(1000, -7, 12, 3, 6)},
		{name: "rd zero monthly", got: PeriodicAccrualMaturity(0, 7, 12, 3)},
		{name: "rd zero tenure", got: PeriodicAccrualMaturity(5000, 7, 0, 3)},
		{name: "rd approx zero rate", got: QuarterlyApproxMaturity(5000, 0, 12)},
		{name: "ppf zero years", got: AnnualMaxContributionProjection(7.1, 0)},
		{name: "ppf zero rate", got: AnnualMaxContributionProjection(0, 15)},
		{name: "unparsable input", got: CompoundMaturity(ParseAmount("abc"), 7, 12, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, tt.got)
		})
	}
}

func TestPeriodicPayout(t *testing.T) {
	// Quarterly payout on 1L at 8% for 2 years: 8 periods of 2000.
	p := PeriodicPayout(100000, 8, 24, 3)
	require.NotNil(t, p)
	assert.InDelta(t, 2000, p.PerPeriod, 0)
	assert.Equal(t, 8, p.Periods)
	assert.InDelta(t, 16000, p.Interest, 0)
	assert.InDelta(t, 116000, p.Maturity, 0)

	// Partial periods are not paid.
	p = PeriodicPayout(100000, 8, 10, 3)
	require.NotNil(t, p)
	assert.Equal(t, 3, p.Periods)
}

func TestPeriodicPayout_SumsUnroundedAccruals(t *testing.T) {
	// 100001 × 7% / 12 = 583.339166..., twelve of which are 7000.07.
	p := PeriodicPayout(100001, 7, 12, 1)
	require.NotNil(t, p)
	assert.InDelta(t, 583.34, p.PerPeriod, 0)
	assert.InDelta(t, 7000.07, p.Interest, 0.0001)
	assert.InDelta(t, 107001.07, p.Maturity, 0.0001)
}

func TestValidPayoutInterval(t *testing.T) {
	tests := []struct {
		months int
		want   bool
	}{
		{months: 1, want: true},
		{months: 3, want: true},
		{months: 6, want: true},
		{months: 12, want: true},
		{months: 0},
		{months: -3},
		{months: 5},
		{months: 24},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ValidPayoutInterval(tt.months), "months=%d", tt.months)
	}
}

func TestAccruedPayout(t *testing.T) {
	p := AccruedPayout(100000, 6, 36, 1, 7)
	require.NotNil(t, p)
	assert.Equal(t, 7, p.Periods)
	assert.InDelta(t, 3500, p.Interest, 0.001)

	capped := AccruedPayout(100000, 6, 12, 1, 40)
	require.NotNil(t, capped)
	assert.Equal(t, 12, capped.Periods)

	notStarted := AccruedPayout(100000, 6, 12, 1, -3)
	require.NotNil(t, notStarted)
	assert.Equal(t, 0, notStarted.Periods)
	assert.InDelta(t, 0, notStarted.Interest, 0)
}

func TestPeriodicAccrualMaturity_QuarterlyExample(t *testing.T) {
	const monthly, rate = 5000.0, 7.0

	// Interest accrues only at months 4, 8 and 12.
	interest := 0.0
	for _, m := range []float64{4, 8, 12} {
		interest += (monthly*m + interest) * (rate / 100) * (4.0 / 12)
	}

	p := PeriodicAccrualMaturity(monthly, rate, 12, 4)
	require.NotNil(t, p)
	assert.Equal(t, 3, p.Periods)
	assert.InDelta(t, 60000, p.Invested, 0)
	assert.InDelta(t, math.Round(interest*100)/100, p.Interest, 0.0001)
	assert.InDelta(t, 2843.81, p.Interest, 0.0001)
	assert.InDelta(t, 62843.81, p.Maturity, 0.0001)
}

func TestPeriodicAccrualMaturity_NoCompoundingBeforeFirstPeriod(t *testing.T) {
	p := PeriodicAccrualMaturity(1000, 7, 2, 3)
	require.NotNil(t, p)
	assert.Equal(t, 0, p.Periods)
	assert.InDelta(t, 2000, p.Maturity, 0)
	assert.InDelta(t, 0, p.Interest, 0)
}

func TestQuarterlyApproxMaturity_CloseToExplicitAccrual(t *testing.T) {
	approx := QuarterlyApproxMaturity(5000, 7, 60)
	explicit := PeriodicAccrualMaturity(5000, 7, 60, 3)
	require.NotNil(t, approx)
	require.NotNil(t, explicit)

	assert.InDelta(t, 300000, approx.Invested, 0)
	assert.Greater(t, approx.Interest, 0.0)
	// Both variants model the same product; they should agree within a few percent.
	assert.InEpsilon(t, explicit.Maturity, approx.Maturity, 0.03)
}

func TestAnnualMaxContributionProjection(t *testing.T) {
	balance := 0.0
	for i := 0; i < 15; i++ {
		balance = (balance + 150000) * 1.071
	}

	p := AnnualMaxContributionProjection(7.1, 15)
	require.NotNil(t, p)
	assert.InDelta(t, 2250000, p.Invested, 0)
	assert.InDelta(t, math.Round(balance*100)/100, p.Maturity, 0.0001)
	assert.InDelta(t, p.Maturity-p.Invested, p.Interest, 0.01)
	assert.Equal(t, 15, p.Periods)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{in: "1,50,000", want: 150000},
		{in: "₹ 2,500.50", want: 2500.5},
		{in: "  42 ", want: 42},
		{in: "", want: 0},
		{in: "12abc", want: 0},
		{in: "NaN", want: 0},
		{in: "-5", want: -5},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseAmount(tt.in), 0)
		})
	}
}

func TestPeriodsPerYearForPayout(t *testing.T) {
	assert.Equal(t, 12, PeriodsPerYearForPayout(1))
	assert.Equal(t, 4, PeriodsPerYearForPayout(3))
	assert.Equal(t, 2, PeriodsPerYearForPayout(6))
	assert.Equal(t, 1, PeriodsPerYearForPayout(12))
	assert.Equal(t, DefaultPeriodsPerYear, PeriodsPerYearForPayout(0))
	assert.Equal(t, DefaultPeriodsPerYear, PeriodsPerYearForPayout(5))
}
