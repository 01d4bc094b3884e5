package finance

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// PPFAnnualLimit is the statutory maximum PPF contribution per financial year.
const PPFAnnualLimit = 150000.0

// DefaultPeriodsPerYear is quarterly compounding, the bank default for cumulative FDs.
const DefaultPeriodsPerYear = 4

// Projection is a rounded maturity preview. Interest is always Maturity - Invested.
type Projection struct {
	Invested  float64
	Interest  float64
	Maturity  float64
	PerPeriod float64
	Periods   int
}

func newProjection(invested, maturity float64) *Projection {
	inv := decimal.NewFromFloat(invested).Round(2)
	mat := decimal.NewFromFloat(maturity).Round(2)
	return &Projection{
		Invested: inv.InexactFloat64(),
		Maturity: mat.InexactFloat64(),
		Interest: mat.Sub(inv).InexactFloat64(),
	}
}

func round2(x float64) float64 {
	return decimal.NewFromFloat(x).Round(2).InexactFloat64()
}

// ParseAmount reads a user-entered number, tolerating currency symbols,
// thousands separators and whitespace. Anything unparsable yields 0.
func ParseAmount(s string) float64 {
	cleaned := strings.NewReplacer(",", "", "₹", "", " ", "", "_", "").Replace(strings.TrimSpace(s))
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// PeriodsPerYearForPayout converts a payout interval in months into
// compounding periods per year. Zero or an interval that does not divide
// twelve falls back to quarterly.
func PeriodsPerYearForPayout(payoutMonths int) int {
	if payoutMonths <= 0 || payoutMonths > 12 || 12%payoutMonths != 0 {
		return DefaultPeriodsPerYear
	}
	return 12 / payoutMonths
}

// ValidPayoutInterval reports whether payoutMonths divides a year evenly.
func ValidPayoutInterval(payoutMonths int) bool {
	return payoutMonths > 0 && payoutMonths <= 12 && 12%payoutMonths == 0
}

// CompoundMaturity is the cumulative FD preview:
// principal × (1 + rate/(100×n))^(n×years), with years = tenureMonths/12.
func CompoundMaturity(principal, ratePct float64, tenureMonths, periodsPerYear int) *Projection {
	if principal <= 0 || ratePct <= 0 || tenureMonths <= 0 || periodsPerYear <= 0 {
		return nil
	}
	n := float64(periodsPerYear)
	years := float64(tenureMonths) / 12
	maturity := principal * math.Pow(1+ratePct/(100*n), n*years)

	p := newProjection(principal, maturity)
	p.Periods = int(math.Floor(n * years))
	return p
}

// PeriodicPayout is the payout FD preview. Each whole payout period pays
// principal × rate/100 / periodsPerYear; interest is that amount times the
// number of whole periods in the tenure. Intervals that do not divide a year
// yield no preview.
func PeriodicPayout(principal, ratePct float64, tenureMonths, payoutMonths int) *Projection {
	if principal <= 0 || ratePct <= 0 || tenureMonths <= 0 || !ValidPayoutInterval(payoutMonths) {
		return nil
	}
	return payoutOver(principal, ratePct, payoutMonths, tenureMonths/payoutMonths)
}

// AccruedPayout is PeriodicPayout restricted to the whole periods elapsed so
// far, capped at the tenure.
func AccruedPayout(principal, ratePct float64, tenureMonths, payoutMonths, elapsedMonths int) *Projection {
	if principal <= 0 || ratePct <= 0 || tenureMonths <= 0 || !ValidPayoutInterval(payoutMonths) {
		return nil
	}
	if elapsedMonths < 0 {
		elapsedMonths = 0
	}
	if elapsedMonths > tenureMonths {
		elapsedMonths = tenureMonths
	}
	return payoutOver(principal, ratePct, payoutMonths, elapsedMonths/payoutMonths)
}

// payoutOver sums the unrounded per-period accrual; only the totals and the
// displayed PerPeriod are rounded.
func payoutOver(principal, ratePct float64, payoutMonths, periods int) *Projection {
	perPeriod := decimal.NewFromFloat(principal).
		Mul(decimal.NewFromFloat(ratePct)).
		Div(decimal.NewFromInt(int64(100 * PeriodsPerYearForPayout(payoutMonths))))

	interest := perPeriod.Mul(decimal.NewFromInt(int64(periods)))
	p := newProjection(principal, decimal.NewFromFloat(principal).Add(interest).InexactFloat64())
	p.PerPeriod = perPeriod.Round(2).InexactFloat64()
	p.Periods = periods
	return p
}

// PeriodicAccrualMaturity is the RD preview. For each month m in 1..tenure,
// when m is a multiple of compoundingMonths, interest on
// (monthly×m + accrued interest) for one compounding period is added.
func PeriodicAccrualMaturity(monthly, ratePct float64, tenureMonths, compoundingMonths int) *Projection {
	if monthly <= 0 || ratePct <= 0 || tenureMonths <= 0 || compoundingMonths <= 0 {
		return nil
	}
	rate := ratePct / 100
	fraction := float64(compoundingMonths) / 12

	interest := 0.0
	periods := 0
	for m := 1; m <= tenureMonths; m++ {
		if m%compoundingMonths != 0 {
			continue
		}
		interest += (monthly*float64(m) + interest) * rate * fraction
		periods++
	}

	deposited := monthly * float64(tenureMonths)
	p := newProjection(deposited, round2(deposited)+round2(interest))
	p.Periods = periods
	return p
}

// QuarterlyApproxMaturity is the closed-form RD approximation used by banks,
// treating the deposit stream as compounding quarterly:
// M = P × ((1+i)^n − 1) / (1 − (1+i)^(−1/3)), i = rate/400, n = tenure/3.
func QuarterlyApproxMaturity(monthly, ratePct float64, tenureMonths int) *Projection {
	if monthly <= 0 || ratePct <= 0 || tenureMonths <= 0 {
		return nil
	}
	i := ratePct / 400
	n := float64(tenureMonths) / 3
	maturity := monthly * (math.Pow(1+i, n) - 1) / (1 - math.Pow(1+i, -1.0/3))

	p := newProjection(monthly*float64(tenureMonths), maturity)
	p.Periods = int(n)
	return p
}

// AnnualMaxContributionProjection projects a PPF balance assuming the full
// PPFAnnualLimit is deposited at the start of every year and compounded
// annually. It deliberately ignores recorded contributions.
func AnnualMaxContributionProjection(ratePct float64, years int) *Projection {
	if ratePct <= 0 || years <= 0 {
		return nil
	}
	growth := 1 + ratePct/100
	balance := 0.0
	for y := 0; y < years; y++ {
		balance = (balance + PPFAnnualLimit) * growth
	}

	p := newProjection(PPFAnnualLimit*float64(years), balance)
	p.Periods = years
	p.PerPeriod = PPFAnnualLimit
	return p
}
