package cli

import (
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currency is the display currency of every amount.
const Currency = money.INR

// FormatMoney renders amount in rupees, rounded to paise.
func FormatMoney(amount float64) string {
	paise := decimal.NewFromFloat(amount).Round(2).Shift(2).IntPart()
	return money.New(paise, Currency).Display()
}

// FormatSignedMoney is FormatMoney with an explicit plus for gains.
func FormatSignedMoney(amount float64) string {
	s := FormatMoney(amount)
	if decimal.NewFromFloat(amount).Round(2).IsPositive() {
		return "+" + s
	}
	return s
}

// FormatPercent renders pct with two decimals and a sign.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%+.2f%%", pct)
}

// GainPercent is gain over invested in percent, or zero with nothing invested.
func GainPercent(invested, current float64) float64 {
	if invested == 0 {
		return 0
	}
	return (current - invested) / invested * 100
}
