package model

import (
	"errors"
	"fmt"
)

// Lot errors.
var (
	ErrLotClosed   = errors.New("lot is already closed")
	ErrInvalidLot  = errors.New("invalid lot")
	ErrInvalidSale = errors.New("invalid sale")
)

// Lot is a single buy of a stock (shares) or mutual fund (units).
// A held lot always has Quantity > 0; a sold lot is frozen into a ClosedTransaction.
type Lot struct {
	BuyDate   Date     `json:"buy_date"`
	SellDate  *Date    `json:"sell_date,omitempty"`
	SellPrice *float64 `json:"sell_price,omitempty"`
	ID        string   `json:"id"`
	Symbol    string   `json:"symbol"`
	Exchange  string   `json:"exchange,omitempty"`
	Name      string   `json:"name,omitempty"`
	Quantity  float64  `json:"quantity"`
	BuyPrice  float64  `json:"buy_price"`
	LivePrice float64  `json:"current_price,omitempty"`
}

// IsHeld reports whether the lot is still open.
func (l Lot) IsHeld() bool {
	return l.SellDate == nil
}

// Invested is the cost basis of the lot.
func (l Lot) Invested() float64 {
	return l.Quantity * l.BuyPrice
}

// CurrentValue values the lot at its live price, falling back to cost.
func (l Lot) CurrentValue() float64 {
	if l.LivePrice <= 0 {
		return l.Invested()
	}
	return l.Quantity * l.LivePrice
}

// Validate checks the held-lot invariants.
func (l Lot) Validate() error {
	if l.Symbol == "" {
		return fmt.Errorf("%w: missing symbol", ErrInvalidLot)
	}
	if l.IsHeld() && l.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive, got %v", ErrInvalidLot, l.Quantity)
	}
	if l.BuyPrice < 0 {
		return fmt.Errorf("%w: negative buy price", ErrInvalidLot)
	}
	if l.BuyDate.IsZero() {
		return fmt.Errorf("%w: missing buy date", ErrInvalidLot)
	}
	return nil
}

// Close sells the whole lot and returns the immutable closed record.
func (l *Lot) Close(date Date, price float64) (ClosedTransaction, error) {
	if !l.IsHeld() {
		return ClosedTransaction{}, fmt.Errorf("%w: %s", ErrLotClosed, l.ID)
	}
	if price <= 0 {
		return ClosedTransaction{}, fmt.Errorf("%w: sell price must be positive", ErrInvalidSale)
	}
	if date.Before(l.BuyDate) {
		return ClosedTransaction{}, fmt.Errorf("%w: sell date %s precedes buy date %s", ErrInvalidSale, date, l.BuyDate)
	}

	l.SellDate = &date
	l.SellPrice = &price

	return ClosedTransaction{
		BuyDate:   l.BuyDate,
		SellDate:  date,
		LotID:     l.ID,
		Symbol:    l.Symbol,
		Quantity:  l.Quantity,
		BuyPrice:  l.BuyPrice,
		SellPrice: price,
	}, nil
}

// ClosedTransaction is a realized sale. It is never modified after creation.
type ClosedTransaction struct {
	BuyDate   Date    `json:"buy_date"`
	SellDate  Date    `json:"sell_date"`
	LotID     string  `json:"holding_id"`
	Symbol    string  `json:"symbol"`
	Quantity  float64 `json:"quantity"`
	BuyPrice  float64 `json:"buy_price"`
	SellPrice float64 `json:"sell_price"`
}

// RealizedPL is the profit or loss of the sale.
func (c ClosedTransaction) RealizedPL() float64 {
	return (c.SellPrice - c.BuyPrice) * c.Quantity
}

// SellOrder is a request to sell quantity of a held lot.
type SellOrder struct {
	SellDate  Date    `json:"sell_date"`
	HoldingID string  `json:"holding_id"`
	Symbol    string  `json:"-"`
	Quantity  float64 `json:"quantity"`
	SellPrice float64 `json:"sell_price"`
}

// Validate checks the order against basic constraints.
func (o SellOrder) Validate() error {
	if o.HoldingID == "" {
		return fmt.Errorf("%w: missing holding id", ErrInvalidSale)
	}
	if o.Quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidSale)
	}
	if o.SellPrice <= 0 {
		return fmt.Errorf("%w: sell price must be positive", ErrInvalidSale)
	}
	if o.SellDate.IsZero() {
		return fmt.Errorf("%w: missing sell date", ErrInvalidSale)
	}
	return nil
}

// Dividend records a cash dividend received on a symbol.
type Dividend struct {
	Date   Date    `json:"date"`
	Symbol string  `json:"symbol"`
	Amount float64 `json:"amount"`
}

// MFRedemption redeems units of a mutual fund holding.
type MFRedemption struct {
	Date      Date    `json:"redemption_date"`
	HoldingID string  `json:"holding_id"`
	Units     float64 `json:"units"`
	NAV       float64 `json:"nav"`
}
