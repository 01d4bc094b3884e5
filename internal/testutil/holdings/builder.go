// Package holdings builds stock lots for tests with a fluent API.
//
// Example usage:
//
//	lots := holdings.NewBuilder(t).
//		WithFixture(holdings.FixtureSingleSymbol).
//		WithLot("h9", holdings.SymbolTCS, 2, 3400).
//		Lots()
package holdings

import (
	"fmt"
	"testing"

	"github.com/Veraticus/folio/internal/model"
)

// DefaultBuyDate is the purchase date given to lots that do not set one.
var DefaultBuyDate = model.MustParseDate("2023-04-03")

// Symbol is a strongly-typed ticker used by fixtures.
type Symbol string

// Common symbols used across tests.
const (
	SymbolINFY  Symbol = "INFY"
	SymbolTCS   Symbol = "TCS"
	SymbolHDFC  Symbol = "HDFCBANK"
	SymbolWIPRO Symbol = "WIPRO"
)

// Lots is a built set of lots in insertion order.
type Lots []model.Lot

// Find returns the lot with id, or nil.
func (l Lots) Find(id string) *model.Lot {
	for i := range l {
		if l[i].ID == id {
			return &l[i]
		}
	}
	return nil
}

// MustFind returns the lot with id or fails the test.
func (l Lots) MustFind(t *testing.T, id string) model.Lot {
	t.Helper()
	lot := l.Find(id)
	if lot == nil {
		t.Fatalf("lot %q not found in test data", id)
	}
	return *lot
}

// IDs returns the lot ids in order.
func (l Lots) IDs() []string {
	ids := make([]string, len(l))
	for i, lot := range l {
		ids[i] = lot.ID
	}
	return ids
}

// Builder accumulates lots and live prices.
type Builder interface {
	// WithLot adds a held lot.
	WithLot(id string, symbol Symbol, quantity, buyPrice float64) Builder

	// WithSoldLot adds a lot that has already been sold.
	WithSoldLot(id string, symbol Symbol, quantity, buyPrice float64, sold model.Date) Builder

	// WithLivePrice sets the live price of every lot of symbol.
	WithLivePrice(symbol Symbol, price float64) Builder

	// WithFixture adds the lots of a predefined fixture.
	WithFixture(fixture Fixture) Builder

	// Lots returns the built lots.
	Lots() Lots

	// Summary wraps the lots in a stock summary as the backend reports it.
	Summary() *model.StockSummary
}

type lotBuilder struct {
	t      *testing.T
	prices map[Symbol]float64
	lots   Lots
	seen   map[string]bool
}

// NewBuilder creates a builder for the given test.
func NewBuilder(t *testing.T) Builder {
	t.Helper()
	return &lotBuilder{
		t:      t,
		prices: make(map[Symbol]float64),
		seen:   make(map[string]bool),
	}
}

func (b *lotBuilder) add(lot model.Lot) {
	b.t.Helper()
	if b.seen[lot.ID] {
		b.t.Fatalf("duplicate lot id %q", lot.ID)
	}
	b.seen[lot.ID] = true
	b.lots = append(b.lots, lot)
}

func (b *lotBuilder) WithLot(id string, symbol Symbol, quantity, buyPrice float64) Builder {
	b.add(model.Lot{ID: id, Symbol: string(symbol), Quantity: quantity, BuyPrice: buyPrice, BuyDate: DefaultBuyDate})
	return b
}

func (b *lotBuilder) WithSoldLot(id string, symbol Symbol, quantity, buyPrice float64, sold model.Date) Builder {
	b.add(model.Lot{ID: id, Symbol: string(symbol), Quantity: quantity, BuyPrice: buyPrice, BuyDate: DefaultBuyDate, SellDate: &sold})
	return b
}

func (b *lotBuilder) WithLivePrice(symbol Symbol, price float64) Builder {
	b.prices[symbol] = price
	return b
}

func (b *lotBuilder) WithFixture(fixture Fixture) Builder {
	for i, spec := range fixture.Lots() {
		id := spec.ID
		if id == "" {
			id = fmt.Sprintf("%s-%d", fixture.Name(), i+1)
		}
		b.WithLot(id, spec.Symbol, spec.Quantity, spec.BuyPrice)
	}
	return b
}

func (b *lotBuilder) Lots() Lots {
	out := make(Lots, len(b.lots))
	for i, lot := range b.lots {
		if price, ok := b.prices[Symbol(lot.Symbol)]; ok {
			lot.LivePrice = price
		}
		out[i] = lot
	}
	return out
}

func (b *lotBuilder) Summary() *model.StockSummary {
	lots := b.Lots()
	sum := &model.StockSummary{Holdings: lots}
	for _, l := range lots.held() {
		sum.Invested += l.Invested()
		sum.Current += l.CurrentValue()
	}
	return sum
}

func (l Lots) held() Lots {
	out := make(Lots, 0, len(l))
	for _, lot := range l {
		if lot.IsHeld() {
			out = append(out, lot)
		}
	}
	return out
}
