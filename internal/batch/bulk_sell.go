package batch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/Veraticus/folio/internal/common"
	"github.com/Veraticus/folio/internal/model"
	"github.com/Veraticus/folio/internal/service"
)

// ErrMissingSellPrice blocks a bulk sell until every symbol has a price.
var ErrMissingSellPrice = errors.New("sell price required")

// ValidPrice reports whether price is a usable sell price: positive and finite.
func ValidPrice(price float64) bool {
	return price > 0 && !math.IsInf(price, 0)
}

// SellGroup is every selected lot of one symbol, sold at a single price.
type SellGroup struct {
	Symbol string
	Lots   []model.Lot
	Price  float64
}

// Quantity is the total quantity across the group's lots.
func (g SellGroup) Quantity() float64 {
	total := 0.0
	for _, l := range g.Lots {
		total += l.Quantity
	}
	return total
}

// Proceeds is Quantity at the group price.
func (g SellGroup) Proceeds() float64 {
	return g.Quantity() * g.Price
}

// SellPlan is a bulk sell awaiting prices.
type SellPlan struct {
	lots   []model.Lot
	groups []SellGroup
	index  map[string]int
}

// PlanBulkSell groups held lots by symbol in first-seen order. Each group's
// price defaults to the symbol's last live price, or zero when unknown.
func PlanBulkSell(lots []model.Lot, lastPrices map[string]float64) (*SellPlan, error) {
	if len(lots) == 0 {
		return nil, common.Validationf("no lots selected")
	}
	plan := &SellPlan{index: make(map[string]int)}
	for _, l := range lots {
		if !l.IsHeld() {
			return nil, fmt.Errorf("%w: %s", model.ErrLotClosed, l.ID)
		}
		i, ok := plan.index[l.Symbol]
		if !ok {
			i = len(plan.groups)
			plan.index[l.Symbol] = i
			plan.groups = append(plan.groups, SellGroup{Symbol: l.Symbol, Price: lastPrices[l.Symbol]})
		}
		plan.groups[i].Lots = append(plan.groups[i].Lots, l)
		plan.lots = append(plan.lots, l)
	}
	return plan, nil
}

// Groups returns the symbol groups in display order.
func (p *SellPlan) Groups() []SellGroup {
	return p.groups
}

// Lots returns the selected lots in selection order.
func (p *SellPlan) Lots() []model.Lot {
	return p.lots
}

// Price returns the chosen price for symbol.
func (p *SellPlan) Price(symbol string) float64 {
	if i, ok := p.index[symbol]; ok {
		return p.groups[i].Price
	}
	return 0
}

// SetPrice sets the sell price applied to every lot of symbol.
func (p *SellPlan) SetPrice(symbol string, price float64) error {
	i, ok := p.index[symbol]
	if !ok {
		return fmt.Errorf("%w: %s is not part of this sale", common.ErrNotFound, symbol)
	}
	p.groups[i].Price = price
	return nil
}

// MissingPrices lists the symbols without a positive, finite price.
func (p *SellPlan) MissingPrices() []string {
	var missing []string
	for _, g := range p.groups {
		if !ValidPrice(g.Price) {
			missing = append(missing, g.Symbol)
		}
	}
	return missing
}

// Validate fails with ErrMissingSellPrice while any group lacks a positive price.
func (p *SellPlan) Validate() error {
	if missing := p.MissingPrices(); len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingSellPrice, strings.Join(missing, ", "))
	}
	return nil
}

// Flatten produces one full-quantity order per lot, in selection order.
func (p *SellPlan) Flatten(date model.Date) ([]model.SellOrder, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if date.IsZero() {
		return nil, common.Validationf("sell date is required")
	}
	orders := make([]model.SellOrder, 0, len(p.lots))
	for _, l := range p.lots {
		orders = append(orders, model.SellOrder{
			SellDate:  date,
			HoldingID: l.ID,
			Symbol:    l.Symbol,
			Quantity:  l.Quantity,
			SellPrice: p.Price(l.Symbol),
		})
	}
	return orders, nil
}

// ExecuteBulkSell submits the orders one at a time. Failures are logged and
// counted; they never stop the queue.
func ExecuteBulkSell(ctx context.Context, seller service.StockSeller, orders []model.SellOrder, progress ProgressFunc) Result[model.SellOrder] {
	result := Fold(orders, func(o model.SellOrder) error {
		return seller.SellStock(ctx, o)
	}, progress)

	for _, f := range result.Failed {
		slog.Error("Sell failed",
			"holding_id", f.Item.HoldingID,
			"symbol", f.Item.Symbol,
			"quantity", f.Item.Quantity,
			"error", f.Err)
	}
	succeeded, failed := result.Counts()
	slog.Info("Bulk sell finished", "succeeded", succeeded, "failed", failed)
	return result
}
