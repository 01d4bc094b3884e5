package holdings

// LotSpec describes one fixture lot. An empty ID is generated from the
// fixture name.
type LotSpec struct {
	ID       string
	Symbol   Symbol
	Quantity float64
	BuyPrice float64
}

// Fixture is a predefined set of lots.
type Fixture interface {
	Name() string
	Lots() []LotSpec
}

type fixture struct {
	name string
	lots []LotSpec
}

func (f *fixture) Name() string    { return f.name }
func (f *fixture) Lots() []LotSpec { return f.lots }

// Predefined fixtures for common test scenarios.
var (
	// FixtureSingleSymbol is three INFY lots bought at different prices.
	FixtureSingleSymbol Fixture = &fixture{
		name: "single",
		lots: []LotSpec{
			{ID: "h1", Symbol: SymbolINFY, Quantity: 10, BuyPrice: 1400},
			{ID: "h2", Symbol: SymbolINFY, Quantity: 5, BuyPrice: 1450},
			{ID: "h3", Symbol: SymbolINFY, Quantity: 7, BuyPrice: 1500},
		},
	}

	// FixtureMixed interleaves two symbols so grouping order can be checked.
	FixtureMixed Fixture = &fixture{
		name: "mixed",
		lots: []LotSpec{
			{ID: "m1", Symbol: SymbolTCS, Quantity: 2, BuyPrice: 3300},
			{ID: "m2", Symbol: SymbolINFY, Quantity: 10, BuyPrice: 1400},
			{ID: "m3", Symbol: SymbolTCS, Quantity: 1, BuyPrice: 3500},
		},
	}
)
