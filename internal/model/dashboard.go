package model

// DashboardSummary is the headline figures across all asset classes.
type DashboardSummary struct {
	TotalInvested  float64 `json:"total_invested"`
	CurrentValue   float64 `json:"current_value"`
	TotalGain      float64 `json:"total_gain"`
	DayChange      float64 `json:"day_change"`
	DayChangePct   float64 `json:"day_change_pct"`
	RealizedGain   float64 `json:"realized_gain"`
	DividendIncome float64 `json:"dividend_income"`
}

// PortfolioEntry is one row of the combined portfolio view.
type PortfolioEntry struct {
	AssetType    string  `json:"asset_type"`
	Name         string  `json:"name"`
	Invested     float64 `json:"invested"`
	CurrentValue float64 `json:"current_value"`
}

// TransactionRecord is a historical buy or sell as listed by the backend.
type TransactionRecord struct {
	Date     Date    `json:"date"`
	ID       string  `json:"id"`
	Symbol   string  `json:"symbol"`
	Type     string  `json:"type"`
	Quantity float64 `json:"quantity"`
	Price    float64 `json:"price"`
}

// StockSummary lists held stock lots and closed sales.
type StockSummary struct {
	Holdings []Lot               `json:"holdings"`
	Sold     []ClosedTransaction `json:"sold"`
	Invested float64             `json:"total_invested"`
	Current  float64             `json:"current_value"`
}

// HeldLots returns only the open lots.
func (s StockSummary) HeldLots() []Lot {
	held := make([]Lot, 0, len(s.Holdings))
	for _, l := range s.Holdings {
		if l.IsHeld() {
			held = append(held, l)
		}
	}
	return held
}

// LivePrices maps each symbol to its last known live price.
func (s StockSummary) LivePrices() map[string]float64 {
	prices := make(map[string]float64)
	for _, l := range s.Holdings {
		if l.LivePrice > 0 {
			prices[l.Symbol] = l.LivePrice
		}
	}
	return prices
}

// MFHolding is one mutual-fund lot.
type MFHolding struct {
	BuyDate    Date    `json:"buy_date"`
	ID         string  `json:"id"`
	FundCode   string  `json:"fund_code"`
	FundName   string  `json:"fund_name"`
	Folio      string  `json:"folio_number,omitempty"`
	Units      float64 `json:"units"`
	NAV        float64 `json:"nav"`
	CurrentNAV float64 `json:"current_nav,omitempty"`
}

// MFSummary lists mutual-fund holdings.
type MFSummary struct {
	Holdings []MFHolding `json:"holdings"`
	Invested float64     `json:"total_invested"`
	Current  float64     `json:"current_value"`
}

// FDSummary lists fixed deposits.
type FDSummary struct {
	Deposits []FixedDeposit `json:"deposits"`
	Invested float64        `json:"total_invested"`
	Current  float64        `json:"current_value"`
}

// RDSummary lists recurring deposits.
type RDSummary struct {
	Deposits []RecurringDeposit `json:"deposits"`
	Invested float64            `json:"total_invested"`
	Current  float64            `json:"current_value"`
}

// InsuranceSummary lists insurance policies.
type InsuranceSummary struct {
	Policies      []InsurancePolicy `json:"policies"`
	AnnualPremium float64           `json:"total_annual_premium"`
	SumAssured    float64           `json:"total_sum_assured"`
}

// PPFSummary lists PPF accounts.
type PPFSummary struct {
	Accounts []PPFAccount `json:"accounts"`
	Invested float64      `json:"total_invested"`
	Current  float64      `json:"current_value"`
}

// TickerItem is one entry of the market ticker.
type TickerItem struct {
	Symbol    string  `json:"symbol"`
	Name      string  `json:"name,omitempty"`
	Price     float64 `json:"price"`
	Change    float64 `json:"change"`
	ChangePct float64 `json:"change_pct"`
}

// ZerodhaStatus reports the broker connection.
type ZerodhaStatus struct {
	UserName  string `json:"user_name,omitempty"`
	ExpiresAt string `json:"expires_at,omitempty"`
	Connected bool   `json:"connected"`
}
