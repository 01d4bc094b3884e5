package api

import (
	"fmt"
	"net/url"
)

// Backend routes.
const (
	pathPortfolio        = "/api/portfolio"
	pathDashboardSummary = "/api/dashboard/summary"
	pathTransactions     = "/api/transactions"
	pathStockSummary     = "/api/stocks/summary"
	pathMFSummary        = "/api/mutual-funds/summary"
	pathMFTransactions   = "/api/mutual-funds/transactions"
	pathFDSummary        = "/api/fd/summary"
	pathRDSummary        = "/api/rd/summary"
	pathInsuranceSummary = "/api/insurance/summary"
	pathPPFSummary       = "/api/ppf/summary"
	pathSIP              = "/api/sip"
	pathTicker           = "/api/market/ticker"
	pathZerodhaStatus    = "/api/zerodha/status"

	pathStocks       = "/api/stocks"
	pathStockSell    = "/api/stocks/sell"
	pathDividends    = "/api/dividends"
	pathMutualFunds  = "/api/mutual-funds"
	pathMFRedeem     = "/api/mutual-funds/redeem"
	pathFD           = "/api/fd"
	pathRD           = "/api/rd"
	pathInsurance    = "/api/insurance"
	pathPPF          = "/api/ppf"
	pathNoteParse    = "/api/contract-notes/parse"
	pathNoteImport   = "/api/contract-notes/import"
	pathMFStmtParse  = "/api/mf-statements/parse"
	pathMFStmtImport = "/api/mf-statements/import"

	pathRefreshPrices   = "/api/prices/refresh"
	pathRefreshTicker   = "/api/market/ticker/refresh"
	pathRefreshInterval = "/api/settings/refresh-interval"
	pathZerodhaToken    = "/api/zerodha/token"
	pathZerodhaValidate = "/api/zerodha/validate"
)

// item joins a collection path and an escaped id, with optional sub-resources.
func item(collection, id string, sub ...string) string {
	p := fmt.Sprintf("%s/%s", collection, url.PathEscape(id))
	for _, s := range sub {
		p += "/" + s
	}
	return p
}
