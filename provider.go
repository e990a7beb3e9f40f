package fundamentals

import (
	"context"

	"github.com/etnz/fundamentals/date"
	"github.com/shopspring/decimal"
)

// Quote summary modules requested by the processor.
const (
	ModulePrice          = "price"
	ModuleSummaryDetail  = "summaryDetail"
	ModuleKeyStatistics  = "defaultKeyStatistics"
	ModuleFinancialData  = "financialData"
	ModuleCalendarEvents = "calendarEvents"
)

// SummaryModules is the set of modules a Processor asks for.
var SummaryModules = []string{ModulePrice, ModuleSummaryDetail, ModuleKeyStatistics, ModuleFinancialData, ModuleCalendarEvents}

// TypeAll tags fundamentals records covering every statement kind. Only those are used.
const TypeAll = "ALL"

// Provider is the market data source.
type Provider interface {
	// QuoteSummary returns the requested modules for symbol. Modules the provider
	// does not have for that symbol are left nil.
	QuoteSummary(ctx context.Context, symbol string, modules []string) (*QuoteSummary, error)
	// PriceHistory returns daily closes within r, boundaries included.
	PriceHistory(ctx context.Context, symbol string, r date.Range) ([]PricePoint, error)
	// FundamentalsTimeSeries returns statements whose period ends within r.
	FundamentalsTimeSeries(ctx context.Context, symbol string, r date.Range, period date.Period) ([]RawStatement, error)
}

// PricePoint is a daily close.
type PricePoint struct {
	Date  date.Date
	Close decimal.Decimal
}

// RawStatement is a fundamentals record as reported by the provider.
type RawStatement struct {
	Date       date.Date
	PeriodType string // "3M" or "12M"
	Type       string
	Currency   string
	Values     map[string]float64
}

// QuoteSummary is a typed view of the quote summary. Every module is optional.
type QuoteSummary struct {
	Price          *PriceModule
	SummaryDetail  *SummaryDetail
	KeyStatistics  *KeyStatistics
	FinancialData  *FinancialData
	CalendarEvents *CalendarEvents
}

type PriceModule struct {
	Symbol             string
	ShortName          string
	LongName           string
	QuoteType          string // EQUITY, ETF, INDEX, MUTUALFUND, CURRENCY, ...
	Currency           string
	RegularMarketPrice *float64
	MarketCap          *float64
}

type SummaryDetail struct {
	Currency         string
	Beta             *float64
	TrailingPE       *float64
	ForwardPE        *float64
	FiftyTwoWeekLow  *float64
	FiftyTwoWeekHigh *float64
	MarketCap        *float64
}

type KeyStatistics struct {
	SharesOutstanding *float64
	TrailingEPS       *float64
	ForwardEPS        *float64
	PriceToBook       *float64
}

type FinancialData struct {
	FinancialCurrency string
	CurrentPrice      *float64
	GrossMargins      *float64
	OperatingMargins  *float64
	ProfitMargins     *float64
}

type CalendarEvents struct {
	// EarningsDates holds the announced window for the next earnings, usually one or two dates.
	EarningsDates []date.Date
}

// IsEquity reports whether the summary describes a single company share.
func (q *QuoteSummary) IsEquity() bool {
	return q != nil && q.Price != nil && q.Price.QuoteType == "EQUITY"
}

// PriceCurrency returns the trading currency, or "" if unknown.
func (q *QuoteSummary) PriceCurrency() string {
	switch {
	case q == nil:
		return ""
	case q.Price != nil && q.Price.Currency != "":
		return q.Price.Currency
	case q.SummaryDetail != nil:
		return q.SummaryDetail.Currency
	}
	return ""
}

// StatementCurrency returns the reporting currency of the financial statements, or "" if unknown.
func (q *QuoteSummary) StatementCurrency() string {
	if q == nil || q.FinancialData == nil {
		return ""
	}
	return q.FinancialData.FinancialCurrency
}
