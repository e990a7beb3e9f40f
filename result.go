package fundamentals

import "github.com/etnz/fundamentals/date"

// Result is everything computed for one symbol.
type Result struct {
	Summary         Summary           `json:"summary"`
	ThisQuarter     *TrailingSnapshot `json:"thisQuarter"`
	PreviousQuarter *TrailingSnapshot `json:"previousQuarter"`
	RevenueGrowth   GrowthSplit       `json:"revenueGrowth"`
	EarningsGrowth  GrowthSplit       `json:"earningsGrowth"`
}

// GrowthSplit holds one growth rate computed on annual and on quarterly statements.
type GrowthSplit struct {
	Annual    *Ratio `json:"annual"`
	Quarterly *Ratio `json:"quarterly"`
}

// Summary is the snapshot reported by the quote summary, as is.
type Summary struct {
	Symbol            string     `json:"symbol"`
	Name              string     `json:"name,omitempty"`
	Type              string     `json:"type,omitempty"`
	MarketCap         *float64   `json:"marketCap,omitempty"`
	PriceCurrency     string     `json:"priceCurrency,omitempty"`
	StatementCurrency string     `json:"statementCurrency,omitempty"`
	MarketPrice       *float64   `json:"marketPrice,omitempty"`
	Beta              *float64   `json:"beta,omitempty"`
	GrossMargin       *float64   `json:"grossMargin,omitempty"`
	OperatingMargin   *float64   `json:"operatingMargin,omitempty"`
	ProfitMargin      *float64   `json:"profitMargin,omitempty"`
	SharesOutstanding *float64   `json:"sharesOutstanding,omitempty"`
	TrailingEPS       *float64   `json:"trailingEps,omitempty"`
	ForwardEPS        *float64   `json:"forwardEps,omitempty"`
	TrailingPE        *float64   `json:"trailingPE,omitempty"`
	ForwardPE         *float64   `json:"forwardPE,omitempty"`
	PriceToBook       *float64   `json:"priceToBook,omitempty"`
	NextEarningsDate  *date.Date `json:"nextEarningsDate,omitempty"`
	FiftyTwoWeekRatio *float64   `json:"fiftyTwoWeekRatio,omitempty"`
}

// newSummary maps the quote summary into a Summary. Missing modules leave fields empty.
func newSummary(symbol string, q *QuoteSummary) Summary {
	s := Summary{
		Symbol:            symbol,
		PriceCurrency:     q.PriceCurrency(),
		StatementCurrency: q.StatementCurrency(),
	}
	if p := q.Price; p != nil {
		if p.Symbol != "" {
			s.Symbol = p.Symbol
		}
		s.Name = p.ShortName
		if s.Name == "" {
			s.Name = p.LongName
		}
		s.Type = p.QuoteType
		s.MarketCap = p.MarketCap
		s.MarketPrice = p.RegularMarketPrice
	}
	if d := q.SummaryDetail; d != nil {
		s.Beta = d.Beta
		s.TrailingPE = d.TrailingPE
		s.ForwardPE = d.ForwardPE
		if s.MarketCap == nil {
			s.MarketCap = d.MarketCap
		}
	}
	if k := q.KeyStatistics; k != nil {
		s.SharesOutstanding = k.SharesOutstanding
		s.TrailingEPS = k.TrailingEPS
		s.ForwardEPS = k.ForwardEPS
		s.PriceToBook = k.PriceToBook
	}
	if f := q.FinancialData; f != nil {
		s.GrossMargin = f.GrossMargins
		s.OperatingMargin = f.OperatingMargins
		s.ProfitMargin = f.ProfitMargins
		if s.MarketPrice == nil {
			s.MarketPrice = f.CurrentPrice
		}
	}
	if c := q.CalendarEvents; c != nil && len(c.EarningsDates) > 0 {
		next := c.EarningsDates[0]
		s.NextEarningsDate = &next
	}
	if d := q.SummaryDetail; d != nil {
		s.FiftyTwoWeekRatio = rangeRatio(s.MarketPrice, d.FiftyTwoWeekLow, d.FiftyTwoWeekHigh)
	}
	return s
}

// rangeRatio places price within [low, high]: 0 at the low, 1 at the high.
func rangeRatio(price, low, high *float64) *float64 {
	if price == nil || low == nil || high == nil || *high == *low {
		return nil
	}
	r := (*price - *low) / (*high - *low)
	return &r
}
