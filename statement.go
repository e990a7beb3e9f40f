package fundamentals

import (
	"maps"
	"slices"

	"github.com/etnz/fundamentals/date"
	"github.com/shopspring/decimal"
)

// Line items used by the trailing and growth computations.
const (
	TotalRevenue         = "totalRevenue"
	NetIncome            = "netIncome"
	FreeCashFlow         = "freeCashFlow"
	BasicAverageShares   = "basicAverageShares"
	OrdinarySharesNumber = "ordinarySharesNumber"
)

// nonMonetaryFields lists every statement line item that is not an amount of
// money. Anything not listed here is converted when the reporting currency
// differs from the trading currency.
var nonMonetaryFields = map[string]struct{}{
	"basicAverageShares":    {},
	"dilutedAverageShares":  {},
	"ordinarySharesNumber":  {},
	"shareIssued":           {},
	"treasurySharesNumber":  {},
	"preferredSharesNumber": {},
	"sharesOutstanding":     {},
	"taxRateForCalcs":       {},
}

// IsMonetary reports whether the line item is denominated in the reporting currency.
func IsMonetary(field string) bool {
	_, ok := nonMonetaryFields[field]
	return !ok
}

// FinancialStatement holds the line items of one reporting period.
type FinancialStatement struct {
	Date     date.Date // period end
	Period   date.Period
	Currency string // reporting currency of the monetary fields, "" if unknown
	Fields   map[string]decimal.Decimal
}

// Get returns the value of a line item and whether it was reported.
func (s FinancialStatement) Get(field string) (decimal.Decimal, bool) {
	v, ok := s.Fields[field]
	return v, ok
}

// clone returns a copy whose Fields map can be modified independently.
func (s FinancialStatement) clone() FinancialStatement {
	s.Fields = maps.Clone(s.Fields)
	if s.Fields == nil {
		s.Fields = make(map[string]decimal.Decimal)
	}
	return s
}

// chronological returns a copy of statements sorted by period end, oldest first.
func chronological(statements []FinancialStatement) []FinancialStatement {
	sorted := slices.Clone(statements)
	slices.SortStableFunc(sorted, func(a, b FinancialStatement) int {
		return a.Date.Compare(b.Date)
	})
	return sorted
}

// lastN returns the n most recent statements, oldest first, or nil if there are fewer than n.
func lastN(statements []FinancialStatement, n int) []FinancialStatement {
	if len(statements) < n {
		return nil
	}
	sorted := chronological(statements)
	return sorted[len(sorted)-n:]
}
