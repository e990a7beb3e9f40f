package fundamentals

import (
	"fmt"

	"github.com/etnz/fundamentals/date"
	"github.com/shopspring/decimal"
)

// TrailingQuarters is the number of quarterly statements in a trailing twelve months window.
const TrailingQuarters = 4

// TrailingSnapshot holds trailing twelve months figures valued at the close
// of the last quarter of the window.
type TrailingSnapshot struct {
	Date              date.Date       `json:"date"`
	Close             decimal.Decimal `json:"close"`
	SharesOutstanding decimal.Decimal `json:"sharesOutstanding"`
	MarketCap         decimal.Decimal `json:"marketCap"`
	NetIncome         decimal.Decimal `json:"netIncome"`
	FreeCashFlow      decimal.Decimal `json:"freeCashFlow"`
	EPS               Ratio           `json:"eps"`
	PE                Ratio           `json:"pe"`
	FCFYield          Ratio           `json:"fcfYield"`
}

// Trailing computes the trailing twelve months snapshot of the four most
// recent quarterly statements, valued with prices.
//
// It returns nil without error when there are fewer than four statements, or
// when prices have no close on or before the last period end.
// Ratios are not guarded: a zero or negative net income gives an infinite or
// negative P/E.
func Trailing(statements []FinancialStatement, prices *Prices) (*TrailingSnapshot, error) {
	window := lastN(statements, TrailingQuarters)
	if window == nil {
		return nil, nil
	}
	last := window[len(window)-1]

	shares, ok := last.Get(BasicAverageShares)
	if !ok {
		shares, ok = last.Get(OrdinarySharesNumber)
	}
	if !ok {
		return nil, fmt.Errorf("%w: statement of %s has neither %s nor %s", ErrMissingField, last.Date, BasicAverageShares, OrdinarySharesNumber)
	}

	var netIncome, freeCashFlow decimal.Decimal
	for _, s := range window {
		if v, ok := s.Get(NetIncome); ok {
			netIncome = netIncome.Add(v)
		}
		if v, ok := s.Get(FreeCashFlow); ok {
			freeCashFlow = freeCashFlow.Add(v)
		}
	}

	price, ok, err := PriceOn(last.Date, prices)
	if err != nil {
		return nil, fmt.Errorf("cannot value trailing statements of %s: %w", last.Date, err)
	}
	if !ok {
		return nil, nil
	}

	marketCap := price.Mul(shares)
	return &TrailingSnapshot{
		Date:              last.Date,
		Close:             price,
		SharesOutstanding: shares,
		MarketCap:         marketCap,
		NetIncome:         netIncome,
		FreeCashFlow:      freeCashFlow,
		EPS:               ratio(netIncome.InexactFloat64(), shares.InexactFloat64()),
		PE:                ratio(marketCap.InexactFloat64(), netIncome.InexactFloat64()),
		FCFYield:          ratio(freeCashFlow.InexactFloat64(), marketCap.InexactFloat64()),
	}, nil
}

// PreviousQuarter computes the trailing snapshot one quarter earlier: the most
// recent statement is dropped and the window is taken on what remains.
func PreviousQuarter(statements []FinancialStatement, prices *Prices) (*TrailingSnapshot, error) {
	if len(statements) == 0 {
		return nil, nil
	}
	sorted := chronological(statements)
	return Trailing(sorted[:len(sorted)-1], prices)
}
