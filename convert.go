package fundamentals

import (
	"context"
	"fmt"

	"github.com/Rhymond/go-money"
	"github.com/rs/zerolog/log"
)

// FXLookback is the number of years of exchange rates loaded for a conversion.
// It is wide enough for any statement the processor fetches.
const FXLookback = 5

// FXSymbol returns the symbol of the exchange rate series quoting 'from' in 'to'.
func FXSymbol(from, to string) string { return from + to + "=X" }

// CurrencyConverter converts statements between currencies using daily exchange rates.
type CurrencyConverter struct {
	prices *PriceCache
}

// NewCurrencyConverter returns a converter reading rates through prices.
func NewCurrencyConverter(prices *PriceCache) *CurrencyConverter {
	return &CurrencyConverter{prices: prices}
}

// Convert returns a copy of statements with every monetary field converted
// from 'from' to 'to' at the rate of each statement's period end.
//
// Either every statement is converted or an error is returned: a missing rate
// for any statement fails the whole batch. Callers are expected to skip the
// call when both currencies are the same.
func (c *CurrencyConverter) Convert(ctx context.Context, statements []FinancialStatement, from, to string) ([]FinancialStatement, error) {
	if len(statements) == 0 {
		return nil, nil
	}
	for _, code := range []string{from, to} {
		if money.GetCurrency(code) == nil {
			return nil, fmt.Errorf("cannot convert statements: unknown currency %q", code)
		}
	}

	pair := FXSymbol(from, to)
	rates, err := c.prices.PricesFrom(ctx, pair, c.prices.today().AddDate(-FXLookback, 0, 0))
	if err != nil {
		return nil, fmt.Errorf("cannot load %s rates: %w", pair, err)
	}

	converted := make([]FinancialStatement, 0, len(statements))
	for _, s := range statements {
		rate, ok, err := PriceOn(s.Date, rates)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %s statement of %s: %w", pair, s.Date, err)
		}
		if !ok {
			return nil, fmt.Errorf("cannot convert %s statement of %s: %w", pair, s.Date, ErrDateOutOfRange)
		}
		out := s.clone()
		for field, v := range s.Fields {
			if IsMonetary(field) {
				out.Fields[field] = v.Mul(rate)
			}
		}
		out.Currency = to
		converted = append(converted, out)
	}
	log.Debug().Str("pair", pair).Int("statements", len(converted)).Msg("converted statements")
	return converted, nil
}
