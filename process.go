package fundamentals

import (
	"context"
	"fmt"

	"github.com/etnz/fundamentals/date"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

// Statement lookbacks, in years.
const (
	AnnualLookback    = 5
	QuarterlyLookback = 2
)

// Processor computes the Result of a symbol from a Provider.
type Processor struct {
	provider  Provider
	prices    *PriceCache
	converter *CurrencyConverter
	today     func() date.Date
}

// NewProcessor returns a Processor with its own price cache.
func NewProcessor(provider Provider) *Processor {
	prices := NewPriceCache(provider)
	return &Processor{
		provider:  provider,
		prices:    prices,
		converter: NewCurrencyConverter(prices),
		today:     date.Today,
	}
}

// Prices returns the price cache used by the processor.
func (p *Processor) Prices() *PriceCache { return p.prices }

// Process fetches everything known about symbol and derives its trailing
// statistics and growth.
//
// Any failure aborts the whole processing: a Result is either complete or not
// returned at all. Statistics that cannot be computed, for instance for
// instruments that are not equities, are left nil.
func (p *Processor) Process(ctx context.Context, symbol string) (*Result, error) {
	log.Debug().Str("symbol", symbol).Msg("fetching quote summary")
	summary, err := p.provider.QuoteSummary(ctx, symbol, SummaryModules)
	if err != nil {
		return nil, fmt.Errorf("%w: quote summary of %s: %w", ErrUpstream, symbol, err)
	}
	if summary == nil {
		summary = new(QuoteSummary)
	}

	var (
		prices    = new(Prices)
		annual    []FinancialStatement
		quarterly []FinancialStatement
	)
	if summary.IsEquity() {
		prices, annual, quarterly, err = p.fetchEquity(ctx, symbol)
		if err != nil {
			return nil, err
		}
	} else {
		log.Debug().Str("symbol", symbol).Msg("not an equity, skipping statements")
	}

	from, to := summary.StatementCurrency(), summary.PriceCurrency()
	if from != "" && to != "" && from != to {
		log.Debug().Str("symbol", symbol).Str("from", from).Str("to", to).Msg("converting statements")
		if annual, err = p.converter.Convert(ctx, annual, from, to); err != nil {
			return nil, fmt.Errorf("cannot convert annual statements of %s: %w", symbol, err)
		}
		if quarterly, err = p.converter.Convert(ctx, quarterly, from, to); err != nil {
			return nil, fmt.Errorf("cannot convert quarterly statements of %s: %w", symbol, err)
		}
	}

	thisQuarter, err := Trailing(quarterly, prices)
	if err != nil {
		return nil, fmt.Errorf("cannot compute trailing statistics of %s: %w", symbol, err)
	}
	previousQuarter, err := PreviousQuarter(quarterly, prices)
	if err != nil {
		return nil, fmt.Errorf("cannot compute previous quarter statistics of %s: %w", symbol, err)
	}
	annualGrowth, quarterlyGrowth := ComputeGrowth(annual), ComputeGrowth(quarterly)

	return &Result{
		Summary:         newSummary(symbol, summary),
		ThisQuarter:     thisQuarter,
		PreviousQuarter: previousQuarter,
		RevenueGrowth: GrowthSplit{
			Annual:    annualGrowth.revenue(),
			Quarterly: quarterlyGrowth.revenue(),
		},
		EarningsGrowth: GrowthSplit{
			Annual:    annualGrowth.earnings(),
			Quarterly: quarterlyGrowth.earnings(),
		},
	}, nil
}

// fetchEquity fetches the price history and both statement series concurrently.
func (p *Processor) fetchEquity(ctx context.Context, symbol string) (prices *Prices, annual, quarterly []FinancialStatement, err error) {
	today := p.today()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		prices, err = p.prices.Prices(gctx, symbol)
		return err
	})
	g.Go(func() (err error) {
		annual, err = p.statements(gctx, symbol, date.Lookback(today, AnnualLookback), date.Yearly)
		return err
	})
	g.Go(func() (err error) {
		quarterly, err = p.statements(gctx, symbol, date.Lookback(today, QuarterlyLookback), date.Quarterly)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return prices, annual, quarterly, nil
}

// statements fetches one statement series and keeps the records covering all statement kinds.
func (p *Processor) statements(ctx context.Context, symbol string, r date.Range, period date.Period) ([]FinancialStatement, error) {
	log.Debug().Str("symbol", symbol).Stringer("period", period).Stringer("range", r).Msg("fetching statements")
	raw, err := p.provider.FundamentalsTimeSeries(ctx, symbol, r, period)
	if err != nil {
		return nil, fmt.Errorf("%w: %s statements of %s: %w", ErrUpstream, period, symbol, err)
	}
	statements := make([]FinancialStatement, 0, len(raw))
	for _, rs := range raw {
		if rs.Type != TypeAll {
			continue
		}
		statements = append(statements, newStatement(rs, period))
	}
	return statements, nil
}

// newStatement converts a provider record into a FinancialStatement.
func newStatement(rs RawStatement, period date.Period) FinancialStatement {
	s := FinancialStatement{
		Date:     rs.Date,
		Period:   period,
		Currency: rs.Currency,
		Fields:   make(map[string]decimal.Decimal, len(rs.Values)),
	}
	if p, err := date.ParsePeriod(rs.PeriodType); err == nil {
		s.Period = p
	}
	for k, v := range rs.Values {
		s.Fields[k] = decimal.NewFromFloat(v)
	}
	return s
}

func (g *Growth) revenue() *Ratio {
	if g == nil {
		return nil
	}
	return g.Revenue
}

func (g *Growth) earnings() *Ratio {
	if g == nil {
		return nil
	}
	return g.Earnings
}
