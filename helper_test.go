package fundamentals

import (
	"context"
	"errors"
	"sync"

	"github.com/etnz/fundamentals/date"
	"github.com/shopspring/decimal"
)

// today is the fixed current date used by tests.
var today = date.New(2025, 10, 15)

func fixedToday() date.Date { return today }

// d is a helper for test to create a date from a const
func d(s string) date.Date { return date.MustParse(s) }

// dec is a helper for test to create a decimal from a const
func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

// statement is a helper for test to create a quarterly statement.
func statement(on string, fields map[string]float64) FinancialStatement {
	s := FinancialStatement{Date: d(on), Period: date.Quarterly, Fields: make(map[string]decimal.Decimal)}
	for k, v := range fields {
		s.Fields[k] = dec(v)
	}
	return s
}

// history is a helper for test to create a price series from date/close pairs.
func history(points ...PricePoint) *Prices {
	h := new(Prices)
	for _, p := range points {
		h.Append(p.Date, p.Close)
	}
	return h
}

func pt(on string, price float64) PricePoint { return PricePoint{Date: d(on), Close: dec(price)} }

var errBoom = errors.New("boom")

// fakeProvider serves canned data and counts the calls it receives.
type fakeProvider struct {
	summary    *QuoteSummary
	summaryErr error
	prices     map[string][]PricePoint
	priceErr   error
	statements map[date.Period][]RawStatement
	stmtErr    map[date.Period]error

	mu         sync.Mutex
	priceCalls map[string]int
	stmtCalls  int
}

func (f *fakeProvider) QuoteSummary(ctx context.Context, symbol string, modules []string) (*QuoteSummary, error) {
	return f.summary, f.summaryErr
}

func (f *fakeProvider) PriceHistory(ctx context.Context, symbol string, r date.Range) ([]PricePoint, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.priceCalls == nil {
		f.priceCalls = make(map[string]int)
	}
	f.priceCalls[symbol]++
	if f.priceErr != nil {
		return nil, f.priceErr
	}
	var points []PricePoint
	for _, p := range f.prices[symbol] {
		if r.Contains(p.Date) {
			points = append(points, p)
		}
	}
	return points, nil
}

func (f *fakeProvider) FundamentalsTimeSeries(ctx context.Context, symbol string, r date.Range, period date.Period) ([]RawStatement, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stmtCalls++
	if err := f.stmtErr[period]; err != nil {
		return nil, err
	}
	var records []RawStatement
	for _, s := range f.statements[period] {
		if r.Contains(s.Date) {
			records = append(records, s)
		}
	}
	return records, nil
}

func (f *fakeProvider) calls(symbol string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.priceCalls[symbol]
}

// newTestProcessor returns a processor over f living on 'today'.
func newTestProcessor(f *fakeProvider) *Processor {
	p := NewProcessor(f)
	p.today = fixedToday
	p.prices.today = fixedToday
	return p
}

// newTestCache returns a price cache over f living on 'today'.
func newTestCache(f *fakeProvider) *PriceCache {
	c := NewPriceCache(f)
	c.today = fixedToday
	return c
}

func ptr[T any](v T) *T { return &v }
