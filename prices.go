package fundamentals

import (
	"context"
	"fmt"
	"sync"

	"github.com/etnz/fundamentals/date"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// DefaultPriceLookback is the number of years fetched when no start date is given.
const DefaultPriceLookback = 2

// Prices is a daily close series.
type Prices = date.History[decimal.Decimal]

// PriceFetcher is the part of Provider the cache needs.
type PriceFetcher interface {
	PriceHistory(ctx context.Context, symbol string, r date.Range) ([]PricePoint, error)
}

// PriceCache keeps the price series fetched during a run, one per symbol.
//
// A series is served from memory when the cached range already covers the
// request, otherwise it is fetched again in full and replaces the entry.
type PriceCache struct {
	fetcher PriceFetcher
	today   func() date.Date

	mu      sync.Mutex
	entries map[string]*priceEntry
}

type priceEntry struct {
	mu      sync.Mutex // held during fetch, so one symbol is fetched once at a time
	loaded  bool
	covered date.Range
	prices  *Prices
}

// NewPriceCache returns an empty cache over fetcher.
func NewPriceCache(fetcher PriceFetcher) *PriceCache {
	return &PriceCache{
		fetcher: fetcher,
		today:   date.Today,
		entries: make(map[string]*priceEntry),
	}
}

// Prices returns the series of symbol for the default lookback.
func (c *PriceCache) Prices(ctx context.Context, symbol string) (*Prices, error) {
	return c.PricesFrom(ctx, symbol, c.today().AddDate(-DefaultPriceLookback, 0, 0))
}

// PricesFrom returns the series of symbol from 'from' up to today.
//
// The returned History is shared with the cache and must not be modified.
func (c *PriceCache) PricesFrom(ctx context.Context, symbol string, from date.Date) (*Prices, error) {
	want := date.Range{From: from, To: c.today()}
	e := c.entry(symbol)

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.loaded && e.covered.Covers(want) {
		return e.prices, nil
	}

	log.Debug().Str("symbol", symbol).Stringer("range", want).Msg("fetching price history")
	points, err := c.fetcher.PriceHistory(ctx, symbol, want)
	if err != nil {
		return nil, fmt.Errorf("%w: price history of %s: %w", ErrUpstream, symbol, err)
	}
	prices := new(Prices)
	for _, p := range points {
		prices.Append(p.Date, p.Close)
	}
	e.loaded, e.covered, e.prices = true, want, prices
	return prices, nil
}

func (c *PriceCache) entry(symbol string) *priceEntry {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[symbol]
	if !ok {
		e = new(priceEntry)
		c.entries[symbol] = e
	}
	return e
}

// PriceOn returns the close of the latest trading day on or before 'on'.
//
// It fails with ErrDateOutOfRange if 'on' is before the first point of the
// series, an empty series included. It returns false without error when no
// point exists on or before 'on'.
func PriceOn(on date.Date, prices *Prices) (decimal.Decimal, bool, error) {
	if prices == nil || prices.Len() == 0 {
		return decimal.Zero, false, fmt.Errorf("%w: no price available for %s", ErrDateOutOfRange, on)
	}
	if first, _ := prices.Earliest(); on.Before(first) {
		return decimal.Zero, false, fmt.Errorf("%w: %s is before the first price on %s", ErrDateOutOfRange, on, first)
	}
	v, ok := prices.ValueAsOf(on)
	return v, ok, nil
}
