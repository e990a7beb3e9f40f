// Package fundamentals derives trailing financial ratios for a listed
// instrument from its price history and its financial statements.
//
// The pipeline is one-directional:
//   - Fetching: a Provider supplies the quote summary, the daily prices and the
//     quarterly and annual statements. Prices are kept per symbol in a
//     PriceCache for the duration of a run.
//   - Normalization: when statements are reported in another currency than the
//     one the instrument trades in, a CurrencyConverter converts every monetary
//     line item at the exchange rate of the statement's period end.
//   - Derivation: Trailing computes the trailing twelve months snapshot (EPS,
//     P/E, free cash flow yield, market cap) and ComputeGrowth the compound
//     revenue and earnings growth.
//
// A Processor runs the whole pipeline for one symbol and returns a Result.
package fundamentals
