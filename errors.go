package fundamentals

import "errors"

var (
	// ErrDateOutOfRange is returned when a price is requested on a date earlier
	// than the first point of the series, or from an empty series.
	ErrDateOutOfRange = errors.New("date out of range")

	// ErrMissingField is returned when a statement lacks a field a computation cannot do without.
	ErrMissingField = errors.New("missing required field")

	// ErrUpstream wraps every failure reported by the market data provider.
	ErrUpstream = errors.New("upstream fetch failure")
)
