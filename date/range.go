package date

import "fmt"

// Range represents a range of dates.
type Range struct{ From, To Date }

// Lookback returns the range covering the given number of years up to and including day.
func Lookback(day Date, years int) Range {
	return Range{From: day.AddDate(-years, 0, 0), To: day}
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Covers reports whether r includes every day of x.
func (r Range) Covers(x Range) bool { return !x.From.Before(r.From) && !x.To.After(r.To) }

func (r Range) String() string { return fmt.Sprintf("%s_%s", r.From, r.To) }
