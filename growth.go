package fundamentals

import "math"

// GrowthPoints is the number of statements a growth rate spans.
const GrowthPoints = 4

// Growth holds compound per-period growth rates. A nil rate is not available.
type Growth struct {
	Revenue  *Ratio `json:"revenue"`
	Earnings *Ratio `json:"earnings"`
}

// ComputeGrowth returns the compound growth of revenue and net income from
// the oldest to the newest of the four most recent statements.
//
// It returns nil when there are fewer than four statements. Each rate is nil
// when its start or end value is missing, zero or negative.
func ComputeGrowth(statements []FinancialStatement) *Growth {
	window := lastN(statements, GrowthPoints)
	if window == nil {
		return nil
	}
	first, last := window[0], window[len(window)-1]
	intervals := len(window) - 1
	return &Growth{
		Revenue:  compoundRate(first, last, TotalRevenue, intervals),
		Earnings: compoundRate(first, last, NetIncome, intervals),
	}
}

// compoundRate returns (end/start)^(1/intervals) - 1 for field, or nil when it
// is undefined across zero or a sign change.
func compoundRate(first, last FinancialStatement, field string, intervals int) *Ratio {
	start, ok := first.Get(field)
	if !ok || !start.IsPositive() {
		return nil
	}
	end, ok := last.Get(field)
	if !ok || !end.IsPositive() {
		return nil
	}
	growth := end.Div(start).InexactFloat64()
	r := Ratio(math.Pow(growth, 1/float64(intervals)) - 1)
	return &r
}
