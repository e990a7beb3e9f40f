package fundamentals

import (
	"testing"

	"github.com/etnz/fundamentals/date"
)

func TestNewSummaryFallbacks(t *testing.T) {
	q := &QuoteSummary{
		Price:         &PriceModule{LongName: "Long Name Inc.", QuoteType: "EQUITY"},
		SummaryDetail: &SummaryDetail{Currency: "EUR", MarketCap: ptr(5e9), FiftyTwoWeekLow: ptr(10.0), FiftyTwoWeekHigh: ptr(30.0)},
		FinancialData: &FinancialData{CurrentPrice: ptr(15.0)},
		CalendarEvents: &CalendarEvents{
			EarningsDates: []date.Date{d("2025-10-28"), d("2025-11-03")},
		},
	}
	got := newSummary("XYZ", q)

	if got.Symbol != "XYZ" || got.Name != "Long Name Inc." {
		t.Errorf("newSummary() = symbol %q, name %q want XYZ, Long Name Inc.", got.Symbol, got.Name)
	}
	if got.PriceCurrency != "EUR" {
		t.Errorf("newSummary().PriceCurrency = %q, want EUR", got.PriceCurrency)
	}
	if got.MarketCap == nil || *got.MarketCap != 5e9 {
		t.Errorf("newSummary().MarketCap = %v, want 5e9", got.MarketCap)
	}
	if got.MarketPrice == nil || *got.MarketPrice != 15 {
		t.Errorf("newSummary().MarketPrice = %v, want 15", got.MarketPrice)
	}
	if got.FiftyTwoWeekRatio == nil || *got.FiftyTwoWeekRatio != 0.25 {
		t.Errorf("newSummary().FiftyTwoWeekRatio = %v, want 0.25", got.FiftyTwoWeekRatio)
	}
	if got.NextEarningsDate == nil || *got.NextEarningsDate != d("2025-10-28") {
		t.Errorf("newSummary().NextEarningsDate = %v, want 2025-10-28", got.NextEarningsDate)
	}
}

func TestNewSummaryEmpty(t *testing.T) {
	got := newSummary("SPY", new(QuoteSummary))
	want := Summary{Symbol: "SPY"}
	if got != want {
		t.Errorf("newSummary(empty) = %+v, want %+v", got, want)
	}
}

func TestRangeRatio(t *testing.T) {
	testCases := []struct {
		name             string
		price, low, high *float64
		want             *float64
	}{
		{"middle", ptr(20.0), ptr(10.0), ptr(30.0), ptr(0.5)},
		{"at high", ptr(30.0), ptr(10.0), ptr(30.0), ptr(1.0)},
		{"below low", ptr(5.0), ptr(10.0), ptr(30.0), ptr(-0.25)},
		{"flat range", ptr(10.0), ptr(10.0), ptr(10.0), nil},
		{"no price", nil, ptr(10.0), ptr(30.0), nil},
		{"no high", ptr(20.0), ptr(10.0), nil, nil},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := rangeRatio(tc.price, tc.low, tc.high)
			switch {
			case got == nil && tc.want == nil:
			case got == nil || tc.want == nil || *got != *tc.want:
				t.Errorf("rangeRatio() = %v, want %v", got, tc.want)
			}
		})
	}
}
