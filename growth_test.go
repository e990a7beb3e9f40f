package fundamentals

import "testing"

// annuals returns annual statements with the given revenues and net incomes.
func annuals(revenues, netIncomes []float64) []FinancialStatement {
	var out []FinancialStatement
	for i := range revenues {
		s := statement(d("2021-12-31").AddDate(i, 0, 0).String(), map[string]float64{
			"totalRevenue": revenues[i],
			"netIncome":    netIncomes[i],
		})
		out = append(out, s)
	}
	return out
}

func TestComputeGrowth(t *testing.T) {
	got := ComputeGrowth(annuals([]float64{100, 110, 121, 133.1}, []float64{10, 20, 40, 80}))
	if got == nil {
		t.Fatal("ComputeGrowth() = nil, want a growth")
	}
	if got.Revenue == nil || !got.Revenue.Equal(0.10) {
		t.Errorf("ComputeGrowth().Revenue = %v, want 0.10", got.Revenue)
	}
	if got.Earnings == nil || !got.Earnings.Equal(1) {
		t.Errorf("ComputeGrowth().Earnings = %v, want 1", got.Earnings)
	}
}

func TestComputeGrowthNotAvailable(t *testing.T) {
	if got := ComputeGrowth(annuals([]float64{1, 2, 3}, []float64{1, 2, 3})); got != nil {
		t.Errorf("ComputeGrowth(3 statements) = %v, want nil", got)
	}
	if got := ComputeGrowth(nil); got != nil {
		t.Errorf("ComputeGrowth(nil) = %v, want nil", got)
	}
}

func TestComputeGrowthSuppressedMetric(t *testing.T) {
	testCases := []struct {
		name         string
		revenues     []float64
		netIncomes   []float64
		wantRevenue  bool
		wantEarnings bool
	}{
		{"zero start earnings", []float64{100, 110, 121, 133.1}, []float64{0, 1, 2, 3}, true, false},
		{"negative start earnings", []float64{100, 110, 121, 133.1}, []float64{-5, 1, 2, 3}, true, false},
		{"negative end earnings", []float64{100, 110, 121, 133.1}, []float64{5, 1, 2, -3}, true, false},
		{"zero end revenue", []float64{100, 110, 121, 0}, []float64{1, 2, 3, 4}, false, true},
		{"both suppressed", []float64{-1, 1, 1, 1}, []float64{1, 1, 1, 0}, false, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := ComputeGrowth(annuals(tc.revenues, tc.netIncomes))
			if got == nil {
				t.Fatal("ComputeGrowth() = nil, want a growth")
			}
			if (got.Revenue != nil) != tc.wantRevenue {
				t.Errorf("ComputeGrowth().Revenue = %v, want available %v", got.Revenue, tc.wantRevenue)
			}
			if (got.Earnings != nil) != tc.wantEarnings {
				t.Errorf("ComputeGrowth().Earnings = %v, want available %v", got.Earnings, tc.wantEarnings)
			}
		})
	}
}

func TestComputeGrowthMissingField(t *testing.T) {
	statements := annuals([]float64{100, 110, 121, 133.1}, []float64{1, 2, 3, 4})
	delete(statements[0].Fields, NetIncome)
	got := ComputeGrowth(statements)
	if got.Earnings != nil {
		t.Errorf("ComputeGrowth().Earnings = %v, want nil", got.Earnings)
	}
	if got.Revenue == nil {
		t.Errorf("ComputeGrowth().Revenue = nil, want a rate")
	}
}

func TestComputeGrowthUsesLatestFour(t *testing.T) {
	statements := annuals([]float64{1, 100, 110, 121, 133.1}, []float64{1, 1, 1, 1, 1})
	// shuffle: the processor does not guarantee any order.
	statements[0], statements[4] = statements[4], statements[0]
	got := ComputeGrowth(statements)
	if got.Revenue == nil || !got.Revenue.Equal(0.10) {
		t.Errorf("ComputeGrowth().Revenue = %v, want 0.10", got.Revenue)
	}
	if got.Earnings == nil || !got.Earnings.Equal(0) {
		t.Errorf("ComputeGrowth().Earnings = %v, want 0", got.Earnings)
	}
}
