package date

import (
	"encoding/json"
	"testing"
	"time"
)

// TestTime assert that the time() is cannonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer for the timezone) this
		// tests also checks that the property remain true
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in      string
		want    Date
		wantErr bool
	}{
		{"2025-07-01", New(2025, time.July, 1), false},
		{"2025-7-1", New(2025, time.July, 1), false},
		{"2024-02-29", New(2024, time.February, 29), false},
		{"2025/07/01", Date{}, true},
		{"", Date{}, true},
	}
	for _, tc := range testCases {
		got, err := Parse(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("Parse(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestAddDate(t *testing.T) {
	testCases := []struct {
		name                string
		in                  Date
		years, months, days int
		want                Date
	}{
		{"two years back", New(2025, 10, 15), -2, 0, 0, New(2023, 10, 15)},
		{"five years back", New(2025, 10, 15), -5, 0, 0, New(2020, 10, 15)},
		{"leap day normalizes", New(2024, 2, 29), -1, 0, 0, New(2023, 3, 1)},
		{"month overflow", New(2025, 12, 31), 0, 1, 0, New(2026, 1, 31)},
		{"day underflow", New(2025, 3, 1), 0, 0, -1, New(2025, 2, 28)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.in.AddDate(tc.years, tc.months, tc.days); got != tc.want {
				t.Errorf("%v.AddDate(%d, %d, %d) = %v, want %v", tc.in, tc.years, tc.months, tc.days, got, tc.want)
			}
		})
	}
}

func TestFromTime(t *testing.T) {
	ny := time.FixedZone("EST", -5*3600)
	// 2024-06-28 21:30 in New York is already the 29th in UTC.
	at := time.Date(2024, 6, 28, 21, 30, 0, 0, ny)
	if got, want := FromTime(at), New(2024, 6, 28); got != want {
		t.Errorf("FromTime(%v) = %v, want %v", at, got, want)
	}
	if got, want := FromTime(at.UTC()), New(2024, 6, 29); got != want {
		t.Errorf("FromTime(%v) = %v, want %v", at.UTC(), got, want)
	}
}

func TestCompare(t *testing.T) {
	a, b := New(2024, 1, 1), New(2024, 1, 2)
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 {
		t.Errorf("Compare(%v, %v) inconsistent", a, b)
	}
}

func TestJSON(t *testing.T) {
	d := New(2024, 3, 31)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("json.Marshal(%v) error = %v", d, err)
	}
	if string(data) != `"2024-03-31"` {
		t.Errorf("json.Marshal(%v) = %s, want %q", d, data, `"2024-03-31"`)
	}
	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("json.Unmarshal(%s) error = %v", data, err)
	}
	if back != d {
		t.Errorf("json.Unmarshal(%s) = %v, want %v", data, back, d)
	}
}

func TestLookback(t *testing.T) {
	today := New(2025, 10, 15)
	r := Lookback(today, 2)
	if r.From != New(2023, 10, 15) || r.To != today {
		t.Errorf("Lookback(%v, 2) = %v", today, r)
	}
	if !r.Contains(New(2023, 10, 15)) || !r.Contains(today) || r.Contains(New(2023, 10, 14)) {
		t.Errorf("Lookback(%v, 2).Contains() boundaries are wrong", today)
	}
	wide := Lookback(today, 5)
	if !wide.Covers(r) {
		t.Errorf("%v.Covers(%v) = false, want true", wide, r)
	}
	if r.Covers(wide) {
		t.Errorf("%v.Covers(%v) = true, want false", r, wide)
	}
}

func TestParsePeriod(t *testing.T) {
	testCases := []struct {
		in      string
		want    Period
		wantErr bool
	}{
		{"quarterly", Quarterly, false},
		{"3M", Quarterly, false},
		{"annual", Yearly, false},
		{"12M", Yearly, false},
		{"Daily", Daily, false},
		{"weekly", Daily, true},
	}
	for _, tc := range testCases {
		got, err := ParsePeriod(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParsePeriod(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParsePeriod(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
