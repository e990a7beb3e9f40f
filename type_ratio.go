package fundamentals

import (
	"encoding/json"
	"fmt"
	"math"
)

// Ratio is a dimensionless value such as a P/E or a growth rate.
// Ratios are computed without guarding denominators, so they can be infinite or NaN.
type Ratio float64

// ratio returns num/den as a Ratio, following IEEE rules on zero denominators.
func ratio(num, den float64) Ratio { return Ratio(num / den) }

// IsFinite reports whether r is neither infinite nor NaN.
func (r Ratio) IsFinite() bool {
	return !math.IsInf(float64(r), 0) && !math.IsNaN(float64(r))
}

func (r Ratio) Equal(q Ratio) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	if !r.IsFinite() || !q.IsFinite() {
		return r == q || (math.IsNaN(float64(r)) && math.IsNaN(float64(q)))
	}
	return math.Abs(float64(r-q)) < precision
}

func (r Ratio) String() string {
	if !r.IsFinite() {
		return fmt.Sprint(float64(r))
	}
	return fmt.Sprintf("%.2f", float64(r))
}

// Percent formats r as a signed percentage.
func (r Ratio) Percent() string {
	if !r.IsFinite() {
		return fmt.Sprint(float64(r))
	}
	return fmt.Sprintf("%+.2f%%", float64(r)*100)
}

// MarshalJSON writes finite ratios as numbers and the others as the strings
// "+Inf", "-Inf" or "NaN", which encoding/json cannot represent as numbers.
func (r Ratio) MarshalJSON() ([]byte, error) {
	if !r.IsFinite() {
		return json.Marshal(fmt.Sprint(float64(r)))
	}
	return json.Marshal(float64(r))
}

func (r *Ratio) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		*r = Ratio(f)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "+Inf":
		*r = Ratio(math.Inf(1))
	case "-Inf":
		*r = Ratio(math.Inf(-1))
	case "NaN":
		*r = Ratio(math.NaN())
	default:
		return fmt.Errorf("invalid ratio %q", s)
	}
	return nil
}
