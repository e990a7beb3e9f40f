package date

import (
	"fmt"
	"strings"
)

// Period is a reporting cadence.
type Period int

const (
	Daily Period = iota
	Quarterly
	Yearly
)

func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Quarterly:
		return "quarterly"
	case Yearly:
		return "annual"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

func ParsePeriod(p string) (Period, error) {
	p = strings.ToLower(p)
	switch p {
	case "daily", "day", "1d":
		return Daily, nil
	case "quarterly", "quarter", "3m":
		return Quarterly, nil
	case "yearly", "year", "annual", "12m":
		return Yearly, nil
	default:
		return Daily, fmt.Errorf("unknown period %s", p)
	}
}
