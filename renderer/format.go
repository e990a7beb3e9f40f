package renderer

import (
	"fmt"
	"math"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/etnz/fundamentals"
	"github.com/etnz/fundamentals/date"
	"github.com/shopspring/decimal"
)

// na is printed for every value that is not available.
const na = "n/a"

// formatMoney formats an amount with the symbol of currency, "$1,234.56".
func formatMoney(amount float64, currency string) string {
	if money.GetCurrency(currency) == nil {
		return fmt.Sprintf("%.2f %s", amount, currency)
	}
	return money.NewFromFloat(amount, currency).Display()
}

// formatLarge formats an amount in thousands, millions, billions or trillions, "$3.85T".
func formatLarge(amount float64, currency string) string {
	units := []struct {
		scale  float64
		suffix string
	}{{1e12, "T"}, {1e9, "B"}, {1e6, "M"}, {1e3, "K"}}

	number := fmt.Sprintf("%.2f", amount)
	for _, u := range units {
		if math.Abs(amount) >= u.scale {
			number = fmt.Sprintf("%.2f%s", amount/u.scale, u.suffix)
			break
		}
	}
	c := money.GetCurrency(currency)
	if c == nil {
		return strings.TrimSpace(number + " " + currency)
	}
	return strings.NewReplacer("1", number, "$", c.Grapheme).Replace(c.Template)
}

// formatCount formats a quantity without currency, "393.30M".
func formatCount(v float64) string { return formatLarge(v, "") }

func float(d decimal.Decimal) float64 { return d.InexactFloat64() }

func optMoney(v *float64, currency string) string {
	if v == nil {
		return na
	}
	return formatMoney(*v, currency)
}

func optLarge(v *float64, currency string) string {
	if v == nil {
		return na
	}
	return formatLarge(*v, currency)
}

func optFloat(v *float64) string {
	if v == nil {
		return na
	}
	return fmt.Sprintf("%.2f", *v)
}

func optPercent(v *float64) string {
	if v == nil {
		return na
	}
	return fmt.Sprintf("%.2f%%", *v*100)
}

func optRatio(r *fundamentals.Ratio) string {
	if r == nil {
		return na
	}
	return r.Percent()
}

func optDate(d *date.Date) string {
	if d == nil {
		return na
	}
	return d.String()
}
