package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/fundamentals"
	"github.com/etnz/fundamentals/date"
	md "github.com/nao1215/markdown"
	"github.com/shopspring/decimal"
)

// ResultMarkdown renders the fundamentals of one symbol.
func ResultMarkdown(r *fundamentals.Result) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	s := r.Summary
	cur := s.PriceCurrency

	title := s.Symbol
	if s.Name != "" {
		title = fmt.Sprintf("%s (%s)", s.Name, s.Symbol)
	}
	doc.H1(title)
	doc.PlainText(subtitle(s))

	doc.H2("Summary")
	doc.Table(md.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Market Price", optMoney(s.MarketPrice, cur)},
			{"Market Cap", optLarge(s.MarketCap, cur)},
			{"Shares Outstanding", optCount(s.SharesOutstanding)},
			{"Beta", optFloat(s.Beta)},
			{"Trailing P/E", optFloat(s.TrailingPE)},
			{"Forward P/E", optFloat(s.ForwardPE)},
			{"Trailing EPS", optMoney(s.TrailingEPS, cur)},
			{"Forward EPS", optMoney(s.ForwardEPS, cur)},
			{"Price to Book", optFloat(s.PriceToBook)},
			{"Gross Margin", optPercent(s.GrossMargin)},
			{"Operating Margin", optPercent(s.OperatingMargin)},
			{"Profit Margin", optPercent(s.ProfitMargin)},
			{"52-Week Range Position", optPercent(s.FiftyTwoWeekRatio)},
			{"Next Earnings", optDate(s.NextEarningsDate)},
		},
	})

	doc.H2("Trailing Twelve Months")
	if r.ThisQuarter == nil {
		doc.PlainText("Not available.")
	} else {
		doc.Table(trailingTable(r.ThisQuarter, r.PreviousQuarter, cur))
	}

	doc.H2("Growth")
	if r.RevenueGrowth == (fundamentals.GrowthSplit{}) && r.EarningsGrowth == (fundamentals.GrowthSplit{}) {
		doc.PlainText("Not available.")
	} else {
		doc.PlainText("Compound rate over the last four periods.")
		doc.Table(md.TableSet{
			Header: []string{"Metric", "Annual", "Quarterly"},
			Rows: [][]string{
				{"Revenue", optRatio(r.RevenueGrowth.Annual), optRatio(r.RevenueGrowth.Quarterly)},
				{"Earnings", optRatio(r.EarningsGrowth.Annual), optRatio(r.EarningsGrowth.Quarterly)},
			},
		})
	}
	return doc.String()
}

func subtitle(s fundamentals.Summary) string {
	var parts []string
	if s.Type != "" {
		parts = append(parts, s.Type)
	}
	if s.PriceCurrency != "" {
		parts = append(parts, "trading in "+s.PriceCurrency)
	}
	if s.StatementCurrency != "" && s.StatementCurrency != s.PriceCurrency {
		parts = append(parts, "reporting in "+s.StatementCurrency)
	}
	return strings.Join(parts, ", ")
}

// trailingTable puts the current and the previous trailing windows side by side.
func trailingTable(this, prev *fundamentals.TrailingSnapshot, cur string) md.TableSet {
	header := []string{"Metric", "As of " + this.Date.String()}
	columns := []*fundamentals.TrailingSnapshot{this}
	if prev != nil {
		header = append(header, "As of "+prev.Date.String())
		columns = append(columns, prev)
	}
	row := func(label string, f func(*fundamentals.TrailingSnapshot) string) []string {
		cells := []string{label}
		for _, c := range columns {
			cells = append(cells, f(c))
		}
		return cells
	}
	return md.TableSet{
		Header: header,
		Rows: [][]string{
			row("Close", func(t *fundamentals.TrailingSnapshot) string { return formatMoney(float(t.Close), cur) }),
			row("Shares", func(t *fundamentals.TrailingSnapshot) string { return formatCount(float(t.SharesOutstanding)) }),
			row("Market Cap", func(t *fundamentals.TrailingSnapshot) string { return formatLarge(float(t.MarketCap), cur) }),
			row("Net Income", func(t *fundamentals.TrailingSnapshot) string { return formatLarge(float(t.NetIncome), cur) }),
			row("Free Cash Flow", func(t *fundamentals.TrailingSnapshot) string { return formatLarge(float(t.FreeCashFlow), cur) }),
			row("EPS", func(t *fundamentals.TrailingSnapshot) string { return t.EPS.String() }),
			row("P/E", func(t *fundamentals.TrailingSnapshot) string { return t.PE.String() }),
			row("FCF Yield", func(t *fundamentals.TrailingSnapshot) string { return t.FCFYield.Percent() }),
		},
	}
}

// PriceMarkdown renders a single close.
func PriceMarkdown(symbol string, on date.Date, price decimal.Decimal, currency string) string {
	var buf bytes.Buffer
	return md.NewMarkdown(&buf).
		H1(fmt.Sprintf("%s on %s", symbol, on)).
		PlainText(formatMoney(float(price), currency)).
		String()
}

func optCount(v *float64) string {
	if v == nil {
		return na
	}
	return formatCount(*v)
}
