package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/fundamentals"
	"github.com/etnz/fundamentals/date"
)

// StatementTypes lists the statement lines requested from the fundamentals time series,
// without their "quarterly" or "annual" prefix.
var StatementTypes = []string{
	// income statement
	"TotalRevenue",
	"CostOfRevenue",
	"GrossProfit",
	"OperatingIncome",
	"EBITDA",
	"NetIncome",
	"BasicEPS",
	"DilutedEPS",
	"BasicAverageShares",
	"DilutedAverageShares",
	"TaxRateForCalcs",
	// cash flow
	"OperatingCashFlow",
	"CapitalExpenditure",
	"FreeCashFlow",
	// balance sheet
	"TotalAssets",
	"TotalDebt",
	"StockholdersEquity",
	"CashAndCashEquivalents",
	"OrdinarySharesNumber",
	"ShareIssued",
	"TreasurySharesNumber",
}

// FundamentalsTimeSeries implements fundamentals.Provider.
//
// Yahoo returns one series per statement line, they are merged by period end
// date into records covering every line, tagged fundamentals.TypeAll.
func (c *Client) FundamentalsTimeSeries(ctx context.Context, symbol string, r date.Range, period date.Period) ([]fundamentals.RawStatement, error) {
	if period != date.Quarterly && period != date.Yearly {
		return nil, fmt.Errorf("fundamentals time series of %s: unsupported period %s", symbol, period)
	}
	prefix := period.String()
	types := make([]string, len(StatementTypes))
	for i, t := range StatementTypes {
		types[i] = prefix + t
	}

	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("type", strings.Join(types, ","))
	params.Set("period1", strconv.FormatInt(r.From.Unix(), 10))
	params.Set("period2", strconv.FormatInt(r.To.Add(1).Unix(), 10))
	params.Set("merge", "false")
	params.Set("padTimeSeries", "true")
	addr := fmt.Sprintf("%s/ws/fundamentals-timeseries/v1/finance/timeseries/%s?%s", c.baseURL, url.PathEscape(symbol), params.Encode())

	body, err := c.get(ctx, addr)
	if err != nil {
		return nil, err
	}
	var jobj any
	if err := json.Unmarshal(body, &jobj); err != nil {
		return nil, fmt.Errorf("cannot parse fundamentals time series of %s: %w", symbol, err)
	}
	records, err := parseTimeSeries(jobj, r)
	if err != nil {
		return nil, fmt.Errorf("cannot parse fundamentals time series of %s: %w", symbol, err)
	}
	return records, nil
}

// parseTimeSeries merges the series of a time series payload:
//
//	{"timeseries": {"result": [{
//	    "meta": {"symbol": ["AAPL"], "type": ["quarterlyNetIncome"]},
//	    "timestamp": [1719705600, ...],
//	    "quarterlyNetIncome": [{
//	        "asOfDate": "2024-06-30", "periodType": "3M", "currencyCode": "USD",
//	        "reportedValue": {"raw": 21448000000, "fmt": "21.45B"}
//	    }, null, ...]
//	}], "error": null}}
//
// Series without any data, and null entries within a series, are frequent and skipped.
func parseTimeSeries(jobj any, r date.Range) ([]fundamentals.RawStatement, error) {
	if jerr, err := jsonpath.Get("$.timeseries.error.description", jobj); err == nil {
		if desc, ok := jerr.(string); ok && desc != "" {
			return nil, fmt.Errorf("yahoo error: %s", desc)
		}
	}
	jval, err := jsonpath.Get("$.timeseries.result[*]", jobj)
	if err != nil {
		return nil, err
	}
	results, _ := jval.([]any)

	byDate := make(map[date.Date]*fundamentals.RawStatement)
	for _, result := range results {
		jtyp, err := jsonpath.Get("$.meta.type[0]", result)
		if err != nil {
			continue
		}
		typ, ok := jtyp.(string)
		if !ok {
			continue
		}
		field := fieldName(typ)

		obj, _ := result.(map[string]any)
		entries, _ := obj[typ].([]any)
		for _, entry := range entries {
			if entry == nil {
				continue
			}
			on, periodType, currency, v, ok := readEntry(entry)
			if !ok || !r.Contains(on) {
				continue
			}
			rs, exists := byDate[on]
			if !exists {
				rs = &fundamentals.RawStatement{
					Date:       on,
					PeriodType: periodType,
					Type:       fundamentals.TypeAll,
					Values:     make(map[string]float64),
				}
				byDate[on] = rs
			}
			if rs.Currency == "" {
				rs.Currency = currency
			}
			rs.Values[field] = v
		}
	}

	records := make([]fundamentals.RawStatement, 0, len(byDate))
	for _, rs := range byDate {
		records = append(records, *rs)
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Date.Before(records[j].Date) })
	return records, nil
}

// readEntry reads one data point of a series.
func readEntry(entry any) (on date.Date, periodType, currency string, v float64, ok bool) {
	jdate, err := jsonpath.Get("$.asOfDate", entry)
	if err != nil {
		return
	}
	sdate, _ := jdate.(string)
	if on, err = date.Parse(sdate); err != nil {
		return
	}
	jraw, err := jsonpath.Get("$.reportedValue.raw", entry)
	if err != nil {
		return
	}
	if v, ok = jraw.(float64); !ok {
		return
	}
	if jp, err := jsonpath.Get("$.periodType", entry); err == nil {
		periodType, _ = jp.(string)
	}
	if jc, err := jsonpath.Get("$.currencyCode", entry); err == nil {
		currency, _ = jc.(string)
	}
	return on, periodType, currency, v, true
}

// fieldName turns a series type into a statement field name: "quarterlyNetIncome"
// becomes "netIncome", "annualEBITDA" becomes "EBITDA".
func fieldName(typ string) string {
	name := strings.TrimPrefix(strings.TrimPrefix(typ, "quarterly"), "annual")
	first, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return name
	}
	if second, _ := utf8.DecodeRuneInString(name[size:]); unicode.IsUpper(second) {
		return name
	}
	return string(unicode.ToLower(first)) + name[size:]
}
