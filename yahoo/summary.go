package yahoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/etnz/fundamentals"
	"github.com/etnz/fundamentals/date"
)

// value is Yahoo's formatted number: {"raw": 1.23, "fmt": "1.23"}.
//
// Missing numbers come as {} and unbounded ones as {"raw": "Infinity"}, both
// are read as nil.
type value struct{ Raw *float64 }

func (v *value) UnmarshalJSON(data []byte) error {
	var obj struct {
		Raw json.RawMessage `json:"raw"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		// some fields are sometimes a bare number.
		var f float64
		if json.Unmarshal(data, &f) == nil {
			v.Raw = &f
		}
		return nil
	}
	if len(obj.Raw) == 0 || bytes.HasPrefix(obj.Raw, []byte(`"`)) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(obj.Raw, &f); err != nil {
		return nil
	}
	v.Raw = &f
	return nil
}

// summaryResponse is the payload of /v10/finance/quoteSummary.
type summaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			Price *struct {
				Symbol             string `json:"symbol"`
				ShortName          string `json:"shortName"`
				LongName           string `json:"longName"`
				QuoteType          string `json:"quoteType"`
				Currency           string `json:"currency"`
				RegularMarketPrice value  `json:"regularMarketPrice"`
				MarketCap          value  `json:"marketCap"`
			} `json:"price"`
			SummaryDetail *struct {
				Currency         string `json:"currency"`
				Beta             value  `json:"beta"`
				TrailingPE       value  `json:"trailingPE"`
				ForwardPE        value  `json:"forwardPE"`
				FiftyTwoWeekLow  value  `json:"fiftyTwoWeekLow"`
				FiftyTwoWeekHigh value  `json:"fiftyTwoWeekHigh"`
				MarketCap        value  `json:"marketCap"`
			} `json:"summaryDetail"`
			DefaultKeyStatistics *struct {
				SharesOutstanding value `json:"sharesOutstanding"`
				TrailingEps       value `json:"trailingEps"`
				ForwardEps        value `json:"forwardEps"`
				PriceToBook       value `json:"priceToBook"`
			} `json:"defaultKeyStatistics"`
			FinancialData *struct {
				FinancialCurrency string `json:"financialCurrency"`
				CurrentPrice      value  `json:"currentPrice"`
				GrossMargins      value  `json:"grossMargins"`
				OperatingMargins  value  `json:"operatingMargins"`
				ProfitMargins     value  `json:"profitMargins"`
			} `json:"financialData"`
			CalendarEvents *struct {
				Earnings struct {
					EarningsDate []value `json:"earningsDate"`
				} `json:"earnings"`
			} `json:"calendarEvents"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"quoteSummary"`
}

// apiError is the error object embedded in Yahoo payloads.
type apiError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (e *apiError) Error() string { return fmt.Sprintf("%s: %s", e.Code, e.Description) }

// QuoteSummary implements fundamentals.Provider.
func (c *Client) QuoteSummary(ctx context.Context, symbol string, modules []string) (*fundamentals.QuoteSummary, error) {
	body, err := c.quoteSummary(ctx, symbol, modules)
	if isUnauthorized(err) {
		// crumbs expire, retry once with a fresh session.
		c.resetSession()
		body, err = c.quoteSummary(ctx, symbol, modules)
	}
	if err != nil {
		return nil, err
	}

	var resp summaryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("cannot parse quote summary of %s: %w", symbol, err)
	}
	if e := resp.QuoteSummary.Error; e != nil {
		return nil, fmt.Errorf("quote summary of %s: %w", symbol, e)
	}
	if len(resp.QuoteSummary.Result) == 0 {
		return nil, fmt.Errorf("quote summary of %s: empty result", symbol)
	}
	r := resp.QuoteSummary.Result[0]

	q := new(fundamentals.QuoteSummary)
	if p := r.Price; p != nil {
		q.Price = &fundamentals.PriceModule{
			Symbol:             p.Symbol,
			ShortName:          p.ShortName,
			LongName:           p.LongName,
			QuoteType:          p.QuoteType,
			Currency:           p.Currency,
			RegularMarketPrice: p.RegularMarketPrice.Raw,
			MarketCap:          p.MarketCap.Raw,
		}
	}
	if s := r.SummaryDetail; s != nil {
		q.SummaryDetail = &fundamentals.SummaryDetail{
			Currency:         s.Currency,
			Beta:             s.Beta.Raw,
			TrailingPE:       s.TrailingPE.Raw,
			ForwardPE:        s.ForwardPE.Raw,
			FiftyTwoWeekLow:  s.FiftyTwoWeekLow.Raw,
			FiftyTwoWeekHigh: s.FiftyTwoWeekHigh.Raw,
			MarketCap:        s.MarketCap.Raw,
		}
	}
	if k := r.DefaultKeyStatistics; k != nil {
		q.KeyStatistics = &fundamentals.KeyStatistics{
			SharesOutstanding: k.SharesOutstanding.Raw,
			TrailingEPS:       k.TrailingEps.Raw,
			ForwardEPS:        k.ForwardEps.Raw,
			PriceToBook:       k.PriceToBook.Raw,
		}
	}
	if f := r.FinancialData; f != nil {
		q.FinancialData = &fundamentals.FinancialData{
			FinancialCurrency: f.FinancialCurrency,
			CurrentPrice:      f.CurrentPrice.Raw,
			GrossMargins:      f.GrossMargins.Raw,
			OperatingMargins:  f.OperatingMargins.Raw,
			ProfitMargins:     f.ProfitMargins.Raw,
		}
	}
	if ce := r.CalendarEvents; ce != nil {
		events := new(fundamentals.CalendarEvents)
		for _, v := range ce.Earnings.EarningsDate {
			if v.Raw == nil {
				continue
			}
			events.EarningsDates = append(events.EarningsDates, date.FromTime(time.Unix(int64(*v.Raw), 0).UTC()))
		}
		q.CalendarEvents = events
	}
	return q, nil
}

func (c *Client) quoteSummary(ctx context.Context, symbol string, modules []string) ([]byte, error) {
	crumb, err := c.session(ctx)
	if err != nil {
		return nil, err
	}
	params := url.Values{}
	params.Set("modules", strings.Join(modules, ","))
	params.Set("crumb", crumb)
	addr := fmt.Sprintf("%s/v10/finance/quoteSummary/%s?%s", c.baseURL, url.PathEscape(symbol), params.Encode())
	return c.get(ctx, addr)
}
