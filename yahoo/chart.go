package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/etnz/fundamentals"
	"github.com/etnz/fundamentals/date"
	"github.com/shopspring/decimal"
)

// chartResponse is the payload of /v8/finance/chart.
//
//	{"chart": {"result": [{
//	    "meta": {"currency": "USD", "symbol": "AAPL", "gmtoffset": -14400},
//	    "timestamp": [1727703000, ...],
//	    "indicators": {"quote": [{"close": [233.0, null, ...]}]}
//	}], "error": null}}
type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Currency  string `json:"currency"`
				Symbol    string `json:"symbol"`
				GMTOffset int64  `json:"gmtoffset"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *apiError `json:"error"`
	} `json:"chart"`
}

// PriceHistory implements fundamentals.Provider.
//
// Days without a close (holidays, trading halts) are skipped.
func (c *Client) PriceHistory(ctx context.Context, symbol string, r date.Range) ([]fundamentals.PricePoint, error) {
	params := url.Values{}
	params.Set("period1", strconv.FormatInt(r.From.Unix(), 10))
	params.Set("period2", strconv.FormatInt(r.To.Add(1).Unix(), 10))
	params.Set("interval", "1d")
	params.Set("includePrePost", "false")
	addr := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(symbol), params.Encode())

	body, err := c.get(ctx, addr)
	if err != nil {
		return nil, err
	}
	var resp chartResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("cannot parse chart of %s: %w", symbol, err)
	}
	if e := resp.Chart.Error; e != nil {
		return nil, fmt.Errorf("chart of %s: %w", symbol, e)
	}
	if len(resp.Chart.Result) == 0 {
		return nil, nil
	}
	res := resp.Chart.Result[0]
	if len(res.Indicators.Quote) == 0 {
		return nil, nil
	}
	closes := res.Indicators.Quote[0].Close

	points := make([]fundamentals.PricePoint, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		// timestamps are the session open in UTC, the exchange offset gives back the local day.
		day := date.FromTime(time.Unix(ts+res.Meta.GMTOffset, 0).UTC())
		if !r.Contains(day) {
			continue
		}
		points = append(points, fundamentals.PricePoint{Date: day, Close: decimal.NewFromFloat(*closes[i])})
	}
	return points, nil
}
