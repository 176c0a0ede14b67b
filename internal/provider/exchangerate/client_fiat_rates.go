package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"pricesync/internal/fault"
	"pricesync/internal/provider"
	"pricesync/internal/telemetry"
)

var _ provider.FiatRateSource = (*Client)(nil)

type latestResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

// FiatRates returns every rate the provider publishes for base.
// Any non-success status means the base currency is not supported.
func (c *Client) FiatRates(ctx context.Context, base string) (map[string]float64, error) {
	base = strings.ToUpper(strings.TrimSpace(base))
	if base == "" {
		return nil, fault.New(fault.InvalidArgument, "base currency is required")
	}

	endpoint := fmt.Sprintf("%s/%s", strings.TrimRight(c.baseURL, "/"), url.PathEscape(base))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		telemetry.UpstreamCall("exchangerate", "error")
		return nil, fault.Wrap(fault.UpstreamUnavailable, err, "rates provider request for %s", base)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		telemetry.UpstreamCall("exchangerate", "rejected")
		return nil, fault.Upstream(res.StatusCode, "rates provider has no table for base %s", base)
	}

	var body latestResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		telemetry.UpstreamCall("exchangerate", "malformed")
		return nil, fault.Wrap(fault.UpstreamFormat, err, "decoding rates for %s", base)
	}
	if body.Rates == nil {
		telemetry.UpstreamCall("exchangerate", "malformed")
		return nil, fault.New(fault.UpstreamFormat, "rates response for %s has no rates field", base)
	}
	telemetry.UpstreamCall("exchangerate", "ok")

	rates := make(map[string]float64, len(body.Rates))
	for code, rate := range body.Rates {
		rates[strings.ToUpper(code)] = rate
	}
	return rates, nil
}
