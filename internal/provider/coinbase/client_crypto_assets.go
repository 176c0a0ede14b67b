package coinbase

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

var _ provider.CryptoSource = (*Client)(nil)

type cryptoCurrency struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

type cryptoCurrenciesResponse struct {
	Data []cryptoCurrency `json:"data"`
}

// CryptoAssets retrieves the full crypto catalog as code -> display name.
func (c *Client) CryptoAssets(ctx context.Context) (map[string]string, error) {
	res, err := c.get(ctx, "/currencies/crypto", nil)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		telemetry.UpstreamCall("coinbase", "rejected")
		return nil, fault.Upstream(res.StatusCode, "failed to retrieve available cryptocurrencies")
	}

	var body cryptoCurrenciesResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		telemetry.UpstreamCall("coinbase", "malformed")
		return nil, fault.Wrap(fault.UpstreamFormat, err, "decoding crypto catalog")
	}
	if body.Data == nil {
		telemetry.UpstreamCall("coinbase", "malformed")
		return nil, fault.New(fault.UpstreamFormat, "crypto catalog has no data field")
	}
	telemetry.UpstreamCall("coinbase", "ok")

	assets := make(map[string]string, len(body.Data))
	for _, currency := range body.Data {
		if currency.Code == "" {
			continue
		}
		assets[strings.ToUpper(currency.Code)] = currency.Name
	}
	return assets, nil
}

// get performs a GET against path. Transport failures are reported as
// UpstreamUnavailable; the caller owns the response body.
func (c *Client) get(ctx context.Context, path string, query url.Values) (*http.Response, error) {
	endpoint := strings.TrimRight(c.baseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header = c.header.Clone()
	req.Header.Set("Accept", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		telemetry.UpstreamCall("coinbase", "error")
		return nil, fault.Wrap(fault.UpstreamUnavailable, err, "coinbase request %s", path)
	}
	return res, nil
}
