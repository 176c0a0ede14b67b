package coinbase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"pricesync/internal/fault"
	"pricesync/internal/telemetry"
)

// CryptoRates retrieves the exchange-rate table of one asset against every
// currency the provider supports. Rates arrive as numeric strings.
func (c *Client) CryptoRates(ctx context.Context, asset string) (map[string]float64, error) {
	asset = strings.ToUpper(strings.TrimSpace(asset))
	if asset == "" {
		return nil, fault.New(fault.InvalidArgument, "asset code is required")
	}

	res, err := c.get(ctx, "/exchange-rates", url.Values{"currency": []string{asset}})
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		break

	case http.StatusBadRequest, http.StatusNotFound:
		// Coinbase answers 400 "Invalid currency" for codes it does not know.
		telemetry.UpstreamCall("coinbase", "rejected")
		return nil, &fault.Error{Kind: fault.UnknownAsset, Status: res.StatusCode, Msg: "provider does not know asset " + asset}

	default:
		telemetry.UpstreamCall("coinbase", "rejected")
		return nil, fault.Upstream(res.StatusCode, "failed to fetch crypto price for %s", asset)
	}

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		telemetry.UpstreamCall("coinbase", "error")
		return nil, fault.Wrap(fault.UpstreamUnavailable, err, "reading exchange rates for %s", asset)
	}
	if !gjson.ValidBytes(raw) {
		telemetry.UpstreamCall("coinbase", "malformed")
		return nil, fault.New(fault.UpstreamFormat, "exchange rates for %s are not valid JSON", asset)
	}

	table := gjson.GetBytes(raw, "data.rates")
	if !table.IsObject() {
		telemetry.UpstreamCall("coinbase", "malformed")
		return nil, fault.New(fault.UpstreamFormat, "exchange rates for %s have no data.rates field", asset)
	}

	rates := make(map[string]float64)
	var parseErr error
	table.ForEach(func(key, value gjson.Result) bool {
		rate, err := parseRate(value)
		if err != nil {
			parseErr = fault.Wrap(fault.UpstreamFormat, err, "rate %s/%s", asset, key.String())
			return false
		}
		rates[strings.ToUpper(key.String())] = rate
		return true
	})
	if parseErr != nil {
		telemetry.UpstreamCall("coinbase", "malformed")
		return nil, parseErr
	}
	telemetry.UpstreamCall("coinbase", "ok")

	return rates, nil
}

// parseRate accepts the numeric strings Coinbase sends and plain JSON numbers.
func parseRate(value gjson.Result) (float64, error) {
	var rate float64
	switch value.Type {
	case gjson.String:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(value.Str), 64)
		if err != nil {
			return 0, err
		}
		rate = parsed
	case gjson.Number:
		rate = value.Num
	default:
		return 0, fmt.Errorf("unexpected %s value %s", value.Type, value.Raw)
	}
	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		return 0, errors.New("not finite")
	}
	return rate, nil
}
