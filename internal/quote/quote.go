package quote

import (
    "context"
    "fmt"
    "math"
    "sort"
    "strings"

    "pricesync/internal/fault"
    "pricesync/internal/provider"
)

// Conversion is the result of converting an amount between two fiat currencies.
type Conversion struct {
    From      string  `json:"from_currency"`
    To        string  `json:"to_currency"`
    Amount    float64 `json:"amount"`
    Rate      float64 `json:"exchange_rate"`
    Converted float64 `json:"converted_amount"`
}

// Composer combines the fiat and crypto providers into normalized quotes.
// It holds no state besides its collaborators; every call re-fetches.
type Composer struct {
    fiat   provider.FiatRateSource
    crypto provider.CryptoSource
}

func NewComposer(fiat provider.FiatRateSource, crypto provider.CryptoSource) *Composer {
    return &Composer{fiat: fiat, crypto: crypto}
}

// Normalize trims and upper-cases a currency or asset code.
func Normalize(code string) string {
    return strings.ToUpper(strings.TrimSpace(code))
}

// QuoteFiat returns how many units of to one unit of from buys.
func (c *Composer) QuoteFiat(ctx context.Context, from, to string) (float64, error) {
    from, to = Normalize(from), Normalize(to)
    rates, err := c.fiat.FiatRates(ctx, from)
    if err != nil {
        return 0, fmt.Errorf("quoting %s/%s: %w", from, to, err)
    }
    rate, ok := rates[to]
    if !ok {
        return 0, fault.New(fault.UnsupportedCurrency, "currency %s is not quoted against %s", to, from)
    }
    return rate, nil
}

// ConvertAmount converts amount of from into to at the current rate.
func (c *Composer) ConvertAmount(ctx context.Context, from, to string, amount float64) (Conversion, error) {
    if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
        return Conversion{}, fault.New(fault.InvalidArgument, "amount must be a finite non-negative number, got %v", amount)
    }
    rate, err := c.QuoteFiat(ctx, from, to)
    if err != nil {
        return Conversion{}, err
    }
    return Conversion{
        From:      Normalize(from),
        To:        Normalize(to),
        Amount:    amount,
        Rate:      rate,
        Converted: amount * rate,
    }, nil
}

// FiatCurrencies lists the codes that can be paired with base, sorted.
func (c *Composer) FiatCurrencies(ctx context.Context, base string) ([]string, error) {
    base = Normalize(base)
    rates, err := c.fiat.FiatRates(ctx, base)
    if err != nil {
        return nil, fmt.Errorf("listing currencies for %s: %w", base, err)
    }
    codes := make([]string, 0, len(rates))
    for code := range rates {
        codes = append(codes, code)
    }
    sort.Strings(codes)
    return codes, nil
}

// CryptoAssets returns the provider's crypto catalog.
func (c *Composer) CryptoAssets(ctx context.Context) (map[string]string, error) {
    assets, err := c.crypto.CryptoAssets(ctx)
    if err != nil {
        return nil, fmt.Errorf("listing crypto assets: %w", err)
    }
    return assets, nil
}

// QuoteCrypto returns the price of one unit of asset in currency.
func (c *Composer) QuoteCrypto(ctx context.Context, asset, currency string) (float64, error) {
    asset, currency = Normalize(asset), Normalize(currency)
    rates, err := c.crypto.CryptoRates(ctx, asset)
    if err != nil {
        return 0, fmt.Errorf("quoting %s in %s: %w", asset, currency, err)
    }
    price, ok := rates[currency]
    if !ok {
        return 0, fault.New(fault.UpstreamFormat, "rate table for %s has no %s entry", asset, currency)
    }
    return price, nil
}

// ResolveAssetName looks code up in the crypto catalog.
func (c *Composer) ResolveAssetName(ctx context.Context, code string) (string, error) {
    code = Normalize(code)
    assets, err := c.crypto.CryptoAssets(ctx)
    if err != nil {
        return "", fmt.Errorf("resolving name of %s: %w", code, err)
    }
    name, ok := assets[code]
    if !ok {
        return "", fault.New(fault.UnknownAsset, "asset %s is not in the crypto catalog", code)
    }
    return name, nil
}
