package provider

import (
    "context"
)

// FiatRateSource returns the full rate table for a base currency.
// Codes in the returned map are upper case.
//
//go:generate mockgen -package=quote_test -destination=../quote/mock_provider_test.go -source=provider.go
type FiatRateSource interface {
    FiatRates(ctx context.Context, base string) (map[string]float64, error)
}

// CryptoSource lists crypto assets and their exchange-rate tables.
type CryptoSource interface {
    // CryptoAssets returns asset code -> display name.
    CryptoAssets(ctx context.Context) (map[string]string, error)
    // CryptoRates returns currency code -> units of that currency per one asset.
    CryptoRates(ctx context.Context, asset string) (map[string]float64, error)
}
