package orderbook

import (
	"context"
	"fmt"
	"math"

	"github.com/hashicorp/go-hclog"
	"github.com/shopspring/decimal"

	"pricesync/internal/fault"
	"pricesync/internal/quote"
)

// SyncCurrency is the currency every synchronized price is quoted in.
const SyncCurrency = "USD"

// QuoteSource is the part of the quote composer the synchronizer needs.
type QuoteSource interface {
	QuoteCrypto(ctx context.Context, asset, currency string) (float64, error)
	ResolveAssetName(ctx context.Context, code string) (string, error)
}

// Syncer copies crypto prices from the providers into the assets table.
type Syncer struct {
	quotes QuoteSource
	store  *Store
	logger hclog.Logger
}

func NewSyncer(quotes QuoteSource, store *Store, logger hclog.Logger) *Syncer {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Syncer{quotes: quotes, store: store, logger: logger}
}

// UpsertCryptoAsset quotes symbol in USD, resolves its display name and writes
// the record, creating it on first sight. Nothing is written unless both
// lookups succeed.
func (s *Syncer) UpsertCryptoAsset(ctx context.Context, symbol string) (Asset, error) {
	symbol = quote.Normalize(symbol)

	price, err := s.quotes.QuoteCrypto(ctx, symbol, SyncCurrency)
	if err != nil {
		return Asset{}, fmt.Errorf("syncing %s: %w", symbol, err)
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		return Asset{}, fault.New(fault.UpstreamFormat, "quote for %s is not finite", symbol)
	}
	name, err := s.quotes.ResolveAssetName(ctx, symbol)
	if err != nil {
		return Asset{}, fmt.Errorf("syncing %s: %w", symbol, err)
	}

	asset, err := s.store.Upsert(ctx, Asset{
		Symbol:      symbol,
		Price:       decimal.NewFromFloat(price),
		AssetType:   CryptoAssetType,
		DisplayName: name,
	})
	if err != nil {
		return Asset{}, fmt.Errorf("syncing %s: %w", symbol, err)
	}

	s.logger.Debug("crypto asset synchronized", "symbol", symbol, "quote", price)

	return asset, nil
}

// UpdatePrice is the pure-update path; it fails for symbols never synchronized.
func (s *Syncer) UpdatePrice(ctx context.Context, symbol string, price decimal.Decimal) (Asset, error) {
	return s.store.UpdatePrice(ctx, symbol, price)
}
