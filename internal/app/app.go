package app

import (
	"net/http"
	"time"

	"github.com/hashicorp/go-hclog"

	"pricesync/internal/config"
	"pricesync/internal/httpx"
	"pricesync/internal/orderbook"
	"pricesync/internal/provider/coinbase"
	"pricesync/internal/provider/exchangerate"
	"pricesync/internal/quote"
)

// App is the set of long-lived components shared by the server and the CLI.
type App struct {
	Quotes *quote.Composer
	Store  *orderbook.Store
	Syncer *orderbook.Syncer
}

// NewComposer builds both provider clients over one shared HTTP client.
func NewComposer(cfg config.Config) *quote.Composer {
	httpClient := httpx.New(time.Duration(cfg.Upstream.TimeoutSec) * time.Second)
	if cfg.Upstream.UserAgent != "" {
		httpClient.UserAgent = cfg.Upstream.UserAgent
	}

	rates := exchangerate.NewClient(
		exchangerate.WithBaseURL(cfg.Rates.BaseURL),
		exchangerate.WithHTTPClient(httpClient),
	)

	cbOpts := []coinbase.ClientOption{
		coinbase.WithBaseURL(cfg.Coinbase.BaseURL),
		coinbase.WithHTTPClient(httpClient),
	}
	if cfg.Coinbase.APIVersion != "" {
		cbOpts = append(cbOpts, coinbase.WithHeader(http.Header{"CB-VERSION": []string{cfg.Coinbase.APIVersion}}))
	}

	return quote.NewComposer(rates, coinbase.NewClient(cbOpts...))
}

// New wires the composer, opens the orderbook database and builds the syncer.
// Callers own the returned App and must Close it.
func New(cfg config.Config, logger hclog.Logger) (*App, error) {
	quotes := NewComposer(cfg)

	store, err := orderbook.Open(cfg.Database, logger.Named("store"))
	if err != nil {
		return nil, err
	}

	return &App{
		Quotes: quotes,
		Store:  store,
		Syncer: orderbook.NewSyncer(quotes, store, logger.Named("orderbook")),
	}, nil
}

func (a *App) Close() error {
	return a.Store.Close()
}
