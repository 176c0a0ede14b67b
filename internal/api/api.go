package api

import (
	"context"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/hashicorp/go-hclog"
	"github.com/shopspring/decimal"

	"pricesync/internal/orderbook"
	"pricesync/internal/quote"
)

// Quoter is the quote composer as seen by the HTTP layer.
type Quoter interface {
	QuoteFiat(ctx context.Context, from, to string) (float64, error)
	ConvertAmount(ctx context.Context, from, to string, amount float64) (quote.Conversion, error)
	FiatCurrencies(ctx context.Context, base string) ([]string, error)
	CryptoAssets(ctx context.Context) (map[string]string, error)
	QuoteCrypto(ctx context.Context, asset, currency string) (float64, error)
}

// Orderbook is the write side of the asset store.
type Orderbook interface {
	UpsertCryptoAsset(ctx context.Context, symbol string) (orderbook.Asset, error)
	UpdatePrice(ctx context.Context, symbol string, price decimal.Decimal) (orderbook.Asset, error)
}

// AssetReader is the read side of the asset store.
type AssetReader interface {
	Get(ctx context.Context, symbol string) (orderbook.Asset, error)
	List(ctx context.Context) ([]orderbook.Asset, error)
}

type Config struct {
	AllowedOrigins []string
	// MaxBodyBytes caps posted forms; zero means 1MB.
	MaxBodyBytes int64
	// Metrics is mounted on /metrics when set.
	Metrics http.Handler
}

type endpoint struct {
	path    string
	methods []string
	handler http.HandlerFunc
}

// Server holds the collaborators behind every route.
type Server struct {
	quotes Quoter
	book   Orderbook
	assets AssetReader
	logger hclog.Logger
}

// NewHandler builds the full HTTP handler: routes, CORS and the shared
// middleware chain.
func NewHandler(cfg Config, quotes Quoter, book Orderbook, assets AssetReader, logger hclog.Logger) http.Handler {
	s := &Server{quotes: quotes, book: book, assets: assets, logger: logger}

	router := mux.NewRouter().StrictSlash(true)
	for _, ep := range s.endpoints() {
		router.HandleFunc(ep.path, endpointWrapper(ep.path, ep.handler, logger)).Methods(ep.methods...)

		logger.Debug("Registered api endpoint", "endpoint", ep.path, "methods", ep.methods)
	}
	if cfg.Metrics != nil {
		router.Handle("/metrics", cfg.Metrics).Methods(http.MethodGet)
	}
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusNotFound, errorResponse{Error: "NotFound", Detail: "no route for " + r.URL.Path}, logger)
	})

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	cors := handlers.CORS(
		handlers.AllowedOrigins(origins),
		handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodOptions}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	return handlers.CompressHandler(recoverPanic(limitBody(cors(router), cfg.MaxBodyBytes), logger))
}

func (s *Server) endpoints() []endpoint {
	get := []string{http.MethodGet}
	getPost := []string{http.MethodGet, http.MethodPost}

	return []endpoint{
		{path: "/", methods: get, handler: s.root},
		{path: "/healthz", methods: get, handler: s.healthz},
		{path: "/exchange_rate", methods: get, handler: s.exchangeRate},
		{path: "/convert_amount", methods: get, handler: s.convertAmount},
		{path: "/check_password_strength", methods: get, handler: s.checkPasswordStrength},
		{path: "/available_currencies", methods: get, handler: s.availableCurrencies},
		{path: "/available_crypto", methods: get, handler: s.availableCrypto},
		{path: "/convert_crypto", methods: get, handler: s.convertCrypto},
		{path: "/update_orderbookdb_asset_price", methods: getPost, handler: s.updateAssetPrice},
		{path: "/add_crypto_to_orderbook", methods: getPost, handler: s.addCryptoToOrderbook},
		{path: "/orderbook/assets", methods: get, handler: s.listAssets},
		{path: "/orderbook/assets/{symbol}", methods: get, handler: s.getAsset},
	}
}

func endpointWrapper(path string, handler http.HandlerFunc, logger hclog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("endpoint called", "path", path, "url", r.URL)
		handler(w, r)
		logger.Debug("endpoint call finished", "path", path, "url", r.URL)
	}
}
