package api

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"pricesync/internal/fault"
	"pricesync/internal/orderbook"
	"pricesync/internal/password"
	"pricesync/internal/quote"
)

type fiatRateResponse struct {
	From string  `json:"from_currency"`
	To   string  `json:"to_currency"`
	Rate float64 `json:"exchange_rate"`
}

type cryptoPriceResponse struct {
	From  string  `json:"from_crypto"`
	To    string  `json:"to_currency"`
	Price float64 `json:"price"`
}

type updateReport struct {
	Report   string      `json:"update_report"`
	Symbol   string      `json:"symbol"`
	NewPrice json.Number `json:"new_price"`
}

type insertReport struct {
	Report string      `json:"insert_report"`
	Symbol string      `json:"symbol"`
	Price  json.Number `json:"price"`
}

// param reads a required parameter from the query string or a posted form.
func param(r *http.Request, name string) (string, error) {
	if err := r.ParseForm(); err != nil {
		return "", fault.Wrap(fault.InvalidArgument, err, "reading parameter %q", name)
	}
	v := strings.TrimSpace(r.FormValue(name))
	if v == "" {
		return "", fault.New(fault.InvalidArgument, "missing parameter %q", name)
	}
	return v, nil
}

func params(r *http.Request, names ...string) ([]string, error) {
	out := make([]string, 0, len(names))
	for _, name := range names {
		v, err := param(r, name)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func priceNumber(a orderbook.Asset) json.Number {
	return json.Number(a.Price.StringFixed(2))
}

func (s *Server) root(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"message": "Welcome to the Crypto Price API"}, s.logger)
}

func (s *Server) healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) exchangeRate(w http.ResponseWriter, r *http.Request) {
	p, err := params(r, "from_currency", "to_currency")
	if err != nil {
		writeError(w, r, err, s.logger)
		return
	}
	rate, err := s.quotes.QuoteFiat(r.Context(), p[0], p[1])
	if err != nil {
		writeError(w, r, err, s.logger)
		return
	}
	writeJSON(w, r, http.StatusOK, fiatRateResponse{
		From: quote.Normalize(p[0]),
		To:   quote.Normalize(p[1]),
		Rate: rate,
	}, s.logger)
}

func (s *Server) convertAmount(w http.ResponseWriter, r *http.Request) {
	p, err := params(r, "from_currency", "to_currency", "amount")
	if err != nil {
		writeError(w, r, err, s.logger)
		return
	}
	amount, err := strconv.ParseFloat(p[2], 64)
	if err != nil {
		writeError(w, r, fault.Wrap(fault.InvalidArgument, err, "amount %q is not numeric", p[2]), s.logger)
		return
	}
	conv, err := s.quotes.ConvertAmount(r.Context(), p[0], p[1], amount)
	if err != nil {
		writeError(w, r, err, s.logger)
		return
	}
	writeJSON(w, r, http.StatusOK, conv, s.logger)
}

func (s *Server) checkPasswordStrength(w http.ResponseWriter, r *http.Request) {
	// An empty password is a valid (weak) input, so it is not required.
	writeJSON(w, r, http.StatusOK, password.IsStrong(r.FormValue("password")), s.logger)
}

func (s *Server) availableCurrencies(w http.ResponseWriter, r *http.Request) {
	base, err := param(r, "from_currency")
	if err != nil {
		writeError(w, r, err, s.logger)
		return
	}
	codes, err := s.quotes.FiatCurrencies(r.Context(), base)
	if err != nil {
		writeError(w, r, err, s.logger)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string][]string{"available_currencies": codes}, s.logger)
}

func (s *Server) availableCrypto(w http.ResponseWriter, r *http.Request) {
	assets, err := s.quotes.CryptoAssets(r.Context())
	if err != nil {
		writeError(w, r, err, s.logger)
		return
	}
	writeJSON(w, r, http.StatusOK, assets, s.logger)
}

func (s *Server) convertCrypto(w http.ResponseWriter, r *http.Request) {
	p, err := params(r, "from_crypto", "to_currency")
	if err != nil {
		writeError(w, r, err, s.logger)
		return
	}
	price, err := s.quotes.QuoteCrypto(r.Context(), p[0], p[1])
	if err != nil {
		writeError(w, r, err, s.logger)
		return
	}
	if math.IsNaN(price) || math.IsInf(price, 0) {
		writeError(w, r, fault.New(fault.UpstreamFormat, "quote for %s is not finite", quote.Normalize(p[0])), s.logger)
		return
	}
	writeJSON(w, r, http.StatusOK, cryptoPriceResponse{
		From:  quote.Normalize(p[0]),
		To:    quote.Normalize(p[1]),
		Price: price,
	}, s.logger)
}

func (s *Server) updateAssetPrice(w http.ResponseWriter, r *http.Request) {
	p, err := params(r, "symbol", "new_price")
	if err != nil {
		writeError(w, r, err, s.logger)
		return
	}
	price, err := orderbook.ParsePrice(p[1])
	if err != nil {
		writeError(w, r, err, s.logger)
		return
	}
	// Writes are not abandoned when the client goes away.
	asset, err := s.book.UpdatePrice(context.WithoutCancel(r.Context()), p[0], price)
	if err != nil {
		writeError(w, r, err, s.logger)
		return
	}
	writeJSON(w, r, http.StatusOK, updateReport{Report: "success", Symbol: asset.Symbol, NewPrice: priceNumber(asset)}, s.logger)
}

func (s *Server) addCryptoToOrderbook(w http.ResponseWriter, r *http.Request) {
	symbol, err := param(r, "symbol")
	if err != nil {
		writeError(w, r, err, s.logger)
		return
	}
	asset, err := s.book.UpsertCryptoAsset(context.WithoutCancel(r.Context()), symbol)
	if err != nil {
		writeError(w, r, err, s.logger)
		return
	}
	writeJSON(w, r, http.StatusOK, insertReport{Report: "success", Symbol: asset.Symbol, Price: priceNumber(asset)}, s.logger)
}

func (s *Server) listAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := s.assets.List(r.Context())
	if err != nil {
		writeError(w, r, err, s.logger)
		return
	}
	writeJSON(w, r, http.StatusOK, map[string][]orderbook.Asset{"assets": assets}, s.logger)
}

func (s *Server) getAsset(w http.ResponseWriter, r *http.Request) {
	asset, err := s.assets.Get(r.Context(), mux.Vars(r)["symbol"])
	if err != nil {
		writeError(w, r, err, s.logger)
		return
	}
	writeJSON(w, r, http.StatusOK, asset, s.logger)
}
