package api

import (
	"encoding/json"
	"net/http"

	"github.com/hashicorp/go-hclog"

	"pricesync/internal/fault"
)

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

func statusFor(kind fault.Kind) int {
	switch kind {
	case fault.InvalidArgument, fault.UnsupportedCurrency, fault.UnknownAsset:
		return http.StatusBadRequest
	case fault.AssetNotFound:
		return http.StatusNotFound
	case fault.UpstreamUnavailable, fault.UpstreamFormat:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, body any, logger hclog.Logger) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("error while writing response", "url", r.URL, "err", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error, logger hclog.Logger) {
	kind := fault.KindOf(err)
	status := statusFor(kind)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "url", r.URL, "kind", kind, "err", err)
	} else {
		logger.Debug("request rejected", "url", r.URL, "kind", kind, "err", err)
	}
	writeJSON(w, r, status, errorResponse{Error: kind.String(), Detail: fault.Detail(err)}, logger)
}
