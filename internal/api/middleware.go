package api

import (
	"net/http"
	"runtime/debug"

	"github.com/hashicorp/go-hclog"

	"pricesync/internal/fault"
)

const defaultMaxBodyBytes = 1 << 20

// limitBody caps the size of form bodies. Oversized bodies surface as an
// InvalidArgument when the handler parses its parameters.
func limitBody(next http.Handler, maxBytes int64) http.Handler {
	if maxBytes <= 0 {
		maxBytes = defaultMaxBodyBytes
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Body != nil && r.Body != http.NoBody {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
		}
		next.ServeHTTP(w, r)
	})
}

// recoverPanic turns a handler panic into the usual JSON rejection.
func recoverPanic(next http.Handler, logger hclog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error("handler panic", "url", r.URL, "panic", rec, "stack", string(debug.Stack()))
				writeJSON(w, r, http.StatusInternalServerError, errorResponse{
					Error:  fault.Unknown.String(),
					Detail: "internal server error",
				}, logger)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
