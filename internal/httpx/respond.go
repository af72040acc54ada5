package httpx

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/minimart/shop-api/internal/catalog"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func detail(msg string) map[string]string {
	return map[string]string{"detail": msg}
}

// respondErr maps the domain error taxonomy onto status codes. notFound is
// the entity-specific message for ErrNotFound ("Product not found", ...).
func respondErr(w http.ResponseWriter, r *http.Request, logger zerolog.Logger, err error, notFound string) {
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		writeJSON(w, http.StatusNotFound, detail(notFound))
	case errors.Is(err, catalog.ErrDuplicateName):
		writeJSON(w, http.StatusBadRequest, detail("Product name already exists"))
	case errors.Is(err, catalog.ErrInvalidInput):
		writeJSON(w, http.StatusBadRequest, detail(err.Error()))
	default:
		logger.Error().
			Str("request_id", GetRequestID(r.Context())).
			Err(err).
			Msg("request failed")
		writeJSON(w, http.StatusInternalServerError, detail("internal server error"))
	}
}
