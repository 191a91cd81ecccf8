package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jon-the-dev/aws-album-manager-sls/internal/common"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeFailure maps pipeline errors to status codes for the first-party
// endpoints. Response bodies carry only the error class; detail stays in
// the operator logs.
func writeFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		writeError(w, http.StatusBadRequest, "invalid request")
	case errors.Is(err, common.ErrUnauthenticated):
		writeError(w, http.StatusUnauthorized, "missing credentials")
	case errors.Is(err, common.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, common.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrConfiguration):
		writeError(w, http.StatusInternalServerError, "configuration error")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// writeWebhookFailure maps webhook processing errors. Anything the
// provider round-trip rejects, including timeouts, is a client-visible
// 400 so the provider retries against a stable contract; only a missing
// local configuration is reported as a server fault.
func writeWebhookFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrConfiguration):
		writeError(w, http.StatusInternalServerError, "configuration error")
	case errors.Is(err, common.ErrStorage), errors.Is(err, common.ErrInternal):
		writeError(w, http.StatusInternalServerError, "internal error")
	default:
		writeError(w, http.StatusBadRequest, "webhook rejected")
	}
}
