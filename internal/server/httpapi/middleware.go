package httpapi

import (
	"bytes"
	"io"
	"net/http"

	"github.com/jon-the-dev/aws-album-manager-sls/internal/cryptox"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/secrets"
)

// SignatureHeader carries the base64 HMAC-SHA256 of the raw request body.
const SignatureHeader = "X-Signature"

// verifySignature authenticates first-party requests. The signature is
// checked against the raw body exactly as received; the body is restored
// for downstream handlers. A missing header is distinguished from a bad
// signature, and an unavailable signing key is reported as a server-side
// problem rather than an authentication failure.
func (h *Handler) verifySignature(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "unreadable request body")
			return
		}
		r.Body = io.NopCloser(bytes.NewReader(body))

		sig := r.Header.Get(SignatureHeader)
		if sig == "" {
			writeError(w, http.StatusUnauthorized, "missing signature")
			return
		}

		key, err := h.secrets.Get(r.Context(), secrets.ParamName(h.env, secrets.KeyHMACKey))
		if err != nil {
			h.logger.Error(r.Context(), "signing key unavailable", "error", err)
			writeError(w, http.StatusInternalServerError, "configuration error")
			return
		}

		if !cryptox.Verify([]byte(key), body, sig) {
			writeError(w, http.StatusForbidden, "invalid signature")
			return
		}

		next.ServeHTTP(w, r)
	})
}
