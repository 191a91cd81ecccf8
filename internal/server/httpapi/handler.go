// Package httpapi exposes the delivery pipeline over HTTP: signed
// first-party endpoints for bundling albums and managing clients, the
// payment webhook endpoint, and Prometheus metrics.
package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jon-the-dev/aws-album-manager-sls/internal/logging"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/paypal"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/records"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/secrets"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/server/delivery"
)

// DeliveryService is the pipeline the HTTP layer drives.
type DeliveryService interface {
	DeliverAlbum(ctx context.Context, req delivery.AlbumRequest) (*delivery.AlbumResult, error)
	ProcessWebhook(ctx context.Context, rawBody []byte, hdr paypal.Headers) error
}

// ClientStore creates client records for the management endpoints.
type ClientStore interface {
	CreateClient(ctx context.Context, name, email string) (*records.Client, error)
}

// Handler holds the HTTP boundary dependencies.
type Handler struct {
	svc     DeliveryService
	clients ClientStore
	secrets secrets.Provider
	env     string
	logger  logging.Logger
}

func NewHandler(svc DeliveryService, clients ClientStore, sp secrets.Provider, env string, logger logging.Logger) *Handler {
	return &Handler{
		svc:     svc,
		clients: clients,
		secrets: sp,
		env:     env,
		logger:  logger.With("module", "httpapi"),
	}
}

// Router builds the service routes. First-party endpoints sit behind the
// HMAC signature middleware; the payment webhook carries its own
// provider-verified signature and is exposed without it.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Route("/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(h.verifySignature)
			r.Post("/albums/zip", h.zipAlbum)
			r.Post("/clients", h.createClient)
		})
		r.Post("/webhooks/paypal", h.paypalWebhook)
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

func (h *Handler) zipAlbum(w http.ResponseWriter, r *http.Request) {
	var req delivery.AlbumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := h.svc.DeliverAlbum(r.Context(), req)
	if err != nil {
		h.logger.Error(r.Context(), "album delivery failed", "error", err)
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":       "Album zipped and uploaded successfully",
		"download_link": res.DownloadLink,
	})
}

func (h *Handler) createClient(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ClientName string `json:"client_name"`
		Email      string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	c, err := h.clients.CreateClient(r.Context(), req.ClientName, req.Email)
	if err != nil {
		h.logger.Error(r.Context(), "create client failed", "error", err)
		writeFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"clientID": c.ClientID,
		"message":  "Client created successfully",
	})
}

func (h *Handler) paypalWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable request body")
		return
	}

	if err := h.svc.ProcessWebhook(r.Context(), body, paypal.HeadersFromRequest(r.Header)); err != nil {
		h.logger.Error(r.Context(), "webhook processing failed", "error", err)
		writeWebhookFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Webhook processed"})
}
