// Package delivery orchestrates the album delivery pipeline: it packages
// an album into an archive, uploads it, issues a time-limited download
// link, records the delivery and notifies the buyer. It also processes
// verified payment webhooks for single purchases.
package delivery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jon-the-dev/aws-album-manager-sls/internal/archive"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/common"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/logging"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/mail"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/paypal"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/records"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/server/metrics"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/transfer"
)

// createArchive is a seam for tests.
var createArchive = archive.CreateAlbumArchive

// Uploader pushes local artifacts to object storage.
type Uploader interface {
	UploadFile(ctx context.Context, key, path string) error
	Bucket() string
}

// LinkIssuer mints expiring download URLs for stored objects.
type LinkIssuer interface {
	Issue(ctx context.Context, bucket, key string, ttl time.Duration) (string, error)
}

// Notifier emails download links to buyers.
type Notifier interface {
	SendAlbumReady(ctx context.Context, to, link string, ttl time.Duration) error
	SendPhotoReady(ctx context.Context, to, link string, ttl time.Duration) error
}

// DeliveryStore persists album delivery records.
type DeliveryStore interface {
	PutDelivery(ctx context.Context, d *records.AlbumDelivery, ttl time.Duration) error
}

// WebhookVerifier authenticates inbound payment webhooks.
type WebhookVerifier interface {
	Verify(ctx context.Context, rawEvent []byte, hdr paypal.Headers) error
}

// Auditor appends best-effort records of processed webhook events and
// reports whether the event id was already recorded.
type Auditor interface {
	Record(ctx context.Context, eventID, eventType string, rawPayload []byte) (replayed bool)
}

// Deps carries the collaborators the Service is wired with at startup.
type Deps struct {
	Uploader  Uploader
	Links     LinkIssuer
	Notifier  Notifier
	Store     DeliveryStore
	Verifier  WebhookVerifier
	Audit     Auditor
	Logger    logging.Logger
	MediaRoot string
	LinkTTL   time.Duration
}

// Service implements the delivery pipeline.
type Service struct {
	uploader  Uploader
	links     LinkIssuer
	notifier  Notifier
	store     DeliveryStore
	verifier  WebhookVerifier
	audit     Auditor
	logger    logging.Logger
	mediaRoot string
	linkTTL   time.Duration
}

func NewService(d Deps) *Service {
	return &Service{
		uploader:  d.Uploader,
		links:     d.Links,
		notifier:  d.Notifier,
		store:     d.Store,
		verifier:  d.Verifier,
		audit:     d.Audit,
		logger:    d.Logger.With("module", "delivery"),
		mediaRoot: d.MediaRoot,
		linkTTL:   d.LinkTTL,
	}
}

// AlbumRequest asks for a client album to be bundled and delivered.
type AlbumRequest struct {
	ClientName string `json:"client_name"`
	AlbumName  string `json:"album_name"`
	Email      string `json:"email"`
}

// AlbumResult reports a completed delivery.
type AlbumResult struct {
	DownloadLink string `json:"download_link"`
}

// DeliverAlbum bundles the album directory under the media root, uploads
// the archive, issues a download link, records the delivery and emails
// the link. Upload, presign or record failures abort the delivery; an
// email failure after a successful upload is logged but does not fail
// the operation.
func (s *Service) DeliverAlbum(ctx context.Context, req AlbumRequest) (*AlbumResult, error) {
	client := archive.SanitizeName(strings.TrimSpace(req.ClientName))
	album := archive.SanitizeName(strings.TrimSpace(req.AlbumName))
	if client == "" || album == "" {
		metrics.DeliveriesTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, fmt.Errorf("client_name and album_name are required: %w", common.ErrValidation)
	}
	if err := mail.ValidateAddress(req.Email); err != nil {
		metrics.DeliveriesTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return nil, err
	}

	tmpDir, err := os.MkdirTemp("", "album-bundle-*")
	if err != nil {
		metrics.DeliveriesTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, fmt.Errorf("create staging dir: %w", errors.Join(common.ErrInternal, err))
	}
	defer os.RemoveAll(tmpDir)

	srcDir := filepath.Join(s.mediaRoot, client, "albums", album)
	zipPath := filepath.Join(tmpDir, album+".zip")
	if err := createArchive(srcDir, zipPath); err != nil {
		metrics.DeliveriesTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}

	key := transfer.AlbumArchiveKey(client, album)
	if err := s.uploader.UploadFile(ctx, key, zipPath); err != nil {
		metrics.DeliveriesTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}

	link, err := s.links.Issue(ctx, s.uploader.Bucket(), key, s.linkTTL)
	if err != nil {
		metrics.DeliveriesTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}

	if err := s.store.PutDelivery(ctx, &records.AlbumDelivery{
		ClientName:   req.ClientName,
		AlbumName:    req.AlbumName,
		ZipFileKey:   key,
		Email:        req.Email,
		DownloadLink: link,
	}, s.linkTTL); err != nil {
		metrics.DeliveriesTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return nil, err
	}

	if err := s.notifier.SendAlbumReady(ctx, req.Email, link, s.linkTTL); err != nil {
		// The bundle is uploaded and recorded; the buyer can still be
		// reached out-of-band, so the delivery is reported as succeeded.
		s.logger.Warn(ctx, "album ready email failed", "client", client, "album", album, "error", err)
		metrics.EmailSendsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
	} else {
		metrics.EmailSendsTotal.WithLabelValues(metrics.OutcomeSent).Inc()
	}

	metrics.DeliveriesTotal.WithLabelValues(metrics.OutcomeAccepted).Inc()
	return &AlbumResult{DownloadLink: link}, nil
}

// ProcessWebhook handles one payment webhook delivery. Verification fails
// closed: any verification failure rejects the event before side effects.
// Verified events are audited best-effort; a replayed event id is
// acknowledged without resending anything. A new completed sale gets a
// download link issued and emailed, and an email failure there is fatal
// because the link would otherwise never reach the buyer.
func (s *Service) ProcessWebhook(ctx context.Context, rawBody []byte, hdr paypal.Headers) error {
	if err := s.verifier.Verify(ctx, rawBody, hdr); err != nil {
		if errors.Is(err, common.ErrConfiguration) {
			metrics.WebhookEventsTotal.WithLabelValues(metrics.OutcomeMisconfigured).Inc()
		} else {
			metrics.WebhookEventsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		}
		return err
	}

	var ev paypal.Event
	if err := json.Unmarshal(rawBody, &ev); err != nil {
		metrics.WebhookEventsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return fmt.Errorf("decode webhook event: %w", errors.Join(common.ErrValidation, err))
	}

	if replayed := s.audit.Record(ctx, ev.ID, ev.EventType, rawBody); replayed {
		s.logger.Info(ctx, "ignoring replayed webhook", "event_id", ev.ID)
		metrics.WebhookEventsTotal.WithLabelValues(metrics.OutcomeReplayed).Inc()
		return nil
	}

	if ev.Resource.State != paypal.StateCompleted {
		s.logger.Info(ctx, "ignoring webhook with non-completed sale",
			"event_id", ev.ID, "state", ev.Resource.State)
		metrics.WebhookEventsTotal.WithLabelValues(metrics.OutcomeAccepted).Inc()
		return nil
	}

	client, album, err := splitOrderRef(ev.Resource)
	if err != nil {
		metrics.WebhookEventsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return err
	}
	buyer := ev.Resource.Payer.EmailAddress
	if err := mail.ValidateAddress(buyer); err != nil {
		metrics.WebhookEventsTotal.WithLabelValues(metrics.OutcomeRejected).Inc()
		return err
	}

	key := transfer.AlbumArchiveKey(client, album)
	link, err := s.links.Issue(ctx, s.uploader.Bucket(), key, s.linkTTL)
	if err != nil {
		metrics.WebhookEventsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		return err
	}

	if err := s.notifier.SendPhotoReady(ctx, buyer, link, s.linkTTL); err != nil {
		metrics.WebhookEventsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		metrics.EmailSendsTotal.WithLabelValues(metrics.OutcomeFailed).Inc()
		return err
	}
	metrics.EmailSendsTotal.WithLabelValues(metrics.OutcomeSent).Inc()

	s.logger.Info(ctx, "webhook delivery completed",
		"event_id", ev.ID, "client", client, "album", album)
	metrics.WebhookEventsTotal.WithLabelValues(metrics.OutcomeAccepted).Inc()
	return nil
}

// splitOrderRef resolves the purchased album from the sale's custom
// correlation id, which carries "{client}/{album}".
func splitOrderRef(r paypal.Resource) (client, album string, err error) {
	ref := r.CustomID
	if ref == "" {
		ref = r.Custom
	}
	parts := strings.SplitN(ref, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("webhook order reference %q is not client/album: %w", ref, common.ErrValidation)
	}
	return parts[0], parts[1], nil
}
