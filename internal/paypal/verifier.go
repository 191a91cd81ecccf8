package paypal

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jon-the-dev/aws-album-manager-sls/internal/common"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/secrets"
)

const (
	// DefaultBaseURL is the live PayPal API host.
	DefaultBaseURL = "https://api.paypal.com"

	// DefaultTimeout bounds the verification round trip so a slow
	// upstream cannot stall the webhook handler.
	DefaultTimeout = 10 * time.Second

	verifyPath = "/v1/notifications/verify-webhook-signature"

	statusSuccess = "SUCCESS"
)

// Verifier validates webhook authenticity by submitting the transmission
// headers and raw event body back to PayPal. Any non-success status,
// timeout, or transport error is treated as a verification failure (fail
// closed). Missing provider credentials surface as a configuration error,
// distinct from a forged webhook.
type Verifier struct {
	secrets secrets.Provider
	env     string
	baseURL string
	client  *http.Client
	timeout time.Duration
}

type VerifierOption func(*Verifier)

// WithBaseURL overrides the PayPal API host (sandbox, tests).
func WithBaseURL(u string) VerifierOption {
	return func(v *Verifier) { v.baseURL = u }
}

// WithHTTPClient overrides the HTTP client used for the round trip.
func WithHTTPClient(c *http.Client) VerifierOption {
	return func(v *Verifier) { v.client = c }
}

// WithTimeout overrides the verification deadline.
func WithTimeout(d time.Duration) VerifierOption {
	return func(v *Verifier) { v.timeout = d }
}

func NewVerifier(sp secrets.Provider, env string, opts ...VerifierOption) *Verifier {
	v := &Verifier{
		secrets: sp,
		env:     env,
		baseURL: DefaultBaseURL,
		client:  &http.Client{},
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

type verifyRequest struct {
	AuthAlgo         string          `json:"auth_algo"`
	CertURL          string          `json:"cert_url"`
	TransmissionID   string          `json:"transmission_id"`
	TransmissionSig  string          `json:"transmission_sig"`
	TransmissionTime string          `json:"transmission_time"`
	WebhookID        string          `json:"webhook_id"`
	WebhookEvent     json.RawMessage `json:"webhook_event"`
}

type verifyResponse struct {
	VerificationStatus string `json:"verification_status"`
}

// Verify checks the authenticity of a webhook delivery. rawEvent must be
// the body exactly as received; re-serializing it would invalidate the
// provider-side signature check.
func (v *Verifier) Verify(ctx context.Context, rawEvent []byte, hdr Headers) error {
	clientID, err := v.secrets.Get(ctx, secrets.ParamName(v.env, secrets.KeyPayPalClientID))
	if err != nil {
		return fmt.Errorf("paypal client id: %w", errors.Join(common.ErrConfiguration, err))
	}
	clientSecret, err := v.secrets.Get(ctx, secrets.ParamName(v.env, secrets.KeyPayPalClientSecret))
	if err != nil {
		return fmt.Errorf("paypal client secret: %w", errors.Join(common.ErrConfiguration, err))
	}
	webhookID, err := v.secrets.Get(ctx, secrets.ParamName(v.env, secrets.KeyPayPalWebhookID))
	if err != nil {
		return fmt.Errorf("paypal webhook id: %w", errors.Join(common.ErrConfiguration, err))
	}

	payload, err := json.Marshal(verifyRequest{
		AuthAlgo:         hdr.AuthAlgo,
		CertURL:          hdr.CertURL,
		TransmissionID:   hdr.TransmissionID,
		TransmissionSig:  hdr.TransmissionSig,
		TransmissionTime: hdr.TransmissionTime,
		WebhookID:        webhookID,
		WebhookEvent:     json.RawMessage(rawEvent),
	})
	if err != nil {
		return fmt.Errorf("marshal verification payload: %w", common.ErrInternal)
	}

	ctx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+verifyPath, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build verification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(clientID, clientSecret)

	resp, err := v.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("webhook verification: %w", common.ErrUpstreamTimeout)
		}
		return fmt.Errorf("webhook verification: %w", common.ErrUpstream)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("webhook verification status %d: %w", resp.StatusCode, common.ErrUpstream)
	}

	var vr verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&vr); err != nil {
		return fmt.Errorf("decode verification response: %w", common.ErrUpstream)
	}
	if vr.VerificationStatus != statusSuccess {
		return fmt.Errorf("verification status %q: %w", vr.VerificationStatus, common.ErrForbidden)
	}

	return nil
}
