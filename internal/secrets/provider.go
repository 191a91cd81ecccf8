// Package secrets resolves named secrets (signing keys, third-party
// credentials) from AWS Systems Manager Parameter Store, with optional
// per-name TTL caching.
package secrets

import (
	"context"
	"fmt"
)

// Parameter Store key suffixes, namespaced by environment under
// /album-manager/{env}/.
const (
	KeyHMACKey            = "hmac_key"
	KeyPayPalClientID     = "paypal_client_id"
	KeyPayPalClientSecret = "paypal_client_secret"
	KeyPayPalWebhookID    = "paypal_webhook_id"
	KeyS3BucketName       = "s3_bucket_name"
	KeySESSenderEmail     = "ses_sender_email"
)

// Provider resolves a secret value by its full parameter name.
//
// Implementations return an error wrapping common.ErrNotFound when the
// parameter does not exist and common.ErrConfiguration when the backing
// store is unreachable, so callers can map the two to different status
// codes (403-class vs 500-class).
type Provider interface {
	Get(ctx context.Context, name string) (string, error)
}

// ParamName builds the hierarchical parameter path for a key suffix,
// e.g. ParamName("dev", KeyHMACKey) == "/album-manager/dev/hmac_key".
func ParamName(env, key string) string {
	return fmt.Sprintf("/album-manager/%s/%s", env, key)
}
