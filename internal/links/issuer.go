// Package links mints expiring, capability-bound download URLs for private
// storage objects. A link grants access to exactly one object key and its
// expiry can never exceed the configured maximum.
package links

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jon-the-dev/aws-album-manager-sls/internal/common"
)

// MaxTTL caps link expiry at one hour. Callers asking for more are
// clamped, never honored.
const MaxTTL = 3600 * time.Second

// PresignAPI is the subset of s3.PresignClient used by the Issuer.
type PresignAPI interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Issuer signs time-limited GET URLs. Links are computable only with
// storage credentials; the issuer never exposes them.
type Issuer struct {
	presign PresignAPI
	maxTTL  time.Duration
}

func NewIssuer(presign PresignAPI) *Issuer {
	return &Issuer{presign: presign, maxTTL: MaxTTL}
}

// Issue returns a presigned URL for bucket/key valid for ttl. A ttl of
// zero or less gets the maximum; a ttl above the cap is clamped.
func (i *Issuer) Issue(ctx context.Context, bucket, key string, ttl time.Duration) (string, error) {
	if bucket == "" || key == "" {
		return "", fmt.Errorf("bucket and key are required: %w", common.ErrInvalidTarget)
	}

	if ttl <= 0 || ttl > i.maxTTL {
		ttl = i.maxTTL
	}

	req, err := i.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("presign %s/%s: %w", bucket, key, errors.Join(common.ErrStorage, err))
	}

	return req.URL, nil
}
