// Package transfer uploads artifacts to object storage with chunked,
// encrypted-at-rest transfer and progress accounting. Downloads are never
// proxied through the service; clients receive presigned links instead.
package transfer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/jon-the-dev/aws-album-manager-sls/internal/common"
)

const (
	// DefaultPartSize is 5 MiB, the smallest part S3 accepts. Smaller
	// chunks multiply per-part request overhead.
	DefaultPartSize = 5 * 1024 * 1024

	// DefaultConcurrency bounds parallel part uploads for one object.
	DefaultConcurrency = 10
)

// UploaderAPI is the subset of manager.Uploader used by the Manager.
type UploaderAPI interface {
	Upload(ctx context.Context, input *s3.PutObjectInput, opts ...func(*manager.Uploader)) (*manager.UploadOutput, error)
}

// Manager uploads objects to a single bucket. Every write carries
// server-side encryption and an inferred Content-Type; objects stay
// private and are reachable only through presigned links.
type Manager struct {
	uploader UploaderAPI
	bucket   string
	progress ProgressFunc
}

type ManagerOption func(*Manager)

// WithProgress registers an advisory bytes-transferred callback.
func WithProgress(fn ProgressFunc) ManagerOption {
	return func(m *Manager) { m.progress = fn }
}

// WithUploader substitutes the multipart uploader (tests).
func WithUploader(u UploaderAPI) ManagerOption {
	return func(m *Manager) { m.uploader = u }
}

// NewManager builds a Manager over the given S3 client with the default
// part size and bounded concurrency.
func NewManager(client manager.UploadAPIClient, bucket string, opts ...ManagerOption) *Manager {
	m := &Manager{
		uploader: manager.NewUploader(client, func(u *manager.Uploader) {
			u.PartSize = DefaultPartSize
			u.Concurrency = DefaultConcurrency
		}),
		bucket: bucket,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Bucket returns the destination bucket name.
func (m *Manager) Bucket() string {
	return m.bucket
}

// Upload streams body to the given key. Part order is irrelevant; the
// uploader completes the object only after every part is durable.
func (m *Manager) Upload(ctx context.Context, key string, body io.Reader) error {
	if key == "" {
		return fmt.Errorf("empty object key: %w", common.ErrInvalidTarget)
	}

	if m.progress != nil {
		body = newProgressReader(body, m.progress)
	}

	_, err := m.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:               aws.String(m.bucket),
		Key:                  aws.String(key),
		Body:                 body,
		ContentType:          aws.String(ContentTypeForKey(key)),
		ServerSideEncryption: s3types.ServerSideEncryptionAes256,
	})
	if err != nil {
		return fmt.Errorf("upload %s: %w", key, errors.Join(common.ErrStorage, err))
	}

	return nil
}

// UploadFile uploads a local file to the given key.
func (m *Manager) UploadFile(ctx context.Context, key, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return m.Upload(ctx, key, f)
}
