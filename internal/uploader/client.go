package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/jon-the-dev/aws-album-manager-sls/internal/common"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/cryptox"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/secrets"
)

// signatureHeader mirrors the server-side contract.
const signatureHeader = "X-Signature"

const defaultRequestTimeout = 30 * time.Second

// APIClient calls the delivery API with HMAC-signed request bodies. The
// signing key is resolved through the secret provider, so the CLI and
// the server share one key per environment.
type APIClient struct {
	base    string
	client  *http.Client
	secrets secrets.Provider
	env     string
}

type APIClientOption func(*APIClient)

// WithHTTPClient overrides the HTTP client, mainly for tests.
func WithHTTPClient(c *http.Client) APIClientOption {
	return func(a *APIClient) { a.client = c }
}

func NewAPIClient(base string, sp secrets.Provider, env string, opts ...APIClientOption) *APIClient {
	a := &APIClient{
		base:    strings.TrimRight(base, "/"),
		client:  &http.Client{Timeout: defaultRequestTimeout},
		secrets: sp,
		env:     env,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// RequestAlbumZip asks the server to bundle and deliver an album and
// returns the issued download link.
func (a *APIClient) RequestAlbumZip(ctx context.Context, clientName, albumName, email string) (string, error) {
	m, err := a.postSigned(ctx, "/v1/albums/zip", map[string]string{
		"client_name": clientName,
		"album_name":  albumName,
		"email":       email,
	})
	if err != nil {
		return "", err
	}
	return m["download_link"], nil
}

// CreateClient registers a client record and returns its id.
func (a *APIClient) CreateClient(ctx context.Context, name, email string) (string, error) {
	m, err := a.postSigned(ctx, "/v1/clients", map[string]string{
		"client_name": name,
		"email":       email,
	})
	if err != nil {
		return "", err
	}
	return m["clientID"], nil
}

// postSigned marshals the payload once and signs exactly those bytes;
// the server verifies the signature against the raw body, so the body
// must not be re-serialized after signing.
func (a *APIClient) postSigned(ctx context.Context, path string, payload any) (map[string]string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	key, err := a.secrets.Get(ctx, secrets.ParamName(a.env, secrets.KeyHMACKey))
	if err != nil {
		return nil, fmt.Errorf("signing key: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.base+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(signatureHeader, cryptox.Sign([]byte(key), body))

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", path, errors.Join(common.ErrUpstream, err))
	}
	defer resp.Body.Close()

	var m map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", path, errors.Join(common.ErrUpstream, err))
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("api %s: %s (%d): %w", path, m["error"], resp.StatusCode, common.ErrUpstream)
	}
	return m, nil
}
