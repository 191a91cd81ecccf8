// Package uploader implements the studio-side CLI: it scans the local
// media root for client albums, pushes photos and album archives to
// object storage with progress reporting, and drives the delivery API
// with HMAC-signed requests.
package uploader

import "time"

// Config holds runtime settings for the uploader CLI.
//
// Fields:
//   - APIBaseURL: base URL of the delivery API server.
//   - MediaRoot: local directory with {client}/albums/{album} folders.
//   - Env: environment name; selects the SSM parameter tree.
//   - AWSRegion: region for the S3 and SSM clients.
//   - S3Bucket / S3BaseEndpoint: object storage settings. An empty bucket
//     falls back to the s3_bucket_name secret.
//   - SecretCacheTTL: how long the signing key is cached in memory.
type Config struct {
	APIBaseURL     string
	MediaRoot      string
	Env            string
	AWSRegion      string
	S3Bucket       string
	S3BaseEndpoint string
	SecretCacheTTL time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8080"
	c.MediaRoot = "/Media/NAS/Clients"
	c.Env = "dev"
	c.AWSRegion = "us-east-1"
	c.SecretCacheTTL = 1 * time.Hour
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
