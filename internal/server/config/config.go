// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the album delivery server.
//
// Fields:
//   - Addr: bind address for the public HTTP endpoint.
//   - Env: deployment environment name; selects the SSM parameter tree
//     ("/album-manager/{env}/...").
//   - AWSRegion: region for all AWS clients (S3, SSM, SES, DynamoDB).
//   - S3Bucket / S3BaseEndpoint: object storage settings. An empty bucket
//     falls back to the s3_bucket_name secret at runtime.
//   - MediaRoot: local directory holding client album folders.
//   - SenderEmail: SES sender address; empty falls back to the
//     ses_sender_email secret.
//   - LinkTTL: lifetime of presigned download links.
//   - SecretCacheTTL: how long resolved secrets are cached in memory.
//   - PayPalBaseURL / VerifyTimeout: webhook verification endpoint settings.
//   - ClientsTable / DeliveriesTable / AuditTable: DynamoDB table names.
type Config struct {
	Addr            string
	Env             string
	AWSRegion       string
	S3Bucket        string
	S3BaseEndpoint  string
	MediaRoot       string
	SenderEmail     string
	LinkTTL         time.Duration
	SecretCacheTTL  time.Duration
	PayPalBaseURL   string
	VerifyTimeout   time.Duration
	ClientsTable    string
	DeliveriesTable string
	AuditTable      string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: These values assume a sandbox environment and should be overridden.
func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.Env = "dev"
	c.AWSRegion = "us-east-1"
	c.MediaRoot = "/Media/NAS/Clients"
	c.LinkTTL = 1 * time.Hour
	c.SecretCacheTTL = 1 * time.Hour
	c.PayPalBaseURL = "https://api.paypal.com"
	c.VerifyTimeout = 10 * time.Second
	c.ClientsTable = "Clients"
	c.DeliveriesTable = "AlbumDetails"
	c.AuditTable = "PayPalWebhooks"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
