package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/jon-the-dev/aws-album-manager-sls/internal/flagx"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "1s" and integer nanoseconds.
//
// This struct is an intermediate DTO (Data Transfer Object) used only for
// reading JSON configuration files. After unmarshalling, its non-empty fields
// are copied into the runtime Config struct which uses time.Duration.
type JsonConfig struct {
	Addr            string         `json:"addr"`
	Env             string         `json:"env"`
	AWSRegion       string         `json:"aws_region"`
	S3Bucket        string         `json:"s3_bucket"`
	S3BaseEndpoint  string         `json:"s3_base_endpoint"`
	MediaRoot       string         `json:"media_root"`
	SenderEmail     string         `json:"sender_email"`
	LinkTTL         timex.Duration `json:"link_ttl"`
	SecretCacheTTL  timex.Duration `json:"secret_cache_ttl"`
	PayPalBaseURL   string         `json:"paypal_base_url"`
	VerifyTimeout   timex.Duration `json:"verify_timeout"`
	ClientsTable    string         `json:"clients_table"`
	DeliveriesTable string         `json:"deliveries_table"`
	AuditTable      string         `json:"audit_table"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The lookup order for the JSON file path is:
//
//	The -c or -config command-line flags.
//	If it is not set, no JSON file is loaded.
//
// If the file path is found, parseJson attempts to read and unmarshal it
// into a JsonConfig. Non-zero values are copied into the target Config, so
// a partial file only overrides the settings it names. If the file cannot
// be read or contains invalid JSON, the function panics.
//
// The caller is expected to merge these values with defaults and
// command-line flags as part of the full configuration process.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	overlayString(&config.Addr, c.Addr)
	overlayString(&config.Env, c.Env)
	overlayString(&config.AWSRegion, c.AWSRegion)
	overlayString(&config.S3Bucket, c.S3Bucket)
	overlayString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	overlayString(&config.MediaRoot, c.MediaRoot)
	overlayString(&config.SenderEmail, c.SenderEmail)
	overlayString(&config.PayPalBaseURL, c.PayPalBaseURL)
	overlayString(&config.ClientsTable, c.ClientsTable)
	overlayString(&config.DeliveriesTable, c.DeliveriesTable)
	overlayString(&config.AuditTable, c.AuditTable)
	overlayDuration(&config.LinkTTL, c.LinkTTL)
	overlayDuration(&config.SecretCacheTTL, c.SecretCacheTTL)
	overlayDuration(&config.VerifyTimeout, c.VerifyTimeout)
}

func overlayString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func overlayDuration(dst *time.Duration, v timex.Duration) {
	if v.Duration != 0 {
		*dst = v.Duration
	}
}
