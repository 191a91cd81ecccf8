package uploader

import (
	"encoding/json"
	"os"

	"github.com/jon-the-dev/aws-album-manager-sls/internal/flagx"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/timex"
)

// JsonConfig is the DTO used for reading JSON configuration files; see
// the server config package for the overlay semantics.
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	MediaRoot      string         `json:"media_root"`
	Env            string         `json:"env"`
	AWSRegion      string         `json:"aws_region"`
	S3Bucket       string         `json:"s3_bucket"`
	S3BaseEndpoint string         `json:"s3_base_endpoint"`
	SecretCacheTTL timex.Duration `json:"secret_cache_ttl"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags, if given. Non-zero values override the current
// Config; unreadable or invalid files panic.
func parseJson(cfg *Config) {

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

	if c.APIBaseURL != "" {
		cfg.APIBaseURL = c.APIBaseURL
	}
	if c.MediaRoot != "" {
		cfg.MediaRoot = c.MediaRoot
	}
	if c.Env != "" {
		cfg.Env = c.Env
	}
	if c.AWSRegion != "" {
		cfg.AWSRegion = c.AWSRegion
	}
	if c.S3Bucket != "" {
		cfg.S3Bucket = c.S3Bucket
	}
	if c.S3BaseEndpoint != "" {
		cfg.S3BaseEndpoint = c.S3BaseEndpoint
	}
	if c.SecretCacheTTL.Duration != 0 {
		cfg.SecretCacheTTL = c.SecretCacheTTL.Duration
	}
}
