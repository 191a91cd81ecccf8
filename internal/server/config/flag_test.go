package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	// Test cases
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-e", "prod", "-g", "eu-central-1",
			"-m", "/srv/albums", "-b", "bucket", "-s", "studio@example.com",
			"-t", "1800", "-p", "https://api.sandbox.paypal.com",
		}, expectPanic: false,
			expected: &Config{
				Addr:          "127.0.0.1:9090",
				Env:           "prod",
				AWSRegion:     "eu-central-1",
				MediaRoot:     "/srv/albums",
				S3Bucket:      "bucket",
				SenderEmail:   "studio@example.com",
				LinkTTL:       1800 * time.Second,
				PayPalBaseURL: "https://api.sandbox.paypal.com",
			}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {

				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
