package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, c.Addr, ":8080")
	assert.Equal(t, c.Env, "dev")
	assert.Equal(t, c.AWSRegion, "us-east-1")
	assert.Equal(t, c.MediaRoot, "/Media/NAS/Clients")
	assert.Equal(t, c.LinkTTL, 1*time.Hour)
	assert.Equal(t, c.SecretCacheTTL, 1*time.Hour)
	assert.Equal(t, c.PayPalBaseURL, "https://api.paypal.com")
	assert.Equal(t, c.VerifyTimeout, 10*time.Second)
	assert.Equal(t, c.ClientsTable, "Clients")
	assert.Equal(t, c.DeliveriesTable, "AlbumDetails")
	assert.Equal(t, c.AuditTable, "PayPalWebhooks")
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")

	assert.Equal(t, c.Addr, ":8080")
	assert.Equal(t, c.Env, "dev")
	assert.Equal(t, c.AWSRegion, "us-east-1")
	assert.Equal(t, c.MediaRoot, "/Media/NAS/Clients")
	assert.Equal(t, c.LinkTTL, 1*time.Hour)
	assert.Equal(t, c.SecretCacheTTL, 1*time.Hour)
	assert.Equal(t, c.PayPalBaseURL, "https://api.paypal.com")
	assert.Equal(t, c.VerifyTimeout, 10*time.Second)
	assert.Equal(t, c.ClientsTable, "Clients")
	assert.Equal(t, c.DeliveriesTable, "AlbumDetails")
	assert.Equal(t, c.AuditTable, "PayPalWebhooks")
}
