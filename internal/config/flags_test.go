package config

import (
	"flag"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlagSet(t *testing.T) *flag.FlagSet {
	t.Helper()
	return flag.NewFlagSet("config-test", flag.ContinueOnError)
}

// TestParseFlags_AllFlags verifies the mapping of every flag onto the config.
func TestParseFlags_AllFlags(t *testing.T) {
	cfg := parseFlags(newFlagSet(t), []string{
		"-a", "localhost:9090",
		"-d", "postgres://localhost/notes",
		"-environment", "development",
		"-token-sign-key", "key",
		"-token-issuer", "issuer",
		"-token-duration", "24h",
		"-request-timeout", "45s",
		"-frontend-url", "https://notes.example.com",
		"-google-client-id", "client-id.apps.googleusercontent.com",
		"-c", "/etc/note-keeper/config.json",
	})

	assert.Equal(t, "localhost:9090", cfg.Server.HTTPAddress)
	assert.Equal(t, "postgres://localhost/notes", cfg.Storage.DB.DSN)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "key", cfg.App.TokenSignKey)
	assert.Equal(t, "issuer", cfg.App.TokenIssuer)
	assert.Equal(t, 24*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, 45*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, "https://notes.example.com", cfg.Server.FrontendOrigin)
	assert.Equal(t, "client-id.apps.googleusercontent.com", cfg.Google.ClientID)
	assert.Equal(t, "/etc/note-keeper/config.json", cfg.JSONFilePath)
}

// TestParseFlags_NoFlags verifies that an empty invocation produces zero
// values so lower-priority sources are not shadowed.
func TestParseFlags_NoFlags(t *testing.T) {
	cfg := parseFlags(newFlagSet(t), nil)

	assert.Empty(t, cfg.Server.HTTPAddress)
	assert.Empty(t, cfg.Storage.DB.DSN)
	assert.Empty(t, cfg.App.TokenSignKey)
	assert.Zero(t, cfg.App.TokenDuration)
}

// TestNetAddress_Set covers accepted and rejected address formats.
func TestNetAddress_Set(t *testing.T) {
	var addr NetAddress
	require.NoError(t, addr.Set("localhost:8080"))
	assert.Equal(t, "localhost:8080", addr.String())

	require.NoError(t, addr.Set("127.0.0.1:9000"))
	assert.Equal(t, "127.0.0.1:9000", addr.String())

	assert.Error(t, addr.Set("no-port"))
	assert.Error(t, addr.Set("localhost:notanumber"))
	assert.Error(t, addr.Set("localhost:0"))
	assert.Error(t, addr.Set("not-an-ip:8080"))
}

// TestNetAddress_String_Zero verifies the empty representation of an unset address.
func TestNetAddress_String_Zero(t *testing.T) {
	var addr NetAddress
	assert.Empty(t, addr.String())
}
