package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"endpoint_addr_http":             "www.example:9000",
		"database_dsn":                   "postgres://json/db",
		"secret_key":                     "my_secret_key",
		"access_token_validity_duration": "12h",
		"oracle_base_url":                "http://oracle.example",
		"oracle_model":                   "model-json",
		"oracle_api_key":                 "json-key",
		"oracle_timeout":                 "7s",
		"s3_root_user":                   "user",
		"s3_root_password":               "password",
		"s3_bucket":                      "bucket",
		"s3_region":                      "region",
		"s3_base_endpoint":               "base_endpoint",
	})

	t.Run("loads from json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}

		c := &Config{}
		parseJson(c)

		assert.Equal(t, c.EndpointAddrHTTP, "www.example:9000")
		assert.Equal(t, c.DatabaseDSN, "postgres://json/db")
		assert.Equal(t, c.SecretKey, "my_secret_key")
		assert.Equal(t, c.AccessTokenValidityDuration, 12*time.Hour)
		assert.Equal(t, c.OracleBaseURL, "http://oracle.example")
		assert.Equal(t, c.OracleModel, "model-json")
		assert.Equal(t, c.OracleAPIKey, "json-key")
		assert.Equal(t, c.OracleTimeout, 7*time.Second)
		assert.Equal(t, c.S3RootUser, "user")
		assert.Equal(t, c.S3RootPassword, "password")
		assert.Equal(t, c.S3Bucket, "bucket")
		assert.Equal(t, c.S3Region, "region")
		assert.Equal(t, c.S3BaseEndpoint, "base_endpoint")
	})

	t.Run("no config flag leaves values untouched", func(t *testing.T) {
		os.Args = []string{"testbin"}

		c := &Config{}
		c.LoadDefaults()
		before := *c
		parseJson(c)

		assert.Equal(t, before, *c)
	})

	t.Run("missing file panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", filepath.Join(dir, "absent.json")}

		c := &Config{}
		require.Panics(t, func() { parseJson(c) })
	})
}
