package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeCommandStructure(t *testing.T) {
	assert.Equal(t, "serve", serveCmd.Use)
	assert.NotNil(t, serveCmd.RunE)
	assert.Contains(t, serveCmd.Long, "/api/generation/{n}")

	addr := serveCmd.Flags().Lookup("addr")
	require.NotNil(t, addr)
	assert.Equal(t, "", addr.DefValue)
}

func TestLoadConfigAppliesOverrides(t *testing.T) {
	withFlags(t, "", "dex.csv")
	logLevel = "debug"

	cfg, err := loadConfig(":8080")
	require.NoError(t, err)
	assert.Equal(t, "dex.csv", cfg.Catalog.Source)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestRunServeInvalidConfig(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("server:\n  addr: \"\"\n  max_upload_mb: -1\n"), 0o644))
	withFlags(t, cfgPath, "")

	err := runServe(serveCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
