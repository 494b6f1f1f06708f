package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopkg.in/yaml.v3"
)

func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg := Defaults()
	assert.Equal(t, 1, cfg.Version)
	assert.Equal(t, "http://localhost:8545", cfg.Networks.Itani.TestnetRPC)
	assert.Equal(t, "https://rpc.itani.network", cfg.Networks.Itani.MainnetRPC)
	assert.True(t, cfg.Networks.Ethereum.Enabled)
	assert.Equal(t, 1, cfg.Networks.Ethereum.ChainID)
	assert.Equal(t, 43114, cfg.Networks.Avalanche.ChainID)
	assert.Equal(t, "error", cfg.Logging.Level)
}

func TestLoadSave_RoundTrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := Path(dir)

	cfg := Defaults()
	cfg.Home = dir
	cfg.Networks.Ethereum.RPC = "https://example.com/rpc"
	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := Path(dir)

	partial := map[string]any{
		"logging": map[string]any{"level": "debug"},
	}
	data, err := yaml.Marshal(partial)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched sections keep their defaults.
	assert.Equal(t, DefaultEthereumRPCURL, cfg.Networks.Ethereum.RPC)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestDataDir(t *testing.T) {
	t.Parallel()

	cfg := Defaults()
	cfg.Home = "/tmp/kw"
	assert.Equal(t, filepath.Join("/tmp/kw", "state"), cfg.DataDir())

	cfg.Storage.DataDir = "/var/lib/kw"
	assert.Equal(t, "/var/lib/kw", cfg.DataDir())
}

func TestApplyEnvironment(t *testing.T) {
	t.Setenv(EnvItaniRPC, "http://127.0.0.1:9999")
	t.Setenv(EnvLogLevel, "DEBUG")

	cfg := Defaults()
	ApplyEnvironment(cfg)

	assert.Equal(t, "http://127.0.0.1:9999", cfg.Networks.Itani.TestnetRPC)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestParseLogLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, LogLevelOff, ParseLogLevel("off"))
	assert.Equal(t, LogLevelDebug, ParseLogLevel(" Debug "))
	assert.Equal(t, LogLevelError, ParseLogLevel("unknown"))
}
