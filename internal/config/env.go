package config

import (
	"os"
	"strings"
)

// Environment variable names.
const (
	EnvHome     = "KOBSWALLET_HOME"
	EnvItaniRPC = "KOBSWALLET_ITANI_RPC"
	EnvEthRPC   = "KOBSWALLET_ETH_RPC"
	EnvDataDir  = "KOBSWALLET_DATA_DIR"
	EnvLogLevel = "KOBSWALLET_LOG_LEVEL"
)

// ApplyEnvironment applies environment variable overrides to the
// configuration. An iTani RPC override applies to the testnet endpoint;
// mainnet endpoints are fixed.
func ApplyEnvironment(cfg *Config) {
	if v := os.Getenv(EnvHome); v != "" {
		cfg.Home = v
	}

	if v := os.Getenv(EnvItaniRPC); v != "" {
		cfg.Networks.Itani.TestnetRPC = strings.TrimSpace(v)
	}

	if v := os.Getenv(EnvEthRPC); v != "" {
		cfg.Networks.Ethereum.RPC = strings.TrimSpace(v)
	}

	if v := os.Getenv(EnvDataDir); v != "" {
		cfg.Storage.DataDir = v
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
}
