// Package config provides configuration management for kobswallet.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration.
type Config struct {
	Version  int            `yaml:"version"`
	Home     string         `yaml:"home"`
	Networks NetworksConfig `yaml:"networks"`
	Storage  StorageConfig  `yaml:"storage"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// NetworksConfig defines per-chain network settings.
type NetworksConfig struct {
	Itani     ItaniNetworkConfig `yaml:"itani"`
	Ethereum  EVMNetworkConfig   `yaml:"ethereum"`
	Avalanche EVMNetworkConfig   `yaml:"avalanche"`
	Solana    RPCNetworkConfig   `yaml:"solana"`
	Cosmos    APINetworkConfig   `yaml:"cosmos"`
}

// ItaniNetworkConfig defines the native chain's endpoints for both network
// modes. The active mode is session state, not configuration.
type ItaniNetworkConfig struct {
	TestnetRPC string `yaml:"testnet_rpc"`
	TestnetAPI string `yaml:"testnet_api"`
	MainnetRPC string `yaml:"mainnet_rpc"`
	MainnetAPI string `yaml:"mainnet_api"`
}

// EVMNetworkConfig defines settings for an EVM-compatible chain.
type EVMNetworkConfig struct {
	Enabled bool   `yaml:"enabled"`
	RPC     string `yaml:"rpc"`
	ChainID int    `yaml:"chain_id"`
}

// RPCNetworkConfig defines settings for a chain reached over JSON-RPC.
type RPCNetworkConfig struct {
	Enabled bool   `yaml:"enabled"`
	RPC     string `yaml:"rpc"`
}

// APINetworkConfig defines settings for a chain reached over a REST API.
type APINetworkConfig struct {
	Enabled bool   `yaml:"enabled"`
	API     string `yaml:"api"`
}

// StorageConfig defines durable state settings.
type StorageConfig struct {
	// DataDir holds the wallet state record and backups.
	DataDir string `yaml:"data_dir"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads configuration from the specified file.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Path returns the default config file path.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// DataDir returns the resolved durable state directory.
func (c *Config) DataDir() string {
	if c.Storage.DataDir != "" {
		return c.Storage.DataDir
	}
	return filepath.Join(c.Home, "state")
}

// DefaultHome returns the default kobswallet home directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".kobswallet"
	}
	return filepath.Join(home, ".kobswallet")
}
