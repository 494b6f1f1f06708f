// Package cli implements the kobswallet command-line interface.
//
// This package uses package-level variables to manage CLI state, the standard
// pattern for Cobra-based applications. The globals are initialized in
// PersistentPreRunE and released in PersistentPostRun.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level state
package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/itani-network/kobswallet/internal/chain"
	"github.com/itani-network/kobswallet/internal/chain/bitcoin"
	"github.com/itani-network/kobswallet/internal/chain/cosmos"
	"github.com/itani-network/kobswallet/internal/chain/evm"
	"github.com/itani-network/kobswallet/internal/chain/itani"
	"github.com/itani-network/kobswallet/internal/chain/solana"
	"github.com/itani-network/kobswallet/internal/config"
	"github.com/itani-network/kobswallet/internal/output"
	"github.com/itani-network/kobswallet/internal/store"
	"github.com/itani-network/kobswallet/internal/wallet"
	walleterr "github.com/itani-network/kobswallet/pkg/errors"
)

// Build information, set via ldflags.
var (
	Version = "dev"
	Commit  = ""
)

var (
	// Global flags
	homeDir      string
	outputFormat string

	// Global state initialized in PersistentPreRunE
	cfg       *config.Config
	logger    *config.Logger
	formatter *output.Formatter
	svc       *wallet.Service
)

// rootCmd is the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "kobswallet",
	Short: "Multi-chain wallet for the iTani Network",
	Long: `kobswallet manages iTani Network accounts and balances alongside
Ethereum, Avalanche, Solana, Bitcoin and Cosmos.

Example:
  kobswallet auth register --email you@example.com
  kobswallet account create
  kobswallet balance tokens
  kobswallet chain switch ethereum`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return initGlobals()
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		cleanup()
	},
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		format := output.FormatText
		if formatter != nil && formatter.IsJSON() {
			format = output.FormatJSON
		}
		_ = output.FormatError(os.Stderr, err, format)
	}
	return err
}

// ExitCode returns the exit code for an error.
func ExitCode(err error) int {
	return walleterr.ExitCode(err)
}

// initGlobals loads configuration and builds the wallet service.
func initGlobals() error {
	home := homeDir
	if home == "" {
		home = os.Getenv(config.EnvHome)
	}
	if home == "" {
		home = config.DefaultHome()
	}

	var err error
	cfg, err = config.Load(config.Path(home))
	if err != nil {
		// Missing config is normal on first run.
		cfg = config.Defaults()
	}
	cfg.Home = home
	config.ApplyEnvironment(cfg)
	if homeDir != "" {
		cfg.Home = homeDir
	}

	logFile := cfg.Logging.File
	if logFile == "" {
		logFile = filepath.Join(cfg.Home, "kobswallet.log")
	}
	logger, err = config.NewLogger(config.ParseLogLevel(cfg.Logging.Level), logFile)
	if err != nil {
		logger = config.NullLogger()
	}

	format := output.DetectFormat(os.Stdout, output.ParseFormat(outputFormat))
	formatter = output.NewFormatter(format, os.Stdout)

	svc = wallet.New(wallet.Options{
		Chains:    buildRegistry(cfg),
		Store:     store.New(cfg.DataDir(), logger),
		Logger:    logger,
		NativeFor: nativeFactory(cfg),
	})

	return nil
}

// nativeFactory builds iTani adapters honoring configured endpoint overrides.
func nativeFactory(cfg *config.Config) wallet.NativeAdapterFactory {
	return func(mode chain.NetworkMode) chain.Adapter {
		nc := itani.ConfigFor(mode)
		if mode == chain.Testnet {
			nc.RPCURL = cfg.Networks.Itani.TestnetRPC
			nc.APIURL = cfg.Networks.Itani.TestnetAPI
		} else {
			nc.RPCURL = cfg.Networks.Itani.MainnetRPC
			nc.APIURL = cfg.Networks.Itani.MainnetAPI
		}
		return itani.NewClient(nc, nil)
	}
}

// buildRegistry wires one adapter per supported chain. All adapters share one
// rate limiter so fan-outs cannot hammer a single endpoint.
func buildRegistry(cfg *config.Config) *chain.Registry {
	limiter := chain.DefaultRateLimiter()

	registry := chain.NewRegistry()
	registry.Register(nativeFactory(cfg)(chain.Testnet))

	if cfg.Networks.Ethereum.Enabled {
		registry.Register(evm.NewClient(evm.EthereumConfig(cfg.Networks.Ethereum.RPC), limiter))
	}
	if cfg.Networks.Solana.Enabled {
		registry.Register(solana.NewClient(cfg.Networks.Solana.RPC, limiter))
	}
	registry.Register(bitcoin.NewClient())
	if cfg.Networks.Cosmos.Enabled {
		registry.Register(cosmos.NewClient(cfg.Networks.Cosmos.API, limiter))
	}
	if cfg.Networks.Avalanche.Enabled {
		registry.Register(evm.NewClient(evm.AvalancheConfig(cfg.Networks.Avalanche.RPC), limiter))
	}

	return registry
}

// cleanup releases global resources.
func cleanup() {
	if logger != nil {
		_ = logger.Close()
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&homeDir, "home", "", "kobswallet home directory (default ~/.kobswallet)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "auto", "output format: text, json, or auto")

	rootCmd.AddCommand(
		newAuthCmd(),
		newAccountCmd(),
		newBalanceCmd(),
		newChainCmd(),
		newSendCmd(),
		newAdminCmd(),
		newBackupCmd(),
		newVersionCmd(),
	)
}
