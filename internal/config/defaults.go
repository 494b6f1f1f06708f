package config

// DefaultEthereumRPCURL is the default Ethereum RPC endpoint.
// PublicNode requires no API key.
const DefaultEthereumRPCURL = "https://ethereum-rpc.publicnode.com"

// DefaultAvalancheRPCURL is the default Avalanche C-Chain RPC endpoint.
const DefaultAvalancheRPCURL = "https://api.avax.network/ext/bc/C/rpc"

// DefaultSolanaRPCURL is the default Solana RPC endpoint.
const DefaultSolanaRPCURL = "https://api.mainnet-beta.solana.com"

// DefaultCosmosAPIURL is the default Cosmos Hub REST endpoint.
const DefaultCosmosAPIURL = "https://rest.cosmos.network"

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.kobswallet",
		Networks: NetworksConfig{
			Itani: ItaniNetworkConfig{
				TestnetRPC: "http://localhost:8545",
				TestnetAPI: "http://localhost:3000",
				MainnetRPC: "https://rpc.itani.network",
				MainnetAPI: "https://api.itani.network",
			},
			Ethereum: EVMNetworkConfig{
				Enabled: true,
				RPC:     DefaultEthereumRPCURL,
				ChainID: 1,
			},
			Avalanche: EVMNetworkConfig{
				Enabled: true,
				RPC:     DefaultAvalancheRPCURL,
				ChainID: 43114,
			},
			Solana: RPCNetworkConfig{
				Enabled: true,
				RPC:     DefaultSolanaRPCURL,
			},
			Cosmos: APINetworkConfig{
				Enabled: true,
				API:     DefaultCosmosAPIURL,
			},
		},
		Storage: StorageConfig{
			DataDir: "",
		},
		Logging: LoggingConfig{
			Level: "error",
			// File is resolved relative to the home directory when empty.
			File: "",
		},
	}
}
