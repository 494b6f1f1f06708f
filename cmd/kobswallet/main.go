// Command kobswallet is a multi-chain wallet for the iTani network and
// external chains. It manages local users, derives and encrypts account
// keys, tracks balances, and drives the iTani operator and token factory
// operations over JSON-RPC.
package main

import (
	"os"

	"github.com/itani-network/kobswallet/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.ExitCode(err))
	}
}
