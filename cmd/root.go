// Copyright © 2018 Victor Tran
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tranvictor/electiongw/config"
	"github.com/tranvictor/electiongw/networks"
	"github.com/tranvictor/electiongw/ui"
)

var appUI ui.UI = ui.NewTerminalUI()

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "electiongw",
	Short: "HTTP gateway in front of the ElectionSystem voting contract",
	Long: fmt.Sprintf(`electiongw exposes the ElectionSystem contract deployed by truffle as a
JSON HTTP API: voter registration, login and logout, candidate management,
voting and results.

It forwards every request to the contract. Writes are signed by the first
account the node manages (eth_accounts), or by a local key when
signer.privateKey or signer.keystore is configured.

By default it talks to a local Ganache on http://127.0.0.1:7545. Point it
at another node with --node, the ELECTIONGW_NODE_URL env var, or the node
env var of the network:
	1. For ganache: %s
	2. For localhost (hardhat, anvil): %s
	3. For sepolia: %s
	4. For mainnet: %s

Settings are read from electiongw.yaml (or --config), then the environment,
then flags.`,
		networks.Ganache.GetNodeVariableName(),
		networks.Localhost.GetNodeVariableName(),
		networks.Sepolia.GetNodeVariableName(),
		networks.EthereumMainnet.GetNodeVariableName(),
	),
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().StringVarP(&config.Network, "network", "k", "", fmt.Sprintf("network the contract lives on. Valid values: %v. Default: ganache.", networks.GetSupportedNetworkNames()))
	rootCmd.PersistentFlags().StringVarP(&config.ConfigFile, "config", "c", "", "config file. Default: electiongw.yaml or configs/electiongw.yaml when present.")
	rootCmd.PersistentFlags().StringVar(&config.NodeURL, "node", "", "JSON-RPC url of the node. Overrides the network's default node.")
	rootCmd.PersistentFlags().StringVar(&config.ArtifactPath, "artifact", "", "truffle build artifact (build/contracts/ElectionSystem.json). Default: the embedded ABI.")
	rootCmd.PersistentFlags().StringVar(&config.ContractAddress, "contract", "", "contract address. Overrides the artifact's deployment for the node's network.")
	rootCmd.PersistentFlags().StringVar(&config.Keystore, "keystore", "", "keystore file to sign writes with instead of node accounts.")
	rootCmd.PersistentFlags().StringVar(&config.LogLevel, "log-level", "", "debug, info, warn or error.")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
