package networks

var EthereumMainnet Network = NewGenericNetwork(GenericNetworkConfig{
	Name:             "mainnet",
	AlternativeNames: []string{"ethereum"},
	ChainID:          1,
	BlockTime:        12,
	NodeVariableName: "ETHEREUM_MAINNET_NODE",
	DefaultNodes: map[string]string{
		"mainnet-publicnode": "https://ethereum-rpc.publicnode.com",
	},
})

var Sepolia Network = NewGenericNetwork(GenericNetworkConfig{
	Name:             "sepolia",
	AlternativeNames: []string{},
	ChainID:          11155111,
	BlockTime:        12,
	NodeVariableName: "ETHEREUM_SEPOLIA_NODE",
	DefaultNodes: map[string]string{
		"sepolia-publicnode": "https://ethereum-sepolia-rpc.publicnode.com",
	},
})
