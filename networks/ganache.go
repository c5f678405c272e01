package networks

var Ganache Network = NewGenericNetwork(GenericNetworkConfig{
	Name:             "ganache",
	AlternativeNames: []string{"development"},
	ChainID:          1337,
	NetworkID:        5777,
	BlockTime:        0,
	NodeVariableName: "GANACHE_NODE",
	DefaultNodes: map[string]string{
		"ganache": "http://127.0.0.1:7545",
	},
})

var Localhost Network = NewGenericNetwork(GenericNetworkConfig{
	Name:             "localhost",
	AlternativeNames: []string{"hardhat", "anvil"},
	ChainID:          31337,
	BlockTime:        0,
	NodeVariableName: "LOCALHOST_NODE",
	DefaultNodes: map[string]string{
		"localhost": "http://127.0.0.1:8545",
	},
})
