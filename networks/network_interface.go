package networks

import (
	"time"
)

type Network interface {
	GetName() string
	GetChainID() uint64
	// GetNetworkID is the value nodes report from net_version. Truffle keys
	// its deployment table by it, and it differs from the chain id on Ganache.
	GetNetworkID() uint64
	GetAlternativeNames() []string
	GetBlockTime() time.Duration

	GetNodeVariableName() string
	GetDefaultNodes() map[string]string
}
