package networks

import (
	"time"
)

type GenericNetworkConfig struct {
	Name             string            `json:"name"`
	AlternativeNames []string          `json:"alternative_names"`
	ChainID          uint64            `json:"chain_id"`
	NetworkID        uint64            `json:"network_id"`
	BlockTime        uint64            `json:"block_time"`
	NodeVariableName string            `json:"node_variable_name"`
	DefaultNodes     map[string]string `json:"default_nodes"`
}

// GenericNetwork is a Network fully described by its config.
type GenericNetwork struct {
	config GenericNetworkConfig
}

func NewGenericNetwork(config GenericNetworkConfig) *GenericNetwork {
	if config.NetworkID == 0 {
		config.NetworkID = config.ChainID
	}
	return &GenericNetwork{config: config}
}

func (gn *GenericNetwork) GetName() string {
	return gn.config.Name
}

func (gn *GenericNetwork) GetChainID() uint64 {
	return gn.config.ChainID
}

func (gn *GenericNetwork) GetNetworkID() uint64 {
	return gn.config.NetworkID
}

func (gn *GenericNetwork) GetAlternativeNames() []string {
	return gn.config.AlternativeNames
}

func (gn *GenericNetwork) GetBlockTime() time.Duration {
	return time.Duration(gn.config.BlockTime) * time.Second
}

func (gn *GenericNetwork) GetNodeVariableName() string {
	return gn.config.NodeVariableName
}

func (gn *GenericNetwork) GetDefaultNodes() map[string]string {
	return gn.config.DefaultNodes
}
