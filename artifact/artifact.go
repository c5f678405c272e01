// Package artifact reads truffle build artifacts: the contract ABI plus the
// per-network deployment table written by `truffle migrate`.
package artifact

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

//go:embed ElectionSystem.json
var electionSystemJSON []byte

type Deployment struct {
	Address         string `json:"address"`
	TransactionHash string `json:"transactionHash,omitempty"`
}

type Artifact struct {
	ContractName string                `json:"contractName"`
	RawABI       json.RawMessage       `json:"abi"`
	Networks     map[string]Deployment `json:"networks"`

	abi abi.ABI
}

// Default returns the embedded ElectionSystem artifact. It carries the ABI
// only, so the deployed address has to come from configuration.
func Default() *Artifact {
	a, err := Parse(electionSystemJSON)
	if err != nil {
		panic(fmt.Errorf("embedded artifact is broken: %w", err))
	}
	return a
}

func Load(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't read artifact %s: %w", path, err)
	}
	a, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return a, nil
}

func Parse(data []byte) (*Artifact, error) {
	a := &Artifact{}
	if err := json.Unmarshal(data, a); err != nil {
		return nil, fmt.Errorf("couldn't decode artifact: %w", err)
	}
	if len(a.RawABI) == 0 {
		return nil, fmt.Errorf("artifact has no abi")
	}
	parsed, err := abi.JSON(bytes.NewReader(a.RawABI))
	if err != nil {
		return nil, fmt.Errorf("couldn't parse abi: %w", err)
	}
	a.abi = parsed
	if a.Networks == nil {
		a.Networks = map[string]Deployment{}
	}
	return a, nil
}

func (a *Artifact) ABI() *abi.ABI {
	return &a.abi
}

// Deployment returns the address the contract was migrated to on the
// network with the given id (the value of net_version).
func (a *Artifact) Deployment(networkID string) (common.Address, bool) {
	d, found := a.Networks[networkID]
	if !found {
		return common.Address{}, false
	}
	addr := strings.TrimSpace(d.Address)
	if !common.IsHexAddress(addr) {
		return common.Address{}, false
	}
	return common.HexToAddress(addr), true
}
