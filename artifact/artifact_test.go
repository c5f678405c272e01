package artifact_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/electiongw/artifact"
)

const migratedArtifact = `{
	"contractName": "ElectionSystem",
	"abi": [{
		"type": "function",
		"name": "getTotalCandidates",
		"inputs": [],
		"outputs": [{"name": "", "type": "uint256"}],
		"stateMutability": "view"
	}],
	"networks": {
		"5777": {"address": "0xBEE7E421ff2B3E61260a8f2bA3DA360faC7B132E", "transactionHash": "0x01"},
		"1337": {"address": "not-an-address"}
	}
}`

func TestDefaultCarriesElectionMethods(t *testing.T) {
	a := artifact.Default()
	assert.Equal(t, "ElectionSystem", a.ContractName)
	for _, m := range []string{
		"registerUser", "login", "logout", "getUserDetailsByEmail",
		"addCandidate", "vote", "getResults", "getCandidate", "getTotalCandidates",
	} {
		_, found := a.ABI().Methods[m]
		assert.True(t, found, "missing method %s", m)
	}
	_, found := a.Deployment("5777")
	assert.False(t, found)
}

func TestLoadResolvesDeployment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ElectionSystem.json")
	require.NoError(t, os.WriteFile(path, []byte(migratedArtifact), 0o600))

	a, err := artifact.Load(path)
	require.NoError(t, err)

	addr, found := a.Deployment("5777")
	require.True(t, found)
	assert.Equal(t, common.HexToAddress("0xBEE7E421ff2B3E61260a8f2bA3DA360faC7B132E"), addr)

	_, found = a.Deployment("1337")
	assert.False(t, found, "malformed address must not resolve")

	_, found = a.Deployment("1")
	assert.False(t, found)
}

func TestParseRejectsMissingABI(t *testing.T) {
	_, err := artifact.Parse([]byte(`{"contractName": "x"}`))
	assert.Error(t, err)

	_, err = artifact.Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
