package networks_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/electiongw/networks"
)

func TestGetNetworkByNameAndAlias(t *testing.T) {
	n, err := networks.GetNetwork("ganache")
	require.NoError(t, err)
	assert.Equal(t, uint64(5777), n.GetNetworkID())
	assert.Equal(t, uint64(1337), n.GetChainID())

	alias, err := networks.GetNetwork(" Development ")
	require.NoError(t, err)
	assert.Equal(t, n, alias)

	byID, err := networks.GetNetworkByID(5777)
	require.NoError(t, err)
	assert.Equal(t, "ganache", byID.GetName())
	assert.Equal(t, "network-42", networks.Label(42))
}

func TestUnknownNetworkSuggestsName(t *testing.T) {
	_, err := networks.GetNetwork("ganach")
	require.Error(t, err)
	assert.True(t, errors.Is(err, networks.ErrNetworkNotFound))
	assert.Contains(t, err.Error(), "did you mean 'ganache'")
}

func TestNodeURLPrefersEnv(t *testing.T) {
	url, err := networks.NodeURL(networks.Ganache)
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:7545", url)

	t.Setenv(networks.Ganache.GetNodeVariableName(), "http://ganache:8545")
	url, err = networks.NodeURL(networks.Ganache)
	require.NoError(t, err)
	assert.Equal(t, "http://ganache:8545", url)
}
