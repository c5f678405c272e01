package networks

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"
)

// Insert more Network implementation here to support
// more chains
var supportedNetworks = []Network{
	Ganache,
	Localhost,
	EthereumMainnet,
	Sepolia,
}

var globalSupportedNetworks = newSupportedNetworks()
var ErrNetworkNotFound = fmt.Errorf("network not found")

type networks struct {
	networks     map[string]Network
	networksByID map[uint64]Network
}

func (n *networks) getSupportedNetworkNames() []string {
	res := []string{}
	for name := range n.networks {
		res = append(res, name)
	}
	sort.Strings(res)
	return res
}

func (n *networks) getNetworkByID(id uint64) (Network, error) {
	res, found := n.networksByID[id]
	if !found {
		return nil, fmt.Errorf("network id %d is not supported", id)
	}
	return res, nil
}

func (n *networks) getNetwork(name string) (Network, error) {
	res, found := n.networks[strings.ToLower(strings.TrimSpace(name))]
	if !found {
		if suggestion := n.suggest(name); suggestion != "" {
			return nil, fmt.Errorf("network name '%s' (did you mean '%s'?): %w", name, suggestion, ErrNetworkNotFound)
		}
		return nil, fmt.Errorf("network name '%s': %w", name, ErrNetworkNotFound)
	}
	return res, nil
}

func (n *networks) suggest(name string) string {
	matches := fuzzy.Find(strings.ToLower(name), n.getSupportedNetworkNames())
	if len(matches) == 0 {
		return ""
	}
	return matches[0].Str
}

func newSupportedNetworks() *networks {
	result := networks{
		map[string]Network{},
		map[uint64]Network{},
	}
	for _, n := range supportedNetworks {
		if _, found := result.networks[n.GetName()]; found {
			panic(
				fmt.Errorf(
					"network with name or alternative name of '%s' already exists",
					n.GetName(),
				),
			)
		}
		result.networks[n.GetName()] = n
		result.networksByID[n.GetNetworkID()] = n
		for _, an := range n.GetAlternativeNames() {
			if _, found := result.networks[an]; found {
				panic(
					fmt.Errorf("network with name or alternative name of '%s' already exists", an),
				)
			}
			result.networks[an] = n
		}
	}
	return &result
}

func GetNetwork(name string) (Network, error) {
	return globalSupportedNetworks.getNetwork(name)
}

// GetNetworkByID looks a network up by the id its nodes report from
// net_version.
func GetNetworkByID(id uint64) (Network, error) {
	return globalSupportedNetworks.getNetworkByID(id)
}

func GetSupportedNetworkNames() []string {
	return globalSupportedNetworks.getSupportedNetworkNames()
}

// NodeURL returns the node to talk to on n: the value of the network's node
// env var when it is set, otherwise the first default node by name.
func NodeURL(n Network) (string, error) {
	if custom := strings.TrimSpace(os.Getenv(n.GetNodeVariableName())); custom != "" {
		return custom, nil
	}
	nodes := n.GetDefaultNodes()
	names := make([]string, 0, len(nodes))
	for name := range nodes {
		names = append(names, name)
	}
	if len(names) == 0 {
		return "", fmt.Errorf("network %s has no default node, set %s", n.GetName(), n.GetNodeVariableName())
	}
	sort.Strings(names)
	return nodes[names[0]], nil
}

// Label is the human readable name of a network id, used in logs.
func Label(id uint64) string {
	n, err := GetNetworkByID(id)
	if err != nil {
		return fmt.Sprintf("network-%d", id)
	}
	return n.GetName()
}
