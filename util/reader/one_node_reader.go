package reader

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

const TIMEOUT time.Duration = 30 * time.Second

// OneNodeReader talks to a single JSON-RPC node. The connection is opened
// on first use. Every call is bounded by the reader's timeout; a zero
// timeout leaves calls bounded only by the caller's context.
type OneNodeReader struct {
	nodeName  string
	nodeURL   string
	timeout   time.Duration
	client    *rpc.Client
	ethClient *ethclient.Client
	mu        sync.Mutex
}

func NewOneNodeReader(name, url string, timeout time.Duration) *OneNodeReader {
	return &OneNodeReader{
		nodeName: name,
		nodeURL:  url,
		timeout:  timeout,
	}
}

func (onr *OneNodeReader) NodeName() string {
	return onr.nodeName
}

func (onr *OneNodeReader) NodeURL() string {
	return onr.nodeURL
}

func (onr *OneNodeReader) initConnection(ctx context.Context) error {
	onr.mu.Lock()
	defer onr.mu.Unlock()
	if onr.client != nil {
		return nil
	}
	client, err := rpc.DialContext(ctx, onr.NodeURL())
	if err != nil {
		return fmt.Errorf("couldn't connect to %s: %w", onr.nodeName, err)
	}
	onr.client = client
	onr.ethClient = ethclient.NewClient(onr.client)
	return nil
}

func (onr *OneNodeReader) Client(ctx context.Context) (*rpc.Client, error) {
	if err := onr.initConnection(ctx); err != nil {
		return nil, err
	}
	return onr.client, nil
}

func (onr *OneNodeReader) EthClient(ctx context.Context) (*ethclient.Client, error) {
	if err := onr.initConnection(ctx); err != nil {
		return nil, err
	}
	return onr.ethClient, nil
}

func (onr *OneNodeReader) Close() {
	onr.mu.Lock()
	defer onr.mu.Unlock()
	if onr.client != nil {
		onr.client.Close()
		onr.client = nil
		onr.ethClient = nil
	}
}

func (onr *OneNodeReader) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if onr.timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, onr.timeout)
}

// NetworkID returns the node's net_version.
func (onr *OneNodeReader) NetworkID(ctx context.Context) (*big.Int, error) {
	ethcli, err := onr.EthClient(ctx)
	if err != nil {
		return nil, err
	}
	timeout, cancel := onr.withTimeout(ctx)
	defer cancel()
	return ethcli.NetworkID(timeout)
}

func (onr *OneNodeReader) ChainID(ctx context.Context) (*big.Int, error) {
	ethcli, err := onr.EthClient(ctx)
	if err != nil {
		return nil, err
	}
	timeout, cancel := onr.withTimeout(ctx)
	defer cancel()
	return ethcli.ChainID(timeout)
}

// Accounts returns the accounts the node manages (eth_accounts), in the
// node's order.
func (onr *OneNodeReader) Accounts(ctx context.Context) ([]common.Address, error) {
	cli, err := onr.Client(ctx)
	if err != nil {
		return nil, err
	}
	timeout, cancel := onr.withTimeout(ctx)
	defer cancel()
	var accounts []common.Address
	if err := cli.CallContext(timeout, &accounts, "eth_accounts"); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (onr *OneNodeReader) CallContract(ctx context.Context, from, to common.Address, data []byte) ([]byte, error) {
	ethcli, err := onr.EthClient(ctx)
	if err != nil {
		return nil, err
	}
	timeout, cancel := onr.withTimeout(ctx)
	defer cancel()
	return ethcli.CallContract(timeout, ethereum.CallMsg{
		From:     from,
		To:       &to,
		Gas:      0,
		GasPrice: nil,
		Value:    nil,
		Data:     data,
	}, nil)
}

type sendTxArgs struct {
	From common.Address `json:"from"`
	To   common.Address `json:"to"`
	Gas  hexutil.Uint64 `json:"gas"`
	Data hexutil.Bytes  `json:"data"`
}

// SendTransaction asks the node to sign and submit a tx from one of its own
// accounts (eth_sendTransaction).
func (onr *OneNodeReader) SendTransaction(ctx context.Context, from, to common.Address, gas uint64, data []byte) (common.Hash, error) {
	cli, err := onr.Client(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	timeout, cancel := onr.withTimeout(ctx)
	defer cancel()
	var hash common.Hash
	err = cli.CallContext(timeout, &hash, "eth_sendTransaction", sendTxArgs{
		From: from,
		To:   to,
		Gas:  hexutil.Uint64(gas),
		Data: data,
	})
	return hash, err
}

// TransactionReceipt returns a nil receipt without error while the tx is
// not mined yet.
func (onr *OneNodeReader) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	ethcli, err := onr.EthClient(ctx)
	if err != nil {
		return nil, err
	}
	timeout, cancel := onr.withTimeout(ctx)
	defer cancel()
	receipt, err := ethcli.TransactionReceipt(timeout, hash)
	if errors.Is(err, ethereum.NotFound) {
		return nil, nil
	}
	return receipt, err
}

func (onr *OneNodeReader) PendingNonce(ctx context.Context, address common.Address) (uint64, error) {
	ethcli, err := onr.EthClient(ctx)
	if err != nil {
		return 0, err
	}
	timeout, cancel := onr.withTimeout(ctx)
	defer cancel()
	return ethcli.PendingNonceAt(timeout, address)
}

func (onr *OneNodeReader) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	ethcli, err := onr.EthClient(ctx)
	if err != nil {
		return nil, err
	}
	timeout, cancel := onr.withTimeout(ctx)
	defer cancel()
	return ethcli.SuggestGasPrice(timeout)
}

func (onr *OneNodeReader) CurrentBlock(ctx context.Context) (uint64, error) {
	ethcli, err := onr.EthClient(ctx)
	if err != nil {
		return 0, err
	}
	timeout, cancel := onr.withTimeout(ctx)
	defer cancel()
	header, err := ethcli.HeaderByNumber(timeout, nil)
	if err != nil {
		return 0, err
	}
	return header.Number.Uint64(), nil
}
