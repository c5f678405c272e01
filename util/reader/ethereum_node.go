package reader

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
)

type EthereumNode interface {
	NodeName() string
	NodeURL() string
	Client(ctx context.Context) (*rpc.Client, error)
	NetworkID(ctx context.Context) (*big.Int, error)
	ChainID(ctx context.Context) (*big.Int, error)
	Accounts(ctx context.Context) ([]common.Address, error)
	CallContract(ctx context.Context, from, to common.Address, data []byte) ([]byte, error)
	SendTransaction(ctx context.Context, from, to common.Address, gas uint64, data []byte) (common.Hash, error)
	TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
	PendingNonce(ctx context.Context, address common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	CurrentBlock(ctx context.Context) (uint64, error)
}

var _ EthereumNode = (*OneNodeReader)(nil)
