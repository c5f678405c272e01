package ledger

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Backend is the slice of a node the election contract needs. Node managed
// accounts sign transactions submitted through SendTransaction.
type Backend interface {
	NetworkID(ctx context.Context) (*big.Int, error)
	Accounts(ctx context.Context) ([]common.Address, error)
	CallContract(ctx context.Context, from, to common.Address, data []byte) ([]byte, error)
	SendTransaction(ctx context.Context, from, to common.Address, gas uint64, data []byte) (common.Hash, error)
	TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
}

// TxNode is what a locally signing backend needs on top of Backend to build
// raw transactions.
type TxNode interface {
	Backend
	ChainID(ctx context.Context) (*big.Int, error)
	PendingNonce(ctx context.Context, address common.Address) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
}

// Observer is told about every ledger round trip. op is "call", "send" or
// "init"; method is empty for "init".
type Observer func(op, method string, err error, took time.Duration)
