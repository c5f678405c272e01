package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	gwcommon "github.com/tranvictor/electiongw/common"
	"github.com/tranvictor/electiongw/util/account"
)

type Broadcaster interface {
	BroadcastTx(ctx context.Context, tx *types.Transaction) (common.Hash, error)
}

// KeyedBackend signs writes with a local account and broadcasts the raw
// transaction, for nodes that manage no accounts. Its account list is
// exactly the local account.
type KeyedBackend struct {
	TxNode
	account     *account.Account
	broadcaster Broadcaster

	// serializes nonce allocation and broadcast
	mu sync.Mutex
}

func NewKeyedBackend(node TxNode, acc *account.Account, b Broadcaster) *KeyedBackend {
	return &KeyedBackend{
		TxNode:      node,
		account:     acc,
		broadcaster: b,
	}
}

func (kb *KeyedBackend) Accounts(ctx context.Context) ([]common.Address, error) {
	return []common.Address{kb.account.Address()}, nil
}

func (kb *KeyedBackend) SendTransaction(ctx context.Context, from, to common.Address, gas uint64, data []byte) (common.Hash, error) {
	if from != kb.account.Address() {
		return common.Hash{}, fmt.Errorf("can't sign for %s, only %s is available", from.Hex(), kb.account.AddressHex())
	}
	chainID, err := kb.ChainID(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("couldn't get chain id: %w", err)
	}
	gasPrice, err := kb.SuggestGasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("couldn't get gas price: %w", err)
	}

	kb.mu.Lock()
	defer kb.mu.Unlock()
	nonce, err := kb.PendingNonce(ctx, from)
	if err != nil {
		return common.Hash{}, fmt.Errorf("couldn't get nonce of %s: %w", from.Hex(), err)
	}
	tx := gwcommon.BuildContractCallTx(nonce, to, gas, gasPrice, data)
	signed, err := kb.account.SignTx(tx, chainID)
	if err != nil {
		return common.Hash{}, fmt.Errorf("couldn't sign tx: %w", err)
	}
	return kb.broadcaster.BroadcastTx(ctx, signed)
}
