package broadcaster

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"

	gwcommon "github.com/tranvictor/electiongw/common"
)

// Broadcaster takes a signed tx and try to broadcast it to all
// nodes that it manages as fast as possible. The tx counts as
// broadcasted when at least 1 node accepted it.
type Broadcaster struct {
	clients map[string]*rpc.Client
}

func NewBroadcaster(clients map[string]*rpc.Client) *Broadcaster {
	return &Broadcaster{
		clients: clients,
	}
}

func (b *Broadcaster) GetNodes() map[string]*rpc.Client {
	return b.clients
}

func (b *Broadcaster) broadcast(
	ctx context.Context,
	name string,
	client *rpc.Client, data string,
) error {
	if err := client.CallContext(ctx, nil, "eth_sendRawTransaction", data); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

func (b *Broadcaster) BroadcastTx(ctx context.Context, tx *types.Transaction) (common.Hash, error) {
	data, err := tx.MarshalBinary()
	if err != nil {
		return common.Hash{}, fmt.Errorf("tx is not valid, couldn't use rlp to encode it: %w", err)
	}
	hash, err := b.Broadcast(ctx, hexutil.Encode(data))
	return common.HexToHash(hash), err
}

// data must be hex encoded of the signed tx
func (b *Broadcaster) Broadcast(ctx context.Context, data string) (string, error) {
	if len(b.clients) == 0 {
		return "", fmt.Errorf("no node to broadcast to")
	}
	parallelTasks := []func() error{}
	for name := range b.clients {
		name, cli := name, b.clients[name]
		parallelTasks = append(parallelTasks, func() error {
			return b.broadcast(ctx, name, cli, data)
		})
	}
	err, numErrs := gwcommon.RunParallel(parallelTasks...)
	if numErrs == len(b.clients) {
		return gwcommon.RawTxToHash(data), fmt.Errorf("couldn't broadcast to any nodes: %w", err)
	}
	return gwcommon.RawTxToHash(data), nil
}
