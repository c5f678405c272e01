package broadcaster_test

import (
	"context"
	"errors"
	"math/big"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gwcommon "github.com/tranvictor/electiongw/common"
	"github.com/tranvictor/electiongw/util/broadcaster"
)

type rawTxService struct {
	mu       sync.Mutex
	received []hexutil.Bytes
	reject   bool
}

func (s *rawTxService) SendRawTransaction(data hexutil.Bytes) (common.Hash, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.reject {
		return common.Hash{}, errors.New("nonce too low")
	}
	s.received = append(s.received, data)
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(data); err != nil {
		return common.Hash{}, err
	}
	return tx.Hash(), nil
}

func newNode(t *testing.T, svc *rawTxService) *rpc.Client {
	t.Helper()
	srv := rpc.NewServer()
	require.NoError(t, srv.RegisterName("eth", svc))
	httpSrv := httptest.NewServer(srv)
	t.Cleanup(httpSrv.Close)
	client, err := rpc.DialContext(context.Background(), httpSrv.URL)
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return client
}

func sampleTx() *types.Transaction {
	return gwcommon.BuildContractCallTx(7, common.HexToAddress("0x01"), 21000, big.NewInt(1), []byte{0xde, 0xad})
}

func TestBroadcastTxReachesEveryNode(t *testing.T) {
	a, b := &rawTxService{}, &rawTxService{reject: true}
	bc := broadcaster.NewBroadcaster(map[string]*rpc.Client{
		"a": newNode(t, a),
		"b": newNode(t, b),
	})
	tx := sampleTx()

	hash, err := bc.BroadcastTx(context.Background(), tx)
	require.NoError(t, err, "one accepting node is enough")
	assert.Equal(t, tx.Hash(), hash)
	require.Len(t, a.received, 1)
}

func TestBroadcastTxFailsWhenAllNodesReject(t *testing.T) {
	bc := broadcaster.NewBroadcaster(map[string]*rpc.Client{
		"a": newNode(t, &rawTxService{reject: true}),
	})
	_, err := bc.BroadcastTx(context.Background(), sampleTx())
	assert.ErrorContains(t, err, "nonce too low")

	_, err = broadcaster.NewBroadcaster(nil).BroadcastTx(context.Background(), sampleTx())
	assert.Error(t, err)
}
