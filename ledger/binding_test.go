package ledger_test

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tranvictor/electiongw/artifact"
	"github.com/tranvictor/electiongw/ledger"
	"github.com/tranvictor/electiongw/ledger/ledgertest"
	"github.com/tranvictor/electiongw/util/account"
	"github.com/tranvictor/electiongw/util/monitor"
)

func TestEnsureInitializesOnceUnderConcurrency(t *testing.T) {
	fake := ledgertest.NewBackend()
	var dials atomic.Int32
	release := make(chan struct{})
	slowDial := func(ctx context.Context) (ledger.Backend, error) {
		dials.Add(1)
		<-release
		return fake, nil
	}
	b := ledger.NewBinding(slowDial, artifact.Default(), ledger.WithAddress(ledgertest.ContractAddress))

	const callers = 16
	var wg sync.WaitGroup
	results := make([]*ledger.Contract, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = b.Ensure(context.Background())
		}(i)
	}
	// let every caller reach the shared attempt before it completes
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), dials.Load())
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, results[0], results[i])
	}

	_, err := b.Ensure(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), dials.Load())
	assert.Equal(t, big.NewInt(5777), results[0].NetworkID)
}

func TestEnsureResolvesDeploymentFromArtifact(t *testing.T) {
	art, err := artifact.Parse([]byte(`{
		"contractName": "ElectionSystem",
		"abi": [],
		"networks": {"5777": {"address": "0xBEE7E421ff2B3E61260a8f2bA3DA360faC7B132E"}}
	}`))
	require.NoError(t, err)

	b := ledger.NewBinding(ledgertest.Dialer(ledgertest.NewBackend(), nil), art)
	c, err := b.Ensure(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ledgertest.ContractAddress, c.Address)
}

func TestEnsureFailsWithoutDeploymentAndRetries(t *testing.T) {
	fake := ledgertest.NewBackend()
	var dials atomic.Int32
	b := ledger.NewBinding(ledgertest.Dialer(fake, &dials), artifact.Default())

	_, err := b.Ensure(context.Background())
	assert.ErrorIs(t, err, ledger.ErrNoDeployment)
	assert.False(t, b.Initialized())

	_, err = b.Ensure(context.Background())
	assert.ErrorIs(t, err, ledger.ErrNoDeployment)
	assert.Equal(t, int32(2), dials.Load(), "a failed attempt must not be cached")
}

func TestEnsureReportsNetworkFailure(t *testing.T) {
	fake := ledgertest.NewBackend()
	fake.NetworkErr = errors.New("connection refused")
	var observed []string
	b := ledger.NewBinding(
		ledgertest.Dialer(fake, nil),
		artifact.Default(),
		ledger.WithAddress(ledgertest.ContractAddress),
		ledger.WithObserver(func(op, method string, err error, took time.Duration) {
			if err != nil {
				observed = append(observed, op)
			}
		}),
	)
	_, err := b.Ensure(context.Background())
	assert.ErrorContains(t, err, "connection refused")
	assert.Equal(t, []string{"init"}, observed)
}

func TestContractCallAndSend(t *testing.T) {
	fake := ledgertest.NewBackend()
	fake.Candidates = []ledgertest.Candidate{{Name: "Alice", VoteCount: big.NewInt(4)}}
	b := ledger.NewBinding(
		ledgertest.Dialer(fake, nil),
		artifact.Default(),
		ledger.WithAddress(ledgertest.ContractAddress),
		ledger.WithReceiptWait(time.Millisecond, time.Second),
	)
	c, err := b.Ensure(context.Background())
	require.NoError(t, err)

	out, err := c.Call(context.Background(), "getCandidate", big.NewInt(1))
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "Alice", out[2])
	assert.Equal(t, big.NewInt(4), out[1])

	hash, err := c.Send(context.Background(), ledger.SendOpts{From: ledgertest.DefaultAccount}, "vote", "Alice")
	require.NoError(t, err)
	sent := fake.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, hash, sent[0].Hash)
	assert.Equal(t, ledger.DefaultGasLimit, sent[0].Gas)
	assert.Equal(t, "vote", sent[0].Method)
	assert.Equal(t, []any{"Alice"}, sent[0].Args)

	fake.Revert = true
	_, err = c.Send(context.Background(), ledger.SendOpts{From: ledgertest.DefaultAccount, GasLimit: 100000}, "vote", "Bob")
	assert.ErrorIs(t, err, monitor.ErrReverted)
}

type recordingBroadcaster struct {
	txs []*types.Transaction
}

func (r *recordingBroadcaster) BroadcastTx(ctx context.Context, tx *types.Transaction) (common.Hash, error) {
	r.txs = append(r.txs, tx)
	return tx.Hash(), nil
}

func TestKeyedBackendSignsLocally(t *testing.T) {
	acc, err := account.NewPrivateKeyAccount("ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80")
	require.NoError(t, err)
	fake := ledgertest.NewBackend()
	bc := &recordingBroadcaster{}
	kb := ledger.NewKeyedBackend(fake, acc, bc)

	accounts, err := kb.Accounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []common.Address{acc.Address()}, accounts)

	hash, err := kb.SendTransaction(context.Background(), acc.Address(), ledgertest.ContractAddress, 3000000, []byte{1, 2, 3, 4})
	require.NoError(t, err)
	require.Len(t, bc.txs, 1)
	tx := bc.txs[0]
	assert.Equal(t, hash, tx.Hash())
	assert.Equal(t, uint64(3000000), tx.Gas())
	assert.Equal(t, ledgertest.ContractAddress, *tx.To())
	sender, err := types.Sender(types.LatestSignerForChainID(big.NewInt(1337)), tx)
	require.NoError(t, err)
	assert.Equal(t, acc.Address(), sender)

	_, err = kb.SendTransaction(context.Background(), ledgertest.DefaultAccount, ledgertest.ContractAddress, 3000000, nil)
	assert.Error(t, err)
}
