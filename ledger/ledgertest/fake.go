// Package ledgertest provides an in-memory election contract for tests. It
// decodes calldata with the real ABI and answers with ABI packed outputs, so
// everything above the node boundary runs for real.
package ledgertest

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/tranvictor/electiongw/artifact"
	"github.com/tranvictor/electiongw/ledger"
)

// ContractAddress is where the fake pretends the contract lives.
var ContractAddress = common.HexToAddress("0xBEE7E421ff2B3E61260a8f2bA3DA360faC7B132E")

// DefaultAccount is the first account a fresh backend reports.
var DefaultAccount = common.HexToAddress("0x627306090abaB3A6e1400e9345bC60c78a8BEf57")

type Candidate struct {
	Address   common.Address
	VoteCount *big.Int
	Name      string
}

type Winner struct {
	ID        *big.Int
	VoteCount *big.Int
	Name      string
}

type User struct {
	Name, DateOfBirth, ParentName, Email, MobileNo, CnicNumber string
	IsLoggedIn, HasVoted                                       bool
}

type SentTx struct {
	From   common.Address
	Gas    uint64
	Method string
	Args   []any
	Hash   common.Hash
}

type Backend struct {
	ABI *abi.ABI

	mu          sync.Mutex
	NetID       *big.Int
	ChainIDs    *big.Int
	AccountList []common.Address
	AccountsErr error
	NetworkErr  error
	Candidates  []Candidate
	Winner      Winner
	Users       map[string]User

	// FailCandidate makes getCandidate(FailCandidate) fail
	FailCandidate int64
	SendErr       error
	Revert        bool

	calls          int
	accountCalls   int
	candidateReads []int64
	sent           []SentTx
	receipts       map[common.Hash]*types.Receipt
	nonce          uint64
}

func NewBackend() *Backend {
	return &Backend{
		ABI:         artifact.Default().ABI(),
		NetID:       big.NewInt(5777),
		ChainIDs:    big.NewInt(1337),
		AccountList: []common.Address{DefaultAccount},
		Users:       map[string]User{},
		receipts:    map[common.Hash]*types.Receipt{},
	}
}

// Dialer returns a ledger.Dialer handing out b and counting its invocations.
func Dialer(b ledger.Backend, dials *atomic.Int32) ledger.Dialer {
	return func(ctx context.Context) (ledger.Backend, error) {
		if dials != nil {
			dials.Add(1)
		}
		return b, nil
	}
}

// Calls is the number of contract calls and transactions received.
func (b *Backend) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

func (b *Backend) AccountCalls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.accountCalls
}

// CandidateReads lists the ids passed to getCandidate, in call order.
func (b *Backend) CandidateReads() []int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]int64{}, b.candidateReads...)
}

func (b *Backend) Sent() []SentTx {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]SentTx{}, b.sent...)
}

func (b *Backend) NetworkID(ctx context.Context) (*big.Int, error) {
	if b.NetworkErr != nil {
		return nil, b.NetworkErr
	}
	return new(big.Int).Set(b.NetID), nil
}

func (b *Backend) ChainID(ctx context.Context) (*big.Int, error) {
	return new(big.Int).Set(b.ChainIDs), nil
}

func (b *Backend) Accounts(ctx context.Context) ([]common.Address, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.accountCalls++
	if b.AccountsErr != nil {
		return nil, b.AccountsErr
	}
	return append([]common.Address{}, b.AccountList...), nil
}

func (b *Backend) PendingNonce(ctx context.Context, address common.Address) (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.nonce, nil
}

func (b *Backend) SuggestGasPrice(ctx context.Context) (*big.Int, error) {
	return big.NewInt(20000000000), nil
}

func (b *Backend) decode(data []byte) (*abi.Method, []any, error) {
	if len(data) < 4 {
		return nil, nil, errors.New("calldata too short")
	}
	method, err := b.ABI.MethodById(data[:4])
	if err != nil {
		return nil, nil, err
	}
	args, err := method.Inputs.Unpack(data[4:])
	if err != nil {
		return nil, nil, err
	}
	return method, args, nil
}

func (b *Backend) CallContract(ctx context.Context, from, to common.Address, data []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	method, args, err := b.decode(data)
	if err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	switch method.Name {
	case "getTotalCandidates":
		return method.Outputs.Pack(big.NewInt(int64(len(b.Candidates))))
	case "getCandidate":
		id := args[0].(*big.Int).Int64()
		b.candidateReads = append(b.candidateReads, id)
		if id == b.FailCandidate {
			return nil, fmt.Errorf("execution reverted: candidate %d unreadable", id)
		}
		if id < 1 || id > int64(len(b.Candidates)) {
			return nil, errors.New("execution reverted: Invalid candidate ID")
		}
		c := b.Candidates[id-1]
		return method.Outputs.Pack(c.Address, c.VoteCount, c.Name)
	case "getResults":
		if b.Winner.ID == nil {
			return nil, errors.New("execution reverted: No candidates")
		}
		return method.Outputs.Pack(b.Winner.ID, b.Winner.VoteCount, b.Winner.Name)
	case "getUserDetailsByEmail":
		u, found := b.Users[args[0].(string)]
		if !found {
			return nil, errors.New("execution reverted: User not found")
		}
		return method.Outputs.Pack(u.Name, u.DateOfBirth, u.ParentName, u.Email, u.MobileNo, u.CnicNumber, u.IsLoggedIn, u.HasVoted)
	}
	return nil, fmt.Errorf("%s is not a read method", method.Name)
}

func (b *Backend) SendTransaction(ctx context.Context, from, to common.Address, gas uint64, data []byte) (common.Hash, error) {
	method, args, err := b.decode(data)
	if err != nil {
		return common.Hash{}, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	if b.SendErr != nil {
		return common.Hash{}, b.SendErr
	}
	nonce := make([]byte, 8)
	binary.BigEndian.PutUint64(nonce, b.nonce)
	b.nonce++
	hash := crypto.Keccak256Hash(from.Bytes(), nonce, data)
	status := types.ReceiptStatusSuccessful
	if b.Revert {
		status = types.ReceiptStatusFailed
	}
	b.receipts[hash] = &types.Receipt{Status: status, TxHash: hash, GasUsed: gas / 2}
	b.sent = append(b.sent, SentTx{From: from, Gas: gas, Method: method.Name, Args: args, Hash: hash})
	return hash, nil
}

func (b *Backend) TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	// a missing receipt reads as pending, like an unmined tx on a node
	return b.receipts[hash], nil
}

var _ ledger.TxNode = (*Backend)(nil)
