package ledger

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"

	"github.com/tranvictor/electiongw/util/monitor"
)

// DefaultGasLimit is the gas ceiling of every write unless configured.
const DefaultGasLimit uint64 = 3000000

type SendOpts struct {
	From     common.Address
	GasLimit uint64
}

// Contract is an initialized handle to the deployed election contract.
type Contract struct {
	NetworkID *big.Int
	Address   common.Address
	ABI       *abi.ABI

	backend  Backend
	monitor  *monitor.TxMonitor
	observer Observer
}

func (c *Contract) observe(op, method string, err error, start time.Time) {
	if c.observer != nil {
		c.observer(op, method, err, time.Since(start))
	}
}

// Outputs returns the declared outputs of method, nil if it is unknown.
func (c *Contract) Outputs(method string) abi.Arguments {
	m, found := c.ABI.Methods[method]
	if !found {
		return nil
	}
	return m.Outputs
}

// Call runs a read only method and returns its decoded outputs in
// declaration order.
func (c *Contract) Call(ctx context.Context, method string, args ...any) (result []any, err error) {
	start := time.Now()
	defer func() { c.observe("call", method, err, start) }()
	data, err := c.ABI.Pack(method, args...)
	if err != nil {
		return nil, fmt.Errorf("couldn't pack %s: %w", method, err)
	}
	out, err := c.backend.CallContract(ctx, common.Address{}, c.Address, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	result, err = c.ABI.Unpack(method, out)
	if err != nil {
		return nil, fmt.Errorf("couldn't unpack %s: %w", method, err)
	}
	return result, nil
}

// Send submits a state mutating method. When receipt waiting is enabled it
// returns after the transaction is mined and fails if it reverted; the hash
// is returned in both cases once the node accepted the transaction.
func (c *Contract) Send(ctx context.Context, opts SendOpts, method string, args ...any) (hash common.Hash, err error) {
	start := time.Now()
	defer func() { c.observe("send", method, err, start) }()
	data, err := c.ABI.Pack(method, args...)
	if err != nil {
		return common.Hash{}, fmt.Errorf("couldn't pack %s: %w", method, err)
	}
	gas := opts.GasLimit
	if gas == 0 {
		gas = DefaultGasLimit
	}
	hash, err = c.backend.SendTransaction(ctx, opts.From, c.Address, gas, data)
	if err != nil {
		return common.Hash{}, fmt.Errorf("%s: %w", method, err)
	}
	if c.monitor != nil {
		if _, err = c.monitor.BlockingWait(ctx, hash); err != nil {
			return hash, fmt.Errorf("%s: %w", method, err)
		}
	}
	return hash, nil
}

// Accounts lists the accounts able to sign writes, in backend order.
func (c *Contract) Accounts(ctx context.Context) ([]common.Address, error) {
	return c.backend.Accounts(ctx)
}
