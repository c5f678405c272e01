package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/tranvictor/electiongw/artifact"
	"github.com/tranvictor/electiongw/util/monitor"
)

// ErrNoDeployment means the artifact has no address for the network the
// node reports and none was configured.
var ErrNoDeployment = errors.New("contract is not deployed on this network")

// Dialer opens the backend a Binding initializes against.
type Dialer func(ctx context.Context) (Backend, error)

type Option func(*Binding)

// WithAddress pins the contract address, skipping the artifact lookup.
func WithAddress(addr common.Address) Option {
	return func(b *Binding) {
		b.address = &addr
	}
}

// WithReceiptWait makes writes wait for their receipt, polling every
// interval for at most timeout.
func WithReceiptWait(interval, timeout time.Duration) Option {
	return func(b *Binding) {
		b.waitReceipt = true
		b.pollInterval = interval
		b.receiptTimeout = timeout
	}
}

func WithObserver(o Observer) Option {
	return func(b *Binding) {
		b.observer = o
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(b *Binding) {
		b.logger = l
	}
}

// Binding owns the process wide contract handle. It is initialized on first
// use, at most once at a time: concurrent first callers share one attempt.
// A successful handle is kept for the life of the Binding. A failed attempt
// is not kept, so the next caller tries again.
type Binding struct {
	dial     Dialer
	artifact *artifact.Artifact
	address  *common.Address

	waitReceipt    bool
	pollInterval   time.Duration
	receiptTimeout time.Duration

	observer Observer
	logger   *zap.Logger

	group    singleflight.Group
	contract atomic.Pointer[Contract]
}

func NewBinding(dial Dialer, art *artifact.Artifact, opts ...Option) *Binding {
	b := &Binding{
		dial:     dial,
		artifact: art,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Ensure returns the contract handle, initializing it if needed. A caller
// whose ctx ends while waiting gets ctx.Err(); the shared attempt keeps
// going for the others.
func (b *Binding) Ensure(ctx context.Context) (*Contract, error) {
	if c := b.contract.Load(); c != nil {
		return c, nil
	}
	ch := b.group.DoChan("init", func() (any, error) {
		if c := b.contract.Load(); c != nil {
			return c, nil
		}
		c, err := b.initialize(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		b.contract.Store(c)
		return c, nil
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Contract), nil
	}
}

// Initialized reports whether a handle is cached.
func (b *Binding) Initialized() bool {
	return b.contract.Load() != nil
}

func (b *Binding) initialize(ctx context.Context) (c *Contract, err error) {
	start := time.Now()
	defer func() {
		if b.observer != nil {
			b.observer("init", "", err, time.Since(start))
		}
	}()

	backend, err := b.dial(ctx)
	if err != nil {
		b.logger.Error("couldn't dial ledger node", zap.Error(err))
		return nil, fmt.Errorf("couldn't dial ledger node: %w", err)
	}
	networkID, err := backend.NetworkID(ctx)
	if err != nil {
		b.logger.Error("couldn't resolve network id", zap.Error(err))
		return nil, fmt.Errorf("couldn't resolve network id: %w", err)
	}

	var address common.Address
	if b.address != nil {
		address = *b.address
	} else {
		var found bool
		address, found = b.artifact.Deployment(networkID.String())
		if !found {
			b.logger.Error("no deployment for network",
				zap.String("contract", b.artifact.ContractName),
				zap.String("network_id", networkID.String()),
				zap.String("hint", "configure the contract address or use an artifact migrated to this network"),
			)
			return nil, fmt.Errorf("%w: %s on network %s", ErrNoDeployment, b.artifact.ContractName, networkID)
		}
	}

	c = &Contract{
		NetworkID: networkID,
		Address:   address,
		ABI:       b.artifact.ABI(),
		backend:   backend,
		observer:  b.observer,
	}
	if b.waitReceipt {
		c.monitor = monitor.NewTxMonitor(backend, b.pollInterval, b.receiptTimeout)
	}
	b.logger.Info("contract binding initialized",
		zap.String("contract", b.artifact.ContractName),
		zap.String("network_id", networkID.String()),
		zap.String("address", address.Hex()),
	)
	return c, nil
}
