package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	gwcommon "github.com/tranvictor/electiongw/common"
)

var ErrReverted = errors.New("transaction reverted")

type ReceiptReader interface {
	TransactionReceipt(ctx context.Context, hash common.Hash) (*types.Receipt, error)
}

// TxMonitor polls a node until a tx is mined.
type TxMonitor struct {
	reader   ReceiptReader
	interval time.Duration
	timeout  time.Duration
}

// NewTxMonitor returns a monitor polling every interval. A positive timeout
// bounds each wait on top of the caller's context.
func NewTxMonitor(r ReceiptReader, interval, timeout time.Duration) *TxMonitor {
	if interval <= 0 {
		interval = 500 * time.Millisecond
	}
	return &TxMonitor{reader: r, interval: interval, timeout: timeout}
}

func (self *TxMonitor) check(ctx context.Context, hash common.Hash) gwcommon.TxInfo {
	receipt, err := self.reader.TransactionReceipt(ctx, hash)
	if err != nil {
		return gwcommon.TxInfo{Status: gwcommon.TxStatusError, Hash: hash}
	}
	return gwcommon.TxInfoFromReceipt(hash, receipt)
}

// BlockingWait returns once the tx is mined. A reverted tx is reported as
// ErrReverted along with its info. Transient node errors are polled through.
func (self *TxMonitor) BlockingWait(ctx context.Context, hash common.Hash) (gwcommon.TxInfo, error) {
	if self.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, self.timeout)
		defer cancel()
	}
	ticker := time.NewTicker(self.interval)
	defer ticker.Stop()
	for {
		info := self.check(ctx, hash)
		switch info.Status {
		case gwcommon.TxStatusDone:
			return info, nil
		case gwcommon.TxStatusReverted:
			return info, fmt.Errorf("%s: %w", hash.Hex(), ErrReverted)
		}
		select {
		case <-ctx.Done():
			return info, fmt.Errorf("stopped waiting for %s: %w", hash.Hex(), ctx.Err())
		case <-ticker.C:
		}
	}
}
