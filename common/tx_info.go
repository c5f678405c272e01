package common

import (
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

const (
	TxStatusPending  = "pending"
	TxStatusDone     = "done"
	TxStatusReverted = "reverted"
	TxStatusError    = "error"
)

type TxInfo struct {
	Status  string
	Hash    common.Hash
	Receipt *types.Receipt
}

// TxInfoFromReceipt classifies a receipt. A nil receipt means the tx is not
// mined yet.
func TxInfoFromReceipt(hash common.Hash, receipt *types.Receipt) TxInfo {
	if receipt == nil {
		return TxInfo{Status: TxStatusPending, Hash: hash}
	}
	// pre-byzantium receipts carry a post state root instead of a status
	// and are considered done
	if len(receipt.PostState) == len(common.Hash{}) || receipt.Status == types.ReceiptStatusSuccessful {
		return TxInfo{Status: TxStatusDone, Hash: hash, Receipt: receipt}
	}
	return TxInfo{Status: TxStatusReverted, Hash: hash, Receipt: receipt}
}
