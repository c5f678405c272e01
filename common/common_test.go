package common

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
)

func TestRunParallel(t *testing.T) {
	boom := errors.New("boom")
	err, failed := RunParallel(
		func() error { return nil },
		func() error { return boom },
		func() error { return nil },
	)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, failed)

	err, failed = RunParallel()
	assert.NoError(t, err)
	assert.Zero(t, failed)
}

func TestTxInfoFromReceipt(t *testing.T) {
	hash := common.HexToHash("0x01")
	assert.Equal(t, TxStatusPending, TxInfoFromReceipt(hash, nil).Status)
	assert.Equal(t, TxStatusDone, TxInfoFromReceipt(hash, &types.Receipt{Status: types.ReceiptStatusSuccessful}).Status)
	assert.Equal(t, TxStatusReverted, TxInfoFromReceipt(hash, &types.Receipt{Status: types.ReceiptStatusFailed}).Status)
	assert.Equal(t, TxStatusDone, TxInfoFromReceipt(hash, &types.Receipt{PostState: make([]byte, 32)}).Status)
}

func TestBuildContractCallTx(t *testing.T) {
	tx := BuildContractCallTx(3, common.HexToAddress("0x02"), 50000, nil, []byte{1})
	assert.Equal(t, uint64(3), tx.Nonce())
	assert.Equal(t, uint64(50000), tx.Gas())
	assert.Zero(t, tx.Value().Sign())
	assert.Equal(t, types.LegacyTxType, int(tx.Type()))
}
