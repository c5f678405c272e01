package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetFlags(t *testing.T) {
	t.Cleanup(func() {
		Network, NodeURL, ContractAddress, Listen = "", "", "", ""
		GasLimit = 0
		DontWaitToBeMined = false
	})
}

func TestLoadLayers(t *testing.T) {
	resetFlags(t)
	path := filepath.Join(t.TempDir(), "electiongw.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  listen: ":7000"
  rateLimit:
    rps: 5
    burst: 10
ledger:
  network: localhost
  callTimeout: 5s
  gasLimit: 500000
log:
  format: console
`), 0o600))

	t.Setenv("PORT", "8080")
	t.Setenv("ELECTIONGW_CONTRACT_ADDRESS", "0xBEE7E421ff2B3E61260a8f2bA3DA360faC7B132E")
	GasLimit = 900000
	DontWaitToBeMined = true

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, "/api", cfg.Server.Prefix)
	assert.Equal(t, 5.0, cfg.Server.RateLimit.RPS)
	assert.Equal(t, 10, cfg.Server.RateLimit.Burst)
	assert.Equal(t, "localhost", cfg.Ledger.Network)
	assert.Equal(t, 5*time.Second, cfg.Ledger.CallTimeout)
	assert.Equal(t, 2*time.Minute, cfg.Ledger.ReceiptTimeout)
	assert.Equal(t, uint64(900000), cfg.Ledger.GasLimit)
	assert.False(t, cfg.Ledger.WaitReceipt)
	assert.Equal(t, "0xBEE7E421ff2B3E61260a8f2bA3DA360faC7B132E", cfg.Ledger.ContractAddress)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	resetFlags(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsBadInput(t *testing.T) {
	resetFlags(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("ledger:\n  contractAddress: nope\n"), 0o600))
	_, err = Load(path)
	assert.ErrorContains(t, err, "contractAddress")

	t.Setenv("ELECTIONGW_RATE_LIMIT_RPS", "fast")
	_, err = Load("")
	assert.ErrorContains(t, err, "ELECTIONGW_RATE_LIMIT_RPS")
}
