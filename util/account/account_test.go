package account_test

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/accounts/keystore"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gwcommon "github.com/tranvictor/electiongw/common"
	"github.com/tranvictor/electiongw/util/account"
)

// well known first ganache/hardhat dev key
const devKey = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

func TestPrivateKeyAccountSignsForChain(t *testing.T) {
	acc, err := account.NewPrivateKeyAccount(devKey)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress("0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"), acc.Address())

	chainID := big.NewInt(1337)
	tx := gwcommon.BuildContractCallTx(
		7,
		common.HexToAddress("0xBEE7E421ff2B3E61260a8f2bA3DA360faC7B132E"),
		3000000,
		big.NewInt(2000000000),
		[]byte{1, 2, 3},
	)
	signed, err := acc.SignTx(tx, chainID)
	require.NoError(t, err)

	sender, err := types.Sender(types.LatestSignerForChainID(chainID), signed)
	require.NoError(t, err)
	assert.Equal(t, acc.Address(), sender)
	assert.Equal(t, uint64(7), signed.Nonce())
}

func TestPrivateKeyFromHexRejectsGarbage(t *testing.T) {
	_, err := account.NewPrivateKeyAccount("")
	assert.Error(t, err)
	_, err = account.NewPrivateKeyAccount("0xzz")
	assert.Error(t, err)
}

func TestKeystoreAccount(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	k := &keystore.Key{
		Id:         uuid.New(),
		Address:    crypto.PubkeyToAddress(key.PublicKey),
		PrivateKey: key,
	}
	data, err := keystore.EncryptKey(k, "secret", keystore.LightScryptN, keystore.LightScryptP)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "key.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))

	acc, err := account.NewKeystoreAccount(path, "secret")
	require.NoError(t, err)
	assert.Equal(t, k.Address, acc.Address())

	_, err = account.NewKeystoreAccount(path, "wrong")
	assert.Error(t, err)
}
