package account

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

type KeySigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

func (self *KeySigner) SignTx(tx *types.Transaction, chainId *big.Int) (*types.Transaction, error) {
	if chainId == nil {
		return nil, fmt.Errorf("chain id is required to sign")
	}
	opts, err := bind.NewKeyedTransactorWithChainID(self.key, chainId)
	if err != nil {
		return nil, err
	}
	return opts.Signer(self.address, tx)
}

func NewKeySigner(key *ecdsa.PrivateKey) *KeySigner {
	return &KeySigner{key, crypto.PubkeyToAddress(key.PublicKey)}
}
