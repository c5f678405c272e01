package account

import (
	"crypto/ecdsa"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Account is a local signing identity: an address plus the signer that
// holds its key.
type Account struct {
	signer  Signer
	address common.Address
}

func NewAccount(key *ecdsa.PrivateKey) *Account {
	return &Account{
		NewKeySigner(key),
		crypto.PubkeyToAddress(key.PublicKey),
	}
}

func NewKeystoreAccount(file string, password string) (*Account, error) {
	_, key, err := PrivateKeyFromKeystore(file, password)
	if err != nil {
		return nil, err
	}
	return NewAccount(key), nil
}

func NewPrivateKeyAccount(hex string) (*Account, error) {
	_, key, err := PrivateKeyFromHex(hex)
	if err != nil {
		return nil, err
	}
	return NewAccount(key), nil
}

func (self *Account) Address() common.Address {
	return self.address
}

func (self *Account) AddressHex() string {
	return self.address.Hex()
}

func (self *Account) SignTx(tx *types.Transaction, chainId *big.Int) (*types.Transaction, error) {
	signedTx, err := self.signer.SignTx(tx, chainId)
	if err != nil {
		return tx, fmt.Errorf("couldn't sign the tx: %w", err)
	}
	return signedTx, nil
}
