package election

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

type AccountLister interface {
	Accounts(ctx context.Context) ([]common.Address, error)
}

// AccountSelector picks the signer of a write: the first account the node
// (or the local signer) offers. Nothing is pinned between requests.
type AccountSelector struct {
	source AccountLister
}

func NewAccountSelector(source AccountLister) *AccountSelector {
	return &AccountSelector{source: source}
}

func (s *AccountSelector) Select(ctx context.Context) (common.Address, error) {
	accounts, err := s.source.Accounts(ctx)
	if err != nil {
		return common.Address{}, readError("Failed to fetch accounts", err)
	}
	if len(accounts) == 0 {
		return common.Address{}, &Error{Kind: NoAccountsError, Message: "No accounts available."}
	}
	return accounts[0], nil
}
