// Package election forwards validated requests to the ElectionSystem
// contract and classifies every failure for the HTTP envelope.
package election

import (
	"context"
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/tranvictor/electiongw/ledger"
	"github.com/tranvictor/electiongw/normalize"
)

// TxResult is the outcome of an accepted write.
type TxResult struct {
	Message     string
	Transaction common.Hash
}

type Winner struct {
	ID        *big.Int `json:"id"`
	VoteCount *big.Int `json:"voteCount"`
	Name      string   `json:"name"`
}

type Service struct {
	binding  *ledger.Binding
	gasLimit uint64
	logger   *zap.Logger
}

type ServiceOption func(*Service)

func WithGasLimit(gas uint64) ServiceOption {
	return func(s *Service) {
		if gas > 0 {
			s.gasLimit = gas
		}
	}
}

func WithLogger(l *zap.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = l
	}
}

func NewService(b *ledger.Binding, opts ...ServiceOption) *Service {
	s := &Service{
		binding:  b,
		gasLimit: ledger.DefaultGasLimit,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) contract(ctx context.Context) (*ledger.Contract, error) {
	c, err := s.binding.Ensure(ctx)
	if err != nil {
		return nil, initializationError(err)
	}
	return c, nil
}

func (s *Service) send(ctx context.Context, success, failure, method string, args ...any) (TxResult, error) {
	c, err := s.contract(ctx)
	if err != nil {
		return TxResult{}, err
	}
	from, err := NewAccountSelector(c).Select(ctx)
	if err != nil {
		return TxResult{}, err
	}
	hash, err := c.Send(ctx, ledger.SendOpts{From: from, GasLimit: s.gasLimit}, method, args...)
	if err != nil {
		e := writeError(failure, err)
		if hash != (common.Hash{}) {
			e.Details = []string{"transaction " + hash.Hex()}
		}
		return TxResult{}, e
	}
	s.logger.Info("transaction submitted",
		zap.String("method", method),
		zap.String("from", from.Hex()),
		zap.String("tx", hash.Hex()),
	)
	return TxResult{Message: success, Transaction: hash}, nil
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (TxResult, error) {
	if err := in.Validate(); err != nil {
		return TxResult{}, err
	}
	return s.send(ctx, "User registered successfully", "Failed to register user.", "registerUser",
		in.Name, in.DateOfBirth, in.ParentName, in.Email, in.MobileNo, in.Password, in.CnicNumber)
}

func (s *Service) Login(ctx context.Context, in LoginInput) (TxResult, error) {
	if err := in.Validate(); err != nil {
		return TxResult{}, err
	}
	return s.send(ctx, "Login successful", "Failed to log in.", "login", in.Email, in.Password)
}

func (s *Service) Logout(ctx context.Context, in LogoutInput) (TxResult, error) {
	if err := in.Validate(); err != nil {
		return TxResult{}, err
	}
	return s.send(ctx, "Logout successful", "Failed to log out.", "logout", in.CnicNumber)
}

func (s *Service) AddCandidate(ctx context.Context, in AddCandidateInput) (TxResult, error) {
	if err := in.Validate(); err != nil {
		return TxResult{}, err
	}
	return s.send(ctx, "Candidate added successfully", "Failed to add candidate.", "addCandidate", in.Name)
}

func (s *Service) Vote(ctx context.Context, in VoteInput) (TxResult, error) {
	if err := in.Validate(); err != nil {
		return TxResult{}, err
	}
	return s.send(ctx, "Vote cast successfully", "Failed to cast vote. Please try again later.", "vote", in.CandidateName)
}

// UserDetailsByEmail returns the user record keyed by the contract's output
// names, in declaration order. Unnamed outputs are keyed by position.
func (s *Service) UserDetailsByEmail(ctx context.Context, email string) (*normalize.Record, error) {
	if strings.TrimSpace(email) == "" {
		return nil, validationError("Email is required.", "email")
	}
	c, err := s.contract(ctx)
	if err != nil {
		return nil, err
	}
	const method = "getUserDetailsByEmail"
	out, err := c.Call(ctx, method, email)
	if err != nil {
		return nil, readError("Failed to fetch user details", err)
	}
	outputs := c.Outputs(method)
	record := normalize.NewRecord()
	for i, v := range out {
		key := strconv.Itoa(i)
		if i < len(outputs) && outputs[i].Name != "" {
			key = outputs[i].Name
		}
		record.Set(key, normalize.Value(v))
	}
	return record, nil
}

// Results reshapes the positional getResults tuple into a Winner.
func (s *Service) Results(ctx context.Context) (Winner, error) {
	c, err := s.contract(ctx)
	if err != nil {
		return Winner{}, err
	}
	out, err := c.Call(ctx, "getResults")
	if err != nil {
		return Winner{}, readError("Failed to fetch election results", err)
	}
	if len(out) != 3 {
		return Winner{}, readError("Failed to fetch election results", fmt.Errorf("getResults returned %d values", len(out)))
	}
	id, ok1 := out[0].(*big.Int)
	votes, ok2 := out[1].(*big.Int)
	name, ok3 := out[2].(string)
	if !ok1 || !ok2 || !ok3 {
		return Winner{}, readError("Failed to fetch election results",
			fmt.Errorf("getResults returned unexpected types %T, %T, %T", out[0], out[1], out[2]))
	}
	return Winner{ID: id, VoteCount: votes, Name: name}, nil
}

// ParseCandidateID accepts a positive decimal integer.
func ParseCandidateID(raw string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id < 1 {
		return 0, validationError("Candidate id must be a positive integer.", "id")
	}
	return id, nil
}

func (s *Service) Candidate(ctx context.Context, rawID string) (Candidate, error) {
	id, err := ParseCandidateID(rawID)
	if err != nil {
		return Candidate{}, err
	}
	c, err := s.contract(ctx)
	if err != nil {
		return Candidate{}, err
	}
	candidate, err := NewCandidateLister(c).Get(ctx, id)
	if err != nil {
		return Candidate{}, candidateReadError("An error occurred while fetching candidate details", id, err)
	}
	return candidate, nil
}

func (s *Service) Candidates(ctx context.Context) ([]Candidate, error) {
	c, err := s.contract(ctx)
	if err != nil {
		return nil, err
	}
	return NewCandidateLister(c).List(ctx)
}

// Accounts lists the signer accounts in selection order.
func (s *Service) Accounts(ctx context.Context) ([]common.Address, error) {
	c, err := s.contract(ctx)
	if err != nil {
		return nil, err
	}
	accounts, err := c.Accounts(ctx)
	if err != nil {
		return nil, readError("Failed to fetch accounts", err)
	}
	return accounts, nil
}

// Ready initializes the contract binding without calling the contract.
func (s *Service) Ready(ctx context.Context) error {
	_, err := s.contract(ctx)
	return err
}
