package election

import (
	"context"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

type Candidate struct {
	ID        int64          `json:"id"`
	Address   common.Address `json:"address"`
	VoteCount *big.Int       `json:"voteCount"`
	Name      string         `json:"name"`
}

// CandidateReader runs read only contract methods.
type CandidateReader interface {
	Call(ctx context.Context, method string, args ...any) ([]any, error)
}

// CandidateLister walks the contract's 1 based candidate index.
type CandidateLister struct {
	reader CandidateReader
}

func NewCandidateLister(r CandidateReader) *CandidateLister {
	return &CandidateLister{reader: r}
}

// Total returns getTotalCandidates.
func (l *CandidateLister) Total(ctx context.Context) (int64, error) {
	out, err := l.reader.Call(ctx, "getTotalCandidates")
	if err != nil {
		return 0, err
	}
	if len(out) != 1 {
		return 0, fmt.Errorf("getTotalCandidates returned %d values", len(out))
	}
	total, ok := out[0].(*big.Int)
	if !ok || total == nil || !total.IsInt64() || total.Sign() < 0 {
		return 0, fmt.Errorf("getTotalCandidates returned an unusable count %v", out[0])
	}
	return total.Int64(), nil
}

// Get reads candidate id.
func (l *CandidateLister) Get(ctx context.Context, id int64) (Candidate, error) {
	out, err := l.reader.Call(ctx, "getCandidate", big.NewInt(id))
	if err != nil {
		return Candidate{}, err
	}
	if len(out) != 3 {
		return Candidate{}, fmt.Errorf("getCandidate returned %d values", len(out))
	}
	address, ok1 := out[0].(common.Address)
	voteCount, ok2 := out[1].(*big.Int)
	name, ok3 := out[2].(string)
	if !ok1 || !ok2 || !ok3 {
		return Candidate{}, fmt.Errorf("getCandidate returned unexpected types %T, %T, %T", out[0], out[1], out[2])
	}
	return Candidate{ID: id, Address: address, VoteCount: voteCount, Name: name}, nil
}

// List reads every candidate, one call at a time in ascending id order.
// The first failing read aborts the scan and nothing read so far is
// returned.
func (l *CandidateLister) List(ctx context.Context) ([]Candidate, error) {
	total, err := l.Total(ctx)
	if err != nil {
		return nil, readError("An error occurred while fetching candidates", err)
	}
	candidates := make([]Candidate, 0, min(total, 1024))
	for id := int64(1); id <= total; id++ {
		if err := ctx.Err(); err != nil {
			return nil, candidateReadError("An error occurred while fetching candidates", id, err)
		}
		c, err := l.Get(ctx, id)
		if err != nil {
			return nil, candidateReadError("An error occurred while fetching candidates", id, err)
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

func candidateReadError(message string, id int64, err error) *Error {
	return &Error{
		Kind:    UpstreamReadError,
		Message: message,
		Details: []string{fmt.Sprintf("candidate %d", id)},
		Index:   id,
		Err:     err,
	}
}
