package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/tranvictor/electiongw/election"
	"github.com/tranvictor/electiongw/normalize"
)

const maxBodyBytes = 1 << 20

// Service is what the handlers need from the election layer.
type Service interface {
	Register(ctx context.Context, in election.RegisterInput) (election.TxResult, error)
	Login(ctx context.Context, in election.LoginInput) (election.TxResult, error)
	Logout(ctx context.Context, in election.LogoutInput) (election.TxResult, error)
	AddCandidate(ctx context.Context, in election.AddCandidateInput) (election.TxResult, error)
	Vote(ctx context.Context, in election.VoteInput) (election.TxResult, error)
	UserDetailsByEmail(ctx context.Context, email string) (*normalize.Record, error)
	Results(ctx context.Context) (election.Winner, error)
	Candidate(ctx context.Context, id string) (election.Candidate, error)
	Candidates(ctx context.Context) ([]election.Candidate, error)
}

var _ Service = (*election.Service)(nil)

var errBodyTooLarge = errors.New("request body too large")

// decodeBody reads a JSON object into dst. An empty body decodes as {} so
// the input validation names the missing fields.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	err := dec.Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return errBodyTooLarge
	}
	return &election.Error{Kind: election.ValidationError, Message: "Invalid JSON body.", Err: err}
}

// write handles one state mutating endpoint.
func write[In any](s *Server, op func(context.Context, In) (election.TxResult, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in In
		if err := decodeBody(w, r, &in); err != nil {
			if errors.Is(err, errBodyTooLarge) {
				writeJSON(w, http.StatusRequestEntityTooLarge, envelope("Request body too large.", nil))
				return
			}
			s.writeError(w, r, err)
			return
		}
		res, err := op(r.Context(), in)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		s.respond(w, r, http.StatusOK, successBody("message", res.Message, "transaction", res.Transaction.Hex()))
	}
}

func (s *Server) handleUserDetails(w http.ResponseWriter, r *http.Request) {
	details, err := s.service.UserDetailsByEmail(r.Context(), r.URL.Query().Get("email"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body := successBody()
	for p := details.Oldest(); p != nil; p = p.Next() {
		body.Set(p.Key, p.Value)
	}
	s.respond(w, r, http.StatusOK, body)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	winner, err := s.service.Results(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, successBody("data", normalize.Fields("winningCandidate", winner)))
}

func (s *Server) handleCandidate(w http.ResponseWriter, r *http.Request) {
	candidate, err := s.service.Candidate(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, normalize.Value(candidate))
}

func (s *Server) handleCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := s.service.Candidates(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.respond(w, r, http.StatusOK, normalize.Value(candidates))
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
