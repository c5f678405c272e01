// Package api serves the election gateway over HTTP/JSON.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/tranvictor/electiongw/config"
)

type Server struct {
	httpServer      *http.Server
	service         Service
	logger          *zap.Logger
	metrics         *Metrics
	limiter         *clientLimiter
	shutdownTimeout time.Duration
}

// NewServer wires the routes under cfg.Prefix. metrics may be nil, in which
// case /metrics is not served.
func NewServer(cfg config.ServerConfig, svc Service, logger *zap.Logger, metrics *Metrics) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		service:         svc,
		logger:          logger,
		metrics:         metrics,
		limiter:         newClientLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, 0),
		shutdownTimeout: cfg.ShutdownTimeout,
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = 5 * time.Second
	}

	prefix := strings.TrimSuffix(cfg.Prefix, "/")
	mux := http.NewServeMux()
	mux.HandleFunc("POST "+prefix+"/register", write(s, svc.Register))
	mux.HandleFunc("POST "+prefix+"/login", write(s, svc.Login))
	mux.HandleFunc("POST "+prefix+"/logout", write(s, svc.Logout))
	mux.HandleFunc("GET "+prefix+"/getUserDetailsByEmail", s.handleUserDetails)
	mux.HandleFunc("POST "+prefix+"/candidates", write(s, svc.AddCandidate))
	mux.HandleFunc("POST "+prefix+"/vote", write(s, svc.Vote))
	mux.HandleFunc("GET "+prefix+"/results", s.handleResults)
	mux.HandleFunc("GET "+prefix+"/candidate/{id}", s.handleCandidate)
	mux.HandleFunc("GET "+prefix+"/candidates", s.handleCandidates)
	mux.HandleFunc("GET /healthz", handleHealth)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", RequestIDHeader},
		ExposedHeaders: []string{RequestIDHeader},
	})

	var handler http.Handler = mux
	handler = s.withRateLimit(handler)
	handler = c.Handler(handler)
	handler = s.withObservability(handler)
	handler = withRequestID(handler)

	s.httpServer = &http.Server{
		Addr:              cfg.Listen,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Run serves until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return nil
	default:
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", s.httpServer.Addr))
		err := s.httpServer.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
			return
		}
		errCh <- err
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}
