package server

import (
	// Go Internal Packages
	"context"
	"fmt"
	"net/http"
	"time"

	// Local Packages
	ingestion "card-ledger/services/ingestion"
	reports "card-ledger/services/reports"

	// External Packages
	"go.uber.org/zap"
)

type Server struct {
	logger         *zap.Logger
	ingestion      *ingestion.Processor
	reports        *reports.Builder
	maxUploadBytes int64
	http           *http.Server
}

type Config struct {
	Port           int
	MaxUploadBytes int64
}

// New builds the HTTP surface over the ingestion processor and the
// report builder.
func New(conf Config, logger *zap.Logger, processor *ingestion.Processor, builder *reports.Builder) *Server {
	s := &Server{
		logger:         logger,
		ingestion:      processor,
		reports:        builder,
		maxUploadBytes: conf.MaxUploadBytes,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /upload", s.handleUpload)
	mux.HandleFunc("GET /accounts/{accountId}", s.handleAccount)
	mux.HandleFunc("GET /accounts/{accountId}/transactions", s.handleAccountTransactions)
	mux.HandleFunc("GET /report", s.handleReport)
	mux.HandleFunc("POST /reset", s.handleReset)

	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", conf.Port),
		Handler:           mux,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       10 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Serve listens until the context is canceled, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.http.ListenAndServe()
	}()

	s.logger.Info("http server listening", zap.String("addr", s.http.Addr))

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("http server shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.http.Shutdown(shutdownCtx)
	}
}
