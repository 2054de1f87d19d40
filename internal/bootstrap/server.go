package bootstrap

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"hr-portal/internal/config"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func NewHTTPServer(handler http.Handler, cfg config.HTTPConfig) *http.Server {
	return &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
}

// StartHTTPServer serves until ctx is cancelled, then drains in-flight
// requests for up to shutdownTimeout.
func StartHTTPServer(ctx context.Context, server *http.Server, logger *zap.Logger) error {
	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return err
	}
	return Serve(ctx, server, ln, logger)
}

func Serve(ctx context.Context, server *http.Server, ln net.Listener, logger *zap.Logger) error {
	log := logger.Named("bootstrap.http")

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server running", zap.String("addr", ln.Addr().String()))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
		return err
	}
	log.Info("server exited gracefully")
	return nil
}
