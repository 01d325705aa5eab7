package network

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const shutdownTimeout = 2 * time.Second

// Serve runs an HTTP server for handler on addr until ctx is done
// The listener is bound before returning so bind errors surface immediately; serving continues in the background
// The returned channel yields the server's terminal error, nil after a clean shutdown
func Serve(ctx context.Context, addr string, handler http.Handler, logger *slog.Logger) (net.Addr, <-chan error, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, nil, err
	}

	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	done := make(chan error, 1)

	go func() {
		err := srv.Serve(ln)
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		done <- err
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("http shutdown", "addr", ln.Addr().String(), "error", err)
		}
	}()

	logger.Info("http listening", "addr", ln.Addr().String())
	return ln.Addr(), done, nil
}

// StreamHandler mounts hub on cfg.Path
func StreamHandler(cfg *Config, hub *Hub) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, hub)
	return mux
}
