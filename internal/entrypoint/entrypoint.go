package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/mrlokans/highlights-export/internal/config"
	http_controllers "github.com/mrlokans/highlights-export/internal/http"
	"github.com/mrlokans/highlights-export/internal/importers"
	"github.com/mrlokans/highlights-export/internal/logger"
)

// Serve listens on the configured address and serves handler until ctx is
// cancelled or the process receives SIGINT or SIGTERM.
func Serve(ctx context.Context, handler http.Handler, cfg *config.Config, log logger.Logger) error {
	ln, err := net.Listen("tcp", cfg.HTTP.Addr())
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	// kill (no param) default send syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second
	return ServeListener(ctx, ln, handler, timeout, log)
}

// ServeListener serves handler on ln until ctx is done, then shuts the
// server down, waiting at most timeout for in-flight requests.
func ServeListener(ctx context.Context, ln net.Listener, handler http.Handler, timeout time.Duration, log logger.Logger) error {
	srv := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", ln.Addr().String())
		// service connections
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down server", "timeout", timeout)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	log.Info("server exiting")
	return nil
}

// Run builds the export pipeline and HTTP router and serves them.
func Run(ctx context.Context, cfg *config.Config, version string, log logger.Logger) error {
	log.Info("starting highlights-export", "version", version)

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Pipeline:       importers.NewPipeline(log),
		Logger:         log,
		Version:        version,
		MaxUploadBytes: cfg.HTTP.MaxUploadBytes(),
	})

	return Serve(ctx, router, cfg, log)
}
