package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	derivhttp "github.com/aretw0/deriv/pkg/adapters/http"
	"github.com/aretw0/deriv/pkg/adapters/mcp"
	"github.com/aretw0/deriv/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// NewHTTPHandler builds the JSON API with its own metrics registry.
func NewHTTPHandler(env *Env) (http.Handler, func() error, error) {
	store, closeStore, err := env.Store()
	if err != nil {
		return nil, nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := observability.NewMetrics(reg)

	handler, err := derivhttp.NewHandler(
		NewEngine(env, store, metrics.Hooks()),
		derivhttp.WithGatherer(reg),
		derivhttp.WithLogger(env.Logger),
	)
	if err != nil {
		_ = closeStore()
		return nil, nil, err
	}
	return handler, closeStore, nil
}

// Serve runs the JSON API on port until ctx is done.
func Serve(ctx context.Context, env *Env, port int) error {
	handler, closeStore, err := NewHTTPHandler(env)
	if err != nil {
		return err
	}
	defer closeStore()

	addr := fmt.Sprintf(":%d", port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		env.Logger.Info("HTTP Server listening", "address", addr)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		env.Logger.Info("Shutdown signal received, shutting down HTTP server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

// ServeMCP runs the MCP server over the configured transport.
func ServeMCP(ctx context.Context, env *Env, transport string, port int) error {
	store, closeStore, err := env.Store()
	if err != nil {
		return err
	}
	defer closeStore()

	s := mcp.NewServer(NewEngine(env, store), env.Logger)
	switch transport {
	case "stdio":
		return s.ServeStdio()
	case "sse":
		return s.ServeSSE(ctx, port)
	}
	return fmt.Errorf("unknown mcp transport %q", transport)
}
