package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/equilibra/eqboard/internal/app"
	"github.com/equilibra/eqboard/internal/infra/fakeapi"
)

// shutdownTimeout bounds how long in-flight requests may finish on exit.
const shutdownTimeout = 5 * time.Second

// newDevServerCommand creates the dev-server command.
func newDevServerCommand(c *app.Container) *cobra.Command {
	var opts struct {
		Addr    string
		Latency time.Duration
		Seed    bool
	}

	cmd := &cobra.Command{
		Use:   "dev-server",
		Short: "Run an in-memory board backend",
		Long: `Run an in-memory implementation of the board backend for local
development. Data is lost when the server stops.

Identifiers are 64-bit, so clients must keep them as strings. Buckets
that still hold tasks cannot be deleted. --latency delays every response,
which makes optimistic updates visible.`,
		Example: `  # Serve a demo project on :8000
  eqboard dev-server

  # Slow responses, empty backend
  eqboard dev-server --latency 800ms --seed=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			serverOpts := []fakeapi.Option{fakeapi.WithLatency(opts.Latency)}
			if c != nil {
				serverOpts = append(serverOpts, fakeapi.WithLogger(c.Logger))
			}
			backend := fakeapi.New(serverOpts...)

			w := cmd.OutOrStdout()
			if opts.Seed {
				projectID := backend.Seed()
				_, _ = fmt.Fprintf(w, "Seeded demo project %s\n", projectID)
			}

			ln, err := net.Listen("tcp", opts.Addr)
			if err != nil {
				return fmt.Errorf("listen on %s: %w", opts.Addr, err)
			}
			srv := &http.Server{
				Handler:           backend,
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Serve(ln)
			}()
			_, _ = fmt.Fprintf(w, "Listening on http://%s (Ctrl+C to stop)\n", ln.Addr())

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("serve: %w", err)
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			_, _ = fmt.Fprintln(w, "Stopped")
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.Addr, "addr", ":8000", "Listen address")
	cmd.Flags().DurationVar(&opts.Latency, "latency", 0, "Delay added to every response")
	cmd.Flags().BoolVar(&opts.Seed, "seed", true, "Create a demo project on start")

	return cmd
}
