package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/geopark-ops/guidelog/internal/api"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd(a *App) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("port") && a.Config != nil {
				port = a.Config.Server.Port
			}
			ln, err := net.Listen("tcp", fmt.Sprintf(":%d", port))
			if err != nil {
				return fmt.Errorf("listening on port %d: %w", port, err)
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx, ln, cmd.OutOrStdout())
		},
	}

	cmd.Flags().IntVar(&port, "port", 8080, "HTTP port (default from config)")

	return cmd
}

// Router builds the HTTP API over the App's services.
func (a *App) Router() http.Handler {
	opts := api.Options{Logger: a.Logger}
	if a.Config != nil {
		opts.AllowedOrigins = a.Config.Server.AllowedOrigins
	}
	return api.NewRouter(&api.Handler{
		Schedule:    a.Schedule,
		Activity:    a.Activity,
		Reports:     a.Reports,
		Stats:       a.Stats,
		Roster:      a.Roster,
		Disruptions: a.Disruptions,
		Logger:      a.Logger,
	}, opts)
}

// serve runs the API on ln until ctx is done, then drains active requests.
func (a *App) serve(ctx context.Context, ln net.Listener, out io.Writer) error {
	server := &http.Server{
		Handler:      a.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- server.Serve(ln)
	}()
	fmt.Fprintf(out, "API listening on http://%s/api\n", ln.Addr())

	select {
	case err := <-errc:
		return fmt.Errorf("serving: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serving: %w", err)
	}
	fmt.Fprintln(out, "API stopped")
	return nil
}
