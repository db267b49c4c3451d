package cmd

import (
	"context"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/grovetools/jsonview/logging"
	"github.com/grovetools/jsonview/pkg/worker"
	"github.com/grovetools/jsonview/pkg/worker/wsserver"
)

// DefaultServeAddr is where serve listens without --addr.
const DefaultServeAddr = "127.0.0.1:7878"

// NewServeCmd exposes the background parser over WebSocket.
func NewServeCmd() *cobra.Command {
	var (
		addr        string
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve parse and format requests over WebSocket",
		Long: `Serve parse, stringify, beautify and minify requests over WebSocket.

Clients connect to /ws and send {"id", "type", "payload"} envelopes; each is
answered with {"id", "success", "result", "error"}. GET /health reports
liveness.

Examples:
  jsonview serve --addr 127.0.0.1:9000
  jsonview serve --concurrency 8 --verbose`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			w := worker.New(worker.WithConcurrency(concurrency))
			defer w.Close()
			srv := wsserver.New(w, logging.NewLogger("serve"))

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return srv.ListenAndServe(addr)
			})
			g.Go(func() error {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", DefaultServeAddr, "Address to listen on")
	cmd.Flags().IntVar(&concurrency, "concurrency", runtime.NumCPU(), "Requests handled in parallel")

	return cmd
}
