package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/trialviz/axisgoat/internal/server"
	"github.com/trialviz/axisgoat/internal/store"
)

var port int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the axisgoat HTTP server.

The server provides:
  - Axis options, defaults and reconciliation per study view
  - Study and view listings
  - Health check endpoint

Example:
  axisgoat serve --port 8080`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVarP(&port, "port", "p", cfg.Port, "port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("port") {
		cfg.Port = port
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return withStore(func(s *store.SQLiteStore) error {
		srv := server.New(s, cfg.Port, cfg.Workers, log)
		fmt.Fprintf(cmd.OutOrStdout(), "axisgoat listening on http://localhost:%d\n", cfg.Port)
		return srv.Start(ctx)
	})
}
