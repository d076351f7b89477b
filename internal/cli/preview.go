package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/blueprintkit/blueprint/internal/preview"
)

// PreviewCmd returns the preview command.
func PreviewCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "preview <config>",
		Short: "Serve generated artifacts over HTTP with live reload",
		Long: `Preview builds the config in memory and serves the result. Edits to the
config file trigger a rebuild and push a reload notice to connected
WebSocket clients on /api/preview/ws.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			srv := preview.New(args[0], port)
			if err := srv.Run(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 4477, "port to listen on")
	return cmd
}
