package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/ionnetwork/dlpick/internal/models"
	"github.com/ionnetwork/dlpick/internal/scanner"
	"github.com/ionnetwork/dlpick/internal/server"
	"github.com/ionnetwork/dlpick/internal/source"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command
func NewServeCmd(config *models.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP relay",
		Long: `Serves the project feed, the latest release and per-client
recommendations over HTTP:

  GET /api/projects   project feed servers
  GET /api/release    latest release assets
  GET /api/recommend  recommendation for the requesting browser
  GET /healthz        liveness`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			// The relay reads upstream directly, never another relay
			var assets source.AssetSource = source.NewGitHubSource(config)
			if config.AssetsDir != "" {
				assets = scanner.NewDirSource(config.AssetsDir)
			}

			srv := server.New(config, assets, source.NewFeedSource(config))
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVarP(&config.Listen, "listen", "l", defaultListen, "Address to listen on")
	cmd.Flags().StringVar(&config.CopyrightOwner, "copyright-owner", "", "Owner named in the copyright notice")
	cmd.Flags().IntVar(&config.CopyrightStart, "copyright-start", 0, "First year of the copyright range")

	return cmd
}
