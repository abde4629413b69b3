package cli

import (
	"time"

	"github.com/ionnetwork/dlpick/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var config models.Config
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "dlpick",
		Short: "Pick the best launcher installer for a platform",
		Long: `dlpick fetches the latest launcher release, sorts its assets by
platform and architecture, and recommends the single best download for a
client. It can also relay the project distribution feed over HTTP.

Recognised assets:
  - Windows (.exe, .msi)
  - macOS (.dmg, .pkg; arm64 and x64)
  - Linux (.AppImage, .flatpak, .tar.gz/.tar.xz, with .deb/.rpm fallbacks)`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Setup logging
			verbose, _ := cmd.Flags().GetBool("verbose")
			if verbose {
				logrus.SetLevel(logrus.DebugLevel)
			} else {
				logrus.SetLevel(logrus.InfoLevel)
			}

			if configPath != "" {
				if err := loadConfigFile(configPath, cmd, &config); err != nil {
					return err
				}
			}

			if err := validateConfig(&config); err != nil {
				return err
			}
			logrus.Debugf("Configuration: %+v", config)
			return nil
		},
	}

	// Global flags
	flags := rootCmd.PersistentFlags()
	flags.BoolP("verbose", "v", false, "Enable verbose logging")
	flags.StringVarP(&configPath, "config", "c", "", "Path to a YAML configuration file")
	flags.StringVar(&config.Owner, "owner", "", "GitHub owner of the launcher repository")
	flags.StringVar(&config.Repo, "repo", "", "GitHub launcher repository name")
	flags.StringVar(&config.APIURL, "api-url", "", "GitHub API base URL")
	flags.StringVar(&config.RelayURL, "relay-url", "", "Base URL of a dlpick relay to query first")
	flags.StringVar(&config.AssetsDir, "assets-dir", "", "Classify the files of a local directory instead of the latest release")
	flags.StringVar(&config.FeedURL, "feed-url", "", "Project distribution feed URL")
	flags.DurationVar(&config.Timeout, "timeout", 30*time.Second, "Timeout for API requests")

	// Add subcommands
	rootCmd.AddCommand(NewRecommendCmd(&config))
	rootCmd.AddCommand(NewAssetsCmd(&config))
	rootCmd.AddCommand(NewProjectsCmd(&config))
	rootCmd.AddCommand(NewDownloadCmd(&config))
	rootCmd.AddCommand(NewServeCmd(&config))

	return rootCmd
}
