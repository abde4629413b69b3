package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/ionnetwork/dlpick/internal/models"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Defaults for the IONLauncher release and feed
const (
	defaultAPIURL  = "https://api.github.com"
	defaultOwner   = "IONNetworkTeam"
	defaultRepo    = "IONLauncher"
	defaultFeedURL = "https://launcher.ionnet.work/distribution.json"
	defaultListen  = ":8080"
)

// loadConfigFile reads a YAML configuration file into config. Values given
// on the command line take precedence over the file.
func loadConfigFile(path string, cmd *cobra.Command, config *models.Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &models.DLError{
			Type:   models.ErrInvalidConfig,
			Source: path,
			Err:    fmt.Errorf("failed to read config: %w", err),
		}
	}

	var file models.Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return &models.DLError{
			Type:   models.ErrInvalidConfig,
			Source: path,
			Err:    fmt.Errorf("failed to parse config: %w", err),
		}
	}

	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}

	mergeString(&config.Owner, file.Owner, changed("owner"))
	mergeString(&config.Repo, file.Repo, changed("repo"))
	mergeString(&config.APIURL, file.APIURL, changed("api-url"))
	mergeString(&config.RelayURL, file.RelayURL, changed("relay-url"))
	mergeString(&config.AssetsDir, file.AssetsDir, changed("assets-dir"))
	mergeString(&config.FeedURL, file.FeedURL, changed("feed-url"))
	mergeString(&config.Listen, file.Listen, changed("listen"))
	mergeString(&config.OutputDir, file.OutputDir, changed("output-dir"))
	mergeString(&config.KeyringPath, file.KeyringPath, changed("keyring"))
	mergeString(&config.CopyrightOwner, file.CopyrightOwner, changed("copyright-owner"))

	if file.UserAgent != "" {
		config.UserAgent = file.UserAgent
	}
	if file.Timeout != 0 && !changed("timeout") {
		config.Timeout = file.Timeout
	}
	if file.CopyrightStart != 0 && !changed("copyright-start") {
		config.CopyrightStart = file.CopyrightStart
	}
	if file.Verify && !changed("verify") {
		config.Verify = true
	}

	return nil
}

func mergeString(dst *string, value string, flagChanged bool) {
	if value != "" && !flagChanged {
		*dst = value
	}
}

func validateConfig(config *models.Config) error {
	if config.APIURL == "" {
		config.APIURL = defaultAPIURL
	}
	if config.Owner == "" && config.Repo == "" {
		config.Owner = defaultOwner
		config.Repo = defaultRepo
	}
	if config.FeedURL == "" {
		config.FeedURL = defaultFeedURL
	}
	if config.Listen == "" {
		config.Listen = defaultListen
	}

	if config.Owner == "" || config.Repo == "" {
		return &models.DLError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("owner and repo must be set together"),
		}
	}

	if config.Timeout < 0 {
		return &models.DLError{
			Type: models.ErrInvalidConfig,
			Err:  fmt.Errorf("timeout must not be negative"),
		}
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return nil
}
