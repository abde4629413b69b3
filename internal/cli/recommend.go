package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ionnetwork/dlpick/internal/classifier"
	"github.com/ionnetwork/dlpick/internal/fingerprint"
	"github.com/ionnetwork/dlpick/internal/models"
	"github.com/ionnetwork/dlpick/internal/scanner"
	"github.com/ionnetwork/dlpick/internal/selector"
	"github.com/ionnetwork/dlpick/internal/source"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// clientFlags are the fingerprint inputs shared by recommend and download
type clientFlags struct {
	userAgent  string
	platform   string
	detectHost bool
}

func (f *clientFlags) register(cmd *cobra.Command, detectHostDefault bool) {
	cmd.Flags().StringVar(&f.userAgent, "user-agent", "", "Client user-agent string")
	cmd.Flags().StringVar(&f.platform, "platform", "", "Client platform string (e.g. Win32, MacIntel, \"Linux x86_64\")")
	cmd.Flags().BoolVar(&f.detectHost, "detect-host", detectHostDefault, "Fingerprint the machine dlpick runs on when no user-agent or platform is given")
}

func (f *clientFlags) fingerprint() models.Fingerprint {
	userAgent, platform := f.userAgent, f.platform
	if userAgent == "" && platform == "" && f.detectHost {
		userAgent, platform = fingerprint.HostSignals()
		logrus.Debugf("Using host signals: user-agent=%q platform=%q", userAgent, platform)
	}
	return fingerprint.Detect(userAgent, platform)
}

// recommendation bundles everything a recommend run produces
type recommendation struct {
	Release        *models.Release
	Fingerprint    models.Fingerprint
	Links          models.LinkTable
	Recommendation *models.Recommendation
}

// newAssetSource picks where releases come from: a local directory when
// configured, otherwise the relay and GitHub
func newAssetSource(config *models.Config) source.AssetSource {
	if config.AssetsDir != "" {
		return scanner.NewDirSource(config.AssetsDir)
	}
	return source.NewAssetSource(config)
}

func recommendFor(ctx context.Context, config *models.Config, fp models.Fingerprint) (*recommendation, error) {
	src := newAssetSource(config)
	logrus.Infof("Fetching latest release from %s", src.Name())

	release, err := src.FetchRelease(ctx)
	if err != nil {
		return nil, err
	}
	logrus.Infof("Latest release %s has %d assets", release.DisplayVersion(), len(release.Assets))

	table := classifier.Classify(release.Assets)
	return &recommendation{
		Release:        release,
		Fingerprint:    fp,
		Links:          table,
		Recommendation: selector.Select(table, fp),
	}, nil
}

// NewRecommendCmd creates the recommend command
func NewRecommendCmd(config *models.Config) *cobra.Command {
	var client clientFlags
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "recommend",
		Short: "Recommend the best download for a client",
		Long: `Fetches the latest release and recommends one download for the client
described by --user-agent and --platform. Without either, the client is
unknown unless --detect-host is given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := recommendFor(cmd.Context(), config, client.fingerprint())
			if err != nil {
				return err
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
					"version":        result.Release.DisplayVersion(),
					"fingerprint":    result.Fingerprint,
					"recommendation": result.Recommendation,
					"links":          result.Links,
				})
			}

			writeRecommendation(cmd.OutOrStdout(), result)
			return nil
		},
	}

	client.register(cmd, false)
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}

func writeRecommendation(w io.Writer, result *recommendation) {
	fp := result.Fingerprint
	fmt.Fprintf(w, "Release:  %s\n", result.Release.DisplayVersion())
	fmt.Fprintf(w, "Detected: %s (%s)\n", fp.OS, fp.Architecture)

	if rec := result.Recommendation; rec != nil {
		fmt.Fprintf(w, "Download: %s [%s, %s]\n", rec.FileName, rec.Platform, rec.Type)
		fmt.Fprintf(w, "          %s\n", rec.URL)
		return
	}

	fmt.Fprintln(w, "No automatic match; choose a download manually:")
	writeLinkTable(w, result.Links)
}

func writeLinkTable(w io.Writer, table models.LinkTable) {
	if table.Empty() {
		fmt.Fprintln(w, "  (no downloads available)")
		return
	}

	rows := []struct {
		label string
		entry *models.Entry
	}{
		{"Windows installer", table.Windows.Installer},
		{"macOS arm64", table.MacOS.ARM64},
		{"macOS x64", table.MacOS.X64},
		{"Linux AppImage", table.Linux.AppImage},
		{"Linux Flatpak", table.Linux.Flatpak},
		{"Linux tarball", table.Linux.Tar},
	}
	for _, row := range rows {
		if row.entry == nil {
			continue
		}
		fmt.Fprintf(w, "  %-18s %s\n", row.label+":", row.entry.DownloadURL)
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
