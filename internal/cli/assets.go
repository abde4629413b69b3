package cli

import (
	"fmt"

	"github.com/ionnetwork/dlpick/internal/classifier"
	"github.com/ionnetwork/dlpick/internal/models"
	"github.com/spf13/cobra"
)

// NewAssetsCmd creates the assets command
func NewAssetsCmd(config *models.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "assets",
		Short: "List release assets and how they are classified",
		RunE: func(cmd *cobra.Command, args []string) error {
			release, err := newAssetSource(config).FetchRelease(cmd.Context())
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Release %s\n", release.DisplayVersion())
			for _, asset := range release.Assets {
				format := classifier.DetectFormat(asset.Name)
				label := format.String()
				if format == models.FormatMacImage {
					label += "/" + string(classifier.DetectMacArchitecture(asset.Name))
				}
				fmt.Fprintf(w, "  %-12s %s\n", label, asset.Name)
			}

			fmt.Fprintln(w, "Links:")
			writeLinkTable(w, classifier.Classify(release.Assets))
			return nil
		},
	}
}
