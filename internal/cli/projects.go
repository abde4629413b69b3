package cli

import (
	"github.com/ionnetwork/dlpick/internal/models"
	"github.com/ionnetwork/dlpick/internal/source"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// NewProjectsCmd creates the projects command
func NewProjectsCmd(config *models.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "Print the project distribution feed",
		Long: `Prints the servers listed in the project distribution feed. With
--relay-url the feed is read through a dlpick relay instead.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := source.NewProjectSource(config).FetchProjects(cmd.Context())
			if err != nil {
				return err
			}

			logrus.Debugf("Fetched %d projects", len(projects))
			return writeJSON(cmd.OutOrStdout(), projects)
		},
	}
}
