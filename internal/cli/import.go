package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/trialviz/axisgoat/internal/metadata"
	"github.com/trialviz/axisgoat/internal/store"
)

func init() {
	rootCmd.AddCommand(newImportCmd())
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>...",
		Short: "Import study axis metadata",
		Long: `Import one or more study metadata documents (JSON or YAML). Importing a
study that already exists replaces all of its views.

Examples:
  axisgoat import study.json
  axisgoat import studies/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(func(s *store.SQLiteStore) error {
				ctx := context.Background()
				for _, name := range args {
					data, err := os.ReadFile(name)
					if err != nil {
						return fmt.Errorf("failed to read %s: %w", name, err)
					}
					doc, err := metadata.ParseFile(name, data)
					if err != nil {
						return fmt.Errorf("failed to parse %s: %w", name, err)
					}
					study, err := s.SaveStudy(ctx, doc)
					if err != nil {
						return fmt.Errorf("failed to import %s: %w", name, err)
					}

					log.Info("imported study", "study", study.Name, "views", len(study.Views), "file", name)
					fmt.Fprintf(cmd.OutOrStdout(), "Imported study '%s' with %d views\n", study.Name, len(study.Views))
				}
				return nil
			})
		},
	}
}
