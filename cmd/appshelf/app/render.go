package app

import (
	"github.com/spf13/cobra"

	"github.com/appshelf/appshelf/internal/site"
)

// NewRenderCommand creates the render subcommand. It reads an existing
// workbook and content directory and writes the static site.
func (a *App) NewRenderCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the static HTML catalog from an existing workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true

			renderer := site.NewRenderer(a.config.ContentDir, a.config.SiteDir)
			return renderer.Render(a.config.OutputFile)
		},
	}

	cmd.Flags().StringVar(&a.config.OutputFile, "workbook", a.config.OutputFile, "workbook to read")
	cmd.Flags().StringVar(&a.config.ContentDir, "content-dir", a.config.ContentDir, "directory holding downloaded icons and screenshots")
	cmd.Flags().StringVar(&a.config.SiteDir, "site-dir", a.config.SiteDir, "directory to write the site into")

	return cmd
}
