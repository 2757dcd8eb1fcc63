package main

import (
	"context"

	"github.com/dmars8047/DSMZip/internal/core"
	"github.com/dmars8047/DSMZip/pkg/models"
	"github.com/spf13/cobra"
)

// extractCmd creates the extract command
func extractCmd() *cobra.Command {
	var (
		name      string
		toParent  bool
		overwrite bool
	)

	cmd := &cobra.Command{
		Use:   "extract <ARCHIVE>",
		Short: "Extract a zip archive into a directory",
		Long: `Extract ARCHIVE into a directory named after it, or --name. An existing
destination is left untouched unless --overwrite is given, in which case it is
removed first.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, func(ctx context.Context, archiver *core.Archiver) (*models.ArchiveResult, error) {
				return archiver.Extract(ctx, core.ExtractOptions{
					ArchivePath:       args[0],
					DestinationName:   name,
					ToParentDirectory: toParent,
					Overwrite:         overwrite,
				})
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Destination directory name (default: archive name without .zip)")
	cmd.Flags().BoolVarP(&toParent, "to-parent-directory", "p", false, "Extract beside the archive instead of the working directory")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing destination directory")

	return cmd
}
