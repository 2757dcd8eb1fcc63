package main

import (
	"context"

	"github.com/dmars8047/DSMZip/internal/core"
	"github.com/dmars8047/DSMZip/pkg/models"
	"github.com/spf13/cobra"
)

// compressCmd creates the compress command group
func compressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compress",
		Short: "Compress files or a directory into a zip archive",
	}

	cmd.AddCommand(compressFilesCmd())
	cmd.AddCommand(compressDirectoryCmd())

	return cmd
}

func compressFilesCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "files <FILES...>",
		Short: "Compress a list of files into a flat archive",
		Long: `Compress the given files into one archive. Entries are stored by base name
only; two files with the same base name are rejected. The archive is written to
the working directory as archive.zip unless --name is given.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, func(ctx context.Context, archiver *core.Archiver) (*models.ArchiveResult, error) {
				return archiver.CompressFiles(ctx, core.FilesOptions{
					Files:       args,
					ArchiveName: name,
				})
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Archive name (.zip is appended when missing)")

	return cmd
}

func compressDirectoryCmd() *cobra.Command {
	var (
		name     string
		toParent bool
	)

	cmd := &cobra.Command{
		Use:     "directory <DIR>",
		Aliases: []string{"dir"},
		Short:   "Compress a directory tree into an archive",
		Long: `Compress every file and directory beneath DIR into one archive, keeping
relative paths. The archive is named after the directory unless --name is given
and replaces any existing archive of the same name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOperation(cmd, func(ctx context.Context, archiver *core.Archiver) (*models.ArchiveResult, error) {
				return archiver.CompressDirectory(ctx, core.DirectoryOptions{
					Source:            args[0],
					ArchiveName:       name,
					ToParentDirectory: toParent,
				})
			})
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Archive name (.zip is appended when missing)")
	cmd.Flags().BoolVarP(&toParent, "to-parent-directory", "p", false, "Write the archive beside DIR instead of the working directory")

	return cmd
}
