package main

import (
	"fmt"

	"github.com/dmars8047/DSMZip/internal/archive"
	"github.com/dmars8047/DSMZip/pkg/models"
	"github.com/spf13/cobra"
)

// listCmd creates the list command
func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <ARCHIVE>",
		Short: "List the entries of a zip archive",
		Long:  `Print every entry of ARCHIVE in extraction order with its stored and original size.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := initLogger(); err != nil {
				return err
			}
			defer logger.Sync()

			if !archive.IsArchivePath(args[0]) {
				return models.FormatError("archive", args[0])
			}

			entries, err := archive.List(args[0])
			if err != nil {
				return err
			}

			var files, dirs int
			var stored, original int64
			for _, e := range entries {
				if e.Kind == models.KindDirectory {
					dirs++
					fmt.Printf("  %s%-10s%s %10s  %s%s%s\n", colorBlue, "dir", colorReset, "", colorBold, e.Path+"/", colorReset)
					continue
				}
				files++
				stored += e.CompressedSize
				original += e.Size
				fmt.Printf("  %s%-10d%s %10d  %s\n", colorGray, e.CompressedSize, colorReset, e.Size, e.Path)
			}

			fmt.Println()
			fmt.Printf("  %sFiles:%s        %d\n", colorGray, colorReset, files)
			fmt.Printf("  %sDirectories:%s  %d\n", colorGray, colorReset, dirs)
			fmt.Printf("  %sStored:%s       %d KB\n", colorGray, colorReset, models.KB(stored))
			fmt.Printf("  %sOriginal:%s     %d KB\n", colorGray, colorReset, models.KB(original))

			return nil
		},
	}
}
