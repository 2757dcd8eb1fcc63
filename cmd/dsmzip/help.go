package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// helpCmd creates a detailed help command
func helpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "help",
		Short: "Show detailed help and documentation",
		Long:  `Display complete documentation including all commands, flags, and examples.`,
		Run: func(cmd *cobra.Command, args []string) {
			printBanner()

			fmt.Printf("%s%sCOMMANDS%s\n\n", colorBold, colorYellow, colorReset)

			fmt.Printf("  %scompress files <FILES...>%s   Compress files into a flat archive\n", colorBold, colorReset)
			fmt.Printf("  %scompress directory <DIR>%s    Compress a directory tree\n", colorBold, colorReset)
			fmt.Printf("  %sextract <ARCHIVE>%s           Extract an archive into a directory\n", colorBold, colorReset)
			fmt.Printf("  %slist <ARCHIVE>%s              List archive entries\n", colorBold, colorReset)

			fmt.Printf("\n%s%sCOMMAND FLAGS%s\n\n", colorBold, colorYellow, colorReset)

			fmt.Printf("  %s-n, --name%s <name>           Archive or destination name\n", colorBold, colorReset)
			fmt.Printf("  %s-p, --to-parent-directory%s   Place output beside the input instead of the working directory\n", colorBold, colorReset)
			fmt.Printf("  %s--overwrite%s                 Replace an existing extraction destination\n", colorBold, colorReset)

			fmt.Printf("\n%s%sGLOBAL FLAGS%s\n\n", colorBold, colorYellow, colorReset)

			fmt.Printf("  %s--level%s <level>             Compression: %soptimal%s, %sfastest%s, %ssmallest%s, %snone%s\n",
				colorBold, colorReset, colorCyan, colorReset, colorCyan, colorReset, colorCyan, colorReset, colorCyan, colorReset)
			fmt.Printf("  %s--buffer-size%s <size>        Copy chunk size (default: 4K)\n", colorBold, colorReset)
			fmt.Printf("  %s--exclude%s <names>           Names to skip when compressing a directory\n", colorBold, colorReset)
			fmt.Printf("  %s--keep-partial%s              Keep partial output when an operation fails\n", colorBold, colorReset)
			fmt.Printf("  %s--no-progress%s               Disable progress bars\n", colorBold, colorReset)
			fmt.Printf("  %s-r, --report%s <fmt>          Report format: %stext%s, %sjson%s, %syaml%s, %smd%s\n",
				colorBold, colorReset, colorCyan, colorReset, colorCyan, colorReset, colorCyan, colorReset, colorCyan, colorReset)
			fmt.Printf("  %s-o, --output%s <file>         Report output file path\n", colorBold, colorReset)
			fmt.Printf("  %s--config%s <file>             Config file\n", colorBold, colorReset)
			fmt.Printf("  %s-v, --verbose%s               Enable verbose logging\n", colorBold, colorReset)

			fmt.Printf("\n%s%sENVIRONMENT%s\n\n", colorBold, colorYellow, colorReset)

			fmt.Printf("  Every config key can be set as DSMZIP_<KEY>, e.g. DSMZIP_COMPRESSION_LEVEL=fastest\n")

			fmt.Printf("\n%s%sEXAMPLES%s\n\n", colorBold, colorYellow, colorReset)

			fmt.Printf("  %s# Compress a directory into ./docs.zip%s\n", colorGray, colorReset)
			fmt.Printf("  dsmzip compress directory ./docs\n\n")

			fmt.Printf("  %s# Compress files into ./bundle.zip%s\n", colorGray, colorReset)
			fmt.Printf("  dsmzip compress files a.txt b.txt --name bundle\n\n")

			fmt.Printf("  %s# Extract next to the archive, replacing an older extraction%s\n", colorGray, colorReset)
			fmt.Printf("  dsmzip extract /backups/site.zip -p --overwrite\n\n")

			fmt.Printf("  %s# Write a JSON summary%s\n", colorGray, colorReset)
			fmt.Printf("  dsmzip compress directory ./docs --report=json --output=report.json\n\n")
		},
	}
}
