package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/dmars8047/DSMZip/pkg/models"
)

// generateMarkdown generates a Markdown report
func (g *Generator) generateMarkdown(result *models.ArchiveResult, outputFile string) error {
	var sb strings.Builder

	title := "Compression"
	if result.Operation == models.OperationExtract {
		title = "Extraction"
	}
	sb.WriteString(fmt.Sprintf("# DSMZip %s Report\n\n", title))

	headers := Headers(result.Operation)
	row := Row(result)

	sb.WriteString("| " + strings.Join(headers, " | ") + " |\n")
	sb.WriteString("|" + strings.Repeat("---|", len(headers)) + "\n")
	cells := make([]string, len(row))
	for i, cell := range row {
		cells[i] = strings.ReplaceAll(cell, "|", `\|`)
	}
	sb.WriteString("| " + strings.Join(cells, " | ") + " |\n\n")

	sb.WriteString("## Details\n\n")
	sb.WriteString("| Parameter | Value |\n")
	sb.WriteString("|-----------|-------|\n")
	sb.WriteString(fmt.Sprintf("| Path | `%s` |\n", result.Path))
	sb.WriteString(fmt.Sprintf("| Entries | %d |\n", result.Entries))
	sb.WriteString(fmt.Sprintf("| Compressed Bytes | %d |\n", result.CompressedSize()))
	sb.WriteString(fmt.Sprintf("| Uncompressed Bytes | %d |\n", result.UncompressedSize()))
	if ratio, ok := Ratio(result); ok {
		sb.WriteString(fmt.Sprintf("| Ratio | %.1f%% |\n", ratio))
	}
	sb.WriteString(fmt.Sprintf("| Start Time | %s |\n", result.StartTime.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("| Duration | %s |\n", FormatDuration(result.Duration)))
	sb.WriteString("\n")

	return os.WriteFile(outputFile, []byte(sb.String()), 0644)
}
