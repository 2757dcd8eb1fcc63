package report

import (
	"fmt"
	"os"
	"strings"

	"github.com/dmars8047/DSMZip/pkg/models"
)

// generateText generates a text report
func (g *Generator) generateText(result *models.ArchiveResult, outputFile string) error {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", 79) + "\n")
	sb.WriteString(fmt.Sprintf("  DSMZIP %s REPORT\n", strings.ToUpper(string(result.Operation))))
	sb.WriteString(strings.Repeat("=", 79) + "\n\n")

	headers := Headers(result.Operation)
	row := Row(result)

	sb.WriteString("SUMMARY\n")
	sb.WriteString(strings.Repeat("-", 79) + "\n")
	for i := range headers {
		sb.WriteString(fmt.Sprintf("%-18s%s\n", headers[i]+":", row[i]))
	}
	sb.WriteString(fmt.Sprintf("%-18s%d\n", "Entries:", result.Entries))
	sb.WriteString(fmt.Sprintf("%-18s%s\n", "Start Time:", result.StartTime.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("%-18s%s\n", "End Time:", result.EndTime.Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("%-18s%s\n", "Duration:", FormatDuration(result.Duration)))
	sb.WriteString("\n")

	sb.WriteString("BYTES\n")
	sb.WriteString(strings.Repeat("-", 79) + "\n")
	sb.WriteString(fmt.Sprintf("%-18s%d\n", "Compressed:", result.CompressedSize()))
	sb.WriteString(fmt.Sprintf("%-18s%d\n", "Uncompressed:", result.UncompressedSize()))
	if ratio, ok := Ratio(result); ok {
		sb.WriteString(fmt.Sprintf("%-18s%.1f%%\n", "Ratio:", ratio))
	}

	return os.WriteFile(outputFile, []byte(sb.String()), 0644)
}

// Ratio returns the compressed size as a percentage of the uncompressed size
func Ratio(result *models.ArchiveResult) (float64, bool) {
	if result.UncompressedSize() == 0 {
		return 0, false
	}
	return float64(result.CompressedSize()) * 100 / float64(result.UncompressedSize()), true
}
