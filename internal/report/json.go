package report

import (
	"encoding/json"
	"os"

	"github.com/dmars8047/DSMZip/pkg/models"
)

// JSONReport adds the human readable summary cells to the raw result
type JSONReport struct {
	*models.ArchiveResult
	CompressedKB   int64  `json:"compressed_kb"`
	UncompressedKB int64  `json:"uncompressed_kb"`
	Elapsed        string `json:"elapsed"`
}

// generateJSON generates a JSON report
func (g *Generator) generateJSON(result *models.ArchiveResult, outputFile string) error {
	report := &JSONReport{
		ArchiveResult:  result,
		CompressedKB:   models.KB(result.CompressedSize()),
		UncompressedKB: models.KB(result.UncompressedSize()),
		Elapsed:        FormatDuration(result.Duration),
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(outputFile, data, 0644)
}
