package report

import (
	"os"

	"github.com/dmars8047/DSMZip/pkg/models"
	"gopkg.in/yaml.v3"
)

// YAMLReport mirrors JSONReport for yaml output
type YAMLReport struct {
	Result         *models.ArchiveResult `yaml:"result"`
	CompressedKB   int64                 `yaml:"compressed_kb"`
	UncompressedKB int64                 `yaml:"uncompressed_kb"`
	Elapsed        string                `yaml:"elapsed"`
}

func (g *Generator) generateYAML(result *models.ArchiveResult, outputFile string) error {
	report := &YAMLReport{
		Result:         result,
		CompressedKB:   models.KB(result.CompressedSize()),
		UncompressedKB: models.KB(result.UncompressedSize()),
		Elapsed:        FormatDuration(result.Duration),
	}

	data, err := yaml.Marshal(report)
	if err != nil {
		return err
	}

	return os.WriteFile(outputFile, data, 0644)
}
