package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dmars8047/DSMZip/internal/config"
	"github.com/dmars8047/DSMZip/pkg/models"
	"go.uber.org/zap"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[38;5;245m"
)

// FormatDuration formats duration to a human-readable string with max 2 decimal places
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.2fms", float64(d.Nanoseconds())/1e6)
	} else if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	} else if d < time.Hour {
		mins := int(d.Minutes())
		secs := d.Seconds() - float64(mins*60)
		return fmt.Sprintf("%dm%.2fs", mins, secs)
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) - hours*60
	secs := d.Seconds() - float64(hours*3600) - float64(mins*60)
	return fmt.Sprintf("%dh%dm%.2fs", hours, mins, secs)
}

// FormatKB renders a byte count the way the summary table shows it
func FormatKB(kb int64) string {
	return fmt.Sprintf("%d KB", kb)
}

// Generator writes the summary of a finished operation
type Generator struct {
	config *config.Config
	logger *zap.Logger
	out    io.Writer
	color  bool
}

// NewGenerator creates a new report generator
func NewGenerator(cfg *config.Config, logger *zap.Logger) *Generator {
	return &Generator{
		config: cfg,
		logger: logger,
		out:    os.Stdout,
		color:  true,
	}
}

// SetOutput redirects the console summary. Color is disabled for anything
// other than stdout.
func (g *Generator) SetOutput(w io.Writer) {
	g.out = w
	g.color = w == os.Stdout
}

// Generate prints the console summary table, or writes a report file when a
// report format is configured and returns its absolute path
func (g *Generator) Generate(result *models.ArchiveResult) (string, error) {
	format := strings.ToLower(g.config.ReportFormat)
	outputFile := g.config.OutputFile

	if format == "" {
		g.printConsole(result)
		return "", nil
	}

	ext, err := extensionFor(format)
	if err != nil {
		return "", err
	}

	if outputFile == "" {
		timestamp := time.Now().Format("20060102-150405")
		outputFile = fmt.Sprintf("DSMZIP-REPORT-%s.%s", timestamp, ext)
	}

	g.logger.Info("Generating report",
		zap.String("format", format),
		zap.String("output", outputFile))

	switch format {
	case "json":
		err = g.generateJSON(result, outputFile)
	case "yaml", "yml":
		err = g.generateYAML(result, outputFile)
	case "txt", "text":
		err = g.generateText(result, outputFile)
	case "md", "markdown":
		err = g.generateMarkdown(result, outputFile)
	}

	if err != nil {
		return "", fmt.Errorf("failed to generate %s report: %w", format, err)
	}

	absPath, _ := filepath.Abs(outputFile)
	return absPath, nil
}

func extensionFor(format string) (string, error) {
	switch format {
	case "json":
		return "json", nil
	case "yaml", "yml":
		return "yaml", nil
	case "txt", "text":
		return "txt", nil
	case "md", "markdown":
		return "md", nil
	default:
		return "", fmt.Errorf("unknown report format: %s", format)
	}
}

// Headers returns the summary column titles for an operation
func Headers(op models.Operation) []string {
	if op == models.OperationExtract {
		return []string{"Directory Name", "Path", "Compressed Size", "Extracted Size"}
	}
	return []string{"File Name", "Directory", "Compressed Size", "Original Size"}
}

// Row returns the summary cells for a result, matching Headers
func Row(result *models.ArchiveResult) []string {
	location := result.Directory
	if result.Operation == models.OperationExtract {
		location = result.Path
	}
	return []string{
		result.Name,
		location,
		FormatKB(models.KB(result.CompressedSize())),
		FormatKB(models.KB(result.UncompressedSize())),
	}
}

// printConsole draws a single-row bordered table
func (g *Generator) printConsole(result *models.ArchiveResult) {
	headers := Headers(result.Operation)
	row := Row(result)
	colors := []string{colorYellow, colorBlue, colorGreen, colorRed}

	widths := make([]int, len(headers))
	for i := range headers {
		widths[i] = max(utf8.RuneCountInString(headers[i]), utf8.RuneCountInString(row[i]))
	}

	border := func(left, mid, right string) string {
		parts := make([]string, len(widths))
		for i, w := range widths {
			parts[i] = strings.Repeat("─", w+2)
		}
		return g.paint(colorGray, left+strings.Join(parts, mid)+right)
	}
	line := func(cells []string, paint []string) string {
		var sb strings.Builder
		sb.WriteString(g.paint(colorGray, "│"))
		for i, cell := range cells {
			pad := strings.Repeat(" ", widths[i]-utf8.RuneCountInString(cell))
			if paint != nil {
				cell = g.paint(colorBold+paint[i], cell)
			}
			sb.WriteString(" " + cell + pad + " ")
			sb.WriteString(g.paint(colorGray, "│"))
		}
		return sb.String()
	}

	fmt.Fprintln(g.out, border("┌", "┬", "┐"))
	fmt.Fprintln(g.out, line(headers, colors))
	fmt.Fprintln(g.out, border("├", "┼", "┤"))
	fmt.Fprintln(g.out, line(row, nil))
	fmt.Fprintln(g.out, border("└", "┴", "┘"))
}

func (g *Generator) paint(color, s string) string {
	if !g.color {
		return s
	}
	return color + s + colorReset
}
