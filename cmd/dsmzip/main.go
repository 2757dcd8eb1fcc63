package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dmars8047/DSMZip/internal/config"
	"github.com/dmars8047/DSMZip/internal/core"
	"github.com/dmars8047/DSMZip/internal/report"
	"github.com/dmars8047/DSMZip/pkg/models"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ANSI colors
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[38;5;220m"
	colorBlue   = "\033[34m"
	colorGray   = "\033[38;5;245m"
	colorCyan   = "\033[36m"
)

var (
	version = "0.1.0"
	logger  *zap.Logger
	verbose bool
	global  globalFlags
)

// globalFlags are shared by every archive command and override the config file
type globalFlags struct {
	configFile   string
	reportFormat string
	outputFile   string
	bufferSize   string
	level        string
	exclude      []string
	noProgress   bool
	keepPartial  bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dsmzip",
		Short: "DSMZip - compress and extract zip archives",
		Long: `Compress a directory or a list of files into a zip archive, or extract an
archive back into a directory, with live progress for the whole operation and
for every entry.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, args []string) {
			printBanner()
			cmd.Help()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVar(&global.configFile, "config", "", "Config file (default: ./dsmzip.yaml or ~/.config/dsmzip/dsmzip.yaml)")
	flags.StringVarP(&global.reportFormat, "report", "r", "", "Report format: text, json, yaml, md (default: console table)")
	flags.StringVarP(&global.outputFile, "output", "o", "", "Report output file path")
	flags.StringVar(&global.bufferSize, "buffer-size", "", "Copy chunk size, e.g. 4K, 64K, 1M (default: 4K)")
	flags.StringVar(&global.level, "level", "", "Compression level: optimal, fastest, smallest, none (default: optimal)")
	flags.StringSliceVar(&global.exclude, "exclude", nil, "File or directory names to skip when compressing a directory (comma-separated)")
	flags.BoolVar(&global.noProgress, "no-progress", false, "Disable progress bars")
	flags.BoolVar(&global.keepPartial, "keep-partial", false, "Keep partial output when an operation fails")

	// Disable built-in help command
	rootCmd.SetHelpCommand(&cobra.Command{Hidden: true})

	rootCmd.AddCommand(compressCmd())
	rootCmd.AddCommand(extractCmd())
	rootCmd.AddCommand(listCmd())
	rootCmd.AddCommand(helpCmd())

	return rootCmd
}

// initLogger builds a development logger for --verbose and an error-only
// JSON logger otherwise
func initLogger() error {
	var err error
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		cfg := zap.Config{
			Level:            zap.NewAtomicLevelAt(zapcore.ErrorLevel),
			Encoding:         "json",
			OutputPaths:      []string{"stderr"},
			ErrorOutputPaths: []string{"stderr"},
			EncoderConfig:    zap.NewProductionEncoderConfig(),
		}
		logger, err = cfg.Build()
	}
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	return nil
}

// loadConfig reads the configuration and applies flag overrides
func loadConfig() (*config.Config, error) {
	if err := validateFlags(global.level, global.reportFormat, global.bufferSize); err != nil {
		return nil, err
	}

	cfg, err := config.LoadConfig(global.configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if global.bufferSize != "" {
		cfg.BufferSize = global.bufferSize
	}
	if global.level != "" {
		cfg.CompressionLevel = global.level
	}
	if len(global.exclude) > 0 {
		cfg.Exclude = global.exclude
	}
	if global.reportFormat != "" {
		cfg.ReportFormat = global.reportFormat
	}
	if global.outputFile != "" {
		cfg.OutputFile = global.outputFile
	}
	if global.noProgress {
		cfg.NoProgress = true
	}
	if global.keepPartial {
		cfg.KeepPartial = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// operation is one archiver call made by a command
type operation func(ctx context.Context, archiver *core.Archiver) (*models.ArchiveResult, error)

// runOperation sets up logging, configuration and progress output, runs op
// and prints its summary
func runOperation(cmd *cobra.Command, op operation) error {
	if err := initLogger(); err != nil {
		return err
	}
	defer logger.Sync()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	archiver := core.NewArchiver(cfg, logger)

	var renderer *progressRenderer
	if !cfg.NoProgress {
		renderer = newProgressRenderer(os.Stdout)
		archiver.SetProgressCallback(renderer.Handle)
	}

	result, err := op(cmd.Context(), archiver)
	if renderer != nil {
		renderer.Close()
	}
	if err != nil {
		logger.Error("Operation failed", zap.Error(err))
		return err
	}

	generator := report.NewGenerator(cfg, logger)
	reportPath, err := generator.Generate(result)
	if err != nil {
		return err
	}

	if reportPath != "" {
		fmt.Printf("  %sReport:%s    %s%s%s\n", colorGray, colorReset, colorCyan, reportPath, colorReset)
	}

	return nil
}

// validateFlags validates CLI flag values
func validateFlags(level, reportFormat, bufferSize string) error {
	if level != "" && !contains(config.ValidLevels, strings.ToLower(level)) {
		return fmt.Errorf("--level must be one of: %s (got: %s)", strings.Join(config.ValidLevels, ", "), level)
	}

	if reportFormat != "" && !contains(config.ValidReportFormats, strings.ToLower(reportFormat)) {
		return fmt.Errorf("--report must be one of: %s (got: %s)", strings.Join(config.ValidReportFormats, ", "), reportFormat)
	}

	if bufferSize != "" {
		cfg := &config.Config{BufferSize: bufferSize}
		if _, err := cfg.GetBufferSize(); err != nil {
			return fmt.Errorf("--buffer-size must be a size up to 64M such as 4K or 1M (got: %s)", bufferSize)
		}
	}

	return nil
}

// contains checks if a slice contains a string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func printBanner() {
	fmt.Println()
	fmt.Printf("%s%sDSMZip%s %sv%s%s\n", colorBold, colorYellow, colorReset, colorGray, version, colorReset)
	fmt.Println()
}
