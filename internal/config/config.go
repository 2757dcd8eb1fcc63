package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the archiver configuration
type Config struct {
	// Archive settings
	BufferSize       string   `mapstructure:"buffer_size"`       // copy chunk size, e.g. "4K"
	CompressionLevel string   `mapstructure:"compression_level"` // optimal, fastest, smallest, none
	KeepPartial      bool     `mapstructure:"keep_partial"`      // keep partial output when an operation fails
	Exclude          []string `mapstructure:"exclude"`           // names skipped while collecting a directory

	// Report settings
	ReportFormat string `mapstructure:"report_format"` // text, json, yaml, md (empty: console table)
	OutputFile   string `mapstructure:"output_file"`   // report output path

	// Console settings
	NoProgress bool `mapstructure:"no_progress"` // disable progress bars
}

// CompressionLevel represents the deflate effort used for new entries
type CompressionLevel int

const (
	LevelOptimal CompressionLevel = iota
	LevelFastest
	LevelSmallest
	LevelNone
)

// DefaultBufferSize is the copy chunk size used when none is configured
const DefaultBufferSize = 4 * 1024

// ValidLevels lists the accepted compression_level values
var ValidLevels = []string{"optimal", "fastest", "smallest", "none"}

// ValidReportFormats lists the accepted report_format values
var ValidReportFormats = []string{"text", "txt", "json", "yaml", "yml", "md", "markdown"}

// LoadConfig loads configuration from defaults, an optional config file and
// environment variables. An empty configFile searches for dsmzip.yaml in the
// working directory and $HOME/.config/dsmzip.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("buffer_size", "4K")
	v.SetDefault("compression_level", "optimal")
	v.SetDefault("keep_partial", false)
	v.SetDefault("exclude", []string{})
	v.SetDefault("report_format", "")
	v.SetDefault("output_file", "")
	v.SetDefault("no_progress", false)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigName("dsmzip")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "dsmzip"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	// Read environment variables
	v.SetEnvPrefix("DSMZIP")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// GetCompressionLevel returns the compression level enum value
func (c *Config) GetCompressionLevel() CompressionLevel {
	switch strings.ToLower(c.CompressionLevel) {
	case "fastest":
		return LevelFastest
	case "smallest":
		return LevelSmallest
	case "none", "store":
		return LevelNone
	default:
		return LevelOptimal
	}
}

// IsExcluded reports whether a file or directory name is excluded
func (c *Config) IsExcluded(name string) bool {
	for _, e := range c.Exclude {
		if e == name {
			return true
		}
	}
	return false
}
