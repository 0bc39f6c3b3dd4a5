package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gyeh/ripsgen/internal/period"
)

// Config holds all runtime configuration for a ripsgen run.
type Config struct {
	Period        period.Period
	InputDir      string // holds <MMYYYY>.xlsx
	InputFile     string // explicit input path, overrides InputDir
	Sheet         string // optional sheet name; first sheet when empty
	ReferencePath string // municipality reference workbook
	ExportDir     string
	ProfilePath   string // clinic profile YAML
	LogFormat     string // "text" or "json"
	LogLevel      string
	Snapshot      bool   // write the Parquet audit snapshot
	AllowRejects  bool   // exclude invalid rows instead of failing
	KeepFiles     bool   // keep the staged .txt files after archiving
}

// InputPath returns the visit spreadsheet path for the configured period.
func (c *Config) InputPath() string {
	if c.InputFile != "" {
		return c.InputFile
	}
	return filepath.Join(c.InputDir, c.Period.Code()+".xlsx")
}

// StagingDir returns the hidden per-period directory the four files are written to.
func (c *Config) StagingDir() string {
	return filepath.Join(c.ExportDir, "."+c.Period.Code())
}

// Validate checks required fields and returns an error if the config is invalid.
func (c *Config) Validate() error {
	if c.Period.Month == 0 {
		return fmt.Errorf("period is required")
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("--log-format must be text or json, got %q", c.LogFormat)
	}
	if _, err := os.Stat(c.InputPath()); err != nil {
		return fmt.Errorf("input file not accessible: %w", err)
	}
	if c.ExportDir == "" {
		return fmt.Errorf("--export-dir is required")
	}
	return nil
}
