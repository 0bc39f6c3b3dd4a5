package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gyeh/ripsgen/internal/config"
	"github.com/gyeh/ripsgen/internal/period"
)

var cfg config.Config

var rootCmd = &cobra.Command{
	Use:   "ripsgen",
	Short: "Monthly RIPS report generator",
	Long: "Reads a clinic's monthly visit spreadsheet and produces the RIPS AC, US, AF and CT files, " +
		"bundled into the UIRIPS<MONTH><PROVIDER>.zip submission archive.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return config.ApplyEnv(cmd.Flags())
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&cfg.LogLevel, "log-level", "info", "Log level: debug, info, warn or error")
	pf.StringVar(&cfg.ProfilePath, "profile", "", "Clinic profile YAML (defaults to the built-in profile)")
	pf.StringVar(&cfg.InputDir, "input-dir", "RIPS", "Directory holding <MMYYYY>.xlsx")
	pf.StringVar(&cfg.InputFile, "input", "", "Explicit visit spreadsheet path, overrides --input-dir")
	pf.StringVar(&cfg.Sheet, "sheet", "", "Sheet name to read (first sheet when empty)")
	pf.StringVar(&cfg.ExportDir, "export-dir", "exports", "Directory the archive is written to")
	pf.StringVar(&cfg.ReferencePath, "reference", "RIPS/ciudades.xlsx", "Municipality reference workbook")
}

// prepare parses the MONTH YEAR arguments, loads the clinic profile and
// validates the run configuration.
func prepare(args []string) (*config.Clinic, error) {
	p, err := period.Parse(args[0], args[1])
	if err != nil {
		return nil, err
	}
	cfg.Period = p

	clinic := config.DefaultClinic()
	if cfg.ProfilePath != "" {
		if err := clinic.LoadFromFile(cfg.ProfilePath); err != nil {
			return nil, fmt.Errorf("profile %s: %w", cfg.ProfilePath, err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &clinic, nil
}
