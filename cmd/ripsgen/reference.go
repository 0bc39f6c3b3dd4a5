package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/ripsgen/internal/exitcode"
	"github.com/gyeh/ripsgen/internal/logging"
	"github.com/gyeh/ripsgen/internal/reference"
)

var referenceCmd = &cobra.Command{
	Use:   "reference",
	Short: "Validate the municipality reference workbook",
	Args:  cobra.NoArgs,
	RunE:  runReference,
}

func init() {
	rootCmd.AddCommand(referenceCmd)
}

func runReference(cmd *cobra.Command, args []string) error {
	log := logging.WithLevel(logging.Setup(cfg.LogFormat), cfg.LogLevel)

	table, err := reference.Load(cfg.ReferencePath)
	if err != nil {
		log.Error().Err(err).Str("reference", cfg.ReferencePath).Msg("reference validation failed")
		os.Exit(exitcode.ReferenceError)
	}

	log.Info().Str("reference", cfg.ReferencePath).Int("municipalities", len(table)).Msg("reference is valid")
	fmt.Printf("%s: %d municipalities\n", cfg.ReferencePath, len(table))
	return nil
}
