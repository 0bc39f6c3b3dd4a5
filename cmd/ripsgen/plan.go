package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gyeh/ripsgen/internal/exitcode"
	"github.com/gyeh/ripsgen/internal/logging"
	"github.com/gyeh/ripsgen/internal/pipeline"
)

var planCmd = &cobra.Command{
	Use:   "plan MONTH YEAR",
	Short: "Dry-run validation and counts (no writes)",
	Args:  cobra.ExactArgs(2),
	RunE:  runPlan,
}

func init() {
	planCmd.Flags().BoolVar(&cfg.AllowRejects, "allow-rejects", false, "Report invalid rows instead of failing")
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	log := logging.WithLevel(logging.Setup(cfg.LogFormat), cfg.LogLevel)

	clinic, err := prepare(args)
	if err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	summary, err := pipeline.Plan(context.Background(), log, &cfg, clinic, time.Now())
	if err != nil {
		var pe *pipeline.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("plan failed")
			os.Exit(exitForPhase(pe.Phase))
		}
		log.Error().Err(err).Msg("plan failed")
		os.Exit(exitcode.ValidationError)
	}

	fmt.Println("=== ripsgen plan ===")
	fmt.Printf("Period:     %s\n", summary.Period)
	fmt.Printf("Input:      %s\n", summary.InputPath)
	fmt.Printf("SHA-256:    %s\n", summary.InputSHA256)
	fmt.Printf("Variant:    %s\n", summary.Variant)
	fmt.Printf("Rows:       %d read, %d accepted, %d rejected\n", summary.RowsRead, summary.RowsAccepted, summary.RowsRejected)
	fmt.Println()
	fmt.Println("Records:")
	fmt.Printf("  %-3s %6d\n", "AC", summary.ACRecords)
	fmt.Printf("  %-3s %6d\n", "US", summary.USRecords)
	fmt.Printf("  %-3s %6d\n", "AF", summary.AFRecords)
	fmt.Printf("  %-3s %6d\n", "CT", summary.CTRecords)
	if len(summary.Misses) > 0 {
		fmt.Println()
		fmt.Println("Municipalities not in reference (default codes used):")
		for _, m := range summary.Misses {
			fmt.Printf("  %-30q %4d record(s)\n", m.Municipality, m.Records)
		}
	}
	fmt.Printf("\nArchive would be written to: %s\n", summary.ArchivePath)

	return nil
}
