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

var generateCmd = &cobra.Command{
	Use:   "generate MONTH YEAR",
	Short: "Generate the RIPS archive for a month",
	Example: "  ripsgen generate 06 2024\n" +
		"  RIPS_EXPORT_DIR=/tmp/out ripsgen generate 06 2024 --snapshot",
	Args: cobra.ExactArgs(2),
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.BoolVar(&cfg.Snapshot, "snapshot", false, "Also write the Parquet audit snapshot RIPS<MMYYYY>.parquet")
	f.BoolVar(&cfg.AllowRejects, "allow-rejects", false, "Exclude invalid rows instead of failing the run")
	f.BoolVar(&cfg.KeepFiles, "keep-files", false, "Keep the four .txt files after archiving")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := logging.WithLevel(logging.Setup(cfg.LogFormat), cfg.LogLevel)
	ctx := context.Background()

	clinic, err := prepare(args)
	if err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	summary, err := pipeline.Run(ctx, log, &cfg, clinic, time.Now())
	if err != nil {
		var pe *pipeline.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("generation failed")
			os.Exit(exitForPhase(pe.Phase))
		}
		log.Error().Err(err).Msg("generation failed")
		os.Exit(exitcode.WriteError)
	}

	fmt.Printf("RIPS %s complete: %d AC, %d US, %d AF, %d CT records -> %s (%.1fs)\n",
		summary.Period, summary.ACRecords, summary.USRecords, summary.AFRecords, summary.CTRecords,
		summary.ArchivePath, summary.DurationTotal.Seconds())
	if n := summary.MissedRecords(); n > 0 {
		fmt.Printf("Warning: %d record(s) in %d municipality name(s) used default location codes\n", n, len(summary.Misses))
	}
	if summary.RowsRejected > 0 {
		fmt.Printf("Warning: %d row(s) excluded as invalid\n", summary.RowsRejected)
	}
	return nil
}

func exitForPhase(phase string) int {
	switch phase {
	case pipeline.PhaseLoad, pipeline.PhaseDerive:
		return exitcode.ValidationError
	case pipeline.PhaseReference:
		return exitcode.ReferenceError
	case pipeline.PhaseArchive:
		return exitcode.ArchiveError
	default:
		return exitcode.WriteError
	}
}
