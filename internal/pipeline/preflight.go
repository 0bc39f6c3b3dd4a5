package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/ripsgen/internal/config"
	"github.com/gyeh/ripsgen/internal/load"
	"github.com/gyeh/ripsgen/internal/model"
	"github.com/gyeh/ripsgen/internal/normalize"
	"github.com/gyeh/ripsgen/internal/sheet"
)

// PreflightResult holds everything resolved while loading the input.
type PreflightResult struct {
	// RunID tags log lines and snapshot rows of this run.
	RunID uuid.UUID
	// InputPath is the visit spreadsheet that was read.
	InputPath string
	// InputSHA256 is the hex digest of the spreadsheet, from normalize.FileHash.
	InputSHA256 string
	// InputSize is the file size in bytes.
	InputSize int64
	// Variant is the input schema detected from the header row.
	Variant model.Variant
	// RowsRead counts non-blank data rows.
	RowsRead int
	// Records are the accepted rows, in input order.
	Records []model.SourceRecord
	// Rejected are the rows that failed coercion.
	Rejected []*load.RowError
	Duration time.Duration
}

// Preflight hashes and reads the visit spreadsheet, detects its variant and
// coerces every row into a source record.
func Preflight(ctx context.Context, log zerolog.Logger, cfg *config.Config, runID uuid.UUID, now time.Time) (*PreflightResult, error) {
	start := time.Now()
	path := cfg.InputPath()

	sha, err := normalize.FileHash(path)
	if err != nil {
		return nil, fmt.Errorf("preflight hash: %w", err)
	}
	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("preflight stat: %w", err)
	}

	visits, err := sheet.ReadVisits(path, cfg.Sheet)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := load.Records(visits.Rows, visits.Variant, now)
	pf := &PreflightResult{
		RunID:       runID,
		InputPath:   path,
		InputSHA256: sha,
		InputSize:   stat.Size(),
		Variant:     visits.Variant,
		RowsRead:    len(visits.Rows),
		Records:     res.Records,
		Rejected:    res.Rejected,
		Duration:    time.Since(start),
	}

	for _, re := range pf.Rejected {
		log.Warn().
			Int("row", re.Row).
			Str("column", re.Column).
			Err(re.Err).
			Msg("row rejected")
	}

	log.Info().
		Str("input", path).
		Str("sha256", sha).
		Int64("size", pf.InputSize).
		Str("variant", pf.Variant.Name).
		Int("rows_read", pf.RowsRead).
		Int("rows_rejected", len(pf.Rejected)).
		Dur("duration", pf.Duration).
		Msg("preflight complete")

	return pf, nil
}
