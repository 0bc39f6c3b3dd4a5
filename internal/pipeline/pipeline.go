// Package pipeline runs a report generation end to end.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gyeh/ripsgen/internal/config"
	"github.com/gyeh/ripsgen/internal/export"
	"github.com/gyeh/ripsgen/internal/load"
	"github.com/gyeh/ripsgen/internal/model"
	"github.com/gyeh/ripsgen/internal/reference"
	"github.com/gyeh/ripsgen/internal/rips"
	"github.com/gyeh/ripsgen/internal/snapshot"
)

// Phase names, reported in PipelineError.
const (
	PhaseLoad      = "load"
	PhaseReference = "reference"
	PhaseDerive    = "derive"
	PhaseWrite     = "write"
	PhaseArchive   = "archive"
	PhaseSnapshot  = "snapshot"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run executes the full pipeline: load → reference → derive → write →
// archive → snapshot. Nothing is written until every record has been
// derived.
func Run(ctx context.Context, log zerolog.Logger, cfg *config.Config, clinic *config.Clinic, now time.Time) (*model.RunSummary, error) {
	totalStart := time.Now()

	b, err := build(ctx, log, cfg, clinic, now)
	if err != nil {
		return nil, err
	}
	pf, rep := b.preflight, b.report
	log = log.With().Str("run_id", pf.RunID.String()).Logger()
	summary := b.summary(cfg)

	// Phase 4: Write
	writeStart := time.Now()
	staging := cfg.StagingDir()
	files, err := export.WriteReport(staging, cfg.Period, rep, clinic.CRLF)
	if err != nil {
		return nil, &PipelineError{Phase: PhaseWrite, Err: err}
	}
	summary.Files = files
	log.Info().Str("dir", staging).Int("files", len(files)).Msg("report files written")

	// Phase 5: Archive
	archivePath := filepath.Join(cfg.ExportDir, cfg.Period.ArchiveName(clinic.MonthNames, clinic.ProviderCode))
	if err := export.Archive(archivePath, files, cfg.Period.End(), cfg.KeepFiles); err != nil {
		return nil, &PipelineError{Phase: PhaseArchive, Err: err}
	}
	summary.ArchivePath = archivePath
	log.Info().Str("archive", archivePath).Msg("archive written")

	if !cfg.KeepFiles {
		if err := Cleanup(log, staging); err != nil {
			log.Warn().Err(err).Msg("staging cleanup failed (non-fatal)")
		}
	}

	// Phase 6: Snapshot
	if cfg.Snapshot {
		path := filepath.Join(cfg.ExportDir, "RIPS"+cfg.Period.Code()+".parquet")
		rows := snapshot.Rows(snapshot.Meta{RunID: pf.RunID.String(), InputSHA256: pf.InputSHA256}, pf.Records, rep)
		if err := snapshot.Write(path, rows); err != nil {
			return nil, &PipelineError{Phase: PhaseSnapshot, Err: err}
		}
		summary.SnapshotPath = path
		log.Info().Str("snapshot", path).Int("rows", len(rows)).Msg("snapshot written")
	}
	summary.DurationWrite = time.Since(writeStart)
	summary.DurationTotal = time.Since(totalStart)

	logMisses(log, summary.Misses)
	log.Info().
		Int("rows_read", summary.RowsRead).
		Int("ac", summary.ACRecords).
		Int("us", summary.USRecords).
		Int("af", summary.AFRecords).
		Int("rows_rejected", summary.RowsRejected).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("report pipeline complete")

	return summary, nil
}

// Plan loads and derives the report without writing anything and returns
// the counts a real run would produce.
func Plan(ctx context.Context, log zerolog.Logger, cfg *config.Config, clinic *config.Clinic, now time.Time) (*model.RunSummary, error) {
	totalStart := time.Now()
	b, err := build(ctx, log, cfg, clinic, now)
	if err != nil {
		return nil, err
	}
	summary := b.summary(cfg)
	summary.ArchivePath = filepath.Join(cfg.ExportDir, cfg.Period.ArchiveName(clinic.MonthNames, clinic.ProviderCode))
	summary.DurationTotal = time.Since(totalStart)
	logMisses(log, summary.Misses)
	return summary, nil
}

// built is the outcome of the phases shared by Run and Plan.
type built struct {
	preflight *PreflightResult
	report    *rips.Report
	resolver  *reference.Resolver
	duration  time.Duration
}

// build runs the load, reference and derive phases shared by Run and Plan.
func build(ctx context.Context, log zerolog.Logger, cfg *config.Config, clinic *config.Clinic, now time.Time) (*built, error) {
	runID := uuid.New()
	log = log.With().Str("run_id", runID.String()).Logger()

	// Phase 1: Load
	log.Info().Str("period", cfg.Period.String()).Msg("starting preflight")
	pf, err := Preflight(ctx, log, cfg, runID, now)
	if err != nil {
		return nil, &PipelineError{Phase: PhaseLoad, Err: err}
	}
	if len(pf.Rejected) > 0 && !cfg.AllowRejects {
		return nil, &PipelineError{Phase: PhaseLoad, Err: &load.RejectedError{Rows: pf.Rejected}}
	}

	// Phase 2: Reference
	var table reference.Table
	if pf.Variant.HasMunicipality {
		table, err = reference.Load(cfg.ReferencePath)
		if err != nil {
			return nil, &PipelineError{Phase: PhaseReference, Err: err}
		}
		log.Info().Str("reference", cfg.ReferencePath).Int("municipalities", len(table)).Msg("reference loaded")
	} else {
		log.Info().Msg("input has no municipality column, using default location codes")
	}
	resolver := reference.NewResolver(table, reference.Entry{
		DepartmentCode:   clinic.DefaultDepartment,
		MunicipalityCode: clinic.DefaultMunicipality,
	})

	if err := ctx.Err(); err != nil {
		return nil, &PipelineError{Phase: PhaseDerive, Err: err}
	}

	// Phase 3: Derive
	start := time.Now()
	rep, err := rips.Build(&rips.Input{
		Period:   cfg.Period,
		Now:      now,
		Variant:  pf.Variant,
		Records:  pf.Records,
		Resolver: resolver,
		Clinic:   clinic,
	})
	if err != nil {
		return nil, &PipelineError{Phase: PhaseDerive, Err: err}
	}
	b := &built{preflight: pf, report: rep, resolver: resolver, duration: time.Since(start)}
	log.Info().
		Int("ac", len(rep.AC)).
		Int("us", len(rep.US)).
		Dur("duration", b.duration).
		Msg("records derived")

	return b, nil
}

func (b *built) summary(cfg *config.Config) *model.RunSummary {
	pf, rep := b.preflight, b.report
	return &model.RunSummary{
		RunID:         pf.RunID.String(),
		Period:        cfg.Period.Code(),
		InputPath:     pf.InputPath,
		InputSHA256:   pf.InputSHA256,
		Variant:       pf.Variant.Name,
		RowsRead:      pf.RowsRead,
		RowsAccepted:  len(pf.Records),
		RowsRejected:  len(pf.Rejected),
		ACRecords:     len(rep.AC),
		USRecords:     len(rep.US),
		AFRecords:     len(rep.AF),
		CTRecords:     len(rep.CT),
		Misses:        b.resolver.Misses(),
		DurationLoad:  pf.Duration,
		DurationBuild: b.duration,
	}
}

func logMisses(log zerolog.Logger, misses []model.ReferenceMiss) {
	for _, m := range misses {
		log.Warn().
			Str("municipality", m.Municipality).
			Int("records", m.Records).
			Msg("municipality not in reference, used default codes")
	}
}
