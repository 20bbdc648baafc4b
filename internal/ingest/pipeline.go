package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/attstats/internal/config"
	"github.com/gyeh/attstats/internal/model"
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

// Run loads cleaned attendance rows into Postgres: preflight → stage →
// dimensions → transform → finalize → cleanup. The rows' RunID is replaced
// by the run ID resolved in preflight.
func Run(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, cfg *config.Config, rows []model.AttendanceRow, runID uuid.UUID) (*model.LoadSummary, error) {
	totalStart := time.Now()

	// Phase 1: Preflight
	log.Info().Str("file", cfg.InputPath).Msg("starting preflight")
	pf, err := Preflight(ctx, pool, log, cfg.InputPath, runID, cfg.Force)
	if err != nil {
		return nil, &PipelineError{Phase: "preflight", Err: err}
	}

	if pf.AlreadyLoaded {
		log.Info().
			Int64("source_file_id", pf.SourceFileID).
			Str("sha256", pf.FileSHA256).
			Msg("file already loaded, skipping (use --force to re-load)")
		return &model.LoadSummary{
			FilePath:      pf.FilePath,
			FileSHA256:    pf.FileSHA256,
			SourceFileID:  pf.SourceFileID,
			RunID:         pf.RunID.String(),
			AlreadyLoaded: true,
			DurationTotal: time.Since(totalStart),
		}, nil
	}

	for i := range rows {
		rows[i].RunID = pf.RunID
	}

	// Phase 2: Stage
	log.Info().Int("rows", len(rows)).Msg("starting staging")
	if err := UpdateStatus(ctx, pool, pf.SourceFileID, "staging", pf.RunID); err != nil {
		return nil, &PipelineError{Phase: "stage", Err: err}
	}

	stageResult, err := Stage(ctx, pool, log, rows)
	if err != nil {
		fail(ctx, pool, log, pf)
		return nil, &PipelineError{Phase: "stage", Err: err}
	}

	// Phase 3: Dimensions
	log.Info().Msg("upserting dimensions")
	if err := UpsertDimensions(ctx, pool, log, pf.RunID); err != nil {
		fail(ctx, pool, log, pf)
		return nil, &PipelineError{Phase: "dimensions", Err: err}
	}

	// Phase 4: Transform
	log.Info().Msg("starting transform")
	transformResult, err := Transform(ctx, pool, log, pf.RunID, pf.SourceFileID)
	if err != nil {
		fail(ctx, pool, log, pf)
		return nil, &PipelineError{Phase: "transform", Err: err}
	}

	// Phase 5: Finalize
	log.Info().Msg("finalizing")
	finalizeDur, err := Finalize(ctx, pool, log, pf, cfg.ActivateVersion)
	if err != nil {
		fail(ctx, pool, log, pf)
		return nil, &PipelineError{Phase: "finalize", Err: err}
	}

	// Phase 6: Cleanup staging
	if !cfg.KeepStaging {
		log.Info().Msg("cleaning up staging")
		if err := Cleanup(ctx, pool, log, pf.RunID); err != nil {
			log.Warn().Err(err).Msg("staging cleanup failed (non-fatal)")
		}
	}

	summary := &model.LoadSummary{
		FilePath:          pf.FilePath,
		FileSHA256:        pf.FileSHA256,
		SourceFileID:      pf.SourceFileID,
		RunID:             pf.RunID.String(),
		RowsRead:          stageResult.RowsRead,
		RowsStaged:        stageResult.RowsStaged,
		RowsRejected:      stageResult.RowsRejected,
		RowsInserted:      transformResult.RowsInserted,
		DurationStage:     stageResult.Duration,
		DurationTransform: transformResult.Duration,
		DurationFinalize:  finalizeDur,
		DurationTotal:     time.Since(totalStart),
	}

	log.Info().
		Int64("rows_read", summary.RowsRead).
		Int64("rows_staged", summary.RowsStaged).
		Int64("rows_inserted", summary.RowsInserted).
		Int64("rows_rejected", summary.RowsRejected).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("load pipeline complete")

	return summary, nil
}

// fail marks the source file failed and drops the run's staged rows.
func fail(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, pf *PreflightResult) {
	if err := UpdateStatus(ctx, pool, pf.SourceFileID, "failed", pf.RunID); err != nil {
		log.Warn().Err(err).Msg("could not mark source file failed")
	}
	if err := Cleanup(ctx, pool, log, pf.RunID); err != nil {
		log.Warn().Err(err).Msg("staging cleanup failed (non-fatal)")
	}
}
