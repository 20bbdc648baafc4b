package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	embedsql "github.com/gyeh/attstats/internal/sql"
)

// Finalize marks the load complete. With activate set, rows of older files
// with the same name are deactivated and this file's rows become active.
// It finishes with ANALYZE.
func Finalize(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, pf *PreflightResult, activate bool) (time.Duration, error) {
	start := time.Now()

	if activate {
		tag, err := pool.Exec(ctx, embedsql.DeactivateOlderVersions, filepath.Base(pf.FilePath), pf.SourceFileID)
		if err != nil {
			return 0, fmt.Errorf("deactivate older versions: %w", err)
		}
		log.Info().Int64("deactivated", tag.RowsAffected()).Msg("older versions deactivated")

		if _, err := pool.Exec(ctx, embedsql.ActivateVersion, pf.SourceFileID); err != nil {
			return 0, fmt.Errorf("activate version: %w", err)
		}
		if err := UpdateStatus(ctx, pool, pf.SourceFileID, "active", pf.RunID); err != nil {
			return 0, fmt.Errorf("update status to active: %w", err)
		}
		log.Info().Int64("source_file_id", pf.SourceFileID).Msg("version activated")
	} else {
		if err := UpdateStatus(ctx, pool, pf.SourceFileID, "loaded", pf.RunID); err != nil {
			return 0, fmt.Errorf("update status to loaded: %w", err)
		}
	}

	if _, err := pool.Exec(ctx, embedsql.AnalyzeAttendances); err != nil {
		return 0, fmt.Errorf("analyze attendances: %w", err)
	}
	log.Info().Msg("ANALYZE complete")

	return time.Since(start), nil
}

// Cleanup deletes staging rows for the given run.
func Cleanup(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, runID uuid.UUID) error {
	start := time.Now()

	tag, err := pool.Exec(ctx, embedsql.DeleteStageRun, runID)
	if err != nil {
		return err
	}

	log.Info().
		Int64("rows_deleted", tag.RowsAffected()).
		Dur("duration", time.Since(start)).
		Msg("staging cleanup complete")

	return nil
}
