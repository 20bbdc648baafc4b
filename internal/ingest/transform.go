package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	embedsql "github.com/gyeh/attstats/internal/sql"
)

// TransformResult holds metrics from the staging to serving move.
type TransformResult struct {
	RowsReplaced int64
	RowsInserted int64
	Duration     time.Duration
}

// Transform replaces the source file's rows in esaude.attendances with the
// staged run, resolving municipality and facility type keys, in one
// transaction.
func Transform(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, runID uuid.UUID, sourceFileID int64) (*TransformResult, error) {
	start := time.Now()

	var replaced, inserted int64
	err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, embedsql.DeleteSourceAttendances, sourceFileID)
		if err != nil {
			return fmt.Errorf("delete previous rows: %w", err)
		}
		replaced = tag.RowsAffected()

		tag, err = tx.Exec(ctx, embedsql.TransformStageToAttendances, runID, sourceFileID)
		if err != nil {
			return fmt.Errorf("insert attendances: %w", err)
		}
		inserted = tag.RowsAffected()
		return nil
	})
	if err != nil {
		return nil, err
	}

	dur := time.Since(start)
	log.Info().
		Int64("rows_replaced", replaced).
		Int64("rows_inserted", inserted).
		Str("duration", dur.String()).
		Float64("rows_per_sec", float64(inserted)/dur.Seconds()).
		Msg("transform complete")

	return &TransformResult{
		RowsReplaced: replaced,
		RowsInserted: inserted,
		Duration:     dur,
	}, nil
}
