package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	embedsql "github.com/gyeh/attstats/internal/sql"
)

// UpsertDimensions upserts municipalities and facility types from the staged
// run into their lookup tables.
func UpsertDimensions(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, runID uuid.UUID) error {
	start := time.Now()

	tag, err := pool.Exec(ctx, embedsql.UpsertMunicipalities, runID)
	if err != nil {
		return fmt.Errorf("upsert municipalities: %w", err)
	}
	log.Info().Int64("municipalities_upserted", tag.RowsAffected()).Msg("municipalities upserted")

	tag, err = pool.Exec(ctx, embedsql.UpsertFacilityTypes, runID)
	if err != nil {
		return fmt.Errorf("upsert facility types: %w", err)
	}
	log.Info().
		Int64("facility_types_upserted", tag.RowsAffected()).
		Dur("duration", time.Since(start)).
		Msg("facility types upserted")

	return nil
}
