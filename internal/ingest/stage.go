package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/attstats/internal/db"
	"github.com/gyeh/attstats/internal/model"
	embedsql "github.com/gyeh/attstats/internal/sql"
)

const copyBufferSize = 1024

// StageResult holds metrics from the staging phase.
type StageResult struct {
	RowsRead     int64
	RowsStaged   int64
	RowsRejected int64
	Duration     time.Duration
}

// Stage validates the cleaned rows and COPY-loads them into
// esaude.stage_attendances via a channel-backed CopyFromSource.
func Stage(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, rows []model.AttendanceRow) (*StageResult, error) {
	start := time.Now()

	ch := make(chan *model.AttendanceRow, copyBufferSize)
	errCh := make(chan error, 1)

	var rowsRead, rowsRejected int64

	go func() {
		defer close(ch)
		for i := range rows {
			rowsRead++
			if err := checkRow(&rows[i]); err != nil {
				rowsRejected++
				log.Warn().Err(err).Int64("row", rows[i].RowNumber).Msg("row rejected")
				continue
			}
			select {
			case ch <- &rows[i]:
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			}
		}
		errCh <- nil
	}()

	source := db.NewChannelSource(ch)
	rowsStaged, err := pool.CopyFrom(ctx,
		pgx.Identifier{"esaude", "stage_attendances"},
		model.AttendanceColumns(),
		source,
	)
	if err != nil {
		// Unblock the producer if COPY stopped consuming early.
		for range ch {
		}
	}

	prodErr := <-errCh
	if prodErr != nil {
		return nil, fmt.Errorf("stage producer: %w", prodErr)
	}
	if err != nil {
		return nil, fmt.Errorf("stage copy: %w", err)
	}

	dur := time.Since(start)
	log.Info().
		Int64("rows_read", rowsRead).
		Int64("rows_staged", rowsStaged).
		Int64("rows_rejected", rowsRejected).
		Str("duration", dur.String()).
		Float64("rows_per_sec", float64(rowsStaged)/dur.Seconds()).
		Msg("staging complete")

	return &StageResult{
		RowsRead:     rowsRead,
		RowsStaged:   rowsStaged,
		RowsRejected: rowsRejected,
		Duration:     dur,
	}, nil
}

// checkRow applies the serving table's check constraints to a single row.
func checkRow(r *model.AttendanceRow) error {
	if r.CIDCode == "" {
		return fmt.Errorf("missing CID code")
	}
	for name, v := range map[string]*int64{
		"referred":       r.Referred,
		"exam_requested": r.ExamRequested,
		"hospitalized":   r.Hospitalized,
	} {
		if v != nil && *v != 0 && *v != 1 {
			return fmt.Errorf("%s flag out of range: %d", name, *v)
		}
	}
	if r.Age != nil && *r.Age < 0 {
		return fmt.Errorf("negative age: %d", *r.Age)
	}
	return nil
}

// UpdateStatus updates the source file status. A non-zero runID is recorded
// as the file's last run.
func UpdateStatus(ctx context.Context, pool *pgxpool.Pool, sourceFileID int64, status string, runID uuid.UUID) error {
	var run any
	if runID != uuid.Nil {
		run = runID
	}
	_, err := pool.Exec(ctx, embedsql.UpdateSourceStatus, sourceFileID, status, run)
	return err
}
