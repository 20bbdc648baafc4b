package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/attstats/internal/normalize"
	embedsql "github.com/gyeh/attstats/internal/sql"
)

// PreflightResult holds all context resolved during the preflight phase.
type PreflightResult struct {
	// FilePath is the source CSV path, stored as-is.
	FilePath string
	// FileSHA256 is the hex-encoded SHA-256 digest of the source file.
	FileSHA256 string
	// FileSize is the file size in bytes from os.Stat.
	FileSize int64
	// SourceFileID is the esaude.source_files key, inserted or looked up by
	// digest.
	SourceFileID int64
	// RunID tags every staged row of this load.
	RunID uuid.UUID
	// AlreadyLoaded is true when the digest is already registered with status
	// "active" or "loaded" and force mode is off.
	AlreadyLoaded bool
}

// Preflight hashes the source file and registers it in esaude.source_files.
// A zero runID is replaced by a fresh UUID.
func Preflight(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, filePath string, runID uuid.UUID, force bool) (*PreflightResult, error) {
	start := time.Now()

	sha, err := normalize.FileHash(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight hash: %w", err)
	}

	stat, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight stat: %w", err)
	}

	if runID == uuid.Nil {
		runID = uuid.New()
	}

	sourceFileID, alreadyLoaded, err := registerSourceFile(ctx, pool, filePath, sha, stat.Size(), force)
	if err != nil {
		return nil, fmt.Errorf("preflight register file: %w", err)
	}

	log.Info().
		Str("file", filepath.Base(filePath)).
		Str("sha256", sha).
		Int64("source_file_id", sourceFileID).
		Str("run_id", runID.String()).
		Dur("duration", time.Since(start)).
		Msg("preflight complete")

	return &PreflightResult{
		FilePath:      filePath,
		FileSHA256:    sha,
		FileSize:      stat.Size(),
		SourceFileID:  sourceFileID,
		RunID:         runID,
		AlreadyLoaded: alreadyLoaded,
	}, nil
}

func registerSourceFile(ctx context.Context, pool *pgxpool.Pool, filePath, sha string, fileSize int64, force bool) (int64, bool, error) {
	var id int64
	err := pool.QueryRow(ctx, embedsql.RegisterSourceFile, filepath.Base(filePath), sha, fileSize).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, fmt.Errorf("register source file: %w", err)
	}

	// Already registered (ON CONFLICT DO NOTHING returned no rows).
	var status string
	if err := pool.QueryRow(ctx, embedsql.LookupSourceFile, sha).Scan(&id, &status); err != nil {
		return 0, false, fmt.Errorf("lookup existing source file: %w", err)
	}
	if !force && (status == "active" || status == "loaded") {
		return id, true, nil
	}

	if err := UpdateStatus(ctx, pool, id, "pending", uuid.Nil); err != nil {
		return 0, false, fmt.Errorf("reset source file status: %w", err)
	}
	return id, false, nil
}
