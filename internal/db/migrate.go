package db

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	embedsql "github.com/gyeh/attstats/internal/sql"
)

const migrationsDir = "migrations"

// Migrations returns the embedded esaude migration file names in apply order.
func Migrations() ([]string, error) {
	entries, err := fs.ReadDir(embedsql.Migrations, migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if !e.IsDir() && path.Ext(e.Name()) == ".sql" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// ApplyMigrations runs every embedded migration and returns the names applied.
// The DDL is written with IF NOT EXISTS, so rerunning is safe.
func ApplyMigrations(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) ([]string, error) {
	names, err := Migrations()
	if err != nil {
		return nil, err
	}

	var applied []string
	for _, name := range names {
		ddl, err := fs.ReadFile(embedsql.Migrations, path.Join(migrationsDir, name))
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", name, err)
		}
		if _, err := pool.Exec(ctx, string(ddl)); err != nil {
			return applied, fmt.Errorf("execute migration %s: %w", name, err)
		}
		applied = append(applied, name)
		log.Debug().Str("migration", name).Msg("migration applied")
	}

	log.Info().Strs("migrations", applied).Msg("esaude schema up to date")
	return applied, nil
}
