package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// ApplicationName tags attstats sessions in pg_stat_activity unless the DSN
// sets its own application_name.
const ApplicationName = "attstats"

// NewPool connects to the database holding the esaude schema and pings it.
func NewPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := poolConfig(dsn)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// poolConfig parses dsn and sets the session parameters of a load: no
// statement timeout, esaude first on the search path.
func poolConfig(dsn string) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	params := cfg.ConnConfig.RuntimeParams
	params["statement_timeout"] = "0"
	if _, ok := params["search_path"]; !ok {
		params["search_path"] = "esaude,public"
	}
	if _, ok := params["application_name"]; !ok {
		params["application_name"] = ApplicationName
	}
	return cfg, nil
}
