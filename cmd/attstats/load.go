package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gyeh/attstats/internal/clean"
	"github.com/gyeh/attstats/internal/db"
	"github.com/gyeh/attstats/internal/exitcode"
	"github.com/gyeh/attstats/internal/ingest"
	"github.com/gyeh/attstats/internal/logging"
	"github.com/gyeh/attstats/internal/model"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Clean the export and load it into Postgres",
	RunE:  runLoad,
}

func init() {
	f := loadCmd.Flags()
	f.BoolVar(&cfg.ActivateVersion, "activate-version", false, "Mark this file's rows as the active version")
	f.BoolVar(&cfg.Force, "force", false, "Re-load even if the file SHA already exists")
	f.BoolVar(&cfg.KeepStaging, "keep-staging", false, "Keep staging rows after transform")
	rootCmd.AddCommand(loadCmd)
}

func runLoad(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	res, err := clean.Run(log, cfg.InputPath, cfg.CleanOptions())
	if err != nil {
		exitPipeline(log, err)
	}

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	rows := model.RowsFromFrame(res.Frame, uuid.Nil)
	summary, err := ingest.Run(ctx, pool, log, &cfg, rows, uuid.Nil)
	if err != nil {
		pool.Close()
		var pe *ingest.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("load failed")
			switch pe.Phase {
			case "preflight":
				os.Exit(exitcode.ValidationError)
			case "stage":
				os.Exit(exitcode.CopyError)
			default:
				os.Exit(exitcode.TransformError)
			}
		}
		log.Error().Err(err).Msg("load failed")
		os.Exit(exitcode.TransformError)
	}

	if summary.AlreadyLoaded {
		fmt.Printf("File already loaded (source file %d); use --force to re-load\n", summary.SourceFileID)
		return nil
	}
	fmt.Printf("Load complete: %d rows staged, %d rows in esaude.attendances, %d rejected (%.1fs)\n",
		summary.RowsStaged, summary.RowsInserted, summary.RowsRejected, summary.DurationTotal.Seconds())
	if summary.RowsRejected > 0 {
		os.Exit(exitcode.PartialSuccess)
	}
	return nil
}
