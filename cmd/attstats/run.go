package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gyeh/attstats/internal/clean"
	"github.com/gyeh/attstats/internal/exitcode"
	"github.com/gyeh/attstats/internal/export"
	"github.com/gyeh/attstats/internal/logging"
	"github.com/gyeh/attstats/internal/model"
	"github.com/gyeh/attstats/internal/normalize"
	"github.com/gyeh/attstats/internal/report"
)

const (
	parquetFile = "atendimentos.parquet"
	sqliteFile  = "atendimentos.sqlite"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Clean the export and write the report, charts and exports",
	RunE:  runPipeline,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, runCmd} {
		f := c.Flags()
		f.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "Output directory for artifacts")
		f.BoolVar(&cfg.WriteParquet, "parquet", cfg.WriteParquet, "Write the cleaned table as Parquet")
		f.BoolVar(&cfg.WriteSQLite, "sqlite", cfg.WriteSQLite, "Write the cleaned table as SQLite")
		f.BoolVar(&cfg.WriteXLSX, "xlsx", cfg.WriteXLSX, "Write the summary workbook")
		f.IntVar(&cfg.TopMunicipalities, "top", cfg.TopMunicipalities, "Number of municipalities charted")
	}
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	totalStart := time.Now()

	if err := cfg.Validate(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}

	summary := model.RunSummary{RunID: uuid.NewString(), FilePath: cfg.InputPath}
	runLog := log.With().Str("run_id", summary.RunID).Logger()

	sha, err := normalize.FileHash(cfg.InputPath)
	if err != nil {
		runLog.Error().Err(err).Msg("failed to hash file")
		os.Exit(exitcode.LoadError)
	}
	summary.FileSHA256 = sha

	// Phase 1: Clean
	res, err := clean.Run(runLog, cfg.InputPath, cfg.CleanOptions())
	if err != nil {
		exitPipeline(runLog, err)
	}
	fmt.Printf("Dataset carregado com sucesso! %d registros e %d colunas.\n", res.RowsLoaded, res.ColumnsLoaded)
	report.PrintTypes(os.Stdout, res.Frame)

	summary.RowsLoaded = res.RowsLoaded
	summary.ColumnsLoaded = res.ColumnsLoaded
	summary.RowsRetained = res.Frame.Nrow()
	summary.ColumnsRetained = res.Frame.Ncol()
	summary.RowsDropped = res.RowsDropped
	summary.DatesCoerced = res.DatesCoerced
	summary.FlagsDefaulted = res.FlagsDefaulted
	summary.DurationClean = res.Duration

	// Phase 2: Report
	partial := false
	rep, err := report.Run(runLog, os.Stdout, res.Frame, cfg.ReportOptions())
	if rep == nil {
		runLog.Error().Err(err).Msg("report failed")
		os.Exit(exitcode.ReportError)
	}
	if err != nil {
		runLog.Error().Err(err).Msg("some analyses failed")
		partial = true
	}
	summary.ArtifactsWritten = rep.Written()
	summary.AnalysesSkipped = rep.Skipped()
	summary.DurationReport = rep.Duration

	// Phase 3: Export
	exportStart := time.Now()
	runID, _ := uuid.Parse(summary.RunID)
	rows := model.RowsFromFrame(res.Frame, runID)
	if err := writeExports(runLog, rows, &summary); err != nil {
		runLog.Error().Err(err).Msg("export failed")
		os.Exit(exitcode.ExportError)
	}
	summary.DurationExport = time.Since(exportStart)
	summary.DurationTotal = time.Since(totalStart)

	runLog.Info().
		Str("sha256", summary.FileSHA256).
		Int("rows_loaded", summary.RowsLoaded).
		Int("rows_retained", summary.RowsRetained).
		Int("rows_dropped", summary.RowsDropped).
		Int("artifacts", summary.ArtifactsWritten).
		Int("skipped", summary.AnalysesSkipped).
		Int("rows_exported", summary.RowsExported).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("run complete")

	fmt.Printf("\nRelatório gerado em %s: %d artefatos, %d análises ignoradas (%.1fs)\n",
		cfg.OutputDir, summary.ArtifactsWritten, summary.AnalysesSkipped, summary.DurationTotal.Seconds())

	if partial {
		os.Exit(exitcode.PartialSuccess)
	}
	return nil
}

func writeExports(log zerolog.Logger, rows []model.AttendanceRow, summary *model.RunSummary) error {
	if cfg.WriteParquet {
		path := filepath.Join(cfg.OutputDir, parquetFile)
		n, err := export.WriteParquet(path, rows)
		if err != nil {
			return err
		}
		log.Info().Str("artifact", parquetFile).Int64("rows", n).Msg("parquet export written")
		summary.RowsExported = int(n)
		summary.ArtifactsWritten++
	}
	if cfg.WriteSQLite {
		path := filepath.Join(cfg.OutputDir, sqliteFile)
		n, err := export.WriteSQLite(path, rows)
		if err != nil {
			return err
		}
		log.Info().Str("artifact", sqliteFile).Int64("rows", n).Msg("sqlite export written")
		summary.RowsExported = int(n)
		summary.ArtifactsWritten++
	}
	return nil
}

// exitPipeline logs a cleaning failure and exits with the code for its phase.
func exitPipeline(log zerolog.Logger, err error) {
	var pe *clean.PipelineError
	if errors.As(err, &pe) {
		log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("pipeline failed")
		if pe.Phase == "load" {
			os.Exit(exitcode.LoadError)
		}
		os.Exit(exitcode.CleanError)
	}
	log.Error().Err(err).Msg("pipeline failed")
	os.Exit(exitcode.CleanError)
}
