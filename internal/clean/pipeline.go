package clean

import (
	"fmt"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/rs/zerolog"

	"github.com/gyeh/attstats/internal/csvread"
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

// Options are the explicit settings of a cleaning run.
type Options struct {
	Reader      csvread.Options
	DropColumns []string
}

// DefaultOptions returns the settings used for the E-Saúde export.
func DefaultOptions() Options {
	return Options{
		Reader:      csvread.DefaultOptions(),
		DropColumns: model.DefaultDropColumns,
	}
}

// Result holds the cleaned frame and metrics from all cleaning phases.
type Result struct {
	Frame          dataframe.DataFrame
	RowsLoaded     int
	ColumnsLoaded  int
	MissingColumns []string
	Renamed        []string
	DatesCoerced   map[string]int
	Derived        []string
	ColumnsDropped []string
	RowsDropped    int
	FlagsDefaulted map[string]int
	Duration       time.Duration
}

// Run executes the full cleaning pipeline: load → correct → dates →
// derive → prune → flags.
func Run(log zerolog.Logger, path string, opts Options) (*Result, error) {
	start := time.Now()

	log.Info().Str("file", path).Msg("loading dataset")
	df, err := csvread.Load(path, opts.Reader)
	if err != nil {
		return nil, &PipelineError{Phase: "load", Err: err}
	}
	log.Info().
		Int("rows", df.Nrow()).
		Int("columns", df.Ncol()).
		Dur("duration", time.Since(start)).
		Msg("dataset loaded")

	res, err := Clean(log, df, opts)
	if err != nil {
		return nil, err
	}
	res.Duration = time.Since(start)
	return res, nil
}

// Clean runs every phase after loading on an in-memory frame.
func Clean(log zerolog.Logger, df dataframe.DataFrame, opts Options) (*Result, error) {
	start := time.Now()
	res := &Result{
		RowsLoaded:    df.Nrow(),
		ColumnsLoaded: df.Ncol(),
	}

	missing, err := csvread.ValidateSchema(df)
	if err != nil {
		return nil, &PipelineError{Phase: "validate", Err: err}
	}
	res.MissingColumns = missing
	for _, col := range missing {
		log.Warn().Str("column", col).Msg("expected column not present")
	}

	df, res.Renamed, err = CorrectColumns(df)
	if err != nil {
		return nil, &PipelineError{Phase: "correct", Err: err}
	}

	df, res.DatesCoerced, err = NormalizeDates(log, df)
	if err != nil {
		return nil, &PipelineError{Phase: "dates", Err: err}
	}

	df, res.Derived, err = DeriveFeatures(log, df)
	if err != nil {
		return nil, &PipelineError{Phase: "derive", Err: err}
	}

	pr, err := Prune(log, df, opts.DropColumns)
	if err != nil {
		return nil, &PipelineError{Phase: "prune", Err: err}
	}
	df = pr.Frame
	res.ColumnsDropped = pr.ColumnsDropped
	res.RowsDropped = pr.RowsDropped

	df, res.FlagsDefaulted, err = EncodeFlags(log, df)
	if err != nil {
		return nil, &PipelineError{Phase: "flags", Err: err}
	}

	res.Frame = df
	res.Duration = time.Since(start)

	log.Info().
		Int("rows_loaded", res.RowsLoaded).
		Int("rows_retained", df.Nrow()).
		Int("rows_dropped", res.RowsDropped).
		Int("columns_retained", df.Ncol()).
		Str("duration", res.Duration.String()).
		Msg("cleaning complete")

	return res, nil
}
