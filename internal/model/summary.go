package model

import "time"

// RunSummary captures metrics from a single pipeline run.
type RunSummary struct {
	RunID            string
	FilePath         string
	FileSHA256       string
	RowsLoaded       int
	ColumnsLoaded    int
	RowsRetained     int
	ColumnsRetained  int
	RowsDropped      int
	DatesCoerced     map[string]int
	FlagsDefaulted   map[string]int
	ArtifactsWritten int
	AnalysesSkipped  int
	RowsExported     int
	DurationClean    time.Duration
	DurationReport   time.Duration
	DurationExport   time.Duration
	DurationTotal    time.Duration
}

// LoadSummary captures metrics from a Postgres load of a cleaned run.
type LoadSummary struct {
	FilePath          string
	FileSHA256        string
	SourceFileID      int64
	RunID             string
	AlreadyLoaded     bool
	RowsRead          int64
	RowsStaged        int64
	RowsRejected      int64
	RowsInserted      int64
	DurationStage     time.Duration
	DurationTransform time.Duration
	DurationFinalize  time.Duration
	DurationTotal     time.Duration
}
