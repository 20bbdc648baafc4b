package exitcode

const (
	Success         = 0
	UsageError      = 1
	ValidationError = 2
	DBConnError     = 3
	CopyError       = 4
	TransformError  = 5
	PartialSuccess  = 6
	LoadError       = 7
	CleanError      = 8
	ReportError     = 9
	ExportError     = 10
)
