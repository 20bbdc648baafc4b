package export

import (
	"fmt"
	"io"
	"os"

	goparquet "github.com/parquet-go/parquet-go"

	"github.com/gyeh/attstats/internal/model"
)

const readBatchSize = 1024

// WriteParquet writes rows to a Parquet file at path, replacing any existing
// file. It returns the number of rows written.
func WriteParquet(path string, rows []model.AttendanceRow) (int64, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create parquet file: %w", err)
	}
	defer f.Close()

	writer := goparquet.NewGenericWriter[model.AttendanceRow](f)
	n, err := writer.Write(rows)
	if err != nil {
		return 0, fmt.Errorf("write parquet: %w", err)
	}
	if err := writer.Close(); err != nil {
		return 0, fmt.Errorf("close parquet writer: %w", err)
	}
	if err := f.Close(); err != nil {
		return 0, fmt.Errorf("close parquet file: %w", err)
	}
	return int64(n), nil
}

// ReadParquet reads every row of a Parquet file written by WriteParquet.
func ReadParquet(path string) ([]model.AttendanceRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open parquet file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat parquet file: %w", err)
	}
	pf, err := goparquet.OpenFile(f, stat.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}

	reader := goparquet.NewGenericReader[model.AttendanceRow](pf)
	defer reader.Close()

	rows := make([]model.AttendanceRow, 0, reader.NumRows())
	buf := make([]model.AttendanceRow, readBatchSize)
	for {
		n, readErr := reader.Read(buf)
		rows = append(rows, buf[:n]...)
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, fmt.Errorf("read parquet at row %d: %w", len(rows), readErr)
		}
	}
	return rows, nil
}
