package export

import (
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/gyeh/attstats/internal/model"
)

// SQLiteTable is the table written by WriteSQLite.
const SQLiteTable = "atendimentos"

var sqliteTypes = map[string]string{
	"row_number":     "INTEGER",
	"referred":       "INTEGER",
	"exam_requested": "INTEGER",
	"hospitalized":   "INTEGER",
	"age":            "INTEGER",
	"weekend":        "INTEGER",
}

// WriteSQLite writes rows into a fresh SQLite database at path and returns the
// number of rows inserted. Dates are stored as text in model.TimeLayout.
func WriteSQLite(path string, rows []model.AttendanceRow) (int64, error) {
	_ = os.Remove(path)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return 0, fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	cols := model.AttendanceColumns()
	defs := make([]string, len(cols))
	for i, c := range cols {
		t := sqliteTypes[c]
		if t == "" {
			t = "TEXT"
		}
		defs[i] = fmt.Sprintf("%q %s", c, t)
	}
	if _, err := db.Exec(fmt.Sprintf(`CREATE TABLE %q (%s)`, SQLiteTable, strings.Join(defs, ","))); err != nil {
		return 0, fmt.Errorf("create table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	ph := strings.TrimRight(strings.Repeat("?,", len(cols)), ",")
	stmt, err := tx.Prepare(fmt.Sprintf(`INSERT INTO %q (%s) VALUES (%s)`, SQLiteTable, strings.Join(cols, ","), ph))
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	var n int64
	for i := range rows {
		if _, err := stmt.Exec(sqliteValues(&rows[i])...); err != nil {
			return n, fmt.Errorf("insert row %d: %w", rows[i].RowNumber, err)
		}
		n++
	}

	for _, idx := range []string{
		`CREATE INDEX IF NOT EXISTS idx_atendimentos_municipality ON atendimentos(municipality)`,
		`CREATE INDEX IF NOT EXISTS idx_atendimentos_cid_code ON atendimentos(cid_code)`,
	} {
		if _, err := tx.Exec(idx); err != nil {
			return n, fmt.Errorf("create index: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}

func sqliteValues(r *model.AttendanceRow) []any {
	vals := r.CopyValues()
	for i, v := range vals {
		vals[i] = sqliteValue(v)
	}
	return vals
}

func sqliteValue(v any) any {
	switch t := v.(type) {
	case *string:
		if t == nil {
			return nil
		}
		return *t
	case *int64:
		if t == nil {
			return nil
		}
		return *t
	case *time.Time:
		if t == nil {
			return nil
		}
		return t.Format(model.TimeLayout)
	case uuid.UUID:
		return t.String()
	case bool:
		if t {
			return 1
		}
		return 0
	default:
		return t
	}
}
