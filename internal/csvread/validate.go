package csvread

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"

	"github.com/gyeh/attstats/internal/model"
)

// ValidateSchema checks that the frame has columns and reports which of the
// expected E-Saúde columns are absent. Missing expected columns are not an
// error: stages that need them skip their work.
func ValidateSchema(df dataframe.DataFrame) ([]string, error) {
	if df.Ncol() == 0 {
		return nil, fmt.Errorf("no columns found")
	}
	// A misspelled header still counts; the corrector renames it later.
	aliased := make(map[string]bool)
	for wrong, right := range model.HeaderCorrections {
		if model.HasColumn(df, wrong) {
			aliased[right] = true
		}
	}
	var expected []string
	for _, col := range model.ExpectedColumns {
		if !aliased[col] {
			expected = append(expected, col)
		}
	}
	return model.MissingColumns(df, expected...), nil
}
