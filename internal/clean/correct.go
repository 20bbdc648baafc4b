package clean

import (
	"fmt"
	"sort"

	"github.com/go-gota/gota/dataframe"

	"github.com/gyeh/attstats/internal/model"
)

// CorrectColumns renames known misspelled headers to their canonical names.
// Headers that are absent are skipped, so the call is idempotent.
func CorrectColumns(df dataframe.DataFrame) (dataframe.DataFrame, []string, error) {
	wrongs := make([]string, 0, len(model.HeaderCorrections))
	for wrong := range model.HeaderCorrections {
		wrongs = append(wrongs, wrong)
	}
	sort.Strings(wrongs)

	var renamed []string
	for _, wrong := range wrongs {
		right := model.HeaderCorrections[wrong]
		if !model.HasColumn(df, wrong) {
			continue
		}
		if model.HasColumn(df, right) {
			return df, renamed, fmt.Errorf("cannot rename %q: %q already exists", wrong, right)
		}
		df = df.Rename(right, wrong)
		if df.Err != nil {
			return df, renamed, fmt.Errorf("rename %q: %w", wrong, df.Err)
		}
		renamed = append(renamed, wrong)
	}
	return df, renamed, nil
}
