package clean

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/rs/zerolog"
	"gopkg.in/guregu/null.v3"

	"github.com/gyeh/attstats/internal/model"
	"github.com/gyeh/attstats/internal/normalize"
)

// NormalizeDates parses the date columns day-first and rewrites them in
// model.TimeLayout. Unparsable values become missing; the number of such
// coercions per column is returned.
func NormalizeDates(log zerolog.Logger, df dataframe.DataFrame) (dataframe.DataFrame, map[string]int, error) {
	coerced := make(map[string]int)
	for _, col := range model.DateColumns {
		if !model.HasColumn(df, col) {
			continue
		}
		raw := model.StringValues(df, col)
		out := make([]null.String, len(raw))
		for i, v := range raw {
			if !v.Valid {
				continue
			}
			t := normalize.ParseDate(v.String)
			if !t.Valid {
				coerced[col]++
				continue
			}
			out[i] = normalize.FormatDate(t, model.TimeLayout)
		}

		df = df.Mutate(series.New(model.NullRecords(out), series.String, col))
		if df.Err != nil {
			return df, coerced, fmt.Errorf("replace %q: %w", col, df.Err)
		}
		if n := coerced[col]; n > 0 {
			log.Warn().Str("column", col).Int("coerced", n).Msg("unparsable dates set to missing")
		}
	}
	return df, coerced, nil
}
