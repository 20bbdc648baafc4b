package clean

import (
	"fmt"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/rs/zerolog"
	"gopkg.in/guregu/null.v3"

	"github.com/gyeh/attstats/internal/model"
	"github.com/gyeh/attstats/internal/normalize"
)

// DeriveFeatures adds age, age bracket, weekday, shift and weekend columns
// computed from the normalized dates. Columns whose source dates are absent
// from the frame are not added; the names of added columns are returned.
func DeriveFeatures(log zerolog.Logger, df dataframe.DataFrame) (dataframe.DataFrame, []string, error) {
	var derived []string
	n := df.Nrow()

	hasAttended := model.HasColumn(df, model.ColAttendedAt)
	hasBirth := model.HasColumn(df, model.ColBirthDate)
	attended := model.TimeValues(df, model.ColAttendedAt)
	birth := model.TimeValues(df, model.ColBirthDate)

	var cols []series.Series

	if hasAttended && hasBirth {
		ages := make([]string, n)
		brackets := make([]null.String, n)
		for i := 0; i < n; i++ {
			age := normalize.Age(attended[i], birth[i])
			ages[i] = intRecord(age)
			brackets[i] = normalize.AgeBracket(age)
		}
		cols = append(cols,
			series.New(ages, series.Int, model.ColAge),
			series.New(model.NullRecords(brackets), series.String, model.ColAgeBracket),
		)
	} else {
		log.Warn().Msg("attendance or birth date column absent, age not derived")
	}

	if hasAttended {
		weekdays := make([]null.String, n)
		shifts := make([]null.String, n)
		weekend := make([]bool, n)
		for i := 0; i < n; i++ {
			weekdays[i] = normalize.Weekday(attended[i])
			shifts[i] = normalize.Shift(attended[i])
			weekend[i] = normalize.IsWeekend(weekdays[i])
		}
		cols = append(cols,
			series.New(model.NullRecords(weekdays), series.String, model.ColWeekday),
			series.New(model.NullRecords(shifts), series.String, model.ColShift),
			series.New(weekend, series.Bool, model.ColWeekend),
		)
	} else {
		log.Warn().Msg("attendance date column absent, weekday and shift not derived")
	}

	for _, s := range cols {
		df = df.Mutate(s)
		if df.Err != nil {
			return df, derived, fmt.Errorf("add %q: %w", s.Name, df.Err)
		}
		derived = append(derived, s.Name)
	}

	log.Info().Strs("columns", derived).Int("rows", n).Msg("features derived")
	return df, derived, nil
}

func intRecord(v null.Int) string {
	if !v.Valid {
		return "NaN"
	}
	return strconv.FormatInt(v.Int64, 10)
}
