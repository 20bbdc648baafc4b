package model

import (
	"strconv"
	"time"

	"github.com/go-gota/gota/dataframe"
	"gopkg.in/guregu/null.v3"
)

// TimeLayout is the text form of normalized dates inside the frame.
const TimeLayout = "2006-01-02 15:04:05"

// HasColumn reports whether df has a column with the given name.
func HasColumn(df dataframe.DataFrame, name string) bool {
	for _, n := range df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// MissingColumns returns the names from want that are not in df, in order.
func MissingColumns(df dataframe.DataFrame, want ...string) []string {
	present := make(map[string]bool, df.Ncol())
	for _, n := range df.Names() {
		present[n] = true
	}
	var missing []string
	for _, w := range want {
		if !present[w] {
			missing = append(missing, w)
		}
	}
	return missing
}

// StringValues returns the column as nullable strings. A column absent from
// df yields all-invalid values.
func StringValues(df dataframe.DataFrame, name string) []null.String {
	out := make([]null.String, df.Nrow())
	if !HasColumn(df, name) {
		return out
	}
	col := df.Col(name)
	nan := col.IsNaN()
	for i, rec := range col.Records() {
		if !nan[i] {
			out[i] = null.StringFrom(rec)
		}
	}
	return out
}

// TimeValues returns a normalized date column as nullable times.
func TimeValues(df dataframe.DataFrame, name string) []null.Time {
	out := make([]null.Time, df.Nrow())
	for i, s := range StringValues(df, name) {
		if !s.Valid {
			continue
		}
		t, err := time.Parse(TimeLayout, s.String)
		if err == nil {
			out[i] = null.TimeFrom(t)
		}
	}
	return out
}

// IntValues returns the column as nullable integers; non-integer text is invalid.
func IntValues(df dataframe.DataFrame, name string) []null.Int {
	out := make([]null.Int, df.Nrow())
	for i, s := range StringValues(df, name) {
		if !s.Valid {
			continue
		}
		v, err := strconv.ParseInt(s.String, 10, 64)
		if err == nil {
			out[i] = null.IntFrom(v)
		}
	}
	return out
}

// BoolValues returns the column as nullable booleans.
func BoolValues(df dataframe.DataFrame, name string) []null.Bool {
	out := make([]null.Bool, df.Nrow())
	for i, s := range StringValues(df, name) {
		if !s.Valid {
			continue
		}
		v, err := strconv.ParseBool(s.String)
		if err == nil {
			out[i] = null.BoolFrom(v)
		}
	}
	return out
}

// NullRecords renders nullable strings as gota records, with "NaN" for
// missing values so that the resulting series marks them as NA.
func NullRecords(vals []null.String) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		if v.Valid {
			out[i] = v.String
		} else {
			out[i] = "NaN"
		}
	}
	return out
}
