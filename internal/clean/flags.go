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

// EncodeFlagSeries encodes a Sim/Nao column as Int 0/1. Values that are
// neither label, including missing ones, become 0 and are counted. A column
// that is already Int is returned unchanged.
func EncodeFlagSeries(s series.Series) (series.Series, int) {
	if s.Type() == series.Int {
		return s, 0
	}
	nan := s.IsNaN()
	recs := s.Records()
	out := make([]string, len(recs))
	defaulted := 0
	for i, rec := range recs {
		var v int64
		var ok bool
		if !nan[i] {
			v, ok = normalize.EncodeFlag(null.StringFrom(rec))
		}
		if !ok {
			defaulted++
		}
		out[i] = strconv.FormatInt(v, 10)
	}
	return series.New(out, series.Int, s.Name), defaulted
}

// EncodeFlags encodes every binary flag column present in df.
func EncodeFlags(log zerolog.Logger, df dataframe.DataFrame) (dataframe.DataFrame, map[string]int, error) {
	defaulted := make(map[string]int)
	for _, fc := range model.AllFlagColumns {
		if !model.HasColumn(df, fc.Column) {
			continue
		}
		enc, n := EncodeFlagSeries(df.Col(fc.Column))
		df = df.Mutate(enc)
		if df.Err != nil {
			return df, defaulted, fmt.Errorf("encode %q: %w", fc.Column, df.Err)
		}
		if n > 0 {
			defaulted[fc.Name] = n
			log.Warn().Str("column", fc.Column).Int("defaulted", n).Msg("unrecognized flag values set to 0")
		}
	}
	return df, defaulted, nil
}
