package clean

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/rs/zerolog"

	"github.com/gyeh/attstats/internal/model"
)

// PruneResult holds the pruned frame and what was removed.
type PruneResult struct {
	Frame          dataframe.DataFrame
	ColumnsDropped []string
	RowsDropped    int
}

// Prune drops the listed columns that are present, then deletes every row
// whose CID code is missing.
func Prune(log zerolog.Logger, df dataframe.DataFrame, drop []string) (*PruneResult, error) {
	res := &PruneResult{}

	for _, col := range drop {
		if col == model.ColCIDCode {
			return nil, fmt.Errorf("refusing to drop mandatory column %q", col)
		}
		if model.HasColumn(df, col) {
			res.ColumnsDropped = append(res.ColumnsDropped, col)
		}
	}
	if len(res.ColumnsDropped) > 0 {
		df = df.Drop(res.ColumnsDropped)
		if df.Err != nil {
			return nil, fmt.Errorf("drop columns: %w", df.Err)
		}
	}

	if !model.HasColumn(df, model.ColCIDCode) {
		return nil, fmt.Errorf("mandatory column %q not found", model.ColCIDCode)
	}

	nan := df.Col(model.ColCIDCode).IsNaN()
	keep := make([]int, 0, len(nan))
	for i, missing := range nan {
		if !missing {
			keep = append(keep, i)
		}
	}
	res.RowsDropped = len(nan) - len(keep)

	var err error
	if res.RowsDropped > 0 {
		df, err = subsetRows(df, keep)
		if err != nil {
			return nil, err
		}
	}
	res.Frame = df

	log.Info().
		Strs("columns_dropped", res.ColumnsDropped).
		Int("rows_dropped", res.RowsDropped).
		Int("rows_retained", df.Nrow()).
		Msg("pruning complete")

	return res, nil
}

// subsetRows keeps the rows at the given indexes, preserving column types
// even when no row survives.
func subsetRows(df dataframe.DataFrame, keep []int) (dataframe.DataFrame, error) {
	if len(keep) > 0 {
		out := df.Subset(keep)
		if out.Err != nil {
			return df, fmt.Errorf("subset rows: %w", out.Err)
		}
		return out, nil
	}

	cols := make([]series.Series, 0, df.Ncol())
	for _, name := range df.Names() {
		cols = append(cols, series.New([]string{}, df.Col(name).Type(), name))
	}
	out := dataframe.New(cols...)
	if out.Err != nil {
		return df, fmt.Errorf("empty frame: %w", out.Err)
	}
	return out, nil
}
