package report

import (
	"fmt"
	"io"
	"math"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/floats"

	"github.com/gyeh/attstats/internal/clean"
	"github.com/gyeh/attstats/internal/model"
)

// Proportion is the share of rows where a binary flag is set.
type Proportion struct {
	Flag  model.FlagColumn
	Total int
	Count int64
	Value float64
}

// Complement returns the share of rows where the flag is not set.
func (p Proportion) Complement() float64 {
	return 1 - p.Value
}

// ComputeProportion returns sum(flag)/rows for the flag column. Text labels
// are encoded first; an already numeric column must hold only 0, 1 or NaN.
// NaN counts towards rows but not towards the sum.
func ComputeProportion(df dataframe.DataFrame, fc model.FlagColumn) (Proportion, error) {
	if !model.HasColumn(df, fc.Column) {
		return Proportion{}, fmt.Errorf("column %q not found", fc.Column)
	}
	enc, _ := clean.EncodeFlagSeries(df.Col(fc.Column))

	vals := make([]float64, 0, enc.Len())
	for i, v := range enc.Float() {
		if math.IsNaN(v) {
			continue
		}
		if v != 0 && v != 1 {
			return Proportion{}, fmt.Errorf("column %q row %d: flag value %v is not 0 or 1", fc.Column, i+1, v)
		}
		vals = append(vals, v)
	}

	p := Proportion{Flag: fc, Total: enc.Len(), Count: int64(floats.Sum(vals))}
	if p.Total > 0 {
		p.Value = float64(p.Count) / float64(p.Total)
	}
	return p, nil
}

// Print writes the proportion in the console report format.
func (p Proportion) Print(w io.Writer) {
	fmt.Fprintf(w, "Total de Atendimentos: %d\n", p.Total)
	label := p.Flag.Label
	if label == "" {
		label = p.Flag.Column
	}
	fmt.Fprintf(w, "%s: %d (%s)\n", label, p.Count, formatPercent(p.Value))
}

func formatPercent(v float64) string {
	return fmt.Sprintf("%.2f%%", v*100)
}
