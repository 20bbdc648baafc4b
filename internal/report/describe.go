package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"sort"
	"strconv"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/gyeh/attstats/internal/model"
)

// Statistic rows of the summary, in output order.
var SummaryStats = []string{"count", "unique", "top", "freq", "mean", "std", "min", "25%", "50%", "75%", "max"}

// ColumnSummary holds the statistics of one column; statistics that do not
// apply to the column's kind are absent from Values.
type ColumnSummary struct {
	Name   string
	Kind   string // "numeric", "datetime" or "text"
	Values map[string]string
}

// Summary is the descriptive summary of every column of a frame.
type Summary struct {
	Columns []ColumnSummary
}

// Describe summarizes every column: count/unique/top/freq for text and
// boolean columns, count/mean/std/min/quartiles/max for numeric columns and
// count/mean/min/quartiles/max for date columns.
func Describe(df dataframe.DataFrame, decimals int) Summary {
	var s Summary
	for _, name := range df.Names() {
		col := df.Col(name)
		var cs ColumnSummary
		switch {
		case slices.Contains(model.DateColumns, name):
			cs = describeDates(df, name)
		case col.Type() == series.Int || col.Type() == series.Float:
			cs = describeNumeric(col, decimals)
		default:
			cs = describeText(col)
		}
		cs.Name = name
		s.Columns = append(s.Columns, cs)
	}
	return s
}

func describeText(col series.Series) ColumnSummary {
	nan := col.IsNaN()
	freq := make(map[string]int)
	count := 0
	for i, rec := range col.Records() {
		if nan[i] {
			continue
		}
		count++
		freq[rec]++
	}
	cs := ColumnSummary{Kind: "text", Values: map[string]string{
		"count":  strconv.Itoa(count),
		"unique": strconv.Itoa(len(freq)),
	}}
	if count == 0 {
		return cs
	}
	labels := make([]string, 0, len(freq))
	for l := range freq {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	top := labels[0]
	for _, l := range labels[1:] {
		if freq[l] > freq[top] {
			top = l
		}
	}
	cs.Values["top"] = top
	cs.Values["freq"] = strconv.Itoa(freq[top])
	return cs
}

func describeNumeric(col series.Series, decimals int) ColumnSummary {
	var x []float64
	for _, v := range col.Float() {
		if !math.IsNaN(v) {
			x = append(x, v)
		}
	}
	cs := ColumnSummary{Kind: "numeric", Values: map[string]string{"count": strconv.Itoa(len(x))}}
	if len(x) == 0 {
		return cs
	}
	sort.Float64s(x)
	f := func(v float64) string {
		if math.IsNaN(v) {
			return ""
		}
		return strconv.FormatFloat(v, 'f', decimals, 64)
	}
	cs.Values["mean"] = f(stat.Mean(x, nil))
	if len(x) > 1 {
		cs.Values["std"] = f(stat.StdDev(x, nil))
	}
	cs.Values["min"] = f(floats.Min(x))
	cs.Values["25%"] = f(stat.Quantile(0.25, stat.LinInterp, x, nil))
	cs.Values["50%"] = f(stat.Quantile(0.5, stat.LinInterp, x, nil))
	cs.Values["75%"] = f(stat.Quantile(0.75, stat.LinInterp, x, nil))
	cs.Values["max"] = f(floats.Max(x))
	return cs
}

func describeDates(df dataframe.DataFrame, name string) ColumnSummary {
	var x []float64
	for _, t := range model.TimeValues(df, name) {
		if t.Valid {
			x = append(x, float64(t.Time.Unix()))
		}
	}
	cs := ColumnSummary{Kind: "datetime", Values: map[string]string{"count": strconv.Itoa(len(x))}}
	if len(x) == 0 {
		return cs
	}
	sort.Float64s(x)
	f := func(v float64) string {
		return time.Unix(int64(math.Round(v)), 0).UTC().Format(model.TimeLayout)
	}
	cs.Values["mean"] = f(stat.Mean(x, nil))
	cs.Values["min"] = f(x[0])
	cs.Values["25%"] = f(stat.Quantile(0.25, stat.LinInterp, x, nil))
	cs.Values["50%"] = f(stat.Quantile(0.5, stat.LinInterp, x, nil))
	cs.Values["75%"] = f(stat.Quantile(0.75, stat.LinInterp, x, nil))
	cs.Values["max"] = f(x[len(x)-1])
	return cs
}

// Records lays the summary out with one row per statistic and one column
// per frame column, preceded by a header row.
func (s Summary) Records() [][]string {
	header := make([]string, 0, len(s.Columns)+1)
	header = append(header, "")
	for _, c := range s.Columns {
		header = append(header, c.Name)
	}
	records := [][]string{header}
	for _, st := range SummaryStats {
		row := make([]string, 0, len(s.Columns)+1)
		row = append(row, st)
		for _, c := range s.Columns {
			row = append(row, c.Values[st])
		}
		records = append(records, row)
	}
	return records
}

// WriteCSV writes the summary records to path.
func (s Summary) WriteCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create summary csv: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.WriteAll(s.Records()); err != nil {
		return fmt.Errorf("write summary csv: %w", err)
	}
	return f.Close()
}

// Print writes the summary as an aligned table.
func (s Summary) Print(w io.Writer) {
	printTable(w, s.Records())
}
