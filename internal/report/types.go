package report

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/go-gota/gota/dataframe"

	"github.com/gyeh/attstats/internal/model"
)

// ColumnTypes returns each column with its kind as used by the summary:
// datetime for normalized date columns, otherwise the series type.
func ColumnTypes(df dataframe.DataFrame) [][2]string {
	names := df.Names()
	types := df.Types()
	out := make([][2]string, len(names))
	for i, name := range names {
		kind := string(types[i])
		if slices.Contains(model.DateColumns, name) {
			kind = "datetime"
		}
		out[i] = [2]string{name, kind}
	}
	return out
}

// PrintTypes writes the column types of df.
func PrintTypes(w io.Writer, df dataframe.DataFrame) {
	fmt.Fprintln(w, "\nTipos de dados das colunas:")
	records := make([][]string, 0, df.Ncol())
	for _, ct := range ColumnTypes(df) {
		records = append(records, []string{ct[0], ct[1]})
	}
	printTable(w, records)
}

func printTable(w io.Writer, records [][]string) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, rec := range records {
		fmt.Fprintln(tw, strings.Join(rec, "\t"))
	}
	tw.Flush()
}
