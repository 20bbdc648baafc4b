package report

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gopkg.in/guregu/null.v3"

	"github.com/gyeh/attstats/internal/clean"
	"github.com/gyeh/attstats/internal/csvread"
	"github.com/gyeh/attstats/internal/model"
)

var attendances = []string{
	"Data do Atendimento;Data de Nascimento;Data do Internamento;Municício;Tipo de Unidade;" +
		"Código do CID;Encaminhado para Especialista;Solicitação de Exames;Desencadeou Internamento",
	"13/08/2018 05:10:00;01/01/2000;;CURITIBA;UPA;J06;Sim;Nao;Nao",
	"14/08/2018 10:00:00;01/01/1980;;CURITIBA;UMS;R50;Nao;Sim;Nao",
	"15/08/2018 20:30:00;01/01/1950;15/08/2018 22:00:00;ARAUCÁRIA;UPA;I10;Nao;Sim;Sim",
	"18/08/2018 12:00:00;01/01/2010;;PINHAIS;UPA;J00;Sim;Nao;Nao",
}

func cleaned(t *testing.T, lines ...string) dataframe.DataFrame {
	t.Helper()
	df, err := csvread.Read(strings.NewReader(strings.Join(lines, "\n")+"\n"),
		csvread.Options{Delimiter: ';', Encoding: "utf-8"})
	require.NoError(t, err)
	res, err := clean.Clean(zerolog.Nop(), df, clean.DefaultOptions())
	require.NoError(t, err)
	return res.Frame
}

func strs(vals ...string) []null.String {
	out := make([]null.String, len(vals))
	for i, v := range vals {
		if v != "" {
			out[i] = null.StringFrom(v)
		}
	}
	return out
}

func flag(t *testing.T, name string) model.FlagColumn {
	t.Helper()
	fc, ok := model.FlagColumnByName(name)
	require.True(t, ok, name)
	return fc
}

func TestValueCounts(t *testing.T) {
	got := ValueCounts(strs("UPA", "UMS", "UPA", "", "CMUM", "UMS", "UPA"))
	assert.Equal(t, []Count{{"UPA", 3}, {"UMS", 2}, {"CMUM", 1}}, got)
	assert.Equal(t, []Count{{"UPA", 3}}, Head(got, 1))
	assert.Len(t, Head(got, 10), 3)
}

func TestOrderedCounts(t *testing.T) {
	got := OrderedCounts(strs(model.ShiftNight, model.ShiftDay, model.ShiftDay, "Tarde"), model.ShiftOrder)
	assert.Equal(t, []Count{
		{model.ShiftNightEarly, 0},
		{model.ShiftDay, 2},
		{model.ShiftNight, 1},
	}, got)
	assert.Equal(t, 3, total(got))
}

func TestComputeProportion(t *testing.T) {
	df := cleaned(t, attendances...)

	p, err := ComputeProportion(df, flag(t, "referred"))
	require.NoError(t, err)
	assert.Equal(t, 4, p.Total)
	assert.Equal(t, int64(2), p.Count)
	assert.InDelta(t, 0.5, p.Value, 1e-9)
	assert.InDelta(t, 1.0, p.Value+p.Complement(), 1e-9)

	p, err = ComputeProportion(df, flag(t, "hospitalized"))
	require.NoError(t, err)
	assert.InDelta(t, 0.25, p.Value, 1e-9)
}

func TestComputeProportion_Extremes(t *testing.T) {
	fc := flag(t, "exam_requested")
	all := dataframe.New(series.New([]string{"Sim", "Sim"}, series.String, fc.Column))
	p, err := ComputeProportion(all, fc)
	require.NoError(t, err)
	assert.Equal(t, 1.0, p.Value)
	assert.Equal(t, 0.0, p.Complement())

	none := dataframe.New(series.New([]string{"Nao", "Não", ""}, series.String, fc.Column))
	p, err = ComputeProportion(none, fc)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p.Value)
	assert.Equal(t, 3, p.Total)
}

func TestComputeProportion_AlreadyEncoded(t *testing.T) {
	fc := flag(t, "referred")
	df := dataframe.New(series.New([]int{1, 0, 0, 1}, series.Int, fc.Column))
	p, err := ComputeProportion(df, fc)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, p.Value, 1e-9)

	again, err := ComputeProportion(df, fc)
	require.NoError(t, err)
	assert.Equal(t, p, again)
}

func TestComputeProportion_NumericValues(t *testing.T) {
	fc := flag(t, "hospitalized")

	withNaN := dataframe.New(series.New([]string{"1", "NaN", "0", "1"}, series.Int, fc.Column))
	p, err := ComputeProportion(withNaN, fc)
	require.NoError(t, err)
	assert.Equal(t, 4, p.Total)
	assert.Equal(t, int64(2), p.Count)
	assert.InDelta(t, 0.5, p.Value, 1e-9)

	outOfRange := dataframe.New(series.New([]int{1, 2, 0}, series.Int, fc.Column))
	_, err = ComputeProportion(outOfRange, fc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 2")
}

func TestComputeProportion_MissingColumn(t *testing.T) {
	df := dataframe.New(series.New([]string{"J06"}, series.String, model.ColCIDCode))
	_, err := ComputeProportion(df, flag(t, "hospitalized"))
	assert.Error(t, err)
}

func TestProportionPrint(t *testing.T) {
	var buf bytes.Buffer
	Proportion{Flag: flag(t, "hospitalized"), Total: 4, Count: 1, Value: 0.25}.Print(&buf)
	assert.Contains(t, buf.String(), "Total de Atendimentos: 4")
	assert.Contains(t, buf.String(), "Atendimentos que desencadearam internação: 1 (25.00%)")

	buf.Reset()
	Proportion{Flag: model.FlagColumn{Column: "Outro Indicador"}, Total: 2, Count: 1, Value: 0.5}.Print(&buf)
	assert.Contains(t, buf.String(), "Outro Indicador: 1 (50.00%)")
}

func TestDescribe(t *testing.T) {
	df := cleaned(t, attendances...)
	s := Describe(df, 2)

	byName := make(map[string]ColumnSummary)
	for _, c := range s.Columns {
		byName[c.Name] = c
	}
	require.Len(t, s.Columns, df.Ncol())

	age := byName[model.ColAge]
	assert.Equal(t, "numeric", age.Kind)
	assert.Equal(t, "4", age.Values["count"])
	assert.Equal(t, "8.00", age.Values["min"])
	assert.Equal(t, "68.00", age.Values["max"])

	mun := byName[model.ColMunicipality]
	assert.Equal(t, "text", mun.Kind)
	assert.Equal(t, "3", mun.Values["unique"])
	assert.Equal(t, "CURITIBA", mun.Values["top"])
	assert.Equal(t, "2", mun.Values["freq"])

	att := byName[model.ColAttendedAt]
	assert.Equal(t, "datetime", att.Kind)
	assert.Equal(t, "2018-08-13 05:10:00", att.Values["min"])
	assert.Equal(t, "2018-08-18 12:00:00", att.Values["max"])

	adm := byName[model.ColAdmittedAt]
	assert.Equal(t, "1", adm.Values["count"])

	records := s.Records()
	assert.Len(t, records, len(SummaryStats)+1)
	assert.Equal(t, "", records[0][0])
	assert.Equal(t, "count", records[1][0])
}

func TestColumnTypes(t *testing.T) {
	df := cleaned(t, attendances...)
	kinds := make(map[string]string)
	for _, ct := range ColumnTypes(df) {
		kinds[ct[0]] = ct[1]
	}
	assert.Equal(t, "datetime", kinds[model.ColAttendedAt])
	assert.Equal(t, "int", kinds[model.ColAge])
	assert.Equal(t, "string", kinds[model.ColMunicipality])

	var buf bytes.Buffer
	PrintTypes(&buf, df)
	assert.Contains(t, buf.String(), "Tipos de dados das colunas:")
	assert.Contains(t, buf.String(), model.ColShift)
}

func TestRun_WritesAllArtifacts(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultOptions()
	opts.OutputDir = filepath.Join(dir, "output")

	var out bytes.Buffer
	res, err := Run(zerolog.Nop(), &out, cleaned(t, attendances...), opts)
	require.NoError(t, err)
	assert.Zero(t, res.Skipped())

	want := []string{FileSummaryCSV, FileAgeHistogram, FileWeekday, FileShift, FileFacilityType, FileMunicipalities}
	for _, f := range ProportionFiles {
		want = append(want, f)
	}
	assert.Equal(t, len(want), res.Written())
	for _, f := range want {
		info, err := os.Stat(filepath.Join(opts.OutputDir, f))
		require.NoError(t, err, f)
		assert.Positive(t, info.Size(), f)
	}
	assert.Len(t, res.Proportions, 3)

	// A default run leaves exactly one CSV and eight PNGs.
	entries, err := os.ReadDir(opts.OutputDir)
	require.NoError(t, err)
	var csvs, pngs int
	for _, e := range entries {
		switch filepath.Ext(e.Name()) {
		case ".csv":
			csvs++
		case ".png":
			pngs++
		default:
			t.Errorf("unexpected artifact %s", e.Name())
		}
	}
	assert.Equal(t, 1, csvs)
	assert.Equal(t, 8, pngs)

	console := out.String()
	assert.Contains(t, console, "Resumo estatístico das colunas:")
	assert.Contains(t, console, "Total de Atendimentos: 4")
	assert.Contains(t, console, "Proporção de Atendimentos Encaminhados para Especialistas")
	assert.Contains(t, console, "Atendimentos encaminhados para especialistas: 2 (50.00%)")
	assert.Contains(t, console, "Atendimentos com solicitação de exames: 2 (50.00%)")
	assert.Contains(t, console, "Atendimentos que desencadearam internação: 1 (25.00%)")
}

func TestRun_Workbook(t *testing.T) {
	opts := DefaultOptions()
	opts.OutputDir = t.TempDir()
	opts.Workbook = true

	res, err := Run(zerolog.Nop(), io.Discard, cleaned(t, attendances...), opts)
	require.NoError(t, err)
	assert.Equal(t, 10, res.Written())

	wb, err := excelize.OpenFile(filepath.Join(opts.OutputDir, FileSummaryXLSX))
	require.NoError(t, err)
	defer wb.Close()
	rows, err := wb.GetRows(proportionSheet)
	require.NoError(t, err)
	assert.Len(t, rows, 4)
}

func TestRun_SkipsAnalysesWithMissingColumns(t *testing.T) {
	df := cleaned(t,
		"Data do Atendimento;Código do CID;Encaminhado para Especialista",
		"13/08/2018 05:10:00;J06;Sim",
		"14/08/2018 10:00:00;R50;Nao",
	)
	opts := DefaultOptions()
	opts.OutputDir = t.TempDir()

	var out bytes.Buffer
	res, err := Run(zerolog.Nop(), &out, df, opts)
	require.NoError(t, err)

	skipped := make(map[string]bool)
	for _, o := range res.Outcomes {
		if o.Skipped {
			skipped[o.Name] = true
			assert.NotEmpty(t, o.Reason, o.Name)
		}
	}
	for _, name := range []string{"age_histogram", "facility_type", "municipalities", "proportion_exam_requested", "proportion_hospitalized"} {
		assert.True(t, skipped[name], name)
	}
	for _, name := range []string{"summary", "weekday", "shift", "proportion_referred"} {
		assert.False(t, skipped[name], name)
	}

	_, err = os.Stat(filepath.Join(opts.OutputDir, FileWeekday))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(opts.OutputDir, FileAgeHistogram))
	assert.True(t, os.IsNotExist(err))
	assert.Contains(t, out.String(), "Análise ignorada (age_histogram)")
}
