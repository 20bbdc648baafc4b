package report

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/rs/zerolog"
	"gonum.org/v1/plot/vg"

	"github.com/gyeh/attstats/internal/model"
)

// Output artifact names.
const (
	FileSummaryCSV     = "estatisticas_gerais.csv"
	FileSummaryXLSX    = "estatisticas_gerais.xlsx"
	FileAgeHistogram   = "distribuicao_idades.png"
	FileWeekday        = "atendimentos_dia_semana.png"
	FileShift          = "atendimentos_turno.png"
	FileFacilityType   = "atendimentos_tipo_unidade.png"
	FileMunicipalities = "municipios_atendimentos.png"
)

// ProportionFiles maps flag names to their chart file.
var ProportionFiles = map[string]string{
	"referred":       "proporcao_encaminhados_especialista.png",
	"exam_requested": "proporcao_solicitacao_exames.png",
	"hospitalized":   "proporcao_internacao.png",
}

// Options are the explicit settings of a reporting run.
type Options struct {
	OutputDir         string
	Decimals          int
	HistogramBins     int
	TopMunicipalities int
	Workbook          bool // also write FileSummaryXLSX
}

// DefaultOptions returns the settings used for the E-Saúde report.
func DefaultOptions() Options {
	return Options{
		OutputDir:         "output",
		Decimals:          2,
		HistogramBins:     30,
		TopMunicipalities: 10,
	}
}

// Outcome is the result of one analysis. Skipped analyses carry the reason;
// failed ones carry Err.
type Outcome struct {
	Name     string
	Artifact string
	Skipped  bool
	Reason   string
	Err      error
}

// Result holds every analysis outcome of a run.
type Result struct {
	Outcomes    []Outcome
	Summary     Summary
	Proportions []Proportion
	Duration    time.Duration
}

// Written returns the number of artifacts written.
func (r *Result) Written() int {
	n := 0
	for _, o := range r.Outcomes {
		if !o.Skipped && o.Err == nil && o.Artifact != "" {
			n++
		}
	}
	return n
}

// Skipped returns the number of skipped analyses.
func (r *Result) Skipped() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Skipped {
			n++
		}
	}
	return n
}

// skipError marks an analysis that found nothing to report.
type skipError struct{ reason string }

func (e *skipError) Error() string { return e.reason }

type analysis struct {
	name     string
	file     string
	heading  string
	requires []string
	run      func(path string) error
}

// Run executes every analysis over the cleaned frame, writing artifacts to
// opts.OutputDir and console output to out. The frame is not modified.
// Analyses missing a required column are skipped; the others still run.
// The returned error joins the failures of analyses that could not write
// their artifact.
func Run(log zerolog.Logger, out io.Writer, df dataframe.DataFrame, opts Options) (*Result, error) {
	start := time.Now()

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	res := &Result{}
	var failures []error
	for _, a := range analyses(out, df, opts, res) {
		o := Outcome{Name: a.name, Artifact: a.file}
		if a.heading != "" {
			fmt.Fprintf(out, "\n%s\n", a.heading)
		}

		if missing := model.MissingColumns(df, a.requires...); len(missing) > 0 {
			o.Skipped = true
			o.Reason = fmt.Sprintf("colunas necessárias ausentes: %s", strings.Join(missing, ", "))
		} else if err := a.run(filepath.Join(opts.OutputDir, a.file)); err != nil {
			var se *skipError
			if errors.As(err, &se) {
				o.Skipped = true
				o.Reason = se.reason
			} else {
				o.Err = err
				failures = append(failures, fmt.Errorf("%s: %w", a.name, err))
			}
		}

		switch {
		case o.Skipped:
			fmt.Fprintf(out, "Análise ignorada (%s): %s\n", a.name, o.Reason)
			log.Warn().Str("analysis", a.name).Str("reason", o.Reason).Msg("analysis skipped")
		case o.Err != nil:
			log.Error().Err(o.Err).Str("analysis", a.name).Msg("analysis failed")
		default:
			log.Info().Str("analysis", a.name).Str("artifact", a.file).Msg("artifact written")
		}
		res.Outcomes = append(res.Outcomes, o)
	}

	if opts.Workbook {
		o := Outcome{Name: "workbook", Artifact: FileSummaryXLSX}
		if err := WriteWorkbook(filepath.Join(opts.OutputDir, FileSummaryXLSX), res.Summary, res.Proportions); err != nil {
			o.Err = err
			failures = append(failures, fmt.Errorf("workbook: %w", err))
			log.Error().Err(err).Msg("workbook failed")
		}
		res.Outcomes = append(res.Outcomes, o)
	}

	res.Duration = time.Since(start)
	log.Info().
		Int("artifacts", res.Written()).
		Int("skipped", res.Skipped()).
		Str("duration", res.Duration.String()).
		Msg("report complete")

	return res, errors.Join(failures...)
}

func analyses(out io.Writer, df dataframe.DataFrame, opts Options, res *Result) []analysis {
	small := chartSpec{Width: 8 * vg.Inch, Height: 5 * vg.Inch}
	list := []analysis{
		{
			name:    "summary",
			file:    FileSummaryCSV,
			heading: "Resumo estatístico das colunas:",
			run: func(path string) error {
				res.Summary = Describe(df, opts.Decimals)
				res.Summary.Print(out)
				return res.Summary.WriteCSV(path)
			},
		},
		{
			name:     "age_histogram",
			file:     FileAgeHistogram,
			heading:  "Distribuição de Idades:",
			requires: []string{model.ColAge},
			run: func(path string) error {
				var ages []float64
				for _, a := range model.IntValues(df, model.ColAge) {
					if a.Valid {
						ages = append(ages, float64(a.Int64))
					}
				}
				if len(ages) == 0 {
					return &skipError{"nenhuma idade disponível"}
				}
				spec := small
				spec.Title, spec.XLabel, spec.YLabel = "Distribuição de Idades dos Pacientes", "Idade", "Frequência"
				return histogramChart(path, spec, ages, opts.HistogramBins)
			},
		},
		{
			name:     "weekday",
			file:     FileWeekday,
			heading:  "Distribuição de Atendimentos por Dia da Semana:",
			requires: []string{model.ColWeekday},
			run: func(path string) error {
				counts := OrderedCounts(model.StringValues(df, model.ColWeekday), model.WeekdayOrder)
				if total(counts) == 0 {
					return &skipError{"nenhum dia da semana disponível"}
				}
				spec := small
				spec.Title, spec.XLabel, spec.YLabel = "Distribuição de Atendimentos por Dia da Semana", "Dia da Semana", "Quantidade de Atendimentos"
				return countChart(path, spec, counts, false)
			},
		},
		{
			name:     "shift",
			file:     FileShift,
			heading:  "Distribuição por Turno de Atendimento:",
			requires: []string{model.ColShift},
			run: func(path string) error {
				counts := OrderedCounts(model.StringValues(df, model.ColShift), model.ShiftOrder)
				if total(counts) == 0 {
					return &skipError{"nenhum turno disponível"}
				}
				spec := small
				spec.Title, spec.XLabel, spec.YLabel = "Distribuição de Atendimentos por Turno", "Turno", "Quantidade de Atendimentos"
				return countChart(path, spec, counts, false)
			},
		},
		{
			name:     "facility_type",
			file:     FileFacilityType,
			heading:  "Distribuição de Atendimentos por Tipo de Unidade:",
			requires: []string{model.ColFacilityType},
			run: func(path string) error {
				counts := ValueCounts(model.StringValues(df, model.ColFacilityType))
				if len(counts) == 0 {
					return &skipError{"nenhum tipo de unidade disponível"}
				}
				spec := chartSpec{Width: 10 * vg.Inch, Height: 5 * vg.Inch,
					Title: "Distribuição de Atendimentos por Tipo de Unidade", XLabel: "Quantidade de Atendimentos", YLabel: "Tipo de Unidade"}
				return countChart(path, spec, counts, true)
			},
		},
		{
			name:     "municipalities",
			file:     FileMunicipalities,
			heading:  "Municípios que mais enviam pacientes para Curitiba:",
			requires: []string{model.ColMunicipality},
			run: func(path string) error {
				counts := Head(ValueCounts(model.StringValues(df, model.ColMunicipality)), opts.TopMunicipalities)
				if len(counts) == 0 {
					return &skipError{"nenhum município disponível"}
				}
				spec := chartSpec{Width: 17 * vg.Inch, Height: 5 * vg.Inch,
					Title: "Municípios que mais enviam pacientes para Curitiba", XLabel: "Quantidade de Atendimentos", YLabel: "Município"}
				return countChart(path, spec, counts, true)
			},
		},
	}

	for _, fc := range model.AllFlagColumns {
		fc := fc
		list = append(list, analysis{
			name:     "proportion_" + fc.Name,
			file:     ProportionFiles[fc.Name],
			heading:  fc.Title,
			requires: []string{fc.Column},
			run: func(path string) error {
				prop, err := ComputeProportion(df, fc)
				if err != nil {
					return err
				}
				if prop.Total == 0 {
					return &skipError{"nenhum atendimento"}
				}
				prop.Print(out)
				res.Proportions = append(res.Proportions, prop)
				spec := chartSpec{Width: 12 * vg.Inch, Height: 8 * vg.Inch,
					Title: fc.Title, XLabel: "Categorias", YLabel: "Proporção"}
				return proportionChart(path, spec, prop)
			},
		})
	}
	return list
}
