package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault_Valid(t *testing.T) {
	c := Default()
	c.InputPath = writeFile(t, "esaude.csv", "x\n")
	require.NoError(t, c.Validate())
	assert.Equal(t, ';', c.ReaderOptions().Delimiter)
	assert.False(t, c.WriteParquet)
	assert.False(t, c.WriteSQLite)
	assert.False(t, c.WriteXLSX)
	assert.False(t, c.ReportOptions().Workbook)
	assert.Len(t, c.DropColumns, 11)
}

func TestLoadFromFile_MergesKeys(t *testing.T) {
	path := writeFile(t, "config.yaml", "output_dir: relatorios\ntop_municipalities: 5\nwrite_sqlite: true\n")

	c := Default()
	require.NoError(t, c.LoadFromFile(path))
	assert.Equal(t, "relatorios", c.OutputDir)
	assert.Equal(t, 5, c.TopMunicipalities)
	assert.True(t, c.WriteSQLite)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, 30, c.HistogramBins)
	assert.Equal(t, "iso-8859-1", c.Encoding)
}

func TestLoadFromFile_DropColumnsReplaced(t *testing.T) {
	path := writeFile(t, "config.yaml", "drop_columns:\n  - Código da Unidade\n")
	c := Default()
	require.NoError(t, c.LoadFromFile(path))
	assert.Equal(t, []string{"Código da Unidade"}, c.DropColumns)
	assert.Equal(t, []string{"Código da Unidade"}, c.CleanOptions().DropColumns)
}

func TestLoadFromFile_MissingFile(t *testing.T) {
	c := Default()
	assert.Error(t, c.LoadFromFile("/nonexistent/config.yaml"))
}

func TestLoadFromFile_Malformed(t *testing.T) {
	path := writeFile(t, "config.yaml", "top_municipalities: [\n")
	c := Default()
	assert.Error(t, c.LoadFromFile(path))
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("ATTSTATS_DB_URL", "postgresql://localhost/esaude")
	t.Setenv("ATTSTATS_LOG_FORMAT", "json")
	t.Setenv("ATTSTATS_DECIMALS", "3")

	c := Default()
	require.NoError(t, c.LoadEnv())
	assert.Equal(t, "postgresql://localhost/esaude", c.DSN)
	assert.Equal(t, "json", c.LogFormat)
	assert.Equal(t, 3, c.Decimals)
	assert.Equal(t, 10, c.TopMunicipalities)
	assert.Equal(t, 3, c.ReportOptions().Decimals)
}

func TestLoadEnv_BadValue(t *testing.T) {
	t.Setenv("ATTSTATS_HISTOGRAM_BINS", "muitos")
	c := Default()
	assert.Error(t, c.LoadEnv())
}

func TestValidate(t *testing.T) {
	input := writeFile(t, "esaude.csv", "x\n")
	cases := map[string]func(c *Config){
		"missing input":   func(c *Config) { c.InputPath = "" },
		"absent input":    func(c *Config) { c.InputPath = filepath.Join(t.TempDir(), "missing.csv") },
		"bad log format":  func(c *Config) { c.LogFormat = "xml" },
		"bad encoding":    func(c *Config) { c.Encoding = "ebcdic" },
		"long delimiter":  func(c *Config) { c.Delimiter = ";;" },
		"zero bins":       func(c *Config) { c.HistogramBins = 0 },
		"negative digits": func(c *Config) { c.Decimals = -1 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := Default()
			c.InputPath = input
			mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestValidateWithDSN(t *testing.T) {
	c := Default()
	c.InputPath = writeFile(t, "esaude.csv", "x\n")
	assert.Error(t, c.ValidateWithDSN())

	c.DSN = "postgresql://localhost/esaude"
	assert.NoError(t, c.ValidateWithDSN())
}
