package csvread

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/gyeh/attstats/internal/model"
)

func writeLatin1(t *testing.T, content string) string {
	t.Helper()
	enc, err := charmap.ISO8859_1.NewEncoder().String(content)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "esaude.csv")
	require.NoError(t, os.WriteFile(path, []byte(enc), 0o644))
	return path
}

func TestLoad_TrimsHeadersAndDecodesLatin1(t *testing.T) {
	path := writeLatin1(t, strings.Join([]string{
		" Data do Atendimento ;Municício  ;Código do CID;Sexo",
		"13/08/2018 07:00:00;SÃO JOSÉ DOS PINHAIS;J06;F",
		"14/08/2018 21:30:00;CURITIBA;;M",
	}, "\n")+"\n")

	df, err := Load(path, DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, []string{"Data do Atendimento", "Municício", "Código do CID", "Sexo"}, df.Names())
	assert.Equal(t, 2, df.Nrow())
	assert.Equal(t, []string{"SÃO JOSÉ DOS PINHAIS", "CURITIBA"}, df.Col("Municício").Records())
	assert.Equal(t, []bool{false, true}, df.Col("Código do CID").IsNaN())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"), DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open csv file")
}

func TestLoad_Malformed(t *testing.T) {
	path := writeLatin1(t, "a;b\n1;2;3\n")
	_, err := Load(path, DefaultOptions())
	assert.Error(t, err)
}

func TestLoad_DuplicateAfterTrim(t *testing.T) {
	path := writeLatin1(t, "Idade;Idade \n1;2\n")
	_, err := Load(path, DefaultOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate column")
}

func TestRead_UnsupportedEncoding(t *testing.T) {
	_, err := Read(strings.NewReader("a;b\n1;2\n"), Options{Delimiter: ';', Encoding: "ebcdic"})
	assert.Error(t, err)
}

func TestRead_UTF8(t *testing.T) {
	df, err := Read(strings.NewReader("\uFEFFTipo de Unidade;Código do CID\nUPA;J06\n"), Options{Delimiter: ';', Encoding: "utf-8"})
	require.NoError(t, err)
	assert.Equal(t, []string{model.ColFacilityType, model.ColCIDCode}, df.Names())
}

func TestValidateSchema(t *testing.T) {
	path := writeLatin1(t, "Municício;Código do CID\nCURITIBA;J06\n")
	df, err := Load(path, DefaultOptions())
	require.NoError(t, err)

	missing, err := ValidateSchema(df)
	require.NoError(t, err)
	assert.NotContains(t, missing, model.ColMunicipality)
	assert.NotContains(t, missing, model.ColCIDCode)
	assert.Contains(t, missing, model.ColAttendedAt)
	assert.Contains(t, missing, model.ColHospitalized)
}
