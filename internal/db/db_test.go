package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyeh/attstats/internal/model"
)

func TestMigrations_Ordered(t *testing.T) {
	names, err := Migrations()
	require.NoError(t, err)
	assert.Equal(t, []string{"001_esaude_schema.sql", "002_staging.sql", "003_attendances.sql"}, names)
}

func TestPoolConfig_SessionParams(t *testing.T) {
	cfg, err := poolConfig("postgres://u:p@localhost:5432/esaude")
	require.NoError(t, err)
	params := cfg.ConnConfig.RuntimeParams
	assert.Equal(t, "0", params["statement_timeout"])
	assert.Equal(t, "esaude,public", params["search_path"])
	assert.Equal(t, ApplicationName, params["application_name"])
}

func TestPoolConfig_KeepsDSNApplicationName(t *testing.T) {
	cfg, err := poolConfig("postgres://u:p@localhost:5432/esaude?application_name=relatorios")
	require.NoError(t, err)
	assert.Equal(t, "relatorios", cfg.ConnConfig.RuntimeParams["application_name"])
}

func TestPoolConfig_BadDSN(t *testing.T) {
	_, err := poolConfig("postgres://u:p@localhost:notaport/esaude")
	assert.Error(t, err)
}

func TestChannelSource(t *testing.T) {
	ch := make(chan *model.AttendanceRow, 2)
	ch <- &model.AttendanceRow{RowNumber: 1, CIDCode: "J06"}
	ch <- &model.AttendanceRow{RowNumber: 2, CIDCode: "R50"}
	close(ch)

	src := NewChannelSource(ch)
	var n int
	for src.Next() {
		vals, err := src.Values()
		require.NoError(t, err)
		assert.Len(t, vals, len(model.AttendanceColumns()))
		n++
	}
	assert.Equal(t, 2, n)
	assert.NoError(t, src.Err())
}
