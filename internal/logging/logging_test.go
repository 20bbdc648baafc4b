package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "json")
	log.Info().Int("rows", 3).Msg("dataset loaded")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "info", rec["level"])
	assert.Equal(t, "dataset loaded", rec["message"])
	assert.Equal(t, "attstats", rec["service"])
	assert.EqualValues(t, 3, rec["rows"])
	assert.Contains(t, rec, "time")
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "text")
	log.Warn().Str("analysis", "weekday").Msg("analysis skipped")

	out := buf.String()
	assert.Contains(t, out, "analysis skipped")
	assert.Contains(t, out, "analysis")
	assert.Contains(t, out, "weekday")
	assert.False(t, json.Valid(buf.Bytes()))
}
