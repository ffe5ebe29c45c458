package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	content := "\ufeffquestion,answer\n\"¿Qué es, exactamente?\",\"Una \"\"respuesta\"\"\"\nsolo\n"

	table, err := ReadCSV(strings.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, []string{"question", "answer"}, table.Columns)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "¿Qué es, exactamente?", table.Value(table.Rows[0], "question"))
	assert.Equal(t, `Una "respuesta"`, table.Value(table.Rows[0], "answer"))
	assert.Equal(t, "", table.Value(table.Rows[1], "answer"))
	assert.Equal(t, "", table.Value(table.Rows[0], "missing"))
}

func TestReadCSV_Empty(t *testing.T) {
	table, err := ReadCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, table.Columns)
	assert.Equal(t, 0, table.Len())
}

func TestLoadCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("input,output\nhola,adiós\n"), 0o644))

	table, err := LoadCSV(path)
	require.NoError(t, err)
	assert.Equal(t, 1, table.Column("output"))
	assert.Equal(t, "adiós", table.Value(table.Rows[0], "output"))

	_, err = LoadCSV(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestCell(t *testing.T) {
	row := []string{"a", "b"}
	assert.Equal(t, "a", Cell(row, 0))
	assert.Equal(t, "", Cell(row, 2))
	assert.Equal(t, "", Cell(row, -1))
}
