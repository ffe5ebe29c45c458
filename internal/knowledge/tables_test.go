package knowledge

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	tables, err := Default()
	require.NoError(t, err)

	wantTopics := []string{
		"síntomas", "tipos_diabetes", "alimentos_recomendados", "alimentos_evitar",
		"ejercicio", "monitoreo", "complicaciones", "medicamentos", "insulina",
		"hipoglucemia", "hiperglucemia", "nutricion", "estilo_vida", "embarazo", "viajes",
	}
	keys := make([]string, len(tables.Topics))
	for i, topic := range tables.Topics {
		keys[i] = topic.Key
		assert.NotEmpty(t, topic.Title, "topic %s has no title", topic.Key)
		want := 8
		if topic.Key == "tipos_diabetes" {
			want = 4
		}
		assert.Len(t, topic.Bullets, want, "topic %s", topic.Key)
	}
	if len(wantTopics) != len(keys) {
		t.Fatalf("got %d topics, want %d: %v", len(keys), len(wantTopics), keys)
	}
	assert.Equal(t, wantTopics, keys)

	assert.Len(t, tables.DomainKeywords, 10)
	assert.Len(t, tables.Numbers, 17)
	assert.Len(t, tables.Foods, 39)
	assert.Len(t, tables.Medications, 6)
	assert.Len(t, tables.Concepts, 4)
	assert.Len(t, tables.Rules, 5)
	assert.True(t, strings.HasPrefix(tables.DefaultAnswer, "No tengo información específica sobre eso. Por favor"))
	assert.True(t, strings.HasSuffix(tables.DefaultAnswer, "medicamentos, etc."))
}

func TestDefault_TableOrder(t *testing.T) {
	tables := MustDefault()

	assert.Equal(t, Mapping{From: "hiras", To: "horas"}, tables.Spelling[0])
	assert.Equal(t, Mapping{From: "dos", To: "2"}, tables.Numbers[0])
	assert.Equal(t, Weight{Key: "descanso", Value: 0}, tables.Exercises[0])
	assert.Equal(t, Weight{Key: "poco", Value: 0.5}, tables.Intensities[0])
	assert.Equal(t, "arroz", tables.Foods[0].Name)
	assert.InDelta(t, 45.0, tables.Foods[0].Carbs, 1e-9)
	assert.Equal(t, Weight{Key: "bajo", Value: 80}, tables.GlucoseLevels[0])
}

func TestTopic_Format(t *testing.T) {
	tables := MustDefault()

	sintomas, ok := tables.Topic("síntomas")
	require.True(t, ok)
	formatted := sintomas.Format()
	lines := strings.Split(formatted, "\n")
	assert.Equal(t, "📋 Síntomas de la Diabetes:", lines[0])
	assert.Equal(t, "• Sed excesiva (polidipsia)", lines[1])
	assert.Len(t, lines, 9)

	evitar, ok := tables.Topic("alimentos_evitar")
	require.True(t, ok)
	assert.Contains(t, evitar.Format(), "\n✗ Refrescos y bebidas azucaradas")
	assert.NotContains(t, evitar.Format(), "• ✗")
}

func TestTopic_Keywords(t *testing.T) {
	assert.Equal(t, []string{"tipos", "diabetes"}, Topic{Key: "tipos_diabetes"}.Keywords())
	assert.Equal(t, []string{"viajes"}, Topic{Key: "viajes"}.Keywords())
}

func TestParseTopics(t *testing.T) {
	content := []byte(`# uno_dos

Primer título:

- a
- b

## ignorado

# tres

Segundo título:

- c
`)
	topics, err := ParseTopics(content)
	require.NoError(t, err)
	require.Len(t, topics, 2)

	assert.Equal(t, Topic{Key: "uno_dos", Title: "Primer título:", Bullets: []string{"a", "b"}}, topics[0])
	assert.Equal(t, Topic{Key: "tres", Title: "Segundo título:", Bullets: []string{"c"}}, topics[1])
}

func TestParseTopics_Empty(t *testing.T) {
	topics, err := ParseTopics(nil)
	require.NoError(t, err)
	assert.Empty(t, topics)
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"tables.yaml": &fstest.MapFile{Data: []byte(`default_answer: nada
spelling:
  - {from: hiras, to: horas}
`)},
		"topics/b.md": &fstest.MapFile{Data: []byte("# beta\n\nB:\n\n- x\n")},
		"topics/a.md": &fstest.MapFile{Data: []byte("# alfa\n\nA:\n\n- y\n")},
	}

	tables, err := LoadFS(fsys)
	require.NoError(t, err)
	require.Len(t, tables.Topics, 2)
	assert.Equal(t, "alfa", tables.Topics[0].Key)
	assert.Equal(t, "beta", tables.Topics[1].Key)
	assert.Equal(t, "nada", tables.DefaultAnswer)
}

func TestLoadFS_Errors(t *testing.T) {
	tests := []struct {
		name string
		fsys fstest.MapFS
	}{
		{
			name: "missing tables file",
			fsys: fstest.MapFS{"topics/a.md": &fstest.MapFile{Data: []byte("# a\n")}},
		},
		{
			name: "invalid yaml",
			fsys: fstest.MapFS{
				"tables.yaml": &fstest.MapFile{Data: []byte("spelling: [")},
				"topics/a.md": &fstest.MapFile{Data: []byte("# a\n")},
			},
		},
		{
			name: "missing default answer",
			fsys: fstest.MapFS{
				"tables.yaml": &fstest.MapFile{Data: []byte("spelling: []\n")},
				"topics/a.md": &fstest.MapFile{Data: []byte("# a\n")},
			},
		},
		{
			name: "duplicate topic",
			fsys: fstest.MapFS{
				"tables.yaml": &fstest.MapFile{Data: []byte("default_answer: x\n")},
				"topics/a.md": &fstest.MapFile{Data: []byte("# a\n\n# a\n")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFS(tt.fsys)
			assert.Error(t, err)
		})
	}
}

func TestLoad_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "topics"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tables.yaml"), []byte("default_answer: x\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "topics", "t.md"), []byte("# dieta\n\nDieta:\n\n- comer bien\n"), 0o644))

	tables, err := Load(dir)
	require.NoError(t, err)
	require.Len(t, tables.Topics, 1)
	assert.Equal(t, "Dieta:\n• comer bien", tables.Topics[0].Format())
}
