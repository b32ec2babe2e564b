package vocabulary

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultVocabulary(t *testing.T) {
	v := Default()

	assert.Len(t, v.Tags(), 20)
	assert.Contains(t, v.Tags(), "esperançoso")
	assert.Contains(t, v.NegativeTerms(), "tristeza")
	assert.Len(t, v.NegativeTerms(), 12)

	assert.Equal(t, "hsl(var(--chart-1))", v.Color("feliz"))
	assert.Equal(t, "hsl(var(--chart-1))", v.Color("Feliz"))
	assert.Equal(t, DefaultColor, v.Color("reflexivo"))
}

func TestDefaultReturnsIndependentCopies(t *testing.T) {
	a := Default()
	tags := a.Tags()
	tags[0] = "mutated"

	assert.Equal(t, "feliz", Default().Tags()[0])
	assert.Equal(t, "feliz", a.Tags()[0])
}

func TestParseHCL(t *testing.T) {
	src := []byte(`
default_color  = "#cccccc"
negative_terms = ["Medo", "raiva", "medo"]

emotion "Feliz" {
  color = "#ffcc00"
}

emotion "triste" {
  color    = "#3366ff"
  negative = true
}

emotion "calmo" {}
`)

	v, err := Parse(src, "vocabulary.hcl")
	require.NoError(t, err)

	assert.Equal(t, []string{"feliz", "triste", "calmo"}, v.Tags())
	assert.Equal(t, []string{"triste", "medo", "raiva"}, v.NegativeTerms())
	assert.Equal(t, "#ffcc00", v.Color("feliz"))
	assert.Equal(t, "#3366ff", v.Color("TRISTE"))
	assert.Equal(t, "#cccccc", v.Color("calmo"))
}

func TestParseRejectsDuplicateEmotion(t *testing.T) {
	src := []byte(`
emotion "feliz" {}
emotion "FELIZ" {}
`)
	_, err := Parse(src, "dup.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declared twice")
}

func TestParseRejectsEmptyFile(t *testing.T) {
	_, err := Parse([]byte(`default_color = "#000"`), "empty.hcl")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no emotion blocks")
}

func TestParseReportsSyntaxError(t *testing.T) {
	_, err := Parse([]byte(`emotion "feliz" {`), "broken.hcl")
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	v, err := Load("")
	require.NoError(t, err)
	assert.Len(t, v.Tags(), 20)

	path := filepath.Join(t.TempDir(), "vocab.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`emotion "sereno" { negative = false }`), 0o600))

	v, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"sereno"}, v.Tags())
	assert.Empty(t, v.NegativeTerms())

	_, err = Load(filepath.Join(t.TempDir(), "missing.hcl"))
	assert.Error(t, err)
}
