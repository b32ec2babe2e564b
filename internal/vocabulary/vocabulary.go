// Package vocabulary holds the emotion labels the tagging prompt offers, the
// negative terms the wellbeing rule looks for, and the chart palette.
package vocabulary

import "strings"

// DefaultColor is used for any emotion without a palette entry.
const DefaultColor = "hsl(var(--muted))"

var defaultTags = []string{
	"feliz", "triste", "ansioso", "calmo", "energizado",
	"cansado", "motivado", "frustrado", "grato", "esperançoso",
	"nostálgico", "confuso", "relaxado", "estressado", "animado",
	"reflexivo", "solitário", "conectado", "preocupado", "otimista",
}

var defaultNegativeTerms = []string{
	"triste", "tristeza", "ansiedade", "ansioso", "medo", "raiva",
	"frustração", "frustrado", "desespero", "desesperado", "preocupado", "cansado",
}

var defaultPalette = map[string]string{
	"feliz":       "hsl(var(--chart-1))",
	"triste":      "hsl(var(--chart-2))",
	"ansioso":     "hsl(var(--chart-3))",
	"calmo":       "hsl(var(--chart-4))",
	"animado":     "hsl(var(--chart-5))",
	"cansado":     "hsl(var(--chart-2))",
	"grato":       "hsl(var(--chart-1))",
	"frustrado":   "hsl(var(--chart-3))",
	"esperançoso": "hsl(var(--chart-4))",
	"preocupado":  "hsl(var(--chart-3))",
}

// Vocabulary is immutable once built; share it freely between requests.
type Vocabulary struct {
	tags          []string
	negativeTerms []string
	palette       map[string]string
	defaultColor  string
}

// Default returns the built-in Portuguese vocabulary.
func Default() *Vocabulary {
	palette := make(map[string]string, len(defaultPalette))
	for k, v := range defaultPalette {
		palette[k] = v
	}
	return &Vocabulary{
		tags:          append([]string(nil), defaultTags...),
		negativeTerms: append([]string(nil), defaultNegativeTerms...),
		palette:       palette,
		defaultColor:  DefaultColor,
	}
}

// Tags lists the labels offered to the tagging model, in prompt order.
func (v *Vocabulary) Tags() []string {
	return append([]string(nil), v.tags...)
}

// NegativeTerms lists the lowercase terms matched by substring against tags.
func (v *Vocabulary) NegativeTerms() []string {
	return append([]string(nil), v.negativeTerms...)
}

// Color returns the chart colour for an emotion, case-insensitively.
func (v *Vocabulary) Color(emotion string) string {
	if c, ok := v.palette[strings.ToLower(emotion)]; ok {
		return c
	}
	return v.defaultColor
}
