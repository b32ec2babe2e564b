package vocabulary

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsimple"
)

// File is the HCL layout of a vocabulary override:
//
//	default_color  = "hsl(var(--muted))"
//	negative_terms = ["tristeza", "medo"]
//
//	emotion "feliz" {
//	  color = "hsl(var(--chart-1))"
//	}
//
//	emotion "triste" {
//	  color    = "hsl(var(--chart-2))"
//	  negative = true
//	}
type File struct {
	DefaultColor  string       `hcl:"default_color,optional"`
	NegativeTerms []string     `hcl:"negative_terms,optional"`
	Emotions      []HCLEmotion `hcl:"emotion,block"`
}

// HCLEmotion is one emotion block.
type HCLEmotion struct {
	Name     string `hcl:"name,label"`
	Color    string `hcl:"color,optional"`
	Negative bool   `hcl:"negative,optional"`
}

// Load reads a vocabulary file. An empty path yields the defaults.
func Load(path string) (*Vocabulary, error) {
	if path == "" {
		return Default(), nil
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file: %w", err)
	}
	return Parse(src, path)
}

// Parse decodes HCL source. The filename must end in .hcl.
func Parse(src []byte, filename string) (*Vocabulary, error) {
	var file File
	if err := hclsimple.Decode(filename, src, nil, &file); err != nil {
		if diags, ok := err.(hcl.Diagnostics); ok {
			for _, diag := range diags {
				if diag.Severity == hcl.DiagError {
					return nil, fmt.Errorf("vocabulary parse error at %s: %s", diag.Subject, diag.Detail)
				}
			}
		}
		return nil, fmt.Errorf("parsing vocabulary: %w", err)
	}
	if len(file.Emotions) == 0 {
		return nil, fmt.Errorf("vocabulary %s declares no emotion blocks", filename)
	}

	v := &Vocabulary{
		palette:      make(map[string]string, len(file.Emotions)),
		defaultColor: DefaultColor,
	}
	if file.DefaultColor != "" {
		v.defaultColor = file.DefaultColor
	}

	seenTag := make(map[string]bool, len(file.Emotions))
	seenNeg := make(map[string]bool)
	addNegative := func(term string) {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" || seenNeg[term] {
			return
		}
		seenNeg[term] = true
		v.negativeTerms = append(v.negativeTerms, term)
	}

	for _, e := range file.Emotions {
		name := strings.ToLower(strings.TrimSpace(e.Name))
		if name == "" {
			return nil, fmt.Errorf("vocabulary %s: emotion block with empty name", filename)
		}
		if seenTag[name] {
			return nil, fmt.Errorf("vocabulary %s: emotion %q declared twice", filename, name)
		}
		seenTag[name] = true
		v.tags = append(v.tags, name)
		if e.Color != "" {
			v.palette[name] = e.Color
		}
		if e.Negative {
			addNegative(name)
		}
	}
	for _, term := range file.NegativeTerms {
		addNegative(term)
	}

	return v, nil
}
