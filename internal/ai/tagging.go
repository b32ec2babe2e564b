package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/openai/openai-go"
)

// FallbackSummary replaces an emotion summary the model failed to produce.
const FallbackSummary = "analysis unavailable"

// Analysis is the tagging result for one entry.
type Analysis struct {
	Summary string   `json:"summary" jsonschema:"required,description=Resumo breve do estado emocional em no máximo 2 frases"`
	Tags    []string `json:"tags" jsonschema:"required,description=Entre 2 e 4 emoções da lista fornecida"`
}

var analysisSchema = generateSchema[Analysis]()

var fencePattern = regexp.MustCompile("```(?:json)?\\n?|\\n?```")

func fallbackAnalysis() Analysis {
	return Analysis{Summary: FallbackSummary, Tags: []string{}}
}

func taggingPrompt(tags []string) string {
	var b strings.Builder
	b.WriteString(`Você é um especialista em análise emocional de texto em português. Analise o texto do diário fornecido e identifique as emoções presentes.

Responda APENAS com um objeto JSON válido (sem markdown, sem explicações extras) no seguinte formato:
{
  "summary": "breve resumo do estado emocional (máximo 2 frases)",
  "tags": ["emoção1", "emoção2", "emoção3"]
}

Tags possíveis (escolha 2-4 que melhor se aplicam):`)
	for _, tag := range tags {
		b.WriteString("\n- ")
		b.WriteString(tag)
	}
	return b.String()
}

// TagEmotions asks the gateway for a summary and 2-4 emotion tags. Gateway
// errors are returned; output that cannot be decoded yields the fallback
// analysis and a nil error.
func (c *Client) TagEmotions(ctx context.Context, content string) (Analysis, error) {
	var format *openai.ResponseFormatJSONSchemaParam
	if c.structured {
		format = &openai.ResponseFormatJSONSchemaParam{
			JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
				Name:        "EmotionAnalysis",
				Schema:      analysisSchema,
				Strict:      openai.Bool(true),
				Description: openai.String("Emotion summary and tags"),
			},
		}
	}

	raw, err := c.complete(ctx, taggingPrompt(c.tags), "Analise este texto de diário:\n\n"+content, format)
	if err != nil {
		return Analysis{}, err
	}

	analysis, err := parseAnalysis(raw)
	if err != nil {
		slog.Warn("unparsable tagging output, using fallback", "error", err, "output_len", len(raw))
		return fallbackAnalysis(), nil
	}
	return analysis, nil
}

func parseAnalysis(raw string) (Analysis, error) {
	cleaned := strings.TrimSpace(fencePattern.ReplaceAllString(raw, ""))

	var out Analysis
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return Analysis{}, fmt.Errorf("decode analysis: %w", err)
	}

	tags := make([]string, 0, len(out.Tags))
	for _, tag := range out.Tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	out.Tags = tags
	out.Summary = strings.TrimSpace(out.Summary)
	return out, nil
}
