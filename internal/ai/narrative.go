package ai

import (
	"context"
	"fmt"
	"strings"
)

const narrativeSystemPrompt = "És um psicólogo especializado em análise emocional e bem-estar. Crias resumos empáticos e profissionais de entradas de diário."

// NarrativeEntry is one diary entry already formatted for the prompt.
type NarrativeEntry struct {
	Date           string `json:"data"`
	Content        string `json:"conteudo"`
	Tags           string `json:"tags"`
	EmotionSummary string `json:"resumo_emocional"`
}

// NarrativeRequest covers a closed date range. Dates are display strings.
type NarrativeRequest struct {
	Entries   []NarrativeEntry
	StartDate string
	EndDate   string
}

func narrativePrompt(req NarrativeRequest) string {
	blocks := make([]string, 0, len(req.Entries))
	for _, e := range req.Entries {
		blocks = append(blocks, fmt.Sprintf("Data: %s\nConteúdo: %s\nTags emocionais: %s\nResumo emocional: %s",
			e.Date, e.Content, e.Tags, e.EmotionSummary))
	}

	return fmt.Sprintf(`Analisa as seguintes entradas de diário emocional do período de %s a %s e cria um resumo em HTML profissional e empático.

Entradas:
%s

Cria um resumo em HTML que inclua:
1. Um título com o período analisado
2. Uma análise do estado emocional geral (parágrafo descritivo começando com "Do dia X a Y estiveste...")
3. Sugestões práticas e empáticas (começando com "Deves...")
4. Uma conclusão motivadora

O HTML deve ser bonito e bem formatado, usando tags como <h2>, <h3>, <p>, <ul>, <li>, <strong>, etc.
Usa um tom profissional mas caloroso e empático.
NÃO incluas tags <html>, <head> ou <body>, apenas o conteúdo interno.`,
		req.StartDate, req.EndDate, strings.Join(blocks, "\n\n"))
}

// Summarize returns an HTML fragment describing the period.
func (c *Client) Summarize(ctx context.Context, req NarrativeRequest) (string, error) {
	raw, err := c.complete(ctx, narrativeSystemPrompt, narrativePrompt(req), nil)
	if err != nil {
		return "", err
	}

	text := clean(fencePattern.ReplaceAllString(raw, ""))
	if text == "" {
		return "", fmt.Errorf("%w: empty summary", ErrAnalysisFailed)
	}
	return text, nil
}
