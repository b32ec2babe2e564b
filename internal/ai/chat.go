package ai

import (
	"context"
	"fmt"
)

const helpSystemPrompt = `És o assistente de ajuda da aplicação Aura Note - um diário emocional com análise de emoções por IA.

Ajuda os utilizadores a navegar e usar a aplicação. Responde de forma clara e concisa em português.

Funcionalidades principais:
- Página Inicial: Criar novas entradas no diário
- Dashboard: Ver análise de emoções ao longo do tempo com gráficos
- Resumos: Pedir um resumo de um período enviado por email
- Autenticação: Login e registo de conta

O que podes fazer:
- Explicar como usar cada funcionalidade
- Ajudar a entender os gráficos de emoções
- Orientar sobre como escrever entradas
- Responder perguntas sobre a aplicação

Sê amigável, útil e direto nas respostas.`

// Reply answers one help message. No conversation state is kept.
func (c *Client) Reply(ctx context.Context, message string) (string, error) {
	raw, err := c.complete(ctx, helpSystemPrompt, message, nil)
	if err != nil {
		return "", err
	}

	reply := clean(raw)
	if reply == "" {
		return "", fmt.Errorf("%w: empty reply", ErrAnalysisFailed)
	}
	return reply, nil
}
