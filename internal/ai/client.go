// Package ai talks to the OpenAI-compatible gateway that tags entries,
// writes period summaries and answers help questions.
package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const (
	DefaultBaseURL = "https://ai.gateway.lovable.dev/v1/"
	DefaultModel   = "google/gemini-2.5-flash"
	DefaultTimeout = 30 * time.Second
)

var (
	ErrAnalysisFailed = errors.New("analysis failed")
	ErrRateLimited    = fmt.Errorf("%w: rate limited by AI gateway", ErrAnalysisFailed)
	ErrQuotaExceeded  = fmt.Errorf("%w: AI gateway credits exhausted", ErrAnalysisFailed)
	ErrNotConfigured  = fmt.Errorf("%w: AI gateway key is not configured", ErrAnalysisFailed)
)

type Config struct {
	BaseURL          string
	APIKey           string
	Model            string
	Timeout          time.Duration
	StructuredOutput bool
	// Tags is the label list offered to the tagging prompt.
	Tags []string
}

type Client struct {
	client     openai.Client
	configured bool
	model      string
	structured bool
	tags       []string
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	client := openai.NewClient(
		option.WithBaseURL(cfg.BaseURL),
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(cfg.Timeout),
	)

	return &Client{
		client:     client,
		configured: cfg.APIKey != "",
		model:      cfg.Model,
		structured: cfg.StructuredOutput,
		tags:       append([]string(nil), cfg.Tags...),
	}
}

// Configured reports whether an API key was supplied.
func (c *Client) Configured() bool {
	return c.configured
}

func (c *Client) complete(ctx context.Context, system, user string, format *openai.ResponseFormatJSONSchemaParam) (string, error) {
	if !c.configured {
		return "", ErrNotConfigured
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	}
	if format != nil {
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: format,
		}
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", classify(err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: gateway returned no choices", ErrAnalysisFailed)
	}

	return resp.Choices[0].Message.Content, nil
}

func classify(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests:
			return fmt.Errorf("%w: %v", ErrRateLimited, err)
		case http.StatusPaymentRequired:
			return fmt.Errorf("%w: %v", ErrQuotaExceeded, err)
		}
		return fmt.Errorf("%w: gateway status %d", ErrAnalysisFailed, apiErr.StatusCode)
	}
	return fmt.Errorf("%w: %v", ErrAnalysisFailed, err)
}

// Kind returns a stable machine-readable name for an AI error, or "" for nil.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrRateLimited):
		return "rate_limited"
	case errors.Is(err, ErrQuotaExceeded):
		return "quota_exceeded"
	case errors.Is(err, ErrNotConfigured):
		return "not_configured"
	default:
		return "analysis_failed"
	}
}

// UserMessage is the text shown to the person using the app.
func UserMessage(err error) string {
	switch Kind(err) {
	case "":
		return ""
	case "rate_limited":
		return "Limite de requisições excedido. Por favor, tente novamente em alguns instantes."
	case "quota_exceeded":
		return "Créditos insuficientes. Por favor, adicione créditos ao seu workspace."
	default:
		return "Não foi possível analisar as emoções neste momento."
	}
}

func clean(s string) string {
	return strings.TrimSpace(s)
}
