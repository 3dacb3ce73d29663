// Package llm provides article enrichment: category classification and short summaries.
// Client talks to an OpenAI-compatible chat completion endpoint (LM Studio, Ollama, OpenAI)
// and substitutes the deterministic Fallback on any failure.
package llm

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-pkgz/lgr"
	"github.com/sashabaranov/go-openai"
)

const systemPrompt = "Ты - помощник для анализа новостных статей на русском языке."

// prompt input limits in runes and completion budgets in tokens
const (
	classifyInputLen  = 500
	summarizeInputLen = 2000
	classifyMaxTokens = 50
	summaryMaxTokens  = 200
)

// Config defines the completion backend
type Config struct {
	Enabled      bool
	Endpoint     string // base url, e.g. http://localhost:1234/v1
	APIKey       string
	Model        string
	Timeout      time.Duration // completion timeout, 60s if not set
	ProbeTimeout time.Duration // availability probe timeout, 5s if not set
	Temperature  float64
}

// Client enriches articles with a remote model. Every call degrades to Fallback on error,
// malformed response or a summary failing the quality gate.
type Client struct {
	api      *openai.Client
	config   Config
	fallback Fallback
}

// NewClient makes a client for an OpenAI-compatible endpoint
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.ProbeTimeout <= 0 {
		cfg.ProbeTimeout = 5 * time.Second
	}
	if cfg.Model == "" {
		cfg.Model = "local-model"
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = strings.TrimSuffix(cfg.Endpoint, "/")
	}
	return &Client{api: openai.NewClientWithConfig(clientConfig), config: cfg}
}

// Categorize asks the model for one of the known categories
func (c *Client) Categorize(ctx context.Context, title, body string) string {
	text := title
	if body != "" {
		text = title + ". " + truncateRunes(body, classifyInputLen)
	}
	prompt := fmt.Sprintf("Определи категорию для следующей новостной статьи. "+
		"Выбери ОДНУ категорию из списка: %s.\n\nСтатья: %s\n\n"+
		"Ответь ТОЛЬКО названием категории, без дополнительных объяснений.", strings.Join(Categories, ", "), text)

	resp, err := c.complete(ctx, prompt, classifyMaxTokens)
	if err != nil {
		lgr.Printf("[DEBUG] categorize %q with fallback, %v", title, err)
		return c.fallback.Categorize(ctx, title, body)
	}
	category := categoryFromResponse(resp)
	lgr.Printf("[DEBUG] category %q for %q", category, title)
	return category
}

// Summarize asks the model for a one or two sentence summary and validates it
func (c *Client) Summarize(ctx context.Context, body string) string {
	prompt := fmt.Sprintf("Создай очень краткую сводку следующей новостной статьи на русском языке. "+
		"Сводка должна быть максимально сжатой и содержать только главную суть. "+
		"Длина сводки: 1-2 предложения (максимум 150 символов). "+
		"Не добавляй вводные фразы типа 'В статье говорится' или 'Сводка:'. "+
		"Начинай сразу с сути.\n\nСтатья: %s\n\nКраткая сводка:", truncateRunes(body, summarizeInputLen))

	resp, err := c.complete(ctx, prompt, summaryMaxTokens)
	if err != nil {
		lgr.Printf("[DEBUG] summarize with fallback, %v", err)
		return c.fallback.Summarize(ctx, body)
	}
	summary := shortenSummary(cleanSummary(resp))
	if err := checkSummary(summary, body); err != nil {
		lgr.Printf("[DEBUG] summarize with fallback, rejected model summary: %v", err)
		return c.fallback.Summarize(ctx, body)
	}
	return summary
}

// IsConfigured reports whether the client is enabled and has an endpoint
func (c *Client) IsConfigured() bool {
	return c.config.Enabled && c.config.Endpoint != ""
}

// IsAvailable probes the models endpoint with the short probe timeout
func (c *Client) IsAvailable(ctx context.Context) bool {
	if !c.config.Enabled {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, c.config.ProbeTimeout)
	defer cancel()
	if _, err := c.api.ListModels(ctx); err != nil {
		lgr.Printf("[WARN] ai backend %s is not available: %v", c.config.Endpoint, err)
		return false
	}
	return true
}

// AvailableModels lists model ids served by the backend, empty on any error
func (c *Client) AvailableModels(ctx context.Context) []string {
	if !c.config.Enabled {
		return []string{}
	}
	ctx, cancel := context.WithTimeout(ctx, c.config.ProbeTimeout)
	defer cancel()
	list, err := c.api.ListModels(ctx)
	if err != nil {
		lgr.Printf("[WARN] can't list ai models: %v", err)
		return []string{}
	}
	res := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		res = append(res, m.ID)
	}
	return res
}

// complete sends a system + user chat request and returns the trimmed first choice
func (c *Client) complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.config.Model,
		Temperature: float32(c.config.Temperature),
		MaxTokens:   maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no response from llm")
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", errors.New("empty response from llm")
	}
	return content, nil
}

var (
	summaryLabelRe  = regexp.MustCompile(`(?i)^(Сводка|Summary|Краткое содержание|Краткая сводка|В статье|Статья)\s*:\s*`)
	summaryLeadRe   = regexp.MustCompile(`(?i)^(В статье говорится|Статья рассказывает|В материале|The article (?:says|reports|states)|This article (?:says|reports|states))\s+(о том,?\s+)?(что|that)\s+`)
	summaryQuotesRe = regexp.MustCompile(`^["«“]|["»”]$`)
)

// cleanSummary strips labels, lead-in phrases and surrounding quotes the model tends to add
func cleanSummary(s string) string {
	s = strings.TrimSpace(s)
	s = summaryLabelRe.ReplaceAllString(s, "")
	s = summaryLeadRe.ReplaceAllString(s, "")
	s = summaryQuotesRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// checkSummary is the quality gate for model summaries
func checkSummary(summary, body string) error {
	n := utf8.RuneCountInString(summary)
	if n < summaryMinLength {
		return fmt.Errorf("too short, %d chars", n)
	}
	if summary == truncateRunes(body, n) {
		return errors.New("copy of the article start")
	}
	if !strings.ContainsAny(summary, ".!?") {
		return errors.New("no complete sentence")
	}
	for _, artifact := range []string{"```", "###", "---"} {
		if strings.Contains(summary, artifact) {
			return fmt.Errorf("contains %q", artifact)
		}
	}
	return nil
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
