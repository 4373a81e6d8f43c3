package predictions

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"strings"
	"text/template"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"healthrisk-backend/internal/shared/metrics"
	"healthrisk-backend/internal/shared/telemetry"
)

// FallbackRecommendation is returned when no model produced advice.
const FallbackRecommendation = "Could not generate recommendations. Please verify your Groq API key and available models."

const maxRecommendationTokens = 400

//go:embed prompts/recommendation.tmpl
var recommendationPrompt string

var promptTemplate = template.Must(template.New("recommendation").Parse(recommendationPrompt))

// Advisor turns a predicted risk into free-text advice. Implementations never
// fail; they fall back to a fixed message instead.
type Advisor interface {
	Recommend(ctx context.Context, risk string, patient Patient) string
}

// LLMAdvisor asks an OpenAI-compatible chat endpoint for advice, trying each
// model in order until one answers.
type LLMAdvisor struct {
	client  *openai.Client
	models  []string
	timeout time.Duration
}

// NewLLMAdvisor builds an advisor. An empty apiKey yields an advisor that
// always returns FallbackRecommendation.
func NewLLMAdvisor(apiKey, baseURL string, models []string, timeout time.Duration) *LLMAdvisor {
	a := &LLMAdvisor{
		models:  append([]string(nil), models...),
		timeout: timeout,
	}
	if strings.TrimSpace(apiKey) == "" {
		return a
	}
	cfg := openai.DefaultConfig(apiKey)
	if strings.TrimSpace(baseURL) != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	a.client = openai.NewClientWithConfig(cfg)
	return a
}

// Enabled reports whether an API key was configured.
func (a *LLMAdvisor) Enabled() bool {
	return a != nil && a.client != nil && len(a.models) > 0
}

func (a *LLMAdvisor) Recommend(ctx context.Context, risk string, patient Patient) string {
	if !a.Enabled() {
		return FallbackRecommendation
	}
	prompt, err := BuildPrompt(risk, patient)
	if err != nil {
		telemetry.Error("llm.prompt_failed", map[string]any{"error": err})
		return FallbackRecommendation
	}

	for _, model := range a.models {
		text, err := a.complete(ctx, model, prompt)
		if err != nil {
			metrics.IncLLMRequest(model, "error")
			telemetry.Warn("llm.model_failed", map[string]any{
				"model": model,
				"error": err,
			})
			if ctx.Err() != nil {
				break
			}
			continue
		}
		metrics.IncLLMRequest(model, "ok")
		return text
	}
	return FallbackRecommendation
}

func (a *LLMAdvisor) complete(ctx context.Context, model, prompt string) (string, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens: maxRecommendationTokens,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion")
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", errors.New("empty completion")
	}
	return text, nil
}

// BuildPrompt renders the specialist prompt for a patient and risk level.
func BuildPrompt(risk string, patient Patient) (string, error) {
	var buf bytes.Buffer
	err := promptTemplate.Execute(&buf, struct {
		Risk    string
		Patient Patient
	}{Risk: risk, Patient: patient})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
