package predictions

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type chatCall struct {
	Model     string
	MaxTokens int
	Prompt    string
}

// fakeChatServer answers OpenAI-style chat completions; models listed in
// failing get a 404 error body.
func fakeChatServer(t *testing.T, failing map[string]bool, reply string) (*httptest.Server, func() []chatCall) {
	t.Helper()
	var mu sync.Mutex
	var calls []chatCall

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/openai/v1/chat/completions" {
			http.NotFound(w, r)
			return
		}
		var body struct {
			Model     string `json:"model"`
			MaxTokens int    `json:"max_tokens"`
			Messages  []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		call := chatCall{Model: body.Model, MaxTokens: body.MaxTokens}
		if len(body.Messages) > 0 {
			call.Prompt = body.Messages[0].Content
		}
		mu.Lock()
		calls = append(calls, call)
		mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if failing[body.Model] {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":{"message":"model not found","type":"invalid_request_error"}}`))
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     "chatcmpl-1",
			"object": "chat.completion",
			"model":  body.Model,
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]string{"role": "assistant", "content": reply},
				"finish_reason": "stop",
			}},
		})
	}))
	t.Cleanup(srv.Close)
	return srv, func() []chatCall {
		mu.Lock()
		defer mu.Unlock()
		return append([]chatCall(nil), calls...)
	}
}

func TestLLMAdvisorFallsThroughModels(t *testing.T) {
	srv, calls := fakeChatServer(t, map[string]bool{"first": true}, "  Eat more fibre.  ")
	advisor := NewLLMAdvisor("key", srv.URL+"/openai/v1/", []string{"first", "second", "third"}, 5*time.Second)

	got := advisor.Recommend(context.Background(), RiskHigh, highRiskPatient())
	assert.Equal(t, "Eat more fibre.", got)

	recorded := calls()
	require.Len(t, recorded, 2)
	assert.Equal(t, "first", recorded[0].Model)
	assert.Equal(t, "second", recorded[1].Model)
	assert.Equal(t, 400, recorded[1].MaxTokens)
	assert.Contains(t, recorded[1].Prompt, "Predicted Risk Level: High Risk")
	assert.Contains(t, recorded[1].Prompt, "- Glucose: 190")
}

func TestLLMAdvisorFallbackWhenAllModelsFail(t *testing.T) {
	srv, calls := fakeChatServer(t, map[string]bool{"a": true, "b": true}, "")
	advisor := NewLLMAdvisor("key", srv.URL+"/openai/v1", []string{"a", "b"}, time.Second)

	got := advisor.Recommend(context.Background(), RiskLow, lowRiskPatient())
	assert.Equal(t, FallbackRecommendation, got)
	assert.Len(t, calls(), 2)
}

func TestLLMAdvisorTreatsEmptyCompletionAsFailure(t *testing.T) {
	srv, calls := fakeChatServer(t, nil, "   ")
	advisor := NewLLMAdvisor("key", srv.URL+"/openai/v1", []string{"a", "b"}, time.Second)

	assert.Equal(t, FallbackRecommendation, advisor.Recommend(context.Background(), RiskLow, lowRiskPatient()))
	assert.Len(t, calls(), 2)
}

func TestLLMAdvisorWithoutKeyNeverCallsOut(t *testing.T) {
	advisor := NewLLMAdvisor("", "http://127.0.0.1:1", []string{"a"}, time.Second)
	assert.False(t, advisor.Enabled())
	assert.Equal(t, FallbackRecommendation, advisor.Recommend(context.Background(), RiskLow, lowRiskPatient()))
}

func TestBuildPromptListsEveryFeature(t *testing.T) {
	prompt, err := BuildPrompt(RiskMedium, highRiskPatient())
	require.NoError(t, err)
	for _, line := range []string{
		"You are an expert diabetes specialist.",
		"- Pregnancies: 5",
		"- Blood Pressure: 90",
		"- Skin Thickness: 40",
		"- Insulin: 150",
		"- BMI: 35",
		"- Diabetes Pedigree Function: 0.9",
		"- Age: 50",
		"Predicted Risk Level: Medium Risk",
		"If high risk, suggest immediate medical interventions",
	} {
		assert.True(t, strings.Contains(prompt, line), "prompt missing %q", line)
	}
}
