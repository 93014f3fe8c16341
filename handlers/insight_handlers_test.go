package handlers

import (
	"testing"

	"demandcast/forecast"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
)

func TestExtractJSON(t *testing.T) {
	raw := "```json\n{\"summary\":\"fine\"}\n```"
	assert.Equal(t, `{"summary":"fine"}`, extractJSON(raw))

	assert.Equal(t, "", extractJSON("no json here"))
	assert.Equal(t, "", extractJSON("} backwards {"))
}

func TestConstructInsightPrompt(t *testing.T) {
	ratio := 1.25
	result := &forecast.GlobalForecast{RecentMean: 90, ForecastMean: 99, PctChange: 10, Trend: "increase"}
	seg := &forecast.SegmentSummary{Last30Total: 2700, Prev30Total: 2160, Ratio: &ratio}

	prompt := constructInsightPrompt(result, seg, 30)
	assert.Contains(t, prompt, "Recent mean daily sales: 90.00")
	assert.Contains(t, prompt, "Forecast horizon: 30 days")
	assert.Contains(t, prompt, "10.0% (increase)")
	assert.Contains(t, prompt, "Window-over-window ratio: 1.25")
	assert.Contains(t, prompt, "minified JSON object")
}

func TestConstructInsightPromptNilRatio(t *testing.T) {
	result := &forecast.GlobalForecast{Trend: "stable"}
	seg := &forecast.SegmentSummary{}

	prompt := constructInsightPrompt(result, seg, 7)
	assert.Contains(t, prompt, "n/a (no revenue in the prior window)")
}

func TestParseInsightResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []genai.Part{genai.Text(`{"summary":"demand is steady","positive_factors":["repeat buyers"],"negative_factors":[]}`)},
			},
		}},
	}

	insight, err := parseInsightResponse(resp)
	assert.NoError(t, err)
	assert.Equal(t, "demand is steady", insight.Summary)
	assert.Equal(t, []string{"repeat buyers"}, insight.PositiveFactors)
	assert.False(t, insight.GeneratedAt.IsZero())
}

func TestParseInsightResponseEmpty(t *testing.T) {
	if _, err := parseInsightResponse(nil); err == nil {
		t.Fatal("expected an error for a nil response")
	}
	if _, err := parseInsightResponse(&genai.GenerateContentResponse{}); err == nil {
		t.Fatal("expected an error for an empty response")
	}
}
