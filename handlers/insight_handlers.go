package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"demandcast/config"
	"demandcast/forecast"
	"demandcast/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// HandleGetInsight layers a Gemini-written narrative on top of the
// deterministic forecast and segmentation numbers. The model never sees raw
// transactions, only the computed statistics.
func HandleGetInsight(c *fiber.Ctx) error {
	ctx := context.Background()

	if config.AppConfig.GeminiAPIKey == "" {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "AI insights are not configured"})
	}

	days, err := parseHorizon(c)
	if err != nil {
		return respondError(c, err)
	}

	rows, err := loadSalesRows(ctx)
	if err != nil {
		log.Printf("❌ [INSIGHT] Failed to load sales rows: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to load sales data"})
	}

	result, err := engine.ForecastGlobal(rows, days)
	if err != nil {
		log.Printf("❌ [INSIGHT] Forecast failed: %v", err)
		return respondError(c, err)
	}
	seg, err := forecast.Segment(rows)
	if err != nil {
		log.Printf("❌ [INSIGHT] Segmentation failed: %v", err)
		return respondError(c, err)
	}

	prompt := constructInsightPrompt(result, seg, days)

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.AppConfig.GeminiAPIKey))
	if err != nil {
		log.Printf("Error creating Gemini client: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to connect to AI service"})
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.5-flash-lite")
	model.SafetySettings = []*genai.SafetySetting{
		{
			Category:  genai.HarmCategoryDangerousContent,
			Threshold: genai.HarmBlockNone,
		},
		{
			Category:  genai.HarmCategoryHarassment,
			Threshold: genai.HarmBlockNone,
		},
		{
			Category:  genai.HarmCategorySexuallyExplicit,
			Threshold: genai.HarmBlockNone,
		},
		{
			Category:  genai.HarmCategoryHateSpeech,
			Threshold: genai.HarmBlockNone,
		},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Printf("Error from Gemini API: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to generate insight from AI"})
	}

	insight, err := parseInsightResponse(resp)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"insight": insight})
}

// constructInsightPrompt builds the Gemini prompt from computed statistics.
func constructInsightPrompt(result *forecast.GlobalForecast, seg *forecast.SegmentSummary, days int) string {
	ratioStr := "n/a (no revenue in the prior window)"
	if seg.Ratio != nil {
		ratioStr = fmt.Sprintf("%.2f", *seg.Ratio)
	}

	jsonFormat := `{"summary":"string","positive_factors":["string",...],"negative_factors":["string",...]}`

	return fmt.Sprintf(`
        You are an expert retail data analyst. Your task is to write a brief demand outlook based on the forecast statistics provided.

        **Forecast Statistics:**
        - Forecast horizon: %d days
        - Recent mean daily sales: %.2f
        - Forecast mean daily sales: %.2f
        - Expected change: %.1f%% (%s)
        - Revenue, last 30 days: %.2f
        - Revenue, prior 30 days: %.2f
        - Window-over-window ratio: %s
        - Today's Date: %s

        **Required Output:**
        You must provide a single, minified JSON object with the following exact structure. Do not include any markdown formatting, backticks, or explanatory text before or after the JSON object.

        %s
    `, days, result.RecentMean, result.ForecastMean, result.PctChange, result.Trend,
		seg.Last30Total, seg.Prev30Total, ratioStr, time.Now().Format("2006-01-02"), jsonFormat)
}

func extractJSON(rawString string) string {
	start := strings.Index(rawString, "{")
	end := strings.LastIndex(rawString, "}")
	if start == -1 || end == -1 || end < start {
		return ""
	}
	return rawString[start : end+1]
}

// parseInsightResponse parses the JSON from Gemini into the insight body.
func parseInsightResponse(resp *genai.GenerateContentResponse) (*models.Insight, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content received from AI")
	}

	var geminiText string
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			geminiText += string(txt)
		}
	}

	if geminiText == "" {
		return nil, fmt.Errorf("no text content received from AI")
	}

	jsonStr := extractJSON(geminiText)
	if jsonStr == "" {
		log.Printf("Could not extract JSON from Gemini response: %s", geminiText)
		return nil, fmt.Errorf("failed to parse AI response format")
	}

	var geminiJSON struct {
		Summary         string   `json:"summary"`
		PositiveFactors []string `json:"positive_factors"`
		NegativeFactors []string `json:"negative_factors"`
	}
	if err := json.Unmarshal([]byte(jsonStr), &geminiJSON); err != nil {
		log.Printf("Error parsing Gemini JSON: %v\nRaw JSON: %s", err, jsonStr)
		return nil, fmt.Errorf("failed to parse AI insight data")
	}

	return &models.Insight{
		Summary:         geminiJSON.Summary,
		PositiveFactors: geminiJSON.PositiveFactors,
		NegativeFactors: geminiJSON.NegativeFactors,
		GeneratedAt:     time.Now(),
	}, nil
}
