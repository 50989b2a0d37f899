package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"email-agent/internal/logger"
	"email-agent/internal/service"
)

const (
	geminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// Advisory output ceiling for the hosted backend.
	geminiMaxOutputTokens = 2048
)

type geminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewGeminiClient talks to the hosted Gemini API. A missing key is not
// fatal at construction: every Generate call then reports the sentinel
// error text, same as any other backend failure.
func NewGeminiClient(apiKey, model string, logger *logger.Logger) service.LLMClient {
	return &geminiClient{
		apiKey:     apiKey,
		model:      model,
		baseURL:    geminiBaseURL,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		logger:     logger,
	}
}

// Gemini API request/response structures
type geminiContent struct {
	Role  string       `json:"role"`
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

type geminiCandidate struct {
	Content      geminiCandidateContent `json:"content"`
	FinishReason string                 `json:"finishReason"`
}

type geminiCandidateContent struct {
	Parts []geminiPart `json:"parts"`
}

func (g *geminiClient) Generate(ctx context.Context, prompt string, temperature float64) string {
	if g.apiKey == "" {
		return "Error: API key not configured"
	}

	request := geminiRequest{
		Contents: []geminiContent{
			{
				Role:  "user",
				Parts: []geminiPart{{Text: prompt}},
			},
		},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     temperature,
			MaxOutputTokens: geminiMaxOutputTokens,
		},
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		g.logger.Error("Failed to marshal Gemini request:", err)
		return fmt.Sprintf("Error: %v", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", g.baseURL, g.model, g.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		g.logger.Error("Failed to create Gemini request:", err)
		return fmt.Sprintf("Error: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Error("Failed to reach Gemini:", err)
		return fmt.Sprintf("Error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		g.logger.Error("Gemini request failed with status", resp.StatusCode, string(body))
		return fmt.Sprintf("Error: Gemini request failed with status %d", resp.StatusCode)
	}

	var geminiResp geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&geminiResp); err != nil {
		g.logger.Error("Failed to decode Gemini response:", err)
		return fmt.Sprintf("Error: %v", err)
	}

	if len(geminiResp.Candidates) == 0 || len(geminiResp.Candidates[0].Content.Parts) == 0 {
		g.logger.Error("Gemini returned no candidates")
		return "Error: no candidates returned from Gemini"
	}

	return geminiResp.Candidates[0].Content.Parts[0].Text
}
