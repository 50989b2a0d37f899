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

type ollamaClient struct {
	baseURL    string
	model      string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewOllamaClient talks to a local Ollama server's non-streaming generate
// endpoint. The HTTP timeout is the only cancellation this layer has; its
// expiry surfaces as an "Error:" response, not a distinct signal.
func NewOllamaClient(baseURL, model string, logger *logger.Logger) service.LLMClient {
	return &ollamaClient{
		baseURL:    baseURL,
		model:      model,
		httpClient: &http.Client{Timeout: 120 * time.Second},
		logger:     logger,
	}
}

type ollamaGenerateRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
}

type ollamaGenerateResponse struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

func (o *ollamaClient) Generate(ctx context.Context, prompt string, temperature float64) string {
	request := ollamaGenerateRequest{
		Model:   o.model,
		Prompt:  prompt,
		Stream:  false,
		Options: ollamaOptions{Temperature: temperature},
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		o.logger.Error("Failed to marshal Ollama request:", err)
		return fmt.Sprintf("Error: %v", err)
	}

	url := o.baseURL + "/api/generate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		o.logger.Error("Failed to create Ollama request:", err)
		return fmt.Sprintf("Error: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(req)
	if err != nil {
		o.logger.Error("Failed to reach Ollama:", err)
		return fmt.Sprintf("Error: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		o.logger.Error("Ollama request failed with status", resp.StatusCode, string(body))
		return fmt.Sprintf("Error: Ollama request failed with status %d", resp.StatusCode)
	}

	var generateResp ollamaGenerateResponse
	if err := json.NewDecoder(resp.Body).Decode(&generateResp); err != nil {
		o.logger.Error("Failed to decode Ollama response:", err)
		return fmt.Sprintf("Error: %v", err)
	}

	return generateResp.Response
}
