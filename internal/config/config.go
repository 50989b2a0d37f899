package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	ProviderOllama = "ollama"
	ProviderGemini = "gemini"
)

type Config struct {
	Port          string
	Env           string
	DataDir       string
	DatabaseURL   string
	LLMProvider   string
	OllamaBaseURL string
	OllamaModel   string
	GeminiAPIKey  string
	GeminiModel   string
}

func LoadConfig() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:          GetEnv("PORT", "8080"),
		Env:           GetEnv("ENV", "development"),
		DataDir:       GetEnv("DATA_DIR", "data"),
		DatabaseURL:   GetEnv("DATABASE_URL", ""),
		LLMProvider:   GetEnv("LLM_PROVIDER", ProviderOllama),
		OllamaBaseURL: GetEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		OllamaModel:   GetEnv("OLLAMA_MODEL", "llama3.2:latest"),
		GeminiAPIKey:  GetEnv("GEMINI_API_KEY", ""),
		GeminiModel:   GetEnv("GEMINI_MODEL", "gemini-2.0-flash-exp"),
	}, nil
}

func GetEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// PromptsFile is the JSON file holding the editable prompt templates.
func (c *Config) PromptsFile() string {
	return filepath.Join(c.DataDir, "prompts.json")
}

// EmailsFile is the JSON snapshot of the in-memory email collection.
func (c *Config) EmailsFile() string {
	return filepath.Join(c.DataDir, "emails.json")
}

func (c *Config) Validate() error {
	if c.LLMProvider != ProviderOllama && c.LLMProvider != ProviderGemini {
		return fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q", ProviderOllama, ProviderGemini, c.LLMProvider)
	}
	// A missing GEMINI_API_KEY is not fatal: the Gemini client degrades to
	// "Error:" responses, which is the same contract as a backend outage.
	return nil
}
