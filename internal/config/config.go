package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	RedisURL string
	DataDir  string

	LLMProvider     string
	ModelName       string
	OllamaURL       string
	AnthropicAPIKey string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        parseLogLevel(getEnv("LOG_LEVEL", "info")),
		RedisURL:        getEnv("REDIS_URL", "localhost:6379"),
		DataDir:         getEnv("DATA_DIR", "game_data"),
		LLMProvider:     getEnv("LLM_PROVIDER", "ollama"),
		ModelName:       getEnv("MODEL_NAME", "qwen2.5:14b"),
		OllamaURL:       getEnv("OLLAMA_URL", "http://localhost:11434"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
	}

	switch strings.ToLower(cfg.LLMProvider) {
	case "ollama", "anthropic":
	default:
		return nil, fmt.Errorf("invalid LLM_PROVIDER %q (supported: ollama, anthropic)", cfg.LLMProvider)
	}

	return cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
