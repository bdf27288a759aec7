package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jwright-games/worldweaver/pkg/locale"
	"github.com/jwright-games/worldweaver/pkg/world"
)

type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	LLMProvider     string
	ModelName       string
	OpenAIAPIKey    string
	AnthropicAPIKey string

	RedisURL string

	StoryMode   world.ProgressMode
	DefaultLang locale.Lang
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		LogLevel:        parseLogLevel(getEnv("LOG_LEVEL", "info")),
		LLMProvider:     strings.ToLower(getEnv("LLM_PROVIDER", "openai")),
		ModelName:       getEnv("MODEL_NAME", "gpt-4o-mini"),
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		RedisURL:        getEnv("REDIS_URL", "localhost:6379"),
		DefaultLang:     locale.Normalize(locale.Lang(getEnv("LANG_DEFAULT", "en"))),
	}

	switch mode := world.ProgressMode(getEnv("STORY_MODE", string(world.ModeLinear))); mode {
	case world.ModeLinear, world.ModeNodes:
		cfg.StoryMode = mode
	default:
		return nil, fmt.Errorf("invalid STORY_MODE %q (want %q or %q)", mode, world.ModeLinear, world.ModeNodes)
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
