// README: Config loader with env defaults for HTTP, AI provider, DB, Redis and Firebase settings.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"daytrip/internal/ai"
)

type LimitsConfig struct {
	MonthlyTokens     int
	RequestsPerMinute int
}

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	Firebase struct {
		ProjectID       string
		CredentialsFile string
	}
	AI     ai.Settings
	Limits LimitsConfig
}

// Load reads the process configuration once. A .env file in the working
// directory is applied first; variables already set in the environment win.
// A missing API key is not an error here: completion calls report it.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	cfg.HTTP.Addr = envOrDefault("DAYTRIP_HTTP_ADDR", ":8080")
	cfg.DB.DSN = os.Getenv("DAYTRIP_DB_DSN")
	cfg.Redis.Addr = os.Getenv("DAYTRIP_REDIS_ADDR")
	cfg.Firebase.ProjectID = os.Getenv("DAYTRIP_FIREBASE_PROJECT_ID")
	cfg.Firebase.CredentialsFile = os.Getenv("DAYTRIP_FIREBASE_CREDENTIALS_FILE")
	cfg.Limits.MonthlyTokens = envOrDefaultInt("DAYTRIP_MONTHLY_TOKENS", 100)
	cfg.Limits.RequestsPerMinute = envOrDefaultInt("DAYTRIP_RATE_LIMIT_PER_MINUTE", 20)

	provider := strings.ToLower(envOrDefault("DAYTRIP_AI_PROVIDER", ai.ProviderGroq))
	switch provider {
	case ai.ProviderGroq, ai.ProviderGemini, ai.ProviderOpenAI:
	default:
		return Config{}, fmt.Errorf("DAYTRIP_AI_PROVIDER: unknown provider %q", provider)
	}
	cfg.AI.Provider = provider
	cfg.AI.Model = envOrDefault("DAYTRIP_AI_MODEL", ai.DefaultModel(provider))
	cfg.AI.APIKey = strings.TrimSpace(os.Getenv(ai.APIKeyVariable(provider)))
	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envOrDefaultInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
