package config

import (
	"os"
)

type Config struct {
	Port          string
	DatabaseURL   string
	MigrationsURL string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFrom       string

	AnthropicAPIKey string
	AnthropicModel  string

	OpenAIAPIKey string
}

func Load() *Config {
	return &Config{
		Port:          getenv("PORT", "8000"),
		DatabaseURL:   os.Getenv("DATABASE_URL"),
		MigrationsURL: getenv("MIGRATIONS_URL", "file://migrations"),

		TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioFrom:       os.Getenv("TWILIO_FROM"),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:  getenv("ANTHROPIC_MODEL", "claude-sonnet-4-20250514"),

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
