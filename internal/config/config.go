// Package config handles environment variable configuration loading.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Supported completion providers.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderNone      = "none"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// HTTP server settings
	HTTPPort string
	LogLevel string

	// ServiceNow defaults. Credentials are entered per lookup in the form.
	ServiceNowDefaultInstanceURL string
	ServiceNowEndpointPath       string

	// Completion service settings
	LLMProvider     string
	OpenAIAPIKey    string
	OpenAIModel     string
	OpenAIBaseURL   string
	AnthropicAPIKey string
	AnthropicModel  string
	LLMTemperature  float64
	AgentMaxSteps   int
}

// Load reads an optional dotenv file and then configuration from environment
// variables. Returns an error if required fields are missing or malformed.
func Load() (*Config, error) {
	envFile := getEnvOrDefault("ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
	}

	cfg := &Config{
		HTTPPort:                     getEnvOrDefault("HTTP_PORT", "8080"),
		LogLevel:                     getEnvOrDefault("LOG_LEVEL", "info"),
		ServiceNowDefaultInstanceURL: getEnvOrDefault("SERVICENOW_DEFAULT_INSTANCE_URL", "https://dev182735.service-now.com"),
		ServiceNowEndpointPath:       getEnvOrDefault("SERVICENOW_ENDPOINT_PATH", "/api/now/table/incident"),
		LLMProvider:                  strings.ToLower(getEnvOrDefault("LLM_PROVIDER", ProviderOpenAI)),
		OpenAIAPIKey:                 os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:                  getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL:                os.Getenv("OPENAI_BASE_URL"), // Optional, SDK default if empty
		AnthropicAPIKey:              os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel:               getEnvOrDefault("ANTHROPIC_MODEL", "claude-sonnet-4-5-20250929"),
	}

	temperature, err := strconv.ParseFloat(getEnvOrDefault("LLM_TEMPERATURE", "0.5"), 64)
	if err != nil {
		return nil, fmt.Errorf("LLM_TEMPERATURE must be a number: %w", err)
	}
	cfg.LLMTemperature = temperature

	maxSteps, err := strconv.Atoi(getEnvOrDefault("AGENT_MAX_STEPS", "5"))
	if err != nil {
		return nil, fmt.Errorf("AGENT_MAX_STEPS must be an integer: %w", err)
	}
	cfg.AgentMaxSteps = maxSteps

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks that all required configuration fields are present.
func (c *Config) validate() error {
	switch c.LLMProvider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY is required when LLM_PROVIDER is openai")
		}
	case ProviderAnthropic:
		if c.AnthropicAPIKey == "" {
			return errors.New("ANTHROPIC_API_KEY is required when LLM_PROVIDER is anthropic")
		}
		if c.LLMTemperature > 1 {
			return errors.New("LLM_TEMPERATURE must be between 0 and 1 when LLM_PROVIDER is anthropic")
		}
	case ProviderNone:
	default:
		return fmt.Errorf("unsupported LLM_PROVIDER %q", c.LLMProvider)
	}
	if c.AgentMaxSteps < 1 {
		return errors.New("AGENT_MAX_STEPS must be at least 1")
	}
	if c.LLMTemperature < 0 || c.LLMTemperature > 2 {
		return errors.New("LLM_TEMPERATURE must be between 0 and 2")
	}
	return nil
}

// getEnvOrDefault returns the environment variable value or a default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
