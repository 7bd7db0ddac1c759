package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points ENV_FILE at an empty temp dir and clears variables Load reads.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("ENV_FILE", filepath.Join(dir, ".env"))
	for _, key := range []string{
		"HTTP_PORT", "LOG_LEVEL", "SERVICENOW_DEFAULT_INSTANCE_URL", "SERVICENOW_ENDPOINT_PATH",
		"LLM_PROVIDER", "OPENAI_API_KEY", "OPENAI_MODEL", "OPENAI_BASE_URL",
		"ANTHROPIC_API_KEY", "ANTHROPIC_MODEL", "LLM_TEMPERATURE", "AGENT_MAX_STEPS",
	} {
		t.Setenv(key, "")
	}
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "https://dev182735.service-now.com", cfg.ServiceNowDefaultInstanceURL)
	assert.Equal(t, "/api/now/table/incident", cfg.ServiceNowEndpointPath)
	assert.Equal(t, ProviderOpenAI, cfg.LLMProvider)
	assert.Equal(t, "sk-test", cfg.OpenAIAPIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAIModel)
	assert.Equal(t, 0.5, cfg.LLMTemperature)
	assert.Equal(t, 5, cfg.AgentMaxSteps)
}

func TestLoad_MissingOpenAIKey(t *testing.T) {
	isolate(t)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestLoad_AnthropicRequiresKey(t *testing.T) {
	isolate(t)
	t.Setenv("LLM_PROVIDER", "Anthropic")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")

	t.Setenv("ANTHROPIC_API_KEY", "ak-test")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ProviderAnthropic, cfg.LLMProvider)
}

func TestLoad_ProviderNoneNeedsNoKey(t *testing.T) {
	isolate(t)
	t.Setenv("LLM_PROVIDER", "none")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ProviderNone, cfg.LLMProvider)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		key      string
		value    string
	}{
		{name: "unknown provider", key: "LLM_PROVIDER", value: "bard"},
		{name: "anthropic temperature above 1", provider: ProviderAnthropic, key: "LLM_TEMPERATURE", value: "1.5"},
		{name: "non-numeric temperature", key: "LLM_TEMPERATURE", value: "warm"},
		{name: "temperature out of range", key: "LLM_TEMPERATURE", value: "3"},
		{name: "non-numeric steps", key: "AGENT_MAX_STEPS", value: "many"},
		{name: "zero steps", key: "AGENT_MAX_STEPS", value: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv("OPENAI_API_KEY", "sk-test")
			t.Setenv("ANTHROPIC_API_KEY", "ak-test")
			if tt.provider != "" {
				t.Setenv("LLM_PROVIDER", tt.provider)
			}
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoad_DotEnv(t *testing.T) {
	dir := isolate(t)
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("LLM_PROVIDER=none\nHTTP_PORT=9090\n"), 0o600))

	// godotenv only fills variables that are not already present
	os.Unsetenv("LLM_PROVIDER")
	os.Unsetenv("HTTP_PORT")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ProviderNone, cfg.LLMProvider)
	assert.Equal(t, "9090", cfg.HTTPPort)
}

func TestLoad_DotEnvDoesNotOverride(t *testing.T) {
	dir := isolate(t)
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("HTTP_PORT=9090\n"), 0o600))
	t.Setenv("LLM_PROVIDER", "none")
	t.Setenv("HTTP_PORT", "7070")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.HTTPPort)
}

func TestLoad_MalformedDotEnv(t *testing.T) {
	dir := isolate(t)
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.Mkdir(envFile, 0o700))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_TemperatureRangePerProvider(t *testing.T) {
	isolate(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("ANTHROPIC_API_KEY", "ak-test")
	t.Setenv("LLM_TEMPERATURE", "1.5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 1.5, cfg.LLMTemperature)

	t.Setenv("LLM_PROVIDER", ProviderAnthropic)
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "between 0 and 1")

	t.Setenv("LLM_TEMPERATURE", "0")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 0.0, cfg.LLMTemperature)
}
