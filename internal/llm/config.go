package llm

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures the narrative LLM provider. Fields are
// filled by cleanenv from the YAML config file and LDD_* variables.
type Config struct {
	Provider string `yaml:"provider" env:"LDD_LLM_PROVIDER" env-default:"anthropic"`

	Anthropic  AnthropicConfig  `yaml:"anthropic"`
	OpenAI     OpenAIConfig     `yaml:"openai"`
	Gemini     GeminiConfig     `yaml:"gemini"`
	OpenRouter OpenRouterConfig `yaml:"openrouter"`
	Retry      RetryConfig      `yaml:"retry"`

	// Timeout bounds one Generate call, retries included.
	Timeout time.Duration `yaml:"timeout" env:"LDD_LLM_TIMEOUT" env-default:"30s"`
}

type AnthropicConfig struct {
	APIKey string `yaml:"api_key" env:"LDD_ANTHROPIC_API_KEY"`
	Model  string `yaml:"model" env:"LDD_ANTHROPIC_MODEL" env-default:"claude-haiku"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key" env:"LDD_OPENAI_API_KEY"`
	Model   string `yaml:"model" env:"LDD_OPENAI_MODEL" env-default:"gpt-4o-mini"`
	BaseURL string `yaml:"base_url" env:"LDD_OPENAI_BASE_URL"`
}

type GeminiConfig struct {
	APIKey string `yaml:"api_key" env:"LDD_GEMINI_API_KEY"`
	Model  string `yaml:"model" env:"LDD_GEMINI_MODEL" env-default:"gemini-flash"`
}

type OpenRouterConfig struct {
	APIKey  string `yaml:"api_key" env:"LDD_OPENROUTER_API_KEY"`
	Model   string `yaml:"model" env:"LDD_OPENROUTER_MODEL" env-default:"google/gemini-2.0-flash-001"`
	BaseURL string `yaml:"base_url" env:"LDD_OPENROUTER_BASE_URL" env-default:"https://openrouter.ai/api/v1"`
}

// RetryConfig configures exponential backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts" env:"LDD_LLM_RETRY_ATTEMPTS" env-default:"3"`
	InitialWait time.Duration `yaml:"initial_wait" env-default:"1s"`
	MaxWait     time.Duration `yaml:"max_wait" env-default:"10s"`
	Multiplier  float64       `yaml:"multiplier" env-default:"2"`
}

// DefaultConfig returns the values cleanenv would produce with no file and
// no environment.
func DefaultConfig() Config {
	return Config{
		Provider:   ProviderAnthropic,
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenAI:     OpenAIConfig{Model: "gpt-4o-mini"},
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.0-flash-001", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// Discover fills in a provider from the vendors' standard API key
// variables when the configured provider has no key. It returns false if
// nothing usable was found.
func (c Config) Discover() (Config, bool) {
	if c.Validate() == nil {
		return c, true
	}

	probes := []struct {
		env      string
		provider string
		key      *string
	}{
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &c.Anthropic.APIKey},
		{"OPENAI_API_KEY", ProviderOpenAI, &c.OpenAI.APIKey},
		{"GEMINI_API_KEY", ProviderGemini, &c.Gemini.APIKey},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &c.OpenRouter.APIKey},
	}
	for _, p := range probes {
		if k := os.Getenv(p.env); k != "" {
			c.Provider = p.provider
			*p.key = k
			return c, true
		}
	}
	return c, false
}

// ErrMissingAPIKey is returned by Validate when the selected provider
// has no key.
var ErrMissingAPIKey = errors.New("missing API key")

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case ProviderAnthropic:
		key, env = c.Anthropic.APIKey, "LDD_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, env = c.OpenAI.APIKey, "LDD_OPENAI_API_KEY"
	case ProviderGemini:
		key, env = c.Gemini.APIKey, "LDD_GEMINI_API_KEY"
	case ProviderOpenRouter:
		key, env = c.OpenRouter.APIKey, "LDD_OPENROUTER_API_KEY"
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if key == "" {
		return fmt.Errorf("%w: set %s for the %s provider", ErrMissingAPIKey, env, c.Provider)
	}
	return nil
}
