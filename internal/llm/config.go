package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted by DRILLPAD_LLM_PROVIDER.
const (
	ProviderGitHub     = "github"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config holds all LLM provider configuration.
type Config struct {
	// Provider selects which LLM provider to use. Empty means "discover
	// from the standard API key variables".
	Provider string

	GitHub     GitHubConfig
	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout is the maximum duration for a single LLM request
	// (including retries). Default: 30s.
	Timeout time.Duration
}

// GitHubConfig holds GitHub Models configuration.
type GitHubConfig struct {
	Token   string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Default: "https://models.inference.ai.azure.com"
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string // Default: "openai/gpt-4o-mini"
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a Config with sensible defaults and no provider.
func DefaultConfig() Config {
	return Config{
		GitHub: GitHubConfig{
			Model:   "gpt-4o-mini",
			BaseURL: defaultGitHubModelsBaseURL,
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenRouter: OpenRouterConfig{
			Model: "openai/gpt-4o-mini",
		},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: 1 * time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 30 * time.Second,
	}
}

// ConfigFromEnv builds a Config from the DRILLPAD_* environment
// variables, falling back to defaults for unset values.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("DRILLPAD_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	if k := os.Getenv("DRILLPAD_GITHUB_TOKEN"); k != "" {
		cfg.GitHub.Token = k
	}
	if m := os.Getenv("DRILLPAD_GITHUB_MODEL"); m != "" {
		cfg.GitHub.Model = m
	}

	if k := os.Getenv("DRILLPAD_ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("DRILLPAD_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	if k := os.Getenv("DRILLPAD_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("DRILLPAD_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("DRILLPAD_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if k := os.Getenv("DRILLPAD_GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := os.Getenv("DRILLPAD_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	if k := os.Getenv("DRILLPAD_OPENROUTER_API_KEY"); k != "" {
		cfg.OpenRouter.APIKey = k
	}
	if m := os.Getenv("DRILLPAD_OPENROUTER_MODEL"); m != "" {
		cfg.OpenRouter.Model = m
	}

	return cfg
}

// DiscoverConfig probes the providers in priority order (GitHub → OpenAI
// → Anthropic → Gemini → OpenRouter) and returns a Config for the first one
// whose credential is usable. A DRILLPAD_* key wins over the standard
// variable of the same provider, so DRILLPAD_GITHUB_TOKEN is preferred to
// GITHUB_TOKEN. Placeholder values are skipped. Returns (Config{}, false)
// if none found.
func DiscoverConfig() (Config, bool) {
	cfg := ConfigFromEnv()

	probes := []struct {
		env      string
		provider string
		key      *string
	}{
		{"GITHUB_TOKEN", ProviderGitHub, &cfg.GitHub.Token},
		{"OPENAI_API_KEY", ProviderOpenAI, &cfg.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &cfg.Anthropic.APIKey},
		{"GEMINI_API_KEY", ProviderGemini, &cfg.Gemini.APIKey},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &cfg.OpenRouter.APIKey},
	}
	for _, p := range probes {
		k := *p.key
		if CheckCredential(p.provider, k) != nil {
			k = os.Getenv(p.env)
		}
		if CheckCredential(p.provider, k) != nil {
			continue
		}
		cfg.Provider = p.provider
		*p.key = k
		return cfg, true
	}

	return Config{}, false
}

// ResolveConfig returns the explicit DRILLPAD_* configuration when a
// provider is named, and otherwise falls back to DiscoverConfig. The
// result is validated; ErrNoCredential means explanations are unavailable.
func ResolveConfig() (Config, error) {
	cfg := ConfigFromEnv()
	if cfg.Provider == "" {
		var ok bool
		if cfg, ok = DiscoverConfig(); !ok {
			return Config{}, ErrNoCredential
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the selected provider has a usable credential.
func (c Config) Validate() error {
	var key, env string
	switch c.Provider {
	case ProviderGitHub:
		key, env = c.GitHub.Token, "DRILLPAD_GITHUB_TOKEN"
	case ProviderAnthropic:
		key, env = c.Anthropic.APIKey, "DRILLPAD_ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		key, env = c.OpenAI.APIKey, "DRILLPAD_OPENAI_API_KEY"
	case ProviderGemini:
		key, env = c.Gemini.APIKey, "DRILLPAD_GEMINI_API_KEY"
	case ProviderOpenRouter:
		key, env = c.OpenRouter.APIKey, "DRILLPAD_OPENROUTER_API_KEY"
	case ProviderMock:
		return nil
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if err := CheckCredential(c.Provider, key); err != nil {
		return fmt.Errorf("%s for the %s provider: %w", env, c.Provider, err)
	}
	return nil
}
