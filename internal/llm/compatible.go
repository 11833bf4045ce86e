package llm

import "fmt"

// Endpoints that speak the OpenAI chat-completions protocol. Both reuse
// OpenAIProvider and differ only in where requests go and how the
// credential is named.
const (
	defaultGitHubModelsBaseURL = "https://models.inference.ai.azure.com"
	defaultOpenRouterBaseURL   = "https://openrouter.ai/api/v1"
)

// GitHubProvider talks to GitHub Models, authenticated with a GitHub token.
type GitHubProvider struct {
	*OpenAIProvider
}

func NewGitHubProvider(cfg GitHubConfig) (*GitHubProvider, error) {
	inner, err := newCompatibleProvider(ProviderGitHub, "github token", cfg.Token, cfg.Model, cfg.BaseURL, defaultGitHubModelsBaseURL)
	if err != nil {
		return nil, err
	}
	return &GitHubProvider{OpenAIProvider: inner}, nil
}

// OpenRouterProvider talks to OpenRouter. Model ids carry a vendor prefix
// ("openai/gpt-4o-mini") and are sent unchanged.
type OpenRouterProvider struct {
	*OpenAIProvider
}

func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	inner, err := newCompatibleProvider(ProviderOpenRouter, "openrouter API key", cfg.APIKey, cfg.Model, cfg.BaseURL, defaultOpenRouterBaseURL)
	if err != nil {
		return nil, err
	}
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}

func newCompatibleProvider(name, credential, key, model, baseURL, defaultURL string) (*OpenAIProvider, error) {
	if key == "" {
		return nil, fmt.Errorf("%s is required", credential)
	}
	if baseURL == "" {
		baseURL = defaultURL
	}
	return newOpenAIProviderRaw(name, OpenAIConfig{APIKey: key, Model: model, BaseURL: baseURL}), nil
}
