package llm

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrUnusableCredential marks an API key that is missing or still holds
// template text.
var ErrUnusableCredential = errors.New("unusable credential")

var placeholderMarkers = []string{
	"填在这里",
	"your-token",
	"your_token",
	"your-api-key",
	"changeme",
}

var templateText = regexp.MustCompile(`<[^<>]*>`)

var credentialPrefixes = map[string]string{
	ProviderAnthropic:  "sk-ant-",
	ProviderOpenRouter: "sk-or-",
}

// CheckCredential reports whether key can be used for provider. Empty
// keys, keys still containing placeholder text and keys lacking the
// provider's known prefix are rejected with ErrUnusableCredential.
func CheckCredential(provider, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%w: empty", ErrUnusableCredential)
	}
	lower := strings.ToLower(key)
	for _, m := range placeholderMarkers {
		if strings.Contains(lower, m) {
			return fmt.Errorf("%w: placeholder value", ErrUnusableCredential)
		}
	}
	if templateText.MatchString(key) {
		return fmt.Errorf("%w: placeholder value", ErrUnusableCredential)
	}
	if prefix, ok := credentialPrefixes[provider]; ok && !strings.HasPrefix(key, prefix) {
		return fmt.Errorf("%w: expected prefix %q", ErrUnusableCredential, prefix)
	}
	return nil
}
