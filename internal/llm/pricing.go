package llm

import "strings"

// ModelCost is the USD price per million tokens of one model.
type ModelCost struct {
	InputPerMTok  float64
	OutputPerMTok float64
	// Free marks models served at no charge (GitHub Models within the
	// account's rate limits).
	Free bool
}

// Cost returns the USD cost of the given token counts.
func (c ModelCost) Cost(inputTokens, outputTokens int) float64 {
	if c.Free {
		return 0
	}
	return float64(inputTokens)*c.InputPerMTok/1_000_000 +
		float64(outputTokens)*c.OutputPerMTok/1_000_000
}

// LookupCost returns the price of model as billed by provider, or nil if
// it is unknown. GitHub Models calls cost nothing; OpenRouter ids carry a
// vendor prefix ("openai/gpt-4o-mini") and are priced as the vendor's model.
func LookupCost(provider, model string) *ModelCost {
	switch provider {
	case ProviderGitHub:
		return &ModelCost{Free: true}
	case ProviderOpenRouter:
		if _, rest, ok := strings.Cut(model, "/"); ok {
			model = rest
		}
	}
	if c, ok := modelCosts[model]; ok {
		return &c
	}
	// Dated snapshots ("gpt-4o-mini-2024-07-18") are priced as the
	// longest matching base model.
	var best string
	for base := range modelCosts {
		if strings.HasPrefix(model, base+"-") && len(base) > len(best) {
			best = base
		}
	}
	if best == "" {
		return nil
	}
	c := modelCosts[best]
	return &c
}

// modelCosts covers the models drillpad's providers default to or are
// commonly pointed at for short explanations.
var modelCosts = map[string]ModelCost{
	// Anthropic
	"claude-3-5-haiku-20241022": {InputPerMTok: 0.8, OutputPerMTok: 4},
	"claude-haiku-4-5":          {InputPerMTok: 1, OutputPerMTok: 5},
	"claude-haiku-4-5-20251001": {InputPerMTok: 1, OutputPerMTok: 5},
	"claude-sonnet-4-20250514":  {InputPerMTok: 3, OutputPerMTok: 15},
	"claude-sonnet-4-5":         {InputPerMTok: 3, OutputPerMTok: 15},

	// OpenAI
	"gpt-4o":       {InputPerMTok: 2.5, OutputPerMTok: 10},
	"gpt-4o-mini":  {InputPerMTok: 0.15, OutputPerMTok: 0.6},
	"gpt-4.1":      {InputPerMTok: 2, OutputPerMTok: 8},
	"gpt-4.1-mini": {InputPerMTok: 0.4, OutputPerMTok: 1.6},
	"gpt-4.1-nano": {InputPerMTok: 0.1, OutputPerMTok: 0.4},
	"gpt-5-mini":   {InputPerMTok: 0.25, OutputPerMTok: 2},
	"gpt-5-nano":   {InputPerMTok: 0.05, OutputPerMTok: 0.4},

	// Gemini
	"gemini-2.0-flash":      {InputPerMTok: 0.1, OutputPerMTok: 0.4},
	"gemini-2.0-flash-lite": {InputPerMTok: 0.075, OutputPerMTok: 0.3},
	"gemini-2.5-flash":      {InputPerMTok: 0.3, OutputPerMTok: 2.5},
	"gemini-2.5-pro":        {InputPerMTok: 1.25, OutputPerMTok: 10},
}
