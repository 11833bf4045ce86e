package llm

import "context"

// purposeKey carries the label a request is logged under ("explain" for
// drill explanations). llm stats groups spend by it.
type purposeKey struct{}

const unlabelled = "unknown"

// WithPurpose labels the requests made with ctx. An empty purpose keeps
// whatever label an outer caller set.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	if purpose == "" {
		return ctx
	}
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or "unknown".
func PurposeFrom(ctx context.Context) string {
	if p, _ := ctx.Value(purposeKey{}).(string); p != "" {
		return p
	}
	return unlabelled
}
