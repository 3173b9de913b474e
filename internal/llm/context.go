package llm

import "context"

type purposeKey struct{}

// PurposeUnlabeled is reported for calls made without WithPurpose.
const PurposeUnlabeled = "unlabeled"

// WithPurpose labels every call made with ctx. The label ends up in the
// oracle event log.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey{}, purpose)
}

// PurposeFrom returns the label set by WithPurpose, or PurposeUnlabeled.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey{}).(string); ok && v != "" {
		return v
	}
	return PurposeUnlabeled
}
