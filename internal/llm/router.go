// Package llm provides the pluggable language-model interface the Agent
// Scheduler calls once per eligible character per cycle. The Router owns
// model lifecycle (load, inference, dispose); callers only ever see the
// prompt interface.
package llm

import "context"

// Tier identifies which model size class to use for a generation.
type Tier string

const (
	TierMinor Tier = "minor"
	TierStory Tier = "story"
)

// Options bounds one generation call.
type Options struct {
	Temperature float64
	TopP        float64
	MaxTokens   int
	StopStrings []string
}

// DefaultOptions returns the scheduler's default generation bounds
// (spec.md §4.7): a small, cheap completion that naturally truncates at the
// first closing brace of the action JSON object.
func DefaultOptions() Options {
	return Options{
		Temperature: 0.3,
		MaxTokens:   64,
		StopStrings: []string{"}", "\n\n"},
	}
}

// Router generates one completion for a given tier, system prompt, and
// user prompt.
type Router interface {
	Generate(ctx context.Context, tier Tier, systemPrompt, userPrompt string, opts Options) (string, error)
}
