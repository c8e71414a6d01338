package llm

import "context"

// Generator is the single external generative-text call. The agent
// depends on this rather than on the Gemini client directly.
type Generator interface {
	Generate(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}
