// Package llm defines the generator contract the engine consumes.
// Concrete backends live in internal/services.
package llm

import "context"

// Options tune a single generation call.
type Options struct {
	MaxTokens   int
	Temperature float64
}

// Generator produces free text from a system instruction and a user prompt.
// Implementations may fail or return malformed text; callers own recovery.
type Generator interface {
	Generate(ctx context.Context, system string, prompt string, opts Options) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context, system string, prompt string, opts Options) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context, system string, prompt string, opts Options) (string, error) {
	return f(ctx, system, prompt, opts)
}
