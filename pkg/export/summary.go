package export

import (
	"context"
	"fmt"
	"strings"

	"github.com/jwright-games/worldweaver/pkg/adventure"
	"github.com/jwright-games/worldweaver/pkg/llm"
	"github.com/jwright-games/worldweaver/pkg/prompts"
)

// Summarize asks the chronicler for a prose retelling of the whole
// adventure. An error is returned rather than a fallback: callers that
// want a summary on a best-effort basis can fall back to the raw log.
func Summarize(ctx context.Context, gen llm.Generator, sess *adventure.Session) (string, error) {
	if sess == nil || sess.World == nil {
		return "", fmt.Errorf("session has no world")
	}
	if len(sess.History) == 0 {
		return "", fmt.Errorf("session has no history to summarize")
	}

	prompt := prompts.SummaryPrompt(sess.World.Lang, sess.FullHistoryText())
	out, err := gen.Generate(ctx, prompts.ChroniclerSystem, prompt, llm.Options{MaxTokens: 1500})
	if err != nil {
		return "", fmt.Errorf("failed to summarize adventure: %w", err)
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("summarizer returned empty text")
	}
	return out, nil
}
