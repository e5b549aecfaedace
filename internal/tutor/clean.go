package tutor

import (
	"regexp"
	"strings"
)

// reasoningMarkup matches <think>...</think> blocks, including across
// newlines. Reasoning-tuned models (DeepSeek R1 family and friends) emit
// these ahead of the actual reply.
var reasoningMarkup = regexp.MustCompile(`(?s)<think>.*?</think>`)

// StripReasoning removes reasoning markup from a raw model response and
// trims surrounding whitespace. Idempotent; text without markers passes
// through trimmed but otherwise unchanged.
func StripReasoning(raw string) string {
	return strings.TrimSpace(reasoningMarkup.ReplaceAllString(raw, ""))
}
