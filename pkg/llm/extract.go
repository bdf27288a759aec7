package llm

import (
	"encoding/json"
	"strings"
)

// ExtractJSONObject scans generator output for the first top-level JSON
// object and returns it. Anything outside the span (narration, apologies,
// markdown fences) is discarded. Returns false when no valid object parses.
func ExtractJSONObject(text string) (json.RawMessage, bool) {
	start := strings.Index(text, "{")
	if start < 0 {
		return nil, false
	}

	dec := json.NewDecoder(strings.NewReader(text[start:]))
	var raw json.RawMessage
	if err := dec.Decode(&raw); err == nil && len(raw) > 0 && raw[0] == '{' {
		return raw, true
	}

	// Recover replies with junk mid-stream by trying the widest span.
	end := strings.LastIndex(text, "}")
	if end <= start {
		return nil, false
	}
	wide := json.RawMessage(text[start : end+1])
	if json.Valid(wide) {
		return wide, true
	}
	return nil, false
}
