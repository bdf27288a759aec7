package adventure

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/jwright-games/worldweaver/pkg/llm"
)

// ActionType is the closed classification of player input.
type ActionType string

const (
	ActionCombat      ActionType = "combat"
	ActionExploration ActionType = "exploration"
	ActionSocial      ActionType = "social"
	ActionStealth     ActionType = "stealth"
	ActionItem        ActionType = "item"
	ActionMove        ActionType = "move"
)

// Risk grades how dangerous the classified action is.
type Risk string

const (
	RiskLow    Risk = "low"
	RiskMedium Risk = "medium"
	RiskHigh   Risk = "high"
)

// ParsedAction is the structured interpretation of free-text player input.
// It is recomputed every turn and not persisted.
type ParsedAction struct {
	Type   ActionType `json:"action_type"`
	Target string     `json:"target"`
	Intent string     `json:"intent"`
	Topic  string     `json:"topic"`
	Risk   Risk       `json:"risk"`
}

const classifierSystem = `You are an intent classifier for a text adventure.
Output only strict JSON. Never add text outside the JSON.`

const classifierPromptTemplate = `Classify the player's input into this exact JSON shape:

{"action_type": "...", "target": "...", "intent": "...", "topic": "...", "risk": "..."}

- action_type must be one of: combat, exploration, social, stealth, item, move
- target is the named person, place, or thing acted on ("" if none)
- intent is a short verb phrase for what the player wants
- topic is the subject the player asks or talks about ("" if none)
- risk must be one of: low, medium, high

Player input:
"%s"`

var validActionTypes = map[ActionType]bool{
	ActionCombat:      true,
	ActionExploration: true,
	ActionSocial:      true,
	ActionStealth:     true,
	ActionItem:        true,
	ActionMove:        true,
}

var validRisks = map[Risk]bool{
	RiskLow:    true,
	RiskMedium: true,
	RiskHigh:   true,
}

// DefaultAction is the stand-in used when classification fails: the turn
// proceeds as a low-risk free-form social action.
func DefaultAction() *ParsedAction {
	return &ParsedAction{Type: ActionSocial, Risk: RiskLow}
}

// ClassifyAction turns raw player text into a ParsedAction via one
// generator call. Any failure (transport, no JSON, junk JSON) returns nil;
// callers substitute DefaultAction rather than failing the turn.
func ClassifyAction(ctx context.Context, gen llm.Generator, input string) *ParsedAction {
	out, err := gen.Generate(ctx, classifierSystem,
		strings.Replace(classifierPromptTemplate, "%s", input, 1),
		llm.Options{MaxTokens: 200, Temperature: 0.0})
	if err != nil {
		return nil
	}

	raw, ok := llm.ExtractJSONObject(out)
	if !ok {
		return nil
	}

	var a ParsedAction
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil
	}

	a.Type = ActionType(strings.ToLower(strings.TrimSpace(string(a.Type))))
	if !validActionTypes[a.Type] {
		a.Type = ActionSocial
	}
	a.Risk = Risk(strings.ToLower(strings.TrimSpace(string(a.Risk))))
	if !validRisks[a.Risk] {
		a.Risk = RiskLow
	}
	a.Target = strings.TrimSpace(a.Target)
	a.Intent = strings.TrimSpace(a.Intent)
	a.Topic = strings.TrimSpace(a.Topic)
	return &a
}
