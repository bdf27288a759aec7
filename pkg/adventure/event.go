package adventure

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/jwright-games/worldweaver/pkg/llm"
	"github.com/jwright-games/worldweaver/pkg/locale"
	"github.com/jwright-games/worldweaver/pkg/world"
)

// Event is the generator's structured reply for one turn. Only dm_text,
// options and health_change are load-bearing; the delta objects are
// advisory and individually tolerated when malformed.
type Event struct {
	DMText           string          `json:"dm_text"`
	Options          []string        `json:"options"`
	HealthChange     int             `json:"health_change"`
	WorldStateChange map[string]any  `json:"world_state_change,omitempty"`
	PlayerChange     map[string]any  `json:"player_change,omitempty"`
	NPCChange        json.RawMessage `json:"npc_change,omitempty"`

	// Fallback marks events the engine substituted for an unusable reply.
	Fallback bool `json:"-"`
}

// FallbackEvent is the fixed substitute used when the generator fails or
// returns an unusable reply. All deltas are zero; the turn never aborts.
func FallbackEvent(lang locale.Lang) *Event {
	return &Event{
		DMText:   locale.FallbackEventText(lang),
		Options:  locale.FallbackEventOptions(lang),
		Fallback: true,
	}
}

// ParseEvent extracts the first JSON object from generator output and
// reads it field by field, so one malformed field never poisons the rest.
// Returns nil when no usable object is found.
func ParseEvent(text string) *Event {
	raw, ok := llm.ExtractJSONObject(text)
	if !ok {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil
	}

	ev := &Event{}
	if v, ok := fields["dm_text"]; ok {
		_ = json.Unmarshal(v, &ev.DMText)
	}
	if v, ok := fields["options"]; ok {
		_ = json.Unmarshal(v, &ev.Options)
	}
	if v, ok := fields["health_change"]; ok {
		ev.HealthChange = coerceNumber(v)
	}
	if v, ok := fields["world_state_change"]; ok {
		_ = json.Unmarshal(v, &ev.WorldStateChange)
	}
	if v, ok := fields["player_change"]; ok {
		_ = json.Unmarshal(v, &ev.PlayerChange)
	}
	if v, ok := fields["npc_change"]; ok {
		ev.NPCChange = v
	}
	return ev
}

// coerceNumber turns a raw JSON value into an int: numbers directly,
// numeric strings (optionally "+"-prefixed) parsed, everything else 0.
func coerceNumber(raw json.RawMessage) int {
	var f float64
	if err := json.Unmarshal(raw, &f); err == nil {
		return int(math.Round(f))
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "+"))
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(math.Round(f))
		}
	}
	return 0
}

// coerceAny is coerceNumber for already-decoded any values.
func coerceAny(v any) (int, bool) {
	switch x := v.(type) {
	case float64:
		return int(math.Round(x)), true
	case string:
		s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(x), "+"))
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return int(math.Round(f)), true
		}
	}
	return 0, false
}

// ApplyEvent merges an event into the world. The health delta is always
// applied and clamped. Well-typed ambient deltas in world_state_change are
// merged with the same coercion-and-clamp discipline; everything else in
// the advisory objects is ignored, never an error.
func ApplyEvent(w *world.World, ev *Event) {
	if ev == nil {
		return
	}

	if w.Player == nil {
		w.Player = world.NewPlayer()
	}
	w.Player.ApplyHealthDelta(ev.HealthChange)

	for key, v := range ev.WorldStateChange {
		if key == "weather" {
			if s, ok := v.(string); ok && s != "" {
				w.State.Weather = s
			}
			continue
		}
		delta, ok := coerceAny(v)
		if !ok {
			continue
		}
		switch key {
		case "tension":
			w.State.Tension = world.Clamp(w.State.Tension+delta, 0, 100)
		case "corruption":
			w.State.Corruption = world.Clamp(w.State.Corruption+delta, 0, 100)
		case "magic_density":
			w.State.MagicDensity = world.Clamp(w.State.MagicDensity+delta, 0, 100)
		case "radiation":
			w.State.Radiation = world.Clamp(w.State.Radiation+delta, 0, 100)
		}
	}
}

// ValidateEvent is the structural check applied before an event is
// accepted: the narrator must say something and offer at least one option.
// Content rules (option counts per action type, lore repetition) are
// advisory and handled by accept-and-log, not here.
func ValidateEvent(ev *Event) bool {
	if ev == nil {
		return false
	}
	if strings.TrimSpace(ev.DMText) == "" {
		return false
	}
	if len(ev.Options) == 0 {
		return false
	}
	for _, opt := range ev.Options {
		if strings.TrimSpace(opt) == "" {
			return false
		}
	}
	return true
}
