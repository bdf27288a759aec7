package adventure

import (
	"strings"

	"github.com/jwright-games/worldweaver/pkg/world"
)

// Relationship stats are clamped into this range. The source material let
// them drift unbounded; the clamp is wide enough to never bind in normal
// play while keeping saves sane.
const (
	RelationMin = -100
	RelationMax = 100
)

var threatKeywords = []string{
	"threaten", "intimidate", "provoke", "attack", "kill", "rob",
	"insult", "blackmail", "menace",
	"威胁", "挑衅", "攻击", "杀", "抢", "侮辱",
}

// ApplyRelationship mutates the stats of the single character whose name
// exactly equals the action's target. No match is a no-op; matching is
// case-sensitive. Rules are cumulative.
func ApplyRelationship(a *ParsedAction, w *world.World) {
	if a == nil || a.Target == "" {
		return
	}
	c := w.Character(a.Target)
	if c == nil {
		return
	}

	switch a.Type {
	case ActionSocial:
		c.Trust++
	case ActionCombat:
		c.Trust += 2
		c.Fear--
	}

	if isThreat(a.Intent) {
		c.Trust -= 3
		c.Fear += 2
	}

	c.Trust = world.Clamp(c.Trust, RelationMin, RelationMax)
	c.Fear = world.Clamp(c.Fear, RelationMin, RelationMax)
}

func isThreat(intent string) bool {
	if intent == "" {
		return false
	}
	intent = strings.ToLower(intent)
	for _, kw := range threatKeywords {
		if strings.Contains(intent, kw) {
			return true
		}
	}
	return false
}
