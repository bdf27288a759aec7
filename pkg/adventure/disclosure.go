package adventure

import (
	"github.com/jwright-games/worldweaver/pkg/world"
)

// DisclosureLevel is the advisory ceiling on how much plot information
// the narrator may reveal this turn.
type DisclosureLevel string

const (
	DisclosureNone      DisclosureLevel = "no_information"
	DisclosureShallow   DisclosureLevel = "shallow"
	DisclosureMedium    DisclosureLevel = "medium"
	DisclosureMajor     DisclosureLevel = "major"
	DisclosureDeepening DisclosureLevel = "deepening"
	DisclosureReveal    DisclosureLevel = "reveal"
)

// DisclosureFor decides the disclosure level for the current turn.
// Priority order, first match wins:
//  1. Non-social, non-exploration actions never carry plot reveals.
//  2. A topic the session has already disclosed gets elaboration only.
//  3. Otherwise the level is chapter-indexed.
func DisclosureFor(a *ParsedAction, w *world.World) DisclosureLevel {
	if a == nil {
		a = DefaultAction()
	}

	if a.Type != ActionSocial && a.Type != ActionExploration {
		return DisclosureNone
	}

	if a.Topic != "" && w.HasDisclosed(a.Topic) {
		return DisclosureDeepening
	}

	switch chapter := w.Adventure.Chapter; {
	case chapter <= 0:
		return DisclosureShallow
	case chapter == 1:
		return DisclosureMedium
	case chapter < 5:
		return DisclosureMajor
	default:
		return DisclosureReveal
	}
}

// Reveals reports whether a level discloses new lore, and therefore
// whether the turn's topic should be recorded as given information.
func (l DisclosureLevel) Reveals() bool {
	switch l {
	case DisclosureShallow, DisclosureMedium, DisclosureMajor, DisclosureReveal:
		return true
	}
	return false
}
