package prompts

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jwright-games/worldweaver/pkg/world"
)

// Action is the prompt-facing view of a classified player action.
type Action struct {
	Type   string
	Target string
	Intent string
	Topic  string
	Risk   string
}

// Builder assembles the event instruction payload for one turn using a
// fluent interface. It is a pure formatter: it validates nothing about
// the reply and applies nothing to the world.
type Builder struct {
	w          *world.World
	input      string
	action     Action
	disclosure string
	history    string
}

// New creates an empty event prompt builder.
func New() *Builder {
	return &Builder{}
}

// WithWorld sets the world whose state constrains the event.
func (b *Builder) WithWorld(w *world.World) *Builder {
	b.w = w
	return b
}

// WithPlayerInput sets the raw player text for this turn.
func (b *Builder) WithPlayerInput(input string) *Builder {
	b.input = input
	return b
}

// WithAction sets the classified action driving the content rules.
func (b *Builder) WithAction(a Action) *Builder {
	b.action = a
	return b
}

// WithDisclosure sets the turn's disclosure ceiling.
func (b *Builder) WithDisclosure(level string) *Builder {
	b.disclosure = level
	return b
}

// WithRecentHistory sets the formatted recent-turn transcript.
func (b *Builder) WithRecentHistory(history string) *Builder {
	b.history = history
	return b
}

// Build produces the (system, user) instruction pair for the generator.
func (b *Builder) Build() (string, string, error) {
	if b.w == nil {
		return "", "", fmt.Errorf("world is required")
	}

	var sb strings.Builder

	fmt.Fprintf(&sb, "You are the DM of this world. Generate the next turn's event from the world information and the player's action.\n\n")

	worldJSON, err := json.Marshal(b.w)
	if err != nil {
		return "", "", fmt.Errorf("error serializing world: %w", err)
	}
	fmt.Fprintf(&sb, "World information:\n%s\n\n", worldJSON)

	if b.history != "" {
		fmt.Fprintf(&sb, "Recent turns:\n%s\n", b.history)
	}

	fmt.Fprintf(&sb, "Player action:\n%q\n", b.input)
	fmt.Fprintf(&sb, "Classified as: type=%s target=%q intent=%q topic=%q risk=%s\n\n",
		b.action.Type, b.action.Target, b.action.Intent, b.action.Topic, b.action.Risk)

	b.addChapterRules(&sb)
	b.addActionConstraints(&sb)
	b.addDisclosureRules(&sb)
	b.addLoreConstraints(&sb)
	b.addRoster(&sb)
	b.addCurrentNode(&sb)
	b.addSchema(&sb)

	return EventSystem, sb.String(), nil
}

var chapterRules = [6]string{
	"Establish the world and the hook. Introduce at most one named character. Keep stakes personal and small.",
	"Surface the first concrete thread of the main quest. Complications are local and survivable.",
	"Deepen the main quest. Consequences of earlier choices start landing. Introduce tension between named characters.",
	"Raise the stakes sharply. Escape routes narrow. Every scene should cost the player something.",
	"March toward the finale. Converge threads; no new subplots. Each turn must move the main quest directly.",
	"This is the endgame. Resolve, do not expand.",
}

func (b *Builder) addChapterRules(sb *strings.Builder) {
	ch := b.w.Adventure.Chapter
	if ch < 0 {
		ch = 0
	}
	if ch > 5 {
		ch = 5
	}
	fmt.Fprintf(sb, "Chapter %d rules:\n- %s\n\n", ch, chapterRules[ch])
}

var actionConstraints = map[string]string{
	"combat":      "The turn must contain a concrete threat and a concrete outcome. Injuries must be reflected in health_change.",
	"exploration": "Describe something the player has not seen before. Never repeat previously revealed information.",
	"social":      "The targeted character must speak, in their recorded speech style, consistent with their traits.",
	"stealth":     "Keep tension high and information partial. Reveal consequences only on failure.",
	"item":        "Resolve the item interaction concretely. No new items may appear unannounced.",
	"move":        "Transition the scene to the destination. Arrival must reveal one sensory detail of the new place.",
}

func (b *Builder) addActionConstraints(sb *strings.Builder) {
	if rule, ok := actionConstraints[b.action.Type]; ok {
		fmt.Fprintf(sb, "Hard constraints for a %s turn:\n- %s\n\n", b.action.Type, rule)
	}
}

var disclosureRules = map[string]string{
	"no_information": "Reveal NO plot information this turn. Pure action and scenery only.",
	"shallow":        "You may hint at surface facts about the world. No secrets, no names of hidden forces.",
	"medium":         "You may reveal one secondary fact that deepens the main quest.",
	"major":          "You may reveal a significant plot fact, but keep the final truth hidden.",
	"deepening":      "The topic is already known to the player. Elaborate on it; reveal nothing new.",
	"reveal":         "You may reveal the remaining truths. Hold nothing back.",
}

func (b *Builder) addDisclosureRules(sb *strings.Builder) {
	if rule, ok := disclosureRules[b.disclosure]; ok {
		fmt.Fprintf(sb, "Information disclosure for this turn (%s):\n- %s\n\n", b.disclosure, rule)
	}
}

func (b *Builder) addLoreConstraints(sb *strings.Builder) {
	if len(b.w.InfoGiven) == 0 {
		return
	}
	fmt.Fprintf(sb, "Information already given to the player. Do NOT repeat any of it as if it were new:\n")
	for _, kw := range b.w.InfoGiven {
		fmt.Fprintf(sb, "- %s\n", kw)
	}
	sb.WriteString("\n")
}

func (b *Builder) addRoster(sb *strings.Builder) {
	if len(b.w.Characters) == 0 {
		return
	}
	sb.WriteString("Characters and how they behave:\n")
	for _, c := range b.w.Characters {
		fmt.Fprintf(sb, "- %s (%s): %s", c.Name, c.Role, c.Description)
		if c.Personality != nil {
			fmt.Fprintf(sb, " | traits: %s | speech: %s",
				strings.Join(c.Personality.Traits, ", "), c.Personality.SpeechStyle)
		}
		fmt.Fprintf(sb, " | trust=%d fear=%d\n", c.Trust, c.Fear)
	}
	sb.WriteString("\n")
}

func (b *Builder) addCurrentNode(sb *strings.Builder) {
	if b.w.Adventure.Mode != world.ModeNodes {
		return
	}
	node, ok := b.w.StoryNodes[b.w.Adventure.CurrentNode]
	if !ok {
		return
	}
	fmt.Fprintf(sb, "Current story beat (%s): %s\nStay inside this beat; do not resolve it yet.\n\n",
		b.w.Adventure.CurrentNode, node.Summary)
}

func (b *Builder) addSchema(sb *strings.Builder) {
	fmt.Fprintf(sb, `Language requirements:
- All narrative text must be written in %s.
- JSON keys are English.
- Output ONLY the JSON.

Output EXACTLY this structure:

{
"dm_text": "NARRATIVE_HERE",
"options": ["OP1","OP2","OP3","OP4","OP5"],
"health_change": CHANGE_VALUE,
"world_state_change": {},
"player_change": {},
"npc_change": []
}

Rules:
- health_change must be an integer (e.g. -10, -3, +5).
- health_change must reflect the event: injuries negative, recovery positive, minor exertion -1 to -3.
- Do not repeat the previous turn's event.
- The story must move forward.
- Return strict JSON.
`, LanguageName(b.w.Lang))
}
