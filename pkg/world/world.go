package world

import (
	"time"

	"github.com/jwright-games/worldweaver/pkg/locale"
	"github.com/jwright-games/worldweaver/pkg/lore"
)

// Location is a named place in the world.
type Location struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Personality is derived once at session start from a character's role and
// description, and is immutable afterwards.
type Personality struct {
	Traits      []string `json:"traits,omitempty"`
	SpeechStyle string   `json:"speech_style,omitempty"`
}

// Character is an NPC: static identity plus mutable relationship stats.
// Trust and fear drift with player actions; health is advisory and only
// moves when the generator declares an NPC delta.
type Character struct {
	Name        string       `json:"name"`
	Role        string       `json:"role,omitempty"`
	Description string       `json:"short_desc,omitempty"`
	Personality *Personality `json:"personality,omitempty"`
	Trust       int          `json:"trust"`
	Fear        int          `json:"fear"`
	Health      int          `json:"health"`
}

// Logic holds the soft world rules fed to the narrator.
type Logic struct {
	TechLevel    string `json:"tech_level,omitempty"`
	MagicAllowed bool   `json:"magic_allowed"`
	Tone         string `json:"tone,omitempty"`
}

// DayPhase cycles morning → dusk → night.
type DayPhase int

const (
	PhaseMorning DayPhase = iota
	PhaseDusk
	PhaseNight
	phaseCount
)

func (p DayPhase) String() string {
	switch p {
	case PhaseMorning:
		return "morning"
	case PhaseDusk:
		return "dusk"
	case PhaseNight:
		return "night"
	}
	return "morning"
}

// Next advances the phase cyclically.
func (p DayPhase) Next() DayPhase {
	return (p + 1) % phaseCount
}

// State holds the ambient numeric variables of the world. All scalar
// fields stay within [0,100].
type State struct {
	Tension      int      `json:"tension"`
	Corruption   int      `json:"corruption"`
	MagicDensity int      `json:"magic_density"`
	Radiation    int      `json:"radiation"`
	DayPhase     DayPhase `json:"day_phase"`
	Weather      string   `json:"weather"`
}

// ProgressMode selects the story progress strategy. It is chosen once at
// session creation and never changes mid-session.
type ProgressMode string

const (
	ModeLinear ProgressMode = "linear"
	ModeNodes  ProgressMode = "nodes"
)

// AdventureState is the progress state of the running adventure.
type AdventureState struct {
	Mode           ProgressMode `json:"mode"`
	StoryProgress  int          `json:"story_progress"` // 0..100, monotonic
	Chapter        int          `json:"chapter"`        // derived from progress
	FinalTriggered bool         `json:"final_triggered"`

	// Node-graph mode only.
	CurrentNode    string `json:"current_node,omitempty"`
	NodeRoundCount int    `json:"node_round_count,omitempty"`
	AwaitingChoice bool   `json:"awaiting_choice,omitempty"` // branch options offered, next input must pick one
}

// NodeOption is one branching exit of a story node.
type NodeOption struct {
	Text string `json:"text"`
	Next string `json:"next"`
}

// StoryNode is a fixed point in the directed story graph. The finale node
// has no options and is terminal.
type StoryNode struct {
	Summary string       `json:"summary"`
	Options []NodeOption `json:"options,omitempty"`
}

// World is the full mutable game universe for one session, persisted as a
// single JSON blob keyed by Name.
type World struct {
	Name      string      `json:"name"`
	Title     string      `json:"title,omitempty"`
	Summary   string      `json:"summary,omitempty"`
	Hook      string      `json:"initial_hook,omitempty"`
	MainQuest string      `json:"main_quest,omitempty"`
	Lang      locale.Lang `json:"lang,omitempty"`

	Locations  []Location  `json:"locations,omitempty"`
	Characters []Character `json:"characters,omitempty"`
	Logic      Logic       `json:"logic"`

	State  State   `json:"world_state"`
	Player *Player `json:"player_stats,omitempty"`

	InfoGiven        []string `json:"info_given,omitempty"`
	VisitedLocations []string `json:"visited_locations,omitempty"`
	MetCharacters    []string `json:"met_characters,omitempty"`

	Adventure  AdventureState       `json:"adventure_state"`
	StoryNodes map[string]StoryNode `json:"story_nodes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clamp bounds v into [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// New returns a world with default dynamic state: mid-range ambient
// variables, full player health, linear progress at chapter 0.
func New(name string, lang locale.Lang) *World {
	now := time.Now()
	return &World{
		Name: name,
		Lang: locale.Normalize(lang),
		State: State{
			Tension:      50,
			Corruption:   20,
			MagicDensity: 40,
			Radiation:    0,
			DayPhase:     PhaseMorning,
			Weather:      "clear",
		},
		Player: NewPlayer(),
		Adventure: AdventureState{
			Mode: ModeLinear,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UseNodeGraph switches a fresh world to node-graph progress and installs
// the default story graph. Calling it after the adventure has begun is a
// programming error; the orchestrator only configures mode at creation.
func (w *World) UseNodeGraph() {
	w.Adventure.Mode = ModeNodes
	w.Adventure.CurrentNode = NodeSetup
	w.Adventure.NodeRoundCount = 0
	w.StoryNodes = DefaultStoryNodes()
}

// Character returns the character with exactly the given name, or nil.
// Matching is case-sensitive.
func (w *World) Character(name string) *Character {
	for i := range w.Characters {
		if w.Characters[i].Name == name {
			return &w.Characters[i]
		}
	}
	return nil
}

// Disclose appends a plot keyword to the world's disclosed-information
// list. Duplicates (after canonicalization) are dropped.
func (w *World) Disclose(keyword string) {
	w.InfoGiven = lore.Append(w.InfoGiven, keyword)
}

// HasDisclosed reports whether a topic has already been disclosed.
func (w *World) HasDisclosed(topic string) bool {
	return lore.Contains(w.InfoGiven, topic)
}

// MarkVisited records a location visit, deduplicated.
func (w *World) MarkVisited(name string) {
	if name == "" {
		return
	}
	for _, v := range w.VisitedLocations {
		if v == name {
			return
		}
	}
	w.VisitedLocations = append(w.VisitedLocations, name)
}

// MarkMet records a character encounter, deduplicated.
func (w *World) MarkMet(name string) {
	if name == "" {
		return
	}
	for _, v := range w.MetCharacters {
		if v == name {
			return
		}
	}
	w.MetCharacters = append(w.MetCharacters, name)
}

// Default node graph keys.
const (
	NodeSetup     = "setup"
	NodeFirstClue = "first_clue"
	NodeTwist     = "twist"
	NodeCrisis    = "crisis"
	NodePreFinale = "pre_finale"
	NodeFinale    = "finale"
)

// DefaultStoryNodes is the fixed six-node story graph used by node mode.
func DefaultStoryNodes() map[string]StoryNode {
	return map[string]StoryNode{
		NodeSetup: {
			Summary: "The adventure opens; the hook pulls the player in.",
			Options: []NodeOption{
				{Text: "Follow the first lead", Next: NodeFirstClue},
				{Text: "Ask around before committing", Next: NodeFirstClue},
			},
		},
		NodeFirstClue: {
			Summary: "A first concrete clue about the main quest surfaces.",
			Options: []NodeOption{
				{Text: "Chase the clue directly", Next: NodeTwist},
				{Text: "Test the clue against someone you trust", Next: NodeTwist},
			},
		},
		NodeTwist: {
			Summary: "The clue was not what it seemed; the stakes shift.",
			Options: []NodeOption{
				{Text: "Confront the deception head-on", Next: NodeCrisis},
				{Text: "Retreat and regroup", Next: NodeCrisis},
			},
		},
		NodeCrisis: {
			Summary: "Everything comes to a head; the cost of failure is clear.",
			Options: []NodeOption{
				{Text: "Risk everything now", Next: NodePreFinale},
				{Text: "Sacrifice something to gain an edge", Next: NodePreFinale},
			},
		},
		NodePreFinale: {
			Summary: "The final confrontation is in sight.",
			Options: []NodeOption{
				{Text: "Walk into the finale", Next: NodeFinale},
			},
		},
		NodeFinale: {
			Summary: "The story resolves. No further branches.",
		},
	}
}
