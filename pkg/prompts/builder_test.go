package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwright-games/worldweaver/pkg/locale"
	"github.com/jwright-games/worldweaver/pkg/world"
)

func builderWorld() *world.World {
	w := world.New("drowned-march", locale.English)
	w.Summary = "A fen kingdom sinking one finger-width a year."
	w.Characters = []world.Character{
		{
			Name: "Warden Ila", Role: "guard captain", Description: "Keeps the causeway.",
			Personality: &world.Personality{Traits: []string{"stern"}, SpeechStyle: "clipped orders"},
			Trust:       3, Fear: -1, Health: 100,
		},
	}
	return w
}

func TestBuilder_Build(t *testing.T) {
	w := builderWorld()
	w.Adventure.Chapter = 2
	w.Disclose("the black obelisk")

	system, prompt, err := New().
		WithWorld(w).
		WithPlayerInput("I ask the warden about the obelisk").
		WithAction(Action{Type: "social", Target: "Warden Ila", Intent: "ask", Topic: "the black obelisk", Risk: "low"}).
		WithDisclosure("deepening").
		WithRecentHistory("Player: hello\nDM: the fen answers\n\n").
		Build()
	require.NoError(t, err)

	assert.Equal(t, EventSystem, system)

	// World state and transcript are embedded.
	assert.Contains(t, prompt, `"drowned-march"`)
	assert.Contains(t, prompt, "Recent turns:")
	assert.Contains(t, prompt, "the fen answers")

	// Chapter, action, and disclosure rules all land.
	assert.Contains(t, prompt, "Chapter 2 rules:")
	assert.Contains(t, prompt, "Hard constraints for a social turn:")
	assert.Contains(t, prompt, "deepening")

	// Disclosed lore becomes a do-not-repeat constraint.
	assert.Contains(t, prompt, "Do NOT repeat")
	assert.Contains(t, prompt, "the black obelisk")

	// Roster carries personality and relationship stats.
	assert.Contains(t, prompt, "Warden Ila")
	assert.Contains(t, prompt, "trust=3 fear=-1")

	// The output schema is always last.
	assert.Contains(t, prompt, `"dm_text"`)
	assert.Contains(t, prompt, "health_change must be an integer")
	assert.Contains(t, prompt, "All narrative text must be written in English.")
}

func TestBuilder_RequiresWorld(t *testing.T) {
	_, _, err := New().WithPlayerInput("hi").Build()
	assert.Error(t, err)
}

func TestBuilder_ChapterRulesClamp(t *testing.T) {
	w := builderWorld()
	w.Adventure.Chapter = 99

	_, prompt, err := New().WithWorld(w).WithPlayerInput("x").Build()
	require.NoError(t, err)
	assert.Contains(t, prompt, "Chapter 5 rules:")
	assert.Contains(t, prompt, "endgame")
}

func TestBuilder_NodeBeatOnlyInNodeMode(t *testing.T) {
	w := builderWorld()

	_, prompt, err := New().WithWorld(w).WithPlayerInput("x").Build()
	require.NoError(t, err)
	assert.NotContains(t, prompt, "Current story beat")

	w.UseNodeGraph()
	_, prompt, err = New().WithWorld(w).WithPlayerInput("x").Build()
	require.NoError(t, err)
	assert.Contains(t, prompt, "Current story beat (setup)")
}

func TestBuilder_ChineseLanguageInstruction(t *testing.T) {
	w := world.New("t", locale.Chinese)

	_, prompt, err := New().WithWorld(w).WithPlayerInput("你好").Build()
	require.NoError(t, err)
	assert.True(t, strings.Contains(prompt, "中文"))
}
