package world

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwright-games/worldweaver/pkg/llm"
	"github.com/jwright-games/worldweaver/pkg/locale"
)

// scriptedGen returns queued responses in order.
func scriptedGen(responses ...string) llm.Generator {
	i := 0
	return llm.GeneratorFunc(func(ctx context.Context, system, prompt string, opts llm.Options) (string, error) {
		if i >= len(responses) {
			return "", errors.New("no more scripted responses")
		}
		out := responses[i]
		i++
		return out, nil
	})
}

func TestGenerate_ParsesWorldJSON(t *testing.T) {
	worldReply := `Here you go:
{
  "title": "The Drowned March",
  "summary": "A fen kingdom sinking one finger-width a year.",
  "initial_hook": "The bell of the sunken chapel rings at dusk.",
  "locations": [
    {"name": "Saltmire", "description": "A town on stilts."},
    {"name": "", "description": "nameless, dropped"}
  ],
  "characters": [
    {"name": "Warden Ila", "role": "guard captain", "short_desc": "Keeps the causeway."}
  ],
  "logic": {"tech_level": "medieval", "magic_allowed": true, "tone": "somber"}
}`

	gen := scriptedGen(worldReply, "Silence the chapel bell before the march drowns.")

	w, err := Generate(context.Background(), gen, "a sinking fen kingdom", "drowned-march", locale.English)
	require.NoError(t, err)

	assert.Equal(t, "drowned-march", w.Name)
	assert.Equal(t, "The Drowned March", w.Title)
	assert.Equal(t, "The bell of the sunken chapel rings at dusk.", w.Hook)
	assert.Equal(t, "Silence the chapel bell before the march drowns.", w.MainQuest)

	require.Len(t, w.Locations, 1)
	assert.Equal(t, "Saltmire", w.Locations[0].Name)

	require.Len(t, w.Characters, 1)
	assert.Equal(t, "Warden Ila", w.Characters[0].Name)
	assert.Equal(t, 100, w.Characters[0].Health)

	assert.True(t, w.Logic.MagicAllowed)
	assert.Equal(t, "somber", w.Logic.Tone)
}

func TestGenerate_RawTextFallback(t *testing.T) {
	gen := scriptedGen(
		"A windswept archipelago of glass towers, no JSON here.",
		"Find the tower that still hums.",
	)

	w, err := Generate(context.Background(), gen, "glass towers", "glasstowers", locale.English)
	require.NoError(t, err)

	// Unparseable replies become the summary; creation never hard-fails.
	assert.Equal(t, "glasstowers", w.Title)
	assert.Equal(t, "A windswept archipelago of glass towers, no JSON here.", w.Summary)
	assert.Equal(t, "Find the tower that still hums.", w.MainQuest)
}

func TestGenerate_GeneratorError(t *testing.T) {
	gen := llm.GeneratorFunc(func(ctx context.Context, system, prompt string, opts llm.Options) (string, error) {
		return "", errors.New("upstream down")
	})

	_, err := Generate(context.Background(), gen, "idea", "name", locale.English)
	assert.Error(t, err)
}

func TestDerivePersonalities_FromGenerator(t *testing.T) {
	w := New("test", locale.English)
	w.Characters = []Character{
		{Name: "Warden Ila", Role: "guard captain"},
		{Name: "Moss", Role: "merchant"},
	}

	gen := scriptedGen(`{
  "Warden Ila": {"traits": ["stern", "loyal"], "speech_style": "clipped orders"}
}`)

	DerivePersonalities(context.Background(), gen, w)

	require.NotNil(t, w.Characters[0].Personality)
	assert.Equal(t, []string{"stern", "loyal"}, w.Characters[0].Personality.Traits)

	// Missing from the reply: heuristic fallback fills it in.
	require.NotNil(t, w.Characters[1].Personality)
	assert.NotEmpty(t, w.Characters[1].Personality.Traits)
}

func TestDerivePersonalities_KeepsExisting(t *testing.T) {
	w := New("test", locale.English)
	existing := &Personality{Traits: []string{"cryptic"}, SpeechStyle: "riddles"}
	w.Characters = []Character{{Name: "Oracle", Role: "oracle", Personality: existing}}

	gen := llm.GeneratorFunc(func(ctx context.Context, system, prompt string, opts llm.Options) (string, error) {
		t.Fatal("generator should not be called when all personalities exist")
		return "", nil
	})

	DerivePersonalities(context.Background(), gen, w)
	assert.Same(t, existing, w.Characters[0].Personality)
}
