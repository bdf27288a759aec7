package adventure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwright-games/worldweaver/pkg/locale"
	"github.com/jwright-games/worldweaver/pkg/world"
)

func TestParseEvent_HealthCoercion(t *testing.T) {
	tests := []struct {
		name string
		json string
		want int
	}{
		{"plain number", `{"dm_text": "x", "options": ["a"], "health_change": -15}`, -15},
		{"negative string", `{"dm_text": "x", "options": ["a"], "health_change": "-15"}`, -15},
		{"plus-prefixed string", `{"dm_text": "x", "options": ["a"], "health_change": "+7"}`, 7},
		{"junk string", `{"dm_text": "x", "options": ["a"], "health_change": "abc"}`, 0},
		{"missing field", `{"dm_text": "x", "options": ["a"]}`, 0},
		{"float rounds", `{"dm_text": "x", "options": ["a"], "health_change": 2.6}`, 3},
		{"padded string", `{"dm_text": "x", "options": ["a"], "health_change": " +12 "}`, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := ParseEvent(tt.json)
			require.NotNil(t, ev)
			assert.Equal(t, tt.want, ev.HealthChange)
		})
	}
}

func TestParseEvent_ToleratesBadFields(t *testing.T) {
	// options is the wrong type; dm_text and health_change still land.
	ev := ParseEvent(`{"dm_text": "scene", "options": "not a list", "health_change": 3}`)
	require.NotNil(t, ev)
	assert.Equal(t, "scene", ev.DMText)
	assert.Equal(t, 3, ev.HealthChange)
	assert.Empty(t, ev.Options)
}

func TestParseEvent_NoJSON(t *testing.T) {
	assert.Nil(t, ParseEvent("the narrator rambles without structure"))
}

func TestApplyEvent_HealthClamp(t *testing.T) {
	w := world.New("t", locale.English)

	ApplyEvent(w, &Event{HealthChange: -120})
	assert.Equal(t, 0, w.Player.Health())

	ApplyEvent(w, &Event{HealthChange: 45})
	assert.Equal(t, 45, w.Player.Health())

	ApplyEvent(w, &Event{HealthChange: 200})
	assert.Equal(t, 100, w.Player.Health())
}

func TestApplyEvent_WorldStateMerge(t *testing.T) {
	w := world.New("t", locale.English)
	w.State.Tension = 50
	w.State.Radiation = 0

	ApplyEvent(w, &Event{
		WorldStateChange: map[string]any{
			"tension":   float64(10),
			"radiation": "-5", // clamps at 0
			"weather":   "storm",
			"unknown":   float64(99), // ignored
			"corruption": map[string]any{
				"not": "a number", // ignored
			},
		},
	})

	assert.Equal(t, 60, w.State.Tension)
	assert.Equal(t, 0, w.State.Radiation)
	assert.Equal(t, "storm", w.State.Weather)
	assert.Equal(t, 20, w.State.Corruption)
}

func TestValidateEvent(t *testing.T) {
	assert.False(t, ValidateEvent(nil))
	assert.False(t, ValidateEvent(&Event{DMText: "  ", Options: []string{"a"}}))
	assert.False(t, ValidateEvent(&Event{DMText: "x", Options: nil}))
	assert.False(t, ValidateEvent(&Event{DMText: "x", Options: []string{"a", " "}}))
	assert.True(t, ValidateEvent(&Event{DMText: "x", Options: []string{"a"}}))
}

func TestFallbackEvent_Bilingual(t *testing.T) {
	en := FallbackEvent(locale.English)
	assert.True(t, en.Fallback)
	assert.Equal(t, locale.FallbackEventText(locale.English), en.DMText)
	assert.Len(t, en.Options, 5)

	zh := FallbackEvent(locale.Chinese)
	assert.Contains(t, zh.Options, "环顾四周")
	assert.Zero(t, zh.HealthChange)
}
