package adventure

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwright-games/worldweaver/pkg/llm"
)

func fixedGen(out string, err error) llm.Generator {
	return llm.GeneratorFunc(func(ctx context.Context, system, prompt string, opts llm.Options) (string, error) {
		return out, err
	})
}

func TestClassifyAction(t *testing.T) {
	gen := fixedGen(`{"action_type": "combat", "target": "Warden Ila", "intent": "attack", "topic": "", "risk": "high"}`, nil)

	a := ClassifyAction(context.Background(), gen, "I draw my sword on the warden")
	require.NotNil(t, a)
	assert.Equal(t, ActionCombat, a.Type)
	assert.Equal(t, "Warden Ila", a.Target)
	assert.Equal(t, RiskHigh, a.Risk)
}

func TestClassifyAction_NormalizesEnums(t *testing.T) {
	gen := fixedGen(`{"action_type": " Combat ", "risk": "EXTREME"}`, nil)

	a := ClassifyAction(context.Background(), gen, "fight")
	require.NotNil(t, a)
	assert.Equal(t, ActionCombat, a.Type)
	// Unknown risk falls back to low.
	assert.Equal(t, RiskLow, a.Risk)
}

func TestClassifyAction_UnknownTypeFallsBackToSocial(t *testing.T) {
	gen := fixedGen(`{"action_type": "dance", "risk": "medium"}`, nil)

	a := ClassifyAction(context.Background(), gen, "I dance")
	require.NotNil(t, a)
	assert.Equal(t, ActionSocial, a.Type)
	assert.Equal(t, RiskMedium, a.Risk)
}

func TestClassifyAction_Failures(t *testing.T) {
	tests := []struct {
		name string
		gen  llm.Generator
	}{
		{"transport error", fixedGen("", errors.New("boom"))},
		{"no JSON in reply", fixedGen("sorry, I can't classify that", nil)},
		{"junk JSON", fixedGen(`{"action_type": [1,2,3]}`, nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, ClassifyAction(context.Background(), tt.gen, "input"))
		})
	}
}

func TestDefaultAction(t *testing.T) {
	a := DefaultAction()
	assert.Equal(t, ActionSocial, a.Type)
	assert.Equal(t, RiskLow, a.Risk)
	assert.Empty(t, a.Target)
}
