package export

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwright-games/worldweaver/pkg/adventure"
	"github.com/jwright-games/worldweaver/pkg/llm"
	"github.com/jwright-games/worldweaver/pkg/locale"
	"github.com/jwright-games/worldweaver/pkg/world"
)

type stubGen struct {
	reply string
	err   error
}

func (g stubGen) Generate(ctx context.Context, system, prompt string, opts llm.Options) (string, error) {
	return g.reply, g.err
}

func exportSession() *adventure.Session {
	w := world.New("fen", locale.English)
	w.Title = "The Drowned March"
	w.Summary = "A sunken borderland."
	w.MainQuest = "Silence the bell."
	w.Characters = []world.Character{
		{Name: "Maru", Role: "ferryman", Description: "Knows every channel."},
	}
	return adventure.NewSession(w)
}

func TestPDF_FullSession(t *testing.T) {
	sess := exportSession()
	sess.History = []adventure.Turn{
		{Player: locale.StartSentinel, DM: "The bell rings at dusk."},
		{Player: "I follow the bell", DM: "The mist parts."},
	}

	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, sess))
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF"))
}

func TestPDF_EmptyHistory(t *testing.T) {
	// World pages render even before the first turn.
	var buf bytes.Buffer
	require.NoError(t, PDF(&buf, exportSession()))
	assert.True(t, strings.HasPrefix(buf.String(), "%PDF"))
}

func TestPDF_NoWorld(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, PDF(&buf, nil))
	assert.Error(t, PDF(&buf, &adventure.Session{}))
}

func TestSummarize(t *testing.T) {
	sess := exportSession()
	sess.History = []adventure.Turn{
		{Player: "I follow the bell", DM: "The mist parts."},
	}

	out, err := Summarize(context.Background(), stubGen{reply: " A chronicle. "}, sess)
	require.NoError(t, err)
	assert.Equal(t, "A chronicle.", out)
}

func TestSummarize_EmptyHistory(t *testing.T) {
	_, err := Summarize(context.Background(), stubGen{reply: "x"}, exportSession())
	assert.Error(t, err)
}

func TestSummarize_EmptyReply(t *testing.T) {
	sess := exportSession()
	sess.History = []adventure.Turn{{Player: "a", DM: "b"}}

	_, err := Summarize(context.Background(), stubGen{reply: "   "}, sess)
	assert.Error(t, err)
}
