package adventure

import (
	"errors"
	"testing"

	"github.com/jwright-games/worldweaver/pkg/locale"
	"github.com/jwright-games/worldweaver/pkg/world"
)

func nodeWorld() *world.World {
	w := world.New("t", locale.English)
	w.UseNodeGraph()
	return w
}

func TestDefaultStoryNodes_GraphIsClosed(t *testing.T) {
	nodes := world.DefaultStoryNodes()

	if _, ok := nodes[world.NodeSetup]; !ok {
		t.Fatal("graph has no setup node")
	}

	terminal := 0
	for key, node := range nodes {
		if len(node.Options) == 0 {
			terminal++
			continue
		}
		for _, opt := range node.Options {
			if _, ok := nodes[opt.Next]; !ok {
				t.Errorf("node %q option %q points to missing node %q", key, opt.Text, opt.Next)
			}
		}
	}
	if terminal != 1 {
		t.Errorf("graph has %d terminal nodes, want exactly 1", terminal)
	}
}

func TestBranchDue(t *testing.T) {
	w := nodeWorld()

	if BranchDue(w) {
		t.Error("fresh node should not branch yet")
	}

	w.Adventure.NodeRoundCount = NodeFreeTurns
	if !BranchDue(w) {
		t.Error("branch due after free turns are exhausted")
	}

	w.Adventure.AwaitingChoice = true
	if BranchDue(w) {
		t.Error("branch not due again while already awaiting a choice")
	}
}

func TestJumpNode(t *testing.T) {
	w := nodeWorld()
	w.Adventure.NodeRoundCount = NodeFreeTurns
	w.Adventure.AwaitingChoice = true

	opts := NodeOptionTexts(w)
	if len(opts) == 0 {
		t.Fatal("setup node offers no options")
	}

	if err := JumpNode(w, opts[0]); err != nil {
		t.Fatalf("JumpNode(%q) failed: %v", opts[0], err)
	}
	if w.Adventure.CurrentNode != world.NodeFirstClue {
		t.Errorf("current node = %q, want %q", w.Adventure.CurrentNode, world.NodeFirstClue)
	}
	if w.Adventure.NodeRoundCount != 0 {
		t.Errorf("node round count = %d, want 0 after jump", w.Adventure.NodeRoundCount)
	}
	if w.Adventure.AwaitingChoice {
		t.Error("awaiting-choice flag should clear after a jump")
	}
}

func TestJumpNode_InvalidChoice(t *testing.T) {
	w := nodeWorld()
	w.Adventure.AwaitingChoice = true
	before := w.Adventure

	err := JumpNode(w, "do something else entirely")
	if !errors.Is(err, ErrInvalidChoice) {
		t.Fatalf("err = %v, want ErrInvalidChoice", err)
	}
	if w.Adventure != before {
		t.Error("invalid choice must leave adventure state untouched")
	}
}

func TestAtFinaleNode(t *testing.T) {
	w := nodeWorld()
	if AtFinaleNode(w) {
		t.Error("setup node is not terminal")
	}

	w.Adventure.CurrentNode = world.NodeFinale
	if !AtFinaleNode(w) {
		t.Error("finale node should be terminal")
	}

	// Linear mode never reports a finale node.
	w.Adventure.Mode = world.ModeLinear
	if AtFinaleNode(w) {
		t.Error("linear mode has no finale node")
	}
}
