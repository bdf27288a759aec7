package adventure

import (
	"errors"
	"fmt"

	"github.com/jwright-games/worldweaver/pkg/world"
)

// NodeFreeTurns is how many free-narrative turns each story node plays
// before its branching options are offered.
const NodeFreeTurns = 2

// ErrInvalidChoice is returned when the player is at a branch and their
// input matches none of the current node's options. The source material
// silently stalled here; rejecting explicitly lets the caller re-prompt.
var ErrInvalidChoice = errors.New("input does not match any branch option")

// CurrentNode returns the active story node.
func CurrentNode(w *world.World) (world.StoryNode, error) {
	node, ok := w.StoryNodes[w.Adventure.CurrentNode]
	if !ok {
		return world.StoryNode{}, fmt.Errorf("story node %q not found", w.Adventure.CurrentNode)
	}
	return node, nil
}

// NodeOptionTexts returns the current node's branch option labels verbatim.
func NodeOptionTexts(w *world.World) []string {
	node, err := CurrentNode(w)
	if err != nil {
		return nil
	}
	texts := make([]string, 0, len(node.Options))
	for _, opt := range node.Options {
		texts = append(texts, opt.Text)
	}
	return texts
}

// BranchDue reports whether the node's free window is exhausted and the
// next turn must offer the branching options.
func BranchDue(w *world.World) bool {
	return !w.Adventure.AwaitingChoice && w.Adventure.NodeRoundCount >= NodeFreeTurns
}

// JumpNode resolves a player's branch choice. The input must exactly match
// one option's text; on match the current node transitions to that option's
// destination and the per-node counter resets. A non-matching input returns
// ErrInvalidChoice and leaves the state untouched.
func JumpNode(w *world.World, input string) error {
	node, err := CurrentNode(w)
	if err != nil {
		return err
	}
	for _, opt := range node.Options {
		if opt.Text == input {
			if _, ok := w.StoryNodes[opt.Next]; !ok {
				return fmt.Errorf("story node %q has no destination %q", w.Adventure.CurrentNode, opt.Next)
			}
			w.Adventure.CurrentNode = opt.Next
			w.Adventure.NodeRoundCount = 0
			w.Adventure.AwaitingChoice = false
			return nil
		}
	}
	return ErrInvalidChoice
}

// AtFinaleNode reports whether the terminal story node has been reached.
func AtFinaleNode(w *world.World) bool {
	if w.Adventure.Mode != world.ModeNodes {
		return false
	}
	node, err := CurrentNode(w)
	if err != nil {
		return false
	}
	return len(node.Options) == 0
}
