package adventure

import (
	"math/rand"

	"github.com/jwright-games/worldweaver/pkg/world"
)

// Linear-mode progress increment range, inclusive.
const (
	ProgressStepMin = 5
	ProgressStepMax = 15
)

// ChapterFor derives the chapter from story progress. Pure step function;
// progress only moves forward, so the chapter does too.
func ChapterFor(progress int) int {
	switch {
	case progress < 10:
		return 0
	case progress < 30:
		return 1
	case progress < 60:
		return 2
	case progress < 80:
		return 3
	case progress < 100:
		return 4
	default:
		return 5
	}
}

// AdvanceProgress applies one turn of linear story progress: a uniform
// increment in [ProgressStepMin, ProgressStepMax], clamped at 100, with
// the chapter re-derived. No-op once the finale has triggered.
// Returns true when progress has just reached 100 with the finale latch
// still unset, i.e. the finale is due.
func AdvanceProgress(w *world.World, rng *rand.Rand) bool {
	adv := &w.Adventure
	if adv.FinalTriggered {
		return false
	}

	step := ProgressStepMin + rng.Intn(ProgressStepMax-ProgressStepMin+1)
	adv.StoryProgress = world.Clamp(adv.StoryProgress+step, 0, 100)
	adv.Chapter = ChapterFor(adv.StoryProgress)

	return adv.StoryProgress >= 100
}
