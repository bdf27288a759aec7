package world

import (
	"math/rand"
	"testing"

	"github.com/jwright-games/worldweaver/pkg/locale"
)

func TestBreathe_DriftStaysBounded(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	w := New("test", locale.English)

	for i := 0; i < 200; i++ {
		before := w.State
		w.Breathe(rng)

		checkDrift := func(name string, prev, cur int) {
			if cur < 0 || cur > 100 {
				t.Fatalf("%s out of range after Breathe: %d", name, cur)
			}
			// Clamping can only shrink a step, never grow it.
			if diff := cur - prev; diff < -BreathRange || diff > BreathRange {
				t.Fatalf("%s drifted by %d, want within %d", name, diff, BreathRange)
			}
		}
		checkDrift("tension", before.Tension, w.State.Tension)
		checkDrift("corruption", before.Corruption, w.State.Corruption)
		checkDrift("magic_density", before.MagicDensity, w.State.MagicDensity)
		checkDrift("radiation", before.Radiation, w.State.Radiation)
	}
}

func TestBreathe_DayPhaseCycles(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	w := New("test", locale.English)
	w.State.DayPhase = PhaseMorning

	w.Breathe(rng)
	if w.State.DayPhase != PhaseDusk {
		t.Errorf("after morning, phase = %s, want %s", w.State.DayPhase, PhaseDusk)
	}
	w.Breathe(rng)
	if w.State.DayPhase != PhaseNight {
		t.Errorf("after dusk, phase = %s, want %s", w.State.DayPhase, PhaseNight)
	}
	w.Breathe(rng)
	if w.State.DayPhase != PhaseMorning {
		t.Errorf("after night, phase = %s, want %s", w.State.DayPhase, PhaseMorning)
	}
}

func TestBreathe_WeatherStaysInVocabulary(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	w := New("test", locale.English)

	valid := make(map[string]bool)
	for _, tag := range WeatherVocabulary {
		valid[tag] = true
	}

	for i := 0; i < 100; i++ {
		w.Breathe(rng)
		if !valid[w.State.Weather] {
			t.Fatalf("weather %q not in vocabulary", w.State.Weather)
		}
	}
}
