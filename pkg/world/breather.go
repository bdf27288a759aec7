package world

import "math/rand"

// Ambient drift bounds. Each breathing variable moves by a uniform
// integer in [-BreathRange, +BreathRange] per turn, then clamps to [0,100].
const BreathRange = 3

// WeatherChangeChance is the per-turn probability of resampling weather.
const WeatherChangeChance = 0.2

// WeatherVocabulary is the fixed set of weather tags.
var WeatherVocabulary = []string{"clear", "overcast", "rain", "storm", "fog", "snow"}

// Breathe applies one turn of stochastic scenery drift: ambient variables
// wander a little, the day phase advances, and the weather occasionally
// turns. Called once at the start of every round, before the player's
// action is interpreted.
func (w *World) Breathe(rng *rand.Rand) {
	drift := func(v int) int {
		return Clamp(v+rng.Intn(2*BreathRange+1)-BreathRange, 0, 100)
	}

	w.State.Tension = drift(w.State.Tension)
	w.State.Corruption = drift(w.State.Corruption)
	w.State.MagicDensity = drift(w.State.MagicDensity)
	w.State.Radiation = drift(w.State.Radiation)

	w.State.DayPhase = w.State.DayPhase.Next()

	if rng.Float64() < WeatherChangeChance {
		w.State.Weather = WeatherVocabulary[rng.Intn(len(WeatherVocabulary))]
	}
}
