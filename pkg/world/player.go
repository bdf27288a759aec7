package world

import (
	"encoding/json"
	"fmt"

	"github.com/jwebster45206/d20"
)

const (
	MaxHealth = 100

	attrSanity = "sanity"
	attrMana   = "mana"
)

// PlayerSpec is the serializable player state.
type PlayerSpec struct {
	Health     int            `json:"health"`
	Sanity     int            `json:"sanity,omitempty"`
	Mana       int            `json:"mana,omitempty"`
	Attributes map[string]int `json:"attributes,omitempty"`
}

// Player is the runtime player state. Health and attributes are tracked
// by a d20.Actor rebuilt from the spec on load; all mutation goes through
// ApplyHealthDelta so the [0,100] clamp always holds.
type Player struct {
	spec  PlayerSpec
	actor *d20.Actor
}

// NewPlayer returns a player at full health with default attributes.
func NewPlayer() *Player {
	p := &Player{
		spec: PlayerSpec{
			Health: MaxHealth,
			Sanity: MaxHealth,
			Mana:   50,
		},
	}
	// A fresh spec is always buildable.
	_ = p.rebuild()
	return p
}

func (p *Player) rebuild() error {
	attrs := map[string]int{
		attrSanity: p.spec.Sanity,
		attrMana:   p.spec.Mana,
	}
	for k, v := range p.spec.Attributes {
		attrs[k] = v
	}

	actor, err := d20.NewActor("player").
		WithHP(MaxHealth).
		WithAttributes(attrs).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build player actor: %w", err)
	}

	hp := Clamp(p.spec.Health, 0, MaxHealth)
	if hp != MaxHealth && hp > 0 {
		if err := actor.SetHP(hp); err != nil {
			return fmt.Errorf("failed to set player HP: %w", err)
		}
	}
	p.actor = actor
	p.spec.Health = hp
	return nil
}

// Health returns current health in [0,100]. The PlayerSpec is authoritative:
// the actor mirrors it for d20 mechanics but is floored at 1, so reading
// it back would misreport a downed player.
func (p *Player) Health() int {
	return p.spec.Health
}

// Sanity returns the player's sanity attribute.
func (p *Player) Sanity() int {
	if p.actor != nil {
		if v, ok := p.actor.Attribute(attrSanity); ok {
			return v
		}
	}
	return p.spec.Sanity
}

// Mana returns the player's mana attribute.
func (p *Player) Mana() int {
	if p.actor != nil {
		if v, ok := p.actor.Attribute(attrMana); ok {
			return v
		}
	}
	return p.spec.Mana
}

// ApplyHealthDelta adds delta to health and clamps into [0,100].
// It returns the new health value.
func (p *Player) ApplyHealthDelta(delta int) int {
	hp := Clamp(p.Health()+delta, 0, MaxHealth)
	p.spec.Health = hp
	if p.actor != nil {
		// SetHP(0) is rejected by some actor builds; track zero in the
		// spec and floor the actor at 1 so the runtime stays consistent.
		set := hp
		if set < 1 {
			set = 1
		}
		_ = p.actor.SetHP(set)
	}
	return hp
}

// MarshalJSON serializes the current runtime state as a PlayerSpec.
func (p *Player) MarshalJSON() ([]byte, error) {
	if p == nil {
		return []byte("null"), nil
	}
	out := PlayerSpec{
		Health:     p.spec.Health,
		Sanity:     p.Sanity(),
		Mana:       p.Mana(),
		Attributes: p.spec.Attributes,
	}
	return json.Marshal(out)
}

// UnmarshalJSON restores the spec and rebuilds the actor.
func (p *Player) UnmarshalJSON(data []byte) error {
	var spec PlayerSpec
	if err := json.Unmarshal(data, &spec); err != nil {
		return fmt.Errorf("failed to unmarshal player spec: %w", err)
	}
	p.spec = spec
	return p.rebuild()
}
