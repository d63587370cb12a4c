package main

//go:generate go tool mockgen -destination=mock_effects_test.go -package=main . Effects

// EffectKind names an observable battle event
type EffectKind string

const (
	EffectHit        EffectKind = "hit"
	EffectEnergy     EffectKind = "energy"
	EffectDeath      EffectKind = "death"
	EffectRemoved    EffectKind = "removed"
	EffectRespawn    EffectKind = "respawn"
	EffectCapture    EffectKind = "capture"
	EffectRepair     EffectKind = "repair"
	EffectRecycle    EffectKind = "recycle"
	EffectRefund     EffectKind = "refund"
	EffectTheft      EffectKind = "theft"
	EffectIncome     EffectKind = "income"
	EffectStaffed    EffectKind = "staffed"
	EffectNeutralize EffectKind = "neutralize"
	EffectRicochet   EffectKind = "ricochet"
	EffectLaunch     EffectKind = "launch"
	EffectRetarget   EffectKind = "retarget"
	EffectExpire     EffectKind = "expire"
	EffectDetach     EffectKind = "detach"
	EffectProduction EffectKind = "production"
	EffectBattleOver EffectKind = "battle_over"
)

// EntityRef identifies an entity inside an effect payload
type EntityRef struct {
	ID      int        `msgpack:"i" json:"id"`
	Type    EntityType `msgpack:"t" json:"type"`
	Faction Faction    `msgpack:"f" json:"faction"`
}

// Effect is the context passed to the effect hook
type Effect struct {
	Kind    EffectKind `msgpack:"k" json:"kind"`
	Frame   uint64     `msgpack:"fr" json:"frame"`
	Subject EntityRef  `msgpack:"s" json:"subject"`
	Other   EntityRef  `msgpack:"o,omitempty" json:"other,omitempty"`
	Faction Faction    `msgpack:"f" json:"faction"`
	Amount  float64    `msgpack:"a,omitempty" json:"amount,omitempty"`
	Silent  bool       `msgpack:"q,omitempty" json:"silent,omitempty"`
	Note    string     `msgpack:"n,omitempty" json:"note,omitempty"`
}

// Effects receives hit, death and economy notifications. The simulation
// never depends on what an implementation does with them.
type Effects interface {
	Notify(fx Effect)
}

// EffectFanout forwards every effect to each sink in order
type EffectFanout []Effects

func (f EffectFanout) Notify(fx Effect) {
	for _, s := range f {
		s.Notify(fx)
	}
}

// noEffects discards everything
type noEffects struct{}

func (noEffects) Notify(Effect) {}

// EffectBuffer collects effects between flushes
type EffectBuffer struct {
	effects []Effect
}

func (b *EffectBuffer) Notify(fx Effect) {
	b.effects = append(b.effects, fx)
}

// Drain returns the buffered effects and resets the buffer
func (b *EffectBuffer) Drain() []Effect {
	out := b.effects
	b.effects = nil
	return out
}

// Len returns the number of buffered effects
func (b *EffectBuffer) Len() int { return len(b.effects) }
