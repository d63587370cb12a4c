package main

import "testing"

// stubUnit is a registered entity with no behavior of its own
type stubUnit struct {
	Entity
}

func (s *stubUnit) Animate(*World) {}

func newStub(t EntityType, f Faction, x, y, w, h float64) *stubUnit {
	return &stubUnit{Entity: Entity{
		Box:       NewBox(x, y, w, h),
		Type:      t,
		Faction:   f,
		Energy:    5,
		EnergyMax: 5,
	}}
}

// effectLog records every effect in order
type effectLog struct {
	fx []Effect
}

func (l *effectLog) Notify(fx Effect) { l.fx = append(l.fx, fx) }

func (l *effectLog) count(k EffectKind) int {
	n := 0
	for _, fx := range l.fx {
		if fx.Kind == k {
			n++
		}
	}
	return n
}

func (l *effectLog) last(k EffectKind) (Effect, bool) {
	for i := len(l.fx) - 1; i >= 0; i-- {
		if l.fx[i].Kind == k {
			return l.fx[i], true
		}
	}
	return Effect{}, false
}

// newTestWorld returns a world without convoy production
func newTestWorld(t *testing.T) (*World, *effectLog) {
	t.Helper()
	cfg := DefaultBattleConfig()
	cfg.ConvoyEvery = 0
	log := &effectLog{}
	return NewWorld(cfg, log), log
}

// advance fires timers for n frames without animating anything
func advance(w *World, n int) {
	for i := 0; i < n; i++ {
		w.Scheduler.Advance()
		w.Registry.Sweep()
	}
}
