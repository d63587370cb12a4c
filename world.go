package main

import "math/rand"

const (
	FPS         = 30
	WorldWidth  = 8192.0
	WorldHeight = 380.0
)

// Frames converts milliseconds of game time to a frame count (minimum one)
func Frames(ms int) int {
	n := ms * FPS / 1000
	if n < 1 {
		return 1
	}
	return n
}

// animationOrder is the fixed per-frame update order
var animationOrder = []EntityType{
	TypeEndBunker,
	TypeBunker,
	TypeSuperBunker,
	TypeBalloon,
	TypeChain,
	TypeTurret,
	TypeHelicopter,
	TypeTank,
	TypeVan,
	TypeMissileLauncher,
	TypeInfantry,
	TypeParachuteInfantry,
	TypeSmartMissile,
	TypeGunfire,
	TypeShrapnel,
}

// World is one battlefield: entities, timers, funds and the effect hook.
// It is not safe for concurrent use; Game serializes access.
type World struct {
	Registry  *Registry
	Scheduler *Scheduler
	Ledger    Ledger
	Effects   Effects
	Rand      *rand.Rand
	Config    BattleConfig

	battleOver       bool
	winner           Faction
	productionHalted bool
}

// NewWorld creates an empty battlefield
func NewWorld(cfg BattleConfig, fx Effects) *World {
	if fx == nil {
		fx = noEffects{}
	}
	return &World{
		Registry:  NewRegistry(),
		Scheduler: NewScheduler(),
		Ledger:    NewTreasury(cfg.StartingFunds, cfg.StartingFunds),
		Effects:   fx,
		Rand:      rand.New(rand.NewSource(cfg.Seed)),
		Config:    cfg,
	}
}

// Spawn registers a unit in the world and gives it a radar marker
func Spawn[T Unit](w *World, u T) T {
	e := w.Registry.Add(u)
	if e.Radar == nil && e.Type != TypeShrapnel && e.Type != TypeGunfire && e.Type != TypeChain {
		e.Radar = &RadarMarker{}
	}
	return u
}

// Frame returns the current frame number
func (w *World) Frame() uint64 { return w.Scheduler.Frame() }

// Step advances the world by one frame: every entity animates in type
// order, convoys are produced, then timers fire, then removed entities are
// swept.
func (w *World) Step() {
	for _, t := range animationOrder {
		for _, e := range w.Registry.Collection(t) {
			if e.State == StateRemoved {
				continue
			}
			e.unit.Animate(w)
		}
	}
	w.produce()
	w.Scheduler.Advance()
	w.Registry.Sweep()
}

// CollisionPass runs a collision query unless the battle is over
func (w *World) CollisionPass(q CollisionQuery) bool {
	if w.battleOver {
		return false
	}
	return w.Registry.CollisionPass(q)
}

// SelectNearest picks a target for source, see Registry.SelectNearest
func (w *World) SelectNearest(source *Entity, types []EntityType, useInFront bool) *Entity {
	return w.Registry.SelectNearest(source, types, useInFront)
}

// EndBattle suspends all collision passes
func (w *World) EndBattle(winner Faction) {
	if w.battleOver {
		return
	}
	w.battleOver = true
	w.winner = winner
	w.notify(Effect{Kind: EffectBattleOver, Faction: winner})
}

// BattleOver reports whether the battle has ended
func (w *World) BattleOver() bool { return w.battleOver }

// Winner returns the winning side once the battle is over
func (w *World) Winner() (Faction, bool) { return w.winner, w.battleOver }

// ProductionHalted reports whether enemy convoy production is stopped
func (w *World) ProductionHalted() bool { return w.productionHalted }

// CheckProduction halts enemy production once the friendly side holds every
// bunker and resumes it when one is lost. Dead bunkers count as held.
func (w *World) CheckProduction() {
	if w.Config.Difficulty == DifficultyExtreme {
		return
	}
	owned, total := 0, 0
	for _, t := range []EntityType{TypeBunker, TypeSuperBunker} {
		for _, e := range w.Registry.Collection(t) {
			total++
			if e.Dead || (e.Faction == FactionFriendly && !e.Hostile) {
				owned++
			}
		}
	}
	all := total > 0 && owned >= total

	switch {
	case !w.productionHalted && all:
		w.productionHalted = true
		w.notify(Effect{Kind: EffectProduction, Faction: FactionEnemy, Note: "halted"})
	case w.productionHalted && !all:
		w.productionHalted = false
		w.notify(Effect{Kind: EffectProduction, Faction: FactionEnemy, Note: "resumed"})
	}
}

func (w *World) notify(fx Effect) {
	fx.Frame = w.Scheduler.Frame()
	w.Effects.Notify(fx)
}

// rnd returns a random float in [0, n)
func (w *World) rnd(n float64) float64 {
	return w.Rand.Float64() * n
}

// rndInt returns a random int in [0, n)
func (w *World) rndInt(n int) int {
	if n <= 0 {
		return 0
	}
	return w.Rand.Intn(n)
}

// plusMinus returns -1 or 1
func (w *World) plusMinus() float64 {
	if w.Rand.Intn(2) == 0 {
		return -1
	}
	return 1
}
