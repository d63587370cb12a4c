package main

import "math"

const (
	GroundGunSpeed       = 8.0
	MissileLauncherRange = 768.0
)

// convoyTypes are the vehicles that queue behind each other
var convoyTypes = []EntityType{TypeTank, TypeVan, TypeMissileLauncher}

var tankTargets = []EntityType{
	TypeTank, TypeVan, TypeMissileLauncher, TypeInfantry, TypeTurret,
	TypeHelicopter, TypeEndBunker, TypeSuperBunker,
}

var launcherTargets = []EntityType{TypeHelicopter}

// groundUnit is the marching state shared by convoy vehicles and infantry
type groundUnit struct {
	Entity
	profile    UnitProfile
	stopped    bool
	frameCount int
}

func newGroundUnit(t EntityType, faction Faction, x float64) groundUnit {
	p := ProfileOf(t)
	dir := 1.0
	if faction == FactionEnemy {
		dir = -1
	}
	return groundUnit{
		Entity: Entity{
			Box:            NewBox(x, groundY(p.Height), p.Width, p.Height),
			Type:           t,
			Faction:        faction,
			Energy:         p.Energy,
			EnergyMax:      p.Energy,
			VX:             dir * p.Speed,
			XLookAhead:     p.Lookahead,
			BottomAligned:  true,
			Rotated:        faction == FactionEnemy,
			Unassisted:     true,
			DyingFrames:    Frames(p.DyingMs),
			TeardownFrames: Frames(p.TeardownMs),
		},
		profile: p,
	}
}

// ahead reports whether other is in front of the unit's direction of travel
func (g *groundUnit) ahead(other *Entity) bool {
	if g.IsEnemy() {
		return other.X < g.X
	}
	return other.X > g.X
}

// blocked reports whether a friendly vehicle is right in front
func (g *groundUnit) blocked(w *World) bool {
	blocked := false
	w.CollisionPass(CollisionQuery{
		Source:       &g.Entity,
		Targets:      convoyTypes,
		FriendlyOnly: true,
		UseLookahead: true,
		OnHit: func(c *Entity) {
			if !c.Dead && g.ahead(c) {
				blocked = true
			}
		},
	})
	return blocked
}

// march moves the unit unless stopped and checks the far boundary
func (g *groundUnit) march(w *World) {
	if g.stopped || g.State == StateRecycling {
		return
	}
	g.X += g.VX
	w.RecycleTest(&g.Entity)
}

func (g *groundUnit) fireAt(w *World, targets []EntityType) {
	if g.profile.FireEvery == 0 || g.frameCount%g.profile.FireEvery != 0 {
		return
	}
	dir := math.Copysign(1, g.VX)
	x := g.X + g.Width + 1
	if dir < 0 {
		x = g.X - 1
	}
	Spawn(w, NewGunfire(&g.Entity, x, g.Y+g.HalfHeight/2, dir*GroundGunSpeed, 0, g.profile.GunDamage, targets))
}

func (g *groundUnit) explode(w *World, opts DieOptions) {
	if opts.Silent {
		return
	}
	ShrapnelExplosion(w, &g.Entity, 4+w.rndInt(4), 3+w.rnd(2), true)
	InertGunfireExplosion(w, &g.Entity, 6)
}

// Tank stops to fire at anything hostile in front of it
type Tank struct {
	groundUnit
}

// NewTank creates a tank at x heading for the other side
func NewTank(faction Faction, x float64) *Tank {
	return &Tank{groundUnit: newGroundUnit(TypeTank, faction, x)}
}

func (t *Tank) Animate(w *World) {
	if t.Dead {
		return
	}
	t.frameCount++
	t.stopped = false

	w.CollisionPass(CollisionQuery{
		Source:       &t.Entity,
		Targets:      tankTargets,
		UseLookahead: true,
		Nearby:       true,
		OnHit:        func(*Entity) { t.stopped = true },
	})

	if t.stopped {
		t.fireAt(w, tankTargets)
	} else {
		t.stopped = t.blocked(w)
	}
	t.march(w)
}

func (t *Tank) OnDie(w *World, opts DieOptions) { t.explode(w, opts) }

// Van is an unarmed supply truck. A van that reaches the enemy base wins
// the battle.
type Van struct {
	groundUnit
}

// NewVan creates a van at x heading for the other side
func NewVan(faction Faction, x float64) *Van {
	return &Van{groundUnit: newGroundUnit(TypeVan, faction, x)}
}

func (v *Van) Animate(w *World) {
	if v.Dead {
		return
	}
	v.frameCount++
	w.CollisionPass(CollisionQuery{
		Source:  &v.Entity,
		Targets: []EntityType{TypeEndBunker},
		OnHit:   func(*Entity) { w.EndBattle(v.Faction) },
	})
	v.stopped = v.blocked(w)
	v.march(w)
}

func (v *Van) OnDie(w *World, opts DieOptions) { v.explode(w, opts) }

// MissileLauncher halts and launches a smart missile when an enemy
// helicopter comes within range
type MissileLauncher struct {
	groundUnit
	lastLaunch int
}

// NewMissileLauncher creates a launcher at x heading for the other side
func NewMissileLauncher(faction Faction, x float64) *MissileLauncher {
	return &MissileLauncher{groundUnit: newGroundUnit(TypeMissileLauncher, faction, x)}
}

func (ml *MissileLauncher) Animate(w *World) {
	if ml.Dead {
		return
	}
	ml.frameCount++
	ml.stopped = false

	target := w.SelectNearest(&ml.Entity, launcherTargets, true)
	if target != nil && math.Abs(target.CenterX()-ml.CenterX()) < MissileLauncherRange {
		ml.stopped = true
		if ml.lastLaunch == 0 || ml.frameCount-ml.lastLaunch >= ml.profile.FireEvery {
			ml.launch(w, target)
		}
	}
	if !ml.stopped {
		ml.stopped = ml.blocked(w)
	}
	ml.march(w)
}

func (ml *MissileLauncher) launch(w *World, target *Entity) {
	ml.lastLaunch = ml.frameCount
	m := Spawn(w, NewSmartMissile(w, &ml.Entity, target))
	w.notify(Effect{Kind: EffectLaunch, Subject: m.Ref(), Other: target.Ref(), Faction: ml.Faction})
}

func (ml *MissileLauncher) OnDie(w *World, opts DieOptions) { ml.explode(w, opts) }
