package main

import "math"

const (
	TurretRange     = 384.0
	TurretGunSpeed  = 8.0
	TurretRepairPer = 0.05
)

var turretTargets = []EntityType{TypeHelicopter, TypeSmartMissile}

// Turret is a fixed anti-aircraft gun. Dead turrets stay on the field until
// an engineer claims them.
type Turret struct {
	Entity
	profile    UnitProfile
	frameCount int
}

// NewTurret creates a turret on the ground at x
func NewTurret(faction Faction, x float64) *Turret {
	p := ProfileOf(TypeTurret)
	return &Turret{
		Entity: Entity{
			Box:           NewBox(x, groundY(p.Height), p.Width, p.Height),
			Type:          TypeTurret,
			Faction:       faction,
			Energy:        p.Energy,
			EnergyMax:     p.Energy,
			BottomAligned: true,
			CanRespawn:    true,
			DyingFrames:   Frames(p.DyingMs),
		},
		profile: p,
	}
}

func (t *Turret) Animate(w *World) {
	if t.Dead {
		return
	}
	t.frameCount++
	if t.frameCount%t.profile.FireEvery != 0 {
		return
	}
	target := w.SelectNearest(&t.Entity, turretTargets, false)
	if target == nil {
		return
	}
	dx := target.CenterX() - t.CenterX()
	dy := (target.Y + target.HalfHeight) - t.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 || dist > TurretRange {
		return
	}
	vx := dx / dist * TurretGunSpeed
	vy := dy / dist * TurretGunSpeed
	Spawn(w, NewGunfire(&t.Entity, t.CenterX(), t.Y, vx, vy, t.profile.GunDamage, turretTargets))
}

// EngineerHit lets an engineer repair a damaged friendly turret or claim a
// dead one for its side. It reports whether the engineer should stay put.
func (t *Turret) EngineerHit(w *World, eng *Entity) bool {
	if !eng.IsEngineer() {
		return false
	}
	if t.Dead {
		if t.State != StateDead {
			return false
		}
		t.Faction = eng.Faction
		if !w.Respawn(&t.Entity) {
			return false
		}
		w.notify(Effect{Kind: EffectCapture, Subject: t.Ref(), Other: eng.Ref(), Faction: eng.Faction, Note: "reclaimed"})
		return true
	}
	if t.Faction != eng.Faction {
		return false
	}
	return w.Repair(&t.Entity, TurretRepairPer)
}

func (t *Turret) OnDie(w *World, opts DieOptions) {
	if opts.Silent {
		return
	}
	ShrapnelExplosion(w, &t.Entity, 4+w.rndInt(4), 3, true)
	InertGunfireExplosion(w, &t.Entity, 6)
}
