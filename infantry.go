package main

const (
	ParachuteEnergy     = 2
	ParachuteWidth      = 10
	ParachuteHeight     = 11
	ParachuteFailChance = 0.1
	parachuteLandY      = WorldHeight - 13
	parachuteSplatY     = WorldHeight + 3
)

// infantryStructures are checked every frame for doors and repairs
var infantryStructures = []EntityType{TypeBunker, TypeTurret}

var infantryTargets = []EntityType{
	TypeTank, TypeVan, TypeMissileLauncher, TypeInfantry, TypeTurret, TypeHelicopter,
}

// Infantry marches toward the enemy. Plain infantry shoot and capture
// bunkers; engineers repair friendly structures and reclaim turrets.
type Infantry struct {
	groundUnit
}

// NewInfantry creates a soldier or engineer at x
func NewInfantry(faction Faction, x float64, role Role) *Infantry {
	inf := &Infantry{groundUnit: newGroundUnit(TypeInfantry, faction, x)}
	inf.Role = role
	return inf
}

func (inf *Infantry) Animate(w *World) {
	if inf.Dead {
		return
	}
	inf.frameCount++
	inf.stopped = false

	w.CollisionPass(CollisionQuery{
		Source:  &inf.Entity,
		Targets: infantryStructures,
		OnHit:   func(s *Entity) { inf.structureHit(w, s) },
	})
	if inf.Dead {
		return
	}

	if inf.Role == RolePlain {
		shooting := false
		w.CollisionPass(CollisionQuery{
			Source:       &inf.Entity,
			Targets:      infantryTargets,
			UseLookahead: true,
			Nearby:       true,
			OnHit:        func(*Entity) { shooting = true },
		})
		if shooting {
			inf.stopped = true
			inf.fireAt(w, infantryTargets)
		}
	}
	inf.march(w)
}

func (inf *Infantry) structureHit(w *World, s *Entity) {
	switch u := s.unit.(type) {
	case *Bunker:
		if inf.IsEngineer() && u.EngineerHit(w, &inf.Entity) {
			inf.stopped = true
			return
		}
		u.InfantryHit(w, &inf.Entity)
	case *Turret:
		if inf.IsEngineer() && u.EngineerHit(w, &inf.Entity) {
			inf.stopped = true
		}
	}
}

// ParachuteInfantry falls from a helicopter and becomes infantry on landing
type ParachuteInfantry struct {
	Entity
	ParachuteOpen bool
	opensAtY      float64
	windEvery     int
	frameCount    int
}

// NewParachuteInfantry drops a soldier at x, y. The parachute opens at a
// random height and sometimes not at all.
func NewParachuteInfantry(w *World, faction Faction, x, y float64, ignoreShrapnel bool) *ParachuteInfantry {
	opensAt := y + w.rnd(WorldHeight-10-y)
	if w.Rand.Float64() < ParachuteFailChance {
		opensAt += 999
	}
	return &ParachuteInfantry{
		Entity: Entity{
			Box:            NewBox(x, y, ParachuteWidth, ParachuteHeight),
			Type:           TypeParachuteInfantry,
			Faction:        faction,
			Energy:         ParachuteEnergy,
			EnergyMax:      ParachuteEnergy,
			VY:             2 + w.Rand.Float64() + w.Rand.Float64(),
			IgnoreShrapnel: ignoreShrapnel,
			DyingFrames:    1,
			TeardownFrames: 1,
		},
		opensAtY:  opensAt,
		windEvery: 32 + w.rndInt(32),
	}
}

func (p *ParachuteInfantry) Animate(w *World) {
	if p.Dead {
		return
	}
	p.X += p.VX
	p.Y += p.VY
	p.frameCount++

	if !p.ParachuteOpen {
		if p.Y >= p.opensAtY {
			p.ParachuteOpen = true
			p.VY = 0.3 + w.rnd(0.3)
		} else if p.Y >= parachuteSplatY {
			p.Y = parachuteSplatY
			w.Die(&p.Entity, DieOptions{})
		}
		return
	}

	if p.frameCount%p.windEvery == 0 {
		if w.Rand.Float64() > 0.5 {
			p.VX = float64(w.rndInt(3)-1) * 0.25
			p.windEvery = 64 + w.rndInt(64)
		} else {
			p.VX = 0
		}
	}

	if p.Y >= parachuteLandY {
		w.Die(&p.Entity, DieOptions{Silent: true})
		inf := NewInfantry(p.Faction, p.X, RolePlain)
		inf.Unassisted = false
		Spawn(w, inf)
	}
}

// OnDie sprays sparks on a hard landing
func (p *ParachuteInfantry) OnDie(w *World, opts DieOptions) {
	if !opts.Silent {
		InertGunfireExplosion(w, &p.Entity, 4)
	}
}
