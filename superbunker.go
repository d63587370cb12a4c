package main

const (
	SuperBunkerWidth     = 108
	SuperBunkerHalfWidth = 54
	SuperBunkerHeight    = 28
	SuperBunkerGarrison  = 5
	SuperBunkerEnergyMax = 50
	superBunkerFireEvery = 6
)

var superBunkerTargets = []EntityType{TypeInfantry, TypeHelicopter, TypeTank, TypeVan, TypeMissileLauncher}

// SuperBunker is a hardened pillbox. Its energy is the size of its garrison:
// friendly infantry walking in add to it, enemy infantry fight their way in
// and take it over once it is empty. Only tank fire can wreck it.
type SuperBunker struct {
	Entity
	Firing     bool
	frameCount int
}

// NewSuperBunker creates a garrisoned super bunker at x
func NewSuperBunker(faction Faction, x float64) *SuperBunker {
	sb := &SuperBunker{
		Entity: Entity{
			Box:           NewBox(x, groundY(SuperBunkerHeight), SuperBunkerWidth, SuperBunkerHeight),
			Type:          TypeSuperBunker,
			Faction:       faction,
			Energy:        SuperBunkerGarrison,
			EnergyMax:     SuperBunkerEnergyMax,
			BottomAligned: true,
			CanRespawn:    true,
			DyingFrames:   Frames(1200),
		},
	}
	sb.HalfWidth = SuperBunkerHalfWidth
	sb.MidPoint = NewBox(sb.X+sb.HalfWidth-BunkerDoorWidth/2, sb.Y, BunkerDoorWidth, sb.Height)
	return sb
}

// Animate handles the door and the guns
func (sb *SuperBunker) Animate(w *World) {
	if sb.Dead {
		return
	}
	sb.frameCount++
	sb.Firing = false

	w.CollisionPass(CollisionQuery{
		Source:       &sb.Entity,
		Targets:      superBunkerTargets,
		UseLookahead: true,
		OnHit:        func(t *Entity) { sb.nearbyHit(w, t) },
	})

	if sb.Firing && sb.frameCount%superBunkerFireEvery == 0 {
		y := sb.Y + sb.HalfHeight
		Spawn(w, NewGunfire(&sb.Entity, sb.X+sb.Width+1, y, 3, 0, 0, superBunkerTargets))
		Spawn(w, NewGunfire(&sb.Entity, sb.X-1, y, -3, 0, 0, superBunkerTargets))
	}
}

func (sb *SuperBunker) nearbyHit(w *World, t *Entity) {
	friendly := t.Faction == sb.Faction
	if !friendly && sb.Energy > 0 {
		sb.Firing = true
	}
	if t.Type != TypeInfantry || t.Role != RolePlain || !AtMidPoint(&sb.Entity, t) {
		return
	}
	if friendly {
		if sb.Energy >= sb.EnergyMax {
			return
		}
		sb.Energy++
		w.updateEnergy(&sb.Entity)
		w.Die(t, DieOptions{Silent: true})
		return
	}

	// an attacker trades itself for one defender
	w.Die(t, DieOptions{Silent: true})
	if sb.Energy > 1 {
		sb.Energy--
		w.updateEnergy(&sb.Entity)
		return
	}
	sb.Faction = t.Faction
	sb.Energy = 1
	w.updateEnergy(&sb.Entity)
	w.notify(Effect{Kind: EffectCapture, Subject: sb.Ref(), Other: t.Ref(), Faction: t.Faction, Note: "captured"})
	w.CheckProduction()
}

// OnDie leaves a wreck held by whoever brought it down
func (sb *SuperBunker) OnDie(w *World, opts DieOptions) {
	if a := opts.Attacker; a != nil && a.Faction != sb.Faction {
		sb.Faction = a.Faction
		w.notify(Effect{Kind: EffectNeutralize, Subject: sb.Ref(), Other: a.Ref(), Faction: a.Faction})
	}
	ShrapnelExplosion(w, &sb.Entity, 8+w.rndInt(8), 3, true)
	InertGunfireExplosion(w, &sb.Entity, 8)
	w.CheckProduction()
}
