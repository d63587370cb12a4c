package main

const (
	GunfireLifeMs   = 1500
	GunfireWidth    = 2.0
	GunfireHeight   = 1.0
	GunfireDamage   = 1.0
	InertGunfireMs  = 800
	ricochetSpread  = 0.5
	gunfireGroundY  = WorldHeight - 2
	gunfireMaxSpeed = 12.0
)

// Gunfire is a straight-line munition
type Gunfire struct {
	Entity
	Damage  float64
	Targets []EntityType
	life    int
}

// NewGunfire creates a round fired by owner
func NewGunfire(owner *Entity, x, y, vx, vy, damage float64, targets []EntityType) *Gunfire {
	if damage == 0 {
		damage = GunfireDamage
	}
	g := &Gunfire{
		Entity: Entity{
			Box:            NewBox(x, y, GunfireWidth, GunfireHeight),
			Type:           TypeGunfire,
			Faction:        owner.Faction,
			ParentType:     owner.Type,
			Energy:         1,
			EnergyMax:      1,
			VX:             Clamp(vx, -gunfireMaxSpeed, gunfireMaxSpeed),
			VY:             vy,
			DyingFrames:    1,
			TeardownFrames: 1,
		},
		Damage:  damage,
		Targets: targets,
		life:    Frames(GunfireLifeMs),
	}
	return g
}

// NewInertGunfire creates a decorative spark that never collides
func NewInertGunfire(w *World, source *Entity) *Gunfire {
	g := NewGunfire(source, source.CenterX(), source.Y+source.HalfHeight,
		w.plusMinus()*(1+w.rnd(3)), -w.rnd(3), 0, nil)
	g.Inert = true
	g.life = Frames(InertGunfireMs)
	return g
}

// InertGunfireExplosion sprays decorative sparks, only when the source is visible
func InertGunfireExplosion(w *World, source *Entity, count int) {
	if !source.OnScreen {
		return
	}
	for i := 0; i < count; i++ {
		Spawn(w, NewInertGunfire(w, source))
	}
}

// Animate moves the round and resolves contact
func (g *Gunfire) Animate(w *World) {
	if g.Dead {
		return
	}
	g.X += g.VX
	g.Y += g.VY
	if g.Inert {
		g.VY += 0.1
	}
	g.life--

	if g.life <= 0 || g.X < -g.Width || g.X > WorldWidth || g.Y > gunfireGroundY {
		w.Die(&g.Entity, DieOptions{Silent: true})
		return
	}

	w.CollisionPass(CollisionQuery{
		Source:  &g.Entity,
		Targets: g.Targets,
		OnHit:   func(target *Entity) { g.hitTarget(w, target) },
	})
}

func (g *Gunfire) hitTarget(w *World, target *Entity) {
	// Non-tank rounds bounce off super bunkers and become harmless.
	if target.Type == TypeSuperBunker && g.ParentType != TypeTank {
		w.ApplyHit(target, g.Damage, &g.Entity)
		g.VX = -g.VX * ricochetSpread
		g.VY = -1 - w.rnd(1)
		g.Inert = true
		return
	}
	w.ApplyHit(target, g.Damage, &g.Entity)
	w.Die(&g.Entity, DieOptions{})
}
