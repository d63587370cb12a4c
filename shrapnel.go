package main

const (
	ShrapnelDamage  = 0.5
	ShrapnelMaxVX   = 36.0
	ShrapnelMaxVY   = 32.0
	ShrapnelDeathMs = 750
	shrapnelSize    = 12.0
)

// shrapnelTargets is what falling fragments can strike
var shrapnelTargets = []EntityType{
	TypeSuperBunker, TypeBunker, TypeHelicopter, TypeBalloon, TypeTank, TypeVan,
	TypeMissileLauncher, TypeInfantry, TypeParachuteInfantry, TypeSmartMissile, TypeTurret,
}

// ricochetParents are airborne sources whose fragments bounce off armor
var ricochetParents = map[EntityType]bool{
	TypeBalloon:      true,
	TypeHelicopter:   true,
	TypeSmartMissile: true,
}

// Shrapnel is a hostile falling fragment
type Shrapnel struct {
	Entity
	gravity     float64
	gravityRate float64
	ricochet    float64
}

// NewShrapnel creates a fragment thrown by parent
func NewShrapnel(w *World, parent *Entity, x, y, vx, vy float64) *Shrapnel {
	scale := 0.8 + w.rnd(0.15)
	size := shrapnelSize * scale
	return &Shrapnel{
		Entity: Entity{
			Box:            NewBox(x, y, size, size),
			Type:           TypeShrapnel,
			Faction:        parent.Faction,
			ParentType:     parent.Type,
			Energy:         1,
			EnergyMax:      1,
			VX:             vx,
			VY:             vy,
			Hostile:        true,
			DyingFrames:    Frames(ShrapnelDeathMs),
			TeardownFrames: 1,
		},
		gravity:     1,
		gravityRate: 1.06 + w.rnd(0.05),
		ricochet:    0.5 + w.Rand.Float64(),
	}
}

// ShrapnelExplosion throws count fragments out of source. Bottom-aligned
// sources only throw upward.
func ShrapnelExplosion(w *World, source *Entity, count int, velocity float64, bottomAligned bool) {
	cx := source.CenterX()
	cy := source.Y + source.HalfHeight
	for i := 0; i < count; i++ {
		vx := velocity * (0.5 + w.rnd(1)) * w.plusMinus()
		vy := -velocity * (0.25 + w.rnd(1))
		if !bottomAligned && w.Rand.Float64() > 0.5 {
			vy = -vy
		}
		Spawn(w, NewShrapnel(w, source, cx, cy, vx, vy))
	}
}

// Animate applies gravity and resolves contact
func (s *Shrapnel) Animate(w *World) {
	if s.Dead {
		return
	}
	s.X += s.VX
	s.Y += min(ShrapnelMaxVY, s.VY+s.gravity)

	if s.Y-s.Height >= WorldHeight {
		s.Y = WorldHeight
		w.Die(&s.Entity, DieOptions{})
		return
	}

	w.CollisionPass(CollisionQuery{
		Source:  &s.Entity,
		Targets: shrapnelTargets,
		OnHit:   func(target *Entity) { s.hitAndDie(w, target) },
	})

	s.gravity *= s.gravityRate
}

func (s *Shrapnel) hitAndDie(w *World, target *Entity) {
	if target.IgnoreShrapnel {
		return
	}
	if target.Type == TypeTank || target.Type == TypeSuperBunker {
		// armor takes no damage; fragments from the sky bounce off
		if ricochetParents[s.ParentType] {
			s.bounce(w, target)
			return
		}
		w.Die(&s.Entity, DieOptions{})
		return
	}
	w.ApplyHit(target, ShrapnelDamage, &s.Entity)
	w.Die(&s.Entity, DieOptions{})
}

func (s *Shrapnel) bounce(w *World, target *Entity) {
	w.notify(Effect{Kind: EffectRicochet, Subject: target.Ref(), Other: s.Ref()})
	if s.VY+s.gravity <= 0 {
		return
	}
	vy := Clamp(s.VY, ShrapnelMaxVY/6, ShrapnelMaxVY/3)
	s.VY = -vy * s.ricochet
	s.VX = Clamp(s.VX, -ShrapnelMaxVX, ShrapnelMaxVX)
	s.gravity = 1
	// stay above the armor
	s.Y = min(s.Y, target.Y-s.Height)
}
