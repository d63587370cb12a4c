package main

import "math"

const (
	MissileExpireFrames  = 256
	MissileDieFrames     = 640
	MissileNearExpiry    = 0.88 // fraction of the expire budget that triggers the burst
	MissileBurst         = 1.1
	MissileBurstExtreme  = 1.25
	MissileDamage        = 25.0
	MissileWidth         = 14.0
	MissileHeight        = 15.0
	MissileVYMaxExpired  = 36.0
	MissileTracking      = 0.0033 // proportional X gain
	MissileLockDamping   = 0.8
	MissileLockThreshold = 0.25
	MissileFallRate      = 1.085
	MissileDrag          = 0.95
	MissileDeathMs       = 500
)

// missileTargets is what a smart missile can strike
var missileTargets = []EntityType{
	TypeSuperBunker, TypeHelicopter, TypeTank, TypeVan, TypeMissileLauncher,
	TypeInfantry, TypeParachuteInfantry, TypeBunker, TypeBalloon,
	TypeSmartMissile, TypeTurret,
}

// SmartMissile is a homing munition. It tracks a target until the target
// is lost and cannot be replaced, or its frame budget runs out; it then
// expires and falls, dangerous to both sides.
type SmartMissile struct {
	Entity
	TargetID     int
	FrameCount   int
	ExpireFrames int
	DieFrames    int
	NearExpiry   bool
	VXMax        float64
	VYMax        float64
	VYMaxExpired float64
	Thrust       float64
	Gravity      float64
	Damage       float64
	yMax         float64
}

// NewSmartMissile creates a missile launched by owner at target
func NewSmartMissile(w *World, owner, target *Entity) *SmartMissile {
	m := &SmartMissile{
		Entity: Entity{
			Box:            NewBox(owner.CenterX(), owner.Y+owner.HalfHeight, MissileWidth, MissileHeight),
			Type:           TypeSmartMissile,
			Faction:        owner.Faction,
			ParentType:     owner.Type,
			Energy:         1,
			EnergyMax:      1,
			VX:             1 + w.Rand.Float64(),
			VY:             1 + w.Rand.Float64(),
			Rotated:        owner.IsEnemy(),
			DyingFrames:    Frames(MissileDeathMs),
			TeardownFrames: 1,
		},
		ExpireFrames: MissileExpireFrames,
		DieFrames:    MissileDieFrames,
		VXMax:        12 + w.rnd(6),
		VYMax:        12 + w.rnd(6),
		VYMaxExpired: MissileVYMaxExpired,
		Thrust:       0.5 + w.rnd(0.5),
		Gravity:      1,
		Damage:       MissileDamage,
		yMax:         WorldHeight - MissileHeight,
	}
	if target != nil {
		m.TargetID = target.ID
	}
	return m
}

// Tracking reports whether the missile is still guided
func (m *SmartMissile) Tracking() bool {
	return !m.Dead && !m.Expired
}

// aimDelta returns the offset from the missile to the target's aim point.
// Ground targets are aimed below their top edge, airborne ones above it.
func aimDelta(m, t *Entity) (dx, dy float64) {
	offset := t.Height / 2
	if t.Type == TypeBalloon {
		offset = 0
	}
	dx = (t.X + t.Width/2) - m.X
	if t.BottomAligned {
		dy = (t.Y + offset) - m.Y
	} else {
		dy = (t.Y - offset) - m.Y
	}
	return dx, dy
}

// Animate runs one guidance step, moves the missile and resolves contact
func (m *SmartMissile) Animate(w *World) {
	if m.Dead {
		return
	}

	target := w.Registry.Get(m.TargetID)
	lost := target == nil || target.Dead

	if !m.Expired && lost {
		// one reacquisition attempt per lost target
		next := w.SelectNearest(&m.Entity, DefaultTargetTypes, true)
		if next != nil && !next.Cloaked && !next.Dead {
			m.TargetID = next.ID
			target = next
			lost = false
			w.notify(Effect{Kind: EffectRetarget, Subject: m.Ref(), Other: next.Ref()})
		}
	}

	if !m.Expired && (m.FrameCount > m.ExpireFrames || lost) {
		m.Expired = true
		m.Hostile = true
		w.notify(Effect{Kind: EffectExpire, Subject: m.Ref()})
	}

	var dx, dy float64
	if target != nil {
		dx, dy = aimDelta(&m.Entity, target)
	}

	if m.Expired {
		m.Gravity *= MissileFallRate
		m.VX *= MissileDrag
	} else {
		m.steer(dx, dy, target.Height)
	}

	m.VX = Clamp(m.VX, -m.VXMax, m.VXMax)
	m.VY = Clamp(m.VY, -m.VYMax, m.VYMax)

	if !m.NearExpiry && float64(m.FrameCount)/float64(m.ExpireFrames) >= MissileNearExpiry {
		m.NearExpiry = true
		burst := MissileBurst
		if w.Config.Difficulty == DifficultyExtreme {
			burst = MissileBurstExtreme
		}
		m.VXMax *= burst
		m.VYMax *= burst
	}

	newX := m.X + m.VX
	var newY float64
	if m.Expired {
		newY = m.Y + math.Min(m.VY+m.Gravity, m.VYMaxExpired)
	} else {
		newY = m.Y + m.VY
	}
	// guided missiles do not dive into the ground
	if !m.Expired && !lost && newY >= m.yMax {
		newY = m.yMax
	}
	m.X, m.Y = newX, newY

	m.FrameCount++

	if m.FrameCount >= m.DieFrames {
		w.Die(&m.Entity, DieOptions{})
		m.VYMax *= 0.5
	}

	if m.Y > WorldHeight-3 {
		m.Y = WorldHeight - 3
		w.Die(&m.Entity, DieOptions{Silent: true})
	}

	w.CollisionPass(CollisionQuery{
		Source:  &m.Entity,
		Targets: missileTargets,
		OnHit:   func(t *Entity) { m.sparkAndDie(w, t) },
	})
}

// steer applies proportional tracking on X and thrust or lock damping on Y
func (m *SmartMissile) steer(dx, dy, targetHeight float64) {
	m.VX += dx * MissileTracking
	if dy <= targetHeight && dy >= -targetHeight {
		if m.VY >= MissileLockThreshold || m.VY < -MissileLockThreshold {
			m.VY *= MissileLockDamping
		}
		return
	}
	if dy >= 0 {
		m.VY += m.Thrust
	} else {
		m.VY -= m.Thrust
	}
}

func (m *SmartMissile) sparkAndDie(w *World, target *Entity) {
	w.ApplyHit(target, m.Damage, &m.Entity)
	w.Die(&m.Entity, DieOptions{})
}

// OnDie throws a few fragments
func (m *SmartMissile) OnDie(w *World, opts DieOptions) {
	if opts.Silent {
		return
	}
	InertGunfireExplosion(w, &m.Entity, 4)
	ShrapnelExplosion(w, &m.Entity, 3+w.rndInt(3), (math.Abs(m.VX)+math.Abs(m.VY))/2, false)
}
