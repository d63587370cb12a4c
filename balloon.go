package main

const (
	BalloonEnergy    = 3
	BalloonWidth     = 38
	BalloonHalfWidth = 19
	BalloonHeight    = 16
	BalloonMinY      = 48
	BalloonDyingMs   = 550
	balloonWindEvery = FPS * 2
	balloonMaxWind   = 1.5
)

// Balloon floats above its bunker on a chain. Cut loose, it drifts with the
// wind and becomes a hazard to everyone.
type Balloon struct {
	Entity
	// RespawnReady is set by a friendly passer-by once the balloon is down
	RespawnReady bool

	detached    bool
	verticalDir float64
	windX       float64
	windY       float64
	frameCount  int
	maxY        float64
}

// NewBalloon creates a tethered balloon at x, y
func NewBalloon(w *World, faction Faction, x, y float64) *Balloon {
	bl := &Balloon{
		Entity: Entity{
			Box:         NewBox(x+BunkerHalfWidth-BalloonHalfWidth, y, BalloonWidth, BalloonHeight),
			Type:        TypeBalloon,
			Faction:     faction,
			Energy:      BalloonEnergy,
			EnergyMax:   BalloonEnergy,
			CanRespawn:  true,
			DyingFrames: Frames(BalloonDyingMs),
		},
		verticalDir: -1,
		maxY:        y,
	}
	bl.HalfWidth = BalloonHalfWidth
	bl.windX = w.plusMinus() * w.rnd(balloonMaxWind/2)
	return bl
}

// Detached reports whether the balloon has been cut loose
func (bl *Balloon) Detached() bool { return bl.detached }

// Animate bobs a tethered balloon or drifts a free one. A downed balloon
// waits for its bunker to flag it for respawn.
func (bl *Balloon) Animate(w *World) {
	if bl.Dead {
		bl.checkRespawn(w)
		return
	}
	bl.frameCount++
	if bl.detached {
		bl.drift(w)
		return
	}

	bl.Y += bl.verticalDir * 0.5
	if bl.Y <= BalloonMinY {
		bl.Y = BalloonMinY
		bl.verticalDir = 1
	} else if bl.Y >= bl.maxY {
		bl.Y = bl.maxY
		bl.verticalDir = -1
	}
}

func (bl *Balloon) drift(w *World) {
	if bl.frameCount%balloonWindEvery == 0 {
		bl.windX = Clamp(bl.windX+w.plusMinus()*w.rnd(0.5), -balloonMaxWind, balloonMaxWind)
		bl.windY = Clamp(bl.windY+w.plusMinus()*w.rnd(0.25), -0.5, 0.5)
	}
	bl.X += bl.windX
	bl.Y = Clamp(bl.Y+bl.windY, BalloonMinY, WorldHeight-BalloonHeight-32)

	// free balloons wrap instead of leaving the field
	if bl.X > WorldWidth {
		bl.X = -bl.Width
	} else if bl.X < -bl.Width {
		bl.X = WorldWidth
	}
}

func (bl *Balloon) checkRespawn(w *World) {
	if !bl.RespawnReady || bl.detached {
		return
	}
	bunker := w.Registry.Linked(&bl.Entity, SlotBunker)
	if bunker == nil || bunker.Dead {
		return
	}
	w.Respawn(&bl.Entity)
}

// detach frees the balloon from its bunker. It can no longer respawn.
func (bl *Balloon) detach(w *World) {
	if bl.detached {
		return
	}
	bl.detached = true
	bl.Hostile = true
	bl.CanRespawn = false
	bl.RespawnReady = false
	w.notify(Effect{Kind: EffectDetach, Subject: bl.Ref()})

	// already down: nothing left to wait for
	if bl.Dead && bl.State == StateDead {
		w.enterDead(&bl.Entity, true)
	}
}

// OnReset puts the balloon back on its chain
func (bl *Balloon) OnReset(w *World) {
	bl.Y = bl.maxY
	bl.verticalDir = -1
	bl.RespawnReady = false
	if chain := w.Registry.Linked(&bl.Entity, SlotChain); chain != nil {
		if c, ok := chain.unit.(*Chain); ok {
			c.follow(w)
		}
	}
}

// OnDie scatters fragments on hard difficulty
func (bl *Balloon) OnDie(w *World, opts DieOptions) {
	if opts.Silent || !w.Config.hardMode() {
		return
	}
	ShrapnelExplosion(w, &bl.Entity, 4+w.rndInt(4), 4, false)
}
