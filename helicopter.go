package main

import "math"

const (
	HeliMaxVX         = 6.0
	HeliMaxVY         = 3.0
	HeliAccel         = 0.35
	HeliCruiseY       = 120.0 // patrol altitude when nothing is in range
	HeliCeiling       = 32.0
	HeliGunRangeX     = 256.0 // fire the gun when this close horizontally
	HeliGunRangeY     = 40.0
	HeliMissileRange  = 1024.0
	HeliMissileCD     = FPS * 3
	HeliRetargetEvery = 15
	HeliDropEvery     = 20
	HeliRepairPer     = 0.1  // energy per frame while landed
	HeliLowEnergy     = 0.3  // head home below this fraction of energy
	HeliRespawnMs     = 3000 // dead to back on the pad
	HeliAmmo          = 64
	HeliMissiles      = 4
	HeliParachutes    = 5
	HeliPadOffset     = 200.0
	heliGunSpeed      = 10.0
)

// HeliMode is the flight mode of a CPU helicopter
type HeliMode int

const (
	HeliLanded HeliMode = iota
	HeliHunting
	HeliReturning
)

func (m HeliMode) String() string {
	switch m {
	case HeliLanded:
		return "landed"
	case HeliHunting:
		return "hunting"
	case HeliReturning:
		return "returning"
	}
	return "unknown"
}

var heliGunTargets = []EntityType{
	TypeHelicopter, TypeBalloon, TypeSmartMissile, TypeTank, TypeVan,
	TypeMissileLauncher, TypeInfantry, TypeParachuteInfantry, TypeTurret,
}

// heliCrashTargets destroy the helicopter and themselves on contact
var heliCrashTargets = []EntityType{TypeHelicopter, TypeBalloon, TypeChain}

// Helicopter is a CPU-flown gunship. It hunts the nearest target, fires its
// gun and smart missiles, drops paratroopers over enemy bunkers and flies
// home to repair and rearm.
type Helicopter struct {
	Entity
	Mode       HeliMode
	TargetID   int
	Ammo       int
	Missiles   int
	Parachutes int
	Passengers int

	profile     UnitProfile
	padX        float64
	frameCount  int
	lastMissile int
	respawn     TimerSlot
}

// NewHelicopter creates a helicopter parked on its side's landing pad
func NewHelicopter(faction Faction) *Helicopter {
	p := ProfileOf(TypeHelicopter)
	padX := HeliPadOffset
	if faction == FactionEnemy {
		padX = WorldWidth - HeliPadOffset - p.Width
	}
	h := &Helicopter{
		Entity: Entity{
			Box:            NewBox(padX, groundY(p.Height), p.Width, p.Height),
			Type:           TypeHelicopter,
			Faction:        faction,
			Energy:         p.Energy,
			EnergyMax:      p.Energy,
			Rotated:        faction == FactionEnemy,
			CanRespawn:     true,
			DyingFrames:    Frames(p.DyingMs),
			TeardownFrames: Frames(p.TeardownMs),
		},
		profile: p,
		padX:    padX,
	}
	h.rearm()
	return h
}

func (h *Helicopter) rearm() {
	h.Ammo = HeliAmmo
	h.Missiles = HeliMissiles
	h.Parachutes = HeliParachutes
}

// Landed reports whether the helicopter is sitting on the ground
func (h *Helicopter) Landed() bool {
	return h.Y >= groundY(h.Height)
}

func (h *Helicopter) Animate(w *World) {
	if h.Dead {
		return
	}
	h.frameCount++

	switch h.Mode {
	case HeliLanded:
		h.serviceOnPad(w)
	case HeliHunting:
		h.hunt(w)
	case HeliReturning:
		h.flyHome(w)
	}

	h.move()

	w.CollisionPass(CollisionQuery{
		Source:  &h.Entity,
		Targets: heliCrashTargets,
		OnHit:   func(t *Entity) { h.crash(w, t) },
	})
	if h.Landed() {
		w.CollisionPass(CollisionQuery{
			Source:  &h.Entity,
			Targets: []EntityType{TypeInfantry},
			OnHit:   func(t *Entity) { h.pickUp(w, t) },
		})
	}
}

func (h *Helicopter) serviceOnPad(w *World) {
	h.VX, h.VY = 0, 0
	if w.Repair(&h.Entity, HeliRepairPer) {
		return
	}
	h.rearm()
	h.Mode = HeliHunting
}

func (h *Helicopter) hunt(w *World) {
	if h.Energy < h.EnergyMax*HeliLowEnergy || (h.Ammo == 0 && h.Missiles == 0) {
		h.Mode = HeliReturning
		return
	}

	target := w.Registry.Get(h.TargetID)
	if target == nil || target.Dead || h.frameCount%HeliRetargetEvery == 0 {
		target = w.SelectNearest(&h.Entity, DefaultTargetTypes, false)
		h.TargetID = 0
		if target != nil {
			h.TargetID = target.ID
		}
	}

	if target == nil {
		// patrol toward the other side
		dir := 1.0
		if h.IsEnemy() {
			dir = -1
		}
		h.steer(dir*WorldWidth, HeliCruiseY-(h.Y+h.HalfHeight))
		h.dropParachutes(w)
		return
	}

	dx, dy := TrackObject(&h.Entity, target)
	if target.BottomAligned && target.Type != TypeTank {
		// keep clear of the ground while strafing
		dy -= 60
	}
	h.steer(dx, dy)

	if math.Abs(dx) < HeliGunRangeX && math.Abs(dy) < HeliGunRangeY {
		h.fire(w)
	}
	if h.Missiles > 0 && math.Abs(dx) < HeliMissileRange &&
		(h.lastMissile == 0 || h.frameCount-h.lastMissile >= HeliMissileCD) {
		h.launch(w, target)
	}
	h.dropParachutes(w)
}

func (h *Helicopter) flyHome(w *World) {
	dx := h.padX - h.X
	if math.Abs(dx) < HeliMaxVX {
		h.X = h.padX
		h.VX = 0
		h.VY = HeliMaxVY
		if h.Landed() {
			h.Mode = HeliLanded
		}
		return
	}
	h.steer(dx, HeliCruiseY-(h.Y+h.HalfHeight))
}

// steer accelerates toward a delta and sets the facing
func (h *Helicopter) steer(dx, dy float64) {
	h.VX = Clamp(h.VX+math.Copysign(HeliAccel, dx), -HeliMaxVX, HeliMaxVX)
	if math.Abs(dx) < HeliMaxVX*4 {
		h.VX *= 0.8
	}
	switch {
	case dy > h.Height/2:
		h.VY = math.Min(h.VY+HeliAccel, HeliMaxVY)
	case dy < -h.Height/2:
		h.VY = math.Max(h.VY-HeliAccel, -HeliMaxVY)
	default:
		h.VY *= 0.5
	}
	if h.VX != 0 {
		h.Rotated = h.VX < 0
	}
}

func (h *Helicopter) move() {
	h.X = Clamp(h.X+h.VX, 0, WorldWidth-h.Width)
	h.Y = Clamp(h.Y+h.VY, HeliCeiling, groundY(h.Height))
}

func (h *Helicopter) fire(w *World) {
	if h.Ammo == 0 || h.frameCount%h.profile.FireEvery != 0 {
		return
	}
	h.Ammo--
	dir := 1.0
	x := h.X + h.Width
	if h.Rotated {
		dir, x = -1, h.X
	}
	Spawn(w, NewGunfire(&h.Entity, x, h.Y+h.HalfHeight, dir*heliGunSpeed+h.VX, h.VY*0.5, h.profile.GunDamage, heliGunTargets))
}

func (h *Helicopter) launch(w *World, target *Entity) {
	h.Missiles--
	h.lastMissile = h.frameCount
	m := Spawn(w, NewSmartMissile(w, &h.Entity, target))
	w.notify(Effect{Kind: EffectLaunch, Subject: m.Ref(), Other: target.Ref(), Faction: h.Faction})
}

// dropParachutes releases a paratrooper while over an enemy bunker
func (h *Helicopter) dropParachutes(w *World) {
	if h.Parachutes == 0 || h.frameCount%HeliDropEvery != 0 {
		return
	}
	for _, b := range w.Registry.Collection(TypeBunker) {
		if b.Dead || b.Faction == h.Faction {
			continue
		}
		if h.CenterX() >= b.X && h.CenterX() <= b.Right() {
			h.Parachutes--
			Spawn(w, NewParachuteInfantry(w, h.Faction, h.CenterX(), h.Bottom(), false))
			return
		}
	}
}

// pickUp boards friendly infantry standing next to a landed helicopter
func (h *Helicopter) pickUp(w *World, t *Entity) {
	if t.Faction != h.Faction || t.Dead || h.Passengers >= HeliParachutes {
		return
	}
	h.Passengers++
	w.Die(t, DieOptions{Silent: true})
}

func (h *Helicopter) crash(w *World, t *Entity) {
	if t.Type == TypeChain {
		w.Die(&h.Entity, DieOptions{Attacker: t})
		return
	}
	w.Die(t, DieOptions{Attacker: &h.Entity})
	w.Die(&h.Entity, DieOptions{Attacker: t})
}

// OnDie blows the helicopter apart, bails out passengers and queues the
// replacement on the landing pad
func (h *Helicopter) OnDie(w *World, opts DieOptions) {
	if !opts.Silent {
		ShrapnelExplosion(w, &h.Entity, 8+w.rndInt(8), 4+w.rnd(2), false)
		InertGunfireExplosion(w, &h.Entity, 8)
	}
	for ; h.Passengers > 0; h.Passengers-- {
		x := h.X + w.rnd(h.Width)
		Spawn(w, NewParachuteInfantry(w, h.Faction, x, h.Y, true))
	}
	h.respawn.Replace(w.Scheduler.After(Frames(HeliRespawnMs), func() { w.Respawn(&h.Entity) }))
}

// OnReset parks the helicopter back on the pad
func (h *Helicopter) OnReset(w *World) {
	h.X, h.Y = h.padX, groundY(h.Height)
	h.VX, h.VY = 0, 0
	h.Mode = HeliLanded
	h.TargetID = 0
	h.Rotated = h.IsEnemy()
	h.rearm()
}
