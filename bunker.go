package main

const (
	BunkerEnergy      = 50
	BunkerWidth       = 51
	BunkerHalfWidth   = 25
	BunkerHeight      = 25
	BunkerDoorWidth   = 5
	EngineerRepairPer = 0.05 // energy per frame at the door
)

// Bunker is a capturable structure that owns a balloon and its chain
type Bunker struct {
	Entity
	recaptured bool
}

// NewBunker creates a bunker on the ground at x
func NewBunker(faction Faction, x float64) *Bunker {
	b := &Bunker{
		Entity: Entity{
			Box:           NewBox(x, groundY(BunkerHeight), BunkerWidth, BunkerHeight),
			Type:          TypeBunker,
			Faction:       faction,
			Energy:        BunkerEnergy,
			EnergyMax:     BunkerEnergy,
			BottomAligned: true,
			CanRespawn:    true, // wrecks stay on the field
			DyingFrames:   Frames(1200),
		},
	}
	b.HalfWidth = BunkerHalfWidth
	b.MidPoint = NewBox(b.X+b.HalfWidth-BunkerDoorWidth/2, b.Y, BunkerDoorWidth, b.Height)
	return b
}

// SpawnBunker places a bunker with its balloon and chain
func SpawnBunker(w *World, faction Faction, x float64) *Bunker {
	b := Spawn(w, NewBunker(faction, x))
	b.createBalloon(w)
	return b
}

func (b *Bunker) createBalloon(w *World) {
	balloon := w.Registry.Linked(&b.Entity, SlotBalloon)
	if balloon == nil {
		bl := Spawn(w, NewBalloon(w, b.Faction, b.X, groundY(BunkerHeight)-BalloonHeight))
		w.Registry.Link(&b.Entity, SlotBalloon, &bl.Entity, SlotBunker)
		balloon = &bl.Entity
	}
	if w.Registry.Linked(&b.Entity, SlotChain) == nil {
		c := Spawn(w, NewChain(b.X+b.HalfWidth-1, b.Y))
		w.Registry.Link(&b.Entity, SlotChain, &c.Entity, SlotBunker)
		w.Registry.Link(balloon, SlotChain, &c.Entity, SlotBalloon)
	}
}

// Animate is a no-op for standing bunkers; wrecks just sit there
func (b *Bunker) Animate(w *World) {}

// Capture flips ownership of the bunker and its balloon
func (b *Bunker) Capture(w *World, faction Faction) {
	if b.Dead || b.Faction == faction {
		return
	}
	b.Faction = faction
	if balloon := w.Registry.Linked(&b.Entity, SlotBalloon); balloon != nil {
		balloon.Faction = faction
	}
	note := "captured"
	if faction == FactionFriendly {
		if b.recaptured {
			note = "recaptured"
		}
		b.recaptured = true
	}
	w.notify(Effect{Kind: EffectCapture, Subject: b.Ref(), Faction: faction, Note: note})
	w.CheckProduction()
}

// InfantryHit handles infantry contact. Friendly passers-by repair the
// balloon; enemies at the door capture the bunker and go inside.
func (b *Bunker) InfantryHit(w *World, inf *Entity) {
	if b.Dead {
		return
	}
	if inf.Faction == b.Faction {
		b.repair(w)
		return
	}
	if AtMidPoint(&b.Entity, inf) {
		b.Capture(w, inf.Faction)
		w.Die(inf, DieOptions{Silent: true})
	}
}

// EngineerHit repairs the bunker while a friendly engineer is at the door.
// It reports whether the engineer should stay put.
func (b *Bunker) EngineerHit(w *World, eng *Entity) bool {
	if b.Dead || eng.Faction != b.Faction || !AtMidPoint(&b.Entity, eng) {
		return false
	}
	if !w.Repair(&b.Entity, EngineerRepairPer) {
		return false
	}
	return true
}

// repair flags a dead balloon for respawn, or builds a new one
func (b *Bunker) repair(w *World) {
	if balloon := w.Registry.Linked(&b.Entity, SlotBalloon); balloon != nil {
		if balloon.Dead {
			if bl, ok := balloon.unit.(*Balloon); ok && !bl.RespawnReady {
				bl.RespawnReady = true
				w.notify(Effect{Kind: EffectRepair, Subject: balloon.Ref(), Other: b.Ref()})
			}
		}
		return
	}
	b.createBalloon(w)
	w.notify(Effect{Kind: EffectRepair, Subject: b.Ref()})
}

// detachBalloon frees the balloon and chain before the bunker goes down
func (b *Bunker) detachBalloon(w *World) {
	chain := w.Registry.Linked(&b.Entity, SlotChain)
	if chain != nil {
		w.Registry.Unlink(&b.Entity, SlotChain)
	}
	if balloon := w.Registry.Linked(&b.Entity, SlotBalloon); balloon != nil {
		w.Registry.Unlink(&b.Entity, SlotBalloon)
		if bl, ok := balloon.unit.(*Balloon); ok {
			bl.detach(w)
		}
	}
}

// OnDie detaches dependents and blows the bunker apart
func (b *Bunker) OnDie(w *World, opts DieOptions) {
	b.detachBalloon(w)
	ShrapnelExplosion(w, &b.Entity, 16+w.rndInt(24), 3+w.rnd(3), true)
	InertGunfireExplosion(w, &b.Entity, 16+w.rndInt(8))
	w.CheckProduction()
}

// Chain tethers a balloon to its bunker
type Chain struct {
	Entity
}

// NewChain creates a chain hanging from x, y
func NewChain(x, y float64) *Chain {
	return &Chain{
		Entity: Entity{
			Box:            NewBox(x, y, 1, 0),
			Type:           TypeChain,
			Energy:         1,
			EnergyMax:      1,
			Inert:          true,
			Neutral:        true,
			TeardownFrames: 1,
		},
	}
}

// Animate keeps the chain between its bunker and balloon. A free chain
// hangs from its balloon; with neither, it falls until it hits the ground.
func (c *Chain) Animate(w *World) {
	if c.Dead {
		return
	}
	c.follow(w)
}

func (c *Chain) follow(w *World) {
	bunker := w.Registry.Linked(&c.Entity, SlotBunker)
	balloon := w.Registry.Linked(&c.Entity, SlotBalloon)

	switch {
	case bunker != nil && balloon != nil:
		c.X = bunker.X + bunker.HalfWidth - 1
		if balloon.Dead {
			c.Y, c.Height = bunker.Y, 0
			return
		}
		c.Y = balloon.Bottom()
		c.Height = max(0, bunker.Y-c.Y)
	case balloon != nil:
		c.X = balloon.X + balloon.HalfWidth
		c.Y = balloon.Bottom()
		if balloon.Dead {
			w.Registry.Unlink(&c.Entity, SlotBalloon)
		}
	default:
		c.VY = min(c.VY+0.5, 12)
		c.Y += c.VY
		if c.Y >= WorldHeight {
			w.Die(&c.Entity, DieOptions{Silent: true})
		}
	}
}
