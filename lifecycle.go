package main

// LifeState is the lifecycle stage of an entity
type LifeState int

const (
	StateAlive LifeState = iota
	StateDying
	StateDead
	StateRemoved
	StateRespawning
	StateRecycling
)

func (s LifeState) String() string {
	switch s {
	case StateAlive:
		return "alive"
	case StateDying:
		return "dying"
	case StateDead:
		return "dead"
	case StateRemoved:
		return "removed"
	case StateRespawning:
		return "respawning"
	case StateRecycling:
		return "recycling"
	}
	return "unknown"
}

const (
	RadarRemoveMs  = 2000 // visible death to radar removal
	RadarRespawnMs = 1000 // radar grace period for respawnable parents
	RecycleMs      = 2000 // boundary reached to silent death
	RecycleBuildMs = 16   // recycle animation kick-off
	RecycleExitX   = -48  // enemy units recycle just left of the friendly base
)

// DieOptions carries death context
type DieOptions struct {
	Silent   bool
	Attacker *Entity
}

// Die moves an entity from Alive (or Recycling) to Dying. It returns false
// when the entity was already dead.
func (w *World) Die(e *Entity, opts DieOptions) bool {
	if e.Dead {
		return false
	}
	e.Dead = true
	e.Energy = 0
	e.State = StateDying
	e.DiedAt = w.Scheduler.Frame()

	if e.hooks.death != nil {
		e.hooks.death.OnDie(w, opts)
	}
	if e.Radar != nil {
		e.Radar.die(w, e, opts.Silent)
	}
	w.notify(Effect{Kind: EffectDeath, Subject: e.Ref(), Other: opts.Attacker.Ref(), Silent: opts.Silent})

	dying := e.DyingFrames
	if opts.Silent {
		dying = 1
	}
	silent := opts.Silent
	e.timer.Replace(w.Scheduler.After(dying, func() { w.enterDead(e, silent) }))
	return true
}

func (w *World) enterDead(e *Entity, silent bool) {
	e.State = StateDead
	if e.CanRespawn {
		return
	}
	teardown := e.TeardownFrames
	if silent {
		teardown = 1
	}
	e.timer.Replace(w.Scheduler.After(teardown, func() {
		e.State = StateRemoved
		w.Registry.Remove(e.ID)
		w.notify(Effect{Kind: EffectRemoved, Subject: e.Ref()})
	}))
}

// Respawn resets a dead, respawn-capable entity. It is refused while the
// owning bunker is dead.
func (w *World) Respawn(e *Entity) bool {
	if !e.Dead || !e.CanRespawn {
		return false
	}
	if owner := w.Registry.Linked(e, SlotBunker); owner != nil && owner.Dead {
		return false
	}

	e.State = StateRespawning
	e.timer.Cancel()
	e.Energy = e.EnergyMax
	e.Dead = false
	e.Expired = false
	if e.Radar != nil {
		e.Radar.reset()
	}
	if e.hooks.reset != nil {
		e.hooks.reset.OnReset(w)
	}
	e.State = StateAlive
	w.updateEnergy(e)
	w.notify(Effect{Kind: EffectRespawn, Subject: e.Ref()})
	return true
}

// RecycleTest starts recycling a unit that reached the far boundary. After
// RecycleMs the unit dies silently and its side is refunded twice the
// per-unit cost. Air-dropped infantry earn nothing. A death before the
// timer fires cancels the refund.
func (w *World) RecycleTest(e *Entity) {
	if e.Dead || e.State == StateRecycling {
		return
	}
	var exit bool
	if e.IsEnemy() {
		exit = e.X <= RecycleExitX
	} else {
		exit = e.X >= WorldWidth
	}
	if !exit {
		return
	}

	e.State = StateRecycling
	w.Scheduler.After(Frames(RecycleBuildMs), func() {
		if e.State == StateRecycling {
			w.notify(Effect{Kind: EffectRecycle, Subject: e.Ref()})
		}
	})
	e.timer.Replace(w.Scheduler.After(Frames(RecycleMs), func() {
		w.Die(e, DieOptions{Silent: true})
		if e.Type == TypeInfantry && e.Role == RolePlain && !e.Unassisted {
			return
		}
		refund := RecycleRefund(e)
		if refund <= 0 {
			return
		}
		w.Ledger.Credit(e.Faction, refund)
		w.notify(Effect{Kind: EffectRefund, Subject: e.Ref(), Faction: e.Faction, Amount: refund})
	}))
}

// RecycleRefund is twice the per-unit cost of an entity
func RecycleRefund(e *Entity) float64 {
	c, ok := CostOf(e)
	if !ok {
		return 0
	}
	count := c.Count
	if count == 0 {
		count = 1
	}
	return c.Funds / float64(count) * 2
}

// RadarMarker is the radar blip owned by an entity
type RadarMarker struct {
	Dead    bool
	Removed bool
	timer   TimerSlot
}

func (r *RadarMarker) die(w *World, parent *Entity, silent bool) {
	if r.Dead {
		return
	}
	r.Dead = true
	if parent.CanRespawn {
		r.timer.Replace(w.Scheduler.After(Frames(RadarRespawnMs), func() {
			// the parent may have respawned in the meantime
			if parent.Dead {
				r.Removed = true
			}
		}))
		return
	}
	frames := Frames(RadarRemoveMs)
	if silent {
		frames = 1
	}
	r.timer.Replace(w.Scheduler.After(frames, func() { r.Removed = true }))
}

func (r *RadarMarker) reset() {
	r.timer.Cancel()
	r.Dead = false
	r.Removed = false
}
