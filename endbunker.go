package main

const (
	EndBunkerWidth     = 39
	EndBunkerHalfWidth = 19
	EndBunkerHeight    = 19
	EndBunkerEnergyMax = 10
	EndBunkerTheftMax  = 20
	endBunkerFireEvery = 4
	endBunkerGunY      = 10
	endBunkerIncome    = FPS * 10
)

// endBunkerTargets are checked for the door and gun trigger
var endBunkerTargets = []EntityType{TypeInfantry, TypeHelicopter}

// EndBunker is the home base of a side. It never dies. Its guns only work
// while staffed, and enemy infantry at the door rob it.
type EndBunker struct {
	Entity
	Firing     bool
	frameCount int
}

// NewEndBunker creates the base for a side at its edge of the field
func NewEndBunker(faction Faction) *EndBunker {
	x := 8.0
	if faction == FactionEnemy {
		x = WorldWidth - 48
	}
	eb := &EndBunker{
		Entity: Entity{
			Box:           NewBox(x, groundY(EndBunkerHeight), EndBunkerWidth, EndBunkerHeight),
			Type:          TypeEndBunker,
			Faction:       faction,
			EnergyMax:     EndBunkerEnergyMax,
			BottomAligned: true,
			CanRespawn:    true,
		},
	}
	eb.HalfWidth = EndBunkerHalfWidth
	eb.MidPoint = NewBox(eb.X+eb.HalfWidth+5, eb.Y, 5, eb.Height)
	return eb
}

// OnHit only counts tank gunfire; anything else bounces off
func (eb *EndBunker) OnHit(w *World, points float64, attacker *Entity) {
	if attacker == nil || attacker.Type != TypeGunfire || attacker.ParentType != TypeTank {
		return
	}
	before := eb.Energy
	eb.Energy = Clamp(eb.Energy-points, 0, eb.EnergyMax)
	w.updateEnergy(&eb.Entity)
	if before > 0 && eb.Energy == 0 {
		eb.Firing = false
		w.notify(Effect{Kind: EffectNeutralize, Subject: eb.Ref(), Other: attacker.Ref(), Faction: attacker.Faction})
	}
}

// Animate scans the door, fires while armed and pays periodic income
func (eb *EndBunker) Animate(w *World) {
	eb.frameCount++

	w.CollisionPass(CollisionQuery{
		Source:       &eb.Entity,
		Targets:      endBunkerTargets,
		UseLookahead: true,
		Nearby:       true,
		OnHit:        func(t *Entity) { eb.nearbyHit(w, t) },
		OnMiss:       func() { eb.Firing = false },
	})

	eb.fire(w)

	if eb.frameCount%endBunkerIncome == 0 {
		eb.payIncome(w)
	}
}

func (eb *EndBunker) nearbyHit(w *World, t *Entity) {
	friendly := t.Faction == eb.Faction
	if !friendly && eb.Energy > 0 {
		eb.Firing = true
	}
	if t.Type != TypeInfantry || !AtMidPoint(&eb.Entity, t) {
		return
	}
	switch {
	case !friendly:
		if t.Role == RolePlain || w.Config.EngineersRobTheBank {
			eb.captureFunds(w, t)
		}
	case t.Role == RolePlain && eb.Energy == 0:
		eb.Energy = eb.EnergyMax
		w.updateEnergy(&eb.Entity)
		w.notify(Effect{Kind: EffectStaffed, Subject: eb.Ref(), Other: t.Ref(), Faction: eb.Faction})
		w.Die(t, DieOptions{Silent: true})
	}
}

// captureFunds moves funds from this side to the thief's side. Plain
// infantry carry off a limited amount; engineers empty the vault.
func (eb *EndBunker) captureFunds(w *World, thief *Entity) {
	funds := w.Ledger.Funds(eb.Faction)
	if funds <= 0 {
		return
	}
	limit := float64(EndBunkerTheftMax)
	if thief.IsEngineer() {
		limit = funds
	}
	taken := w.Ledger.Withdraw(eb.Faction, limit)
	w.Ledger.Credit(thief.Faction, taken)
	w.notify(Effect{Kind: EffectTheft, Subject: eb.Ref(), Other: thief.Ref(), Faction: thief.Faction, Amount: taken})
	w.Die(thief, DieOptions{Silent: true})
}

func (eb *EndBunker) fire(w *World) {
	if !eb.Firing || eb.Energy == 0 || eb.frameCount%endBunkerFireEvery != 0 {
		return
	}
	y := eb.Y + endBunkerGunY
	Spawn(w, NewGunfire(&eb.Entity, eb.X+eb.Width+1, y, 2, 0, 0, endBunkerTargets))
	Spawn(w, NewGunfire(&eb.Entity, eb.X-1, y, -2, 0, 0, endBunkerTargets))
}

// payIncome credits 1 to 3 funds depending on how deep the side's
// helicopter is into enemy territory
func (eb *EndBunker) payIncome(w *World) {
	var heli *Entity
	for _, h := range w.Registry.Collection(TypeHelicopter) {
		if h.Faction == eb.Faction {
			heli = h
			break
		}
	}
	if heli == nil {
		return
	}
	offset := heli.X / WorldWidth
	if eb.IsEnemy() {
		offset = 1 - offset
	}
	earned := 3.0
	switch {
	case offset < 0.33:
		earned = 1
	case offset < 0.66:
		earned = 2
	}
	w.Ledger.Credit(eb.Faction, earned)
	w.notify(Effect{Kind: EffectIncome, Subject: eb.Ref(), Faction: eb.Faction, Amount: earned})
}
