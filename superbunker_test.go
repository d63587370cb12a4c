package main

import "testing"

func sbDoor(sb *SuperBunker, f Faction) *Infantry {
	return NewInfantry(f, sb.MidPoint.X-2, RolePlain)
}

func TestSuperBunkerReinforced(t *testing.T) {
	w, _ := newTestWorld(t)
	sb := Spawn(w, NewSuperBunker(FactionEnemy, 3584))
	inf := Spawn(w, sbDoor(sb, FactionEnemy))

	sb.Animate(w)
	if sb.Energy != SuperBunkerGarrison+1 {
		t.Errorf("expected garrison %d, got %v", SuperBunkerGarrison+1, sb.Energy)
	}
	if !inf.Dead {
		t.Error("reinforcements go inside")
	}
}

func TestSuperBunkerFullGarrison(t *testing.T) {
	w, _ := newTestWorld(t)
	sb := Spawn(w, NewSuperBunker(FactionEnemy, 3584))
	sb.Energy = sb.EnergyMax
	inf := Spawn(w, sbDoor(sb, FactionEnemy))

	sb.Animate(w)
	if inf.Dead || sb.Energy != sb.EnergyMax {
		t.Error("a full super bunker turns infantry away")
	}
}

func TestSuperBunkerAttackersTradeForDefenders(t *testing.T) {
	w, _ := newTestWorld(t)
	sb := Spawn(w, NewSuperBunker(FactionEnemy, 3584))
	inf := Spawn(w, sbDoor(sb, FactionFriendly))

	sb.Animate(w)
	if sb.Energy != SuperBunkerGarrison-1 || !inf.Dead {
		t.Errorf("attacker should trade itself for a defender, garrison %v", sb.Energy)
	}
	if sb.Faction != FactionEnemy {
		t.Error("a garrisoned super bunker holds")
	}
	if !sb.Firing {
		t.Error("super bunker should fire on attackers")
	}
}

func TestSuperBunkerCaptured(t *testing.T) {
	w, log := newTestWorld(t)
	sb := Spawn(w, NewSuperBunker(FactionEnemy, 3584))
	sb.Energy = 1
	Spawn(w, sbDoor(sb, FactionFriendly))

	sb.Animate(w)
	if sb.Faction != FactionFriendly || sb.Energy != 1 {
		t.Errorf("last defender gone: expected friendly with garrison 1, got %s %v", sb.Faction, sb.Energy)
	}
	fx, ok := log.last(EffectCapture)
	if !ok || fx.Subject.ID != sb.ID || fx.Faction != FactionFriendly {
		t.Errorf("unexpected capture effect %+v", fx)
	}
	if !w.ProductionHalted() {
		t.Error("holding every bunker should halt enemy production")
	}
}

func TestSuperBunkerEngineersIgnored(t *testing.T) {
	w, _ := newTestWorld(t)
	sb := Spawn(w, NewSuperBunker(FactionEnemy, 3584))
	eng := Spawn(w, NewInfantry(FactionEnemy, sb.MidPoint.X-2, RoleEngineer))

	sb.Animate(w)
	if eng.Dead || sb.Energy != SuperBunkerGarrison {
		t.Error("engineers do not garrison super bunkers")
	}
}

func TestSuperBunkerWreckHeldByAttacker(t *testing.T) {
	w, log := newTestWorld(t)
	sb := Spawn(w, NewSuperBunker(FactionEnemy, 3584))
	round := Spawn(w, NewGunfire(&Entity{Type: TypeTank, Faction: FactionFriendly}, 0, 0, 1, 0, 5, nil))

	w.ApplyHit(&sb.Entity, SuperBunkerGarrison, &round.Entity)
	if !sb.Dead {
		t.Fatal("tank fire should wreck the super bunker")
	}
	if sb.Faction != FactionFriendly {
		t.Error("the wreck belongs to the side that destroyed it")
	}
	if log.count(EffectNeutralize) != 1 {
		t.Errorf("expected one neutralize effect, got %d", log.count(EffectNeutralize))
	}

	advance(w, Frames(1200)+1)
	if w.Registry.Get(sb.ID) == nil {
		t.Error("super bunker wreck should stay on the field")
	}
	sb.Animate(w)
	if sb.Firing {
		t.Error("a wreck does not fire")
	}
}
