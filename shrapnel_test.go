package main

import "testing"

// fragmentOver drops a motionless fragment from parent onto target
func fragmentOver(w *World, parent EntityType, target *Entity) *Shrapnel {
	src := &Entity{Type: parent, Faction: FactionEnemy}
	s := Spawn(w, NewShrapnel(w, src, target.X+2, target.Y, 0, 0))
	return s
}

func TestShrapnelHitsOwnSide(t *testing.T) {
	w, _ := newTestWorld(t)
	van := Spawn(w, NewVan(FactionEnemy, 1000))
	s := fragmentOver(w, TypeBunker, &van.Entity)

	s.Animate(w)
	if van.Energy != van.EnergyMax-ShrapnelDamage {
		t.Errorf("expected energy %v, got %v", van.EnergyMax-ShrapnelDamage, van.Energy)
	}
	if !s.Dead {
		t.Error("fragment should die on impact")
	}
}

func TestShrapnelDiesOnArmor(t *testing.T) {
	w, log := newTestWorld(t)
	tank := Spawn(w, NewTank(FactionFriendly, 1000))
	s := fragmentOver(w, TypeBunker, &tank.Entity)

	s.Animate(w)
	if tank.Energy != tank.EnergyMax {
		t.Errorf("tanks take no shrapnel damage, energy %v", tank.Energy)
	}
	if !s.Dead {
		t.Fatal("ground-sourced fragment should die on armor")
	}
	if fx, ok := log.last(EffectDeath); !ok || fx.Subject.ID != s.ID || fx.Silent {
		t.Errorf("fragment should explode with a visible death, got %+v", fx)
	}
	if log.count(EffectRicochet) != 0 {
		t.Error("ground-sourced fragments do not bounce")
	}
}

func TestShrapnelBouncesOffArmor(t *testing.T) {
	w, log := newTestWorld(t)
	tank := Spawn(w, NewTank(FactionFriendly, 1000))
	s := fragmentOver(w, TypeHelicopter, &tank.Entity)
	s.VY = 5

	s.Animate(w)
	if s.Dead {
		t.Fatal("fragments from the sky should bounce off armor")
	}
	if s.VY >= 0 {
		t.Errorf("bounce should send the fragment upward, VY %v", s.VY)
	}
	if s.Bottom() > tank.Y+1e-9 {
		t.Errorf("fragment should sit above the armor, bottom %v tank top %v", s.Bottom(), tank.Y)
	}
	if log.count(EffectRicochet) != 1 {
		t.Errorf("expected one ricochet effect, got %d", log.count(EffectRicochet))
	}
	if tank.Energy != tank.EnergyMax {
		t.Error("a bounce does no damage")
	}
}

func TestShrapnelIgnoredByFlaggedTargets(t *testing.T) {
	w, _ := newTestWorld(t)
	p := Spawn(w, NewParachuteInfantry(w, FactionFriendly, 1000, 200, true))
	s := fragmentOver(w, TypeBunker, &p.Entity)

	s.Animate(w)
	if p.Energy != p.EnergyMax {
		t.Error("bailed-out paratroopers ignore shrapnel")
	}
	if s.Dead {
		t.Error("an ignored fragment keeps falling")
	}
}

func TestShrapnelLandsOnGround(t *testing.T) {
	w, _ := newTestWorld(t)
	src := &Entity{Type: TypeBunker, Faction: FactionEnemy}
	s := Spawn(w, NewShrapnel(w, src, 100, WorldHeight+2*shrapnelSize, 0, 0))

	s.Animate(w)
	if !s.Dead || s.Y != WorldHeight {
		t.Errorf("fragment below the ground should land, dead=%v y=%v", s.Dead, s.Y)
	}
}

func TestShrapnelExplosionFromGround(t *testing.T) {
	w, _ := newTestWorld(t)
	b := Spawn(w, NewBunker(FactionFriendly, 1000))
	ShrapnelExplosion(w, &b.Entity, 12, 4, true)

	frags := w.Registry.Collection(TypeShrapnel)
	if len(frags) != 12 {
		t.Fatalf("expected 12 fragments, got %d", len(frags))
	}
	for _, f := range frags {
		if f.VY >= 0 {
			t.Errorf("ground explosions only throw upward, VY %v", f.VY)
		}
		if !f.Hostile || f.Radar != nil {
			t.Error("fragments are hostile and off radar")
		}
	}
}
