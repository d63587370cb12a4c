package main

import "testing"

func TestTankStopsAndFires(t *testing.T) {
	w, _ := newTestWorld(t)
	tank := Spawn(w, NewTank(FactionFriendly, 1000))
	Spawn(w, NewVan(FactionEnemy, 1063))

	for i := 0; i < tank.profile.FireEvery; i++ {
		tank.Animate(w)
	}
	if tank.X != 1000 {
		t.Errorf("tank should stop in front of an enemy, x=%v", tank.X)
	}
	rounds := w.Registry.Collection(TypeGunfire)
	if len(rounds) != 1 {
		t.Fatalf("expected one round, got %d", len(rounds))
	}
	if rounds[0].ParentType != TypeTank || rounds[0].VX <= 0 {
		t.Errorf("expected a tank round heading right, got %+v", rounds[0])
	}
}

func TestTankWaitsBehindConvoy(t *testing.T) {
	w, _ := newTestWorld(t)
	tank := Spawn(w, NewTank(FactionFriendly, 1000))
	van := Spawn(w, NewVan(FactionFriendly, 1063))

	tank.Animate(w)
	if tank.X != 1000 {
		t.Errorf("tank should wait behind a friendly van, x=%v", tank.X)
	}

	w.Die(&van.Entity, DieOptions{Silent: true})
	tank.Animate(w)
	if tank.X != 1001 {
		t.Errorf("tank should move once the way is clear, x=%v", tank.X)
	}
}

func TestVanReachingEnemyBaseWins(t *testing.T) {
	w, log := newTestWorld(t)
	eb := Spawn(w, NewEndBunker(FactionEnemy))
	van := Spawn(w, NewVan(FactionFriendly, eb.X-4))

	van.Animate(w)
	winner, over := w.Winner()
	if !over || winner != FactionFriendly {
		t.Fatalf("expected friendly win, got %s over=%v", winner, over)
	}
	if log.count(EffectBattleOver) != 1 {
		t.Errorf("expected one battle_over effect, got %d", log.count(EffectBattleOver))
	}
}

func TestVanAtOwnBase(t *testing.T) {
	w, _ := newTestWorld(t)
	eb := Spawn(w, NewEndBunker(FactionFriendly))
	van := Spawn(w, NewVan(FactionFriendly, eb.X))

	van.Animate(w)
	if w.BattleOver() {
		t.Error("a van at its own base does not end the battle")
	}
}

func TestMissileLauncherLaunches(t *testing.T) {
	w, log := newTestWorld(t)
	ml := Spawn(w, NewMissileLauncher(FactionFriendly, 1000))
	heli := skyHeli(w, FactionEnemy, 1500, 100)

	ml.Animate(w)
	if w.Registry.Count(TypeSmartMissile) != 1 {
		t.Fatal("launcher should fire at a helicopter in range")
	}
	fx, ok := log.last(EffectLaunch)
	if !ok || fx.Other.ID != heli.ID {
		t.Errorf("unexpected launch effect %+v", fx)
	}
	if ml.X != 1000 {
		t.Error("launcher halts to fire")
	}

	ml.Animate(w)
	if w.Registry.Count(TypeSmartMissile) != 1 {
		t.Error("launcher should wait out its cooldown")
	}
}

func TestMissileLauncherOutOfRange(t *testing.T) {
	w, _ := newTestWorld(t)
	ml := Spawn(w, NewMissileLauncher(FactionFriendly, 1000))
	skyHeli(w, FactionEnemy, 2000, 100)
	skyHeli(w, FactionEnemy, 500, 100)

	ml.Animate(w)
	if w.Registry.Count(TypeSmartMissile) != 0 {
		t.Error("nothing in range ahead, nothing to launch")
	}
	if ml.X != 1000+ml.profile.Speed {
		t.Errorf("launcher should keep moving, x=%v", ml.X)
	}
}

func TestVanRecycles(t *testing.T) {
	w, log := newTestWorld(t)
	van := Spawn(w, NewVan(FactionFriendly, WorldWidth-1))

	van.Animate(w)
	if van.State != StateRecycling {
		t.Fatalf("van past the edge should recycle, state %s", van.State)
	}
	advance(w, Frames(RecycleMs))
	if !van.Dead {
		t.Fatal("recycled van should be gone")
	}
	if got := w.Ledger.Funds(FactionFriendly); got != DefaultFunds+4 {
		t.Errorf("expected refund of 4, funds %v", got)
	}
	if fx, ok := log.last(EffectRefund); !ok || fx.Amount != 4 {
		t.Errorf("unexpected refund effect %+v", fx)
	}
}
