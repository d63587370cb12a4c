package main

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

func airborne(t EntityType, f Faction, x, y float64) *stubUnit {
	return newStub(t, f, x, y, 20, 10)
}

func grounded(t EntityType, f Faction, x float64) *stubUnit {
	s := newStub(t, f, x, groundY(10), 20, 10)
	s.BottomAligned = true
	return s
}

func TestSelectNearestPicksClosest(t *testing.T) {
	r := NewRegistry()
	src := r.Add(grounded(TypeTurret, FactionFriendly, 1000))
	r.Add(airborne(TypeHelicopter, FactionEnemy, 1200, 100))
	near := r.Add(airborne(TypeHelicopter, FactionEnemy, 1100, 100))
	r.Add(airborne(TypeHelicopter, FactionFriendly, 1010, 100))

	if got := r.SelectNearest(src, []EntityType{TypeHelicopter}, false); got != near {
		t.Errorf("expected helicopter %d, got %+v", near.ID, got)
	}
}

func TestSelectNearestStableTies(t *testing.T) {
	r := NewRegistry()
	src := r.Add(grounded(TypeTurret, FactionFriendly, 1000))
	first := r.Add(airborne(TypeSmartMissile, FactionEnemy, 1100, 100))
	r.Add(airborne(TypeHelicopter, FactionEnemy, 900, 100))

	got := r.SelectNearest(src, []EntityType{TypeSmartMissile, TypeHelicopter}, false)
	if got != first {
		t.Errorf("equal distances should keep collection order, got %+v", got)
	}
}

func TestSelectNearestSkipsDeadAndFar(t *testing.T) {
	r := NewRegistry()
	src := r.Add(grounded(TypeTurret, FactionFriendly, 1000))
	dead := r.Add(airborne(TypeHelicopter, FactionEnemy, 1010, 100))
	dead.Dead = true
	r.Add(airborne(TypeHelicopter, FactionEnemy, 1000+TargetRange, 100))

	if got := r.SelectNearest(src, []EntityType{TypeHelicopter}, false); got != nil {
		t.Errorf("expected no target, got %+v", got)
	}
}

func TestSelectNearestInFront(t *testing.T) {
	r := NewRegistry()
	src := r.Add(grounded(TypeMissileLauncher, FactionFriendly, 1000))
	behind := r.Add(airborne(TypeHelicopter, FactionEnemy, 950, 100))
	ahead := r.Add(airborne(TypeHelicopter, FactionEnemy, 1300, 100))

	if got := r.SelectNearest(src, []EntityType{TypeHelicopter}, true); got != ahead {
		t.Errorf("facing right should ignore targets behind, got %+v", got)
	}
	src.Rotated = true
	if got := r.SelectNearest(src, []EntityType{TypeHelicopter}, true); got != behind {
		t.Errorf("facing left should only see targets behind, got %+v", got)
	}
}

func TestSelectNearestAltitudeFilter(t *testing.T) {
	r := NewRegistry()
	heli := r.Add(airborne(TypeHelicopter, FactionFriendly, 1000, 100))
	tank := r.Add(grounded(TypeTank, FactionEnemy, 1050))
	enemyHeli := r.Add(airborne(TypeHelicopter, FactionEnemy, 1500, 100))
	balloon := r.Add(grounded(TypeBalloon, FactionEnemy, 1100))

	types := []EntityType{TypeTank, TypeHelicopter}
	if got := r.SelectNearest(heli, types, false); got != enemyHeli {
		t.Errorf("high helicopter should pick airborne targets, got %+v", got)
	}

	heli.Y = WorldHeight - LowAltitudeBand + 10
	if got := r.SelectNearest(heli, types, false); got != tank {
		t.Errorf("low helicopter should pick ground targets, got %+v", got)
	}

	// balloons count as airborne even when flagged bottom-aligned
	if got := r.SelectNearest(heli, []EntityType{TypeBalloon}, false); got != nil {
		t.Errorf("low helicopter should skip balloons, got %+v", got)
	}
	heli.Y = 100
	if got := r.SelectNearest(heli, []EntityType{TypeBalloon}, false); got != balloon {
		t.Errorf("high helicopter should see balloons, got %+v", got)
	}
}

func TestSelectNearestEnemyHelicopterTakesFarthest(t *testing.T) {
	r := NewRegistry()
	src := r.Add(airborne(TypeHelicopter, FactionEnemy, 1000, 100))
	r.Add(airborne(TypeHelicopter, FactionFriendly, 1100, 100))
	far := r.Add(airborne(TypeHelicopter, FactionFriendly, 1500, 100))

	if got := r.SelectNearest(src, []EntityType{TypeHelicopter}, false); got != far {
		t.Errorf("enemy helicopter should take the farthest candidate, got %+v", got)
	}
}

func TestSelectNearestDefaultTypes(t *testing.T) {
	r := NewRegistry()
	src := r.Add(grounded(TypeTurret, FactionFriendly, 1000))
	m := r.Add(airborne(TypeSmartMissile, FactionEnemy, 1040, 100))
	if got := r.SelectNearest(src, nil, false); got != m {
		t.Errorf("nil types should fall back to the default collections, got %+v", got)
	}
}

func TestSelectNearestPicksMinimumDistance(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := NewRegistry()
		src := r.Add(grounded(TypeTurret, FactionFriendly, 4000))

		offsets := rapid.SliceOfNDistinct(rapid.IntRange(-3000, 3000), 1, 12, func(v int) int {
			if v < 0 {
				return -v
			}
			return v
		}).Draw(t, "offsets")

		var want *Entity
		best := math.Inf(1)
		for _, off := range offsets {
			e := r.Add(airborne(TypeHelicopter, FactionEnemy, src.X+float64(off), 100))
			if d := math.Abs(e.X - src.X); d < best {
				best, want = d, e
			}
		}

		got := r.SelectNearest(src, []EntityType{TypeHelicopter}, false)
		if got != want {
			t.Fatalf("expected helicopter %d at distance %v, got %+v", want.ID, best, got)
		}
		if again := r.SelectNearest(src, []EntityType{TypeHelicopter}, false); again != got {
			t.Fatalf("repeated selection changed from %d to %+v", got.ID, again)
		}
	})
}
