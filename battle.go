package main

const (
	convoySpacingMs = 1500
	convoyStartX    = 56.0
)

// structure layout, friendly half mirrored for the enemy
var (
	bunkerLayout      = []float64{1024, 2048, 3072}
	turretLayout      = []float64{640, 2560}
	superBunkerLayout = []float64{3584}
)

type convoyItem struct {
	Type EntityType
	Role Role
}

// standardConvoy is what each side sends when it can afford it
var standardConvoy = []convoyItem{
	{Type: TypeTank},
	{Type: TypeMissileLauncher},
	{Type: TypeInfantry},
	{Type: TypeVan},
}

// SetupBattle places both sides' structures and helicopters
func SetupBattle(w *World) {
	for _, f := range []Faction{FactionFriendly, FactionEnemy} {
		Spawn(w, NewEndBunker(f))
		for _, x := range bunkerLayout {
			SpawnBunker(w, f, mirrorX(f, x, BunkerWidth))
		}
		for _, x := range turretLayout {
			Spawn(w, NewTurret(f, mirrorX(f, x, ProfileOf(TypeTurret).Width)))
		}
		Spawn(w, NewHelicopter(f))
	}
	for _, x := range superBunkerLayout {
		Spawn(w, NewSuperBunker(FactionEnemy, x))
	}
	w.CheckProduction()
}

// mirrorX maps a friendly-side X onto the enemy half of the field
func mirrorX(f Faction, x, width float64) float64 {
	if f == FactionEnemy {
		return WorldWidth - x - width
	}
	return x
}

// produce launches a convoy for each side on the configured cadence
func (w *World) produce() {
	every := w.Config.ConvoyEvery
	if every <= 0 || w.battleOver {
		return
	}
	if w.Scheduler.Frame()%uint64(every) != 0 {
		return
	}
	w.BuildConvoy(FactionFriendly)
	if !w.productionHalted {
		w.BuildConvoy(FactionEnemy)
	}
}

// BuildConvoy buys what the side can afford from the standard convoy and
// rolls the units out of its base one after another. It returns the number
// of orders placed.
func (w *World) BuildConvoy(f Faction) int {
	orders := standardConvoy
	if w.Config.hardMode() {
		orders = append(orders[:len(orders):len(orders)], convoyItem{Type: TypeInfantry, Role: RoleEngineer})
	}

	placed := 0
	for _, item := range orders {
		cost := Costs[item.Type]
		if item.Role == RoleEngineer {
			cost = EngineerCost
		}
		if w.Ledger.Funds(f) < cost.Funds {
			continue
		}
		w.Ledger.Withdraw(f, cost.Funds)
		for i := 0; i < cost.Count; i++ {
			delay := Frames(convoySpacingMs * (placed + 1))
			w.Scheduler.After(delay, func() { w.rollOut(f, item) })
			placed++
		}
	}
	return placed
}

func (w *World) rollOut(f Faction, item convoyItem) {
	if w.battleOver {
		return
	}
	width := ProfileOf(item.Type).Width
	x := mirrorX(f, convoyStartX, width)
	switch item.Type {
	case TypeTank:
		Spawn(w, NewTank(f, x))
	case TypeVan:
		Spawn(w, NewVan(f, x))
	case TypeMissileLauncher:
		Spawn(w, NewMissileLauncher(f, x))
	case TypeInfantry:
		Spawn(w, NewInfantry(f, x, item.Role))
	}
}
