package main

const DefaultFunds = 32

// UnitCost is the build price of a unit type. Count is the number of units
// delivered for that price.
type UnitCost struct {
	Funds float64
	Count int
}

// Costs by unit. Engineers are priced separately from plain infantry.
var Costs = map[EntityType]UnitCost{
	TypeTank:            {Funds: 4, Count: 1},
	TypeVan:             {Funds: 2, Count: 1},
	TypeMissileLauncher: {Funds: 3, Count: 1},
	TypeInfantry:        {Funds: 5, Count: 5},
	TypeHelicopter:      {Funds: 20, Count: 1},
}

var EngineerCost = UnitCost{Funds: 5, Count: 2}

// CostOf returns the cost entry for an entity
func CostOf(e *Entity) (UnitCost, bool) {
	if e.IsEngineer() {
		return EngineerCost, true
	}
	c, ok := Costs[e.Type]
	return c, ok
}

// UnitProfile holds the stats for a ground or air unit type
type UnitProfile struct {
	Energy     float64
	Width      float64
	Height     float64
	Speed      float64 // per frame, always positive
	FireEvery  int     // frames between shots (0 = unarmed)
	GunDamage  float64
	Lookahead  float64
	DyingMs    int
	TeardownMs int
}

var UnitProfiles = map[EntityType]UnitProfile{
	TypeTank: {
		Energy: 8, Width: 58, Height: 18, Speed: 1,
		FireEvery: 12, GunDamage: 2, Lookahead: 16,
		DyingMs: 1200, TeardownMs: 1000,
	},
	TypeVan: {
		Energy: 2, Width: 38, Height: 16, Speed: 1.5,
		DyingMs: 1000, TeardownMs: 1000,
	},
	TypeMissileLauncher: {
		Energy: 3, Width: 54, Height: 18, Speed: 1.25,
		FireEvery: FPS * 4, Lookahead: 16,
		DyingMs: 1000, TeardownMs: 1000,
	},
	TypeInfantry: {
		Energy: 2, Width: 10, Height: 11, Speed: 0.5,
		FireEvery: 10, GunDamage: 1, Lookahead: 16,
		DyingMs: 1200, TeardownMs: 1000,
	},
	TypeHelicopter: {
		Energy: 10, Width: 48, Height: 20, Speed: 0.75,
		FireEvery: 3, GunDamage: 1,
		DyingMs: 1200, TeardownMs: 2000,
	},
	TypeTurret: {
		Energy: 10, Width: 10, Height: 20,
		FireEvery: 6, GunDamage: 2,
		DyingMs: 1000,
	},
}

// ProfileOf returns the profile for a type, falling back to an empty one
func ProfileOf(t EntityType) UnitProfile {
	return UnitProfiles[t]
}

// groundY returns the top Y of a bottom-aligned object of the given height
func groundY(height float64) float64 {
	return WorldHeight - height - 2
}
