package main

// EntityType identifies the kind of entity and the registry bucket it lives in
type EntityType int

const (
	TypeNone EntityType = iota
	TypeTank
	TypeVan
	TypeMissileLauncher
	TypeInfantry // engineers are infantry with RoleEngineer
	TypeParachuteInfantry
	TypeHelicopter
	TypeBunker
	TypeEndBunker
	TypeSuperBunker
	TypeBalloon
	TypeChain
	TypeTurret
	TypeSmartMissile
	TypeShrapnel
	TypeGunfire
	numEntityTypes
)

var entityTypeNames = [numEntityTypes]string{
	TypeNone:              "none",
	TypeTank:              "tank",
	TypeVan:               "van",
	TypeMissileLauncher:   "missile-launcher",
	TypeInfantry:          "infantry",
	TypeParachuteInfantry: "parachute-infantry",
	TypeHelicopter:        "helicopter",
	TypeBunker:            "bunker",
	TypeEndBunker:         "end-bunker",
	TypeSuperBunker:       "super-bunker",
	TypeBalloon:           "balloon",
	TypeChain:             "chain",
	TypeTurret:            "turret",
	TypeSmartMissile:      "smart-missile",
	TypeShrapnel:          "shrapnel",
	TypeGunfire:           "gunfire",
}

func (t EntityType) String() string {
	if t < 0 || t >= numEntityTypes {
		return "unknown"
	}
	return entityTypeNames[t]
}

// Faction is the allegiance of an entity
type Faction int

const (
	FactionFriendly Faction = 0
	FactionEnemy    Faction = 1
)

// Opposite returns the other side
func (f Faction) Opposite() Faction {
	if f == FactionEnemy {
		return FactionFriendly
	}
	return FactionEnemy
}

func (f Faction) String() string {
	if f == FactionEnemy {
		return "enemy"
	}
	return "friendly"
}

// Role distinguishes plain infantry from engineers
type Role int

const (
	RolePlain    Role = 0
	RoleEngineer Role = 1
)

// Link slots for owned-by-index relationships
const (
	SlotBunker = iota
	SlotBalloon
	SlotChain
	numSlots
)

// Entity is the combat state shared by every unit, structure and munition.
type Entity struct {
	Box
	ID         int
	Type       EntityType
	Faction    Faction
	Role       Role
	ParentType EntityType // originating type, for munitions

	Energy    float64
	EnergyMax float64
	VX, VY    float64

	// XLookAhead overrides the width-derived nearby offset when non-zero
	XLookAhead float64
	// MidPoint is the door box for structures
	MidPoint Box

	Dead           bool
	Hostile        bool // dangerous to both sides
	Neutral        bool // exempt from faction filtering
	Inert          bool // decorative, never collides
	Expired        bool
	BottomAligned  bool // ground class
	Rotated        bool // facing left
	Cloaked        bool
	IgnoreShrapnel bool
	// CanRespawn keeps the entity in the registry once dead so it can be reset
	CanRespawn bool
	// Unassisted is false for infantry dropped by a player
	Unassisted bool
	OnScreen   bool

	State  LifeState
	DiedAt uint64

	DyingFrames    int // visible dying window before Dead
	TeardownFrames int // visible Dead to Removed delay

	Radar *RadarMarker

	links [numSlots]int
	timer TimerSlot
	unit  Unit
	hooks hooks
}

// Base returns the embedded entity
func (e *Entity) Base() *Entity { return e }

// IsEnemy reports whether the entity belongs to the enemy side
func (e *Entity) IsEnemy() bool { return e.Faction == FactionEnemy }

// IsEngineer reports infantry carrying the engineer role
func (e *Entity) IsEngineer() bool {
	return e.Type == TypeInfantry && e.Role == RoleEngineer
}

// Ref returns a compact reference for effect payloads
func (e *Entity) Ref() EntityRef {
	if e == nil {
		return EntityRef{}
	}
	return EntityRef{ID: e.ID, Type: e.Type, Faction: e.Faction}
}

// Unit is implemented by every registered simulation object
type Unit interface {
	Base() *Entity
	Animate(w *World)
}

// HealthWatcher reacts to energy changes caused by hits
type HealthWatcher interface {
	OnHealthChanged(w *World, attacker *Entity)
}

// DeathHandler runs type-specific actions when the entity starts dying
type DeathHandler interface {
	OnDie(w *World, opts DieOptions)
}

// HitHandler replaces the default damage rules for a unit
type HitHandler interface {
	OnHit(w *World, points float64, attacker *Entity)
}

// Resetter restores type-specific state on respawn
type Resetter interface {
	OnReset(w *World)
}

// hooks caches the optional capabilities a unit implements
type hooks struct {
	health HealthWatcher
	death  DeathHandler
	hit    HitHandler
	reset  Resetter
}

func resolveHooks(u Unit) hooks {
	var h hooks
	h.health, _ = u.(HealthWatcher)
	h.death, _ = u.(DeathHandler)
	h.hit, _ = u.(HitHandler)
	h.reset, _ = u.(Resetter)
	return h
}
