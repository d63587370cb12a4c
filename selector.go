package main

import (
	"math"
	"sort"
)

const (
	TargetRange     = 3072.0 // max |x| distance for target acquisition
	LowAltitudeBand = 100.0  // helicopters this close to the ground prefer ground targets
)

// DefaultTargetTypes are scanned when the caller names no collections
var DefaultTargetTypes = []EntityType{
	TypeTank, TypeVan, TypeMissileLauncher, TypeHelicopter,
	TypeBunker, TypeBalloon, TypeSmartMissile, TypeTurret,
}

type rankedTarget struct {
	e    *Entity
	dist float64
}

// SelectNearest picks a single target for source across the given collections.
// Candidates must be alive and on the other side. With useInFront only those
// ahead of the source's facing survive. Low helicopters only consider ground
// targets, everything else only airborne ones (balloons count as airborne).
// Enemy helicopters take the farthest survivor; everyone else the nearest.
func (r *Registry) SelectNearest(source *Entity, types []EntityType, useInFront bool) *Entity {
	if len(types) == 0 {
		types = DefaultTargetTypes
	}
	preferGround := source.Type == TypeHelicopter && source.Y > WorldHeight-LowAltitudeBand

	var ranked []rankedTarget
	for _, t := range types {
		for _, c := range r.Collection(t) {
			if c.Dead || c.Faction == source.Faction {
				continue
			}
			if useInFront {
				inFront := c.X >= source.X
				if source.Rotated == inFront {
					continue
				}
			}
			airborne := !c.BottomAligned || c.Type == TypeBalloon
			if preferGround == airborne {
				continue
			}
			dist := math.Abs(math.Abs(c.X) - math.Abs(source.X))
			if dist >= TargetRange {
				continue
			}
			ranked = append(ranked, rankedTarget{e: c, dist: dist})
		}
	}
	if len(ranked) == 0 {
		return nil
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].dist < ranked[j].dist })

	// enemy helicopters take the farthest target
	if source.Type == TypeHelicopter && source.IsEnemy() {
		return ranked[len(ranked)-1].e
	}
	return ranked[0].e
}
