package main

import "math"

const (
	MaxLookahead      = 16.0 // cap on the X offset used by nearby checks
	LookaheadFraction = 0.33 // of source width, when no explicit lookahead is set
)

// Box is an axis-aligned rectangle in world coordinates. Y grows downward.
type Box struct {
	X, Y          float64
	Width, Height float64
	HalfWidth     float64
	HalfHeight    float64
}

// NewBox creates a box with derived half dimensions
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, Width: w, Height: h, HalfWidth: w / 2, HalfHeight: h / 2}
}

// Right returns the right edge X
func (b Box) Right() float64 { return b.X + b.Width }

// Bottom returns the bottom edge Y
func (b Box) Bottom() float64 { return b.Y + b.Height }

// CenterX returns the horizontal center
func (b Box) CenterX() float64 { return b.X + b.HalfWidth }

// Overlaps reports whether a, shifted on X by lookahead, intersects b.
// Bounds are inclusive: boxes sharing an edge overlap.
func Overlaps(a, b Box, lookahead float64) bool {
	ax := a.X + lookahead
	return ax <= b.X+b.Width &&
		b.X <= ax+a.Width &&
		a.Y <= b.Y+b.Height &&
		b.Y <= a.Y+a.Height
}

// OverlapsEither tests with both +lookahead and -lookahead.
func OverlapsEither(a, b Box, lookahead float64) bool {
	return Overlaps(a, b, lookahead) || Overlaps(a, b, -lookahead)
}

// AtMidPoint reports whether other touches the structure's door box.
func AtMidPoint(structure, other *Entity) bool {
	return Overlaps(structure.MidPoint, other.Box, 0)
}

// LookaheadFor returns the signed nearby offset for a source: friendly units
// look right, enemy units look left.
func LookaheadFor(e *Entity) float64 {
	l := e.XLookAhead
	if l == 0 {
		l = e.Width * LookaheadFraction
	}
	l = math.Min(MaxLookahead, l)
	if e.Faction == FactionEnemy {
		l = -l
	}
	return l
}

// TrackObject returns the X/Y delta from source center to target center.
// Tanks are tracked from a fixed high offset so helicopters bomb from above.
func TrackObject(source, target *Entity) (dx, dy float64) {
	dx = (target.X + target.HalfWidth) - (source.X + source.HalfWidth)
	if target.Type == TypeTank {
		dy = (40 + target.HalfHeight) - (source.Y + source.HalfHeight)
	} else {
		dy = (target.Y + target.HalfHeight) - (source.Y + source.HalfHeight)
	}
	return dx, dy
}
