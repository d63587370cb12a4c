package main

// CollisionQuery configures one collision pass for a source entity
type CollisionQuery struct {
	Source       *Entity
	Targets      []EntityType // checked in order
	FriendlyOnly bool
	UseLookahead bool
	// Nearby stops after the first collection that produced a hit
	Nearby bool
	OnHit  func(target *Entity)
	OnMiss func()
}

// Active reports whether an entity can take part in collisions as a source
func Active(e *Entity) bool {
	return !e.Dead && !e.Inert && !(e.Expired && !e.Hostile)
}

// CollisionPass runs the overlap test filtered by Eligible over the configured
// collections. OnHit fires per match; OnMiss fires once when nothing matched.
// Activity is checked once: an inactive source returns false without
// calling either.
func (r *Registry) CollisionPass(q CollisionQuery) bool {
	src := q.Source
	if src == nil || !Active(src) {
		return false
	}

	var lookahead float64
	if q.UseLookahead {
		lookahead = LookaheadFor(src)
	}

	hit := false
	for _, t := range q.Targets {
		found := false
		// a source spent by OnHit still meets the rest of this collection
		for _, c := range r.Collection(t) {
			if !Eligible(src, c, q.FriendlyOnly) {
				continue
			}
			// Helicopters are detected on both sides of the source.
			if Overlaps(src.Box, c.Box, lookahead) ||
				(c.Type == TypeHelicopter && Overlaps(src.Box, c.Box, -lookahead)) {
				found = true
				if q.OnHit != nil {
					q.OnHit(c)
				}
			}
		}
		if found {
			hit = true
			if q.Nearby {
				break
			}
		}
	}

	if !hit && q.OnMiss != nil {
		q.OnMiss()
	}
	return hit
}
