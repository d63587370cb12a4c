package main

// Registry holds live entities bucketed by type in insertion order.
// Removal is deferred until Sweep so collections stay stable while a
// frame is being animated.
type Registry struct {
	nextID  int
	buckets [numEntityTypes][]*Entity
	byID    map[int]*Entity
	removed []int
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		byID: make(map[int]*Entity),
	}
}

// Add registers a unit, assigns its ID and resolves its optional hooks
func (r *Registry) Add(u Unit) *Entity {
	e := u.Base()
	r.nextID++
	e.ID = r.nextID
	e.unit = u
	e.hooks = resolveHooks(u)
	r.buckets[e.Type] = append(r.buckets[e.Type], e)
	r.byID[e.ID] = e
	return e
}

// Get returns the entity with the given ID, or nil
func (r *Registry) Get(id int) *Entity {
	if id == 0 {
		return nil
	}
	return r.byID[id]
}

// Unit returns the registered unit behind an entity ID
func (r *Registry) Unit(id int) Unit {
	if e := r.Get(id); e != nil {
		return e.unit
	}
	return nil
}

// Collection returns the ordered bucket for a type. Callers must not modify it.
func (r *Registry) Collection(t EntityType) []*Entity {
	if t < 0 || t >= numEntityTypes {
		return nil
	}
	return r.buckets[t]
}

// Count returns the number of registered entities of a type
func (r *Registry) Count(t EntityType) int {
	return len(r.Collection(t))
}

// Remove schedules an entity for removal at the next Sweep
func (r *Registry) Remove(id int) {
	if _, ok := r.byID[id]; ok {
		r.removed = append(r.removed, id)
	}
}

// Sweep drops removed entities and clears any links pointing at them
func (r *Registry) Sweep() {
	if len(r.removed) == 0 {
		return
	}
	gone := make(map[int]bool, len(r.removed))
	for _, id := range r.removed {
		e, ok := r.byID[id]
		if !ok {
			continue
		}
		for s := 0; s < numSlots; s++ {
			r.Unlink(e, s)
		}
		gone[id] = true
		delete(r.byID, id)
	}
	r.removed = r.removed[:0]

	for t := range r.buckets {
		bucket := r.buckets[t]
		kept := bucket[:0]
		for _, e := range bucket {
			if !gone[e.ID] {
				kept = append(kept, e)
			}
		}
		for i := len(kept); i < len(bucket); i++ {
			bucket[i] = nil
		}
		r.buckets[t] = kept
	}
}

// Link connects a's slotA to b and b's slotB to a. Occupied slots are refused.
func (r *Registry) Link(a *Entity, slotA int, b *Entity, slotB int) bool {
	if a.links[slotA] != 0 || b.links[slotB] != 0 {
		return false
	}
	a.links[slotA] = b.ID
	b.links[slotB] = a.ID
	return true
}

// Unlink clears a's slot and every back-reference the dependent holds to a
func (r *Registry) Unlink(a *Entity, slot int) {
	other := r.Get(a.links[slot])
	a.links[slot] = 0
	if other == nil {
		return
	}
	for s := 0; s < numSlots; s++ {
		if other.links[s] == a.ID {
			other.links[s] = 0
		}
	}
}

// Linked returns the entity held in a slot, or nil
func (r *Registry) Linked(e *Entity, slot int) *Entity {
	return r.Get(e.links[slot])
}
