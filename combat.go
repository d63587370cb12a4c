package main

import "math"

// ApplyHit applies hitPoints of damage from attacker to target. Dead targets
// are ignored. Super bunkers only take damage from tank-fired munitions and
// tanks shrug off shrapnel. Energy stays within [0, EnergyMax]; reaching
// zero kills the target.
func (w *World) ApplyHit(target *Entity, hitPoints float64, attacker *Entity) {
	if target.Dead {
		return
	}
	if hitPoints == 0 {
		hitPoints = 1
	}
	if target.hooks.hit != nil {
		target.hooks.hit.OnHit(w, hitPoints, attacker)
		return
	}

	switch target.Type {
	case TypeSuperBunker:
		if attacker == nil || attacker.ParentType != TypeTank {
			w.notify(Effect{Kind: EffectRicochet, Subject: target.Ref(), Other: attacker.Ref()})
			return
		}
	case TypeTank:
		if attacker != nil && (attacker.Type == TypeShrapnel || attacker.ParentType == TypeShrapnel) {
			hitPoints = 0
		}
	}

	energy := Clamp(target.Energy-hitPoints, 0, target.EnergyMax)
	changed := energy != target.Energy
	target.Energy = energy

	if changed {
		w.notify(Effect{Kind: EffectHit, Subject: target.Ref(), Other: attacker.Ref(), Amount: hitPoints})
		if target.hooks.health != nil {
			target.hooks.health.OnHealthChanged(w, attacker)
		}
	}
	w.updateEnergy(target)

	if target.Energy == 0 {
		w.Die(target, DieOptions{Attacker: attacker})
	}
}

// Repair adds energy up to the maximum and returns whether anything changed
func (w *World) Repair(target *Entity, amount float64) bool {
	if target.Dead || target.Energy >= target.EnergyMax {
		return false
	}
	target.Energy = math.Min(target.EnergyMax, target.Energy+amount)
	w.updateEnergy(target)
	return true
}

func (w *World) updateEnergy(e *Entity) {
	w.notify(Effect{Kind: EffectEnergy, Subject: e.Ref(), Amount: e.Energy})
}
