package main

// Eligible decides whether source may collide with candidate.
func Eligible(source, candidate *Entity, friendlyOnly bool) bool {
	if candidate.ID == source.ID {
		return false
	}
	// Dead turrets stay reachable so engineers can reclaim them.
	if candidate.Dead && !(candidate.Type == TypeTurret && source.IsEngineer()) {
		return false
	}

	sameSide := candidate.Faction == source.Faction
	if friendlyOnly == sameSide {
		return true
	}

	switch {
	case source.Type == TypeInfantry && candidate.Type == TypeBunker:
		return true
	case candidate.Type == TypeInfantry && candidate.Role == RolePlain &&
		(source.Type == TypeEndBunker || source.Type == TypeSuperBunker):
		return true
	case candidate.Type == TypeInfantry && source.Type == TypeHelicopter:
		return true
	case source.IsEngineer() && candidate.Type == TypeTurret:
		return true
	}

	return source.Hostile || candidate.Hostile || source.Neutral || candidate.Neutral
}
