package main

import "math"

// Ledger tracks spendable funds per side
type Ledger interface {
	Funds(f Faction) float64
	Credit(f Faction, amount float64)
	// Withdraw removes up to amount and returns what was taken
	Withdraw(f Faction, amount float64) float64
}

// Treasury is the in-memory ledger used by a battle
type Treasury struct {
	funds [2]float64
}

// NewTreasury creates a ledger with starting funds for each side
func NewTreasury(friendly, enemy float64) *Treasury {
	return &Treasury{funds: [2]float64{friendly, enemy}}
}

func (t *Treasury) Funds(f Faction) float64 {
	return t.funds[f]
}

func (t *Treasury) Credit(f Faction, amount float64) {
	if amount <= 0 {
		return
	}
	t.funds[f] += amount
}

func (t *Treasury) Withdraw(f Faction, amount float64) float64 {
	taken := math.Max(0, math.Min(t.funds[f], amount))
	t.funds[f] -= taken
	return taken
}
