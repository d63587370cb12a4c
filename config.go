package main

import "fmt"

// Difficulty selects the game type
type Difficulty string

const (
	DifficultyEasy    Difficulty = "easy"
	DifficultyHard    Difficulty = "hard"
	DifficultyExtreme Difficulty = "extreme"
)

// ParseDifficulty validates a difficulty name
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(s); d {
	case DifficultyEasy, DifficultyHard, DifficultyExtreme:
		return d, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// BattleConfig holds per-battle tunables
type BattleConfig struct {
	Seed          int64
	Difficulty    Difficulty
	StartingFunds float64
	// EngineersRobTheBank lets engineers steal every fund from an end bunker
	EngineersRobTheBank bool
	// ConvoyEvery is the number of frames between convoy launches (0 disables)
	ConvoyEvery int
}

// DefaultBattleConfig returns the standard settings
func DefaultBattleConfig() BattleConfig {
	return BattleConfig{
		Seed:          1,
		Difficulty:    DifficultyEasy,
		StartingFunds: DefaultFunds,
		ConvoyEvery:   FPS * 30,
	}
}

// hardMode reports whether hard-only behaviors are enabled
func (c BattleConfig) hardMode() bool {
	return c.Difficulty == DifficultyHard || c.Difficulty == DifficultyExtreme
}
