package main

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSettings(t *testing.T) {
	db := openTestDB(t)
	if v := db.GetSetting("missing"); v != "" {
		t.Errorf("missing setting should be empty, got %q", v)
	}
	if err := db.SetSetting("k", "one"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := db.SetSetting("k", "two"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	if v := db.GetSetting("k"); v != "two" {
		t.Errorf("expected two, got %q", v)
	}
}

func TestBattleRows(t *testing.T) {
	db := openTestDB(t)
	cfg := DefaultBattleConfig()
	cfg.Seed = 42
	cfg.Difficulty = DifficultyHard

	if err := db.CreateBattle("b1", cfg); err != nil {
		t.Fatalf("create: %v", err)
	}
	b, err := db.GetBattle("b1")
	if err != nil || b == nil {
		t.Fatalf("get: %v %v", b, err)
	}
	if b.Difficulty != "hard" || b.Seed != 42 || b.Winner.Valid || b.EndedAt.Valid {
		t.Errorf("unexpected new battle row %+v", b)
	}

	winner := FactionEnemy
	if err := db.FinishBattle("b1", 1234, &winner); err != nil {
		t.Fatalf("finish: %v", err)
	}
	// a later stop without a winner keeps the recorded one
	if err := db.FinishBattle("b1", 1300, nil); err != nil {
		t.Fatalf("finish again: %v", err)
	}
	b, err = db.GetBattle("b1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if b.Frames != 1300 || !b.Winner.Valid || Faction(b.Winner.Int64) != FactionEnemy || !b.EndedAt.Valid {
		t.Errorf("unexpected finished battle row %+v", b)
	}

	missing, err := db.GetBattle("nope")
	if err != nil || missing != nil {
		t.Errorf("unknown battle should be nil, got %v %v", missing, err)
	}
}
