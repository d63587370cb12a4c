package main

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "modernc.org/sqlite"
)

// sqliteTimeFormat matches CURRENT_TIMESTAMP
const sqliteTimeFormat = "2006-01-02 15:04:05"

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
}

// BattleRow represents a battle record in the database
type BattleRow struct {
	ID         string
	Difficulty string
	Seed       int64
	Frames     uint64
	Winner     sql.NullInt64
	CreatedAt  time.Time
	EndedAt    sql.NullTime
}

// OpenDB opens (or creates) the SQLite database
func OpenDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	// WAL lets the summary queries run while the writer is flushing
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable wal: %w", err)
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates tables if they don't exist
func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS battles (
		id TEXT PRIMARY KEY,
		difficulty TEXT NOT NULL,
		seed INTEGER NOT NULL DEFAULT 0,
		frames INTEGER NOT NULL DEFAULT 0,
		winner INTEGER,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		ended_at DATETIME
	);

	CREATE TABLE IF NOT EXISTS battle_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		battle_id TEXT NOT NULL REFERENCES battles(id),
		frame INTEGER NOT NULL,
		kind TEXT NOT NULL,
		faction INTEGER NOT NULL DEFAULT 0,
		subject_type TEXT NOT NULL DEFAULT '',
		other_type TEXT NOT NULL DEFAULT '',
		amount REAL NOT NULL DEFAULT 0,
		note TEXT NOT NULL DEFAULT '',
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_battle_events_battle ON battle_events(battle_id, kind);
	`
	_, err := db.conn.Exec(schema)
	if err != nil {
		log.Printf("DB migration error: %v", err)
	}
	return err
}

// GetSetting returns a stored setting, or "" when it is missing
func (db *DB) GetSetting(key string) string {
	var value string
	err := db.conn.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		return ""
	}
	return value
}

// SetSetting stores a setting, replacing any previous value
func (db *DB) SetSetting(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value,
	)
	return err
}

// CreateBattle records a new battle
func (db *DB) CreateBattle(id string, cfg BattleConfig) error {
	_, err := db.conn.Exec(
		"INSERT INTO battles (id, difficulty, seed) VALUES (?, ?, ?)",
		id, string(cfg.Difficulty), cfg.Seed,
	)
	return err
}

// FinishBattle stores the final frame count and, when known, the winner
func (db *DB) FinishBattle(id string, frames uint64, winner *Faction) error {
	w := sql.NullInt64{}
	if winner != nil {
		w = sql.NullInt64{Int64: int64(*winner), Valid: true}
	}
	_, err := db.conn.Exec(
		"UPDATE battles SET frames = ?, winner = COALESCE(?, winner), ended_at = ? WHERE id = ?",
		frames, w, time.Now().UTC().Format(sqliteTimeFormat), id,
	)
	return err
}

// GetBattle returns a battle by ID, or nil when it does not exist
func (db *DB) GetBattle(id string) (*BattleRow, error) {
	row := db.conn.QueryRow(
		"SELECT id, difficulty, seed, frames, winner, created_at, ended_at FROM battles WHERE id = ?",
		id,
	)
	b := &BattleRow{}
	err := row.Scan(&b.ID, &b.Difficulty, &b.Seed, &b.Frames, &b.Winner, &b.CreatedAt, &b.EndedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}
