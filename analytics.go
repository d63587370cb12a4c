package main

import (
	"log"
	"sync"
	"time"
)

const (
	eventQueueSize  = 1024
	eventBatchSize  = 50
	eventFlushEvery = 5 * time.Second
)

// recordedKinds are the effects worth keeping after a battle ends
var recordedKinds = map[EffectKind]bool{
	EffectDeath:      true,
	EffectCapture:    true,
	EffectRecycle:    true,
	EffectRefund:     true,
	EffectTheft:      true,
	EffectIncome:     true,
	EffectStaffed:    true,
	EffectNeutralize: true,
	EffectLaunch:     true,
	EffectDetach:     true,
	EffectProduction: true,
	EffectBattleOver: true,
}

var munitionTypes = map[EntityType]bool{
	TypeGunfire:  true,
	TypeShrapnel: true,
	TypeChain:    true,
}

// BattleEvent is one persisted effect
type BattleEvent struct {
	Battle    string
	Effect    Effect
	Timestamp time.Time
}

// EventStore is the battle ledger. Effects are queued without blocking the
// battle loop and written to the database in batches by a background writer.
type EventStore struct {
	db       *DB
	events   chan BattleEvent
	flushReq chan chan struct{}
	stop     chan struct{}
	wg       sync.WaitGroup

	mu      sync.Mutex
	dropped int
}

// NewEventStore creates and starts the background writer
func NewEventStore(db *DB) *EventStore {
	s := &EventStore{
		db:       db,
		events:   make(chan BattleEvent, eventQueueSize),
		flushReq: make(chan chan struct{}),
		stop:     make(chan struct{}),
	}
	s.wg.Add(1)
	go s.writer()
	return s
}

// battleRecorder adapts the store to the Effects hook of one battle
type battleRecorder struct {
	store  *EventStore
	battle string
}

func (r battleRecorder) Notify(fx Effect) {
	r.store.Track(r.battle, fx)
}

// Recorder returns an Effects hook that records into this store
func (s *EventStore) Recorder(battleID string) Effects {
	return battleRecorder{store: s, battle: battleID}
}

// Track enqueues an effect for async persistence (non-blocking)
func (s *EventStore) Track(battleID string, fx Effect) {
	if !recordedKinds[fx.Kind] {
		return
	}
	if fx.Kind == EffectDeath {
		// silent deaths are bookkeeping, not kills
		if fx.Silent || munitionTypes[fx.Subject.Type] {
			return
		}
		fx.Faction = fx.Subject.Faction
	}
	select {
	case s.events <- BattleEvent{Battle: battleID, Effect: fx, Timestamp: time.Now().UTC()}:
	default:
		s.mu.Lock()
		s.dropped++
		s.mu.Unlock()
	}
}

// Dropped returns the number of events lost to a full queue
func (s *EventStore) Dropped() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// RecordBattle stores a new battle row
func (s *EventStore) RecordBattle(id string, cfg BattleConfig) error {
	if s.db == nil {
		return nil
	}
	return s.db.CreateBattle(id, cfg)
}

// EndBattle stores the outcome of a battle
func (s *EventStore) EndBattle(id string, frames uint64, winner *Faction) error {
	if s.db == nil {
		return nil
	}
	return s.db.FinishBattle(id, frames, winner)
}

// Stop drains the queue and shuts down the writer
func (s *EventStore) Stop() {
	close(s.stop)
	s.wg.Wait()
}

// Flush blocks until everything queued so far has been written
func (s *EventStore) Flush() {
	done := make(chan struct{})
	select {
	case s.flushReq <- done:
		<-done
	case <-s.stop:
	}
}

// drain empties the queue without blocking
func (s *EventStore) drain(batch []BattleEvent) []BattleEvent {
	for {
		select {
		case evt := <-s.events:
			batch = append(batch, evt)
		default:
			return batch
		}
	}
}

// writer is the background goroutine that batches and writes events to DB
func (s *EventStore) writer() {
	defer s.wg.Done()

	batch := make([]BattleEvent, 0, 64)
	ticker := time.NewTicker(eventFlushEvery)
	defer ticker.Stop()

	for {
		select {
		case evt := <-s.events:
			batch = append(batch, evt)
			if len(batch) >= eventBatchSize {
				s.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				s.flush(batch)
				batch = batch[:0]
			}
		case done := <-s.flushReq:
			batch = s.drain(batch)
			s.flush(batch)
			batch = batch[:0]
			close(done)
		case <-s.stop:
			s.flush(s.drain(batch))
			return
		}
	}
}

// flush writes a batch of events to the database
func (s *EventStore) flush(events []BattleEvent) {
	if s.db == nil || len(events) == 0 {
		return
	}
	tx, err := s.db.conn.Begin()
	if err != nil {
		log.Printf("ledger: begin tx error: %v", err)
		return
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO battle_events
		(battle_id, frame, kind, faction, subject_type, other_type, amount, note, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		log.Printf("ledger: prepare error: %v", err)
		return
	}
	defer stmt.Close()

	for _, evt := range events {
		fx := evt.Effect
		other := ""
		if fx.Other.ID != 0 {
			other = fx.Other.Type.String()
		}
		_, err := stmt.Exec(evt.Battle, fx.Frame, string(fx.Kind), int(fx.Faction),
			fx.Subject.Type.String(), other, fx.Amount, fx.Note,
			evt.Timestamp.Format(sqliteTimeFormat))
		if err != nil {
			log.Printf("ledger: insert error: %v", err)
		}
	}
	if err := tx.Commit(); err != nil {
		log.Printf("ledger: commit error: %v", err)
	}
}

// --- Query methods for the API ---

// StoredSummary aggregates the recorded events of one battle
type StoredSummary struct {
	Battle     string                `json:"battle"`
	Difficulty string                `json:"difficulty"`
	Frames     uint64                `json:"frames"`
	Winner     *Faction              `json:"winner,omitempty"`
	Events     map[string]int        `json:"events"`
	Kills      [2]map[string]int     `json:"kills"`
	Funds      [2]map[string]float64 `json:"funds"`
}

// Summary returns the recorded totals for a battle, or nil when unknown
func (s *EventStore) Summary(battleID string) (*StoredSummary, error) {
	if s.db == nil {
		return nil, nil
	}
	b, err := s.db.GetBattle(battleID)
	if err != nil || b == nil {
		return nil, err
	}
	sum := &StoredSummary{
		Battle:     b.ID,
		Difficulty: b.Difficulty,
		Frames:     b.Frames,
		Events:     make(map[string]int),
	}
	if b.Winner.Valid {
		f := Faction(b.Winner.Int64)
		sum.Winner = &f
	}
	for i := range sum.Kills {
		sum.Kills[i] = make(map[string]int)
		sum.Funds[i] = make(map[string]float64)
	}

	if err := s.eventCounts(sum); err != nil {
		return nil, err
	}
	if err := s.kills(sum); err != nil {
		return nil, err
	}
	if err := s.funds(sum); err != nil {
		return nil, err
	}
	return sum, nil
}

func (s *EventStore) eventCounts(sum *StoredSummary) error {
	rows, err := s.db.conn.Query(`
		SELECT kind, COUNT(*) FROM battle_events
		WHERE battle_id = ?
		GROUP BY kind
	`, sum.Battle)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return err
		}
		sum.Events[kind] = count
	}
	return rows.Err()
}

// kills counts visible deaths by the side that lost the unit
func (s *EventStore) kills(sum *StoredSummary) error {
	rows, err := s.db.conn.Query(`
		SELECT faction, subject_type, COUNT(*) FROM battle_events
		WHERE battle_id = ? AND kind = ?
		GROUP BY faction, subject_type
	`, sum.Battle, string(EffectDeath))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var faction int
		var subject string
		var count int
		if err := rows.Scan(&faction, &subject, &count); err != nil {
			return err
		}
		if faction == int(FactionFriendly) || faction == int(FactionEnemy) {
			sum.Kills[faction][subject] = count
		}
	}
	return rows.Err()
}

// funds totals money moved per side by kind
func (s *EventStore) funds(sum *StoredSummary) error {
	rows, err := s.db.conn.Query(`
		SELECT faction, kind, SUM(amount) FROM battle_events
		WHERE battle_id = ? AND kind IN (?, ?, ?)
		GROUP BY faction, kind
	`, sum.Battle, string(EffectIncome), string(EffectRefund), string(EffectTheft))
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var faction int
		var kind string
		var total float64
		if err := rows.Scan(&faction, &kind, &total); err != nil {
			return err
		}
		if faction == int(FactionFriendly) || faction == int(FactionEnemy) {
			sum.Funds[faction][kind] = total
		}
	}
	return rows.Err()
}
