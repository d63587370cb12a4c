package main

import (
	"log"
	"sort"
	"sync"
)

const maxBattles = 100

// BattleManager handles creation and lookup of running battles
type BattleManager struct {
	mu      sync.RWMutex
	battles map[string]*Game
	store   *EventStore
	fps     int
}

// NewBattleManager creates a BattleManager. store may be nil.
func NewBattleManager(store *EventStore, fps int) *BattleManager {
	if fps <= 0 {
		fps = FPS
	}
	return &BattleManager{
		battles: make(map[string]*Game),
		store:   store,
		fps:     fps,
	}
}

// CreateBattle starts a new battle. Returns nil if the limit is reached.
func (bm *BattleManager) CreateBattle(cfg BattleConfig) *Game {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if len(bm.battles) >= maxBattles {
		return nil
	}

	id := GenerateUUID()
	var rec Effects
	if bm.store != nil {
		rec = bm.store.Recorder(id)
		if err := bm.store.RecordBattle(id, cfg); err != nil {
			log.Printf("battle %s: record error: %v", id, err)
		}
	}
	game := NewGame(id, cfg, rec)
	game.finished = bm.finish
	bm.battles[id] = game
	go game.Run(bm.fps)
	log.Printf("battle %s: started (%s, seed %d)", id, cfg.Difficulty, cfg.Seed)
	return game
}

// finish runs once a battle loop has stopped. The battle leaves the
// manager; its outcome stays in the ledger.
func (bm *BattleManager) finish(g *Game) {
	bm.mu.Lock()
	if bm.battles[g.ID] == g {
		delete(bm.battles, g.ID)
	}
	bm.mu.Unlock()

	frame := g.Frame()
	var winner *Faction
	if f, ok := g.Winner(); ok {
		winner = &f
		log.Printf("battle %s: %s side won at frame %d", g.ID, f, frame)
	} else {
		log.Printf("battle %s: stopped at frame %d", g.ID, frame)
	}
	if bm.store != nil {
		if err := bm.store.EndBattle(g.ID, frame, winner); err != nil {
			log.Printf("battle %s: record error: %v", g.ID, err)
		}
	}
}

// GetBattle returns a battle by ID
func (bm *BattleManager) GetBattle(id string) *Game {
	bm.mu.RLock()
	defer bm.mu.RUnlock()
	return bm.battles[id]
}

// RemoveBattle stops and forgets a battle
func (bm *BattleManager) RemoveBattle(id string) {
	bm.mu.Lock()
	g, ok := bm.battles[id]
	delete(bm.battles, id)
	bm.mu.Unlock()
	if ok {
		g.Stop()
	}
}

// ListBattles returns info about the running battles sorted by ID
func (bm *BattleManager) ListBattles() []BattleInfo {
	bm.mu.RLock()
	games := make([]*Game, 0, len(bm.battles))
	for _, g := range bm.battles {
		games = append(games, g)
	}
	bm.mu.RUnlock()

	list := make([]BattleInfo, 0, len(games))
	for _, g := range games {
		list = append(list, g.Info())
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// StopAll stops every running battle and waits until each outcome is
// recorded
func (bm *BattleManager) StopAll() {
	bm.mu.RLock()
	games := make([]*Game, 0, len(bm.battles))
	for _, g := range bm.battles {
		games = append(games, g)
	}
	bm.mu.RUnlock()

	for _, g := range games {
		g.Stop()
	}
	for _, g := range games {
		g.Wait()
	}
}
