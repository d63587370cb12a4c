package main

import (
	"log"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	BroadcastRate = 10 // effect batches per second
	maxSpectators = 64
)

// Subscriber receives encoded effect batches
type Subscriber interface {
	SendBinary(data []byte)
}

// Game runs one battle on its own ticker and fans its effects out to
// spectators in batches
type Game struct {
	ID string

	mu       sync.Mutex
	world    *World
	buffer   EffectBuffer
	subs     map[Subscriber]bool
	fps      int
	running  bool
	stop     chan struct{}
	done     chan struct{}
	finished func(g *Game)
}

// NewGame sets up a battle. Effects are buffered for spectators and also
// handed to rec when it is not nil. The game counts as running until Stop,
// whether or not Run has started.
func NewGame(id string, cfg BattleConfig, rec Effects) *Game {
	g := &Game{
		ID:      id,
		subs:    make(map[Subscriber]bool),
		fps:     FPS,
		running: true,
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	fx := EffectFanout{&g.buffer}
	if rec != nil {
		fx = append(fx, rec)
	}
	g.world = NewWorld(cfg, fx)
	SetupBattle(g.world)
	return g
}

// Run drives the battle loop at fps frames per second until the battle is
// over or Stop is called
func (g *Game) Run(fps int) {
	g.mu.Lock()
	if fps > 0 {
		g.fps = fps
	}
	rate := g.fps
	g.mu.Unlock()

	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if over := g.Step(); over {
				g.Stop()
				return
			}
		case <-g.stop:
			return
		}
	}
}

// Stop terminates the battle loop. The first call runs the finished
// callback before returning; later calls are no-ops.
func (g *Game) Stop() {
	g.mu.Lock()
	if !g.running {
		g.mu.Unlock()
		return
	}
	g.running = false
	close(g.stop)
	g.mu.Unlock()

	if g.finished != nil {
		g.finished(g)
	}
	close(g.done)
}

// Wait blocks until a stopped game has run its finished callback
func (g *Game) Wait() {
	<-g.done
}

// Step advances the battle one frame and reports whether it is over
func (g *Game) Step() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.world.Step()
	frame := g.world.Frame()
	over := g.world.BattleOver()

	every := uint64(max(1, g.fps/BroadcastRate))
	if frame%every == 0 || over {
		g.flush(frame)
	}
	return over
}

// flush encodes pending effects and sends them to every spectator
func (g *Game) flush(frame uint64) {
	if g.buffer.Len() == 0 {
		return
	}
	batch := EffectBatch{Battle: g.ID, Frame: frame, Effects: g.buffer.Drain()}
	if len(g.subs) == 0 {
		return
	}
	data, err := msgpack.Marshal(&batch)
	if err != nil {
		log.Printf("battle %s: encode error: %v", g.ID, err)
		return
	}
	for s := range g.subs {
		s.SendBinary(data)
	}
}

// Subscribe adds a spectator. It returns false when the battle is full.
func (g *Game) Subscribe(s Subscriber) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if len(g.subs) >= maxSpectators {
		return false
	}
	g.subs[s] = true
	return true
}

// Unsubscribe removes a spectator
func (g *Game) Unsubscribe(s Subscriber) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.subs, s)
}

// SpectatorCount returns the number of subscribed spectators
func (g *Game) SpectatorCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.subs)
}

// Frame returns the current battle frame
func (g *Game) Frame() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.world.Frame()
}

// Winner returns the winning side once the battle is over
func (g *Game) Winner() (Faction, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.world.Winner()
}

// Info returns the list entry for this battle
func (g *Game) Info() BattleInfo {
	g.mu.Lock()
	defer g.mu.Unlock()
	return BattleInfo{
		ID:         g.ID,
		Difficulty: g.world.Config.Difficulty,
		Frame:      g.world.Frame(),
		Spectators: len(g.subs),
		Over:       g.world.BattleOver(),
	}
}

// Summary returns a live snapshot of both sides
func (g *Game) Summary() BattleSummary {
	g.mu.Lock()
	defer g.mu.Unlock()

	w := g.world
	s := BattleSummary{
		ID:               g.ID,
		Frame:            w.Frame(),
		Over:             w.BattleOver(),
		ProductionHalted: w.ProductionHalted(),
	}
	for _, f := range []Faction{FactionFriendly, FactionEnemy} {
		s.Sides[f] = SideSummary{Funds: w.Ledger.Funds(f), Units: make(map[string]int)}
	}
	for t := TypeTank; t < numEntityTypes; t++ {
		switch t {
		case TypeGunfire, TypeShrapnel, TypeChain:
			continue
		}
		for _, e := range w.Registry.Collection(t) {
			if e.Dead {
				continue
			}
			if t == TypeBunker || t == TypeSuperBunker {
				s.Sides[e.Faction].Bunkers++
			}
			s.Sides[e.Faction].Units[t.String()]++
		}
	}
	return s
}
