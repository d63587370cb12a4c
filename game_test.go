package main

import (
	"sync"
	"testing"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// fakeSub collects every binary frame it is sent
type fakeSub struct {
	mu     sync.Mutex
	frames [][]byte
}

func (s *fakeSub) SendBinary(data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.frames = append(s.frames, data)
}

func (s *fakeSub) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.frames)
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	cfg := DefaultBattleConfig()
	cfg.ConvoyEvery = 0
	return NewGame("test-battle", cfg, nil)
}

func TestNewGameSummary(t *testing.T) {
	g := newTestGame(t)
	s := g.Summary()

	if s.ID != "test-battle" || s.Frame != 0 || s.Over {
		t.Errorf("unexpected summary header %+v", s)
	}
	friendly, enemy := s.Sides[FactionFriendly], s.Sides[FactionEnemy]
	if friendly.Bunkers != 3 || enemy.Bunkers != 4 {
		t.Errorf("expected 3 and 4 bunkers, got %d and %d", friendly.Bunkers, enemy.Bunkers)
	}
	if friendly.Funds != DefaultFunds || enemy.Funds != DefaultFunds {
		t.Errorf("unexpected starting funds %v/%v", friendly.Funds, enemy.Funds)
	}
	if friendly.Units[TypeHelicopter.String()] != 1 || enemy.Units[TypeTurret.String()] != 2 {
		t.Errorf("unexpected unit counts %v %v", friendly.Units, enemy.Units)
	}
	if _, ok := friendly.Units[TypeChain.String()]; ok {
		t.Error("chains are not counted as units")
	}
}

func TestGameFlushesOnBattleOver(t *testing.T) {
	g := newTestGame(t)
	sub := &fakeSub{}
	if !g.Subscribe(sub) {
		t.Fatal("subscribe failed")
	}

	g.world.EndBattle(FactionEnemy)
	if over := g.Step(); !over {
		t.Fatal("step should report the battle over")
	}
	if sub.count() != 1 {
		t.Fatalf("expected one batch, got %d", sub.count())
	}

	var batch EffectBatch
	if err := msgpack.Unmarshal(sub.frames[0], &batch); err != nil {
		t.Fatalf("decode batch: %v", err)
	}
	if batch.Battle != "test-battle" || batch.Frame != 1 {
		t.Errorf("unexpected batch header %s/%d", batch.Battle, batch.Frame)
	}
	found := false
	for _, fx := range batch.Effects {
		if fx.Kind == EffectBattleOver && fx.Faction == FactionEnemy {
			found = true
		}
	}
	if !found {
		t.Errorf("battle_over effect missing from %+v", batch.Effects)
	}

	winner, ok := g.Winner()
	if !ok || winner != FactionEnemy {
		t.Errorf("expected enemy win, got %s %v", winner, ok)
	}
}

func TestGameBatchesOnBroadcastRate(t *testing.T) {
	g := newTestGame(t)
	sub := &fakeSub{}
	g.Subscribe(sub)
	every := FPS / BroadcastRate

	for i := 0; i < every*4; i++ {
		g.world.notify(Effect{Kind: EffectRepair})
		g.Step()
	}
	if sub.count() != 4 {
		t.Errorf("expected 4 batches, got %d", sub.count())
	}
}

func TestGameSubscribeLimit(t *testing.T) {
	g := newTestGame(t)
	for i := 0; i < maxSpectators; i++ {
		if !g.Subscribe(&fakeSub{}) {
			t.Fatalf("subscribe %d should succeed", i)
		}
	}
	extra := &fakeSub{}
	if g.Subscribe(extra) {
		t.Error("battle should be full")
	}
	if g.SpectatorCount() != maxSpectators {
		t.Errorf("expected %d spectators, got %d", maxSpectators, g.SpectatorCount())
	}

	g.Unsubscribe(extra)
	if g.SpectatorCount() != maxSpectators {
		t.Error("unsubscribing a stranger changes nothing")
	}
}

func TestGameInfo(t *testing.T) {
	g := newTestGame(t)
	g.Subscribe(&fakeSub{})
	g.Step()

	info := g.Info()
	if info.ID != "test-battle" || info.Difficulty != DifficultyEasy {
		t.Errorf("unexpected info %+v", info)
	}
	if info.Frame != 1 || info.Spectators != 1 || info.Over {
		t.Errorf("unexpected info %+v", info)
	}
}

func TestGameRunStopsWhenOver(t *testing.T) {
	g := newTestGame(t)
	done := make(chan struct{})
	g.finished = func(*Game) { close(done) }
	g.world.EndBattle(FactionFriendly)

	go g.Run(100)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("battle loop should stop once the battle is over")
	}
	g.Stop()
}
