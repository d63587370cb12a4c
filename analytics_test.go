package main

import "testing"

func newTestStore(t *testing.T) *EventStore {
	t.Helper()
	s := NewEventStore(openTestDB(t))
	t.Cleanup(s.Stop)
	return s
}

func TestEventStoreSummary(t *testing.T) {
	s := newTestStore(t)
	if err := s.RecordBattle("b1", DefaultBattleConfig()); err != nil {
		t.Fatalf("record: %v", err)
	}
	rec := s.Recorder("b1")

	tank := EntityRef{ID: 1, Type: TypeTank, Faction: FactionEnemy}
	van := EntityRef{ID: 2, Type: TypeVan, Faction: FactionFriendly}
	frag := EntityRef{ID: 3, Type: TypeShrapnel, Faction: FactionEnemy}
	rec.Notify(Effect{Kind: EffectDeath, Subject: tank, Other: van})
	rec.Notify(Effect{Kind: EffectDeath, Subject: van, Silent: true})
	rec.Notify(Effect{Kind: EffectDeath, Subject: frag})
	rec.Notify(Effect{Kind: EffectHit, Subject: tank, Amount: 2})
	rec.Notify(Effect{Kind: EffectIncome, Faction: FactionFriendly, Amount: 2})
	rec.Notify(Effect{Kind: EffectIncome, Faction: FactionFriendly, Amount: 3})
	rec.Notify(Effect{Kind: EffectTheft, Faction: FactionEnemy, Amount: 20})

	winner := FactionFriendly
	if err := s.EndBattle("b1", 900, &winner); err != nil {
		t.Fatalf("end: %v", err)
	}
	s.Flush()

	sum, err := s.Summary("b1")
	if err != nil || sum == nil {
		t.Fatalf("summary: %v %v", sum, err)
	}
	if sum.Frames != 900 || sum.Winner == nil || *sum.Winner != FactionFriendly {
		t.Errorf("unexpected outcome %d %v", sum.Frames, sum.Winner)
	}
	if sum.Events["death"] != 1 || sum.Events["hit"] != 0 || sum.Events["income"] != 2 {
		t.Errorf("unexpected event counts %v", sum.Events)
	}
	if sum.Kills[FactionEnemy]["tank"] != 1 || len(sum.Kills[FactionFriendly]) != 0 {
		t.Errorf("unexpected kills %v", sum.Kills)
	}
	if sum.Funds[FactionFriendly]["income"] != 5 || sum.Funds[FactionEnemy]["theft"] != 20 {
		t.Errorf("unexpected funds %v", sum.Funds)
	}
}

func TestEventStoreUnknownBattle(t *testing.T) {
	s := newTestStore(t)
	sum, err := s.Summary("nope")
	if err != nil || sum != nil {
		t.Errorf("expected nothing for an unknown battle, got %v %v", sum, err)
	}
}

func TestEventStoreWithoutDB(t *testing.T) {
	s := NewEventStore(nil)
	defer s.Stop()

	s.Track("b1", Effect{Kind: EffectBattleOver})
	s.Flush()
	if err := s.RecordBattle("b1", DefaultBattleConfig()); err != nil {
		t.Errorf("record without a database: %v", err)
	}
	if sum, err := s.Summary("b1"); sum != nil || err != nil {
		t.Errorf("no summaries without a database, got %v %v", sum, err)
	}
}

func TestEventStoreDropsWhenFull(t *testing.T) {
	// no writer drains this queue
	s := &EventStore{events: make(chan BattleEvent, 1)}

	s.Track("b1", Effect{Kind: EffectCapture})
	s.Track("b1", Effect{Kind: EffectCapture})
	s.Track("b1", Effect{Kind: EffectHit})
	if s.Dropped() != 1 {
		t.Errorf("expected one dropped event, got %d", s.Dropped())
	}
}
