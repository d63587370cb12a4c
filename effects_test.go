package main

import (
	"testing"

	"go.uber.org/mock/gomock"
)

func TestEffectFanoutOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	first := NewMockEffects(ctrl)
	second := NewMockEffects(ctrl)
	fx := Effect{Kind: EffectCapture, Faction: FactionEnemy, Note: "captured"}
	gomock.InOrder(
		first.EXPECT().Notify(fx),
		second.EXPECT().Notify(fx),
	)

	EffectFanout{first, second}.Notify(fx)
}

func TestWorldStampsEffectFrame(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := NewMockEffects(ctrl)
	w := NewWorld(DefaultBattleConfig(), sink)
	advance(w, 3)

	var got Effect
	sink.EXPECT().Notify(gomock.Any()).Do(func(fx Effect) { got = fx }).Times(1)
	w.EndBattle(FactionFriendly)

	if got.Kind != EffectBattleOver || got.Frame != 3 || got.Faction != FactionFriendly {
		t.Errorf("unexpected effect %+v", got)
	}

	// a second end is ignored and must not notify again
	w.EndBattle(FactionEnemy)
}

func TestApplyHitNotifies(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sink := NewMockEffects(ctrl)
	w := NewWorld(DefaultBattleConfig(), sink)
	target := Spawn(w, newStub(TypeVan, FactionFriendly, 100, 300, 38, 16))

	var got []Effect
	sink.EXPECT().Notify(gomock.Any()).Do(func(fx Effect) { got = append(got, fx) }).Times(2)
	w.ApplyHit(&target.Entity, 2, nil)

	if len(got) != 2 {
		t.Fatalf("expected 2 effects, got %d", len(got))
	}
	if got[0].Kind != EffectHit || got[0].Amount != 2 {
		t.Errorf("expected a hit for 2, got %+v", got[0])
	}
	if got[1].Kind != EffectEnergy || got[1].Amount != 3 {
		t.Errorf("expected energy 3, got %+v", got[1])
	}
}

func TestEffectBufferDrain(t *testing.T) {
	var b EffectBuffer
	b.Notify(Effect{Kind: EffectHit})
	b.Notify(Effect{Kind: EffectDeath})
	if b.Len() != 2 {
		t.Fatalf("expected 2 buffered effects, got %d", b.Len())
	}
	out := b.Drain()
	if len(out) != 2 || out[0].Kind != EffectHit || out[1].Kind != EffectDeath {
		t.Errorf("effects should drain in order, got %+v", out)
	}
	if b.Len() != 0 {
		t.Error("drain should empty the buffer")
	}
}
