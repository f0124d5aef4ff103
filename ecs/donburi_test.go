package ecs

import (
	"testing"

	"github.com/phanxgames/tempo"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_LifecycleEvents(t *testing.T) {
	world := donburi.NewWorld()
	s := tempo.NewSession()
	s.SetEventSink(NewDonburiSink(world))

	var received []tempo.EffectEvent
	EffectEventType.Subscribe(world, func(w donburi.World, e tempo.EffectEvent) {
		received = append(received, e)
	})

	n := tempo.NewNode("hero")
	n.EntityID = 7
	m := s.Attach(n)

	fade, err := tempo.NewFadeIn(s, tempo.FadeOpacity, 0.5, nil)
	if err != nil {
		t.Fatal(err)
	}
	m.Add(fade)
	s.Tick(0.25)
	s.Tick(0.25)
	m.Remove(fade)

	// Events are queued until processed.
	EffectEventType.ProcessEvents(world)

	want := []tempo.EffectEventKind{tempo.EffectBound, tempo.EffectCompleted, tempo.EffectUnbound}
	if len(received) != len(want) {
		t.Fatalf("expected %d events, got %d", len(want), len(received))
	}
	for i, e := range received {
		if e.Kind != want[i] {
			t.Errorf("event %d: kind = %d, want %d", i, e.Kind, want[i])
		}
		if e.EntityID != 7 || e.NodeID != n.ID {
			t.Errorf("event %d: entity/node = %d/%d", i, e.EntityID, e.NodeID)
		}
		if e.Behaviour != tempo.Behaviour(fade) {
			t.Errorf("event %d: wrong behaviour %T", i, e.Behaviour)
		}
	}
}

func TestGestureBridge_RoutesByEntity(t *testing.T) {
	world := donburi.NewWorld()
	s := tempo.NewSession()
	bridge := NewGestureBridge(world, s)
	defer bridge.Close()

	n := tempo.NewNode("card")
	n.EntityID = 42
	m := s.Attach(n)

	swipe, err := tempo.NewSwipe(s, 10, 1, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	m.Add(swipe)

	GestureEventType.Publish(world, tempo.Gesture{Kind: tempo.GestureSwipe, DX: 100, EntityID: 42})
	GestureEventType.Publish(world, tempo.Gesture{Kind: tempo.GestureTap, EntityID: 99})

	if n.PendingGestures() != 0 {
		t.Fatal("gestures should wait for Poll")
	}

	bridge.Poll()

	if bridge.Delivered() != 1 || bridge.Dropped() != 1 {
		t.Fatalf("delivered/dropped = %d/%d, want 1/1", bridge.Delivered(), bridge.Dropped())
	}
	if n.PendingGestures() != 1 {
		t.Fatalf("pending gestures = %d, want 1", n.PendingGestures())
	}

	s.Tick(0.25)
	s.Tick(0.25)
	if swipe.Count() != 1 {
		t.Errorf("swipe count = %d, want 1", swipe.Count())
	}
	if n.X != 100 {
		t.Errorf("X = %v, want 100", n.X)
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	EffectEventType.Subscribe(world, func(w donburi.World, e tempo.EffectEvent) {
		count1++
	})
	EffectEventType.Subscribe(world, func(w donburi.World, e tempo.EffectEvent) {
		count2++
	})

	sink.EmitEffectEvent(tempo.EffectEvent{Kind: tempo.EffectCompleted})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
