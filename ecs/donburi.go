package ecs

import (
	"github.com/phanxgames/tempo"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// EffectEventType is the Donburi event type for tempo behaviour lifecycle
// events. Subscribe to this in your ECS systems to learn when effects finish.
var EffectEventType = events.NewEventType[tempo.EffectEvent]()

// GestureEventType is the Donburi event type input systems publish gesture
// triggers to. Gesture.EntityID selects the receiving node.
var GestureEventType = events.NewEventType[tempo.Gesture]()

type donburiSink struct {
	world donburi.World
}

var _ tempo.EventSink = (*donburiSink)(nil)

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Events are published to EffectEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) tempo.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEffectEvent(event tempo.EffectEvent) {
	EffectEventType.Publish(s.world, event)
}

// GestureBridge delivers gestures published to GestureEventType to the
// session's nodes.
type GestureBridge struct {
	world     donburi.World
	session   *tempo.Session
	handler   func(donburi.World, tempo.Gesture)
	delivered int
	dropped   int
}

// NewGestureBridge subscribes to GestureEventType in world. Gestures are
// only routed when Poll runs, which keeps delivery on the game's tick.
func NewGestureBridge(world donburi.World, session *tempo.Session) *GestureBridge {
	b := &GestureBridge{world: world, session: session}
	b.handler = b.route
	GestureEventType.Subscribe(world, b.handler)
	return b
}

// Poll routes every queued gesture to its node. Gestures for entities with
// no attached node are dropped.
func (b *GestureBridge) Poll() {
	GestureEventType.ProcessEvents(b.world)
}

// Close stops receiving gestures.
func (b *GestureBridge) Close() {
	GestureEventType.Unsubscribe(b.world, b.handler)
}

// Delivered returns the number of gestures routed to a node.
func (b *GestureBridge) Delivered() int {
	return b.delivered
}

// Dropped returns the number of gestures with no matching node.
func (b *GestureBridge) Dropped() int {
	return b.dropped
}

func (b *GestureBridge) route(_ donburi.World, g tempo.Gesture) {
	if b.session.DeliverGesture(g) {
		b.delivered++
	} else {
		b.dropped++
	}
}
