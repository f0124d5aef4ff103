// Package ecs provides ECS adapters for tempo sessions.
//
// [NewDonburiSink] publishes behaviour lifecycle events (bound, unbound,
// completed) into a [Donburi] world as typed events. [GestureBridge] goes the
// other way: gesture triggers published by input systems in the world are
// queued on the tempo node carrying the same entity ID.
//
// Usage:
//
//	session.SetEventSink(ecs.NewDonburiSink(world))
//	bridge := ecs.NewGestureBridge(world, session)
//	// each frame, before session.Update():
//	bridge.Poll()
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
