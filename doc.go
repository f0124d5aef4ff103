// Package tempo animates game object properties over time for [Ebitengine]
// games.
//
// Tempo decides what value a property holds at each tick and when delayed
// callbacks run. Drawing is left to the game: copy a [Node]'s fields into
// your sprites after [Session.Update].
//
// # Quick start
//
//	session := tempo.NewSession()
//	hero := tempo.NewNode("hero")
//	behaviours := session.Attach(hero)
//
//	fade, _ := tempo.NewFadeIn(session, tempo.FadeZoomAndFade, 0.4, ease.OutBack)
//	behaviours.Add(fade)
//
//	// in ebiten.Game.Update:
//	session.Update()
//
// # Tweens
//
// [Tween] animates any [Property] of any object type from its current value
// to a target. One managed tween runs per (object, property) pair; starting
// another replaces it without running the old completion callback.
// [TweenFree] starts tweens that stand apart from that rule. Tweens hold
// their target weakly and stop when it is collected or disposed. Easing
// functions come from [gween/ease].
//
// # Timeline
//
// [Timeline] runs one-shot callbacks after a delay, in expiry order. A
// callback never runs inside Schedule; a zero delay runs on the next tick.
//
// # Behaviours
//
// A [BehaviourManager] holds the behaviours attached to one node and updates
// them in insertion order. Built in: [FadeIn], [FadeOut], [Blink],
// [JitterBehaviour], [DoubleTap] and [Swipe]. Effects can also be described
// in YAML and built with [LoadPresets].
//
// # Scripts
//
// A [ScriptRunner] replays taps, swipes and effect commands across ticks for
// automated checks of an effect setup. Attach one with
// [Session.SetScriptRunner].
//
// # Debug mode
//
// [Session.SetDebugMode] logs per-tick timing and counts, and warns when a
// session holds an unusual number of tweens or behaviours.
//
// Tempo is single-threaded. Drive a Session from one goroutine only.
//
// [Ebitengine]: https://ebitengine.org
// [gween/ease]: https://github.com/tanema/gween
package tempo
