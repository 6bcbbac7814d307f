// Package lightbox is the gesture engine behind the ArtChain full-screen
// image viewer.
//
// It turns pinch, pan and tap gestures into a [Transform] (scale,
// translation and optional rotation) applied to an image fitted inside a
// fixed viewport, and decides when the viewer should close, when its
// controls should show, and how the image settles after a gesture ends.
//
// # Quick start
//
// Create an [Engine], tell it the viewport size once layout is known, feed
// it gestures, and call [Engine.Update] once per frame:
//
//	eng := lightbox.NewEngine(lightbox.DefaultConfig())
//	eng.SetViewport(lightbox.Size{Width: 390, Height: 844})
//	eng.OnRequestClose(func() { /* leave the viewer */ })
//
//	eng.OnPinch(lightbox.PinchEvent{Phase: lightbox.PhaseBegin, ScaleDelta: 1, FocalX: 195, FocalY: 422})
//	eng.OnPinch(lightbox.PinchEvent{Phase: lightbox.PhaseUpdate, ScaleDelta: 2, FocalX: 195, FocalY: 422})
//	eng.OnPinch(lightbox.PinchEvent{Phase: lightbox.PhaseEnd})
//
//	// every frame
//	eng.Update(dt)
//	m := eng.Transform().Matrix(eng.Viewport())
//
// The ebitenview package recognizes gestures from Ebitengine mouse and touch
// input and renders the image; cmd/lightbox is a standalone viewer.
//
// # Reducer
//
// All decisions are made by [Reduce], a pure function from the current
// [State] and one [Event] to the next state and a set of [Effects]. The
// Engine only stores the state, runs settle animations and dispatches
// effects to callbacks, which keeps every gesture rule testable without a
// window or a clock.
//
// # Gestures
//
// Pinch zooms about the focal point: the content under the fingers stays
// under the fingers. A pan on a zoomed image moves it within bounds; a pan
// on an unzoomed image is a dismiss drag that fades the backdrop and closes
// the viewer when released far or fast enough. A single tap toggles the
// controls (or closes an unzoomed viewer) once the double-tap window has
// passed; a double tap toggles between the minimum and the double-tap zoom
// level.
//
// Pinch and pan may run together. Pinch owns the scale, pan adds its
// translation on top, and the result is clamped so the image always covers
// the viewport along any axis where it is larger than it.
//
// # Configuration
//
// Thresholds and timings live in [Config]. [LoadConfig] reads them from
// YAML and [ApplyEnv] overrides them from LIGHTBOX_* environment variables.
//
// # ECS
//
// The ecs sub-package publishes viewer events into a [Donburi] world.
//
// [Donburi]: https://github.com/yohamta/donburi
package lightbox
