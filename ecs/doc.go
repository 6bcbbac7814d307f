// Package ecs provides ECS adapters for lightbox viewer events.
//
// The primary adapter is [NewDonburiSink], which forwards viewer events
// (close requests, controls visibility, settled transforms) into a [Donburi]
// world as typed events. Subscribe to [ViewerEventType] in your ECS systems
// to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	eng := lightbox.NewEngine(cfg, lightbox.WithEventSink(sink))
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
