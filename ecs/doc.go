// Package ecs provides ECS adapters for reveal's boundary events.
//
// The primary adapter is [NewDonburiSink], which bridges reveal events
// (pointer enter, move and leave, press start and end, ripple end) into a
// [Donburi] world as typed events. Subscribe to [RevealEventType] in your
// ECS systems to receive them.
//
// Usage:
//
//	sink := ecs.NewDonburiSink(world)
//	cfg := reveal.NewConfigBuilder().WithEventSink(sink).Build()
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
