package ecs

import (
	"github.com/phanxgames/reveal"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// RevealEventType is the Donburi event type for reveal boundary events.
// Subscribe to this in your ECS systems to receive pointer and ripple events.
var RevealEventType = events.NewEventType[reveal.Event]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world.
// Events are published to RevealEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiSink(world donburi.World) reveal.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event reveal.Event) {
	RevealEventType.Publish(s.world, event)
}
