package ecs

import (
	"github.com/artchain/lightbox"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ViewerEventType is the Donburi event type for lightbox viewer events.
var ViewerEventType = events.NewEventType[lightbox.ViewerEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on ViewerEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) lightbox.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitViewerEvent(event lightbox.ViewerEvent) {
	ViewerEventType.Publish(s.world, event)
}
