package ecs

import (
	"testing"

	"github.com/artchain/lightbox"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestDonburiSink_EmitViewerEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []lightbox.ViewerEvent
	ViewerEventType.Subscribe(world, func(w donburi.World, e lightbox.ViewerEvent) {
		received = append(received, e)
	})

	sink.EmitViewerEvent(lightbox.ViewerEvent{
		Type:      lightbox.ViewerEventSettled,
		Transform: lightbox.Transform{Scale: 2.5, TranslateX: 40},
	})
	sink.EmitViewerEvent(lightbox.ViewerEvent{Type: lightbox.ViewerEventControls, Visible: true})

	if len(received) != 0 {
		t.Fatalf("events delivered before processing: %d", len(received))
	}
	ViewerEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e0 := received[0]; e0.Type != lightbox.ViewerEventSettled || e0.Transform.Scale != 2.5 {
		t.Errorf("event 0: %+v", e0)
	}
	if e1 := received[1]; e1.Type != lightbox.ViewerEventControls || !e1.Visible {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiSink_FromEngine(t *testing.T) {
	world := donburi.NewWorld()
	eng := lightbox.NewEngine(lightbox.DefaultConfig(), lightbox.WithEventSink(NewDonburiSink(world)))
	eng.SetViewport(lightbox.Size{Width: 400, Height: 800})

	var closes int
	ViewerEventType.Subscribe(world, func(w donburi.World, e lightbox.ViewerEvent) {
		if e.Type == lightbox.ViewerEventClose {
			closes++
		}
	})

	// A single tap on an unzoomed image closes once the double-tap window passes.
	eng.OnTap(lightbox.TapEvent{X: 10, Y: 10})
	eng.Update(0.5)
	events.ProcessAllEvents(world)

	if closes != 1 {
		t.Errorf("close events = %d, want 1", closes)
	}
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	ViewerEventType.Subscribe(world, func(w donburi.World, e lightbox.ViewerEvent) {
		count1++
	})
	ViewerEventType.Subscribe(world, func(w donburi.World, e lightbox.ViewerEvent) {
		count2++
	})

	sink.EmitViewerEvent(lightbox.ViewerEvent{Type: lightbox.ViewerEventClose})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
