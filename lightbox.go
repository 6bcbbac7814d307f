package lightbox

import "math"

// Vec2 is a 2D vector used for points, offsets and velocities throughout
// the API.
type Vec2 struct {
	X, Y float64
}

// Size is the on-screen rendering area of a viewer. It is measured once at
// layout time and stays fixed for the viewer session.
type Size struct {
	Width, Height float64
}

// Center returns the midpoint of the viewport.
func (s Size) Center() Vec2 {
	return Vec2{X: s.Width / 2, Y: s.Height / 2}
}

// Empty reports whether the viewport has no area.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Phase identifies where a continuous gesture is in its lifecycle.
type Phase uint8

const (
	PhaseBegin  Phase = iota // first update of a gesture
	PhaseUpdate              // gesture moved
	PhaseEnd                 // fingers lifted
	PhaseCancel              // the platform took the touch sequence away
)

func (p Phase) String() string {
	switch p {
	case PhaseBegin:
		return "begin"
	case PhaseUpdate:
		return "update"
	case PhaseEnd:
		return "end"
	case PhaseCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Event is a gesture or clock input consumed by Reduce. The concrete types
// are PinchEvent, PanEvent, TapEvent and TickEvent.
type Event interface {
	event()
}

// PinchEvent reports a two-finger pinch. ScaleDelta is the multiplier since
// the pinch began and Focal is the gesture center in viewport coordinates.
// Rotation is the angle change since the pinch began, in radians; it is
// ignored unless Config.EnableRotation is set.
type PinchEvent struct {
	Phase      Phase
	ScaleDelta float64
	FocalX     float64
	FocalY     float64
	Rotation   float64
}

// PanEvent reports a one-finger drag. Translation is measured from where
// the pan began; velocity is in pixels per second.
type PanEvent struct {
	Phase        Phase
	TranslationX float64
	TranslationY float64
	VelocityX    float64
	VelocityY    float64
}

// TapEvent reports a finger lifted without dragging, in viewport
// coordinates. Single and double taps are told apart by Reduce.
type TapEvent struct {
	X, Y float64
}

// TickEvent advances timers by DT seconds.
type TickEvent struct {
	DT float64
}

func (PinchEvent) event() {}
func (PanEvent) event()   {}
func (TapEvent) event()   {}
func (TickEvent) event()  {}

// GestureHandler receives recognized gestures from a platform input layer.
// The engine implements it; tests and the Ebitengine shell drive it.
type GestureHandler interface {
	OnPinch(PinchEvent)
	OnPan(PanEvent)
	OnTap(TapEvent)
}

// ViewerEventType identifies a discrete event emitted by the engine.
type ViewerEventType uint8

const (
	ViewerEventClose    ViewerEventType = iota // the viewer asked to be closed
	ViewerEventControls                        // overlay controls were shown or hidden
	ViewerEventSettled                         // a settling animation finished
)

// ViewerEvent carries a discrete engine event to an EventSink.
type ViewerEvent struct {
	Type      ViewerEventType
	Visible   bool      // valid for ViewerEventControls
	Transform Transform // transform at the time of the event
}

// EventSink is the interface for optional forwarding of viewer events,
// for example into an ECS world.
type EventSink interface {
	EmitViewerEvent(event ViewerEvent)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
