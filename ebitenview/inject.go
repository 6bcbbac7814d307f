package ebitenview

// syntheticPointer is one injected pointer sample in screen coordinates.
type syntheticPointer struct {
	id      int
	x, y    float64
	pressed bool
}

// syntheticFrame holds the samples applied together on one frame. Pointers
// not mentioned keep their previous state.
type syntheticFrame []syntheticPointer

// InjectPress queues a mouse press at the given screen coordinates. The
// event is consumed on the next Update.
func (r *Recognizer) InjectPress(x, y float64) {
	r.injectQueue = append(r.injectQueue, syntheticFrame{{id: 0, x: x, y: y, pressed: true}})
}

// InjectMove queues a mouse move with the button held down. Use this between
// InjectPress and InjectRelease to simulate a drag.
func (r *Recognizer) InjectMove(x, y float64) {
	r.injectQueue = append(r.injectQueue, syntheticFrame{{id: 0, x: x, y: y, pressed: true}})
}

// InjectRelease queues a mouse release at the given screen coordinates.
func (r *Recognizer) InjectRelease(x, y float64) {
	r.injectQueue = append(r.injectQueue, syntheticFrame{{id: 0, x: x, y: y}})
}

// InjectTap queues a press followed by a release at the same point.
// Consumes two frames.
func (r *Recognizer) InjectTap(x, y float64) {
	r.InjectPress(x, y)
	r.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2 moves
// ending exactly at (toX, toY), then the release. Minimum frames is 3.
func (r *Recognizer) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	steps := max(frames-2, 1)
	r.InjectPress(fromX, fromY)
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		r.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	r.InjectRelease(toX, toY)
}

// InjectPinch queues a two-finger pinch centered on (cx, cy) using touch
// pointers 1 and 2 placed horizontally. The finger distance changes from
// fromDist to toDist over frames-2 moves; the fingers are then lifted.
// Minimum frames is 3.
func (r *Recognizer) InjectPinch(cx, cy, fromDist, toDist float64, frames int) {
	steps := max(frames-2, 1)
	r.injectQueue = append(r.injectQueue, pinchFrame(cx, cy, fromDist, true))
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		r.injectQueue = append(r.injectQueue, pinchFrame(cx, cy, fromDist+(toDist-fromDist)*t, true))
	}
	r.injectQueue = append(r.injectQueue, pinchFrame(cx, cy, toDist, false))
}

func pinchFrame(cx, cy, dist float64, pressed bool) syntheticFrame {
	return syntheticFrame{
		{id: 1, x: cx - dist/2, y: cy, pressed: pressed},
		{id: 2, x: cx + dist/2, y: cy, pressed: pressed},
	}
}

// InjectWheel reports a wheel zoom of the given notches about (x, y)
// immediately.
func (r *Recognizer) InjectWheel(x, y, notches float64) {
	r.wheelZoom(x, y, notches)
}

// Pending reports how many synthetic frames are still queued.
func (r *Recognizer) Pending() int {
	return len(r.injectQueue)
}

// processInjectedInput pops one frame from the inject queue and feeds it
// through processPointer. Returns true if a frame was consumed (real input
// should be skipped).
func (r *Recognizer) processInjectedInput() bool {
	if len(r.injectQueue) == 0 {
		return false
	}
	frame := r.injectQueue[0]
	copy(r.injectQueue, r.injectQueue[1:])
	r.injectQueue = r.injectQueue[:len(r.injectQueue)-1]

	for _, p := range frame {
		r.processPointer(p.id, p.x, p.y, p.pressed)
	}
	return true
}
