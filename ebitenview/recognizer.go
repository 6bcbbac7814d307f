// Package ebitenview runs a lightbox.Engine inside an Ebitengine window. It
// turns mouse, touch and wheel input into pinch, pan and tap gestures, draws
// the image with the engine's transform, and can replay scripted gestures.
package ebitenview

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/artchain/lightbox"
)

// --- Constants ---

const (
	maxPointers         = 10  // pointer 0 = mouse, 1-9 = touch
	defaultDragDeadZone = 4.0 // pixels
	wheelZoomStep       = 1.1 // scale factor per wheel notch
	velocitySmoothing   = 0.6 // weight of the newest frame in the velocity estimate
)

// --- Per-pointer state ---

type pointerState struct {
	down   bool
	startX float64
	startY float64
	lastX  float64
	lastY  float64
}

// --- Pinch state ---

type pinchState struct {
	active       bool
	pointer0     int
	pointer1     int
	initialDist  float64
	initialAngle float64
	prevScale    float64
	prevRotation float64
	prevCX       float64
	prevCY       float64
}

// --- Pan state ---

// panState follows the centroid of every pressed pointer. Translation is
// measured from where the touch sequence began; when a pointer joins or
// leaves, the anchor moves so the centroid jump does not move the image.
type panState struct {
	active       bool
	mask         uint16
	base         lightbox.Vec2
	anchor       lightbox.Vec2
	translation  lightbox.Vec2
	prevCentroid lightbox.Vec2
	velocity     lightbox.Vec2
}

// sequenceState spans one touch sequence: first press to last release.
type sequenceState struct {
	multi bool // more than one pointer was down at some point
	lastX float64
	lastY float64
}

// Recognizer turns raw mouse and touch input into pinch, pan and tap
// gestures for a lightbox.GestureHandler.
//
// Pointer 0 is the mouse, pointers 1-9 are touches. Two touches form a
// pinch; the centroid of all pressed pointers drives the pan once it moves
// past the drag dead zone; a sequence that ends without panning or
// pinching is a tap. The mouse wheel zooms about the cursor.
type Recognizer struct {
	handler  lightbox.GestureHandler
	pointers [maxPointers]pointerState
	pinch    pinchState
	pan      panState
	seq      sequenceState
	deadZone float64

	touchMap     [maxPointers]ebiten.TouchID
	touchUsed    [maxPointers]bool
	prevTouchIDs []ebiten.TouchID

	injectQueue []syntheticFrame
}

// NewRecognizer creates a recognizer that reports gestures to h.
func NewRecognizer(h lightbox.GestureHandler) *Recognizer {
	return &Recognizer{handler: h, deadZone: defaultDragDeadZone}
}

// SetDragDeadZone sets the minimum movement in pixels before a pan starts.
func (r *Recognizer) SetDragDeadZone(pixels float64) {
	r.deadZone = pixels
}

// Update polls input for one frame and reports any gestures. dt is the frame
// duration in seconds and is used for pan velocity. Queued synthetic input
// takes precedence over real input.
func (r *Recognizer) Update(dt float64) {
	if !r.processInjectedInput() {
		r.processMousePointer()
		r.processTouchPointers()
		r.processWheel()
	}
	r.recognize(dt)
}

// Reset cancels any gesture in progress, for example when the window loses
// focus and releases will never arrive.
func (r *Recognizer) Reset() {
	if r.pinch.active {
		r.handler.OnPinch(lightbox.PinchEvent{Phase: lightbox.PhaseCancel})
	}
	if r.pan.active {
		r.handler.OnPan(lightbox.PanEvent{
			Phase:        lightbox.PhaseCancel,
			TranslationX: r.pan.translation.X,
			TranslationY: r.pan.translation.Y,
		})
	}
	r.pointers = [maxPointers]pointerState{}
	r.pinch = pinchState{}
	r.pan = panState{}
	r.seq = sequenceState{}
	r.touchUsed = [maxPointers]bool{}
	r.injectQueue = r.injectQueue[:0]
}

// --- Input polling ---

// processMousePointer handles mouse input (pointer 0). Only the left button
// drives gestures.
func (r *Recognizer) processMousePointer() {
	mx, my := ebiten.CursorPosition()
	r.processPointer(0, float64(mx), float64(my), ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft))
}

// processTouchPointers handles touch input (pointers 1-9).
func (r *Recognizer) processTouchPointers() {
	touchIDs := ebiten.AppendTouchIDs(r.prevTouchIDs[:0])
	r.prevTouchIDs = touchIDs

	var activeSlots [maxPointers]bool
	for _, tid := range touchIDs {
		slot := r.touchSlot(tid)
		if slot < 0 {
			continue
		}
		activeSlots[slot] = true
		tx, ty := ebiten.TouchPosition(tid)
		r.processPointer(slot, float64(tx), float64(ty), true)
	}

	// Release any touch slots that are no longer active.
	for i := 1; i < maxPointers; i++ {
		if r.touchUsed[i] && !activeSlots[i] {
			ps := &r.pointers[i]
			if ps.down {
				r.processPointer(i, ps.lastX, ps.lastY, false)
			}
			r.touchUsed[i] = false
			r.touchMap[i] = 0
		}
	}
}

// touchSlot maps an ebiten.TouchID to a pointer slot (1-9).
// Returns the existing slot or allocates a new one. Returns -1 if full.
func (r *Recognizer) touchSlot(tid ebiten.TouchID) int {
	for i := 1; i < maxPointers; i++ {
		if r.touchUsed[i] && r.touchMap[i] == tid {
			return i
		}
	}
	for i := 1; i < maxPointers; i++ {
		if !r.touchUsed[i] {
			r.touchUsed[i] = true
			r.touchMap[i] = tid
			return i
		}
	}
	return -1
}

func (r *Recognizer) processWheel() {
	_, dy := ebiten.Wheel()
	if dy == 0 {
		return
	}
	mx, my := ebiten.CursorPosition()
	r.wheelZoom(float64(mx), float64(my), dy)
}

// wheelZoom reports a complete pinch about (x, y), one wheelZoomStep per
// notch. Ignored while a touch pinch is running.
func (r *Recognizer) wheelZoom(x, y, notches float64) {
	if r.pinch.active || notches == 0 {
		return
	}
	k := math.Pow(wheelZoomStep, notches)
	r.handler.OnPinch(lightbox.PinchEvent{Phase: lightbox.PhaseBegin, ScaleDelta: 1, FocalX: x, FocalY: y})
	r.handler.OnPinch(lightbox.PinchEvent{Phase: lightbox.PhaseUpdate, ScaleDelta: k, FocalX: x, FocalY: y})
	r.handler.OnPinch(lightbox.PinchEvent{Phase: lightbox.PhaseEnd, ScaleDelta: k, FocalX: x, FocalY: y})
}

// processPointer records press, move and release for a single pointer.
// Gestures are derived afterwards by recognize.
func (r *Recognizer) processPointer(pointerID int, x, y float64, pressed bool) {
	ps := &r.pointers[pointerID]
	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.startX, ps.startY = x, y
		ps.lastX, ps.lastY = x, y
	case pressed:
		ps.lastX, ps.lastY = x, y
	case ps.down:
		ps.down = false
		ps.lastX, ps.lastY = x, y
		r.seq.lastX, r.seq.lastY = x, y
	}
}

// --- Gesture recognition ---

func (r *Recognizer) recognize(dt float64) {
	r.detectPinch()
	r.trackPan(dt)
}

// detectPinch reports a pinch while exactly two touch pointers are down.
func (r *Recognizer) detectPinch() {
	var p [2]int
	count := 0
	for i := 1; i < maxPointers; i++ {
		if r.pointers[i].down {
			if count < 2 {
				p[count] = i
			}
			count++
		}
	}

	if r.pinch.active && (count != 2 || p[0] != r.pinch.pointer0 || p[1] != r.pinch.pointer1) {
		r.pinch.active = false
		r.handler.OnPinch(lightbox.PinchEvent{
			Phase:      lightbox.PhaseEnd,
			ScaleDelta: r.pinch.prevScale,
			FocalX:     r.pinch.prevCX,
			FocalY:     r.pinch.prevCY,
			Rotation:   r.pinch.prevRotation,
		})
	}
	if count != 2 {
		return
	}

	ps0 := &r.pointers[p[0]]
	ps1 := &r.pointers[p[1]]
	cx := (ps0.lastX + ps1.lastX) / 2
	cy := (ps0.lastY + ps1.lastY) / 2
	dx := ps1.lastX - ps0.lastX
	dy := ps1.lastY - ps0.lastY
	dist := math.Hypot(dx, dy)
	angle := math.Atan2(dy, dx)

	if !r.pinch.active {
		r.pinch = pinchState{
			active:       true,
			pointer0:     p[0],
			pointer1:     p[1],
			initialDist:  dist,
			initialAngle: angle,
			prevScale:    1,
			prevCX:       cx,
			prevCY:       cy,
		}
		r.seq.multi = true
		r.handler.OnPinch(lightbox.PinchEvent{Phase: lightbox.PhaseBegin, ScaleDelta: 1, FocalX: cx, FocalY: cy})
		return
	}

	scale := 1.0
	if r.pinch.initialDist > 0 {
		scale = dist / r.pinch.initialDist
	}
	rotation := normalizeAngle(angle - r.pinch.initialAngle)
	if scale == r.pinch.prevScale && rotation == r.pinch.prevRotation &&
		cx == r.pinch.prevCX && cy == r.pinch.prevCY {
		return
	}
	r.pinch.prevScale = scale
	r.pinch.prevRotation = rotation
	r.pinch.prevCX = cx
	r.pinch.prevCY = cy
	r.handler.OnPinch(lightbox.PinchEvent{
		Phase:      lightbox.PhaseUpdate,
		ScaleDelta: scale,
		FocalX:     cx,
		FocalY:     cy,
		Rotation:   rotation,
	})
}

// trackPan moves the pan with the centroid of the pressed pointers and ends
// the touch sequence once every pointer is released.
func (r *Recognizer) trackPan(dt float64) {
	mask, n, c := r.activePointers()
	p := &r.pan

	if mask != p.mask {
		switch {
		case mask == 0:
			r.endSequence()
			return
		case p.mask == 0:
			*p = panState{anchor: c, prevCentroid: c}
			r.seq = sequenceState{}
		default:
			p.base = p.translation
			p.anchor = c
			p.prevCentroid = c
		}
		p.mask = mask
		if n > 1 {
			r.seq.multi = true
		}
		return
	}
	if mask == 0 {
		return
	}

	moved := c != p.prevCentroid
	if dt > 0 {
		inst := lightbox.Vec2{X: (c.X - p.prevCentroid.X) / dt, Y: (c.Y - p.prevCentroid.Y) / dt}
		p.velocity.X = velocitySmoothing*inst.X + (1-velocitySmoothing)*p.velocity.X
		p.velocity.Y = velocitySmoothing*inst.Y + (1-velocitySmoothing)*p.velocity.Y
	}
	p.prevCentroid = c
	p.translation = lightbox.Vec2{X: p.base.X + c.X - p.anchor.X, Y: p.base.Y + c.Y - p.anchor.Y}

	if !p.active {
		if math.Hypot(p.translation.X, p.translation.Y) <= r.deadZone {
			return
		}
		p.active = true
		r.firePan(lightbox.PhaseBegin)
		return
	}
	if moved {
		r.firePan(lightbox.PhaseUpdate)
	}
}

// endSequence finishes the pan, or reports a tap when the sequence was a
// single pointer that never left the dead zone.
func (r *Recognizer) endSequence() {
	switch {
	case r.pan.active:
		r.firePan(lightbox.PhaseEnd)
	case !r.seq.multi:
		r.handler.OnTap(lightbox.TapEvent{X: r.seq.lastX, Y: r.seq.lastY})
	}
	r.pan = panState{}
	r.seq = sequenceState{}
}

func (r *Recognizer) firePan(phase lightbox.Phase) {
	r.handler.OnPan(lightbox.PanEvent{
		Phase:        phase,
		TranslationX: r.pan.translation.X,
		TranslationY: r.pan.translation.Y,
		VelocityX:    r.pan.velocity.X,
		VelocityY:    r.pan.velocity.Y,
	})
}

// activePointers returns the set of pressed pointers as a bitmask, their
// count and their centroid.
func (r *Recognizer) activePointers() (mask uint16, n int, centroid lightbox.Vec2) {
	for i := range r.pointers {
		ps := &r.pointers[i]
		if !ps.down {
			continue
		}
		mask |= 1 << i
		n++
		centroid.X += ps.lastX
		centroid.Y += ps.lastY
	}
	if n > 0 {
		centroid.X /= float64(n)
		centroid.Y /= float64(n)
	}
	return mask, n, centroid
}

// normalizeAngle wraps a into (-π, π].
func normalizeAngle(a float64) float64 {
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a
}
