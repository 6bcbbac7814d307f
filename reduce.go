package lightbox

import "math"

// Reduce applies one event to s and returns the new state along with the
// side effects the caller must carry out. It is pure: the same inputs
// always give the same outputs, and time only advances through TickEvent.
//
// Degenerate input (non-finite numbers, a zero or negative pinch scale, an
// unmeasured viewport) leaves s unchanged and sets Effects.Dropped.
func Reduce(cfg Config, vp Size, s State, ev Event) (State, Effects) {
	if s.Closed {
		return s, Effects{}
	}
	switch e := ev.(type) {
	case PinchEvent:
		return reducePinch(cfg, vp, s, e)
	case PanEvent:
		return reducePan(cfg, vp, s, e)
	case TapEvent:
		return reduceTap(cfg, vp, s, e)
	case TickEvent:
		return reduceTick(cfg, vp, s, e)
	}
	return s, Effects{}
}

// beginGesture opens a session for a new touch sequence or rebases the
// running one so a joining gesture starts from the committed transform.
func beginGesture(s State) State {
	if !s.session.active {
		s.session = gestureSession{
			active:      true,
			start:       s.Transform,
			scaleDelta:  1,
			scaleOrigin: 1,
		}
		return s
	}
	ss := &s.session
	ss.start = s.Transform
	ss.scaleOrigin = ss.scaleDelta
	ss.rotOrigin = ss.rotation
	ss.panOrigin = ss.pan
	return s
}

// compose computes the transform produced by the session's current pinch
// and pan contributions.
func (ss gestureSession) compose(cfg Config, vp Size) Transform {
	t := ss.start
	if k := ss.scaleDelta / ss.scaleOrigin; k != 1 || ss.rotation != ss.rotOrigin {
		var dRot float64
		if cfg.EnableRotation {
			dRot = (ss.rotation - ss.rotOrigin) * 180 / math.Pi
		}
		t = zoomAbout(cfg, ss.start, ss.start.Scale*k, dRot, ss.focal)
	}

	pan := Vec2{X: ss.pan.X - ss.panOrigin.X, Y: ss.pan.Y - ss.panOrigin.Y}
	switch ss.mode {
	case panDismiss:
		t.TranslateY = ss.start.TranslateY + pan.Y
		return t
	case panZoomed:
		t.TranslateX += pan.X
		t.TranslateY += pan.Y
	}
	return t.Clamp(vp)
}

// zoomAbout scales (and optionally rotates) from to the given scale while
// keeping the content point under focal fixed on screen. focal is relative
// to the viewport center. The result is not clamped.
func zoomAbout(cfg Config, from Transform, scale, dRot float64, focal Vec2) Transform {
	scale = clamp(scale, cfg.MinScale, cfg.MaxScale)
	ratio := scale / from.Scale
	off := rotate(Vec2{X: from.TranslateX - focal.X, Y: from.TranslateY - focal.Y}, dRot)
	return Transform{
		Scale:      scale,
		TranslateX: focal.X + ratio*off.X,
		TranslateY: focal.Y + ratio*off.Y,
		Rotation:   from.Rotation + dRot,
	}
}

// endGesture closes the session once no gesture is active any more and
// decides where the transform settles.
func endGesture(cfg Config, vp Size, s State, eff Effects) (State, Effects) {
	ss := s.session
	if ss.pinching || ss.panning {
		return s, eff
	}
	s.session = gestureSession{}

	if ss.mode == panDismiss {
		if ShouldDismiss(cfg, s.Transform.TranslateY, ss.velocity.Y) {
			return closeViewer(s, eff)
		}
		eff.Animate = &Animation{
			Kind:         AnimSpringBack,
			From:         s.Transform,
			To:           settleTarget(cfg, vp, Transform{Scale: ss.start.Scale, Rotation: ss.start.Rotation}),
			FromBackdrop: s.Backdrop,
			ToBackdrop:   1,
			Duration:     seconds(cfg.SettleDuration),
		}
		return s, eff
	}

	to := settleTarget(cfg, vp, s.Transform)
	if to != s.Transform || s.Backdrop != 1 {
		eff.Animate = &Animation{
			Kind:         AnimSettle,
			From:         s.Transform,
			To:           to,
			FromBackdrop: s.Backdrop,
			ToBackdrop:   1,
			Duration:     seconds(cfg.SettleDuration),
		}
	}
	return s, eff
}

// settleTarget is where a released transform comes to rest: inside its
// bounds, snapped back to the minimum scale when barely zoomed, and, with
// rotation enabled, on the nearest quarter turn.
func settleTarget(cfg Config, vp Size, t Transform) Transform {
	if cfg.EnableRotation {
		t.Rotation = math.Round(t.Rotation/90) * 90
	}
	if t.Scale <= cfg.ZoomThreshold {
		t.Scale = cfg.MinScale
		t.TranslateX, t.TranslateY = 0, 0
	}
	return t.Clamp(vp)
}

// closeViewer marks s closed and cancels every pending timer.
func closeViewer(s State, eff Effects) (State, Effects) {
	s.Closed = true
	s.session = gestureSession{}
	s.tap = pendingTap{}
	s.autoHide = 0
	eff.RequestClose = true
	return s, eff
}

// zoomed reports whether t counts as zoomed in.
func zoomed(cfg Config, t Transform) bool {
	return t.Scale > cfg.ZoomThreshold
}
