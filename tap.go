package lightbox

import "math"

// reduceTap holds a tap until the double-tap window decides what it was.
// A second tap close enough in space and time is a double tap and the
// first tap never acts as a single tap.
func reduceTap(cfg Config, vp Size, s State, e TapEvent) (State, Effects) {
	if !finite(e.X, e.Y) {
		return s, Effects{Dropped: true}
	}
	if s.session.active {
		// Extra finger lifted during a pinch or pan.
		return s, Effects{}
	}

	pos := Vec2{X: e.X, Y: e.Y}
	var eff Effects
	if p := s.tap; p.active {
		s.tap = pendingTap{}
		if p.age <= seconds(cfg.DoubleTapWindow) && math.Hypot(pos.X-p.pos.X, pos.Y-p.pos.Y) <= cfg.TapSlop {
			return doubleTap(cfg, vp, s, pos)
		}
		// Too far from the first tap: that one was a single tap after all.
		s, eff = singleTap(cfg, s)
		if s.Closed {
			return s, eff
		}
	}
	s.tap = pendingTap{active: true, pos: pos}
	return s, eff
}

// reduceTick advances the pending tap and the controls auto-hide timer.
func reduceTick(cfg Config, vp Size, s State, e TickEvent) (State, Effects) {
	if !finite(e.DT) || e.DT < 0 {
		return s, Effects{Dropped: true}
	}
	var eff Effects
	if s.autoHide > 0 {
		s.autoHide -= e.DT
		if s.autoHide <= 0 {
			s.autoHide = 0
			if s.ControlsVisible {
				s.ControlsVisible = false
				eff.ControlsChanged = true
			}
		}
	}
	if s.tap.active {
		s.tap.age += e.DT
		if s.tap.age > seconds(cfg.DoubleTapWindow) {
			s.tap = pendingTap{}
			var tapEff Effects
			s, tapEff = singleTap(cfg, s)
			eff.RequestClose = tapEff.RequestClose
			eff.ControlsChanged = eff.ControlsChanged != tapEff.ControlsChanged
		}
	}
	return s, eff
}

// singleTap closes an unzoomed viewer, otherwise toggles the overlay
// controls. Showing them (re)starts the auto-hide countdown; hiding them
// cancels it.
func singleTap(cfg Config, s State) (State, Effects) {
	if !zoomed(cfg, s.Transform) {
		return closeViewer(s, Effects{})
	}
	s.ControlsVisible = !s.ControlsVisible
	if s.ControlsVisible {
		s.autoHide = seconds(cfg.AutoHideDelay)
	} else {
		s.autoHide = 0
	}
	return s, Effects{ControlsChanged: true}
}

// doubleTap toggles between the minimum scale and DoubleTapScale, zooming
// in around the tap point.
func doubleTap(cfg Config, vp Size, s State, pos Vec2) (State, Effects) {
	if vp.Empty() {
		return s, Effects{Dropped: true}
	}
	var to Transform
	if zoomed(cfg, s.Transform) {
		to = Transform{Scale: cfg.MinScale, Rotation: s.Transform.Rotation}
	} else {
		c := vp.Center()
		to = zoomAbout(cfg, s.Transform, cfg.DoubleTapScale, 0, Vec2{X: pos.X - c.X, Y: pos.Y - c.Y})
	}
	to = to.Clamp(vp)
	if !to.IsFinite() {
		return s, Effects{Dropped: true}
	}
	return s, Effects{Animate: &Animation{
		Kind:         AnimDoubleTap,
		From:         s.Transform,
		To:           to,
		FromBackdrop: s.Backdrop,
		ToBackdrop:   1,
		Duration:     seconds(cfg.DoubleTapDuration),
	}}
}
