package lightbox

// reducePinch maps a pinch update to a new scale and a translation that
// keeps the content under the fingers in place.
func reducePinch(cfg Config, vp Size, s State, e PinchEvent) (State, Effects) {
	if e.Phase == PhaseEnd || e.Phase == PhaseCancel {
		if !s.session.pinching {
			return s, Effects{}
		}
		s.session.pinching = false
		return endGesture(cfg, vp, s, Effects{})
	}

	if vp.Empty() || !finite(e.ScaleDelta, e.FocalX, e.FocalY, e.Rotation) || e.ScaleDelta <= 0 {
		return s, Effects{Dropped: true}
	}

	next := s
	if e.Phase == PhaseBegin || !next.session.pinching {
		next = beginGesture(next)
		ss := &next.session
		ss.pinching = true
		ss.scaleOrigin = e.ScaleDelta
		ss.rotOrigin = e.Rotation
		// A pinch owns the scale; any pan in progress only moves the
		// image within the bounds from now on.
		if ss.mode == panDismiss {
			ss.mode = panZoomed
		}
	}

	c := vp.Center()
	ss := &next.session
	ss.scaleDelta = e.ScaleDelta
	ss.rotation = e.Rotation
	ss.focal = Vec2{X: e.FocalX - c.X, Y: e.FocalY - c.Y}

	t := ss.compose(cfg, vp)
	if !t.IsFinite() {
		return s, Effects{Dropped: true}
	}
	next.Transform = t
	next.Backdrop = 1
	return next, Effects{}
}
