package lightbox

import "math"

// reducePan moves a zoomed image within its bounds, or, when the image is
// not zoomed, tracks a vertical drag that may dismiss the viewer.
func reducePan(cfg Config, vp Size, s State, e PanEvent) (State, Effects) {
	if !finite(e.TranslationX, e.TranslationY, e.VelocityX, e.VelocityY) {
		if e.Phase == PhaseEnd || e.Phase == PhaseCancel {
			// Keep the last good translation but still release the pan.
			e = PanEvent{Phase: e.Phase, TranslationX: s.session.pan.X, TranslationY: s.session.pan.Y}
		} else {
			return s, Effects{Dropped: true}
		}
	}

	switch e.Phase {
	case PhaseEnd, PhaseCancel:
		if !s.session.panning {
			return s, Effects{}
		}
		next, eff := applyPan(cfg, vp, s, e)
		if eff.Dropped {
			next = s
		}
		next.session.panning = false
		next.session.velocity = Vec2{X: e.VelocityX, Y: e.VelocityY}
		if e.Phase == PhaseCancel && next.session.mode == panDismiss {
			// A cancelled drag never closes the viewer.
			return endCancelledDismiss(cfg, vp, next)
		}
		return endGesture(cfg, vp, next, Effects{})
	}

	if vp.Empty() {
		return s, Effects{Dropped: true}
	}

	next := s
	if e.Phase == PhaseBegin || !next.session.panning {
		next = beginGesture(next)
		ss := &next.session
		ss.panning = true
		ss.pan = Vec2{}
		ss.panOrigin = Vec2{}
		if ss.pinching || zoomed(cfg, next.Transform) {
			ss.mode = panZoomed
		} else {
			ss.mode = panDismiss
		}
	}
	return applyPan(cfg, vp, next, e)
}

func applyPan(cfg Config, vp Size, s State, e PanEvent) (State, Effects) {
	ss := &s.session
	ss.pan = Vec2{X: e.TranslationX, Y: e.TranslationY}
	ss.velocity = Vec2{X: e.VelocityX, Y: e.VelocityY}

	t := ss.compose(cfg, vp)
	if !t.IsFinite() {
		return s, Effects{Dropped: true}
	}
	s.Transform = t
	if ss.mode == panDismiss {
		s.Backdrop = BackdropOpacity(cfg, t.TranslateY)
	} else {
		s.Backdrop = 1
	}
	return s, Effects{}
}

// endCancelledDismiss springs a cancelled dismiss drag back without
// evaluating the close thresholds.
func endCancelledDismiss(cfg Config, vp Size, s State) (State, Effects) {
	start := s.session.start
	s.session = gestureSession{}
	return s, Effects{Animate: &Animation{
		Kind:         AnimSpringBack,
		From:         s.Transform,
		To:           settleTarget(cfg, vp, Transform{Scale: start.Scale, Rotation: start.Rotation}),
		FromBackdrop: s.Backdrop,
		ToBackdrop:   1,
		Duration:     seconds(cfg.SettleDuration),
	}}
}

// BackdropOpacity is the backdrop opacity while the image is dragged dy
// pixels towards dismissal: 1 at rest, falling linearly to FadeFloor at
// FadeDistance and staying there.
func BackdropOpacity(cfg Config, dy float64) float64 {
	if cfg.FadeDistance <= 0 {
		return 1
	}
	p := math.Min(math.Abs(dy)/cfg.FadeDistance, 1)
	return 1 - (1-cfg.FadeFloor)*p
}

// ShouldDismiss decides whether a released dismiss drag closes the viewer:
// either it travelled past DismissDistance or it was flung faster than
// DismissVelocity.
func ShouldDismiss(cfg Config, translationY, velocityY float64) bool {
	return math.Abs(translationY) > cfg.DismissDistance || math.Abs(velocityY) > cfg.DismissVelocity
}
