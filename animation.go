package lightbox

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// tweenCount is the number of animated fields: scale, translateX,
// translateY, rotation and backdrop.
const tweenCount = 5

// settleTween interpolates an Animation with gween. It only moves already
// decided values towards their target; it never makes gesture decisions.
type settleTween struct {
	anim   Animation
	tweens [tweenCount]*gween.Tween
	done   bool
}

// easing picks the curve for each kind of animation.
func easing(kind AnimationKind) ease.TweenFunc {
	switch kind {
	case AnimSpringBack:
		return ease.OutBack
	default:
		return ease.OutCubic
	}
}

func newSettleTween(a Animation) *settleTween {
	fn := easing(a.Kind)
	d := float32(a.Duration)
	return &settleTween{
		anim: a,
		tweens: [tweenCount]*gween.Tween{
			gween.New(float32(a.From.Scale), float32(a.To.Scale), d, fn),
			gween.New(float32(a.From.TranslateX), float32(a.To.TranslateX), d, fn),
			gween.New(float32(a.From.TranslateY), float32(a.To.TranslateY), d, fn),
			gween.New(float32(a.From.Rotation), float32(a.To.Rotation), d, fn),
			gween.New(float32(a.FromBackdrop), float32(a.ToBackdrop), d, fn),
		},
	}
}

// update advances all tweens by dt seconds and returns the interpolated
// transform and backdrop. Once finished the exact float64 target is
// returned instead of the float32 tween value.
func (t *settleTween) update(dt float64) (Transform, float64) {
	if t.done || t.anim.Duration <= 0 {
		t.done = true
		return t.anim.To, t.anim.ToBackdrop
	}
	var vals [tweenCount]float64
	allDone := true
	for i, tw := range t.tweens {
		v, finished := tw.Update(float32(dt))
		vals[i] = float64(v)
		if !finished {
			allDone = false
		}
	}
	if allDone {
		t.done = true
		return t.anim.To, t.anim.ToBackdrop
	}
	tr := Transform{Scale: vals[0], TranslateX: vals[1], TranslateY: vals[2], Rotation: vals[3]}
	// OutBack overshoots; never let the scale leave its valid range.
	if tr.Scale < t.anim.To.Scale && tr.Scale < t.anim.From.Scale {
		tr.Scale = min(t.anim.To.Scale, t.anim.From.Scale)
	}
	if !tr.IsFinite() {
		t.done = true
		return t.anim.To, t.anim.ToBackdrop
	}
	return tr, clamp(vals[4], 0, 1)
}
