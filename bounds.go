package lightbox

import "math"

// MaxOffset returns the largest translation along each axis that keeps the
// scaled image covering the viewport. At scale <= 1 both offsets are zero,
// so an unzoomed image cannot be panned.
func MaxOffset(scale float64, vp Size) Vec2 {
	return Vec2{
		X: math.Max(0, (vp.Width*scale-vp.Width)/2),
		Y: math.Max(0, (vp.Height*scale-vp.Height)/2),
	}
}

// ClampTranslation restricts (tx, ty) to the bounds implied by scale so no
// empty space appears at the image edges.
func ClampTranslation(tx, ty, scale float64, vp Size) (float64, float64) {
	m := MaxOffset(scale, vp)
	return clamp(tx, -m.X, m.X), clamp(ty, -m.Y, m.Y)
}

// Clamp returns t with its translation restricted to the bounds of its own
// scale. Scale and rotation are left untouched.
func (t Transform) Clamp(vp Size) Transform {
	t.TranslateX, t.TranslateY = ClampTranslation(t.TranslateX, t.TranslateY, t.Scale, vp)
	return t
}

// InBounds reports whether t's translation already satisfies its bounds.
func (t Transform) InBounds(vp Size) bool {
	m := MaxOffset(t.Scale, vp)
	return math.Abs(t.TranslateX) <= m.X && math.Abs(t.TranslateY) <= m.Y
}
