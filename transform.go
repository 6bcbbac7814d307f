package lightbox

import "math"

// identityMatrix is the identity affine matrix.
var identityMatrix = [6]float64{1, 0, 0, 1, 0, 0}

// Transform is the 2D transform applied to the image. Scale and rotation
// act about the viewport center; translation is in screen pixels.
type Transform struct {
	Scale      float64
	TranslateX float64
	TranslateY float64
	// Rotation is in degrees, clockwise. Zero unless rotation is enabled.
	Rotation float64
}

// Identity is the transform of a freshly opened viewer.
var Identity = Transform{Scale: 1}

// IsFinite reports whether every component is a finite number.
func (t Transform) IsFinite() bool {
	return finite(t.Scale, t.TranslateX, t.TranslateY, t.Rotation)
}

// Translation returns the translation as a vector.
func (t Transform) Translation() Vec2 {
	return Vec2{X: t.TranslateX, Y: t.TranslateY}
}

// Matrix returns the affine matrix mapping content coordinates to screen
// coordinates for the given viewport. Returns [a, b, c, d, tx, ty].
//
// Composition order:
//
//	Translate(-center) -> Scale -> Rotate -> Translate(center + T)
func (t Transform) Matrix(vp Size) [6]float64 {
	sin, cos := math.Sincos(t.Rotation * math.Pi / 180)
	a := t.Scale * cos
	b := t.Scale * sin
	c := -t.Scale * sin
	d := t.Scale * cos
	cx, cy := vp.Width/2, vp.Height/2
	return [6]float64{
		a, b, c, d,
		cx + t.TranslateX - (a*cx + c*cy),
		cy + t.TranslateY - (b*cx + d*cy),
	}
}

// ContentToScreen maps a point of the untransformed content to where it is
// drawn on screen.
func (t Transform) ContentToScreen(vp Size, p Vec2) Vec2 {
	x, y := transformPoint(t.Matrix(vp), p.X, p.Y)
	return Vec2{X: x, Y: y}
}

// ScreenToContent maps a screen point back to the content point drawn there.
func (t Transform) ScreenToContent(vp Size, p Vec2) Vec2 {
	x, y := transformPoint(invertAffine(t.Matrix(vp)), p.X, p.Y)
	return Vec2{X: x, Y: y}
}

// multiplyAffine multiplies two 2D affine matrices: result = parent * child.
//
//	Matrix layout: [a, b, c, d, tx, ty]
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
func multiplyAffine(p, c [6]float64) [6]float64 {
	return [6]float64{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// invertAffine computes the inverse of a 2D affine matrix.
// Returns the identity matrix if the matrix is singular.
func invertAffine(m [6]float64) [6]float64 {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return identityMatrix
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return [6]float64{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// transformPoint applies an affine matrix to a point.
func transformPoint(m [6]float64, x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Compose returns the matrix that applies child first, then parent. The
// viewer shell uses it to stack the fit-to-viewport layout under the
// gesture transform.
func Compose(parent, child [6]float64) [6]float64 {
	return multiplyAffine(parent, child)
}

// rotate rotates v by deg degrees clockwise (screen Y points down).
func rotate(v Vec2, deg float64) Vec2 {
	if deg == 0 {
		return v
	}
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return Vec2{X: v.X*cos - v.Y*sin, Y: v.X*sin + v.Y*cos}
}
