package ebitenview

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/artchain/lightbox"
)

// orientationMatrices maps EXIF orientation tags 1-8 to the affine matrix
// [a, b, c, d, tx, ty] that turns the stored pixels upright, in units of the
// stored width w and height h. tx and ty are given as (coefficient of w,
// coefficient of h) pairs.
var orientationMatrices = [9]struct {
	m      [4]float64
	tx, ty [2]float64
	swap   bool
}{
	1: {m: [4]float64{1, 0, 0, 1}},
	2: {m: [4]float64{-1, 0, 0, 1}, tx: [2]float64{1, 0}},
	3: {m: [4]float64{-1, 0, 0, -1}, tx: [2]float64{1, 0}, ty: [2]float64{0, 1}},
	4: {m: [4]float64{1, 0, 0, -1}, ty: [2]float64{0, 1}},
	5: {m: [4]float64{0, 1, 1, 0}, swap: true},
	6: {m: [4]float64{0, 1, -1, 0}, tx: [2]float64{0, 1}, swap: true},
	7: {m: [4]float64{0, -1, -1, 0}, tx: [2]float64{0, 1}, ty: [2]float64{1, 0}, swap: true},
	8: {m: [4]float64{0, -1, 1, 0}, ty: [2]float64{1, 0}, swap: true},
}

// orientationGeoM returns the GeoM that draws a w×h image upright for the
// given EXIF orientation, and the upright size. Unknown orientations are
// treated as 1.
func orientationGeoM(orientation int, w, h float64) (g ebiten.GeoM, uw, uh float64) {
	m, uw, uh := orientationMatrix(orientation, w, h)
	return affineGeoM(m), uw, uh
}

func orientationMatrix(orientation int, w, h float64) (m [6]float64, uw, uh float64) {
	if orientation < 1 || orientation > 8 {
		orientation = 1
	}
	o := orientationMatrices[orientation]
	m = [6]float64{
		o.m[0], o.m[1], o.m[2], o.m[3],
		o.tx[0]*w + o.tx[1]*h,
		o.ty[0]*w + o.ty[1]*h,
	}
	if o.swap {
		return m, h, w
	}
	return m, w, h
}

// imageGeoM places a w×h image fitted and centered in the viewport, then
// applies the viewer transform.
func imageGeoM(vp lightbox.Size, t lightbox.Transform, w, h float64, orientation int) ebiten.GeoM {
	layout, uw, uh := orientationMatrix(orientation, w, h)
	if uw > 0 && uh > 0 {
		s := math.Min(vp.Width/uw, vp.Height/uh)
		fit := [6]float64{s, 0, 0, s, (vp.Width - uw*s) / 2, (vp.Height - uh*s) / 2}
		layout = lightbox.Compose(fit, layout)
	}
	return affineGeoM(lightbox.Compose(t.Matrix(vp), layout))
}

// affineGeoM converts a [6]float64 affine matrix into an ebiten.GeoM.
func affineGeoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(1, 0, m[1])
	g.SetElement(0, 1, m[2])
	g.SetElement(1, 1, m[3])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 2, m[5])
	return g
}
