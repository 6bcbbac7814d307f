package lightbox

import (
	"math"
	"testing"
)

func TestSettleTweenReachesExactTarget(t *testing.T) {
	a := Animation{
		Kind:         AnimSettle,
		From:         Transform{Scale: 2.7, TranslateX: 13.3, TranslateY: -41.1},
		To:           Transform{Scale: 2.5, TranslateX: 1.0 / 3, TranslateY: -0.1},
		FromBackdrop: 0.4,
		ToBackdrop:   1,
		Duration:     0.5,
	}
	tw := newSettleTween(a)

	// Run for full duration using exact halves to avoid float32 accumulation drift.
	tw.update(0.25)
	tr, backdrop := tw.update(0.25)

	if !tw.done {
		t.Fatal("expected done after full duration")
	}
	if tr != a.To {
		t.Errorf("final transform = %+v, want exactly %+v", tr, a.To)
	}
	if backdrop != 1 {
		t.Errorf("final backdrop = %v, want 1", backdrop)
	}
}

func TestSettleTweenInterpolates(t *testing.T) {
	tw := newSettleTween(Animation{
		Kind:     AnimDoubleTap,
		From:     Identity,
		To:       Transform{Scale: 3, TranslateX: 100},
		Duration: 1,
	})
	tr, _ := tw.update(0.5)
	if tw.done {
		t.Fatal("done halfway through")
	}
	if tr.Scale <= 1 || tr.Scale >= 3 {
		t.Errorf("mid scale = %v, want between 1 and 3", tr.Scale)
	}
	if tr.TranslateX <= 0 || tr.TranslateX >= 100 {
		t.Errorf("mid x = %v, want between 0 and 100", tr.TranslateX)
	}
}

func TestSpringBackNeverUndershootsScale(t *testing.T) {
	tw := newSettleTween(Animation{
		Kind:         AnimSpringBack,
		From:         Transform{Scale: 1.02, TranslateY: 90},
		To:           Identity,
		FromBackdrop: 0.4,
		ToBackdrop:   1,
		Duration:     0.3,
	})
	for i := 0; i < 20 && !tw.done; i++ {
		tr, backdrop := tw.update(1.0 / 60)
		if tr.Scale < 1 {
			t.Fatalf("frame %d: scale %v below 1", i, tr.Scale)
		}
		if backdrop < 0 || backdrop > 1 {
			t.Fatalf("frame %d: backdrop %v outside [0,1]", i, backdrop)
		}
	}
}

func TestZeroDurationFinishesImmediately(t *testing.T) {
	to := Transform{Scale: 2, TranslateX: 5}
	tw := newSettleTween(Animation{From: Identity, To: to})
	tr, _ := tw.update(0)
	if !tw.done || tr != to {
		t.Errorf("zero-duration tween: done=%v tr=%+v", tw.done, tr)
	}
	if math.IsNaN(tr.Scale) {
		t.Error("NaN scale")
	}
}
