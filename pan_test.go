package lightbox

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDismissDragPastDistanceCloses(t *testing.T) {
	cfg := DefaultConfig()
	s, eff := reduceAll(cfg, testViewport, NewState(),
		PanEvent{Phase: PhaseBegin},
		PanEvent{Phase: PhaseUpdate, TranslationX: 30, TranslationY: 150},
		PanEvent{Phase: PhaseEnd, TranslationX: 30, TranslationY: 150},
	)
	if !eff.RequestClose {
		t.Fatal("expected close request")
	}
	if !s.Closed {
		t.Error("state not closed")
	}

	// Closed is terminal.
	after, eff := Reduce(cfg, testViewport, s, TapEvent{X: 10, Y: 10})
	if after != s || eff != (Effects{}) {
		t.Errorf("closed state reacted to a tap: %+v %+v", after, eff)
	}
}

func TestDismissDragBelowThresholdsSpringsBack(t *testing.T) {
	cfg := DefaultConfig()
	s, eff := reduceAll(cfg, testViewport, NewState(),
		PanEvent{Phase: PhaseBegin},
		PanEvent{Phase: PhaseUpdate, TranslationY: 50, VelocityY: 200},
		PanEvent{Phase: PhaseEnd, TranslationY: 50, VelocityY: 200},
	)
	if eff.RequestClose || s.Closed {
		t.Fatal("viewer closed below the thresholds")
	}
	if eff.Animate == nil {
		t.Fatal("expected a spring-back animation")
	}
	a := eff.Animate
	if a.Kind != AnimSpringBack {
		t.Errorf("kind = %v, want spring-back", a.Kind)
	}
	if diff := cmp.Diff(Identity, a.To, approxTransform); diff != "" {
		t.Errorf("target mismatch (-want +got):\n%s", diff)
	}
	if a.ToBackdrop != 1 {
		t.Errorf("backdrop target = %v, want 1", a.ToBackdrop)
	}
	if !approxEqual(a.From.TranslateY, 50, epsilon) {
		t.Errorf("animation starts at y=%v, want 50", a.From.TranslateY)
	}
}

func TestDismissFlingCloses(t *testing.T) {
	_, eff := reduceAll(DefaultConfig(), testViewport, NewState(),
		PanEvent{Phase: PhaseBegin},
		PanEvent{Phase: PhaseUpdate, TranslationY: -40, VelocityY: -1500},
		PanEvent{Phase: PhaseEnd, TranslationY: -40, VelocityY: -1500},
	)
	if !eff.RequestClose {
		t.Error("fast upward fling did not close")
	}
}

func TestDismissCancelNeverCloses(t *testing.T) {
	s, eff := reduceAll(DefaultConfig(), testViewport, NewState(),
		PanEvent{Phase: PhaseBegin},
		PanEvent{Phase: PhaseUpdate, TranslationY: 300},
		PanEvent{Phase: PhaseCancel, TranslationY: 300},
	)
	if eff.RequestClose || s.Closed {
		t.Fatal("cancelled drag closed the viewer")
	}
	if eff.Animate == nil || eff.Animate.Kind != AnimSpringBack {
		t.Errorf("expected spring-back, got %+v", eff.Animate)
	}
}

func TestDismissTracksOnlyVertical(t *testing.T) {
	s, _ := reduceAll(DefaultConfig(), testViewport, NewState(),
		PanEvent{Phase: PhaseBegin},
		PanEvent{Phase: PhaseUpdate, TranslationX: 90, TranslationY: 60},
	)
	if s.Transform.TranslateX != 0 || s.Transform.TranslateY != 60 {
		t.Errorf("translation = (%v,%v), want (0,60)", s.Transform.TranslateX, s.Transform.TranslateY)
	}
	if want := BackdropOpacity(DefaultConfig(), 60); s.Backdrop != want {
		t.Errorf("backdrop = %v, want %v", s.Backdrop, want)
	}
}

func TestBackdropOpacity(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		dy   float64
		want float64
	}{
		{0, 1},
		{60, 0.6},
		{-60, 0.6},
		{120, 0.2},
		{500, 0.2},
	}
	for _, tt := range tests {
		if got := BackdropOpacity(cfg, tt.dy); !approxEqual(got, tt.want, 1e-9) {
			t.Errorf("BackdropOpacity(%v) = %v, want %v", tt.dy, got, tt.want)
		}
	}
}

func TestShouldDismiss(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name string
		ty   float64
		vy   float64
		want bool
	}{
		{"far", 150, 0, true},
		{"near slow", 50, 200, false},
		{"exactly at distance", 140, 0, false},
		{"near fast", 10, 1200, true},
		{"upward far", -141, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldDismiss(cfg, tt.ty, tt.vy); got != tt.want {
				t.Errorf("ShouldDismiss(%v, %v) = %v, want %v", tt.ty, tt.vy, got, tt.want)
			}
		})
	}
}

func TestZoomedPanClampedToBounds(t *testing.T) {
	cfg := DefaultConfig()
	start := stateAt(Transform{Scale: 2})
	s, _ := reduceAll(cfg, testViewport, start,
		PanEvent{Phase: PhaseBegin},
		PanEvent{Phase: PhaseUpdate, TranslationX: 150, TranslationY: -100},
	)
	if s.Transform.TranslateX != 150 || s.Transform.TranslateY != -100 {
		t.Errorf("translation = (%v,%v), want (150,-100)", s.Transform.TranslateX, s.Transform.TranslateY)
	}
	s, _ = Reduce(cfg, testViewport, s, PanEvent{Phase: PhaseUpdate, TranslationX: 900, TranslationY: -900})
	if s.Transform.TranslateX != 200 || s.Transform.TranslateY != -400 {
		t.Errorf("translation = (%v,%v), want clamped (200,-400)", s.Transform.TranslateX, s.Transform.TranslateY)
	}
	if s.Backdrop != 1 {
		t.Errorf("backdrop = %v while panning a zoomed image", s.Backdrop)
	}
	s, eff := Reduce(cfg, testViewport, s, PanEvent{Phase: PhaseEnd, TranslationX: 900, TranslationY: -900, VelocityY: 5000})
	if eff.RequestClose {
		t.Error("zoomed pan closed the viewer")
	}
	if s.Gesturing() {
		t.Error("session still active")
	}
}

func TestPanNonFiniteDropped(t *testing.T) {
	cfg := DefaultConfig()
	before, _ := reduceAll(cfg, testViewport, stateAt(Transform{Scale: 2}),
		PanEvent{Phase: PhaseBegin},
		PanEvent{Phase: PhaseUpdate, TranslationX: 10, TranslationY: 10},
	)
	after, eff := Reduce(cfg, testViewport, before, PanEvent{Phase: PhaseUpdate, TranslationX: math.NaN(), TranslationY: 20})
	if !eff.Dropped || after != before {
		t.Errorf("NaN pan not dropped: eff=%+v", eff)
	}
	// A non-finite release still ends the gesture at the last good position.
	after, eff = Reduce(cfg, testViewport, before, PanEvent{Phase: PhaseEnd, TranslationX: math.Inf(1)})
	if after.Gesturing() {
		t.Error("session still active after non-finite release")
	}
	if after.Transform != before.Transform {
		t.Errorf("transform changed on non-finite release: %+v", after.Transform)
	}
	if eff.Dropped {
		t.Error("release reported as dropped")
	}
}

func TestSimultaneousPinchAndPanCompose(t *testing.T) {
	cfg := DefaultConfig()
	s, _ := reduceAll(cfg, testViewport, stateAt(Transform{Scale: 2.5}),
		PanEvent{Phase: PhaseBegin},
		PanEvent{Phase: PhaseUpdate, TranslationX: 30, TranslationY: 40},
	)
	if s.Transform.TranslateX != 30 || s.Transform.TranslateY != 40 {
		t.Fatalf("pan translation = (%v,%v), want (30,40)", s.Transform.TranslateX, s.Transform.TranslateY)
	}

	// Pinch about the viewport center while the pan is still down.
	s, _ = reduceAll(cfg, testViewport, s,
		PinchEvent{Phase: PhaseBegin, ScaleDelta: 1, FocalX: 200, FocalY: 400},
		PinchEvent{Phase: PhaseUpdate, ScaleDelta: 1.2, FocalX: 200, FocalY: 400},
	)
	want := Transform{Scale: 3, TranslateX: 36, TranslateY: 48}
	if diff := cmp.Diff(want, s.Transform, approxTransform); diff != "" {
		t.Fatalf("after pinch (-want +got):\n%s", diff)
	}

	// The pan keeps applying on top of the new scale.
	s, _ = Reduce(cfg, testViewport, s, PanEvent{Phase: PhaseUpdate, TranslationX: 50, TranslationY: 60})
	want = Transform{Scale: 3, TranslateX: 56, TranslateY: 68}
	if diff := cmp.Diff(want, s.Transform, approxTransform); diff != "" {
		t.Fatalf("after pan (-want +got):\n%s", diff)
	}

	// And far enough to hit the new scale's bounds.
	s, _ = Reduce(cfg, testViewport, s, PanEvent{Phase: PhaseUpdate, TranslationX: 2000, TranslationY: 60})
	if !approxEqual(s.Transform.TranslateX, MaxOffset(3, testViewport).X, 1e-9) {
		t.Errorf("x = %v, want clamped to %v", s.Transform.TranslateX, MaxOffset(3, testViewport).X)
	}

	s, eff := reduceAll(cfg, testViewport, s,
		PinchEvent{Phase: PhaseEnd},
		PanEvent{Phase: PhaseEnd, TranslationX: 2000, TranslationY: 60},
	)
	if s.Gesturing() {
		t.Error("session still active after both gestures ended")
	}
	if eff.Animate != nil {
		t.Errorf("unexpected settle animation: %+v", eff.Animate)
	}
}

func TestPinchDuringDismissDragTakesOver(t *testing.T) {
	cfg := DefaultConfig()
	s, _ := reduceAll(cfg, testViewport, NewState(),
		PanEvent{Phase: PhaseBegin},
		PanEvent{Phase: PhaseUpdate, TranslationY: 100},
	)
	if s.Backdrop == 1 {
		t.Fatal("backdrop did not fade during dismiss drag")
	}
	s, _ = reduceAll(cfg, testViewport, s,
		PinchEvent{Phase: PhaseBegin, ScaleDelta: 1, FocalX: 200, FocalY: 400},
		PinchEvent{Phase: PhaseUpdate, ScaleDelta: 2, FocalX: 200, FocalY: 400},
	)
	if s.Transform.Scale != 2 {
		t.Errorf("scale = %v, want 2", s.Transform.Scale)
	}
	if s.Backdrop != 1 {
		t.Errorf("backdrop = %v, want 1 once the pinch took over", s.Backdrop)
	}
	_, eff := reduceAll(cfg, testViewport, s,
		PinchEvent{Phase: PhaseEnd},
		PanEvent{Phase: PhaseEnd, TranslationY: 400, VelocityY: 3000},
	)
	if eff.RequestClose {
		t.Error("pan that turned into a zoomed pan closed the viewer")
	}
}
