package lightbox

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// reduceAll feeds events through Reduce and returns the final state and
// the effects of the last event.
func reduceAll(cfg Config, vp Size, s State, evs ...Event) (State, Effects) {
	var eff Effects
	for _, ev := range evs {
		s, eff = Reduce(cfg, vp, s, ev)
	}
	return s, eff
}

func stateAt(tr Transform) State {
	s := NewState()
	s.Transform = tr
	return s
}

var approxTransform = cmpopts.EquateApprox(0, 1e-9)

func TestPinchKeepsFocalPointFixed(t *testing.T) {
	tests := []struct {
		name   string
		start  Transform
		focal  Vec2
		k      float64
		rotate bool
		rot    float64
	}{
		{"identity to 2x at center", Identity, Vec2{200, 400}, 2, false, 0},
		{"identity to 3x off center", Identity, Vec2{50, 700}, 3, false, 0},
		{"identity to 1.3x at corner", Identity, Vec2{0, 0}, 1.3, false, 0},
		{"zoomed further", Transform{Scale: 2, TranslateX: -80, TranslateY: 150}, Vec2{300, 200}, 1.5, false, 0},
		{"zoom with rotation", Identity, Vec2{250, 430}, 2, true, 0.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.EnableRotation = tt.rotate
			content := tt.start.ScreenToContent(testViewport, tt.focal)

			s, eff := reduceAll(cfg, testViewport, stateAt(tt.start),
				PinchEvent{Phase: PhaseBegin, ScaleDelta: 1, FocalX: tt.focal.X, FocalY: tt.focal.Y},
				PinchEvent{Phase: PhaseUpdate, ScaleDelta: tt.k, FocalX: tt.focal.X, FocalY: tt.focal.Y, Rotation: tt.rot},
			)
			if eff.Dropped {
				t.Fatal("update dropped")
			}
			if !approxEqual(s.Transform.Scale, tt.start.Scale*tt.k, 1e-9) {
				t.Errorf("scale = %v, want %v", s.Transform.Scale, tt.start.Scale*tt.k)
			}
			got := s.Transform.ContentToScreen(testViewport, content)
			if math.Hypot(got.X-tt.focal.X, got.Y-tt.focal.Y) > 0.5 {
				t.Errorf("content under focal moved to (%v,%v), want (%v,%v)", got.X, got.Y, tt.focal.X, tt.focal.Y)
			}
		})
	}
}

func TestPinchScaleClamped(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name  string
		delta float64
		want  float64
	}{
		{"pinch in past min", 0.2, cfg.MinScale},
		{"within range", 3, 3},
		{"past max", 40, cfg.MaxScale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := reduceAll(cfg, testViewport, NewState(),
				PinchEvent{Phase: PhaseBegin, ScaleDelta: 1, FocalX: 100, FocalY: 100},
				PinchEvent{Phase: PhaseUpdate, ScaleDelta: tt.delta, FocalX: 100, FocalY: 100},
			)
			if s.Transform.Scale != tt.want {
				t.Errorf("scale = %v, want %v", s.Transform.Scale, tt.want)
			}
			if !s.Transform.InBounds(testViewport) {
				t.Errorf("translation out of bounds: %+v", s.Transform)
			}
		})
	}
}

func TestPinchZeroScaleDeltaDropped(t *testing.T) {
	cfg := DefaultConfig()
	before, _ := reduceAll(cfg, testViewport, NewState(),
		PinchEvent{Phase: PhaseBegin, ScaleDelta: 1, FocalX: 120, FocalY: 300},
		PinchEvent{Phase: PhaseUpdate, ScaleDelta: 2, FocalX: 120, FocalY: 300},
	)

	degenerate := []PinchEvent{
		{Phase: PhaseUpdate, ScaleDelta: 0, FocalX: 120, FocalY: 300},
		{Phase: PhaseUpdate, ScaleDelta: -1, FocalX: 120, FocalY: 300},
		{Phase: PhaseUpdate, ScaleDelta: math.NaN(), FocalX: 120, FocalY: 300},
		{Phase: PhaseUpdate, ScaleDelta: math.Inf(1), FocalX: 120, FocalY: 300},
		{Phase: PhaseUpdate, ScaleDelta: 1.5, FocalX: math.NaN(), FocalY: 300},
	}
	for _, ev := range degenerate {
		after, eff := Reduce(cfg, testViewport, before, ev)
		if !eff.Dropped {
			t.Errorf("%+v: not reported as dropped", ev)
		}
		if after != before {
			t.Errorf("%+v: state changed from %+v to %+v", ev, before.Transform, after.Transform)
		}
	}
}

func TestPinchDroppedWithoutViewport(t *testing.T) {
	s, eff := Reduce(DefaultConfig(), Size{}, NewState(),
		PinchEvent{Phase: PhaseBegin, ScaleDelta: 1, FocalX: 10, FocalY: 10})
	if !eff.Dropped {
		t.Error("pinch on an unmeasured viewport was not dropped")
	}
	if s.Gesturing() {
		t.Error("session opened on an unmeasured viewport")
	}
}

func TestPinchEndSettlesInsideBounds(t *testing.T) {
	cfg := DefaultConfig()
	// Zoom in at the top-left corner, then zoom out around the opposite
	// corner: the translation is clamped during the gesture already.
	s, _ := reduceAll(cfg, testViewport, NewState(),
		PinchEvent{Phase: PhaseBegin, ScaleDelta: 1, FocalX: 0, FocalY: 0},
		PinchEvent{Phase: PhaseUpdate, ScaleDelta: 4, FocalX: 0, FocalY: 0},
		PinchEvent{Phase: PhaseUpdate, ScaleDelta: 2, FocalX: 400, FocalY: 800},
	)
	if !s.Transform.InBounds(testViewport) {
		t.Fatalf("transform out of bounds during pinch: %+v", s.Transform)
	}
	s, eff := Reduce(cfg, testViewport, s, PinchEvent{Phase: PhaseEnd})
	if s.Gesturing() {
		t.Error("session still active after pinch end")
	}
	if eff.Animate != nil {
		t.Errorf("unexpected settle animation for in-bounds transform: %+v", eff.Animate)
	}
}

func TestPinchEndBarelyZoomedSnapsToMinScale(t *testing.T) {
	cfg := DefaultConfig()
	s, eff := reduceAll(cfg, testViewport, NewState(),
		PinchEvent{Phase: PhaseBegin, ScaleDelta: 1, FocalX: 50, FocalY: 50},
		PinchEvent{Phase: PhaseUpdate, ScaleDelta: 1.01, FocalX: 50, FocalY: 50},
		PinchEvent{Phase: PhaseEnd},
	)
	if eff.Animate == nil {
		t.Fatal("expected a settle animation")
	}
	if diff := cmp.Diff(Identity, eff.Animate.To, approxTransform); diff != "" {
		t.Errorf("settle target mismatch (-want +got):\n%s", diff)
	}
	if eff.Animate.From != s.Transform {
		t.Errorf("animation starts at %+v, state is %+v", eff.Animate.From, s.Transform)
	}
}

func TestPinchRotationIgnoredWhenDisabled(t *testing.T) {
	s, _ := reduceAll(DefaultConfig(), testViewport, NewState(),
		PinchEvent{Phase: PhaseBegin, ScaleDelta: 1, FocalX: 200, FocalY: 400},
		PinchEvent{Phase: PhaseUpdate, ScaleDelta: 2, FocalX: 200, FocalY: 400, Rotation: 1},
	)
	if s.Transform.Rotation != 0 {
		t.Errorf("rotation = %v, want 0", s.Transform.Rotation)
	}
}

func TestPinchRotationSnapsToQuarterTurn(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableRotation = true
	_, eff := reduceAll(cfg, testViewport, NewState(),
		PinchEvent{Phase: PhaseBegin, ScaleDelta: 1, FocalX: 200, FocalY: 400},
		PinchEvent{Phase: PhaseUpdate, ScaleDelta: 2, FocalX: 200, FocalY: 400, Rotation: 80 * math.Pi / 180},
		PinchEvent{Phase: PhaseEnd},
	)
	if eff.Animate == nil {
		t.Fatal("expected a settle animation")
	}
	if !approxEqual(eff.Animate.To.Rotation, 90, 1e-9) {
		t.Errorf("settled rotation = %v, want 90", eff.Animate.To.Rotation)
	}
}
