package ebitenview

import (
	"encoding/json"
	"fmt"
)

const (
	defaultPinchDistance = 100 // px between the fingers when a scripted pinch starts
	defaultGestureFrames = 10
)

// scriptStep is a single action in a gesture script.
type scriptStep struct {
	Action   string  `json:"action"`
	X        float64 `json:"x,omitempty"`
	Y        float64 `json:"y,omitempty"`
	FromX    float64 `json:"fromX,omitempty"`
	FromY    float64 `json:"fromY,omitempty"`
	ToX      float64 `json:"toX,omitempty"`
	ToY      float64 `json:"toY,omitempty"`
	Scale    float64 `json:"scale,omitempty"`
	Distance float64 `json:"distance,omitempty"`
	Frames   int     `json:"frames,omitempty"`
}

// gestureScript is the top-level JSON structure for a gesture script.
type gestureScript struct {
	Steps []scriptStep `json:"steps"`
}

// Script replays a sequence of synthetic gestures across frames. It is
// useful for demos and for checking viewer behavior without a touch screen.
//
// Supported actions:
//
//	{"action": "tap", "x": 200, "y": 400}
//	{"action": "doubletap", "x": 200, "y": 400}
//	{"action": "drag", "fromX": 200, "fromY": 400, "toX": 200, "toY": 600, "frames": 8}
//	{"action": "pinch", "x": 200, "y": 400, "scale": 2, "distance": 120, "frames": 12}
//	{"action": "wait", "frames": 30}
type Script struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON gesture script.
func LoadScript(jsonData []byte) (*Script, error) {
	var script gestureScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse gesture script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse gesture script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "tap", "doubletap", "drag", "wait":
		case "pinch":
			if st.Scale <= 0 {
				return nil, fmt.Errorf("parse gesture script: step %d: pinch needs a positive scale", i)
			}
		default:
			return nil, fmt.Errorf("parse gesture script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: script.Steps}, nil
}

// Done reports whether all steps have been executed.
func (s *Script) Done() bool {
	return s.done
}

// step advances the script by one frame, queueing input on r.
func (s *Script) step(r *Recognizer) {
	if s.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if r.Pending() > 0 {
		return
	}
	if s.waitCount > 0 {
		s.waitCount--
		return
	}
	if s.cursor >= len(s.steps) {
		s.done = true
		return
	}

	st := s.steps[s.cursor]
	s.cursor++

	frames := st.Frames
	if frames <= 0 {
		frames = defaultGestureFrames
	}
	switch st.Action {
	case "tap":
		r.InjectTap(st.X, st.Y)
	case "doubletap":
		r.InjectTap(st.X, st.Y)
		r.InjectTap(st.X, st.Y)
	case "drag":
		r.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "pinch":
		dist := st.Distance
		if dist <= 0 {
			dist = defaultPinchDistance
		}
		r.InjectPinch(st.X, st.Y, dist, dist*st.Scale, frames)
	case "wait":
		if st.Frames > 0 {
			s.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if s.cursor >= len(s.steps) && s.waitCount == 0 && r.Pending() == 0 {
		s.done = true
	}
}
