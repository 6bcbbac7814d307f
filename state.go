package lightbox

// panMode is chosen when a pan begins and fixed until the pan ends, unless
// a pinch joins the gesture.
type panMode uint8

const (
	panNone    panMode = iota
	panZoomed          // pan moves the zoomed image within its bounds
	panDismiss         // vertical drag that may close the viewer
)

// gestureSession is the baseline of one touch sequence. Contributions of
// the pinch and the pan are always applied to start, never accumulated
// frame to frame. When a second gesture joins a running one the session is
// rebased: start becomes the committed transform and the origins record
// where each gesture's own measurements stood at that moment.
type gestureSession struct {
	active bool
	start  Transform

	pinching    bool
	scaleDelta  float64
	scaleOrigin float64
	rotation    float64 // radians, as reported by the pinch
	rotOrigin   float64
	focal       Vec2 // viewport-center relative

	panning   bool
	mode      panMode
	pan       Vec2
	panOrigin Vec2
	velocity  Vec2
}

// pendingTap is a tap waiting out the double-tap window.
type pendingTap struct {
	active bool
	pos    Vec2
	age    float64 // seconds
}

// State is the complete, immutable state of one viewer session. It is only
// changed through Reduce; the zero value is not usable, start from
// NewState.
type State struct {
	Transform Transform
	// Backdrop is the opacity of the dark layer behind the image. It fades
	// while the image is dragged towards dismissal.
	Backdrop float64
	// ControlsVisible reports whether the overlay buttons are shown.
	ControlsVisible bool
	// Closed is terminal: once set every further event is ignored.
	Closed bool

	session  gestureSession
	tap      pendingTap
	autoHide float64 // seconds left before the controls hide; 0 when not scheduled
}

// NewState returns the state of a freshly opened viewer.
func NewState() State {
	return State{Transform: Identity, Backdrop: 1}
}

// Gesturing reports whether a pinch or pan is in progress.
func (s State) Gesturing() bool {
	return s.session.active
}

// AutoHidePending reports whether the controls are scheduled to hide.
func (s State) AutoHidePending() bool {
	return s.autoHide > 0
}

// AnimationKind names why an animation was started.
type AnimationKind uint8

const (
	AnimSettle     AnimationKind = iota // return inside bounds after a gesture
	AnimDoubleTap                       // zoom toggle from a double tap
	AnimSpringBack                      // dismiss drag released below the thresholds
)

func (k AnimationKind) String() string {
	switch k {
	case AnimSettle:
		return "settle"
	case AnimDoubleTap:
		return "double-tap"
	case AnimSpringBack:
		return "spring-back"
	default:
		return "unknown"
	}
}

// Animation describes a transition between two committed values. It holds
// no logic of its own; the engine interpolates it over Duration seconds.
type Animation struct {
	Kind         AnimationKind
	From, To     Transform
	FromBackdrop float64
	ToBackdrop   float64
	Duration     float64
}

// Effects are the side effects requested by one Reduce call.
type Effects struct {
	// RequestClose is set when the viewer should close.
	RequestClose bool
	// ControlsChanged is set when State.ControlsVisible flipped.
	ControlsChanged bool
	// Animate, when non-nil, asks for an animated transition.
	Animate *Animation
	// Dropped is set when a degenerate event was discarded.
	Dropped bool
}
