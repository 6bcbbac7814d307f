package lightbox

import (
	"go.uber.org/zap"
)

// Engine owns the state of one viewer and turns gestures into transforms.
// It implements GestureHandler. All methods must be called from the same
// goroutine, typically the game loop's Update.
type Engine struct {
	cfg   Config
	vp    Size
	state State
	anim  *settleTween

	handlers handlerRegistry
	sink     EventSink
	log      *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for debug output. The default discards
// everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithEventSink forwards close, controls and settle events to sink in
// addition to the registered callbacks.
func WithEventSink(sink EventSink) Option {
	return func(e *Engine) {
		e.sink = sink
	}
}

// NewEngine creates an engine in the opened state with an identity
// transform. cfg should have passed Validate.
func NewEngine(cfg Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:   cfg,
		state: NewState(),
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetViewport records the viewport size measured at layout time. Gestures
// are dropped until a non-empty viewport is set.
func (e *Engine) SetViewport(vp Size) {
	if vp == e.vp {
		return
	}
	e.vp = vp
	e.log.Debug("viewport measured", zap.Float64("width", vp.Width), zap.Float64("height", vp.Height))
}

// Viewport returns the last measured viewport.
func (e *Engine) Viewport() Size {
	return e.vp
}

// Config returns the active configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// SetConfig replaces the configuration. The current transform is kept;
// the next gesture uses the new thresholds.
func (e *Engine) SetConfig(cfg Config) {
	e.cfg = cfg
	e.log.Debug("config replaced", zap.Float64("max_scale", cfg.MaxScale))
}

// Open resets the viewer to the identity transform with hidden controls.
// Nothing carries over from a previous session.
func (e *Engine) Open() {
	e.anim = nil
	e.state = NewState()
}

// Close discards the state and cancels the auto-hide timer, the pending
// tap and any running animation. No callback fires after Close.
func (e *Engine) Close() {
	e.anim = nil
	e.state = NewState()
	e.state.Closed = true
}

// State returns the committed state.
func (e *Engine) State() State {
	return e.state
}

// Transform returns the transform to apply to the image this frame.
func (e *Engine) Transform() Transform {
	return e.state.Transform
}

// Backdrop returns the backdrop opacity for this frame.
func (e *Engine) Backdrop() float64 {
	return e.state.Backdrop
}

// ControlsVisible reports whether the overlay controls are shown.
func (e *Engine) ControlsVisible() bool {
	return e.state.ControlsVisible
}

// Closed reports whether the viewer has asked to close or was closed.
func (e *Engine) Closed() bool {
	return e.state.Closed
}

// Animating reports whether a settling animation is running.
func (e *Engine) Animating() bool {
	return e.anim != nil
}

// OnPinch implements GestureHandler.
func (e *Engine) OnPinch(ev PinchEvent) {
	e.dispatch(ev, ev.Phase == PhaseBegin)
}

// OnPan implements GestureHandler.
func (e *Engine) OnPan(ev PanEvent) {
	e.dispatch(ev, ev.Phase == PhaseBegin)
}

// OnTap implements GestureHandler.
func (e *Engine) OnTap(ev TapEvent) {
	e.dispatch(ev, false)
}

// Update advances timers and the running animation by dt seconds. Call it
// once per frame.
func (e *Engine) Update(dt float64) {
	if e.state.Closed {
		return
	}
	e.dispatch(TickEvent{DT: dt}, false)
	if e.anim == nil || e.state.Closed {
		return
	}
	t, backdrop := e.anim.update(dt)
	e.state.Transform = t
	e.state.Backdrop = backdrop
	if e.anim.done {
		e.anim = nil
		e.fireSettled(t)
	}
}

// dispatch reduces one event and carries out its effects. A gesture that
// begins takes over from a running animation, starting from wherever the
// animation had got to.
func (e *Engine) dispatch(ev Event, begins bool) {
	if e.state.Closed {
		return
	}
	if begins && e.anim != nil {
		e.log.Debug("animation interrupted", zap.Stringer("kind", e.anim.anim.Kind))
		e.anim = nil
	}

	next, eff := Reduce(e.cfg, e.vp, e.state, ev)
	if eff.Dropped {
		e.log.Debug("degenerate gesture dropped", zap.Any("event", ev))
		return
	}
	e.state = next

	if eff.Animate != nil {
		e.log.Debug("animation started",
			zap.Stringer("kind", eff.Animate.Kind),
			zap.Float64("to_scale", eff.Animate.To.Scale),
			zap.Float64("to_x", eff.Animate.To.TranslateX),
			zap.Float64("to_y", eff.Animate.To.TranslateY))
		e.anim = newSettleTween(*eff.Animate)
	}
	if eff.ControlsChanged {
		e.fireControls(e.state.ControlsVisible)
	}
	if eff.RequestClose {
		e.anim = nil
		e.log.Debug("close requested")
		e.fireClose()
	}
}
