package lightbox

// --- Handler registry ---

type closeHandler struct {
	id uint32
	fn func()
}

type controlsHandler struct {
	id uint32
	fn func(visible bool)
}

type settledHandler struct {
	id uint32
	fn func(Transform)
}

type handlerRegistry struct {
	close    []closeHandler
	controls []controlsHandler
	settled  []settledHandler
	nextID   uint32
}

// CallbackHandle allows removing a registered engine callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event ViewerEventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case ViewerEventClose:
		h.reg.close = removeHandler(h.reg.close, h.id, func(c closeHandler) uint32 { return c.id })
	case ViewerEventControls:
		h.reg.controls = removeHandler(h.reg.controls, h.id, func(c controlsHandler) uint32 { return c.id })
	case ViewerEventSettled:
		h.reg.settled = removeHandler(h.reg.settled, h.id, func(c settledHandler) uint32 { return c.id })
	}
}

func removeHandler[T any](s []T, id uint32, idOf func(T) uint32) []T {
	for i := range s {
		if idOf(s[i]) == id {
			var zero T
			copy(s[i:], s[i+1:])
			s[len(s)-1] = zero
			return s[:len(s)-1]
		}
	}
	return s
}

// OnRequestClose registers a callback fired when the viewer asks to be
// closed, by a dismiss drag or a single tap on an unzoomed image.
func (e *Engine) OnRequestClose(fn func()) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.close = append(e.handlers.close, closeHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers, event: ViewerEventClose}
}

// OnControlsVisibilityChange registers a callback fired when the overlay
// controls are shown or hidden.
func (e *Engine) OnControlsVisibilityChange(fn func(visible bool)) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.controls = append(e.handlers.controls, controlsHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers, event: ViewerEventControls}
}

// OnSettled registers a callback fired when a settling animation reaches
// its target.
func (e *Engine) OnSettled(fn func(Transform)) CallbackHandle {
	e.handlers.nextID++
	id := e.handlers.nextID
	e.handlers.settled = append(e.handlers.settled, settledHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &e.handlers, event: ViewerEventSettled}
}

func (e *Engine) fireClose() {
	for _, h := range e.handlers.close {
		h.fn()
	}
	e.emit(ViewerEvent{Type: ViewerEventClose, Transform: e.state.Transform})
}

func (e *Engine) fireControls(visible bool) {
	for _, h := range e.handlers.controls {
		h.fn(visible)
	}
	e.emit(ViewerEvent{Type: ViewerEventControls, Visible: visible, Transform: e.state.Transform})
}

func (e *Engine) fireSettled(t Transform) {
	for _, h := range e.handlers.settled {
		h.fn(t)
	}
	e.emit(ViewerEvent{Type: ViewerEventSettled, Transform: t})
}

func (e *Engine) emit(ev ViewerEvent) {
	if e.sink == nil {
		return
	}
	e.sink.EmitViewerEvent(ev)
}
