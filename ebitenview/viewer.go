package ebitenview

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"

	"github.com/artchain/lightbox"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
}

// Viewer is an ebiten.Game showing one image full screen. Gestures go
// through a Recognizer into a lightbox.Engine; Update returns
// ebiten.Termination once the engine asks to close.
type Viewer struct {
	engine      *lightbox.Engine
	rec         *Recognizer
	img         *ebiten.Image
	orientation int
	script      *Script
	log         *zap.Logger

	// Behind is the color of the page under the viewer, visible through the
	// backdrop while it fades during a dismiss drag.
	Behind color.Color

	vp       lightbox.Size
	measured bool
	focused  bool
	closed   bool
}

// ViewerOption configures a Viewer.
type ViewerOption func(*Viewer)

// WithLogger sets the viewer's logger. The default discards everything.
func WithLogger(l *zap.Logger) ViewerOption {
	return func(v *Viewer) {
		if l != nil {
			v.log = l
		}
	}
}

// NewViewer creates a viewer drawing img with the given EXIF orientation
// (1 when unknown). It registers a close callback on engine.
func NewViewer(engine *lightbox.Engine, img *ebiten.Image, orientation int, opts ...ViewerOption) *Viewer {
	v := &Viewer{
		engine:      engine,
		rec:         NewRecognizer(engine),
		img:         img,
		orientation: orientation,
		log:         zap.NewNop(),
		Behind:      color.White,
		focused:     true,
	}
	for _, opt := range opts {
		opt(v)
	}
	engine.OnRequestClose(func() {
		v.log.Info("viewer closed", zap.Any("transform", engine.Transform()))
		v.closed = true
	})
	return v
}

// SetScript attaches a gesture script replayed from the next frame.
func (v *Viewer) SetScript(s *Script) {
	v.script = s
}

// Recognizer returns the viewer's gesture recognizer, for injecting input.
func (v *Viewer) Recognizer() *Recognizer {
	return v.rec
}

// Closed reports whether the viewer has finished.
func (v *Viewer) Closed() bool {
	return v.closed
}

// Layout measures the viewport on the first call and keeps that size for
// the rest of the session; the window contents scale with later resizes.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	if !v.measured {
		if outsideWidth <= 0 || outsideHeight <= 0 {
			return max(outsideWidth, 1), max(outsideHeight, 1)
		}
		v.vp = lightbox.Size{Width: float64(outsideWidth), Height: float64(outsideHeight)}
		v.measured = true
		v.engine.SetViewport(v.vp)
		v.log.Debug("viewport measured", zap.Int("width", outsideWidth), zap.Int("height", outsideHeight))
	}
	return int(v.vp.Width), int(v.vp.Height)
}

// Update advances input, the gesture engine and any script by one tick.
func (v *Viewer) Update() error {
	if v.closed {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		v.log.Info("viewer closed", zap.String("reason", "escape"))
		v.engine.Close()
		v.closed = true
		return ebiten.Termination
	}

	focused := ebiten.IsFocused()
	if v.focused && !focused {
		v.rec.Reset()
	}
	v.focused = focused

	if v.script != nil {
		v.script.step(v.rec)
	}
	dt := frameDuration()
	v.rec.Update(dt)
	v.engine.Update(dt)

	if v.closed {
		return ebiten.Termination
	}
	return nil
}

// Draw renders the backdrop, the transformed image and, while visible, the
// controls overlay.
func (v *Viewer) Draw(screen *ebiten.Image) {
	screen.Fill(backdropColor(v.Behind, v.engine.Backdrop()))
	if v.img != nil {
		b := v.img.Bounds()
		op := &ebiten.DrawImageOptions{}
		op.GeoM = imageGeoM(v.vp, v.engine.Transform(), float64(b.Dx()), float64(b.Dy()), v.orientation)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(v.img, op)
	}
	if v.engine.ControlsVisible() {
		ebitenutil.DebugPrintAt(screen, controlsText(v.engine.Transform()), 8, 8)
	}
}

// Run opens a window and runs game, usually a Viewer or a type embedding
// one, until it terminates.
func Run(game ebiten.Game, cfg RunConfig) error {
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	return ebiten.RunGame(game)
}

// frameDuration is the length of one tick in seconds.
func frameDuration() float64 {
	tps := ebiten.TPS()
	if tps <= 0 {
		tps = ebiten.DefaultTPS
	}
	return 1 / float64(tps)
}

// backdropColor composites a black backdrop of the given opacity over the
// page behind the viewer.
func backdropColor(behind color.Color, opacity float64) color.RGBA {
	c := color.RGBAModel.Convert(behind).(color.RGBA)
	k := 1 - math.Max(0, math.Min(opacity, 1))
	return color.RGBA{
		R: uint8(math.Round(float64(c.R) * k)),
		G: uint8(math.Round(float64(c.G) * k)),
		B: uint8(math.Round(float64(c.B) * k)),
		A: 0xff,
	}
}

func controlsText(t lightbox.Transform) string {
	return fmt.Sprintf("%d%%\ndouble-tap to zoom, drag down to close\nesc to quit", int(math.Round(t.Scale*100)))
}
