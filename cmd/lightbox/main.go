// Command lightbox opens an artwork image in a full-screen viewer with
// pinch, pan, double-tap and swipe-to-dismiss gestures.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/artchain/lightbox"
	"github.com/artchain/lightbox/ebitenview"
	"github.com/artchain/lightbox/internal/configwatch"
	"github.com/artchain/lightbox/internal/imageload"
)

const loadTimeout = 30 * time.Second

var (
	configPath string
	scriptPath string
	watch      bool
	debug      bool
	width      int
	height     int

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lightbox <image>",
	Short: "Full-screen artwork viewer",
	Long: `Opens an image in a full-screen viewer.

Pinch or scroll to zoom, drag to pan, double-tap to toggle zoom and drag an
unzoomed image up or down to close it. Thresholds come from --config and can
be overridden with LIGHTBOX_* environment variables, for example
LIGHTBOX_MAX_SCALE=8.

A gesture script (--script) replays synthetic input, for demos and for
checking behavior without a touch screen.`,
	Args: cobra.ExactArgs(1),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if debug {
			config = zap.NewDevelopmentConfig()
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runViewer,
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML file with viewer thresholds")
	rootCmd.Flags().StringVar(&scriptPath, "script", "", "JSON gesture script to replay")
	rootCmd.Flags().BoolVar(&watch, "watch", false, "Reload --config when the file changes")
	rootCmd.Flags().BoolVarP(&debug, "debug", "d", false, "Enable debug logging")
	rootCmd.Flags().IntVar(&width, "width", 480, "Window width")
	rootCmd.Flags().IntVar(&height, "height", 800, "Window height")
}

// app is the running game: a Viewer plus config reloads and shutdown
// requests applied between frames, on the goroutine that owns the engine.
type app struct {
	*ebitenview.Viewer
	ctx     context.Context
	engine  *lightbox.Engine
	reloads <-chan lightbox.Config
}

func (a *app) Update() error {
	select {
	case <-a.ctx.Done():
		a.engine.Close()
		return ebiten.Termination
	case cfg := <-a.reloads:
		a.engine.SetConfig(cfg)
	default:
	}
	return a.Viewer.Update()
}

func runViewer(cmd *cobra.Command, args []string) error {
	if watch && configPath == "" {
		return fmt.Errorf("--watch needs --config")
	}
	cfg, err := configwatch.Load(configPath)
	if err != nil {
		return err
	}

	loader := imageload.NewLoader(1, logger.Named("loader"))
	defer loader.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), loadTimeout)
	painting, err := loader.Load(ctx, args[0])
	cancel()
	if err != nil {
		return err
	}
	logger.Info("image loaded",
		zap.String("path", painting.Path),
		zap.String("format", painting.Format),
		zap.Int("width", painting.Width),
		zap.Int("height", painting.Height),
		zap.Int("orientation", painting.Orientation))

	engine := lightbox.NewEngine(cfg, lightbox.WithLogger(logger.Named("engine")))
	viewer := ebitenview.NewViewer(engine, ebiten.NewImageFromImage(painting.Image), painting.Orientation,
		ebitenview.WithLogger(logger.Named("viewer")))

	if scriptPath != "" {
		data, err := os.ReadFile(scriptPath)
		if err != nil {
			return fmt.Errorf("read gesture script: %w", err)
		}
		script, err := ebitenview.LoadScript(data)
		if err != nil {
			return err
		}
		viewer.SetScript(script)
	}

	game := &app{Viewer: viewer, ctx: cmd.Context(), engine: engine}
	if watch {
		w, err := configwatch.New(configPath, logger.Named("config"))
		if err != nil {
			return err
		}
		defer w.Close()
		game.reloads = w.Updates()
	}

	engine.Open()
	return ebitenview.Run(game, ebitenview.RunConfig{
		Title:  "lightbox - " + filepath.Base(painting.Path),
		Width:  width,
		Height: height,
	})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
