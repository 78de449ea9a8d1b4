// Package app runs the interactive viewer: window, input, controller,
// renderer and the optional remote session server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/creature-poser/internal/assembly"
	"github.com/Faultbox/creature-poser/internal/config"
	"github.com/Faultbox/creature-poser/internal/engine/camera"
	"github.com/Faultbox/creature-poser/internal/engine/capture"
	"github.com/Faultbox/creature-poser/internal/engine/input"
	"github.com/Faultbox/creature-poser/internal/engine/renderer"
	"github.com/Faultbox/creature-poser/internal/engine/window"
	"github.com/Faultbox/creature-poser/internal/interaction"
	"github.com/Faultbox/creature-poser/internal/logger"
	"github.com/Faultbox/creature-poser/internal/remote"
	"github.com/Faultbox/creature-poser/pkg/math"
)

// App is the viewer instance.
type App struct {
	cfg      *config.Config
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	capture  *capture.Capture

	posing
	log *zap.Logger

	captureNext bool
}

// posing is the model, scene, controller and request queue shared by the
// viewer and the inspector.
type posing struct {
	scene   *assembly.Scene
	ctrl    *interaction.Controller
	session *remote.Session
}

func newPosing(cfg *config.Config) (posing, error) {
	model, err := assembly.Build(cfg.Model.Name)
	if err != nil {
		return posing{}, err
	}
	p := posing{scene: assembly.NewScene(model, cfg.Model.Axes)}
	cam := camera.NewOrbitCamera(cfg.Camera.Settings(), float32(cfg.Window.Width), float32(cfg.Window.Height))
	p.ctrl = interaction.New(model, cam, cfg.ControllerSettings())
	p.session = remote.NewSession(p.ctrl, p.scene.Root)
	return p, nil
}

// serveRemote starts the session server when an address is configured. It
// stops with ctx.
func serveRemote(ctx context.Context, cfg *config.Config, session *remote.Session, log *zap.Logger) {
	addr := cfg.Remote.Listen
	if addr == "" {
		return
	}
	srv := remote.NewServer(session, cfg.RemoteSettings())
	go func() {
		if err := srv.ListenAndServe(ctx, addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("remote server stopped", zap.Error(err))
		}
	}()
}

// screenshotKey saves the next frame.
var screenshotKey = interaction.CharKey('p')

// New creates the window, GL resources and the posing session.
func New(cfg *config.Config) (*App, error) {
	a := &App{cfg: cfg, log: logger.Named("app")}
	a.log.Info("initializing viewer",
		zap.String("model", cfg.Model.Name),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
	)

	var err error
	a.posing, err = newPosing(cfg)
	if err != nil {
		return nil, err
	}

	// Create window (this also creates OpenGL context)
	a.window, err = window.New(window.Config{
		Title:       cfg.Window.Title,
		Width:       cfg.Window.Width,
		Height:      cfg.Window.Height,
		Fullscreen:  cfg.Window.Fullscreen,
		VSync:       cfg.Window.VSync,
		Multisample: 4,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	w, h := a.window.Size()
	a.renderer, err = renderer.New(renderer.Config{
		Width:      w,
		Height:     h,
		Background: cfg.Window.BackgroundColor(),
		LightDir:   math.Vec3{X: -0.4, Y: -1, Z: -0.6},
	})
	if err != nil {
		a.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	a.input = input.New()
	a.capture = capture.New(cfg.Window.Screenshot, cfg.Model.Name)
	a.log.Info("viewer initialized", zap.Int("components", len(a.ctrl.Components())))
	return a, nil
}

// Run drives the frame loop until the window closes or ctx is done.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	serveRemote(ctx, a.cfg, a.session, a.log)

	frameCount := 0
	fpsTimer := time.Now()
	a.log.Info("starting frame loop")

	for ctx.Err() == nil {
		if a.input.Update() {
			break
		}
		for _, event := range a.input.Events() {
			a.handle(event)
		}
		a.session.Drain()

		a.scene.Root.Update(math.Identity())
		cam := a.ctrl.Camera()
		a.renderer.Begin(cam.ViewMatrix(), cam.ProjectionMatrix())
		a.renderer.DrawScene(a.scene.Root)
		a.renderer.End()
		if a.captureNext {
			a.captureNext = false
			a.screenshot()
		}
		a.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
	return nil
}

func (a *App) handle(event input.Event) {
	var err error
	switch event.Type {
	case input.EventWindowResize:
		a.ctrl.Camera().Resize(float32(event.Width), float32(event.Height))
		a.renderer.Resize(a.window.Size())
	case input.EventKey:
		if event.Key == screenshotKey {
			a.captureNext = true
			return
		}
		err = a.ctrl.HandleKey(event.Key)
	case input.EventCommand:
		err = a.ctrl.Handle(event.Command)
	}
	if err != nil {
		a.log.Warn("input rejected", zap.Error(err))
	}
}

func (a *App) screenshot() {
	pixels, w, h := a.renderer.ReadPixels()
	saveFrame(a.capture, a.log, pixels, w, h)
}

// saveFrame writes pixels read back from OpenGL.
func saveFrame(c *capture.Capture, log *zap.Logger, pixels []byte, w, h int) {
	path, err := c.SavePixels(pixels, w, h)
	if err != nil {
		log.Warn("screenshot failed", zap.Error(err))
		return
	}
	log.Info("screenshot saved", zap.String("path", path))
}

// Close releases GL and window resources.
func (a *App) Close() {
	a.log.Info("closing viewer")
	if a.renderer != nil {
		a.renderer.Close()
	}
	if a.window != nil {
		a.window.Close()
	}
}
