package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/creature-poser/internal/assembly"
	"github.com/Faultbox/creature-poser/internal/config"
	"github.com/Faultbox/creature-poser/internal/engine/capture"
	"github.com/Faultbox/creature-poser/internal/engine/framebuffer"
	"github.com/Faultbox/creature-poser/internal/engine/renderer"
	"github.com/Faultbox/creature-poser/internal/engine/ui"
	"github.com/Faultbox/creature-poser/internal/interaction"
	"github.com/Faultbox/creature-poser/internal/logger"
	"github.com/Faultbox/creature-poser/internal/palette"
	"github.com/Faultbox/creature-poser/internal/pose"
	"github.com/Faultbox/creature-poser/pkg/math"
)

const inspectorPanelWidth = 460

var inspectorBackground = palette.RGB(26, 26, 31)

// Inspector shows the scene beside a table of every selectable component
// with its index, angles and limits. Clicking a row selects it.
type Inspector struct {
	cfg      *config.Config
	ui       *ui.Backend
	renderer *renderer.Renderer
	target   *framebuffer.Framebuffer
	capture  *capture.Capture
	pointer  ui.Pointer

	posing
	presets []string
	log     *zap.Logger

	captureNext bool
	lastErr     string
}

// NewInspector creates the inspector window and the posing session.
func NewInspector(cfg *config.Config) (*Inspector, error) {
	in := &Inspector{cfg: cfg, log: logger.Named("inspector")}
	in.log.Info("initializing inspector", zap.String("model", cfg.Model.Name))

	var err error
	in.posing, err = newPosing(cfg)
	if err != nil {
		return nil, err
	}
	if _, ok := in.ctrl.Model().(*assembly.Spider); ok {
		for _, p := range pose.All() {
			in.presets = append(in.presets, p.Name)
		}
	}

	in.ui, err = ui.NewBackend(cfg.Window.Title, cfg.Window.Width+inspectorPanelWidth, cfg.Window.Height, inspectorBackground)
	if err != nil {
		return nil, fmt.Errorf("failed to create inspector window: %w", err)
	}
	in.renderer, err = renderer.New(renderer.Config{
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Background: cfg.Window.BackgroundColor(),
		LightDir:   math.Vec3{X: -0.4, Y: -1, Z: -0.6},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	in.target, err = framebuffer.New(cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		in.renderer.Close()
		return nil, err
	}
	in.capture = capture.New(cfg.Window.Screenshot, cfg.Model.Name)
	return in, nil
}

// Run drives the inspector until its window closes or ctx is done.
func (in *Inspector) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	serveRemote(ctx, in.cfg, in.session, in.log)
	in.log.Info("starting inspector loop")
	in.ui.Run(func() { in.frame(ctx) })
	return nil
}

func (in *Inspector) frame(ctx context.Context) {
	if ctx.Err() != nil {
		in.ui.Close()
		return
	}
	for _, k := range ui.PressedKeys() {
		if k == screenshotKey {
			in.captureNext = true
			continue
		}
		in.apply(in.ctrl.HandleKey(k))
	}
	in.session.Drain()
	in.scene.Root.Update(math.Identity())

	x, y, w, h := ui.WorkArea()
	ui.Panel("Components", x, y, inspectorPanelWidth, h, in.drawPanel)
	ui.Panel("Scene", x+inspectorPanelWidth, y, w-inspectorPanelWidth, h, in.drawScene)
}

func (in *Inspector) drawPanel() {
	nodes := in.ctrl.Nodes()
	snap := in.ctrl.Snapshot()
	ui.StatusText(ui.Status(nodes, snap), in.lastErr)

	if name, ok := ui.PresetButtons(in.presets); ok {
		in.apply(in.ctrl.Handle(interaction.Command{Op: interaction.OpPose, Pose: name}))
	}
	if i, ok := ui.NodeTable(ui.BuildRows(nodes, snap)); ok {
		in.apply(in.ctrl.Handle(interaction.Command{Op: interaction.OpFocus, Index: i}))
	}
}

func (in *Inspector) drawScene() {
	aw, ah := ui.Available()
	w, h := int(aw), int(ah)
	if w < 1 || h < 1 {
		return
	}
	if fw, fh := in.target.Size(); fw != w || fh != h {
		in.target.Resize(w, h)
		in.ctrl.Camera().Resize(float32(w), float32(h))
	}

	restore := in.target.Bind()
	cam := in.ctrl.Camera()
	in.renderer.Begin(cam.ViewMatrix(), cam.ProjectionMatrix())
	in.renderer.DrawScene(in.scene.Root)
	in.renderer.End()
	restore()

	if in.captureNext {
		in.captureNext = false
		pixels, fw, fh := in.target.ReadPixels()
		saveFrame(in.capture, in.log, pixels, fw, fh)
	}

	sample := ui.SceneImage(in.target.ColorTexture(), float32(w), float32(h))
	for _, cmd := range in.pointer.Update(sample) {
		in.apply(in.ctrl.Handle(cmd))
	}
}

func (in *Inspector) apply(err error) {
	if err != nil {
		in.log.Warn("input rejected", zap.Error(err))
		in.lastErr = err.Error()
	}
}

// Close releases GL resources.
func (in *Inspector) Close() {
	in.log.Info("closing inspector")
	if in.target != nil {
		in.target.Destroy()
	}
	if in.renderer != nil {
		in.renderer.Close()
	}
}
