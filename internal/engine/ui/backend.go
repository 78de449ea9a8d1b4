// Package ui draws the inspector: an ImGui window holding the rendered
// scene and a table of every selectable component.
package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/creature-poser/internal/palette"
)

// Backend owns the SDL window, GL context and ImGui context.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
}

// NewBackend creates the window. The GL context is current when it returns.
func NewBackend(title string, width, height int, bg palette.Color) (*Backend, error) {
	b := &Backend{}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}
	b.backend.SetBgColor(imgui.NewVec4(bg.R, bg.G, bg.B, 1))
	b.backend.CreateWindow(title, width, height)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}
	return b, nil
}

// Run calls frame once per frame until the window closes.
func (b *Backend) Run(frame func()) {
	b.backend.Run(frame)
}

// Close asks the frame loop to stop after the current frame.
func (b *Backend) Close() {
	b.backend.SetShouldClose(true)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// WorkArea returns the main viewport work area.
func WorkArea() (x, y, width, height float32) {
	viewport := imgui.MainViewport()
	pos := viewport.WorkPos()
	size := viewport.WorkSize()
	return pos.X, pos.Y, size.X, size.Y
}
