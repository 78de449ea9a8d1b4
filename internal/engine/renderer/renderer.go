// Package renderer draws the creature's primitives with OpenGL.
package renderer

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/creature-poser/internal/engine/shader"
	"github.com/Faultbox/creature-poser/internal/logger"
	"github.com/Faultbox/creature-poser/internal/palette"
	"github.com/Faultbox/creature-poser/internal/scenegraph"
	"github.com/Faultbox/creature-poser/internal/shape"
	"github.com/Faultbox/creature-poser/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width      int
	Height     int
	Background palette.Color
	LightDir   math.Vec3
}

type gpuMesh struct {
	vao, vbo, ebo uint32
	indexCount    int32
}

// Renderer owns the shader and primitive meshes. It implements
// shape.Program so the scene graph can draw straight into it.
type Renderer struct {
	config  Config
	program *shader.Program
	meshes  [shape.KindCount]gpuMesh
	log     *zap.Logger
}

var _ shape.Program = (*Renderer)(nil)

// New creates a renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{config: cfg, log: logger.Named("renderer")}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	bg := cfg.Background
	gl.ClearColor(bg.R, bg.G, bg.B, bg.A)

	var err error
	r.program, err = shader.New(shader.VertexSource, shader.FragmentSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	for k := shape.Cube; k < shape.KindCount; k++ {
		r.meshes[k] = upload(BuildMesh(k))
		r.log.Debug("mesh uploaded",
			zap.Stringer("kind", k),
			zap.Int32("indices", r.meshes[k].indexCount))
	}
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	return r, nil
}

func upload(m *Mesh) gpuMesh {
	var g gpuMesh
	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)

	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	vertexSize := int(unsafe.Sizeof(Vertex{}))
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*vertexSize, unsafe.Pointer(&m.Vertices[0]), gl.STATIC_DRAW)

	// Position
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, int32(vertexSize), 0)
	gl.EnableVertexAttribArray(0)
	// Normal
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, int32(vertexSize), 3*4)
	gl.EnableVertexAttribArray(1)

	gl.GenBuffers(1, &g.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, g.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, unsafe.Pointer(&m.Indices[0]), gl.STATIC_DRAW)

	g.indexCount = int32(len(m.Indices))
	gl.BindVertexArray(0)
	return g
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	for i := range r.meshes {
		g := &r.meshes[i]
		if g.vao != 0 {
			gl.DeleteVertexArrays(1, &g.vao)
			gl.DeleteBuffers(1, &g.vbo)
			gl.DeleteBuffers(1, &g.ebo)
		}
	}
	if r.program != nil {
		r.program.Delete()
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.log.Debug("renderer resized", zap.Int("width", width), zap.Int("height", height))
}

// Begin clears the frame and uploads the camera matrices. Clear color and
// depth test are set every frame since an overlay may change them.
func (r *Renderer) Begin(view, projection math.Mat4) {
	bg := r.config.Background
	gl.ClearColor(bg.R, bg.G, bg.B, bg.A)
	gl.Enable(gl.DEPTH_TEST)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	r.program.Use()
	r.program.SetMat4(shader.UniformView, view)
	r.program.SetMat4(shader.UniformProjection, projection)
	r.program.SetVec3(shader.UniformLightDir, r.config.LightDir)
}

// DrawScene draws every shape below root. The scene must be updated.
func (r *Renderer) DrawScene(root scenegraph.Component) {
	root.Base().Draw(r)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
}

// SetMat4 uploads a matrix uniform.
func (r *Renderer) SetMat4(name string, m math.Mat4) { r.program.SetMat4(name, m) }

// SetColor sets the color of the next primitive.
func (r *Renderer) SetColor(c palette.Color) { r.program.SetColor(c) }

// DrawPrimitive draws the unit mesh of kind k with the current uniforms.
func (r *Renderer) DrawPrimitive(k shape.Kind) {
	g := r.meshes[k]
	gl.BindVertexArray(g.vao)
	gl.DrawElementsWithOffset(gl.TRIANGLES, g.indexCount, gl.UNSIGNED_INT, 0)
}

// ReadPixels reads the current color buffer as bottom-up RGBA rows. An
// empty drawable, such as a minimized window, yields no pixels.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := pixelBuffer(w, h)
	if pixels == nil {
		return nil, 0, 0
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

func pixelBuffer(width, height int) []byte {
	if width <= 0 || height <= 0 {
		return nil
	}
	return make([]byte, width*height*4)
}
