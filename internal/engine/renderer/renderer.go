// Package renderer draws a replay scene with OpenGL line primitives.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/printsim/internal/engine/camera"
	"github.com/Faultbox/printsim/internal/engine/debug"
	"github.com/Faultbox/printsim/internal/engine/scene"
	"github.com/Faultbox/printsim/internal/engine/shader"
	"github.com/Faultbox/printsim/internal/logger"
	"github.com/Faultbox/printsim/pkg/gradient"
)

const vertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aColor;

uniform mat4 uViewProj;

out vec3 vertexColor;

void main() {
	gl_Position = uViewProj * vec4(aPos, 1.0);
	vertexColor = aColor;
}
`

const fragmentShader = `
#version 410 core

in vec3 vertexColor;
out vec4 FragColor;

void main() {
	FragColor = vec4(vertexColor, 1.0);
}
`

// floats per vertex: position + color
const stride = 6

// ClearColor matches the headless snapshot background.
var ClearColor = gradient.RGB(0x1a1a1a)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer draws scene lines and robot wireframes.
type Renderer struct {
	config  Config
	program *shader.Program
	vao     uint32
	vbo     uint32

	// Printed groups never change, so their vertices are built once.
	cache    map[uuid.UUID][]float32
	vertices []float32
}

// New creates a new renderer. Must be called after the GL context exists.
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	cr, cg, cb := ClearColor.Floats()
	gl.ClearColor(cr, cg, cb, 1.0)

	program, err := shader.NewProgram(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}

	r := &Renderer{
		config:  cfg,
		program: program,
		cache:   make(map[uuid.UUID][]float32),
	}

	gl.GenVertexArrays(1, &r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride*4, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(1)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	r.program.Delete()
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Render clears the frame and draws sc from cam.
func (r *Renderer) Render(sc *scene.Scene, cam *camera.OrbitCamera) error {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	r.vertices = r.vertices[:0]
	for _, l := range sc.Lines() {
		r.vertices = append(r.vertices, r.lineVertices(l)...)
	}
	for _, m := range sc.Models() {
		r.appendModel(m)
	}
	if len(r.vertices) == 0 {
		return nil
	}

	aspect := float32(r.config.Width) / float32(max(r.config.Height, 1))
	vp := cam.ViewProjection(aspect)

	r.program.Use()
	r.program.SetMat4("uViewProj", (*[16]float32)(&vp))

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.vertices)*4, unsafe.Pointer(&r.vertices[0]), gl.STREAM_DRAW)
	gl.DrawArrays(gl.LINES, 0, int32(len(r.vertices)/stride))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		return fmt.Errorf("gl error 0x%x", code)
	}
	return nil
}

// ReadPixels returns the current framebuffer as RGBA bytes, bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	w, h := r.config.Width, r.config.Height
	pixels := make([]byte, w*h*4)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, w, h
}

// ForgetUnused drops cached vertices for nodes no longer in sc.
func (r *Renderer) ForgetUnused(sc *scene.Scene) {
	live := make(map[uuid.UUID]struct{}, sc.Len())
	sc.Walk(func(n scene.Node) {
		live[n.ID()] = struct{}{}
	})
	for id := range r.cache {
		if _, ok := live[id]; !ok {
			delete(r.cache, id)
		}
	}
}

// lineVertices expands polylines into GL_LINES segment pairs.
func (r *Renderer) lineVertices(l scene.Lines) []float32 {
	if v, ok := r.cache[l.ID()]; ok {
		return v
	}
	var v []float32
	for _, pl := range l.Polylines() {
		cr, cg, cb := pl.Color.Floats()
		for i := 1; i < len(pl.Points); i++ {
			a, b := pl.Points[i-1], pl.Points[i]
			v = append(v,
				a.X, a.Y, a.Z, cr, cg, cb,
				b.X, b.Y, b.Z, cr, cg, cb,
			)
		}
	}
	r.cache[l.ID()] = v
	return v
}

func (r *Renderer) appendModel(m *scene.Model) {
	for _, part := range []scene.Part{m.Body, m.Head} {
		c := part.Color
		for _, e := range debug.PartEdges(part) {
			r.vertices = append(r.vertices,
				e[0].X, e[0].Y, e[0].Z, c[0], c[1], c[2],
				e[1].X, e[1].Y, e[1].Z, c[0], c[1], c[2],
			)
		}
	}
}
