// Package snapshot renders a replay scene to an image without a GPU, for the
// headless CLI and for tests.
package snapshot

import (
	"image"
	"image/color"
	"image/draw"
	gomath "math"

	"golang.org/x/image/vector"

	"github.com/Faultbox/printsim/internal/engine/camera"
	"github.com/Faultbox/printsim/internal/engine/debug"
	"github.com/Faultbox/printsim/internal/engine/scene"
	"github.com/Faultbox/printsim/pkg/gradient"
	"github.com/Faultbox/printsim/pkg/math"
)

// Background is the clear color.
var Background = color.RGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 0xff}

// Renderer rasterizes scene lines and robot wireframes into an RGBA image.
type Renderer struct {
	width, height int
	lineWidth     float32

	img    *image.RGBA
	raster *vector.Rasterizer
	frames int
}

// New creates a renderer with a fixed output size.
func New(width, height int) *Renderer {
	return &Renderer{
		width:     width,
		height:    height,
		lineWidth: 1.5,
		img:       image.NewRGBA(image.Rect(0, 0, width, height)),
		raster:    vector.NewRasterizer(width, height),
	}
}

// Render draws sc as seen from cam, replacing the previous image.
func (r *Renderer) Render(sc *scene.Scene, cam *camera.OrbitCamera) error {
	draw.Draw(r.img, r.img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	vp := cam.ViewProjection(float32(r.width) / float32(r.height))

	for _, l := range sc.Lines() {
		for _, pl := range l.Polylines() {
			r.strokePolyline(vp, pl.Points, rgba(pl.Color))
		}
	}

	for _, m := range sc.Models() {
		r.strokeModel(vp, m)
	}

	r.frames++
	return nil
}

// Image returns the most recent frame. It is overwritten by the next Render.
func (r *Renderer) Image() *image.RGBA {
	return r.img
}

// Frames returns how many times Render has run.
func (r *Renderer) Frames() int {
	return r.frames
}

func (r *Renderer) strokePolyline(vp math.Mat4, points []math.Vec3, c color.RGBA) {
	r.raster.Reset(r.width, r.height)
	drawn := false
	for i := 1; i < len(points); i++ {
		if r.segment(vp, points[i-1], points[i]) {
			drawn = true
		}
	}
	if drawn {
		r.raster.Draw(r.img, r.img.Bounds(), image.NewUniform(c), image.Point{})
	}
}

func (r *Renderer) strokeModel(vp math.Mat4, m *scene.Model) {
	for _, part := range []scene.Part{m.Body, m.Head} {
		r.raster.Reset(r.width, r.height)
		drawn := false
		for _, e := range debug.PartEdges(part) {
			if r.segment(vp, e[0], e[1]) {
				drawn = true
			}
		}
		if drawn {
			r.raster.Draw(r.img, r.img.Bounds(), image.NewUniform(partColor(part)), image.Point{})
		}
	}
}

// segment adds a thin quad for a-b to the rasterizer path. Segments with an
// endpoint behind the camera are skipped.
func (r *Renderer) segment(vp math.Mat4, a, b math.Vec3) bool {
	ax, ay, ok := r.toScreen(vp, a)
	if !ok {
		return false
	}
	bx, by, ok := r.toScreen(vp, b)
	if !ok {
		return false
	}

	dx, dy := bx-ax, by-ay
	length := float32(gomath.Hypot(float64(dx), float64(dy)))
	if length < 1e-3 {
		dx, dy, length = 1, 0, 1
	}
	nx := -dy / length * r.lineWidth / 2
	ny := dx / length * r.lineWidth / 2

	r.raster.MoveTo(ax+nx, ay+ny)
	r.raster.LineTo(bx+nx, by+ny)
	r.raster.LineTo(bx-nx, by-ny)
	r.raster.LineTo(ax-nx, ay-ny)
	r.raster.ClosePath()
	return true
}

func (r *Renderer) toScreen(vp math.Mat4, p math.Vec3) (x, y float32, ok bool) {
	ndc, ok := vp.Project(p)
	if !ok {
		return 0, 0, false
	}
	x = (ndc.X + 1) / 2 * float32(r.width)
	y = (1 - ndc.Y) / 2 * float32(r.height)
	return x, y, true
}

func rgba(c gradient.RGB) color.RGBA {
	red, green, blue := gradient.Unpack(c)
	return color.RGBA{R: uint8(red), G: uint8(green), B: uint8(blue), A: 0xff}
}

func partColor(p scene.Part) color.RGBA {
	return color.RGBA{
		R: uint8(p.Color[0] * 255),
		G: uint8(p.Color[1] * 255),
		B: uint8(p.Color[2] * 255),
		A: 0xff,
	}
}
