package player

import (
	"github.com/Faultbox/printsim/internal/config"
	"github.com/Faultbox/printsim/internal/engine/camera"
	"github.com/Faultbox/printsim/internal/engine/scene"
	"github.com/Faultbox/printsim/internal/ingest"
	"github.com/Faultbox/printsim/internal/loader"
	"github.com/Faultbox/printsim/internal/robot"
	"github.com/Faultbox/printsim/pkg/math"
)

var (
	defaultCameraPosition = math.Vec3{Y: 20, Z: 50}
	defaultCameraTarget   = math.Vec3{}
)

// CameraFromConfig builds the initial orbit camera.
func CameraFromConfig(c config.CameraConfig) *camera.OrbitCamera {
	pos := math.Vec3{X: c.Position[0], Y: c.Position[1], Z: c.Position[2]}
	target := math.Vec3{X: c.Target[0], Y: c.Target[1], Z: c.Target[2]}
	return camera.NewOrbitCamera(pos, target, c.FOV)
}

// TemplateFromConfig builds the template actor from the model section.
func TemplateFromConfig(c config.ModelConfig) *robot.Actor {
	m := scene.DefaultModel()
	m.Body.Bounds = c.BodyBounds
	m.Head.Bounds = c.HeadBounds
	scale := c.Scale
	if scale <= 0 {
		scale = robot.DefaultScale
	}
	return robot.New(m, scale)
}

// OptionsFromConfig wires every config-driven collaborator. Renderer and
// Display are left for the caller.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Interval: cfg.Playback.FrameInterval(),
		Ingest:   ingest.OptionsFromConfig(cfg.Colors),
		Template: TemplateFromConfig(cfg.Model),
		Fetcher:  loader.New(cfg.Playback.FetchTimeout),
		Camera:   CameraFromConfig(cfg.Camera),
		Grid:     true,
	}
}
