package robot

import (
	"github.com/Faultbox/printsim/internal/engine/scene"
	"github.com/Faultbox/printsim/pkg/math"
)

// DefaultScale is the uniform scale applied to both model parts.
const DefaultScale = 4

// Actor is one replayed robot: a visual model plus its keyframe track.
type Actor struct {
	model *scene.Model
	track Track
}

// New wraps model as an actor, scaling both parts by scale.
// The actor takes ownership of model.
func New(model *scene.Model, scale float32) *Actor {
	model.SetScale(scale)
	return &Actor{model: model}
}

// Model returns the actor's scene node.
func (a *Actor) Model() *scene.Model {
	return a.model
}

// AddKeyframe appends a keyframe to the track.
func (a *Actor) AddKeyframe(k Keyframe) {
	a.track.Append(k)
}

// Track returns the actor's keyframe track.
func (a *Actor) Track() Track {
	return a.track
}

// SetTrack replaces the actor's keyframes.
func (a *Actor) SetTrack(t Track) {
	a.track = NewTrack(t.keys...)
}

// SetFrame poses the model at frame i. Frames past the end of the track leave
// the pose unchanged and report false.
func (a *Actor) SetFrame(i int) bool {
	k, ok := a.track.At(i)
	if !ok {
		return false
	}
	a.setLocation(k.X, k.Y, k.Z)
	a.setRotation(k.Rotation)
	return true
}

// The body stays on the build plate; only the print head follows the height.
func (a *Actor) setLocation(x, y, z float64) {
	a.model.Body.Position = math.V3(x, 0, z)
	a.model.Head.Position = math.V3(x, y, z)
}

func (a *Actor) setRotation(theta float64) {
	a.model.Body.Yaw = float32(theta)
	a.model.Head.Yaw = float32(theta)
}

// Clone returns an actor with a copy of this actor's model and an empty track.
func (a *Actor) Clone() *Actor {
	return &Actor{model: a.model.Clone()}
}

// AddTo attaches the actor's model to g.
func (a *Actor) AddTo(g scene.Graph) {
	g.Add(a.model)
}

// RemoveFrom detaches the actor's model from g.
func (a *Actor) RemoveFrom(g scene.Graph) {
	g.Remove(a.model)
}
