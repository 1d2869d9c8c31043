package world

import (
	"github.com/go-gl/mathgl/mgl64"

	"dinorun/internal/asset"
	"dinorun/internal/geom"
	"dinorun/internal/scene"
)

// Loader supplies entity representations.
type Loader interface {
	Load(name string, ready asset.ReadyFunc) error
}

// Entity is one scrolling obstacle.
type Entity struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Scale       float64

	collider geom.AABB
	visible  bool
	node     *scene.Node
}

// NewEntity creates a visible obstacle and requests its representation.
// Until the representation arrives the entity is inert: it moves, but it has
// no collider and nothing is drawn.
func NewEntity(l Loader) (*Entity, error) {
	e := &Entity{
		Orientation: mgl64.QuatIdent(),
		Scale:       1,
		collider:    geom.Empty(),
		visible:     true,
	}
	if err := l.Load(asset.Cactus, e.attach); err != nil {
		return e, err
	}
	return e, nil
}

func (e *Entity) attach(n *scene.Node) {
	e.node = n
	e.sync()
}

func (e *Entity) sync() {
	e.node.Position = e.Position
	e.node.Orientation = e.Orientation
	e.node.Scale = e.Scale
	e.node.Visible = e.visible
}

// Ready reports whether the representation has been attached.
func (e *Entity) Ready() bool { return e.node != nil }

func (e *Entity) Visible() bool { return e.visible }

// Collider returns the bounding box computed by the last Update.
func (e *Entity) Collider() geom.AABB { return e.collider }

// Node returns the attached representation, or nil.
func (e *Entity) Node() *scene.Node { return e.node }

// Show marks the entity visible again when it leaves the free list.
func (e *Entity) Show() {
	e.visible = true
}

func (e *Entity) hide() {
	e.visible = false
	e.collider = geom.Empty()
	if e.node != nil {
		e.node.Visible = false
	}
}

// Update pushes the transform to the representation and recomputes the
// collider from it.
func (e *Entity) Update() {
	if e.node == nil {
		return
	}
	e.sync()
	if !e.visible {
		e.collider = geom.Empty()
		return
	}
	e.collider = e.node.WorldBounds()
}
