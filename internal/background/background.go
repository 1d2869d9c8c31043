// Package background scrolls non-colliding scenery behind the track. Items
// are created once per session and wrap around instead of being pooled.
package background

import (
	"log"

	"github.com/go-gl/mathgl/mgl64"

	"dinorun/internal/asset"
	"dinorun/internal/geom"
	"dinorun/internal/mathutil"
	"dinorun/internal/scene"
	"dinorun/internal/world"
)

const (
	CloudCount   = 25
	ScatterCount = 50

	ScrollSpeed = 10.0
	WrapX       = -100.0 // items left of this jump back past the far edge
	FarMinX     = 2000.0
	FarMaxX     = 3000.0
	SpreadMaxX  = 2000.0
	NearZ       = 500.0
	FarZ        = -1000.0

	cloudMinY     = 100.0
	cloudMaxY     = 200.0
	cloudMinScale = 10.0
	cloudMaxScale = 20.0
)

var cloudModels = []string{asset.Cloud1, asset.Cloud2, asset.Cloud3}

type scatterModel struct {
	name  string
	scale float64
}

var scatterModels = []scatterModel{
	{asset.SmallPalmTree, 3},
	{asset.BigPalmTree, 5},
	{asset.Skull, 1},
	{asset.Scorpion, 1},
	{asset.Pyramid, 40},
	{asset.Monument, 10},
	{asset.Cactus1, 5},
	{asset.Cactus2, 5},
	{asset.Cactus3, 5},
}

// Family groups decorations that share placement rules.
type Family int

const (
	Clouds Family = iota
	Scatter
)

// Item is one decoration.
type Item struct {
	Family   Family
	Position mgl64.Vec3
	Rotation mgl64.Quat
	Scale    float64

	node *scene.Node
	rng  *mathutil.Rand
}

func (it *Item) Ready() bool       { return it.node != nil }
func (it *Item) Node() *scene.Node { return it.node }

// place randomizes the item once its representation is available.
func (it *Item) place(scale float64) func(*scene.Node) {
	return func(n *scene.Node) {
		it.node = n
		it.Position[0] = it.rng.RandRange(0, SpreadMaxX)
		it.Position[2] = it.rng.RandRange(NearZ, FarZ)
		if it.Family == Clouds {
			it.Position[1] = it.rng.RandRange(cloudMinY, cloudMaxY)
			it.Scale = it.rng.RandRange(cloudMinScale, cloudMaxScale)
		} else {
			it.Scale = scale
		}
		it.Rotation = geom.Yaw(it.rng.Angle())
		it.sync()
	}
}

func (it *Item) sync() {
	it.node.Position = it.Position
	it.node.Orientation = it.Rotation
	it.node.Scale = it.Scale
}

// Update scrolls the item and wraps it past the far edge.
func (it *Item) Update(dt float64) {
	if it.node == nil {
		return
	}
	it.Position[0] -= dt * ScrollSpeed
	if it.Position.X() < WrapX {
		it.Position[0] = it.rng.RandRange(FarMinX, FarMaxX)
	}
	it.sync()
}

// Background owns both decoration families.
type Background struct {
	clouds  []*Item
	scatter []*Item
}

// New spawns every decoration and requests its representation.
func New(l world.Loader, rng *mathutil.Rand) *Background {
	b := &Background{
		clouds:  make([]*Item, 0, CloudCount),
		scatter: make([]*Item, 0, ScatterCount),
	}
	if l == nil {
		return b
	}
	b.spawnClouds(l, rng)
	b.spawnScatter(l, rng)
	return b
}

func newItem(f Family, rng *mathutil.Rand) *Item {
	return &Item{Family: f, Rotation: mgl64.QuatIdent(), Scale: 1, rng: rng}
}

func (b *Background) spawnClouds(l world.Loader, rng *mathutil.Rand) {
	for i := 0; i < CloudCount; i++ {
		it := newItem(Clouds, rng)
		name := cloudModels[rng.Pick(len(cloudModels))]
		if err := l.Load(name, it.place(1)); err != nil {
			log.Printf("background: cloud stays hidden: %v", err)
		}
		b.clouds = append(b.clouds, it)
	}
}

func (b *Background) spawnScatter(l world.Loader, rng *mathutil.Rand) {
	for i := 0; i < ScatterCount; i++ {
		it := newItem(Scatter, rng)
		m := scatterModels[rng.Pick(len(scatterModels))]
		if err := l.Load(m.name, it.place(m.scale)); err != nil {
			log.Printf("background: scatter stays hidden: %v", err)
		}
		b.scatter = append(b.scatter, it)
	}
}

func (b *Background) Update(dt float64) {
	if dt < 0 {
		return
	}
	for _, c := range b.clouds {
		c.Update(dt)
	}
	for _, s := range b.scatter {
		s.Update(dt)
	}
}

func (b *Background) Clouds() []*Item  { return b.clouds }
func (b *Background) Scatter() []*Item { return b.scatter }
