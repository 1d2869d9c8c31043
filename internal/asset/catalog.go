package asset

import (
	"github.com/go-gl/mathgl/mgl64"

	"dinorun/internal/geom"
)

// Model names known to the default catalog.
const (
	Cactus = "cactus"
	Raptor = "raptor"

	Cloud1 = "cloud1"
	Cloud2 = "cloud2"
	Cloud3 = "cloud3"

	SmallPalmTree = "small-palm-tree"
	BigPalmTree   = "big-palm-tree"
	Skull         = "skull"
	Scorpion      = "scorpion"
	Pyramid       = "pyramid"
	Monument      = "monument"
	Cactus1       = "cactus1"
	Cactus2       = "cactus2"
	Cactus3       = "cactus3"
)

// Model describes a loadable representation in model-space units.
type Model struct {
	Name   string
	Bounds geom.AABB
}

// Catalog maps model names to their descriptions.
type Catalog map[string]Model

func box(x0, y0, z0, x1, y1, z1 float64) geom.AABB {
	return geom.Box(mgl64.Vec3{x0, y0, z0}, mgl64.Vec3{x1, y1, z1})
}

// DefaultCatalog returns the models used by the game. Obstacles and the
// player are authored in centimetres and scaled down at spawn time;
// decorations are authored in metres.
func DefaultCatalog() Catalog {
	models := []Model{
		// Footprint is small enough that a yawed cactus stays within one
		// cluster unit, so members of a cluster never overlap.
		{Cactus, box(-35, 0, -35, 35, 220, 35)},
		{Raptor, box(-150, 0, -350, 150, 450, 350)},

		{Cloud1, box(-2, -0.5, -1, 2, 0.5, 1)},
		{Cloud2, box(-3, -0.7, -1.5, 3, 0.7, 1.5)},
		{Cloud3, box(-1.5, -0.4, -1, 1.5, 0.4, 1)},

		{SmallPalmTree, box(-0.5, 0, -0.5, 0.5, 2, 0.5)},
		{BigPalmTree, box(-0.6, 0, -0.6, 0.6, 3, 0.6)},
		{Skull, box(-0.3, 0, -0.3, 0.3, 0.3, 0.3)},
		{Scorpion, box(-0.4, 0, -0.3, 0.4, 0.2, 0.3)},
		{Pyramid, box(-1, 0, -1, 1, 1, 1)},
		{Monument, box(-0.5, 0, -0.5, 0.5, 2, 0.5)},
		{Cactus1, box(-0.2, 0, -0.2, 0.2, 1, 0.2)},
		{Cactus2, box(-0.3, 0, -0.2, 0.3, 1.2, 0.2)},
		{Cactus3, box(-0.35, 0, -0.35, 0.35, 2.2, 0.35)},
	}
	c := make(Catalog, len(models))
	for _, m := range models {
		c[m.Name] = m
	}
	return c
}
