package background

import (
	"testing"

	"dinorun/internal/asset"
	"dinorun/internal/mathutil"
	"dinorun/internal/scene"
)

func TestNewSpawnsBothFamilies(t *testing.T) {
	sc := scene.New()
	b := New(asset.NewImmediate(sc), mathutil.NewRand(1))
	if len(b.Clouds()) != CloudCount || len(b.Scatter()) != ScatterCount {
		t.Fatalf("got %d clouds, %d scatter", len(b.Clouds()), len(b.Scatter()))
	}
	if sc.Len() != CloudCount+ScatterCount {
		t.Fatalf("scene has %d nodes", sc.Len())
	}
	for _, c := range b.Clouds() {
		if c.Position.Y() < cloudMinY || c.Position.Y() > cloudMaxY {
			t.Errorf("cloud y = %v", c.Position.Y())
		}
		if c.Scale < cloudMinScale || c.Scale > cloudMaxScale {
			t.Errorf("cloud scale = %v", c.Scale)
		}
	}
	for _, s := range b.Scatter() {
		if s.Position.Y() != 0 {
			t.Errorf("scatter y = %v", s.Position.Y())
		}
		if s.Position.Z() < FarZ || s.Position.Z() > NearZ {
			t.Errorf("scatter z = %v", s.Position.Z())
		}
	}
}

func TestScatterUsesModelScale(t *testing.T) {
	sc := scene.New()
	b := New(asset.NewImmediate(sc), mathutil.NewRand(2))
	want := map[string]float64{}
	for _, m := range scatterModels {
		want[m.name] = m.scale
	}
	for _, s := range b.Scatter() {
		if s.Scale != want[s.Node().Model] {
			t.Errorf("%s: scale %v, want %v", s.Node().Model, s.Scale, want[s.Node().Model])
		}
	}
}

func TestItemsScrollAndWrap(t *testing.T) {
	sc := scene.New()
	b := New(asset.NewImmediate(sc), mathutil.NewRand(3))
	for step := 0; step < 300; step++ {
		b.Update(1)
		for _, it := range append(b.Clouds(), b.Scatter()...) {
			x := it.Position.X()
			if x < WrapX || x > FarMaxX {
				t.Fatalf("step %d: x = %v outside [%v, %v]", step, x, WrapX, FarMaxX)
			}
			if it.Node().Position != it.Position {
				t.Fatal("node not synced")
			}
		}
	}
}

func TestWrapTeleportsPastFarEdge(t *testing.T) {
	sc := scene.New()
	b := New(asset.NewImmediate(sc), mathutil.NewRand(4))
	it := b.Clouds()[0]
	it.Position[0] = WrapX + 1
	y, z := it.Position.Y(), it.Position.Z()

	it.Update(0.5)
	if x := it.Position.X(); x < FarMinX || x > FarMaxX {
		t.Fatalf("wrapped x = %v", x)
	}
	if it.Position.Y() != y || it.Position.Z() != z {
		t.Fatal("wrap changed height or depth")
	}
}

func TestItemsWithoutRepresentationAreSkipped(t *testing.T) {
	sc := scene.New()
	l := asset.NewLoader(sc)
	b := New(l, mathutil.NewRand(5))
	b.Update(1)
	for _, it := range b.Clouds() {
		if it.Ready() || it.Position.X() != 0 {
			t.Fatal("unloaded item moved")
		}
	}

	l.Wait()
	l.Poll()
	for _, it := range b.Clouds() {
		if !it.Ready() {
			t.Fatal("item not attached after Poll")
		}
	}
}
