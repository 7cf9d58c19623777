package generation

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestSeedValue(t *testing.T) {
	if SeedValue("42") != 42 || SeedValue("-7") != -7 {
		t.Fatal("decimal seeds should be used as is")
	}
	if SeedValue("city") != SeedValue("city") {
		t.Fatal("hashing is not stable")
	}
	if SeedValue("city") == SeedValue("cities") {
		t.Fatal("different seeds collided")
	}
}

func TestInjectedStreamsMatchTheSeed(t *testing.T) {
	bySeed := NewGenerator("42")
	byRand := NewGenerator("ignored", WithRand(rand.New(rand.NewSource(42))))
	bySetSeed := NewGenerator("ignored")
	bySetSeed.SetSeed(42)

	var worlds [][]any
	for _, g := range []*Generator{bySeed, byRand, bySetSeed} {
		m, err := g.Generate(64, 64, testCatalog())
		if err != nil {
			t.Fatal(err)
		}
		s := m.Snapshot()
		worlds = append(worlds, []any{s.Ground, s.Overlay, s.Items, s.Zombies, s.PlayerStart})
	}
	for i := 1; i < len(worlds); i++ {
		if !reflect.DeepEqual(worlds[0], worlds[i]) {
			t.Fatalf("generator %d diverged from the seeded one", i)
		}
	}
}

func TestWithParams(t *testing.T) {
	g := NewGenerator("params", WithParams(Params{MinWorldSize: 128, MaxRoomArea: 81}))
	p := g.Params()
	if p.MinWorldSize != 128 || p.MaxRoomArea != 81 {
		t.Fatalf("overrides lost: %+v", p)
	}
	if p.MainRoadSize != DefaultParams().MainRoadSize {
		t.Fatalf("unset fields should take defaults: %+v", p)
	}
	if err := g.ValidateDimensions(64, 64); err == nil {
		t.Fatal("64x64 is below the raised minimum")
	}
	if _, err := g.Generate(128, 128, testCatalog()); err != nil {
		t.Fatal(err)
	}
}
