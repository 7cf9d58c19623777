package generation

import (
	"errors"
	"reflect"
	"testing"

	"projectz/server/models"
	"projectz/server/world"
)

func TestValidateDimensions(t *testing.T) {
	g := NewGenerator("dims")
	tests := []struct {
		w, h int
		ok   bool
	}{
		{0, 64, false},
		{64, -16, false},
		{65, 64, false},
		{48, 64, false},
		{64, 64, true},
		{128, 64, true},
	}
	for _, tt := range tests {
		err := g.ValidateDimensions(tt.w, tt.h)
		if tt.ok && err != nil {
			t.Errorf("%dx%d: unexpected error %v", tt.w, tt.h, err)
		}
		if !tt.ok && !errors.Is(err, ErrInvalidDimensions) {
			t.Errorf("%dx%d: expected ErrInvalidDimensions, got %v", tt.w, tt.h, err)
		}
	}
}

func TestGenerateRejectsEmptyCatalog(t *testing.T) {
	m, err := NewGenerator("empty").Generate(64, 64, nil)
	if !errors.Is(err, ErrEmptyItemCatalog) || m != nil {
		t.Fatalf("got %v, %v", m, err)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, err := NewGenerator("round-trip").Generate(64, 64, testCatalog())
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewGenerator("round-trip").Generate(64, 64, testCatalog())
	if err != nil {
		t.Fatal(err)
	}

	sa, sb := a.Snapshot(), b.Snapshot()
	if !reflect.DeepEqual(sa.Ground, sb.Ground) || !reflect.DeepEqual(sa.Overlay, sb.Overlay) {
		t.Fatal("tile layers differ")
	}
	if !reflect.DeepEqual(sa.Items, sb.Items) || !reflect.DeepEqual(sa.Zombies, sb.Zombies) {
		t.Fatal("spawns differ")
	}
	if sa.PlayerStart != sb.PlayerStart || sa.FlagLocation != sb.FlagLocation {
		t.Fatal("salient points differ")
	}
	if a.Stats != b.Stats {
		t.Fatalf("stats differ: %+v %+v", a.Stats, b.Stats)
	}
}

func TestSmallestWorldIsTwoSafehouses(t *testing.T) {
	for _, seed := range []string{"a", "b", "c", "d"} {
		m, err := NewGenerator(seed).Generate(64, 64, testCatalog())
		if err != nil {
			t.Fatalf("seed %s: %v", seed, err)
		}
		if len(m.Plazas) != 2 || len(m.Roads) != 1 {
			t.Fatalf("seed %s: %d plazas %d roads", seed, len(m.Plazas), len(m.Roads))
		}
		if m.StartPlaza != 0 || m.GoalPlaza != 1 {
			t.Fatalf("seed %s: start %d goal %d", seed, m.StartPlaza, m.GoalPlaza)
		}
		if len(m.Buildings) != 2 {
			t.Fatalf("seed %s: %d buildings", seed, len(m.Buildings))
		}

		road := m.Roads[0]
		if !road.Primary || !road.Vertical || road.Size != 17 {
			t.Fatalf("seed %s: %+v", seed, road)
		}
		c := road.Center
		for x := c - 8; x <= c+8; x++ {
			if m.Grid.TypeAt(x, 0) != models.TileRoadCap || m.Grid.TypeAt(x, 63) != models.TileRoadCap {
				t.Fatalf("seed %s: cap missing at x=%d", seed, x)
			}
		}
		for y := 1; y < 63; y++ {
			if m.Grid.TypeAt(c, y) != models.TileCenterLane ||
				m.Grid.TypeAt(c-4, y) != models.TileLaneMarking ||
				m.Grid.TypeAt(c+4, y) != models.TileLaneMarking {
				t.Fatalf("seed %s: primary road broken at row %d", seed, y)
			}
			if models.IsRoadType(m.Grid.TypeAt(c-9, y)) || models.IsRoadType(m.Grid.TypeAt(c+9, y)) {
				t.Fatalf("seed %s: road wider than 17 at row %d", seed, y)
			}
		}
	}
}

func TestGeneratedCellsAreWellFormed(t *testing.T) {
	m, err := NewGenerator("cells").Generate(128, 128, testCatalog())
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < 128; y++ {
		for x := 0; x < 128; x++ {
			tile := m.Grid.Tile(x, y)
			if !tile.IsSet() || !models.IsKnownType(tile.Type()) {
				t.Fatalf("(%d,%d) has type %d", x, y, tile.Type())
			}
			if tile.Solid() != solidType(tile.Type()) {
				t.Fatalf("(%d,%d) type %d solid=%v", x, y, tile.Type(), tile.Solid())
			}
			over := m.Grid.OverlayTile(x, y)
			if over.Solid() || !models.IsOverlayType(over.Type()) {
				t.Fatalf("(%d,%d) overlay %d", x, y, over.Type())
			}
		}
	}
}

func TestSafehouseSalientPoints(t *testing.T) {
	m, err := NewGenerator("salient").Generate(256, 256, testCatalog())
	if err != nil {
		t.Fatal(err)
	}
	if m.StartPlaza == m.GoalPlaza {
		t.Fatal("start and goal share a plaza")
	}
	if m.Plazas[m.StartPlaza].Kind != world.PlazaStartSafehouse || m.Plazas[m.GoalPlaza].Kind != world.PlazaGoalSafehouse {
		t.Fatal("safehouse kinds not recorded")
	}
	if got := m.Grid.TypeAt(m.FlagLocation.X, m.FlagLocation.Y); got != models.TileVictoryFlag {
		t.Fatalf("flag tile is %d", got)
	}
	if !m.Plazas[m.StartPlaza].Bounds.Contains(m.FlagLocation) {
		t.Fatal("flag outside the start plaza")
	}
	if m.Grid.TypeAt(m.PlayerStart.X, m.PlayerStart.Y) != models.TileFloor || !m.Safehouse().Contains(m.PlayerStart) {
		t.Fatalf("player start %v", m.PlayerStart)
	}
	if m.Safehouse() != m.Plazas[m.GoalPlaza].Bounds {
		t.Fatal("safehouse bounds should be the goal plaza")
	}

	a, b := m.Plazas[m.StartPlaza].Bounds.Start, m.Plazas[m.GoalPlaza].Bounds.Start
	if !farEnough(a, b, SafehouseDistance(256, 256)) {
		t.Fatalf("safehouses %v and %v too close", a, b)
	}

	for _, bld := range m.Buildings {
		if bld.Role != world.RoleSafehouse {
			continue
		}
		for _, z := range m.Chunks.AllZombies() {
			if bld.Bounds.Contains(z.Tile) {
				t.Fatalf("zombie %v inside safehouse %+v", z.Tile, bld.Bounds)
			}
		}
	}
}

func TestSpawnsAreBucketedByTile(t *testing.T) {
	m, err := NewGenerator("buckets").Generate(128, 128, testCatalog())
	if err != nil {
		t.Fatal(err)
	}
	cols, rows := m.Chunks.Dimensions()
	if cols != 8 || rows != 8 {
		t.Fatalf("got %dx%d buckets", cols, rows)
	}
	items, zombies := 0, 0
	for cx := 0; cx < cols; cx++ {
		for cy := 0; cy < rows; cy++ {
			c := m.Chunks.ChunkAt(cx, cy)
			for _, it := range c.Items() {
				items++
				if !c.Bounds().Contains(it.Tile) {
					t.Fatalf("item %v in bucket %d,%d", it.Tile, cx, cy)
				}
				if it.PrototypeID == "" || it.ID == it.PrototypeID {
					t.Fatalf("item %+v not an instance", it)
				}
			}
			for _, z := range c.Zombies() {
				zombies++
				if !c.Bounds().Contains(z.Tile) {
					t.Fatalf("zombie %v in bucket %d,%d", z.Tile, cx, cy)
				}
			}
		}
	}
	if items != m.Stats.Items || zombies != m.Stats.Zombies {
		t.Fatalf("counted %d/%d, stats %+v", items, zombies, m.Stats)
	}
	if items == 0 {
		t.Fatal("expected spawned items")
	}
}

func TestGenerateRecordsStats(t *testing.T) {
	m, err := NewGenerator("stats").Generate(256, 128, testCatalog())
	if err != nil {
		t.Fatal(err)
	}
	if m.Stats.Plazas != len(m.Plazas) || m.Stats.Roads != len(m.Roads) || m.Stats.Buildings != len(m.Buildings) {
		t.Fatalf("stats out of sync: %+v", m.Stats)
	}
	if m.Stats.Rooms < m.Stats.Buildings {
		t.Fatalf("every building has at least one room: %+v", m.Stats)
	}
	if m.Seed != "stats" || m.Pathfinder == nil {
		t.Fatal("map not finished")
	}
}
