package world

import (
	"reflect"
	"strings"
	"testing"

	"projectz/server/models"
)

func TestSnapshotRestore(t *testing.T) {
	m := NewMap(32, 32)
	m.Name = "test"
	m.Grid.SetTile(4, 4, models.TileFloor, models.Up, false)
	m.Grid.SetOverlayTile(5, 5, models.TileCanopyCorner, models.Left)
	m.Plazas = []Plaza{{Bounds: models.NewRect(models.Point{}, models.Point{X: 10, Y: 10})}, {}}
	m.StartPlaza, m.GoalPlaza = 0, 1
	m.PlayerStart = models.Point{X: 4, Y: 4}

	it := &models.Item{ID: "medkit-1", Kind: models.KindConsumable, Rarity: 3, Consumable: &models.Consumable{Uses: 1}}
	it.PlaceAt(models.Point{X: 20, Y: 20})
	if err := m.Chunks.AddItem(it); err != nil {
		t.Fatal(err)
	}
	if err := m.Chunks.AddZombie(models.NewZombie("z", models.Point{X: 1, Y: 30}, 4)); err != nil {
		t.Fatal(err)
	}

	restored, err := Restore(m.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	if restored.Grid.Tile(4, 4) != m.Grid.Tile(4, 4) || restored.Grid.OverlayTile(5, 5) != m.Grid.OverlayTile(5, 5) {
		t.Fatal("layers differ after restore")
	}
	if restored.Stats.Items != 1 || restored.Stats.Zombies != 1 {
		t.Fatalf("stats %+v", restored.Stats)
	}
	if restored.Plazas[0].Kind != PlazaStartSafehouse || restored.Plazas[1].Kind != PlazaGoalSafehouse {
		t.Fatalf("plaza kinds %+v", restored.Plazas)
	}
	if restored.Pathfinder == nil {
		t.Fatal("pathfinder not built")
	}
}

func TestSnapshotRestoreKeepsLayout(t *testing.T) {
	m := NewMap(32, 32)
	m.Plazas = []Plaza{
		{Bounds: models.Rect{End: models.Point{X: 10, Y: 10}}, Kind: PlazaStartSafehouse},
		{Bounds: models.Rect{Start: models.Point{X: 20}, End: models.Point{X: 31, Y: 10}}, Kind: PlazaGoalSafehouse},
		{Bounds: models.Rect{Start: models.Point{Y: 20}, End: models.Point{X: 10, Y: 31}}, Kind: PlazaOpen},
	}
	m.StartPlaza, m.GoalPlaza = 0, 1
	m.Buildings = []Building{{Bounds: models.Rect{End: models.Point{X: 9, Y: 9}}, Facing: models.Left, Role: RoleSafehouse}}
	m.Roads = []Road{{Vertical: true, Center: 15, Size: 17, Primary: true}}
	m.Stats.SkippedPlazas, m.Stats.Rooms, m.Stats.Trees = 1, 4, 7
	m.Finish()

	restored, err := Restore(m.Snapshot())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(restored.Plazas, m.Plazas) || !reflect.DeepEqual(restored.Buildings, m.Buildings) || !reflect.DeepEqual(restored.Roads, m.Roads) {
		t.Fatalf("layout lost: %+v %+v %+v", restored.Plazas, restored.Buildings, restored.Roads)
	}
	if restored.Stats != m.Stats {
		t.Fatalf("stats %+v, want %+v", restored.Stats, m.Stats)
	}
}

func TestSnapshotCopiesEntities(t *testing.T) {
	m := NewMap(32, 32)
	it := &models.Item{ID: "bat-1", Kind: models.KindMelee, Rarity: 3, State: models.ItemDropped, Melee: &models.Melee{SwingSpeed: 2}}
	it.PlaceAt(models.Point{X: 3, Y: 3})
	if err := m.Chunks.AddItem(it); err != nil {
		t.Fatal(err)
	}
	z := models.NewZombie("z", models.Point{X: 5, Y: 5}, 1)
	if err := m.Chunks.AddZombie(z); err != nil {
		t.Fatal(err)
	}

	snap := m.Snapshot()
	it.State = models.ItemInventory
	it.Melee.SwingSpeed = 9
	z.HP = 0
	if snap.Items[0].State != models.ItemDropped || snap.Items[0].Melee.SwingSpeed != 2 || snap.Zombies[0].HP != models.ZombieHealth {
		t.Fatalf("snapshot follows the live map: %+v %+v", snap.Items[0], snap.Zombies[0])
	}

	restored, err := Restore(snap)
	if err != nil {
		t.Fatal(err)
	}
	restored.Chunks.AllItems()[0].State = models.ItemInventory
	if snap.Items[0].State != models.ItemDropped {
		t.Fatal("restored map shares items with the snapshot")
	}
}

func TestRestoreRejectsBadSnapshot(t *testing.T) {
	gm := &models.GameMap{Width: 16, Height: 16, Ground: make([]models.Tile, 10), Overlay: make([]models.Tile, 256)}
	if _, err := Restore(gm); err == nil {
		t.Fatal("expected layer size error")
	}
	gm = &models.GameMap{Width: 20, Height: 16}
	if _, err := Restore(gm); err == nil {
		t.Fatal("expected chunk size error")
	}
}

func TestRenderASCII(t *testing.T) {
	g := NewTileGrid(3, 2)
	g.SetTile(0, 0, models.TileGrass, models.Up, false)
	g.SetTile(1, 0, models.TileCurb, models.Up, false)
	g.SetTile(2, 0, models.TileTreeTrunk, models.Up, true)
	out := RenderASCII(g)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 2 || lines[0] != ".=T" || lines[1] != "???" {
		t.Fatalf("unexpected render %q", out)
	}
}
