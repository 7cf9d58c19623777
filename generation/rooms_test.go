package generation

import (
	"testing"

	"projectz/server/models"
	"projectz/server/world"
)

func fillFloor(l *layout, r models.Rect) {
	for x := r.Start.X; x <= r.End.X; x++ {
		for y := r.Start.Y; y <= r.End.Y; y++ {
			l.grid.SetTile(x, y, models.TileFloor, models.Up, false)
		}
	}
}

func TestGenerateWallVertical(t *testing.T) {
	l := newTestLayout(64, 64, 1)
	fillFloor(l, models.Rect{End: models.Point{X: 30, Y: 30}})
	l.generateWall(models.Point{X: 10, Y: 5}, models.Point{X: 10, Y: 20}, regularPalette)

	if l.grid.TypeAt(10, 4) != models.TileWallEnd || l.grid.TypeAt(10, 21) != models.TileWallEnd {
		t.Fatal("free ends should be capped")
	}
	for y := 5; y <= 20; y++ {
		want := models.TileRoomWall
		if y == 9 || y == 10 {
			want = models.TileDoor
		}
		if got := l.grid.TypeAt(10, y); got != want {
			t.Fatalf("y=%d got %d want %d", y, got, want)
		}
	}
	if l.grid.Solid(10, 10) || !l.grid.Solid(10, 11) {
		t.Fatal("doors walkable, walls solid")
	}
}

func TestGenerateWallHorizontalJoinsExistingWall(t *testing.T) {
	l := newTestLayout(64, 64, 1)
	fillFloor(l, models.Rect{End: models.Point{X: 30, Y: 30}})
	l.generateWall(models.Point{X: 10, Y: 5}, models.Point{X: 10, Y: 20}, regularPalette)
	l.generateWall(models.Point{X: 3, Y: 12}, models.Point{X: 10, Y: 12}, regularPalette)

	if got := l.grid.TypeAt(10, 12); got != models.TileRoomWallJoint {
		t.Fatalf("meeting point should be a joint, got %d", got)
	}
	if l.grid.TypeAt(2, 12) != models.TileWallEnd || l.grid.TypeAt(3, 12) != models.TileRoomWall {
		t.Fatal("free end should be capped")
	}
	for _, x := range []int{4, 5} {
		if got := l.grid.TypeAt(x, 12); got != models.TileFloor {
			t.Fatalf("gap at x=%d should stay floor, got %d", x, got)
		}
	}
	for x := 6; x <= 9; x++ {
		if l.grid.TypeAt(x, 12) != models.TileRoomWall {
			t.Fatalf("x=%d should be wall", x)
		}
	}
}

func TestRoomsRespectMaxArea(t *testing.T) {
	l := newTestLayout(64, 64, 8)
	r := models.Rect{Start: models.Point{X: 2, Y: 2}, End: models.Point{X: 40, Y: 33}}
	if err := l.placeBuilding(r, models.Up, world.RoleCorner, 0, regularPalette); err != nil {
		t.Fatal(err)
	}
	if len(l.rooms) < 2 {
		t.Fatalf("a %v building should be divided, got %d rooms", r.Span(), len(l.rooms))
	}
	inner := r.Inset(2)
	for _, room := range l.rooms {
		span := room.Span()
		if span.X*span.Y > l.params.MaxRoomArea {
			t.Fatalf("room %+v is too large", room)
		}
		if !inner.Contains(room.Start) || !inner.Contains(room.End) {
			t.Fatalf("room %+v escapes the building interior %+v", room, inner)
		}
	}
}

func TestPlaceBuildingRejectsSmallFootprint(t *testing.T) {
	l := newTestLayout(64, 64, 8)
	err := l.placeBuilding(models.Rect{End: models.Point{X: 6, Y: 20}}, models.Up, world.RoleCorner, 0, regularPalette)
	if err == nil {
		t.Fatal("expected an error")
	}
	l.tryBuilding(models.Rect{End: models.Point{X: 6, Y: 20}}, models.Up, world.RoleCorner, 0)
	if l.m.Stats.SkippedBuildings != 1 || len(l.m.Buildings) != 0 {
		t.Fatalf("skip not recorded: %+v", l.m.Stats)
	}
}

func TestPlaceBuildingLayout(t *testing.T) {
	l := newTestLayout(64, 64, 8)
	r := models.Rect{Start: models.Point{X: 10, Y: 10}, End: models.Point{X: 25, Y: 25}}
	if err := l.placeBuilding(r, models.Up, world.RoleCorner, 0, regularPalette); err != nil {
		t.Fatal(err)
	}
	for x := r.Start.X; x <= r.End.X; x++ {
		if l.grid.TypeAt(x, r.Start.Y) != models.TileBuildingBorder || l.grid.Solid(x, r.Start.Y) {
			t.Fatalf("border at x=%d should be walkable alley", x)
		}
	}
	if l.grid.TypeAt(11, 11) != models.TileWallCorner || !l.grid.Solid(11, 11) {
		t.Fatal("corner missing")
	}
	for _, d := range doorTiles(r, models.Up) {
		if l.grid.TypeAt(d.X, d.Y) != models.TileDoor {
			t.Fatalf("door missing at %v", d)
		}
	}
	if len(l.m.Buildings) != 1 || l.m.Buildings[0].Bounds != r {
		t.Fatalf("building not recorded: %+v", l.m.Buildings)
	}
}
