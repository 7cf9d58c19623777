package world

import (
	"errors"
	"testing"

	"projectz/server/models"
)

func TestFindPathAroundWall(t *testing.T) {
	g := NewTileGrid(16, 16)
	// wall at x=5 from y=0..14, leaving a gap at y=15
	for y := 0; y < 15; y++ {
		g.SetTile(5, y, models.TileInnerWall, models.Up, true)
	}

	path, err := NewPathfinder(g).FindPath(models.Point{X: 0, Y: 0}, models.Point{X: 10, Y: 0})
	if err != nil {
		t.Fatal(err)
	}
	if path[0] != (models.Point{X: 0, Y: 0}) || path[len(path)-1] != (models.Point{X: 10, Y: 0}) {
		t.Fatalf("path endpoints %v .. %v", path[0], path[len(path)-1])
	}
	// down 15, across 10, up 15
	if len(path) != 41 {
		t.Fatalf("path length %d, want 41", len(path))
	}
	for i := 1; i < len(path); i++ {
		if manhattan(path[i-1], path[i]) != 1 {
			t.Fatalf("step %d jumps from %v to %v", i, path[i-1], path[i])
		}
		if g.Solid(path[i].X, path[i].Y) {
			t.Fatalf("path crosses solid tile %v", path[i])
		}
	}
}

func TestFindPathBlocked(t *testing.T) {
	g := NewTileGrid(16, 16)
	for y := 0; y < 16; y++ {
		g.SetTile(8, y, models.TileInnerWall, models.Up, true)
	}
	_, err := NewPathfinder(g).FindPath(models.Point{X: 0, Y: 0}, models.Point{X: 15, Y: 15})
	if !errors.Is(err, ErrNoPath) {
		t.Fatalf("err = %v, want ErrNoPath", err)
	}
}

func TestFindPathRejectsSolidEndpoints(t *testing.T) {
	g := NewTileGrid(16, 16)
	g.SetTile(3, 3, models.TileTreeTrunk, models.Up, true)
	if _, err := NewPathfinder(g).FindPath(models.Point{X: 3, Y: 3}, models.Point{X: 0, Y: 0}); !errors.Is(err, ErrNoPath) {
		t.Fatalf("err = %v", err)
	}
}
