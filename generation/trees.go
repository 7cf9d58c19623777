package generation

import (
	"projectz/server/models"
)

// canopy lists the overlay tiles around a trunk
var canopy = []struct {
	dx, dy   int
	tileType int
	o        models.Orientation
}{
	{0, 0, models.TileCanopy, models.Up},
	{-1, -1, models.TileCanopyCorner, models.Right},
	{-1, 0, models.TileCanopy, models.Up},
	{-1, 1, models.TileCanopyCorner, models.Up},
	{0, -1, models.TileCanopy, models.Up},
	{0, 1, models.TileCanopy, models.Up},
	{1, -1, models.TileCanopyCorner, models.Down},
	{1, 0, models.TileCanopy, models.Up},
	{1, 1, models.TileCanopyCorner, models.Left},
}

// generateTrees plants trees on grass inside r, never letting two canopies
// touch, then populates the open ground.
func (l *layout) generateTrees(r models.Rect) {
	g := l.grid
	for x := r.Start.X; x <= r.End.X; x++ {
		for y := r.Start.Y; y <= r.End.Y; y++ {
			if g.TypeAt(x, y) != models.TileGrass {
				continue
			}
			if !chance(l.rng, l.params.TreeChance) || !l.canopyClear(x, y) {
				continue
			}
			g.SetTile(x, y, models.TileTreeTrunk, models.Up, true)
			for _, c := range canopy {
				g.SetOverlayTile(x+c.dx, y+c.dy, c.tileType, c.o)
			}
			l.m.Stats.Trees++
		}
	}
	l.spawner.PopulateForest(r)
}

// canopyClear reports whether the 3x3 block around (x, y) is on the map and free of canopy
func (l *layout) canopyClear(x, y int) bool {
	for _, c := range canopy {
		nx, ny := x+c.dx, y+c.dy
		if !l.grid.InBounds(nx, ny) {
			return false
		}
		if l.grid.OverlayTile(nx, ny).Type() >= models.TileTreeTrunk {
			return false
		}
	}
	return true
}
