package world

import (
	"strings"

	"projectz/server/models"
)

// RenderASCII draws the ground layer with one rune per tile.
// Canopy on the overlay layer is drawn over grass.
func RenderASCII(g *TileGrid) string {
	var b strings.Builder
	b.Grow((g.Width() + 1) * g.Height())
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			b.WriteByte(glyph(g.Tile(x, y), g.OverlayTile(x, y)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func glyph(ground, overlay models.Tile) byte {
	t := ground.Type()
	switch {
	case t == models.TileTreeTrunk:
		return 'T'
	case overlay.IsSet() && t == models.TileGrass:
		return '^'
	case t == models.TileGrass:
		return '.'
	case t == models.TileLaneMarking || t == models.TileCenterLane:
		return ':'
	case models.IsRoadType(t):
		return '='
	case t == models.TileDoor:
		return '+'
	case t == models.TileVictoryFlag:
		return 'F'
	case t == models.TileFloor:
		return ' '
	case t == models.TileBuildingBorder:
		return ','
	case models.IsWallType(t):
		return '#'
	case t == models.TileUnset:
		return '?'
	}
	return '*'
}
