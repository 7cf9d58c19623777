package world

import (
	"fmt"

	"projectz/server/models"
)

// TileGrid holds the ground and overlay layers of a map.
// Both layers are row-major and share the same dimensions.
type TileGrid struct {
	width   int
	height  int
	ground  []models.Tile
	overlay []models.Tile
}

// NewTileGrid allocates an empty grid
func NewTileGrid(width, height int) *TileGrid {
	return &TileGrid{
		width:   width,
		height:  height,
		ground:  make([]models.Tile, width*height),
		overlay: make([]models.Tile, width*height),
	}
}

// Width in tiles
func (g *TileGrid) Width() int { return g.width }

// Height in tiles
func (g *TileGrid) Height() int { return g.height }

// InBounds reports whether (x, y) is a valid cell
func (g *TileGrid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// Bounds is the whole grid as a rect
func (g *TileGrid) Bounds() models.Rect {
	return models.Rect{End: models.Point{X: g.width - 1, Y: g.height - 1}}
}

func (g *TileGrid) index(x, y int) int {
	if !g.InBounds(x, y) {
		panic(fmt.Sprintf("tile (%d,%d) outside %dx%d grid", x, y, g.width, g.height))
	}
	return y*g.width + x
}

// SetTile writes a ground cell. Panics when out of range.
func (g *TileGrid) SetTile(x, y, tileType int, o models.Orientation, solid bool) {
	g.ground[g.index(x, y)] = models.NewTile(tileType, o, solid)
}

// SetOverlayTile writes an overlay cell. Panics when out of range.
func (g *TileGrid) SetOverlayTile(x, y, tileType int, o models.Orientation) {
	g.overlay[g.index(x, y)] = models.NewOverlayTile(tileType, o)
}

// Tile returns the packed ground cell
func (g *TileGrid) Tile(x, y int) models.Tile {
	return g.ground[g.index(x, y)]
}

// OverlayTile returns the packed overlay cell
func (g *TileGrid) OverlayTile(x, y int) models.Tile {
	return g.overlay[g.index(x, y)]
}

// TypeAt is shorthand for Tile(x, y).Type()
func (g *TileGrid) TypeAt(x, y int) int {
	return g.Tile(x, y).Type()
}

// Solid reports whether the ground cell blocks movement
func (g *TileGrid) Solid(x, y int) bool {
	return g.Tile(x, y).Solid()
}

// Ground returns a copy of the ground layer
func (g *TileGrid) Ground() []models.Tile {
	return append([]models.Tile(nil), g.ground...)
}

// Overlay returns a copy of the overlay layer
func (g *TileGrid) Overlay() []models.Tile {
	return append([]models.Tile(nil), g.overlay...)
}

// Window copies the ground and overlay cells of r, clipped to the grid.
// Rows are returned top to bottom.
func (g *TileGrid) Window(r models.Rect) (ground, overlay [][]models.Tile, clipped models.Rect) {
	clipped = models.Rect{
		Start: models.Point{X: max(r.Start.X, 0), Y: max(r.Start.Y, 0)},
		End:   models.Point{X: min(r.End.X, g.width-1), Y: min(r.End.Y, g.height-1)},
	}
	if !clipped.Valid() {
		return nil, nil, clipped
	}
	for y := clipped.Start.Y; y <= clipped.End.Y; y++ {
		lo := y*g.width + clipped.Start.X
		hi := y*g.width + clipped.End.X + 1
		ground = append(ground, append([]models.Tile(nil), g.ground[lo:hi]...))
		overlay = append(overlay, append([]models.Tile(nil), g.overlay[lo:hi]...))
	}
	return ground, overlay, clipped
}

// gridFromLayers rebuilds a grid from stored layers
func gridFromLayers(width, height int, ground, overlay []models.Tile) (*TileGrid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid grid size %dx%d", width, height)
	}
	if len(ground) != width*height || len(overlay) != width*height {
		return nil, fmt.Errorf("layer sizes %d/%d do not match %dx%d grid", len(ground), len(overlay), width, height)
	}
	return &TileGrid{
		width:   width,
		height:  height,
		ground:  append([]models.Tile(nil), ground...),
		overlay: append([]models.Tile(nil), overlay...),
	}, nil
}
