package generation

import (
	"errors"
	"fmt"

	"projectz/server/models"
	"projectz/server/world"
)

// buildingPalette selects the wall tiles of a building
type buildingPalette struct {
	wall    int
	corner  int
	wallEnd int
	safe    bool
}

var regularPalette = buildingPalette{
	wall:    models.TileInnerWall,
	corner:  models.TileWallCorner,
	wallEnd: models.TileWallEnd,
}

var safePalette = buildingPalette{
	wall:    models.TileSafeWall,
	corner:  models.TileSafeCorner,
	wallEnd: models.TileSafeWallEnd,
	safe:    true,
}

// placeBuilding paints a building over r: a walkable border, a solid wall
// ring, floor, interior rooms and two doors on the facing axis.
func (l *layout) placeBuilding(r models.Rect, facing models.Orientation, role world.BuildingRole, plaza int, pal buildingPalette) error {
	span := r.Span()
	if span.X < l.params.MinBuildingSpan || span.Y < l.params.MinBuildingSpan {
		return fmt.Errorf("%w: building %v-%v spans %dx%d", ErrRegionTooSmall, r.Start, r.End, span.X, span.Y)
	}
	if !l.grid.InBounds(r.Start.X, r.Start.Y) || !l.grid.InBounds(r.End.X, r.End.Y) {
		return fmt.Errorf("%w: building %v-%v leaves the map", ErrRegionTooSmall, r.Start, r.End)
	}

	s, e := r.Start, r.End
	for x := s.X; x <= e.X; x++ {
		for y := s.Y; y <= e.Y; y++ {
			switch {
			case x == s.X || x == e.X || y == s.Y || y == e.Y:
				l.grid.SetTile(x, y, models.TileBuildingBorder, models.Up, false)
				if !pal.safe {
					l.spawner.MaybeSpawnZombie(models.Point{X: x, Y: y}, l.params.AlleyZombieChance)
				}
			case x == s.X+1 && y == s.Y+1:
				l.grid.SetTile(x, y, pal.corner, models.Down, true)
			case x == s.X+1 && y == e.Y-1:
				l.grid.SetTile(x, y, pal.corner, models.Right, true)
			case x == e.X-1 && y == s.Y+1:
				l.grid.SetTile(x, y, pal.corner, models.Left, true)
			case x == e.X-1 && y == e.Y-1:
				l.grid.SetTile(x, y, pal.corner, models.Up, true)
			case x == s.X+1:
				l.grid.SetTile(x, y, pal.wall, models.Down, true)
			case y == s.Y+1:
				l.grid.SetTile(x, y, pal.wall, models.Left, true)
			case x == e.X-1:
				l.grid.SetTile(x, y, pal.wall, models.Up, true)
			case y == e.Y-1:
				l.grid.SetTile(x, y, pal.wall, models.Right, true)
			default:
				l.grid.SetTile(x, y, models.TileFloor, models.Up, false)
			}
		}
	}

	l.generateRooms(r.Inset(2), pal)

	for _, d := range doorTiles(r, facing) {
		l.grid.SetTile(d.X, d.Y, models.TileDoor, models.Up, false)
	}

	l.m.Buildings = append(l.m.Buildings, world.Building{Bounds: r, Facing: facing, Role: role, Plaza: plaza})
	return nil
}

// doorTiles returns the two door pairs cut into the wall ring
func doorTiles(r models.Rect, facing models.Orientation) []models.Point {
	s, e := r.Start, r.End
	if facing == models.Up || facing == models.Down {
		return []models.Point{
			{X: s.X + 4, Y: s.Y + 1}, {X: s.X + 5, Y: s.Y + 1},
			{X: e.X - 4, Y: e.Y - 1}, {X: e.X - 5, Y: e.Y - 1},
		}
	}
	return []models.Point{
		{X: e.X - 1, Y: s.Y + 4}, {X: e.X - 1, Y: s.Y + 5},
		{X: s.X + 1, Y: e.Y - 4}, {X: s.X + 1, Y: e.Y - 5},
	}
}

// tryBuilding places a regular building and records a skip instead of failing
func (l *layout) tryBuilding(r models.Rect, facing models.Orientation, role world.BuildingRole, plaza int) {
	err := l.placeBuilding(r, facing, role, plaza, regularPalette)
	if errors.Is(err, ErrRegionTooSmall) {
		l.m.Stats.SkippedBuildings++
		l.logger.Debug().Err(err).Int("plaza", plaza).Str("role", string(role)).Msg("building skipped")
	}
}

// columnRect builds the footprint of a column building growing dir from x
func columnRect(x, dir, depth, y0, y1 int) models.Rect {
	x1 := x + dir*depth
	return models.Rect{
		Start: models.Point{X: min(x, x1), Y: y0},
		End:   models.Point{X: max(x, x1), Y: y1},
	}
}

// rowRect builds the footprint of a row building growing dir from y
func rowRect(y, dir, depth, x0, x1 int) models.Rect {
	y1 := y + dir*depth
	return models.Rect{
		Start: models.Point{X: x0, Y: min(y, y1)},
		End:   models.Point{X: x1, Y: max(y, y1)},
	}
}

// drawSideLength picks a building length that leaves room for the rest of the side
func (l *layout) drawSideLength(sideLength, n int) int {
	for attempt := 0; attempt < 64; attempt++ {
		length := l.params.MinBuildLength + intn(l.rng, l.params.BuildLengthRange)
		if sideLength-length*(n-1) >= l.params.MinBuildLength {
			return length
		}
	}
	return l.params.MinBuildLength
}

// fillColumn stacks up to n buildings between two corners on a west (dir 1)
// or east (dir -1) side. The last one takes whatever space is left.
func (l *layout) fillColumn(start, end models.Point, dir, n, plaza int, role world.BuildingRole) {
	sideLength := end.Y - start.Y
	depth := l.params.MinBuildLength + intn(l.rng, l.params.BuildLengthRange)

	switch {
	case n <= 1:
		r := columnRect(end.X, dir, depth, start.Y+1, start.Y+sideLength-1)
		l.tryBuilding(r, models.Left, role, plaza)
	case sideLength < l.params.MinBuildLength*n:
		l.fillColumn(start, end, dir, n-1, plaza, role)
	default:
		length := l.drawSideLength(sideLength, n)
		r := columnRect(end.X, dir, depth, start.Y+1, start.Y+length)
		l.tryBuilding(r, models.Right, role, plaza)
		l.fillColumn(models.Point{X: end.X, Y: start.Y + length}, end, dir, n-1, plaza, role)
	}
}

// fillRow lines up to n buildings between two corners on a north (dir 1)
// or south (dir -1) side. Depth stays under the shorter corner.
func (l *layout) fillRow(start, end models.Point, dir, n, maxRange, plaza int, role world.BuildingRole) {
	sideLength := end.X - start.X
	depth := l.params.MinBuildLength + intn(l.rng, maxRange)

	switch {
	case n <= 1:
		r := rowRect(start.Y, dir, depth, start.X+1, start.X+sideLength-1)
		l.tryBuilding(r, models.Up, role, plaza)
	case sideLength < l.params.MinBuildLength*n:
		l.fillRow(start, end, dir, n-1, maxRange, plaza, role)
	default:
		length := l.drawSideLength(sideLength, n)
		r := rowRect(start.Y, dir, depth, start.X+1, start.X+length)
		l.tryBuilding(r, models.Down, role, plaza)
		l.fillRow(models.Point{X: start.X + length, Y: start.Y}, end, dir, n-1, maxRange, plaza, role)
	}
}
