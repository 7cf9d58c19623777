package generation

import (
	"projectz/server/models"
)

// generateRooms splits r along its longer axis at the midpoint until every
// room is at most MaxRoomArea, then populates the terminal rooms. Children
// share the dividing wall line with their parent.
func (l *layout) generateRooms(r models.Rect, pal buildingPalette) {
	span := r.Span()
	if span.X < 0 || span.Y < 0 {
		return
	}
	if span.X*span.Y <= l.params.MaxRoomArea {
		l.rooms = append(l.rooms, r)
		l.spawner.PopulateRoom(r, pal.safe)
		return
	}

	s, e := r.Start, r.End
	if span.X <= span.Y {
		midY := s.Y + span.Y/2
		l.generateWall(models.Point{X: s.X, Y: midY}, models.Point{X: e.X, Y: midY}, pal)
		l.generateRooms(models.Rect{Start: s, End: models.Point{X: e.X, Y: midY}}, pal)
		l.generateRooms(models.Rect{Start: models.Point{X: s.X, Y: midY}, End: e}, pal)
		return
	}

	midX := s.X + span.X/2
	l.generateWall(models.Point{X: midX, Y: s.Y}, models.Point{X: midX, Y: e.Y}, pal)
	l.generateRooms(models.Rect{Start: s, End: models.Point{X: midX, Y: e.Y}}, pal)
	l.generateRooms(models.Rect{Start: models.Point{X: midX, Y: s.Y}, End: e}, pal)
}

func isRoomWall(t models.Tile) bool {
	return t.Type() == models.TileRoomWall || t.Type() == models.TileRoomWallJoint
}

// generateWall draws an interior wall from start to end with a two tile
// door gap a third of the way along. Ends that meet another interior wall
// become joints; free ends get an end cap on the tile just past them.
func (l *layout) generateWall(start, end models.Point, pal buildingPalette) {
	boxW := end.X - start.X
	boxH := end.Y - start.Y
	g := l.grid

	if boxH > boxW {
		x := start.X
		door := start.Y + boxH/3

		if !isRoomWall(g.Tile(x, start.Y)) {
			g.SetTile(x, start.Y-1, pal.wallEnd, models.Left, true)
			g.SetTile(x, start.Y, models.TileRoomWall, models.Up, true)
		} else {
			g.SetTile(x, start.Y, models.TileRoomWallJoint, models.Left, true)
		}

		if !isRoomWall(g.Tile(x, end.Y)) {
			g.SetTile(x, end.Y+1, pal.wallEnd, models.Right, true)
			g.SetTile(x, end.Y, models.TileRoomWall, models.Up, true)
		} else {
			g.SetTile(x, end.Y, models.TileRoomWallJoint, models.Left, true)
		}

		for y := start.Y + 1; y < end.Y; y++ {
			if y == door || y == door-1 {
				g.SetTile(x, y, models.TileDoor, models.Up, false)
			} else {
				g.SetTile(x, y, models.TileRoomWall, models.Up, true)
			}
		}
		return
	}

	y := start.Y
	door := start.X + boxW/3

	if !isRoomWall(g.Tile(start.X, y)) {
		g.SetTile(start.X, y, models.TileRoomWall, models.Right, true)
		g.SetTile(start.X-1, y, pal.wallEnd, models.Down, true)
	} else {
		g.SetTile(start.X, y, models.TileRoomWallJoint, models.Down, true)
	}

	if !isRoomWall(g.Tile(end.X, y)) {
		g.SetTile(end.X, y, models.TileRoomWall, models.Right, true)
		g.SetTile(end.X+1, y, pal.wallEnd, models.Up, true)
	} else {
		g.SetTile(end.X, y, models.TileRoomWallJoint, models.Up, true)
	}

	// the gap keeps whatever floor is already there
	for x := start.X + 1; x < end.X; x++ {
		if x != door && x != door-1 {
			g.SetTile(x, y, models.TileRoomWall, models.Right, true)
		}
	}
}
