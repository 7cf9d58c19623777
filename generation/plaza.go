package generation

import (
	"fmt"

	"projectz/server/models"
	"projectz/server/world"
)

// playerSpawnAttempts bounds the random search for a spawn floor tile
const playerSpawnAttempts = 1000

func (l *layout) fillGrass(r models.Rect) {
	for x := r.Start.X; x <= r.End.X; x++ {
		for y := r.Start.Y; y <= r.End.Y; y++ {
			l.grid.SetTile(x, y, models.TileGrass, models.Up, false)
		}
	}
}

// generatePlaza lays out a regular plaza: grass, four corner buildings,
// buildings along each side between the corners, then trees.
// Plazas too narrow for two corner buildings per side are left as forest.
func (l *layout) generatePlaza(idx int, r models.Rect) {
	l.fillGrass(r)

	span := r.Span()
	if span.X < l.params.minPlazaSpan() || span.Y < l.params.minPlazaSpan() {
		l.m.Plazas[idx].Kind = world.PlazaOpen
		l.m.Stats.SkippedPlazas++
		l.logger.Debug().
			Err(fmt.Errorf("%w: plaza %d spans %dx%d", ErrRegionTooSmall, idx, span.X, span.Y)).
			Msg("plaza left open")
		l.generateTrees(r)
		return
	}

	var widths, heights [4]int
	for c := range widths {
		widths[c] = l.params.MinBuildLength + intn(l.rng, l.params.BuildLengthRange)
		heights[c] = l.params.MinBuildLength + intn(l.rng, l.params.BuildLengthRange)
	}

	s, e := r.Start, r.End
	starts := [4]models.Point{
		s,
		{X: e.X - widths[1], Y: s.Y},
		{X: s.X, Y: e.Y - heights[2]},
		{X: e.X - widths[3], Y: e.Y - heights[3]},
	}
	ends := [4]models.Point{
		{X: s.X + widths[0], Y: s.Y + heights[0]},
		{X: e.X, Y: s.Y + heights[1]},
		{X: s.X + widths[2], Y: e.Y},
		e,
	}
	facings := [4]models.Orientation{models.Up, models.Right, models.Left, models.Down}
	for c := range starts {
		l.tryBuilding(models.Rect{Start: starts[c], End: ends[c]}, facings[c], world.RoleCorner, idx)
	}

	n := l.params.MaxBuildPerSide
	l.fillColumn(models.Point{X: starts[0].X, Y: ends[0].Y}, starts[2], 1, n, idx, world.RoleWest)
	l.fillColumn(ends[1], models.Point{X: ends[3].X, Y: starts[3].Y}, -1, n, idx, world.RoleEast)

	// rows are only as deep as the shorter of their two corners
	topRange := heights[0] - l.params.MinBuildLength
	if ends[0].Y > ends[1].Y {
		topRange = heights[1] - l.params.MinBuildLength
	}
	l.fillRow(models.Point{X: ends[0].X, Y: starts[0].Y}, starts[1], 1, n, topRange, idx, world.RoleNorth)

	bottomRange := heights[2] - l.params.MinBuildLength
	if starts[2].Y < starts[3].Y {
		bottomRange = heights[3] - l.params.MinBuildLength
	}
	l.fillRow(ends[2], models.Point{X: starts[3].X, Y: ends[3].Y}, -1, n, bottomRange, idx, world.RoleSouth)

	l.generateTrees(models.Rect{Start: starts[0], End: ends[3]})
}

// safehouseFootprint centres the safehouse in the middle third of r,
// widening it when the third would be too thin to hold a building.
func safehouseFootprint(r models.Rect, minSpan int) (models.Rect, bool) {
	inset := func(box int) int {
		if box < minSpan {
			return -1
		}
		in := box / 3
		if box-2*in < minSpan {
			in = (box - minSpan) / 2
		}
		return in
	}
	span := r.Span()
	ix, iy := inset(span.X), inset(span.Y)
	if ix < 0 || iy < 0 {
		return models.Rect{}, false
	}
	return models.Rect{
		Start: models.Point{X: r.Start.X + ix, Y: r.Start.Y + iy},
		End:   models.Point{X: r.End.X - ix, Y: r.End.Y - iy},
	}, true
}

// canHostSafehouse reports whether a plaza is large enough for a safehouse
func (p Params) canHostSafehouse(r models.Rect) bool {
	_, ok := safehouseFootprint(r, p.MinBuildingSpan)
	return ok
}

// generateSafehousePlaza lays out a safehouse plaza. The start plaza gets
// the victory flag; the goal plaza gets the player spawn and is recorded as
// the safehouse the flag must be brought back to.
func (l *layout) generateSafehousePlaza(idx int, r models.Rect, isStart bool) error {
	l.fillGrass(r)

	footprint, ok := safehouseFootprint(r, l.params.MinBuildingSpan)
	if !ok {
		return fmt.Errorf("%w: safehouse plaza %d spans %v", ErrRegionTooSmall, idx, r.Span())
	}
	if err := l.placeBuilding(footprint, models.Up, world.RoleSafehouse, idx, safePalette); err != nil {
		return err
	}

	if isStart {
		s, e := footprint.Start, footprint.End
		corners := [4]models.Point{
			{X: s.X + 2, Y: s.Y + 2},
			{X: s.X + 2, Y: e.Y - 2},
			{X: e.X - 2, Y: s.Y + 2},
			{X: e.X - 2, Y: e.Y - 2},
		}
		flag := corners[l.rng.Intn(len(corners))]
		l.grid.SetTile(flag.X, flag.Y, models.TileVictoryFlag, models.Down, false)
		l.m.FlagLocation = flag
		l.m.Plazas[idx].Kind = world.PlazaStartSafehouse
	} else {
		spawn, err := l.findPlayerSpawn(footprint)
		if err != nil {
			return fmt.Errorf("safehouse plaza %d: %w", idx, err)
		}
		l.m.PlayerStart = spawn
		l.m.SafehouseStart = r.Start
		l.m.SafehouseEnd = r.End
		l.m.Plazas[idx].Kind = world.PlazaGoalSafehouse
	}

	l.generateTrees(r.Inset(1))
	return nil
}

// findPlayerSpawn samples floor tiles inside the footprint, falling back to a scan
func (l *layout) findPlayerSpawn(footprint models.Rect) (models.Point, error) {
	span := footprint.Span()
	for attempt := 0; attempt < playerSpawnAttempts; attempt++ {
		p := models.Point{
			X: footprint.Start.X + intn(l.rng, span.X),
			Y: footprint.Start.Y + intn(l.rng, span.Y),
		}
		if l.grid.TypeAt(p.X, p.Y) == models.TileFloor {
			return p, nil
		}
	}
	for y := footprint.Start.Y; y <= footprint.End.Y; y++ {
		for x := footprint.Start.X; x <= footprint.End.X; x++ {
			if l.grid.TypeAt(x, y) == models.TileFloor {
				return models.Point{X: x, Y: y}, nil
			}
		}
	}
	return models.Point{}, fmt.Errorf("%w: no floor tile for the player spawn", ErrRegionTooSmall)
}
