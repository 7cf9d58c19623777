package generation

import (
	"projectz/server/models"
	"projectz/server/world"
)

// RoadCut is one road decided by the partition. Carving starts at Origin
// and walks toward row or column 0 until it reaches the edge or another road.
type RoadCut struct {
	Vertical bool
	Center   int // x of a vertical road, y of a horizontal one
	Origin   int // first row (vertical) or column (horizontal)
	Size     int
	Primary  bool
}

// cell maps a position along the road and a cross-section index (1..Size) to grid coordinates
func (c RoadCut) cell(along, i int) (int, int) {
	across := c.Center - (c.Size-1)/2 + i - 1
	if c.Vertical {
		return across, along
	}
	return along, across
}

type mergeTiles struct {
	edge, inner models.Orientation
}

type mergePalette struct {
	low, high, middle mergeTiles
}

// roadPalette holds the sprite orientations for one axis
type roadPalette struct {
	capStart, capEnd          models.Orientation
	sidewalkLow, sidewalkHigh models.Orientation
	center, marking           models.Orientation
	startMerge, endMerge      mergePalette
}

var verticalPalette = roadPalette{
	capStart:     models.Right,
	capEnd:       models.Left,
	sidewalkLow:  models.Right,
	sidewalkHigh: models.Left,
	center:       models.Right,
	marking:      models.Right,
	startMerge: mergePalette{
		low:    mergeTiles{edge: models.Right, inner: models.Down},
		high:   mergeTiles{edge: models.Left, inner: models.Left},
		middle: mergeTiles{edge: models.Right, inner: models.Right},
	},
	endMerge: mergePalette{
		low:    mergeTiles{edge: models.Right, inner: models.Right},
		high:   mergeTiles{edge: models.Left, inner: models.Up},
		middle: mergeTiles{edge: models.Right, inner: models.Up},
	},
}

var horizontalPalette = roadPalette{
	capStart:     models.Up,
	capEnd:       models.Down,
	sidewalkLow:  models.Down,
	sidewalkHigh: models.Up,
	center:       models.Up,
	marking:      models.Up,
	startMerge: mergePalette{
		low:    mergeTiles{edge: models.Down, inner: models.Down},
		high:   mergeTiles{edge: models.Up, inner: models.Right},
		middle: mergeTiles{edge: models.Up, inner: models.Up},
	},
	endMerge: mergePalette{
		low:    mergeTiles{edge: models.Down, inner: models.Left},
		high:   mergeTiles{edge: models.Up, inner: models.Up},
		middle: mergeTiles{edge: models.Up, inner: models.Up},
	},
}

type roadCarver struct {
	grid    *world.TileGrid
	spawner *SpawnPlanner
	params  Params
}

func (rc *roadCarver) limit(cut RoadCut) int {
	if cut.Vertical {
		return rc.grid.Height()
	}
	return rc.grid.Width()
}

func (rc *roadCarver) set(cut RoadCut, along, i, tileType int, o models.Orientation) {
	x, y := cut.cell(along, i)
	if rc.grid.InBounds(x, y) {
		rc.grid.SetTile(x, y, tileType, o, false)
	}
}

// carve paints one road and returns its record
func (rc *roadCarver) carve(cut RoadCut) world.Road {
	pal := horizontalPalette
	if cut.Vertical {
		pal = verticalPalette
	}

	along := cut.Origin
	if along == rc.limit(cut)-1 {
		for i := 1; i <= cut.Size; i++ {
			rc.set(cut, along, i, models.TileRoadCap, pal.capStart)
		}
		along--
	} else {
		rc.merge(cut, along+1, along+2, pal.startMerge)
	}

	for along > 0 && !rc.occupied(cut, along) {
		for i := 1; i <= cut.Size; i++ {
			tileType, o := rc.bodyTile(cut, i, pal)
			rc.set(cut, along, i, tileType, o)
		}
		if chance(rc.spawner.rng, rc.params.RoadZombieChance) {
			x, y := cut.cell(along, 1+intn(rc.spawner.rng, cut.Size))
			rc.spawner.SpawnZombie(models.Point{X: x, Y: y})
		}
		along--
	}

	if along == 0 {
		for i := 1; i <= cut.Size; i++ {
			rc.set(cut, along, i, models.TileRoadCap, pal.capEnd)
		}
	} else {
		rc.merge(cut, along, along-1, pal.endMerge)
	}

	return world.Road{Vertical: cut.Vertical, Center: cut.Center, Size: cut.Size, Primary: cut.Primary}
}

// occupied checks the first cross-section cell of a row
func (rc *roadCarver) occupied(cut RoadCut, along int) bool {
	x, y := cut.cell(along, 1)
	return rc.grid.Tile(x, y).IsSet()
}

func (rc *roadCarver) bodyTile(cut RoadCut, i int, pal roadPalette) (int, models.Orientation) {
	half := (cut.Size + 1) / 2
	quarter := (half + 1) / 2
	switch {
	case i == 1 || i == cut.Size:
		return models.TileCurb, models.Up
	case i == 2:
		return models.TileSidewalk, pal.sidewalkLow
	case i == cut.Size-1:
		return models.TileSidewalk, pal.sidewalkHigh
	case i == half:
		return models.TileCenterLane, pal.center
	case cut.Primary && (i == quarter || i == half+quarter-1):
		return models.TileLaneMarking, pal.marking
	}
	return models.TileLane, models.Up
}

// merge stitches two rows into the road being joined; curbs are left alone
func (rc *roadCarver) merge(cut RoadCut, near, far int, mp mergePalette) {
	for i := 2; i < cut.Size; i++ {
		switch i {
		case cut.Size - 1:
			rc.set(cut, near, i, models.TileMergeEdge, mp.high.edge)
			rc.set(cut, far, i, models.TileMergeOuter, mp.high.inner)
		case 2:
			rc.set(cut, near, i, models.TileMergeEdge, mp.low.edge)
			rc.set(cut, far, i, models.TileMergeOuter, mp.low.inner)
		default:
			rc.set(cut, near, i, models.TileMergeCenter, mp.middle.edge)
			rc.set(cut, far, i, models.TileLane, mp.middle.inner)
		}
	}
}
