package world

import (
	"fmt"

	"projectz/server/models"
)

// PlazaKind classifies a plaza after layout
type PlazaKind string

const (
	PlazaRegular        PlazaKind = "regular"
	PlazaOpen           PlazaKind = "open" // too small for buildings, forest only
	PlazaStartSafehouse PlazaKind = "start_safehouse"
	PlazaGoalSafehouse  PlazaKind = "goal_safehouse"
)

// Plaza is a terminal region of the partition
type Plaza struct {
	Bounds models.Rect `json:"bounds"`
	Kind   PlazaKind   `json:"kind"`
}

// BuildingRole tells where in a plaza a building was placed
type BuildingRole string

const (
	RoleCorner    BuildingRole = "corner"
	RoleWest      BuildingRole = "west"
	RoleEast      BuildingRole = "east"
	RoleNorth     BuildingRole = "north"
	RoleSouth     BuildingRole = "south"
	RoleSafehouse BuildingRole = "safehouse"
)

// Building records one placed building footprint
type Building struct {
	Bounds models.Rect        `json:"bounds"`
	Facing models.Orientation `json:"facing"`
	Role   BuildingRole       `json:"role"`
	Plaza  int                `json:"plaza"`
}

// Road records one carved road
type Road struct {
	Vertical bool `json:"vertical"`
	Center   int  `json:"center"`
	Size     int  `json:"size"`
	Primary  bool `json:"primary"`
}

// Stats summarises a generation run
type Stats struct {
	Roads            int `json:"roads"`
	Plazas           int `json:"plazas"`
	Buildings        int `json:"buildings"`
	SkippedPlazas    int `json:"skipped_plazas"`
	SkippedBuildings int `json:"skipped_buildings"`
	Rooms            int `json:"rooms"`
	Trees            int `json:"trees"`
	Items            int `json:"items"`
	Zombies          int `json:"zombies"`
}

// Map is a generated world: tile layers, spawn buckets and salient points
type Map struct {
	Name   string
	Seed   string
	Grid   *TileGrid
	Chunks *ChunkManager

	Plazas     []Plaza
	Buildings  []Building
	Roads      []Road
	StartPlaza int
	GoalPlaza  int

	PlayerStart    models.Point
	FlagLocation   models.Point
	SafehouseStart models.Point
	SafehouseEnd   models.Point

	Pathfinder *Pathfinder
	Stats      Stats
}

// NewMap allocates an empty map of the given size
func NewMap(width, height int) *Map {
	grid := NewTileGrid(width, height)
	return &Map{
		Grid:   grid,
		Chunks: NewChunkManager(width, height, 1),
	}
}

// Width in tiles
func (m *Map) Width() int { return m.Grid.Width() }

// Height in tiles
func (m *Map) Height() int { return m.Grid.Height() }

// Safehouse is the goal safehouse plaza region
func (m *Map) Safehouse() models.Rect {
	return models.NewRect(m.SafehouseStart, m.SafehouseEnd)
}

// Finish builds the pathfinder and refreshes entity counts. Called once the grid is final.
func (m *Map) Finish() {
	m.Pathfinder = NewPathfinder(m.Grid)
	m.Stats.Items, m.Stats.Zombies = m.Chunks.Counts()
	m.Stats.Plazas = len(m.Plazas)
	m.Stats.Buildings = len(m.Buildings)
	m.Stats.Roads = len(m.Roads)
}

// Snapshot converts the map into its serializable form. Entities are copied,
// so the snapshot does not follow later bucket changes.
func (m *Map) Snapshot() *models.GameMap {
	gm := &models.GameMap{
		Name:           m.Name,
		Seed:           m.Seed,
		Width:          m.Width(),
		Height:         m.Height(),
		Ground:         m.Grid.Ground(),
		Overlay:        m.Grid.Overlay(),
		StartPlaza:     m.StartPlaza,
		GoalPlaza:      m.GoalPlaza,
		PlayerStart:    m.PlayerStart,
		FlagLocation:   m.FlagLocation,
		SafehouseStart: m.SafehouseStart,
		SafehouseEnd:   m.SafehouseEnd,
		Counts: models.LayoutCounts{
			SkippedPlazas:    m.Stats.SkippedPlazas,
			SkippedBuildings: m.Stats.SkippedBuildings,
			Rooms:            m.Stats.Rooms,
			Trees:            m.Stats.Trees,
		},
	}
	for _, it := range m.Chunks.AllItems() {
		gm.Items = append(gm.Items, it.Clone())
	}
	for _, z := range m.Chunks.AllZombies() {
		gm.Zombies = append(gm.Zombies, z.Clone())
	}
	for _, p := range m.Plazas {
		gm.Plazas = append(gm.Plazas, p.Bounds)
		gm.PlazaKinds = append(gm.PlazaKinds, string(p.Kind))
	}
	for _, b := range m.Buildings {
		gm.Buildings = append(gm.Buildings, models.BuildingRecord{
			Bounds: b.Bounds, Facing: b.Facing, Role: string(b.Role), Plaza: b.Plaza,
		})
	}
	for _, r := range m.Roads {
		gm.Roads = append(gm.Roads, models.RoadRecord(r))
	}
	return gm
}

// Restore rebuilds a map from a snapshot. The map gets its own copies of the entities.
func Restore(gm *models.GameMap) (*Map, error) {
	if gm.Width%ChunkSize != 0 || gm.Height%ChunkSize != 0 {
		return nil, fmt.Errorf("snapshot size %dx%d is not a multiple of %d", gm.Width, gm.Height, ChunkSize)
	}
	grid, err := gridFromLayers(gm.Width, gm.Height, gm.Ground, gm.Overlay)
	if err != nil {
		return nil, err
	}

	m := &Map{
		Name:           gm.Name,
		Seed:           gm.Seed,
		Grid:           grid,
		Chunks:         NewChunkManager(gm.Width, gm.Height, 1),
		StartPlaza:     gm.StartPlaza,
		GoalPlaza:      gm.GoalPlaza,
		PlayerStart:    gm.PlayerStart,
		FlagLocation:   gm.FlagLocation,
		SafehouseStart: gm.SafehouseStart,
		SafehouseEnd:   gm.SafehouseEnd,
		Stats: Stats{
			SkippedPlazas:    gm.Counts.SkippedPlazas,
			SkippedBuildings: gm.Counts.SkippedBuildings,
			Rooms:            gm.Counts.Rooms,
			Trees:            gm.Counts.Trees,
		},
	}
	for i, r := range gm.Plazas {
		m.Plazas = append(m.Plazas, Plaza{Bounds: r, Kind: restoredKind(gm, i)})
	}
	for _, b := range gm.Buildings {
		m.Buildings = append(m.Buildings, Building{
			Bounds: b.Bounds, Facing: b.Facing, Role: BuildingRole(b.Role), Plaza: b.Plaza,
		})
	}
	for _, r := range gm.Roads {
		m.Roads = append(m.Roads, Road(r))
	}
	for _, it := range gm.Items {
		if err := m.Chunks.AddItem(it.Clone()); err != nil {
			return nil, fmt.Errorf("restore item %s: %w", it.ID, err)
		}
	}
	for _, z := range gm.Zombies {
		if err := m.Chunks.AddZombie(z.Clone()); err != nil {
			return nil, fmt.Errorf("restore zombie %s: %w", z.ID, err)
		}
	}
	m.Finish()
	return m, nil
}

// restoredKind prefers the stored kind; older snapshots only know start and goal
func restoredKind(gm *models.GameMap, i int) PlazaKind {
	if i < len(gm.PlazaKinds) && gm.PlazaKinds[i] != "" {
		return PlazaKind(gm.PlazaKinds[i])
	}
	switch i {
	case gm.StartPlaza:
		return PlazaStartSafehouse
	case gm.GoalPlaza:
		return PlazaGoalSafehouse
	}
	return PlazaRegular
}
