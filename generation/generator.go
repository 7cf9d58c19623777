package generation

import (
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"

	"projectz/server/models"
	"projectz/server/world"
)

// Generator builds city maps. It owns its random stream; the same seed,
// size and catalog always produce the same map.
type Generator struct {
	rng    *rand.Rand
	seed   string
	params Params
	logger zerolog.Logger
}

// Option configures a Generator
type Option func(*Generator)

// WithParams overrides the layout constants
func WithParams(p Params) Option {
	return func(g *Generator) { g.params = p.normalized() }
}

// WithLogger sets the logger used for generation progress
func WithLogger(logger zerolog.Logger) Option {
	return func(g *Generator) { g.logger = logger }
}

// WithRand injects a random stream directly
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) { g.rng = rng }
}

// NewGenerator creates a generator whose stream is derived from seed
func NewGenerator(seed string, opts ...Option) *Generator {
	g := &Generator{
		rng:    NewRNG(seed),
		seed:   seed,
		params: DefaultParams(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// SetSeed resets the random stream
func (g *Generator) SetSeed(seed int64) {
	g.rng = rand.New(rand.NewSource(seed))
}

// Params returns the effective layout constants
func (g *Generator) Params() Params {
	return g.params
}

// layout is the state of one generation run
type layout struct {
	rng     *rand.Rand
	params  Params
	m       *world.Map
	grid    *world.TileGrid
	spawner *SpawnPlanner
	roads   *roadCarver
	rooms   []models.Rect
	logger  zerolog.Logger
}

// ValidateDimensions checks a requested world size
func (g *Generator) ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, width, height)
	}
	if width%world.ChunkSize != 0 || height%world.ChunkSize != 0 {
		return fmt.Errorf("%w: %dx%d is not a multiple of %d", ErrInvalidDimensions, width, height, world.ChunkSize)
	}
	if width < g.params.MinWorldSize || height < g.params.MinWorldSize {
		return fmt.Errorf("%w: %dx%d is below the %d tile minimum", ErrInvalidDimensions, width, height, g.params.MinWorldSize)
	}
	return nil
}

// Generate tiles a width x height world and spawns items from catalog.
// On error no map is returned.
func (g *Generator) Generate(width, height int, catalog []*models.Item) (*world.Map, error) {
	if err := g.ValidateDimensions(width, height); err != nil {
		return nil, err
	}
	pool, err := NewItemPool(catalog)
	if err != nil {
		return nil, err
	}

	m := world.NewMap(width, height)
	m.Seed = g.seed
	l := &layout{
		rng:    g.rng,
		params: g.params,
		m:      m,
		grid:   m.Grid,
		logger: g.logger.With().Int("width", width).Int("height", height).Logger(),
	}
	l.spawner = newSpawnPlanner(g.rng, g.params, m, pool, l.logger)
	l.roads = &roadCarver{grid: m.Grid, spawner: l.spawner, params: g.params}

	plazas := l.generateRoads()
	l.logger.Debug().Int("roads", len(m.Roads)).Int("plazas", len(plazas)).Msg("road network carved")

	for _, r := range plazas {
		m.Plazas = append(m.Plazas, world.Plaza{Bounds: r, Kind: world.PlazaRegular})
	}

	start, goal, err := l.selectSafehouses(width, height)
	if err != nil {
		return nil, err
	}
	m.StartPlaza, m.GoalPlaza = start, goal
	l.logger.Debug().Int("start", start).Int("goal", goal).Msg("safehouses selected")

	for idx, p := range m.Plazas {
		switch idx {
		case start:
			err = l.generateSafehousePlaza(idx, p.Bounds, true)
		case goal:
			err = l.generateSafehousePlaza(idx, p.Bounds, false)
		default:
			l.generatePlaza(idx, p.Bounds)
		}
		if err != nil {
			return nil, err
		}
	}

	m.Stats.Rooms = len(l.rooms)
	m.Finish()
	l.logger.Info().
		Int("roads", m.Stats.Roads).
		Int("plazas", m.Stats.Plazas).
		Int("buildings", m.Stats.Buildings).
		Int("skipped_plazas", m.Stats.SkippedPlazas).
		Int("skipped_buildings", m.Stats.SkippedBuildings).
		Int("rooms", m.Stats.Rooms).
		Int("trees", m.Stats.Trees).
		Int("items", m.Stats.Items).
		Int("zombies", m.Stats.Zombies).
		Msg("world generated")
	return m, nil
}

// generateRoads carves the primary road and partitions both sides of it,
// returning the plazas left between the roads.
func (l *layout) generateRoads() []models.Rect {
	w, h := l.grid.Width(), l.grid.Height()
	mainX := w/4 + intn(l.rng, w/2)
	primary := RoadCut{Vertical: true, Center: mainX, Origin: h - 1, Size: l.params.MainRoadSize, Primary: true}
	l.m.Roads = append(l.m.Roads, l.roads.carve(primary))

	half := (l.params.MainRoadSize + 1) / 2
	sides := []models.Rect{
		{Start: models.Point{}, End: models.Point{X: mainX - half, Y: h - 1}},
		{Start: models.Point{X: mainX + half}, End: models.Point{X: w - 1, Y: h - 1}},
	}

	var plazas []models.Rect
	for _, side := range sides {
		plan := Partition(side, l.rng, l.params)
		for _, cut := range plan.Cuts {
			l.m.Roads = append(l.m.Roads, l.roads.carve(cut))
		}
		plazas = append(plazas, plan.Plazas...)
	}
	return plazas
}

// selectSafehouses picks start and goal among plazas that can hold a safehouse
func (l *layout) selectSafehouses(width, height int) (int, int, error) {
	var positions []models.Point
	var indices []int
	for idx, p := range l.m.Plazas {
		if l.params.canHostSafehouse(p.Bounds) {
			positions = append(positions, p.Bounds.Start)
			indices = append(indices, idx)
		}
	}

	start, goal, err := SelectSafehouses(positions, SafehouseDistance(width, height), l.rng,
		l.params.SafehouseAttempts, l.params.StartRedrawAfter)
	if err != nil {
		return 0, 0, err
	}
	return indices[start], indices[goal], nil
}
