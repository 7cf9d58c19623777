package generation

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"projectz/server/models"
	"projectz/server/world"
)

// patrolSeeds is the number of distinct zombie patrol patterns
const patrolSeeds = 5

// ItemPool is a rarity-weighted bag of item prototypes.
// A prototype of rarity r appears 2^r times.
type ItemPool struct {
	entries []*models.Item
}

// NewItemPool validates the catalog and expands it by rarity
func NewItemPool(catalog []*models.Item) (*ItemPool, error) {
	if len(catalog) == 0 {
		return nil, ErrEmptyItemCatalog
	}
	pool := &ItemPool{}
	for _, proto := range catalog {
		if err := proto.Validate(); err != nil {
			return nil, fmt.Errorf("build item pool: %w", err)
		}
		for n := 0; n < 1<<proto.Rarity; n++ {
			pool.entries = append(pool.entries, proto)
		}
	}
	return pool, nil
}

// Len is the weighted size of the pool
func (p *ItemPool) Len() int {
	return len(p.entries)
}

// Draw picks a prototype uniformly from the weighted pool and returns a fresh copy
func (p *ItemPool) Draw(rng *rand.Rand) *models.Item {
	proto := p.entries[rng.Intn(len(p.entries))]
	item := proto.Clone()
	item.PrototypeID = proto.ID
	return item
}

// SpawnPlanner places zombies and items into the spawn buckets
type SpawnPlanner struct {
	rng    *rand.Rand
	params Params
	grid   *world.TileGrid
	chunks *world.ChunkManager
	pool   *ItemPool
	logger zerolog.Logger
}

func newSpawnPlanner(rng *rand.Rand, p Params, m *world.Map, pool *ItemPool, logger zerolog.Logger) *SpawnPlanner {
	return &SpawnPlanner{
		rng:    rng,
		params: p,
		grid:   m.Grid,
		chunks: m.Chunks,
		pool:   pool,
		logger: logger,
	}
}

// newID derives an id from the world stream so ids repeat with the seed
func (s *SpawnPlanner) newID() string {
	return uuid.Must(uuid.NewRandomFromReader(s.rng)).String()
}

// randomTile picks a tile in [start, start+span) on each axis
func (s *SpawnPlanner) randomTile(r models.Rect) models.Point {
	span := r.Span()
	return models.Point{
		X: r.Start.X + intn(s.rng, span.X),
		Y: r.Start.Y + intn(s.rng, span.Y),
	}
}

// SpawnZombie puts a zombie at full health on the tile
func (s *SpawnPlanner) SpawnZombie(p models.Point) {
	z := models.NewZombie(s.newID(), p, s.rng.Intn(patrolSeeds))
	if err := s.chunks.AddZombie(z); err != nil {
		s.logger.Warn().Err(err).Msg("zombie dropped")
	}
}

// PlaceItem draws from the pool and drops the copy on the tile
func (s *SpawnPlanner) PlaceItem(p models.Point) *models.Item {
	item := s.pool.Draw(s.rng)
	item.ID = s.newID()
	item.PlaceAt(p)
	if err := s.chunks.AddItem(item); err != nil {
		s.logger.Warn().Err(err).Msg("item dropped")
		return nil
	}
	return item
}

// MaybeSpawnZombie spawns with probability p
func (s *SpawnPlanner) MaybeSpawnZombie(pt models.Point, p float64) {
	if chance(s.rng, p) {
		s.SpawnZombie(pt)
	}
}

// PopulateRoom tries to spawn zombies on floor tiles and an item on a
// non-solid tile. Safe rooms never get zombies.
func (s *SpawnPlanner) PopulateRoom(r models.Rect, safe bool) {
	if !safe {
		for n := 0; n < s.params.MaxZombiePerRoom; n++ {
			pt := s.randomTile(r)
			if s.grid.TypeAt(pt.X, pt.Y) == models.TileFloor {
				s.SpawnZombie(pt)
			}
		}
	}

	for n := 0; n < s.params.MaxItemPerRoom; n++ {
		pt := s.randomTile(r)
		if !s.grid.Solid(pt.X, pt.Y) && s.rng.Float64() > 0.25 {
			s.PlaceItem(pt)
		}
	}
}

// PopulateForest spawns zombies on grass and items on open ground outside buildings
func (s *SpawnPlanner) PopulateForest(r models.Rect) {
	for n := 0; n < s.params.MaxZombiePerForest; n++ {
		pt := s.randomTile(r)
		if s.rng.Float64() > 0.1 && s.grid.TypeAt(pt.X, pt.Y) == models.TileGrass {
			s.SpawnZombie(pt)
		}
	}

	for n := 0; n < s.params.MaxItemPerForest; n++ {
		pt := s.randomTile(r)
		tileType := s.grid.TypeAt(pt.X, pt.Y)
		if !s.grid.Solid(pt.X, pt.Y) && tileType != models.TileFloor && tileType != models.TileDoor {
			s.PlaceItem(pt)
		}
	}
}
