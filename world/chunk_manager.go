package world

import (
	"fmt"
	"sync"

	"projectz/server/models"
)

// ChunkSize is the edge length of a spawn bucket in tiles
const ChunkSize = 16

// Chunk is one spawn bucket of the world
type Chunk struct {
	X       int
	Y       int
	items   []*models.Item
	zombies []*models.Zombie
	mutex   sync.RWMutex
}

// Items returns a snapshot of the chunk's items
func (c *Chunk) Items() []*models.Item {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return append([]*models.Item(nil), c.items...)
}

// Zombies returns a snapshot of the chunk's zombies
func (c *Chunk) Zombies() []*models.Zombie {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return append([]*models.Zombie(nil), c.zombies...)
}

// Entities returns items and zombies together
func (c *Chunk) Entities() []models.Entity {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	entities := make([]models.Entity, 0, len(c.items)+len(c.zombies))
	for _, it := range c.items {
		entities = append(entities, it)
	}
	for _, z := range c.zombies {
		entities = append(entities, z)
	}
	return entities
}

// Bounds is the tile region covered by the chunk
func (c *Chunk) Bounds() models.Rect {
	return models.Rect{
		Start: models.Point{X: c.X * ChunkSize, Y: c.Y * ChunkSize},
		End:   models.Point{X: c.X*ChunkSize + ChunkSize - 1, Y: c.Y*ChunkSize + ChunkSize - 1},
	}
}

// ChunkManager owns the fixed grid of spawn buckets. Every mutation of a
// bucket happens under that bucket's write lock.
type ChunkManager struct {
	cols         int
	rows         int
	bufferRadius int
	chunks       []*Chunk
}

// NewChunkManager creates buckets for a width x height tile world.
// Both dimensions must be multiples of ChunkSize.
func NewChunkManager(width, height, bufferRadius int) *ChunkManager {
	cols, rows := width/ChunkSize, height/ChunkSize
	cm := &ChunkManager{
		cols:         cols,
		rows:         rows,
		bufferRadius: bufferRadius,
		chunks:       make([]*Chunk, cols*rows),
	}
	for cy := 0; cy < rows; cy++ {
		for cx := 0; cx < cols; cx++ {
			cm.chunks[cy*cols+cx] = &Chunk{X: cx, Y: cy}
		}
	}
	return cm
}

// Dimensions returns the bucket grid size
func (cm *ChunkManager) Dimensions() (cols, rows int) {
	return cm.cols, cm.rows
}

// getChunkCoordinates maps a tile coordinate to its bucket
func (cm *ChunkManager) getChunkCoordinates(x, y int) (int, int) {
	return x / ChunkSize, y / ChunkSize
}

// ChunkAt returns the bucket at chunk coordinates, or nil when out of range
func (cm *ChunkManager) ChunkAt(cx, cy int) *Chunk {
	if cx < 0 || cy < 0 || cx >= cm.cols || cy >= cm.rows {
		return nil
	}
	return cm.chunks[cy*cm.cols+cx]
}

// GetChunk returns the bucket holding tile (x, y), or nil when out of range
func (cm *ChunkManager) GetChunk(x, y int) *Chunk {
	if x < 0 || y < 0 {
		return nil
	}
	return cm.ChunkAt(cm.getChunkCoordinates(x, y))
}

func (cm *ChunkManager) chunkFor(p models.Point) (*Chunk, error) {
	chunk := cm.GetChunk(p.X, p.Y)
	if chunk == nil {
		return nil, fmt.Errorf("tile (%d,%d) has no chunk", p.X, p.Y)
	}
	return chunk, nil
}

// AddItem stores an item in the bucket under its tile
func (cm *ChunkManager) AddItem(item *models.Item) error {
	chunk, err := cm.chunkFor(item.Tile)
	if err != nil {
		return err
	}
	chunk.mutex.Lock()
	defer chunk.mutex.Unlock()
	chunk.items = append(chunk.items, item)
	return nil
}

// RemoveItem takes an item out of the bucket holding tile
func (cm *ChunkManager) RemoveItem(tile models.Point, itemID string) (*models.Item, bool) {
	chunk := cm.GetChunk(tile.X, tile.Y)
	if chunk == nil {
		return nil, false
	}
	chunk.mutex.Lock()
	defer chunk.mutex.Unlock()
	for idx, it := range chunk.items {
		if it.ID == itemID {
			chunk.items = append(chunk.items[:idx], chunk.items[idx+1:]...)
			return it, true
		}
	}
	return nil, false
}

// AddZombie stores a zombie in the bucket under its tile
func (cm *ChunkManager) AddZombie(z *models.Zombie) error {
	chunk, err := cm.chunkFor(z.Tile)
	if err != nil {
		return err
	}
	chunk.mutex.Lock()
	defer chunk.mutex.Unlock()
	chunk.zombies = append(chunk.zombies, z)
	return nil
}

// LoadChunksAround returns the buckets within bufferRadius of a tile, clipped to the world
func (cm *ChunkManager) LoadChunksAround(centerX, centerY int) []*Chunk {
	centerChunkX, centerChunkY := cm.getChunkCoordinates(centerX, centerY)

	var chunks []*Chunk
	for dy := -cm.bufferRadius; dy <= cm.bufferRadius; dy++ {
		for dx := -cm.bufferRadius; dx <= cm.bufferRadius; dx++ {
			if chunk := cm.ChunkAt(centerChunkX+dx, centerChunkY+dy); chunk != nil {
				chunks = append(chunks, chunk)
			}
		}
	}
	return chunks
}

// ChunksIn returns the buckets overlapping a tile region, clipped to the world
func (cm *ChunkManager) ChunksIn(r models.Rect) []*Chunk {
	lo := models.Point{X: max(r.Start.X, 0) / ChunkSize, Y: max(r.Start.Y, 0) / ChunkSize}
	hi := models.Point{X: min(r.End.X/ChunkSize, cm.cols-1), Y: min(r.End.Y/ChunkSize, cm.rows-1)}

	var chunks []*Chunk
	for cy := lo.Y; cy <= hi.Y; cy++ {
		for cx := lo.X; cx <= hi.X; cx++ {
			chunks = append(chunks, cm.chunks[cy*cm.cols+cx])
		}
	}
	return chunks
}

// AllItems returns every item in bucket order
func (cm *ChunkManager) AllItems() []*models.Item {
	var items []*models.Item
	for _, c := range cm.chunks {
		items = append(items, c.Items()...)
	}
	return items
}

// AllZombies returns every zombie in bucket order
func (cm *ChunkManager) AllZombies() []*models.Zombie {
	var zombies []*models.Zombie
	for _, c := range cm.chunks {
		zombies = append(zombies, c.Zombies()...)
	}
	return zombies
}

// Counts returns the total number of items and zombies
func (cm *ChunkManager) Counts() (items, zombies int) {
	for _, c := range cm.chunks {
		c.mutex.RLock()
		items += len(c.items)
		zombies += len(c.zombies)
		c.mutex.RUnlock()
	}
	return items, zombies
}
