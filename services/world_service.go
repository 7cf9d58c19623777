package services

import (
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"projectz/server/messages"
	"projectz/server/models"
	"projectz/server/persistence"
	"projectz/server/world"
)

// DefaultViewRadius is the tile radius of a view when the client asks for none
const DefaultViewRadius = 10

// MaxViewRadius caps the window a client may request
const MaxViewRadius = 64

// PickupRange is how far in tiles an item may be from the player to be picked up
const PickupRange = 1

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrItemNotFound   = errors.New("item not found")
	ErrOutOfRange     = errors.New("out of range")
)

// WorldService serves a generated map to connected players
type WorldService struct {
	world      *world.Map
	players    map[string]*models.Player
	db         persistence.Storage
	logger     zerolog.Logger
	worldMutex sync.RWMutex
}

// NewWorldService wraps a finished map
func NewWorldService(m *world.Map, db persistence.Storage, logger zerolog.Logger) *WorldService {
	return &WorldService{
		world:   m,
		players: make(map[string]*models.Player),
		db:      db,
		logger:  logger.With().Str("world", m.Name).Logger(),
	}
}

// Map returns the underlying map
func (ws *WorldService) Map() *world.Map {
	return ws.world
}

// AddPlayer adds a player to the world
func (ws *WorldService) AddPlayer(player *models.Player) {
	ws.worldMutex.Lock()
	defer ws.worldMutex.Unlock()

	ws.players[player.ID] = player
}

// RemovePlayer removes a player from the world
func (ws *WorldService) RemovePlayer(playerID string) {
	ws.worldMutex.Lock()
	defer ws.worldMutex.Unlock()

	delete(ws.players, playerID)
}

// Summary describes the world for clients
func (ws *WorldService) Summary() messages.WorldSummary {
	m := ws.world
	plazas := make([]models.Rect, len(m.Plazas))
	for i, p := range m.Plazas {
		plazas[i] = p.Bounds
	}
	return messages.WorldSummary{
		Name:           m.Name,
		Seed:           m.Seed,
		Width:          m.Width(),
		Height:         m.Height(),
		TileSize:       models.TileSize,
		ChunkSize:      world.ChunkSize,
		PlayerStart:    m.PlayerStart,
		FlagLocation:   m.FlagLocation,
		SafehouseStart: m.SafehouseStart,
		SafehouseEnd:   m.SafehouseEnd,
		Stats:          m.Stats,
		Plazas:         plazas,
	}
}

func clampRadius(radius int) int {
	if radius <= 0 {
		return DefaultViewRadius
	}
	return min(radius, MaxViewRadius)
}

// TileWindow returns the cells within radius of a tile, clipped to the map
func (ws *WorldService) TileWindow(center models.Point, radius int) (*messages.MapView, error) {
	if !ws.world.Grid.InBounds(center.X, center.Y) {
		return nil, fmt.Errorf("tile %v: %w", center, ErrOutOfRange)
	}
	radius = clampRadius(radius)
	r := models.Rect{
		Start: models.Point{X: center.X - radius, Y: center.Y - radius},
		End:   models.Point{X: center.X + radius, Y: center.Y + radius},
	}
	ground, overlay, clipped := ws.world.Grid.Window(r)
	return &messages.MapView{
		CenterX: center.X,
		CenterY: center.Y,
		Radius:  radius,
		Origin:  clipped.Start,
		Ground:  ground,
		Overlay: overlay,
	}, nil
}

// NearbyEntities returns the items and zombies within radius of a tile
func (ws *WorldService) NearbyEntities(center models.Point, radius int) ([]*models.Item, []*models.Zombie) {
	radius = clampRadius(radius)
	r := models.Rect{
		Start: models.Point{X: center.X - radius, Y: center.Y - radius},
		End:   models.Point{X: center.X + radius, Y: center.Y + radius},
	}
	items := make([]*models.Item, 0)
	zombies := make([]*models.Zombie, 0)
	for _, chunk := range ws.world.Chunks.ChunksIn(r) {
		for _, it := range chunk.Items() {
			if r.Contains(it.Tile) {
				items = append(items, it)
			}
		}
		for _, z := range chunk.Zombies() {
			if r.Contains(z.Tile) {
				zombies = append(zombies, z)
			}
		}
	}
	return items, zombies
}

// GetWorldUpdateForPlayer gets the world state around a player
func (ws *WorldService) GetWorldUpdateForPlayer(playerID string, radius int) (*messages.UpdateMessage, error) {
	ws.worldMutex.RLock()
	defer ws.worldMutex.RUnlock()

	player, exists := ws.players[playerID]
	if !exists {
		return nil, ErrPlayerNotFound
	}
	center := player.TilePosition()
	radius = clampRadius(radius)

	view, err := ws.TileWindow(center, radius)
	if err != nil {
		return nil, err
	}
	items, zombies := ws.NearbyEntities(center, radius)

	nearbyPlayers := make([]messages.PlayerView, 0)
	for id, p := range ws.players {
		if id == playerID {
			continue
		}
		tile := p.TilePosition()
		if abs(tile.X-center.X) <= radius && abs(tile.Y-center.Y) <= radius {
			nearbyPlayers = append(nearbyPlayers, messages.PlayerView{
				ID:       p.ID,
				Username: p.Username,
				X:        p.X,
				Y:        p.Y,
				HP:       p.HP,
			})
		}
	}

	return &messages.UpdateMessage{
		Players:   nearbyPlayers,
		Zombies:   zombies,
		Items:     items,
		Inventory: append([]*models.Item(nil), player.Inventory...),
		Map:       view,
	}, nil
}

// ChunkContents lists one spawn bucket
func (ws *WorldService) ChunkContents(cx, cy int) (*messages.ChunkMessage, error) {
	chunk := ws.world.Chunks.ChunkAt(cx, cy)
	if chunk == nil {
		return nil, fmt.Errorf("chunk (%d,%d): %w", cx, cy, ErrOutOfRange)
	}
	return &messages.ChunkMessage{
		CX:      cx,
		CY:      cy,
		Bounds:  chunk.Bounds(),
		Items:   chunk.Items(),
		Zombies: chunk.Zombies(),
	}, nil
}

// PickupItem moves a dropped item within PickupRange into the player's inventory
func (ws *WorldService) PickupItem(playerID, itemID string) (*models.Item, error) {
	ws.worldMutex.Lock()
	defer ws.worldMutex.Unlock()

	player, exists := ws.players[playerID]
	if !exists {
		return nil, ErrPlayerNotFound
	}
	at := player.TilePosition()

	var target *models.Item
	for _, chunk := range ws.world.Chunks.LoadChunksAround(at.X, at.Y) {
		for _, it := range chunk.Items() {
			if it.ID == itemID {
				target = it
			}
		}
	}
	if target == nil {
		return nil, fmt.Errorf("item %s: %w", itemID, ErrItemNotFound)
	}
	if abs(target.Tile.X-at.X) > PickupRange || abs(target.Tile.Y-at.Y) > PickupRange {
		return nil, fmt.Errorf("item %s at %v: %w", itemID, target.Tile, ErrOutOfRange)
	}

	item, ok := ws.world.Chunks.RemoveItem(target.Tile, itemID)
	if !ok {
		return nil, fmt.Errorf("item %s: %w", itemID, ErrItemNotFound)
	}
	item.State = models.ItemInventory
	player.Inventory = append(player.Inventory, item)

	ws.persistMove(player, "pickup")
	ws.logger.Debug().Str("player", player.Username).Str("item", item.Name).Msg("item picked up")
	return item, nil
}

// DropItem puts an inventory item on the player's tile
func (ws *WorldService) DropItem(playerID, itemID string) (*models.Item, error) {
	ws.worldMutex.Lock()
	defer ws.worldMutex.Unlock()

	player, exists := ws.players[playerID]
	if !exists {
		return nil, ErrPlayerNotFound
	}
	item, ok := player.TakeItem(itemID)
	if !ok {
		return nil, fmt.Errorf("item %s: %w", itemID, ErrItemNotFound)
	}

	item.PlaceAt(player.TilePosition())
	if err := ws.world.Chunks.AddItem(item); err != nil {
		player.Inventory = append(player.Inventory, item)
		item.State = models.ItemInventory
		return nil, err
	}

	ws.persistMove(player, "drop")
	return item, nil
}

// FindPath routes between two tiles over walkable ground
func (ws *WorldService) FindPath(from, to models.Point) ([]models.Point, error) {
	if ws.world.Pathfinder == nil {
		return nil, errors.New("map has no pathfinder")
	}
	return ws.world.Pathfinder.FindPath(from, to)
}

// persistMove stores both sides of an item moving between the ground and an
// inventory, so a restart never finds the item in both places. Callers hold worldMutex.
func (ws *WorldService) persistMove(player *models.Player, action string) {
	if err := ws.saveWorld(); err != nil {
		ws.logger.Warn().Err(err).Str("player", player.ID).Msgf("failed to save world after %s", action)
	}
	if err := ws.db.SavePlayer(player); err != nil {
		ws.logger.Warn().Err(err).Str("player", player.ID).Msgf("failed to save player after %s", action)
	}
}

// Save stores the current map, including bucket contents, under its name
func (ws *WorldService) Save() error {
	ws.worldMutex.RLock()
	defer ws.worldMutex.RUnlock()

	if err := ws.saveWorld(); err != nil {
		return err
	}
	ws.logger.Info().Msg("world saved")
	return nil
}

func (ws *WorldService) saveWorld() error {
	if err := ws.db.SaveWorld(ws.world.Name, ws.world.Snapshot()); err != nil {
		return fmt.Errorf("failed to save world %s: %w", ws.world.Name, err)
	}
	return nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
