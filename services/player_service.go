package services

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"projectz/server/models"
	"projectz/server/persistence"
)

// StartingItems is how many catalog prototypes a new player carries
const StartingItems = 5

// PlayerService manages player-related operations
type PlayerService struct {
	players map[string]*models.Player
	world   *WorldService
	db      persistence.Storage
	catalog []*models.Item
	logger  zerolog.Logger
	mutex   sync.RWMutex
}

// NewPlayerService creates a player service. New players get copies of the
// first StartingItems prototypes of catalog.
func NewPlayerService(world *WorldService, db persistence.Storage, catalog []*models.Item, logger zerolog.Logger) *PlayerService {
	return &PlayerService{
		players: make(map[string]*models.Player),
		world:   world,
		db:      db,
		catalog: catalog,
		logger:  logger,
	}
}

// GetOrCreatePlayer gets an existing player or creates a new one on the player start tile
func (ps *PlayerService) GetOrCreatePlayer(username string) (*models.Player, error) {
	if username == "" {
		return nil, errors.New("username is required")
	}

	ps.mutex.Lock()
	defer ps.mutex.Unlock()

	for _, player := range ps.players {
		if player.Username == username {
			ps.world.AddPlayer(player)
			return player, nil
		}
	}

	player, err := ps.db.LoadPlayerByUsername(username)
	switch {
	case errors.Is(err, persistence.ErrNotFound):
		player = ps.newPlayer(username)
		if err := ps.db.SavePlayer(player); err != nil {
			return nil, fmt.Errorf("failed to save new player to database: %w", err)
		}
		ps.logger.Info().Str("player", username).Int("x", player.X).Int("y", player.Y).Msg("player created")
	case err != nil:
		return nil, fmt.Errorf("failed to load player: %w", err)
	}

	ps.players[player.ID] = player
	ps.world.AddPlayer(player)
	return player, nil
}

func (ps *PlayerService) newPlayer(username string) *models.Player {
	start := ps.world.Map().PlayerStart
	now := time.Now()
	player := &models.Player{
		ID:        uuid.NewString(),
		Username:  username,
		X:         start.X * models.TileSize,
		Y:         start.Y * models.TileSize,
		HP:        models.PlayerMaxHP,
		MaxHP:     models.PlayerMaxHP,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for idx, proto := range ps.catalog {
		if idx >= StartingItems {
			break
		}
		item := proto.Clone()
		item.ID = uuid.NewString()
		item.PrototypeID = proto.ID
		item.State = models.ItemInventory
		player.Inventory = append(player.Inventory, item)
	}
	return player
}

// GetPlayer returns a copy of an online player
func (ps *PlayerService) GetPlayer(playerID string) (*models.Player, error) {
	ps.mutex.RLock()
	defer ps.mutex.RUnlock()

	player, exists := ps.players[playerID]
	if !exists {
		return nil, ErrPlayerNotFound
	}
	return player.Clone(), nil
}

// Logout removes the player from the world and persists it
func (ps *PlayerService) Logout(playerID string) {
	ps.world.RemovePlayer(playerID)

	ps.mutex.Lock()
	player, exists := ps.players[playerID]
	delete(ps.players, playerID)
	ps.mutex.Unlock()

	if exists {
		if err := ps.db.SavePlayer(player); err != nil {
			ps.logger.Warn().Err(err).Str("player", playerID).Msg("failed to save player on logout")
		}
	}
}
