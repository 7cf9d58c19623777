package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"projectz/server/models"
)

// JSONStore keeps players and worlds in one local JSON file
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	data     *JSONData

	// serializes marshal, write and rename of the file
	writeMutex sync.Mutex
}

// JSONData is the layout of the file. Tile layers are stored as arrays of
// packed uint16 cells.
type JSONData struct {
	Players map[string]*models.Player  `json:"players"`
	Worlds  map[string]*models.GameMap `json:"worlds"`
}

// NewJSONStore opens filePath, creating it when missing
func NewJSONStore(filePath string) (*JSONStore, error) {
	store := &JSONStore{
		filePath: filePath,
		data: &JSONData{
			Players: make(map[string]*models.Player),
			Worlds:  make(map[string]*models.GameMap),
		},
	}

	if _, err := os.Stat(filePath); err == nil {
		if err := store.loadFromFile(); err != nil {
			return nil, fmt.Errorf("failed to load JSON store: %w", err)
		}
	} else {
		if err := store.saveToFile(); err != nil {
			return nil, fmt.Errorf("failed to create JSON store file: %w", err)
		}
	}

	return store, nil
}

func (js *JSONStore) loadFromFile() error {
	js.mutex.Lock()
	defer js.mutex.Unlock()

	file, err := os.ReadFile(js.filePath)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(file, js.data); err != nil {
		return err
	}
	if js.data.Players == nil {
		js.data.Players = make(map[string]*models.Player)
	}
	if js.data.Worlds == nil {
		js.data.Worlds = make(map[string]*models.GameMap)
	}
	return nil
}

// saveToFile replaces the file through a rename
func (js *JSONStore) saveToFile() error {
	js.writeMutex.Lock()
	defer js.writeMutex.Unlock()

	js.mutex.RLock()
	data, err := json.Marshal(js.data)
	js.mutex.RUnlock()
	if err != nil {
		return err
	}

	tmp := js.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}
	return os.Rename(tmp, js.filePath)
}

// SavePlayer saves a player to the store
func (js *JSONStore) SavePlayer(player *models.Player) error {
	js.mutex.Lock()
	js.data.Players[player.ID] = player.Clone()
	js.mutex.Unlock()

	return js.saveToFile()
}

// LoadPlayer loads a player by ID
func (js *JSONStore) LoadPlayer(playerID string) (*models.Player, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	player, exists := js.data.Players[playerID]
	if !exists {
		return nil, fmt.Errorf("player with ID %s: %w", playerID, ErrNotFound)
	}
	return player.Clone(), nil
}

// LoadPlayerByUsername loads a player by username
func (js *JSONStore) LoadPlayerByUsername(username string) (*models.Player, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	for _, player := range js.data.Players {
		if player.Username == username {
			return player.Clone(), nil
		}
	}
	return nil, fmt.Errorf("player with username %s: %w", username, ErrNotFound)
}

// SaveWorld saves a world snapshot under name. The store keeps gameMap, so
// callers hand over a snapshot they no longer mutate.
func (js *JSONStore) SaveWorld(name string, gameMap *models.GameMap) error {
	js.mutex.Lock()
	js.data.Worlds[name] = gameMap
	js.mutex.Unlock()

	return js.saveToFile()
}

// LoadWorld loads a world snapshot by name
func (js *JSONStore) LoadWorld(name string) (*models.GameMap, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	gm, exists := js.data.Worlds[name]
	if !exists {
		return nil, fmt.Errorf("world with name %s: %w", name, ErrNotFound)
	}
	return gm, nil
}

// Close is a no-op for the JSON store
func (js *JSONStore) Close() error {
	return nil
}
