package persistence

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/rs/zerolog"

	"projectz/server/models"
)

// PostgresStore handles database operations using PostgreSQL
type PostgresStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewPostgresStore connects and makes sure the schema exists
func NewPostgresStore(connectionString string, logger zerolog.Logger) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db, logger: logger}
	if err := store.initSchema(); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the tables. Tile layers are little-endian uint16 blobs.
func (dm *PostgresStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS players (
		id TEXT PRIMARY KEY,
		username TEXT UNIQUE NOT NULL,
		x INTEGER NOT NULL,
		y INTEGER NOT NULL,
		hp INTEGER NOT NULL,
		max_hp INTEGER NOT NULL,
		inventory JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS worlds (
		id SERIAL PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		seed TEXT NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		ground BYTEA NOT NULL,
		overlay BYTEA NOT NULL,
		items JSONB NOT NULL,
		zombies JSONB NOT NULL,
		layout JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);
	`

	_, err := dm.db.Exec(schema)
	return err
}

// worldLayout is the JSONB column holding plazas and salient points
type worldLayout struct {
	Plazas         []models.Rect `json:"plazas"`
	StartPlaza     int           `json:"start_plaza"`
	GoalPlaza      int           `json:"goal_plaza"`
	PlayerStart    models.Point  `json:"player_start"`
	FlagLocation   models.Point  `json:"flag_location"`
	SafehouseStart models.Point  `json:"safehouse_start"`
	SafehouseEnd   models.Point  `json:"safehouse_end"`

	PlazaKinds []string                `json:"plaza_kinds,omitempty"`
	Buildings  []models.BuildingRecord `json:"buildings,omitempty"`
	Roads      []models.RoadRecord     `json:"roads,omitempty"`
	Counts     models.LayoutCounts     `json:"counts"`
}

// SavePlayer upserts a player
func (dm *PostgresStore) SavePlayer(player *models.Player) error {
	inventoryJSON, err := json.Marshal(player.Inventory)
	if err != nil {
		return fmt.Errorf("failed to marshal player inventory: %w", err)
	}

	query := `
	INSERT INTO players (id, username, x, y, hp, max_hp, inventory)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	ON CONFLICT (id)
	DO UPDATE SET
		x = $3, y = $4, hp = $5, max_hp = $6, inventory = $7,
		updated_at = NOW()
	`

	_, err = dm.db.Exec(query,
		player.ID, player.Username, player.X, player.Y,
		player.HP, player.MaxHP, string(inventoryJSON))
	if err != nil {
		return fmt.Errorf("failed to save player: %w", err)
	}
	return nil
}

const playerColumns = `id, username, x, y, hp, max_hp, inventory, created_at, updated_at`

func scanPlayer(row *sql.Row, key string) (*models.Player, error) {
	var player models.Player
	var inventoryJSON string

	err := row.Scan(
		&player.ID, &player.Username, &player.X, &player.Y,
		&player.HP, &player.MaxHP, &inventoryJSON,
		&player.CreatedAt, &player.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("player %s: %w", key, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load player: %w", err)
	}

	if err := json.Unmarshal([]byte(inventoryJSON), &player.Inventory); err != nil {
		return nil, fmt.Errorf("failed to unmarshal player inventory: %w", err)
	}
	return &player, nil
}

// LoadPlayer loads a player by ID
func (dm *PostgresStore) LoadPlayer(playerID string) (*models.Player, error) {
	row := dm.db.QueryRow(`SELECT `+playerColumns+` FROM players WHERE id = $1`, playerID)
	return scanPlayer(row, playerID)
}

// LoadPlayerByUsername loads a player by username
func (dm *PostgresStore) LoadPlayerByUsername(username string) (*models.Player, error) {
	row := dm.db.QueryRow(`SELECT `+playerColumns+` FROM players WHERE username = $1`, username)
	return scanPlayer(row, username)
}

// SaveWorld upserts a world snapshot
func (dm *PostgresStore) SaveWorld(name string, gameMap *models.GameMap) error {
	itemsJSON, err := json.Marshal(gameMap.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal world items: %w", err)
	}
	zombiesJSON, err := json.Marshal(gameMap.Zombies)
	if err != nil {
		return fmt.Errorf("failed to marshal world zombies: %w", err)
	}
	layoutJSON, err := json.Marshal(worldLayout{
		Plazas:         gameMap.Plazas,
		StartPlaza:     gameMap.StartPlaza,
		GoalPlaza:      gameMap.GoalPlaza,
		PlayerStart:    gameMap.PlayerStart,
		FlagLocation:   gameMap.FlagLocation,
		SafehouseStart: gameMap.SafehouseStart,
		SafehouseEnd:   gameMap.SafehouseEnd,
		PlazaKinds:     gameMap.PlazaKinds,
		Buildings:      gameMap.Buildings,
		Roads:          gameMap.Roads,
		Counts:         gameMap.Counts,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal world layout: %w", err)
	}

	query := `
	INSERT INTO worlds (name, seed, width, height, ground, overlay, items, zombies, layout)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (name)
	DO UPDATE SET
		seed = $2, width = $3, height = $4, ground = $5, overlay = $6,
		items = $7, zombies = $8, layout = $9,
		updated_at = NOW()
	`

	_, err = dm.db.Exec(query,
		name, gameMap.Seed, gameMap.Width, gameMap.Height,
		models.EncodeLayer(gameMap.Ground), models.EncodeLayer(gameMap.Overlay),
		string(itemsJSON), string(zombiesJSON), string(layoutJSON))
	if err != nil {
		return fmt.Errorf("failed to save world: %w", err)
	}
	return nil
}

// LoadWorld loads a world snapshot by name
func (dm *PostgresStore) LoadWorld(name string) (*models.GameMap, error) {
	query := `SELECT seed, width, height, ground, overlay, items, zombies, layout FROM worlds WHERE name = $1`

	gameMap := models.GameMap{Name: name}
	var ground, overlay []byte
	var itemsJSON, zombiesJSON, layoutJSON string

	err := dm.db.QueryRow(query, name).Scan(
		&gameMap.Seed, &gameMap.Width, &gameMap.Height,
		&ground, &overlay, &itemsJSON, &zombiesJSON, &layoutJSON,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("world with name %s: %w", name, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load world: %w", err)
	}

	if gameMap.Ground, err = models.DecodeLayer(ground); err != nil {
		return nil, fmt.Errorf("world %s ground: %w", name, err)
	}
	if gameMap.Overlay, err = models.DecodeLayer(overlay); err != nil {
		return nil, fmt.Errorf("world %s overlay: %w", name, err)
	}
	if err := json.Unmarshal([]byte(itemsJSON), &gameMap.Items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal world items: %w", err)
	}
	if err := json.Unmarshal([]byte(zombiesJSON), &gameMap.Zombies); err != nil {
		return nil, fmt.Errorf("failed to unmarshal world zombies: %w", err)
	}

	var layout worldLayout
	if err := json.Unmarshal([]byte(layoutJSON), &layout); err != nil {
		return nil, fmt.Errorf("failed to unmarshal world layout: %w", err)
	}
	gameMap.Plazas = layout.Plazas
	gameMap.StartPlaza = layout.StartPlaza
	gameMap.GoalPlaza = layout.GoalPlaza
	gameMap.PlayerStart = layout.PlayerStart
	gameMap.FlagLocation = layout.FlagLocation
	gameMap.SafehouseStart = layout.SafehouseStart
	gameMap.SafehouseEnd = layout.SafehouseEnd
	gameMap.PlazaKinds = layout.PlazaKinds
	gameMap.Buildings = layout.Buildings
	gameMap.Roads = layout.Roads
	gameMap.Counts = layout.Counts

	return &gameMap, nil
}

// Close closes the database connection
func (dm *PostgresStore) Close() error {
	dm.logger.Info().Msg("closing database connection")
	return dm.db.Close()
}
