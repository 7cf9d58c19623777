package models

import "time"

// TileSize is the pixel edge length of one tile
const TileSize = 32

// ZombieHealth is the health of a freshly spawned zombie
const ZombieHealth = 100

// PlayerMaxHP is the health of a new player
const PlayerMaxHP = 100

type Player struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	X         int       `json:"x"`
	Y         int       `json:"y"`
	HP        int       `json:"hp"`
	MaxHP     int       `json:"max_hp"`
	Inventory []*Item   `json:"inventory"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TilePosition converts the player's pixel position to a tile coordinate
func (p *Player) TilePosition() Point {
	return Point{X: p.X / TileSize, Y: p.Y / TileSize}
}

// Clone copies the player record and its inventory
func (p *Player) Clone() *Player {
	c := *p
	c.Inventory = cloneItems(p.Inventory)
	return &c
}

// TakeItem removes an item from the inventory by id
func (p *Player) TakeItem(itemID string) (*Item, bool) {
	for idx, item := range p.Inventory {
		if item.ID == itemID {
			p.Inventory = append(p.Inventory[:idx], p.Inventory[idx+1:]...)
			return item, true
		}
	}
	return nil, false
}

// Zombie is a spawned hostile. Positions are in pixels.
type Zombie struct {
	ID         string `json:"id"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	Tile       Point  `json:"tile"`
	HP         int    `json:"hp"`
	PatrolSeed int    `json:"patrol_seed"`
}

// NewZombie spawns a zombie at full health on a tile
func NewZombie(id string, tile Point, patrolSeed int) *Zombie {
	return &Zombie{
		ID:         id,
		X:          tile.X * TileSize,
		Y:          tile.Y * TileSize,
		Tile:       tile,
		HP:         ZombieHealth,
		PatrolSeed: patrolSeed,
	}
}

// Clone returns an independent copy
func (z *Zombie) Clone() *Zombie {
	c := *z
	return &c
}

// GetID implements Entity
func (z *Zombie) GetID() string {
	return z.ID
}

// GetPosition implements Entity
func (z *Zombie) GetPosition() Position {
	return Position{X: z.X, Y: z.Y}
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}
