package models

import (
	"encoding/binary"
	"fmt"
)

// GameMap is the serializable snapshot of a generated world.
// Layers are row-major (index y*Width+x) and keep the packed bit layout.
type GameMap struct {
	Name           string    `json:"name"`
	Seed           string    `json:"seed"`
	Width          int       `json:"width"`
	Height         int       `json:"height"`
	Ground         []Tile    `json:"ground"`
	Overlay        []Tile    `json:"overlay"`
	Items          []*Item   `json:"items"`
	Zombies        []*Zombie `json:"zombies"`
	Plazas         []Rect    `json:"plazas"`
	StartPlaza     int       `json:"start_plaza"`
	GoalPlaza      int       `json:"goal_plaza"`
	PlayerStart    Point     `json:"player_start"`
	FlagLocation   Point     `json:"flag_location"`
	SafehouseStart Point     `json:"safehouse_start"`
	SafehouseEnd   Point     `json:"safehouse_end"`

	PlazaKinds []string         `json:"plaza_kinds,omitempty"`
	Buildings  []BuildingRecord `json:"buildings,omitempty"`
	Roads      []RoadRecord     `json:"roads,omitempty"`
	Counts     LayoutCounts     `json:"counts"`
}

// BuildingRecord is a placed building footprint
type BuildingRecord struct {
	Bounds Rect        `json:"bounds"`
	Facing Orientation `json:"facing"`
	Role   string      `json:"role"`
	Plaza  int         `json:"plaza"`
}

// RoadRecord is a carved road
type RoadRecord struct {
	Vertical bool `json:"vertical"`
	Center   int  `json:"center"`
	Size     int  `json:"size"`
	Primary  bool `json:"primary"`
}

// LayoutCounts are the generation counters that cannot be recounted from the layers
type LayoutCounts struct {
	SkippedPlazas    int `json:"skipped_plazas"`
	SkippedBuildings int `json:"skipped_buildings"`
	Rooms            int `json:"rooms"`
	Trees            int `json:"trees"`
}

// Entity interface for anything that can exist on the map
type Entity interface {
	GetPosition() Position
	GetID() string
}

// EncodeLayer writes a layer as little-endian uint16 cells
func EncodeLayer(layer []Tile) []byte {
	buf := make([]byte, len(layer)*2)
	for i, t := range layer {
		binary.LittleEndian.PutUint16(buf[i*2:], uint16(t))
	}
	return buf
}

// DecodeLayer is the inverse of EncodeLayer
func DecodeLayer(buf []byte) ([]Tile, error) {
	if len(buf)%2 != 0 {
		return nil, fmt.Errorf("layer length %d is not a whole number of cells", len(buf))
	}
	layer := make([]Tile, len(buf)/2)
	for i := range layer {
		layer[i] = Tile(binary.LittleEndian.Uint16(buf[i*2:]))
	}
	return layer, nil
}
