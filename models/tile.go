package models

// Tile is a packed 16-bit map cell.
//
//	bits 0-11  type id (0 means unset)
//	bits 12-13 orientation
//	bit  14    solid flag
//	bit  15    unused
type Tile uint16

// Orientation is the facing of a tile sprite
type Orientation uint8

const (
	Down  Orientation = 0
	Left  Orientation = 1
	Right Orientation = 2
	Up    Orientation = 3
)

const (
	tileTypeMask    = 0x0FFF
	orientationBits = 12
	orientationMask = 0x3 << orientationBits
	solidBit        = 1 << 14
)

// Ground tile types
const (
	TileUnset = 0

	TileCurb         = 100
	TileLane         = 101
	TileSidewalk     = 102
	TileMergeOuter   = 103
	TileCenterLane   = 104
	TileLaneMarking  = 105
	TileMergeCenter  = 106
	TileMergeEdge    = 107
	TileGrass        = 108
	TileTreeTrunk    = 109
	TileCanopy       = 110
	TileCanopyCorner = 111
	TileRoadCap      = 120

	TileBuildingBorder = 200
	TileFloor          = 201
	TileInnerWall      = 202
	TileWallCorner     = 203
	TileWallEnd        = 204
	TileRoomWall       = 205
	TileRoomWallJoint  = 206
	TileDoor           = 207
	TileSafeWall       = 208
	TileSafeCorner     = 209
	TileSafeWallEnd    = 210
	TileVictoryFlag    = 211
)

// MaxTileType is the largest type id the packing can hold
const MaxTileType = tileTypeMask

// NewTile packs a ground cell
func NewTile(tileType int, o Orientation, solid bool) Tile {
	t := Tile(tileType&tileTypeMask) | Tile(o&0x3)<<orientationBits
	if solid {
		t |= solidBit
	}
	return t
}

// NewOverlayTile packs an overlay cell. Overlay cells never carry the solid flag.
func NewOverlayTile(tileType int, o Orientation) Tile {
	return NewTile(tileType, o, false)
}

// Type returns the type id
func (t Tile) Type() int {
	return int(t & tileTypeMask)
}

// Orientation returns the facing
func (t Tile) Orientation() Orientation {
	return Orientation((t & orientationMask) >> orientationBits)
}

// Solid reports whether the cell blocks movement
func (t Tile) Solid() bool {
	return t&solidBit != 0
}

// IsSet reports whether anything was painted into the cell
func (t Tile) IsSet() bool {
	return t.Type() != TileUnset
}

// TileView is the decoded form of a packed cell
type TileView struct {
	Type        int         `json:"type"`
	Orientation Orientation `json:"orientation"`
	Solid       bool        `json:"solid"`
}

// Decode unpacks the cell
func (t Tile) Decode() TileView {
	return TileView{Type: t.Type(), Orientation: t.Orientation(), Solid: t.Solid()}
}

// Pack is the inverse of Decode
func (v TileView) Pack() Tile {
	return NewTile(v.Type, v.Orientation, v.Solid)
}

func (o Orientation) String() string {
	switch o {
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	}
	return "unknown"
}

// IsRoadType reports whether the type belongs to the road family
func IsRoadType(tileType int) bool {
	switch tileType {
	case TileCurb, TileLane, TileSidewalk, TileMergeOuter, TileCenterLane,
		TileLaneMarking, TileMergeCenter, TileMergeEdge, TileRoadCap:
		return true
	}
	return false
}

// IsWallType reports whether the type is any building or room wall
func IsWallType(tileType int) bool {
	switch tileType {
	case TileInnerWall, TileWallCorner, TileWallEnd, TileRoomWall, TileRoomWallJoint,
		TileSafeWall, TileSafeCorner, TileSafeWallEnd:
		return true
	}
	return false
}

// IsBuildingType reports whether the type is part of a building footprint
func IsBuildingType(tileType int) bool {
	return tileType >= TileBuildingBorder && tileType <= TileVictoryFlag
}

// IsKnownType reports whether the type is one the generator emits
func IsKnownType(tileType int) bool {
	return IsRoadType(tileType) || IsBuildingType(tileType) ||
		tileType == TileGrass || tileType == TileTreeTrunk
}

// IsOverlayType reports whether the type may appear on the overlay layer
func IsOverlayType(tileType int) bool {
	return tileType == TileUnset || tileType == TileCanopy || tileType == TileCanopyCorner
}
