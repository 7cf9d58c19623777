package messages

import (
	"projectz/server/models"
	"projectz/server/world"
)

// MessageType defines the type of message being sent
type MessageType string

const (
	MessageTypeLogin        MessageType = "login"
	MessageTypeLoginSuccess MessageType = "login_success"
	MessageTypeView         MessageType = "view"
	MessageTypeUpdate       MessageType = "update"
	MessageTypeChunk        MessageType = "chunk"
	MessageTypePickup       MessageType = "pickup"
	MessageTypeDrop         MessageType = "drop"
	MessageTypePath         MessageType = "path"
	MessageTypeError        MessageType = "error"
)

// Error codes sent in ErrorMessage
const (
	CodeUnknownMessage = "UNKNOWN_MESSAGE_TYPE"
	CodeBadPayload     = "BAD_PAYLOAD"
	CodeNotLoggedIn    = "NOT_LOGGED_IN"
	CodeLoginFailed    = "LOGIN_FAILED"
	CodeViewFailed     = "VIEW_FAILED"
	CodeChunkFailed    = "CHUNK_FAILED"
	CodePickupFailed   = "PICKUP_FAILED"
	CodeDropFailed     = "DROP_FAILED"
	CodePathFailed     = "PATH_FAILED"
)

// BaseMessage is the base structure for all messages
type BaseMessage struct {
	Type    MessageType `json:"type"`
	Payload interface{} `json:"payload"`
}

// LoginMessage represents a login request
type LoginMessage struct {
	Username string `json:"username"`
}

// LoginSuccessMessage represents a successful login response
type LoginSuccessMessage struct {
	PlayerID string         `json:"player_id"`
	Message  string         `json:"message"`
	Player   *models.Player `json:"player"`
	World    WorldSummary   `json:"world"`
}

// WorldSummary describes the loaded world
type WorldSummary struct {
	Name           string        `json:"name"`
	Seed           string        `json:"seed"`
	Width          int           `json:"width"`
	Height         int           `json:"height"`
	TileSize       int           `json:"tile_size"`
	ChunkSize      int           `json:"chunk_size"`
	PlayerStart    models.Point  `json:"player_start"`
	FlagLocation   models.Point  `json:"flag_location"`
	SafehouseStart models.Point  `json:"safehouse_start"`
	SafehouseEnd   models.Point  `json:"safehouse_end"`
	Stats          world.Stats   `json:"stats"`
	Plazas         []models.Rect `json:"plazas"`
}

// ViewMessage asks for the surroundings of the player
type ViewMessage struct {
	Radius int `json:"radius"`
}

// MapView is a window of packed ground and overlay cells. Rows run top to bottom
// starting at Origin.
type MapView struct {
	CenterX int             `json:"center_x"`
	CenterY int             `json:"center_y"`
	Radius  int             `json:"radius"`
	Origin  models.Point    `json:"origin"`
	Ground  [][]models.Tile `json:"ground"`
	Overlay [][]models.Tile `json:"overlay"`
}

// PlayerView is what other clients see of a player
type PlayerView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	HP       int    `json:"hp"`
}

// UpdateMessage represents a world update
type UpdateMessage struct {
	Players   []PlayerView     `json:"players"`
	Zombies   []*models.Zombie `json:"zombies"`
	Items     []*models.Item   `json:"items"`
	Inventory []*models.Item   `json:"inventory"`
	Map       *MapView         `json:"map"`
}

// ChunkRequest asks for the contents of one spawn bucket
type ChunkRequest struct {
	CX int `json:"cx"`
	CY int `json:"cy"`
}

// ChunkMessage lists the contents of one spawn bucket
type ChunkMessage struct {
	CX      int              `json:"cx"`
	CY      int              `json:"cy"`
	Bounds  models.Rect      `json:"bounds"`
	Items   []*models.Item   `json:"items"`
	Zombies []*models.Zombie `json:"zombies"`
}

// ItemMessage names an item to pick up or drop
type ItemMessage struct {
	ItemID string `json:"item_id"`
}

// PathRequest asks for a walkable route from the player to a tile
type PathRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// PathMessage is the route answer, tile coordinates from start to goal
type PathMessage struct {
	From   models.Point   `json:"from"`
	To     models.Point   `json:"to"`
	Points []models.Point `json:"points"`
}

// ErrorMessage represents an error response
type ErrorMessage struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// NewError wraps an error payload in a BaseMessage
func NewError(code, message string) BaseMessage {
	return BaseMessage{
		Type:    MessageTypeError,
		Payload: ErrorMessage{Code: code, Message: message},
	}
}
