package handlers

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"projectz/server/messages"
	"projectz/server/models"
	"projectz/server/network"
	"projectz/server/services"
)

// ClientHandler manages a single client connection
type ClientHandler struct {
	conn          *network.Connection
	playerService *services.PlayerService
	worldService  *services.WorldService
	clientManager *ClientManager

	// guarded by mu; broadcasts read them from other connections
	mu         sync.Mutex
	player     *models.Player
	viewRadius int
	logger     zerolog.Logger
}

// HandleClientConnection serves one websocket until it closes
func HandleClientConnection(wsConn *websocket.Conn, playerService *services.PlayerService, worldService *services.WorldService, clientManager *ClientManager, logger zerolog.Logger) {
	conn := network.NewConnection(wsConn, logger)
	handler := newClientHandler(conn, playerService, worldService, clientManager, logger)
	if !clientManager.attach(handler) {
		wsConn.Close()
		return
	}
	defer clientManager.detach(handler)
	logger.Info().Str("remote", wsConn.RemoteAddr().String()).Msg("new connection")

	go conn.WritePump()
	conn.ReadPump(handler)

	if handler.player != nil {
		clientManager.RemoveClient(handler.player.ID)
		playerService.Logout(handler.player.ID)
		handler.log().Info().Msg("player disconnected")
		handler.broadcastWorldUpdate()
	}
}

func newClientHandler(conn *network.Connection, playerService *services.PlayerService, worldService *services.WorldService, clientManager *ClientManager, logger zerolog.Logger) *ClientHandler {
	return &ClientHandler{
		conn:          conn,
		playerService: playerService,
		worldService:  worldService,
		clientManager: clientManager,
		viewRadius:    services.DefaultViewRadius,
		logger:        logger,
	}
}

func (h *ClientHandler) log() *zerolog.Logger {
	h.mu.Lock()
	defer h.mu.Unlock()
	logger := h.logger
	return &logger
}

// HandleMessage handles incoming messages from the client
func (h *ClientHandler) HandleMessage(conn *network.Connection, message []byte) {
	var baseMsg messages.BaseMessage
	if err := json.Unmarshal(message, &baseMsg); err != nil {
		h.log().Debug().Err(err).Msg("error unmarshaling message")
		h.sendError(messages.CodeBadPayload, "message is not valid JSON")
		return
	}

	if baseMsg.Type != messages.MessageTypeLogin && h.player == nil {
		h.sendError(messages.CodeNotLoggedIn, "log in first")
		return
	}

	switch baseMsg.Type {
	case messages.MessageTypeLogin:
		h.handleLogin(baseMsg.Payload)
	case messages.MessageTypeView:
		h.handleView(baseMsg.Payload)
	case messages.MessageTypeChunk:
		h.handleChunk(baseMsg.Payload)
	case messages.MessageTypePickup:
		h.handlePickup(baseMsg.Payload)
	case messages.MessageTypeDrop:
		h.handleDrop(baseMsg.Payload)
	case messages.MessageTypePath:
		h.handlePath(baseMsg.Payload)
	default:
		h.log().Debug().Str("type", string(baseMsg.Type)).Msg("unknown message type")
		h.sendError(messages.CodeUnknownMessage, "Unknown message type received")
	}
}

// decodePayload re-decodes the generic payload into a typed message
func decodePayload(payload interface{}, dst interface{}) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dst)
}

func (h *ClientHandler) sendError(code, message string) {
	if err := h.conn.SendMessage(messages.NewError(code, message)); err != nil {
		h.log().Debug().Err(err).Msg("error sending error message")
	}
}

func (h *ClientHandler) send(t messages.MessageType, payload interface{}) {
	if err := h.conn.SendMessage(messages.BaseMessage{Type: t, Payload: payload}); err != nil {
		h.log().Debug().Err(err).Str("type", string(t)).Msg("error sending message")
	}
}

func (h *ClientHandler) handleLogin(payload interface{}) {
	var loginMsg messages.LoginMessage
	if err := decodePayload(payload, &loginMsg); err != nil {
		h.sendError(messages.CodeBadPayload, err.Error())
		return
	}

	player, err := h.playerService.GetOrCreatePlayer(loginMsg.Username)
	if err != nil {
		h.log().Warn().Err(err).Str("username", loginMsg.Username).Msg("login failed")
		h.sendError(messages.CodeLoginFailed, "Failed to log in")
		return
	}

	logger := h.log().With().Str("player", player.Username).Logger()
	h.mu.Lock()
	h.player = player
	h.logger = logger
	h.mu.Unlock()
	h.clientManager.AddClient(player.ID, h)

	h.send(messages.MessageTypeLoginSuccess, messages.LoginSuccessMessage{
		PlayerID: player.ID,
		Message:  "Login successful",
		Player:   player,
		World:    h.worldService.Summary(),
	})

	h.broadcastWorldUpdate()
}

func (h *ClientHandler) handleView(payload interface{}) {
	var viewMsg messages.ViewMessage
	if err := decodePayload(payload, &viewMsg); err != nil {
		h.sendError(messages.CodeBadPayload, err.Error())
		return
	}
	if viewMsg.Radius > 0 {
		h.mu.Lock()
		h.viewRadius = viewMsg.Radius
		h.mu.Unlock()
	}
	h.sendWorldUpdate()
}

func (h *ClientHandler) handleChunk(payload interface{}) {
	var req messages.ChunkRequest
	if err := decodePayload(payload, &req); err != nil {
		h.sendError(messages.CodeBadPayload, err.Error())
		return
	}
	chunk, err := h.worldService.ChunkContents(req.CX, req.CY)
	if err != nil {
		h.sendError(messages.CodeChunkFailed, err.Error())
		return
	}
	h.send(messages.MessageTypeChunk, chunk)
}

func (h *ClientHandler) handlePickup(payload interface{}) {
	var req messages.ItemMessage
	if err := decodePayload(payload, &req); err != nil {
		h.sendError(messages.CodeBadPayload, err.Error())
		return
	}
	if _, err := h.worldService.PickupItem(h.player.ID, req.ItemID); err != nil {
		h.sendError(messages.CodePickupFailed, err.Error())
		return
	}
	h.broadcastWorldUpdate()
}

func (h *ClientHandler) handleDrop(payload interface{}) {
	var req messages.ItemMessage
	if err := decodePayload(payload, &req); err != nil {
		h.sendError(messages.CodeBadPayload, err.Error())
		return
	}
	if _, err := h.worldService.DropItem(h.player.ID, req.ItemID); err != nil {
		h.sendError(messages.CodeDropFailed, err.Error())
		return
	}
	h.broadcastWorldUpdate()
}

func (h *ClientHandler) handlePath(payload interface{}) {
	var req messages.PathRequest
	if err := decodePayload(payload, &req); err != nil {
		h.sendError(messages.CodeBadPayload, err.Error())
		return
	}
	from := h.player.TilePosition()
	to := models.Point{X: req.X, Y: req.Y}
	points, err := h.worldService.FindPath(from, to)
	if err != nil {
		h.sendError(messages.CodePathFailed, err.Error())
		return
	}
	h.send(messages.MessageTypePath, messages.PathMessage{From: from, To: to, Points: points})
}

// sendWorldUpdate sends the surroundings of the player
func (h *ClientHandler) sendWorldUpdate() {
	h.mu.Lock()
	player, radius := h.player, h.viewRadius
	h.mu.Unlock()
	if player == nil {
		return
	}
	update, err := h.worldService.GetWorldUpdateForPlayer(player.ID, radius)
	if err != nil {
		if !errors.Is(err, services.ErrPlayerNotFound) {
			h.sendError(messages.CodeViewFailed, err.Error())
		}
		return
	}
	h.send(messages.MessageTypeUpdate, update)
}

// broadcastWorldUpdate refreshes every connected client
func (h *ClientHandler) broadcastWorldUpdate() {
	h.clientManager.ExecuteOnAllClients(func(client *ClientHandler) {
		client.sendWorldUpdate()
	})
}
