package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"projectz/server/messages"
	"projectz/server/models"
	"projectz/server/services"
	"projectz/server/world"
)

var upgrader = websocket.Upgrader{
	// Allow connections from any origin during development
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type api struct {
	worldService  *services.WorldService
	playerService *services.PlayerService
	clientManager *ClientManager
	logger        zerolog.Logger
}

// NewRouter wires the websocket endpoint and the read-only world API
func NewRouter(worldService *services.WorldService, playerService *services.PlayerService, clientManager *ClientManager, logger zerolog.Logger) *mux.Router {
	a := &api{
		worldService:  worldService,
		playerService: playerService,
		clientManager: clientManager,
		logger:        logger,
	}

	r := mux.NewRouter()
	r.HandleFunc("/ws", a.serveWS)

	s := r.PathPrefix("/api").Methods(http.MethodGet).Subrouter()
	s.HandleFunc("/world", a.getWorld)
	s.HandleFunc("/chunks/{cx:[0-9]+}/{cy:[0-9]+}", a.getChunk)
	s.HandleFunc("/tiles", a.getTiles)
	s.HandleFunc("/preview", a.getPreview)
	s.HandleFunc("/players/{id}", a.getPlayer)
	return r
}

func (a *api) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		a.logger.Warn().Err(err).Msg("failed to upgrade connection")
		return
	}
	HandleClientConnection(conn, a.playerService, a.worldService, a.clientManager, a.logger)
}

func (a *api) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Debug().Err(err).Msg("error writing response")
	}
}

func (a *api) writeError(w http.ResponseWriter, status int, code string, err error) {
	a.writeJSON(w, status, messages.ErrorMessage{Code: code, Message: err.Error()})
}

func (a *api) getWorld(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, a.worldService.Summary())
}

func (a *api) getChunk(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	cx, _ := strconv.Atoi(vars["cx"])
	cy, _ := strconv.Atoi(vars["cy"])
	chunk, err := a.worldService.ChunkContents(cx, cy)
	if err != nil {
		a.writeError(w, http.StatusNotFound, messages.CodeChunkFailed, err)
		return
	}
	a.writeJSON(w, http.StatusOK, chunk)
}

func (a *api) getTiles(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	var center models.Point
	var radius int
	var err error
	if center.X, err = strconv.Atoi(q.Get("x")); err != nil {
		a.writeError(w, http.StatusBadRequest, messages.CodeBadPayload, errors.New("x must be an integer"))
		return
	}
	if center.Y, err = strconv.Atoi(q.Get("y")); err != nil {
		a.writeError(w, http.StatusBadRequest, messages.CodeBadPayload, errors.New("y must be an integer"))
		return
	}
	if s := q.Get("radius"); s != "" {
		if radius, err = strconv.Atoi(s); err != nil {
			a.writeError(w, http.StatusBadRequest, messages.CodeBadPayload, errors.New("radius must be an integer"))
			return
		}
	}

	view, err := a.worldService.TileWindow(center, radius)
	if err != nil {
		a.writeError(w, http.StatusNotFound, messages.CodeViewFailed, err)
		return
	}
	a.writeJSON(w, http.StatusOK, view)
}

func (a *api) getPlayer(w http.ResponseWriter, r *http.Request) {
	player, err := a.playerService.GetPlayer(mux.Vars(r)["id"])
	if err != nil {
		a.writeError(w, http.StatusNotFound, messages.CodeNotLoggedIn, err)
		return
	}
	a.writeJSON(w, http.StatusOK, player)
}

func (a *api) getPreview(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(world.RenderASCII(a.worldService.Map().Grid))); err != nil {
		a.logger.Debug().Err(err).Msg("error writing preview")
	}
}
