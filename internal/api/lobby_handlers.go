package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lukev/gwent_server/internal/lobby"
)

// LobbyHandler serves the open-table surface: create, join, list.
type LobbyHandler struct {
	lobby *lobby.Manager
}

// NewLobbyHandler wires a handler to its lobby manager.
func NewLobbyHandler(lobbyMgr *lobby.Manager) *LobbyHandler {
	return &LobbyHandler{lobby: lobbyMgr}
}

// RegisterRoutes mounts every handler under /api/lobby.
func (h *LobbyHandler) RegisterRoutes(router *mux.Router) {
	s := router.PathPrefix("/api/lobby").Subrouter()
	s.HandleFunc("/create", h.handleCreate).Methods("POST")
	s.HandleFunc("/join", h.handleJoin).Methods("POST")
	s.HandleFunc("/list", h.handleList).Methods("GET")
}

func (h *LobbyHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Creator string `json:"creator"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	table := h.lobby.CreateTable(req.Name, req.Creator)
	writeJSON(w, http.StatusOK, table)
}

func (h *LobbyHandler) handleJoin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TableID string `json:"tableId"`
		Player  string `json:"player"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if !h.lobby.JoinTable(req.TableID, req.Player) {
		http.Error(w, "table full, unknown, or player already seated", http.StatusConflict)
		return
	}
	table, _ := h.lobby.GetTable(req.TableID)
	writeJSON(w, http.StatusOK, table)
}

func (h *LobbyHandler) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.lobby.ListTables())
}
