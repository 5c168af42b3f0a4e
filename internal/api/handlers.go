// Package api exposes match.Manager over HTTP, the way the teacher's
// internal/api/replay.go exposes a replay.ReplayManager: thin JSON handlers,
// a typed-error-to-status mapping, one Subrouter per concern.
package api

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/lukev/gwent_server/internal/board"
	"github.com/lukev/gwent_server/internal/card"
	"github.com/lukev/gwent_server/internal/lobby"
	"github.com/lukev/gwent_server/internal/match"
	"github.com/lukev/gwent_server/internal/scenario"
	"github.com/lukev/gwent_server/internal/wsevents"
)

// MatchHandler serves the match-play surface: create, play, pass, leader, snapshot.
type MatchHandler struct {
	manager *match.Manager
	lobby   *lobby.Manager
	hub     *wsevents.Hub
}

// NewMatchHandler wires a handler to its manager, lobby and spectator hub.
func NewMatchHandler(manager *match.Manager, lobbyMgr *lobby.Manager, hub *wsevents.Hub) *MatchHandler {
	return &MatchHandler{manager: manager, lobby: lobbyMgr, hub: hub}
}

// RegisterRoutes mounts every handler under /api/match.
func (h *MatchHandler) RegisterRoutes(router *mux.Router) {
	s := router.PathPrefix("/api/match").Subrouter()
	s.HandleFunc("/create", h.handleCreate).Methods("POST")
	s.HandleFunc("/play", h.handlePlay).Methods("POST")
	s.HandleFunc("/pass", h.handlePass).Methods("POST")
	s.HandleFunc("/leader", h.handleLeader).Methods("POST")
	s.HandleFunc("/state", h.handleState).Methods("GET")
}

type createRequest struct {
	MatchID      string               `json:"matchId"`
	ScenarioPath string               `json:"scenarioPath"`
	Catalog      map[string]card.Card `json:"catalog"`
}

// handleCreate starts a fresh match from a scenario YAML file plus the card
// catalog needed to resolve its hand/deck refs, mirroring how cmd/matchsim
// builds a match for a simulated run.
func (h *MatchHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cfg, err := scenario.Load(req.ScenarioPath)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	players := [2]*match.Player{}
	for i, setup := range cfg.Players {
		hand, err := setup.ResolveHand(req.Catalog)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		deck, err := setup.ResolveDeck(req.Catalog)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var leader *card.Card
		if setup.Leader != "" {
			if l, ok := req.Catalog[setup.Leader]; ok {
				leader = &l
			}
		}
		p := match.NewPlayer(setup.ID, deck, leader)
		p.Hand = hand
		players[i] = p
	}

	m := match.New(players)
	h.manager.CreateMatch(req.MatchID, m)

	if h.hub != nil {
		if pubErr := wsevents.PublishSnapshot(h.hub, req.MatchID, m); pubErr != nil {
			log.Printf("snapshot publish failed for match %s: %v", req.MatchID, pubErr)
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"matchId": req.MatchID})
}

type playRequest struct {
	MatchID          string `json:"matchId"`
	PlayerID         string `json:"playerId"`
	CardID           string `json:"cardId"`
	TargetRow        *int   `json:"targetRow,omitempty"`
	TargetUnitID     string `json:"targetUnitId,omitempty"`
	ActionID         string `json:"actionId,omitempty"`
	ExpectedRevision *int   `json:"expectedRevision,omitempty"`
}

func (h *MatchHandler) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req playRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, ok := h.manager.GetMatch(req.MatchID)
	if !ok {
		http.Error(w, "match not found", http.StatusNotFound)
		return
	}

	var targetRow *card.Row
	if req.TargetRow != nil {
		row := card.Row(*req.TargetRow)
		targetRow = &row
	}
	var targetUnit *card.Card
	if req.TargetUnitID != "" {
		if found := findUnitOnBoard(m, req.TargetUnitID); found != nil {
			targetUnit = found
		}
	}

	meta := match.ActionMeta{ActionID: req.ActionID}
	if req.ExpectedRevision != nil {
		meta.ExpectedRevision = *req.ExpectedRevision
	} else {
		meta.ExpectedRevision = -1
	}

	res, err := h.manager.PlayCardWithMeta(req.MatchID, req.PlayerID, req.CardID, targetRow, targetUnit, meta)
	if err != nil {
		writeTypedError(w, err)
		return
	}

	if h.hub != nil {
		if pubErr := wsevents.PublishSnapshot(h.hub, req.MatchID, m); pubErr != nil {
			log.Printf("snapshot publish failed for match %s: %v", req.MatchID, pubErr)
		}
	}

	writeJSON(w, http.StatusOK, res)
}

type passRequest struct {
	MatchID          string `json:"matchId"`
	PlayerID         string `json:"playerId"`
	ActionID         string `json:"actionId,omitempty"`
	ExpectedRevision *int   `json:"expectedRevision,omitempty"`
}

func (h *MatchHandler) handlePass(w http.ResponseWriter, r *http.Request) {
	var req passRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, ok := h.manager.GetMatch(req.MatchID)
	if !ok {
		http.Error(w, "match not found", http.StatusNotFound)
		return
	}

	meta := match.ActionMeta{ActionID: req.ActionID}
	if req.ExpectedRevision != nil {
		meta.ExpectedRevision = *req.ExpectedRevision
	} else {
		meta.ExpectedRevision = -1
	}

	res, err := h.manager.PassTurnWithMeta(req.MatchID, req.PlayerID, meta)
	if err != nil {
		writeTypedError(w, err)
		return
	}

	if h.hub != nil {
		if pubErr := wsevents.PublishSnapshot(h.hub, req.MatchID, m); pubErr != nil {
			log.Printf("snapshot publish failed for match %s: %v", req.MatchID, pubErr)
		}
	}

	writeJSON(w, http.StatusOK, res)
}

type leaderRequest struct {
	MatchID  string `json:"matchId"`
	PlayerID string `json:"playerId"`
}

func (h *MatchHandler) handleLeader(w http.ResponseWriter, r *http.Request) {
	var req leaderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m, ok := h.manager.GetMatch(req.MatchID)
	if !ok {
		http.Error(w, "match not found", http.StatusNotFound)
		return
	}

	applied, err := m.UseLeaderAbility(req.PlayerID)
	if err != nil {
		writeTypedError(w, err)
		return
	}

	if h.hub != nil && applied {
		if pubErr := wsevents.PublishSnapshot(h.hub, req.MatchID, m); pubErr != nil {
			log.Printf("snapshot publish failed for match %s: %v", req.MatchID, pubErr)
		}
	}

	writeJSON(w, http.StatusOK, map[string]bool{"applied": applied})
}

func (h *MatchHandler) handleState(w http.ResponseWriter, r *http.Request) {
	matchID := r.URL.Query().Get("matchId")
	if matchID == "" {
		http.Error(w, "missing matchId", http.StatusBadRequest)
		return
	}

	m, ok := h.manager.GetMatch(matchID)
	if !ok {
		http.Error(w, "match not found", http.StatusNotFound)
		return
	}

	rev, _ := h.manager.GetRevision(matchID)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"matchId":     matchID,
		"revision":    rev,
		"roundNumber": m.RoundNumber,
		"wins":        m.Wins,
		"lives":       m.Lives,
		"over":        m.Over,
		"rows":        m.Board.Snapshot(),
	})
}

func findUnitOnBoard(m *match.Match, unitID string) *card.Card {
	for _, p := range m.Players {
		for _, row := range card.CombatRows() {
			for _, c := range m.Board.Row(p.ID, row).Cards {
				if c.ID == unitID {
					found := c
					return &found
				}
			}
		}
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("encode response: %v", err)
	}
}

// writeTypedError maps the engine's typed errors (spec §7) to HTTP statuses,
// following internal/api/replay.go's *game.MissingInfoError handling.
func writeTypedError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch err.(type) {
	case *match.CardNotInHandError, *match.AlreadyPassedError, *match.LeaderAlreadyUsedError:
		status = http.StatusBadRequest
	case *board.InvalidRowError, *board.MissingTargetError, *board.TargetNotOnBoardError:
		status = http.StatusBadRequest
	case *match.NoActiveRoundError, *match.MatchOverError:
		status = http.StatusConflict
	case *match.RevisionMismatchError:
		status = http.StatusConflict
	case *match.MatchNotFoundError:
		status = http.StatusNotFound
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
