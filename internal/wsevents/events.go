package wsevents

import (
	"encoding/json"

	"github.com/lukev/gwent_server/internal/match"
)

// EventType names the kind of payload sent to spectators.
type EventType string

const (
	EventSnapshot EventType = "snapshot"
	EventOver     EventType = "match_over"
)

// Envelope is the single JSON shape every broadcast message takes.
type Envelope struct {
	Type    EventType   `json:"type"`
	MatchID string      `json:"matchId"`
	Payload interface{} `json:"payload"`
}

// SnapshotPayload is the board-state view a spectator needs after any action.
type SnapshotPayload struct {
	RoundNumber int                       `json:"roundNumber"`
	Wins        map[string]int            `json:"wins"`
	Lives       map[string]int            `json:"lives"`
	Over        bool                      `json:"over"`
	Rows        map[string]map[string]int `json:"rows"`
}

// PublishSnapshot encodes m's current state and broadcasts it to matchID's
// subscribers. Called by the API layer after every accepted PlayCard/PassTurn.
func PublishSnapshot(hub *Hub, matchID string, m *match.Match) error {
	payload := SnapshotPayload{
		RoundNumber: m.RoundNumber,
		Wins:        m.Wins,
		Lives:       m.Lives,
		Over:        m.Over,
		Rows:        m.Board.Snapshot(),
	}
	env := Envelope{Type: EventSnapshot, MatchID: matchID, Payload: payload}
	data, err := json.Marshal(env)
	if err != nil {
		return err
	}
	hub.BroadcastToMatch(matchID, data)
	if m.Over {
		overEnv := Envelope{Type: EventOver, MatchID: matchID, Payload: payload}
		overData, err := json.Marshal(overEnv)
		if err != nil {
			return err
		}
		hub.BroadcastToMatch(matchID, overData)
	}
	return nil
}
