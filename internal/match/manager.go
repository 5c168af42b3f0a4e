package match

import (
	"fmt"
	"sync"

	"github.com/lukev/gwent_server/internal/card"
)

// ActionMeta provides metadata for action execution: optimistic concurrency
// and idempotency, generalized from the teacher's ActionMeta/ActionResult
// pair to this engine's two verbs (PlayCard, PassTurn).
type ActionMeta struct {
	ActionID         string
	ExpectedRevision int
}

// ActionResult reports action execution outcome.
type ActionResult struct {
	Revision  int
	Duplicate bool
}

// RevisionMismatchError indicates stale optimistic concurrency data.
type RevisionMismatchError struct {
	Expected int
	Current  int
}

func (e *RevisionMismatchError) Error() string {
	return fmt.Sprintf("revision mismatch: expected %d, current %d", e.Expected, e.Current)
}

// MatchNotFoundError is returned when an operation names an unknown match id.
type MatchNotFoundError struct {
	MatchID string
}

func (e *MatchNotFoundError) Error() string { return fmt.Sprintf("match %s not found", e.MatchID) }

// Manager holds multiple in-memory matches behind a single mutex, tracking a
// monotonic revision counter and applied-action-id table per match so a
// retried request from a flaky client is a no-op rather than a double play.
type Manager struct {
	mu              sync.RWMutex
	matches         map[string]*Match
	revisions       map[string]int
	appliedActionID map[string]map[string]int
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{
		matches:         make(map[string]*Match),
		revisions:       make(map[string]int),
		appliedActionID: make(map[string]map[string]int),
	}
}

// CreateMatch registers an already-built Match under id.
func (mgr *Manager) CreateMatch(id string, m *Match) {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()
	mgr.matches[id] = m
	mgr.revisions[id] = 0
	mgr.appliedActionID[id] = make(map[string]int)
}

// GetMatch retrieves a match by id.
func (mgr *Manager) GetMatch(id string) (*Match, bool) {
	mgr.mu.RLock()
	defer mgr.mu.RUnlock()
	m, ok := mgr.matches[id]
	return m, ok
}

// GetRevision returns the current revision for a match.
func (mgr *Manager) GetRevision(id string) (int, bool) {
	mgr.mu.RLock()
	defer mgr.mu.RUnlock()
	_, ok := mgr.matches[id]
	if !ok {
		return 0, false
	}
	return mgr.revisions[id], true
}

// ListMatches returns every active match.
func (mgr *Manager) ListMatches() []*Match {
	mgr.mu.RLock()
	defer mgr.mu.RUnlock()
	out := make([]*Match, 0, len(mgr.matches))
	for _, m := range mgr.matches {
		out = append(out, m)
	}
	return out
}

// PlayCardWithMeta applies a PlayCard under revision/idempotency control.
func (mgr *Manager) PlayCardWithMeta(matchID, playerID, cardID string, targetRow *card.Row, targetUnit *card.Card, meta ActionMeta) (*ActionResult, error) {
	return mgr.apply(matchID, meta, func(m *Match) error {
		return m.PlayCard(playerID, cardID, targetRow, targetUnit)
	})
}

// PassTurnWithMeta applies a PassTurn under revision/idempotency control.
func (mgr *Manager) PassTurnWithMeta(matchID, playerID string, meta ActionMeta) (*ActionResult, error) {
	return mgr.apply(matchID, meta, func(m *Match) error {
		return m.PassTurn(playerID)
	})
}

func (mgr *Manager) apply(matchID string, meta ActionMeta, fn func(*Match) error) (*ActionResult, error) {
	mgr.mu.Lock()
	defer mgr.mu.Unlock()

	m := mgr.matches[matchID]
	if m == nil {
		return nil, &MatchNotFoundError{MatchID: matchID}
	}

	currentRevision := mgr.revisions[matchID]
	if meta.ActionID != "" {
		if _, exists := mgr.appliedActionID[matchID][meta.ActionID]; exists {
			return &ActionResult{Revision: currentRevision, Duplicate: true}, nil
		}
	}

	if meta.ExpectedRevision >= 0 && meta.ExpectedRevision != currentRevision {
		return nil, &RevisionMismatchError{Expected: meta.ExpectedRevision, Current: currentRevision}
	}

	if err := fn(m); err != nil {
		return nil, err
	}

	currentRevision++
	mgr.revisions[matchID] = currentRevision
	if meta.ActionID != "" {
		if mgr.appliedActionID[matchID] == nil {
			mgr.appliedActionID[matchID] = make(map[string]int)
		}
		mgr.appliedActionID[matchID][meta.ActionID] = currentRevision
	}

	return &ActionResult{Revision: currentRevision, Duplicate: false}, nil
}
