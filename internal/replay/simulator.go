// Package replay steps a parsed transcript through a Match, the way the
// teacher's GameSimulator steps a log of actions through a GameState one
// index at a time.
package replay

import (
	"fmt"
	"sync"

	"github.com/lukev/gwent_server/internal/card"
	"github.com/lukev/gwent_server/internal/match"
	"github.com/lukev/gwent_server/internal/notation"
)

// MatchSimulator replays a fixed sequence of notation items against a Match.
type MatchSimulator struct {
	mu           sync.RWMutex
	Match        *match.Match
	Items        []notation.LogItem
	CurrentIndex int // index of the *next* item to execute
	Snapshots    []map[string]map[string]int
}

// NewMatchSimulator builds a simulator over an already-constructed match and
// the parsed transcript it should replay.
func NewMatchSimulator(m *match.Match, items []notation.LogItem) *MatchSimulator {
	return &MatchSimulator{Match: m, Items: items}
}

// StepForward executes exactly one transcript item against the match.
func (s *MatchSimulator) StepForward() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.CurrentIndex >= len(s.Items) {
		return fmt.Errorf("no more items")
	}
	item := s.Items[s.CurrentIndex]

	var err error
	switch v := item.(type) {
	case notation.PlayItem:
		target := s.resolveTargetUnit(v.PlayerID, v.TargetUnit)
		err = s.Match.PlayCard(v.PlayerID, v.CardID, v.TargetRow, target)
	case notation.PassItem:
		err = s.Match.PassTurn(v.PlayerID)
	case notation.LeaderItem:
		_, err = s.Match.UseLeaderAbility(v.PlayerID)
	default:
		err = fmt.Errorf("unrecognized transcript item (%T)", item)
	}

	if err != nil {
		return fmt.Errorf("item %s failed: %w", notation.FormatIndex(s.CurrentIndex), err)
	}

	s.Snapshots = append(s.Snapshots, s.Match.Board.Snapshot())
	s.CurrentIndex++
	return nil
}

// resolveTargetUnit turns a notation target id into the card.Card value the
// board currently holds for it, since the transcript only carries ids.
func (s *MatchSimulator) resolveTargetUnit(playerID, targetID string) *card.Card {
	if targetID == "" {
		return nil
	}
	for _, r := range card.CombatRows() {
		for _, c := range s.Match.Board.Row(playerID, r).Cards {
			if c.ID == targetID {
				cc := c
				return &cc
			}
		}
	}
	return nil
}

// Run executes every remaining item, stopping at the first error.
func (s *MatchSimulator) Run() error {
	for !s.Done() {
		if err := s.StepForward(); err != nil {
			return err
		}
	}
	return nil
}

// Done reports whether every transcript item has been executed.
func (s *MatchSimulator) Done() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.CurrentIndex >= len(s.Items)
}
