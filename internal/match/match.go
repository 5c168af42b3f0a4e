package match

import (
	"github.com/lukev/gwent_server/internal/board"
	"github.com/lukev/gwent_server/internal/card"
	"github.com/lukev/gwent_server/internal/leader"
)

const (
	startingLives = 2
	winsNeeded    = 2
	maxRounds     = 3
)

// Match sequences rounds, tracks round wins and life tokens, and decides
// when the contest is over (C6).
type Match struct {
	Players      []*Player
	Board        *board.Board
	RoundNumber  int
	Wins         map[string]int
	Lives        map[string]int
	CurrentRound *Round
	Over         bool
}

// New builds a fresh match for exactly two players and starts round 1.
func New(players [2]*Player) *Match {
	ids := [2]string{players[0].ID, players[1].ID}
	b := board.New(ids)
	for _, p := range players {
		id := p.ID
		p.graveyardView = func() []card.Card { return b.Graveyard(id) }
		p.deckPeek = func() []card.Card { return b.Deck(id) }
		p.deckDraw = func(n int) []card.Card { return b.Draw(id, n) }
		b.SetDeck(id, p.startingDeck)
		p.startingDeck = nil
	}

	m := &Match{
		Players: []*Player{players[0], players[1]},
		Board:   b,
		Wins:    map[string]int{players[0].ID: 0, players[1].ID: 0},
		Lives:   map[string]int{players[0].ID: startingLives, players[1].ID: startingLives},
	}
	m.StartRound()
	return m
}

// StartRound implements spec §4.4: reset per-round player state, clear
// active weather, bump the round counter, and construct a fresh Round.
func (m *Match) StartRound() {
	for _, p := range m.Players {
		p.ResetForNewRound()
	}
	m.Board.ResetWeather()
	m.RoundNumber++
	m.CurrentRound = NewRound(m.Players, m.Board)
}

// PlayCard delegates to the active round, then checks for round/match end.
func (m *Match) PlayCard(playerID, cardID string, targetRow *card.Row, targetUnit *card.Card) error {
	if m.Over {
		return &MatchOverError{}
	}
	if m.CurrentRound == nil {
		return &NoActiveRoundError{}
	}
	p := m.player(playerID)
	if err := m.CurrentRound.PlayCard(p, cardID, targetRow, targetUnit); err != nil {
		return err
	}
	m.checkRoundEnd()
	return nil
}

// PassTurn delegates to the active round, then checks for round/match end.
func (m *Match) PassTurn(playerID string) error {
	if m.Over {
		return &MatchOverError{}
	}
	if m.CurrentRound == nil {
		return &NoActiveRoundError{}
	}
	m.CurrentRound.PassTurn(m.player(playerID))
	m.checkRoundEnd()
	return nil
}

// UseLeaderAbility fires a player's one-time leader effect (C8). It is a
// match-scoped action, not routed through Round, since it touches no hand
// card and has no turn-order obligation in the source.
func (m *Match) UseLeaderAbility(playerID string) (bool, error) {
	p := m.player(playerID)
	if p == nil || p.Leader == nil {
		return false, nil
	}
	if p.LeaderUsed {
		return false, &LeaderAlreadyUsedError{PlayerID: playerID}
	}
	text, _ := p.Leader.Meta["ability"]
	applied := leader.Activate(m.Board, playerID, text)
	if applied {
		p.LeaderUsed = true
	}
	return applied, nil
}

// checkRoundEnd implements spec §4.4's end-of-round bookkeeping: award the
// round win, apply life loss, then either end the match or deal one card to
// each player, clean the board, and start the next round.
//
// No one loses a life on an exact draw: in the Python source the
// life-decrement loop is nested inside `if winner:`, so `winner = None`
// skips it for both players, not just the absence of a round-win.
func (m *Match) checkRoundEnd() {
	if m.CurrentRound == nil || !m.CurrentRound.Finished {
		return
	}
	winner := m.CurrentRound.Winner()
	if winner != nil {
		m.Wins[winner.ID]++
		for _, p := range m.Players {
			if p.ID != winner.ID {
				m.Lives[p.ID]--
				if m.Lives[p.ID] < 0 {
					m.Lives[p.ID] = 0
				}
			}
		}
	}

	for _, w := range m.Wins {
		if w >= winsNeeded {
			m.Over = true
		}
	}
	if m.RoundNumber >= maxRounds {
		m.Over = true
	}
	if m.Over {
		return
	}

	for _, p := range m.Players {
		p.Draw(1)
	}
	m.Board.CleanupAfterRound()
	m.StartRound()
}

// MatchWinner returns the player with 2 round wins, nil if undecided.
func (m *Match) MatchWinner() *Player {
	for _, p := range m.Players {
		if m.Wins[p.ID] >= winsNeeded {
			return p
		}
	}
	return nil
}

func (m *Match) player(id string) *Player {
	for _, p := range m.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}
