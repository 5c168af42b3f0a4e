package match

import (
	"github.com/lukev/gwent_server/internal/board"
	"github.com/lukev/gwent_server/internal/card"
)

// Round drives turn alternation and pass handling for a single scoring pass
// (C5), following the teacher's Action dispatch shape generalized to a
// fixed two-step pipeline: delegate to the Board, then react to its Event.
type Round struct {
	players   []*Player
	board     *board.Board
	turnIndex int
	Finished  bool
}

// NewRound starts a round for the given players sharing board.
func NewRound(players []*Player, b *board.Board) *Round {
	return &Round{players: players, board: b}
}

// ActivePlayer returns whoever's turn it currently is.
func (r *Round) ActivePlayer() *Player { return r.players[r.turnIndex] }

// nextPlayer advances turn_index to the next player who has neither passed
// nor emptied their hand. If no other player qualifies, the turn comes back
// to the current player; if the round is already finished it does nothing —
// mirrors the source's full-circle scan.
func (r *Round) nextPlayer() {
	if r.Finished {
		return
	}
	start := r.turnIndex
	for {
		r.turnIndex = (r.turnIndex + 1) % len(r.players)
		if r.turnIndex == start {
			break
		}
		candidate := r.players[r.turnIndex]
		if !candidate.Passed && len(candidate.Hand) > 0 {
			break
		}
	}
}

// PlayCard removes cardID from player's hand and resolves it against the
// board, then fires the Round-level obligations a Board.Event carries: spy
// draw-2 and decoy return-to-hand (spec §4.2 "the Round layer is responsible
// for...").
func (r *Round) PlayCard(p *Player, cardID string, targetRow *card.Row, targetUnit *card.Card) error {
	if p.Passed {
		return &AlreadyPassedError{PlayerID: p.ID}
	}
	placed, ok := p.playFromHand(cardID)
	if !ok {
		return &CardNotInHandError{PlayerID: p.ID, CardID: cardID}
	}

	ev, err := r.board.PlayCard(p.ID, placed, targetRow, targetUnit, false)
	if err != nil {
		p.AddToHand(placed)
		return err
	}

	if ev.SpyPlayed != nil {
		p.Draw(2)
	}
	if ev.DecoyReturned != nil {
		p.AddToHand(*ev.DecoyReturned)
	}

	r.checkAutoEnd()
	r.nextPlayer()
	return nil
}

// PassTurn marks p as passed for the remainder of the round.
func (r *Round) PassTurn(p *Player) {
	p.PassRound()
	r.checkAutoEnd()
	if !r.Finished {
		r.nextPlayer()
	}
}

// checkAutoEnd implements spec §4.3: the round ends the instant every
// player has either passed or run out of cards to play.
func (r *Round) checkAutoEnd() {
	for _, p := range r.players {
		if !p.Passed && len(p.Hand) > 0 {
			return
		}
	}
	r.Finished = true
}

// Winner reports the higher total-strength player, nil before the round
// finishes and nil again on an exact tie (a draw awards no round-win).
func (r *Round) Winner() *Player {
	if !r.Finished {
		return nil
	}
	scores := make([]int, len(r.players))
	for i, p := range r.players {
		scores[i] = r.board.TotalStrength(p.ID)
	}
	if scores[0] == scores[1] {
		return nil
	}
	if scores[0] > scores[1] {
		return r.players[0]
	}
	return r.players[1]
}
