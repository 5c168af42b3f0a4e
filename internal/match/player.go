package match

import "github.com/lukev/gwent_server/internal/card"

// Player holds one side's hand and per-round flags (C4). The deck and
// graveyard are both read-through views of the board's authoritative piles
// per spec §9 — Player never owns a second copy of either, so a Muster pull
// and a between-round draw can never see two different decks.
type Player struct {
	ID         string
	Leader     *card.Card
	Hand       []card.Card
	Passed     bool
	LeaderUsed bool

	startingDeck  []card.Card
	deckPeek      func() []card.Card
	deckDraw      func(int) []card.Card
	graveyardView func() []card.Card
}

// NewPlayer builds a player with the given id, starting deck and leader. The
// deck is held here only until Match.New seeds it into the board; Deck/Draw
// read through to the board from that point on, so a Muster pull and a
// between-round draw always see the same pile.
func NewPlayer(id string, deck []card.Card, leader *card.Card) *Player {
	return &Player{ID: id, Leader: leader, startingDeck: deck}
}

// Graveyard returns the player's graveyard as the board currently sees it.
// Set by Match.New once the board exists.
func (p *Player) Graveyard() []card.Card {
	if p.graveyardView == nil {
		return nil
	}
	return p.graveyardView()
}

// Deck returns the player's remaining deck as the board currently sees it.
// Set by Match.New once the board exists.
func (p *Player) Deck() []card.Card {
	if p.deckPeek == nil {
		return p.startingDeck
	}
	return p.deckPeek()
}

// Draw moves up to count cards from the top of the board's deck pile into
// hand.
func (p *Player) Draw(count int) []card.Card {
	if p.deckDraw == nil {
		return nil
	}
	drawn := p.deckDraw(count)
	p.Hand = append(p.Hand, drawn...)
	return drawn
}

// AddToHand appends a card to hand directly (used for Decoy returns).
func (p *Player) AddToHand(c card.Card) {
	p.Hand = append(p.Hand, c)
}

// playFromHand removes and returns the first hand card matching id.
func (p *Player) playFromHand(id string) (card.Card, bool) {
	for i, c := range p.Hand {
		if c.ID == id {
			out := c
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return out, true
		}
	}
	return card.Card{}, false
}

// PassRound marks the player as passed for the remainder of the round.
func (p *Player) PassRound() { p.Passed = true }

// ResetForNewRound clears the per-round pass flag. Hand/deck/leader carry
// over; only Passed resets (spec §4.4: "clear passed on both players").
func (p *Player) ResetForNewRound() { p.Passed = false }
