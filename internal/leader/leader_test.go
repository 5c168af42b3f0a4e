package leader

import (
	"testing"

	"github.com/lukev/gwent_server/internal/board"
	"github.com/lukev/gwent_server/internal/card"
)

func TestActivateClearWeather(t *testing.T) {
	b := board.New([2]string{"P1", "P2"})
	b.ApplyNamedWeather("Skellige Storm")
	if !Activate(b, "P1", "Clear the weather effects from the battlefield.") {
		t.Fatalf("expected clear-weather text to be recognized")
	}
	row := card.RowMelee
	b.PlayCard("P1", card.Card{ID: "u1", Type: card.TypeUnit, HomeRow: card.RowMelee, BasePower: 5}, &row, nil, false)
	if got := b.RowStrength("P1", card.RowMelee); got != 5 {
		t.Fatalf("expected weather cleared, row strength 5, got %d", got)
	}
}

func TestActivateHornRow(t *testing.T) {
	b := board.New([2]string{"P1", "P2"})
	row := card.RowSiege
	b.PlayCard("P1", card.Card{ID: "u1", Type: card.TypeUnit, HomeRow: card.RowSiege, BasePower: 4}, &row, nil, false)
	if !Activate(b, "P1", "Commander's Horn effect on the siege row.") {
		t.Fatalf("expected horn+siege text to be recognized")
	}
	if got := b.RowStrength("P1", card.RowSiege); got != 8 {
		t.Fatalf("expected doubled siege strength 8, got %d", got)
	}
}

func TestActivateUnrecognizedIsNoOp(t *testing.T) {
	b := board.New([2]string{"P1", "P2"})
	if Activate(b, "P1", "Draw an extra card at the start of the game.") {
		t.Fatalf("expected unrecognized ability text to be a no-op")
	}
}
