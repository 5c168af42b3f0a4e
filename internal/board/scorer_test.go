package board

import (
	"testing"

	"github.com/lukev/gwent_server/internal/card"
)

func unit(id, name string, power int, abilities card.Ability) card.Card {
	return card.Card{ID: id, Name: name, Type: card.TypeUnit, HomeRow: card.RowMelee, BasePower: power, Abilities: abilities}
}

func hero(id, name string, power int) card.Card {
	c := unit(id, name, power, 0)
	c.HeroFlag = true
	return c
}

func TestRowStrengthEmpty(t *testing.T) {
	if got := RowStrength(nil, false, false); got != 0 {
		t.Fatalf("expected 0 for empty row, got %d", got)
	}
}

func TestRowStrengthBondDoubles(t *testing.T) {
	cards := []card.Card{
		unit("c1", "Commando", 4, card.AbilityTightBond),
		unit("c2", "Commando", 4, card.AbilityTightBond),
	}
	if got := RowStrength(cards, false, false); got != 16 {
		t.Fatalf("expected 16, got %d", got)
	}
}

func TestRowStrengthMoraleStacking(t *testing.T) {
	cards := []card.Card{
		unit("banner", "Banner", 2, card.AbilityMoraleBoost),
		unit("soldier", "Soldier", 5, 0),
		unit("archer", "Archer", 3, 0),
	}
	if got := RowStrength(cards, false, false); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}
}

func TestRowStrengthHornDoubles(t *testing.T) {
	cards := []card.Card{
		unit("s1", "Soldier", 5, 0),
		unit("s2", "Soldier2", 3, 0),
	}
	if got := RowStrength(cards, false, false); got != 8 {
		t.Fatalf("before horn expected 8, got %d", got)
	}
	if got := RowStrength(cards, false, true); got != 16 {
		t.Fatalf("after horn expected 16, got %d", got)
	}
}

func TestRowStrengthHornNeverDoublesHero(t *testing.T) {
	cards := []card.Card{hero("h1", "Geralt", 12)}
	if got := RowStrength(cards, false, true); got != 12 {
		t.Fatalf("hero must not be doubled by horn, got %d", got)
	}
}

func TestRowStrengthWeatherClamp(t *testing.T) {
	cards := []card.Card{
		unit("a", "A", 10, 0),
		unit("b", "B", 6, 0),
		unit("c", "C", 2, 0),
	}
	if got := RowStrength(cards, false, false); got != 18 {
		t.Fatalf("expected 18 pre-weather, got %d", got)
	}
	if got := RowStrength(cards, true, false); got != 3 {
		t.Fatalf("expected 3 under weather, got %d", got)
	}
}

func TestIncrementalStrengthDoesNotMutate(t *testing.T) {
	cards := []card.Card{unit("a", "A", 5, 0)}
	candidate := unit("b", "B", 3, 0)
	_ = IncrementalStrength(cards, false, false, candidate)
	if len(cards) != 1 {
		t.Fatalf("IncrementalStrength must not mutate its input, got len=%d", len(cards))
	}
}
