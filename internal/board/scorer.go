// Package board implements the row scorer (C2) and the board state machine
// (C3) that resolves card plays, following the dispatch shape of the
// teacher's action Validate/Execute pair, generalized to Gwent's single
// Board.PlayCard entry point.
package board

import "github.com/lukev/gwent_server/internal/card"

// RowStrength computes a row's effective strength in one pass: weather base,
// then tight bond, then morale boost, then horn doubling. The order is
// load-bearing — see spec §4.1. Never mutates cards; pure function of
// (cards, weatherActive, hornActive).
func RowStrength(cards []card.Card, weatherActive, hornActive bool) int {
	if len(cards) == 0 {
		return 0
	}

	bondCount := make(map[string]int, len(cards))
	moraleSources := 0
	for _, c := range cards {
		if c.Abilities.Has(card.AbilityTightBond) {
			bondCount[c.Name]++
		}
		if c.Abilities.Has(card.AbilityMoraleBoost) {
			moraleSources++
		}
	}

	total := 0
	for _, c := range cards {
		total += cardContribution(c, bondCount, moraleSources, weatherActive, hornActive)
	}
	if total < 0 {
		return 0
	}
	return total
}

func cardContribution(c card.Card, bondCount map[string]int, moraleSources int, weatherActive, hornActive bool) int {
	var value int
	if weatherActive && !c.IsHero() {
		if c.IsUnit() {
			value = 1
		} else {
			value = 0
		}
	} else {
		value = c.BasePower
	}

	if c.Abilities.Has(card.AbilityTightBond) {
		value *= bondCount[c.Name]
	}

	if moraleSources > 0 && c.IsUnit() && !c.Abilities.Has(card.AbilityMoraleBoost) {
		value += moraleSources
	}

	if hornActive && c.IsUnit() && !c.IsHero() {
		value *= 2
	}

	return value
}

// IncrementalStrength returns the strength a card would add to a row if
// placed — without mutating the row — by diffing RowStrength with and
// without the candidate appended. Used for agile row selection (§4.2.2);
// Scorch's victim valuation (§4.2.1) uses RemovalValue below. Both are
// non-mutating per spec §9 (the naive remove-then-reinsert approach subtly
// reorders rows).
func IncrementalStrength(cards []card.Card, weatherActive, hornActive bool, candidate card.Card) int {
	without := RowStrength(cards, weatherActive, hornActive)
	with := make([]card.Card, len(cards), len(cards)+1)
	copy(with, cards)
	with = append(with, candidate)
	return RowStrength(with, weatherActive, hornActive) - without
}

// RemovalValue returns the strength a row would lose if the card at index i
// were removed — without mutating the row. Used for Scorch victim selection.
func RemovalValue(cards []card.Card, weatherActive, hornActive bool, i int) int {
	with := RowStrength(cards, weatherActive, hornActive)
	without := make([]card.Card, 0, len(cards)-1)
	without = append(without, cards[:i]...)
	without = append(without, cards[i+1:]...)
	return with - RowStrength(without, weatherActive, hornActive)
}
