// Package leader implements the small set of leader abilities the source
// recognizes by matching substrings of free-text ability descriptions (C8).
// Per spec §9's redesign note, the recognized set is modeled as an explicit
// enumeration rather than open-ended substring matching: unrecognized text
// is always a no-op, and the set is never extended silently.
package leader

import (
	"strings"

	"github.com/lukev/gwent_server/internal/board"
	"github.com/lukev/gwent_server/internal/card"
)

// effect is one recognized leader ability.
type effect int

const (
	effectNone effect = iota
	effectClearWeather
	effectBitingFrost
	effectImpenetrableFog
	effectTorrentialRain
	effectSkelligeStorm
	effectHornMelee
	effectHornRanged
	effectHornSiege
)

// Activate resolves a leader's free-text ability against board, for
// playerID's benefit. Returns whether a recognized effect fired; an
// unrecognized or empty text always returns false without touching state.
func Activate(b *board.Board, playerID, abilityText string) bool {
	switch classify(abilityText) {
	case effectClearWeather:
		b.ApplyNamedWeather("Clear Weather")
		return true
	case effectBitingFrost:
		b.ApplyNamedWeather("Biting Frost")
		return true
	case effectImpenetrableFog:
		b.ApplyNamedWeather("Impenetrable Fog")
		return true
	case effectTorrentialRain:
		b.ApplyNamedWeather("Torrential Rain")
		return true
	case effectSkelligeStorm:
		b.ApplyNamedWeather("Skellige Storm")
		return true
	case effectHornMelee:
		b.SetHornActive(playerID, card.RowMelee)
		return true
	case effectHornRanged:
		b.SetHornActive(playerID, card.RowRanged)
		return true
	case effectHornSiege:
		b.SetHornActive(playerID, card.RowSiege)
		return true
	default:
		return false
	}
}

// classify mirrors the source's ordered substring checks: weather effects
// are tried before the generic "double"/"commander" + row horn pattern, and
// the first match wins.
func classify(text string) effect {
	t := strings.ToLower(text)

	if strings.Contains(t, "clear") && strings.Contains(t, "weather") {
		return effectClearWeather
	}
	if strings.Contains(t, "biting frost") {
		return effectBitingFrost
	}
	if strings.Contains(t, "impenetrable fog") {
		return effectImpenetrableFog
	}
	if strings.Contains(t, "torrential rain") {
		return effectTorrentialRain
	}
	if strings.Contains(t, "skellige storm") {
		return effectSkelligeStorm
	}

	horn := strings.Contains(t, "double") || strings.Contains(t, "commander")
	if horn && (strings.Contains(t, "melee") || strings.Contains(t, "close")) {
		return effectHornMelee
	}
	if horn && (strings.Contains(t, "ranged") || strings.Contains(t, "range")) {
		return effectHornRanged
	}
	if horn && strings.Contains(t, "siege") {
		return effectHornSiege
	}
	return effectNone
}
