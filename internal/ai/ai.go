// Package ai implements a candidate-filtering, 1-ply-lookahead opponent
// (C7), generalized from the Python reference's simplified heuristic: this
// version truly clones the board and resolves each candidate before
// scoring, per spec §5's allowance for a cloned-state evaluation.
package ai

import (
	"sort"

	"github.com/lukev/gwent_server/internal/board"
	"github.com/lukev/gwent_server/internal/card"
	"github.com/lukev/gwent_server/internal/match"
)

const immediatePassLeadThreshold = 10

// Default weights for spec §4.5's scoring formula, overridable per scenario
// via scenario.Config.AIWeights.
const (
	defaultWeightStrengthDiff = 1.0
	defaultWeightCardDiff     = 0.7
	defaultWeightLivesDiff    = 1.5
	defaultWeightRoundBonus   = 1.0
	defaultWeightAbilityBonus = 0.5

	roundBonusLeading = 3.0
	roundBonusBehind  = -3.0

	abilityBonusSpy     = 8.0
	abilityBonusScorch  = 6.0
	abilityBonusMedic   = 5.0
	abilityBonusHorn    = 4.0
	abilityBonusWeather = 3.0
)

// Weights holds the top-level terms of spec §4.5's scoring formula. A nil
// *Weights passed to ChooseAction means DefaultWeights.
type Weights struct {
	StrengthDiff float64
	CardDiff     float64
	LivesDiff    float64
	RoundBonus   float64
	AbilityBonus float64
}

// DefaultWeights returns the package's built-in scoring weights.
func DefaultWeights() *Weights {
	return &Weights{
		StrengthDiff: defaultWeightStrengthDiff,
		CardDiff:     defaultWeightCardDiff,
		LivesDiff:    defaultWeightLivesDiff,
		RoundBonus:   defaultWeightRoundBonus,
		AbilityBonus: defaultWeightAbilityBonus,
	}
}

// alwaysConsideredAbilities names the special abilities that are never
// filtered out of the candidate pool, regardless of hand size.
var alwaysConsideredAbilities = []card.Ability{
	card.AbilitySpy, card.AbilityScorch, card.AbilityMedic,
	card.AbilityHorn, card.AbilityWeather, card.AbilityDecoy, card.AbilityMardroeme,
}

// Action is one thing the AI can choose to do: pass, or play a card with
// optional targeting.
type Action struct {
	Pass       bool
	Card       card.Card
	TargetRow  *card.Row
	TargetUnit *card.Card
}

// ChooseAction implements spec §4.5's contract: given m from playerID's
// perspective, return exactly one Action. An optional Weights overrides the
// package defaults, as loaded from a scenario's ai_weights section.
func ChooseAction(m *match.Match, playerID string, weights ...*Weights) Action {
	w := DefaultWeights()
	if len(weights) > 0 && weights[0] != nil {
		w = weights[0]
	}

	self, opp := players(m, playerID)

	if shouldImmediatePass(m, self, opp) {
		return Action{Pass: true}
	}

	candidates := buildCandidates(m, self, opp)
	if len(candidates) == 0 {
		return Action{Pass: true}
	}

	// Ties break toward the first candidate scored (spec §4.5), so only a
	// strictly greater score replaces the current best.
	bestIdx := 0
	bestScore := scoreCandidate(m, self, opp, candidates[0], w)
	for i := 1; i < len(candidates); i++ {
		s := scoreCandidate(m, self, opp, candidates[i], w)
		if s > bestScore {
			bestScore = s
			bestIdx = i
		}
	}
	return candidates[bestIdx]
}

func players(m *match.Match, playerID string) (self, opp *match.Player) {
	for _, p := range m.Players {
		if p.ID == playerID {
			self = p
		} else {
			opp = p
		}
	}
	return
}

func shouldImmediatePass(m *match.Match, self, opp *match.Player) bool {
	lead := m.Board.TotalStrength(self.ID) - m.Board.TotalStrength(opp.ID)
	if lead < immediatePassLeadThreshold {
		return false
	}
	behindInLives := m.Lives[self.ID] < m.Lives[opp.ID]
	if behindInLives && m.RoundNumber >= 2 {
		return false
	}
	return true
}

// buildCandidates implements spec §4.5's candidate filtering.
func buildCandidates(m *match.Match, self, opp *match.Player) []Action {
	var out []Action

	// Spy and Medic are ordinarily unit-type cards but still carry one of
	// the always-considered abilities, so they bypass the 3-representative
	// sampling below even though they get placed like any other unit.
	var alwaysIncluded, ordinaryUnits []card.Card
	for _, c := range self.Hand {
		switch {
		case hasAnyAbility(c, alwaysConsideredAbilities):
			alwaysIncluded = append(alwaysIncluded, c)
		case c.IsUnit():
			ordinaryUnits = append(ordinaryUnits, c)
		}
	}

	for _, c := range alwaysIncluded {
		out = append(out, specialActions(m, self, opp, c)...)
	}
	for _, c := range representativeUnits(ordinaryUnits) {
		if a, ok := bestUnitAction(m, self, c); ok {
			out = append(out, a)
		}
	}

	out = append(out, Action{Pass: true})
	return out
}

func hasAnyAbility(c card.Card, abilities []card.Ability) bool {
	for _, a := range abilities {
		if c.Abilities.Has(a) {
			return true
		}
	}
	return false
}

// representativeUnits returns at most three units (weakest, median,
// strongest) sorted by base power, deduplicated by id.
func representativeUnits(units []card.Card) []card.Card {
	if len(units) == 0 {
		return nil
	}
	sorted := make([]card.Card, len(units))
	copy(sorted, units)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].BasePower < sorted[j].BasePower })

	picks := []card.Card{sorted[0], sorted[len(sorted)/2], sorted[len(sorted)-1]}
	seen := make(map[string]bool, 3)
	out := make([]card.Card, 0, 3)
	for _, c := range picks {
		if !seen[c.ID] {
			seen[c.ID] = true
			out = append(out, c)
		}
	}
	return out
}

func specialActions(m *match.Match, self, opp *match.Player, c card.Card) []Action {
	switch {
	case c.Abilities.Has(card.AbilityDecoy) || c.Abilities.Has(card.AbilityMardroeme):
		target, ok := highestPowerOwnUnit(m, self.ID)
		if !ok {
			return nil
		}
		return []Action{{Card: c, TargetUnit: &target}}

	case c.Abilities.Has(card.AbilitySpy):
		return []Action{{Card: c}}

	case c.Abilities.Has(card.AbilityWeather):
		return []Action{{Card: c}}

	case c.Abilities.Has(card.AbilityScorch) && !c.IsUnit():
		return []Action{{Card: c}}

	case c.Abilities.Has(card.AbilityHorn):
		row, gain, ok := bestHornRow(m, self.ID)
		if !ok || gain <= 0 {
			return nil
		}
		r := row
		return []Action{{Card: c, TargetRow: &r}}

	}

	// Medic, and any other always-considered card that is itself a unit
	// (e.g. a unit carrying Scorch), falls back to
	// the ordinary unit placement rule: it has no bespoke targeting entry of
	// its own in the candidate list.
	if c.IsUnit() {
		if a, ok := bestUnitAction(m, self, c); ok {
			return []Action{a}
		}
	}
	return nil
}

func highestPowerOwnUnit(m *match.Match, playerID string) (card.Card, bool) {
	var best card.Card
	found := false
	for _, r := range card.CombatRows() {
		for _, c := range m.Board.Row(playerID, r).Cards {
			if !found || c.BasePower > best.BasePower {
				best = c
				found = true
			}
		}
	}
	return best, found
}

func bestHornRow(m *match.Match, playerID string) (card.Row, int, bool) {
	bestRow := card.RowMelee
	bestGain := -1
	found := false
	for _, r := range card.CombatRows() {
		gain := 0
		for _, c := range m.Board.Row(playerID, r).Cards {
			if c.IsUnit() && !c.IsHero() {
				gain += c.BasePower
			}
		}
		if !found || gain > bestGain {
			bestGain = gain
			bestRow = r
			found = true
		}
	}
	return bestRow, bestGain, found
}

func bestUnitAction(m *match.Match, self *match.Player, c card.Card) (Action, bool) {
	choices := c.CombatRows
	if len(choices) == 0 {
		choices = []card.Row{c.HomeRow}
	}
	bestRow := choices[0]
	bestScore := -1 << 31
	for _, r := range choices {
		score := m.Board.RowStrength(self.ID, r) + c.BasePower
		if score > bestScore {
			bestScore = score
			bestRow = r
		}
	}
	return Action{Card: c, TargetRow: &bestRow}, true
}

// scoreCandidate implements spec §4.5's 1-ply evaluation: clone the board,
// apply the candidate, then score the resulting state.
func scoreCandidate(m *match.Match, self, opp *match.Player, a Action, w *Weights) float64 {
	if a.Pass {
		return scoreState(m, self, opp, m.Board, 0, w)
	}

	clone := m.Board.Clone()
	_, err := clone.PlayCard(self.ID, a.Card, a.TargetRow, a.TargetUnit, false)
	if err != nil {
		return -1 << 30
	}
	return scoreState(m, self, opp, clone, abilityBonus(a.Card), w)
}

func abilityBonus(c card.Card) float64 {
	var b float64
	if c.Abilities.Has(card.AbilitySpy) {
		b += abilityBonusSpy
	}
	if c.Abilities.Has(card.AbilityScorch) {
		b += abilityBonusScorch
	}
	if c.Abilities.Has(card.AbilityMedic) {
		b += abilityBonusMedic
	}
	if c.Abilities.Has(card.AbilityHorn) {
		b += abilityBonusHorn
	}
	if c.Abilities.Has(card.AbilityWeather) {
		b += abilityBonusWeather
	}
	return b
}

func scoreState(m *match.Match, self, opp *match.Player, b *board.Board, ability float64, w *Weights) float64 {
	strengthDiff := float64(b.TotalStrength(self.ID) - b.TotalStrength(opp.ID))
	cardDiff := float64(cardCount(self) - cardCount(opp))
	livesDiff := float64(m.Lives[self.ID] - m.Lives[opp.ID])

	roundBonus := 0.0
	if m.Wins[self.ID] > m.Wins[opp.ID] {
		roundBonus = roundBonusLeading
	} else if m.Wins[self.ID] < m.Wins[opp.ID] {
		roundBonus = roundBonusBehind
	}

	return w.StrengthDiff*strengthDiff +
		w.CardDiff*cardDiff +
		w.LivesDiff*livesDiff +
		w.RoundBonus*roundBonus +
		w.AbilityBonus*ability
}

func cardCount(p *match.Player) int {
	return len(p.Hand) + len(p.Deck())
}
