// Package scenario loads YAML fixtures describing a starting match (decks,
// leaders, AI weight overrides) the way the teacher's cmd/bga_test loads a
// YAML GameConfig for a replay run.
package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/lukev/gwent_server/internal/ai"
	"github.com/lukev/gwent_server/internal/card"
)

// CardRef names a catalog card by id and, for Muster/Avenger siblings, an
// optional group override.
type CardRef struct {
	ID    string `yaml:"id"`
	Group string `yaml:"group,omitempty"`
}

// PlayerSetup describes one side's starting deck, hand and leader.
type PlayerSetup struct {
	ID     string    `yaml:"id"`
	Leader string    `yaml:"leader,omitempty"`
	Hand   []CardRef `yaml:"hand"`
	Deck   []CardRef `yaml:"deck"`
}

// AIWeights overrides the 1-ply evaluation weights from spec §4.5, leaving
// unset (nil) fields to the package defaults; an explicit 0 is an override.
type AIWeights struct {
	StrengthDiff *float64 `yaml:"strength_diff,omitempty"`
	CardDiff     *float64 `yaml:"card_diff,omitempty"`
	LivesDiff    *float64 `yaml:"lives_diff,omitempty"`
	RoundBonus   *float64 `yaml:"round_bonus,omitempty"`
	AbilityBonus *float64 `yaml:"ability_bonus,omitempty"`
}

// Resolve overlays the overridden fields onto ai.DefaultWeights, leaving
// unset fields at their package default.
func (w *AIWeights) Resolve() *ai.Weights {
	out := ai.DefaultWeights()
	if w == nil {
		return out
	}
	if w.StrengthDiff != nil {
		out.StrengthDiff = *w.StrengthDiff
	}
	if w.CardDiff != nil {
		out.CardDiff = *w.CardDiff
	}
	if w.LivesDiff != nil {
		out.LivesDiff = *w.LivesDiff
	}
	if w.RoundBonus != nil {
		out.RoundBonus = *w.RoundBonus
	}
	if w.AbilityBonus != nil {
		out.AbilityBonus = *w.AbilityBonus
	}
	return out
}

// Config is a complete scenario fixture: two players plus optional AI tuning.
type Config struct {
	Players   [2]PlayerSetup `yaml:"players"`
	AIWeights *AIWeights     `yaml:"ai_weights,omitempty"`
}

// Load reads and parses a scenario file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing scenario %s: %w", path, err)
	}
	return &cfg, nil
}

// ResolveHand turns a PlayerSetup's hand refs into live card.Card values by
// looking each id up in catalog, returning an error naming the first
// unresolvable id.
func (p PlayerSetup) ResolveHand(catalog map[string]card.Card) ([]card.Card, error) {
	return resolveRefs(p.Hand, catalog)
}

// ResolveDeck is ResolveHand's counterpart for the deck pile.
func (p PlayerSetup) ResolveDeck(catalog map[string]card.Card) ([]card.Card, error) {
	return resolveRefs(p.Deck, catalog)
}

func resolveRefs(refs []CardRef, catalog map[string]card.Card) ([]card.Card, error) {
	out := make([]card.Card, 0, len(refs))
	for _, ref := range refs {
		c, ok := catalog[ref.ID]
		if !ok {
			return nil, fmt.Errorf("unknown card id %q", ref.ID)
		}
		if ref.Group != "" {
			c.Group = ref.Group
		}
		out = append(out, c)
	}
	return out, nil
}
