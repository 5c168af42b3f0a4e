package board

import (
	"testing"

	"github.com/lukev/gwent_server/internal/card"
)

func weatherCard(id, name string) card.Card {
	return card.Card{ID: id, Name: name, Type: card.TypeWeather, HomeRow: card.RowAll, Abilities: card.AbilityWeather}
}

func scorchCard(id string) card.Card {
	return card.Card{ID: id, Name: "Scorch", Type: card.TypeSpecial, HomeRow: card.RowAll, Abilities: card.AbilityScorch}
}

func hornCard(id string) card.Card {
	return card.Card{ID: id, Name: "Commander's Horn", Type: card.TypeSpecial, HomeRow: card.RowAll, Abilities: card.AbilityHorn}
}

func mardroemeCard(id string) card.Card {
	return card.Card{ID: id, Name: "Mardroeme", Type: card.TypeSpecial, HomeRow: card.RowAll, Abilities: card.AbilityMardroeme}
}

func musterUnit(id, name string, power int, group string) card.Card {
	c := unit(id, name, power, card.AbilityMuster)
	c.Group = group
	return c
}

func newTestBoard() *Board {
	return New([2]string{"P1", "P2"})
}

func TestClearWeather(t *testing.T) {
	b := newTestBoard()
	row := card.RowMelee
	if _, err := b.PlayCard("P1", unit("s1", "Soldier", 7, 0), &row, nil, false); err != nil {
		t.Fatalf("place soldier: %v", err)
	}
	if got := b.RowStrength("P1", card.RowMelee); got != 7 {
		t.Fatalf("expected 7, got %d", got)
	}
	if _, err := b.PlayCard("P1", weatherCard("w1", "Biting Frost"), nil, nil, false); err != nil {
		t.Fatalf("frost: %v", err)
	}
	if got := b.RowStrength("P1", card.RowMelee); got != 1 {
		t.Fatalf("expected 1 under frost, got %d", got)
	}
	if _, err := b.PlayCard("P1", weatherCard("w2", "Clear Weather"), nil, nil, false); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if got := b.RowStrength("P1", card.RowMelee); got != 7 {
		t.Fatalf("expected 7 after clear, got %d", got)
	}
}

func TestClearWeatherIdempotentWhenNoWeatherActive(t *testing.T) {
	b := newTestBoard()
	row := card.RowMelee
	b.PlayCard("P1", unit("s1", "Soldier", 7, 0), &row, nil, false)
	before := b.RowStrength("P1", card.RowMelee)
	if _, err := b.PlayCard("P1", weatherCard("w1", "Clear Weather"), nil, nil, false); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if after := b.RowStrength("P1", card.RowMelee); after != before {
		t.Fatalf("clear weather with no active weather must be a no-op: before=%d after=%d", before, after)
	}
}

func TestHornOnMelee(t *testing.T) {
	b := newTestBoard()
	row := card.RowMelee
	b.PlayCard("P1", unit("s1", "Soldier", 5, 0), &row, nil, false)
	b.PlayCard("P1", unit("s2", "Soldier2", 3, 0), &row, nil, false)
	if got := b.RowStrength("P1", card.RowMelee); got != 8 {
		t.Fatalf("expected 8 before horn, got %d", got)
	}
	if _, err := b.PlayCard("P1", hornCard("horn1"), &row, nil, false); err != nil {
		t.Fatalf("horn: %v", err)
	}
	if got := b.RowStrength("P1", card.RowMelee); got != 16 {
		t.Fatalf("expected 16 after horn, got %d", got)
	}
}

func TestScorchSparesHero(t *testing.T) {
	b := newTestBoard()
	row := card.RowMelee
	b.PlayCard("P1", unit("strong", "Strong", 10, 0), &row, nil, false)
	b.PlayCard("P1", hero("hero", "Hero", 12), &row, nil, false)
	b.PlayCard("P1", unit("weak", "Weak", 4, 0), &row, nil, false)

	if _, err := b.PlayCard("P1", scorchCard("scorch1"), nil, nil, false); err != nil {
		t.Fatalf("scorch: %v", err)
	}
	if got := b.RowStrength("P1", card.RowMelee); got != 16 {
		t.Fatalf("expected 16 after scorch, got %d", got)
	}
}

func TestScorchSendsVictimToGraveyard(t *testing.T) {
	b := newTestBoard()
	row := card.RowMelee
	b.PlayCard("P1", unit("a", "A", 7, 0), &row, nil, false)
	b.PlayCard("P1", unit("b", "B", 5, 0), &row, nil, false)

	if _, err := b.PlayCard("P1", scorchCard("scorch1"), nil, nil, false); err != nil {
		t.Fatalf("scorch: %v", err)
	}
	gy := b.Graveyard("P1")
	found := false
	for _, c := range gy {
		if c.ID == "a" {
			found = true
		}
		if c.ID == "b" {
			t.Fatalf("B (lower power survivor) should not be in graveyard")
		}
	}
	if !found {
		t.Fatalf("expected A in graveyard, got %+v", gy)
	}
}

func TestMusterPull(t *testing.T) {
	b := newTestBoard()
	b.SetDeck("P1", []card.Card{
		musterUnit("m2", "m2", 3, "Clan"),
		musterUnit("m3", "m3", 2, "Clan"),
	})
	m1 := musterUnit("m1", "m1", 4, "Clan")
	row := card.RowMelee
	if _, err := b.PlayCard("P1", m1, &row, nil, false); err != nil {
		t.Fatalf("muster play: %v", err)
	}
	if got := len(b.Row("P1", card.RowMelee).Cards); got != 3 {
		t.Fatalf("expected 3 cards on row, got %d", got)
	}
	if got := b.RowStrength("P1", card.RowMelee); got != 9 {
		t.Fatalf("expected 9, got %d", got)
	}
	if len(b.Deck("P1")) != 0 {
		t.Fatalf("expected deck drained of muster siblings")
	}
}

func TestMardroemeTransformsBerserker(t *testing.T) {
	b := newTestBoard()
	row := card.RowMelee
	berserker := unit("zerk", "Berserker", 3, card.AbilityBerserker)
	b.PlayCard("P1", berserker, &row, nil, false)

	ev, err := b.PlayCard("P1", mardroemeCard("mard1"), nil, &berserker, false)
	if err != nil {
		t.Fatalf("mardroeme: %v", err)
	}
	if ev.Transformed == nil {
		t.Fatalf("expected Transformed event")
	}
	if got := b.RowStrength("P1", card.RowMelee); got < 8 {
		t.Fatalf("expected strength >= 8 after transform, got %d", got)
	}
	for _, c := range b.Row("P1", card.RowMelee).Cards {
		if c.Abilities.Has(card.AbilityBerserker) {
			t.Fatalf("berserker-tagged card should no longer be present")
		}
	}
}

func TestDecoyReturnsUnitAndLeavesPlaceholder(t *testing.T) {
	b := newTestBoard()
	row := card.RowMelee
	target := unit("u1", "Target", 6, 0)
	b.PlayCard("P1", target, &row, nil, false)

	decoy := card.Card{ID: "decoy1", Name: "Decoy", Type: card.TypeSpecial, HomeRow: card.RowAll, Abilities: card.AbilityDecoy}
	ev, err := b.PlayCard("P1", decoy, nil, &target, false)
	if err != nil {
		t.Fatalf("decoy: %v", err)
	}
	if ev.DecoyReturned == nil || ev.DecoyReturned.ID != "u1" {
		t.Fatalf("expected decoy to return u1, got %+v", ev.DecoyReturned)
	}
	cards := b.Row("P1", card.RowMelee).Cards
	if len(cards) != 1 || cards[0].ID != "decoy1" {
		t.Fatalf("expected decoy placeholder left on row, got %+v", cards)
	}
}

func TestSpyPlacesOnOpponentBoard(t *testing.T) {
	b := newTestBoard()
	spy := unit("spy1", "Spy", 2, card.AbilitySpy)
	row := card.RowMelee
	ev, err := b.PlayCard("P1", spy, &row, nil, false)
	if err != nil {
		t.Fatalf("spy: %v", err)
	}
	if ev.SpyPlayed == nil {
		t.Fatalf("expected SpyPlayed event")
	}
	if got := len(b.Row("P2", card.RowMelee).Cards); got != 1 {
		t.Fatalf("expected spy on opponent's row, got %d cards", got)
	}
	if got := len(b.Row("P1", card.RowMelee).Cards); got != 0 {
		t.Fatalf("spy must not land on the playing player's own row")
	}
}

func TestMedicResurrectsStrongestNonHero(t *testing.T) {
	b := newTestBoard()
	b.graveyards["P1"] = []card.Card{
		unit("weak", "Weak", 2, 0),
		unit("strong", "Strong", 9, 0),
		hero("hero1", "Hero", 15),
	}
	medic := unit("medic1", "Medic", 3, card.AbilityMedic)
	row := card.RowMelee
	ev, err := b.PlayCard("P1", medic, &row, nil, false)
	if err != nil {
		t.Fatalf("medic: %v", err)
	}
	if ev.Resurrected == nil || ev.Resurrected.ID != "strong" {
		t.Fatalf("expected strongest non-hero resurrected, got %+v", ev.Resurrected)
	}
	if got := len(b.Graveyard("P1")); got != 2 {
		t.Fatalf("expected 2 left in graveyard, got %d", got)
	}
}

func TestMedicDoesNotChain(t *testing.T) {
	b := newTestBoard()
	b.graveyards["P1"] = []card.Card{
		unit("other-medic", "OtherMedic", 9, card.AbilityMedic),
		unit("weak", "Weak", 2, 0),
	}
	medic := unit("medic1", "Medic", 3, card.AbilityMedic)
	row := card.RowMelee
	if _, err := b.PlayCard("P1", medic, &row, nil, false); err != nil {
		t.Fatalf("medic: %v", err)
	}
	cards := b.Row("P1", card.RowMelee).Cards
	if len(cards) != 2 {
		t.Fatalf("expected medic + resurrected medic, got %d cards", len(cards))
	}
	if len(b.Graveyard("P1")) != 1 {
		t.Fatalf("resurrected medic should not itself trigger a second resurrection")
	}
}

func TestAvengerReturnsOncePerMatch(t *testing.T) {
	b := newTestBoard()
	avenger := unit("av1", "Avenger", 4, card.AbilityAvenger)
	row := card.RowMelee
	b.PlayCard("P1", avenger, &row, nil, false)

	// onUnitRemoved expects the caller (e.g. applyScorch) to have already
	// taken the card off the row, so remove it first, matching that contract.
	removed := b.rows["P1"][card.RowMelee].removeAt(0)
	b.onUnitRemoved("P1", removed, card.RowMelee)
	if got := len(b.Row("P1", card.RowMelee).Cards); got != 1 {
		t.Fatalf("expected avenger back on the row after first death, got %d cards", got)
	}
	if got := len(b.Graveyard("P1")); got != 0 {
		t.Fatalf("avenger should have left the graveyard on its one-time return")
	}

	// Remove again: Avenger has already fired once, so this time it stays dead.
	removed = b.rows["P1"][card.RowMelee].removeAt(0)
	b.onUnitRemoved("P1", removed, card.RowMelee)
	if got := len(b.Row("P1", card.RowMelee).Cards); got != 0 {
		t.Fatalf("expected avenger gone for good on second death, got %d cards", got)
	}
	if got := len(b.Graveyard("P1")); got != 1 {
		t.Fatalf("expected avenger in graveyard on second death, got %d", got)
	}
}

func TestInvalidRowRejected(t *testing.T) {
	b := newTestBoard()
	bad := card.Row(99)
	_, err := b.PlayCard("P1", unit("u1", "U", 3, 0), &bad, nil, false)
	if _, ok := err.(*InvalidRowError); !ok {
		t.Fatalf("expected InvalidRowError, got %v", err)
	}
}

func TestDecoyMissingTarget(t *testing.T) {
	b := newTestBoard()
	decoy := card.Card{ID: "decoy1", Name: "Decoy", Type: card.TypeSpecial, HomeRow: card.RowAll, Abilities: card.AbilityDecoy}
	_, err := b.PlayCard("P1", decoy, nil, nil, false)
	if _, ok := err.(*MissingTargetError); !ok {
		t.Fatalf("expected MissingTargetError, got %v", err)
	}
}

func TestAgileRowPicksBestIncrementalStrength(t *testing.T) {
	b := newTestBoard()
	b.PlayCard("P1", unit("banner", "Banner", 1, card.AbilityMoraleBoost), ptr(card.RowRanged), nil, false)

	agile := card.Card{ID: "ag1", Name: "Agile", Type: card.TypeUnit, HomeRow: card.RowMelee,
		CombatRows: []card.Row{card.RowMelee, card.RowRanged}, BasePower: 5}
	allRow := card.RowAll
	if _, err := b.PlayCard("P1", agile, &allRow, nil, false); err != nil {
		t.Fatalf("agile play: %v", err)
	}
	if got := len(b.Row("P1", card.RowRanged).Cards); got != 2 {
		t.Fatalf("expected agile unit to prefer the row boosted by morale, got %d on ranged", got)
	}
}

func ptr(r card.Row) *card.Row { return &r }
