package board

import "github.com/lukev/gwent_server/internal/card"

// RowState is one combat row for one player: the cards placed on it plus the
// flags that feed the scorer.
type RowState struct {
	Row           card.Row
	Cards         []card.Card
	WeatherActive bool
	HornActive    bool
}

// Strength returns the row's current effective strength.
func (rs *RowState) Strength() int {
	return RowStrength(rs.Cards, rs.WeatherActive, rs.HornActive)
}

func (rs *RowState) indexOf(id string) int {
	for i, c := range rs.Cards {
		if c.ID == id {
			return i
		}
	}
	return -1
}

func (rs *RowState) removeAt(i int) card.Card {
	c := rs.Cards[i]
	rs.Cards = append(rs.Cards[:i], rs.Cards[i+1:]...)
	return c
}

// Event reports the side effects of a single PlayCard call that the Round
// layer must react to (spy draw, decoy return to hand) per spec §4.2.
type Event struct {
	DecoyReturned *card.Card
	Resurrected   *card.Card
	SpyPlayed     *card.Card
	Transformed   *card.Card
}

// Board holds both players' rows, the authoritative global weather map, and
// each player's deck/graveyard piles. It is the sole owner of graveyards —
// Player.Graveyard (in the match package) is a read-through view per spec §9.
type Board struct {
	Players       [2]string
	rows          map[string]map[card.Row]*RowState
	activeWeather map[card.Row]bool
	decks         map[string][]card.Card
	graveyards    map[string][]card.Card
	flags         *card.FlagTable
}

// New builds an empty board for the given two player ids.
func New(players [2]string) *Board {
	b := &Board{
		Players:       players,
		rows:          make(map[string]map[card.Row]*RowState),
		activeWeather: make(map[card.Row]bool),
		decks:         make(map[string][]card.Card),
		graveyards:    make(map[string][]card.Card),
		flags:         card.NewFlagTable(),
	}
	for _, p := range players {
		b.rows[p] = map[card.Row]*RowState{
			card.RowMelee:  {Row: card.RowMelee},
			card.RowRanged: {Row: card.RowRanged},
			card.RowSiege:  {Row: card.RowSiege},
		}
	}
	return b
}

// SetDeck replaces a player's deck pile (deck top = index 0).
func (b *Board) SetDeck(player string, cards []card.Card) { b.decks[player] = cards }

// Deck returns a player's remaining deck, deck top = index 0.
func (b *Board) Deck(player string) []card.Card { return b.decks[player] }

// Draw removes up to count cards from the top of a player's deck (the board's
// authoritative copy) and returns them. Muster pulls and between-round draws
// both go through this single store so the two can never drift apart.
func (b *Board) Draw(player string, count int) []card.Card {
	deck := b.decks[player]
	n := count
	if n > len(deck) {
		n = len(deck)
	}
	drawn := make([]card.Card, n)
	copy(drawn, deck[:n])
	b.decks[player] = deck[n:]
	return drawn
}

// Graveyard returns a read-only view of a player's graveyard.
func (b *Board) Graveyard(player string) []card.Card {
	out := make([]card.Card, len(b.graveyards[player]))
	copy(out, b.graveyards[player])
	return out
}

// Clone returns an independent deep copy for the AI's 1-ply lookahead: it
// must be free to apply a candidate play and score the result without the
// real match ever observing it (spec §5 — "either operates on a cheap
// derived numeric snapshot ... or on a cloned state").
func (b *Board) Clone() *Board {
	out := &Board{
		Players:       b.Players,
		rows:          make(map[string]map[card.Row]*RowState),
		activeWeather: make(map[card.Row]bool),
		decks:         make(map[string][]card.Card),
		graveyards:    make(map[string][]card.Card),
		flags:         b.flags.Clone(),
	}
	for r, v := range b.activeWeather {
		out.activeWeather[r] = v
	}
	for _, p := range b.Players {
		out.rows[p] = make(map[card.Row]*RowState, 3)
		for r, rs := range b.rows[p] {
			cardsCopy := make([]card.Card, len(rs.Cards))
			copy(cardsCopy, rs.Cards)
			out.rows[p][r] = &RowState{Row: r, Cards: cardsCopy, WeatherActive: rs.WeatherActive, HornActive: rs.HornActive}
		}
		deckCopy := make([]card.Card, len(b.decks[p]))
		copy(deckCopy, b.decks[p])
		out.decks[p] = deckCopy
		gyCopy := make([]card.Card, len(b.graveyards[p]))
		copy(gyCopy, b.graveyards[p])
		out.graveyards[p] = gyCopy
	}
	return out
}

// Opponent returns the other player id on this two-player board.
func (b *Board) Opponent(player string) string {
	if b.Players[0] == player {
		return b.Players[1]
	}
	return b.Players[0]
}

// Row returns the live row state for a player/row pair.
func (b *Board) Row(player string, row card.Row) *RowState { return b.rows[player][row] }

// RowStrength returns one row's effective strength.
func (b *Board) RowStrength(player string, row card.Row) int { return b.rows[player][row].Strength() }

// TotalStrength sums a player's three combat rows.
func (b *Board) TotalStrength(player string) int {
	total := 0
	for _, r := range card.CombatRows() {
		total += b.RowStrength(player, r)
	}
	return total
}

// Snapshot returns every player's per-row strength, keyed by row name.
func (b *Board) Snapshot() map[string]map[string]int {
	out := make(map[string]map[string]int, len(b.rows))
	for _, p := range b.Players {
		rowMap := make(map[string]int, 3)
		for _, r := range card.CombatRows() {
			rowMap[r.String()] = b.RowStrength(p, r)
		}
		out[p] = rowMap
	}
	return out
}

// PlayCard resolves a single card play against the board, per spec §4.2. The
// first matching ability in the fixed dispatch order wins; remaining
// dispatch logic is skipped. suppressMuster is set only for the recursive
// calls Muster itself makes, so a musterable card pulled from the deck never
// re-triggers its own Muster (spec §3 suppression invariant).
func (b *Board) PlayCard(player string, c card.Card, targetRow *card.Row, targetUnit *card.Card, suppressMuster bool) (Event, error) {
	var ev Event

	// 1. Weather special.
	if c.Type == card.TypeWeather {
		b.applyWeather(c.Name)
		b.toGraveyard(player, c)
		return ev, nil
	}

	// 2. Scorch special (non-unit).
	if c.Abilities.Has(card.AbilityScorch) && !c.IsUnit() {
		b.applyScorch()
		b.toGraveyard(player, c)
		return ev, nil
	}

	// 3. Decoy (non-unit).
	if c.Abilities.Has(card.AbilityDecoy) && !c.IsUnit() {
		if targetUnit == nil {
			return ev, &MissingTargetError{CardID: c.ID}
		}
		row, idx, found := b.findOnRows(player, targetUnit.ID)
		if !found {
			return ev, &TargetNotOnBoardError{CardID: targetUnit.ID}
		}
		returned := b.rows[player][row].removeAt(idx)
		placeRow := row
		if targetRow != nil && b.validRow(*targetRow) {
			placeRow = *targetRow
		}
		b.rows[player][placeRow].Cards = append(b.rows[player][placeRow].Cards, c)
		ev.DecoyReturned = &returned
		return ev, nil
	}

	// 4. Mardroeme (non-unit).
	if c.Abilities.Has(card.AbilityMardroeme) && !c.IsUnit() {
		if targetUnit == nil {
			return ev, &MissingTargetError{CardID: c.ID}
		}
		row, idx, found := b.findOnRows(player, targetUnit.ID)
		if !found {
			return ev, &TargetNotOnBoardError{CardID: targetUnit.ID}
		}
		if b.rows[player][row].Cards[idx].Abilities.Has(card.AbilityBerserker) {
			target := b.rows[player][row].removeAt(idx)
			transformed := transformBerserker(target)
			b.flags.SetTransformed(transformed.ID)
			b.rows[player][row].Cards = append(b.rows[player][row].Cards, transformed)
			ev.Transformed = &transformed
		}
		b.toGraveyard(player, c)
		return ev, nil
	}

	// 5. Spy unit.
	if c.Abilities.Has(card.AbilitySpy) && c.IsUnit() {
		opp := b.Opponent(player)
		row := b.resolveRow(opp, c, targetRow)
		if !b.validRow(row) {
			return ev, &InvalidRowError{Row: row}
		}
		b.rows[opp][row].add(c)
		ev.SpyPlayed = &c
		b.syncWeather()
		return ev, nil
	}

	// 6. Horn special (non-unit).
	if c.Abilities.Has(card.AbilityHorn) && !c.IsUnit() {
		row := c.HomeRow
		if targetRow != nil {
			row = *targetRow
		}
		if !b.validRow(row) {
			return ev, &InvalidRowError{Row: row}
		}
		b.rows[player][row].HornActive = true
		b.toGraveyard(player, c)
		return ev, nil
	}

	// 7. Agile/ordinary unit placement.
	row := b.resolveRow(player, c, targetRow)
	if !b.validRow(row) {
		return ev, &InvalidRowError{Row: row}
	}
	b.rows[player][row].add(c)
	b.syncWeather()

	if c.Abilities.Has(card.AbilityMedic) {
		if res, ok := b.resurrectBest(player); ok {
			ev.Resurrected = &res
		}
	}

	if c.Abilities.Has(card.AbilityMuster) && !suppressMuster {
		b.pullMuster(player, c.GroupKey())
	}

	return ev, nil
}

func (rs *RowState) add(c card.Card) {
	rs.Cards = append(rs.Cards, c)
	if c.Abilities.Has(card.AbilityHorn) {
		rs.HornActive = true
	}
}

func (b *Board) validRow(r card.Row) bool {
	return r == card.RowMelee || r == card.RowRanged || r == card.RowSiege
}

func (b *Board) findOnRows(player, id string) (card.Row, int, bool) {
	for _, r := range card.CombatRows() {
		if i := b.rows[player][r].indexOf(id); i >= 0 {
			return r, i, true
		}
	}
	return card.RowMelee, -1, false
}

// resolveRow picks the target row for a card being placed on `player`'s
// board. Agile units (spies included) pick the row maximizing incremental
// strength when no concrete row was given (spec §4.2.2); others use the
// requested row or their home row.
func (b *Board) resolveRow(player string, c card.Card, targetRow *card.Row) card.Row {
	if c.IsAgile() && (targetRow == nil || *targetRow == card.RowAll) {
		return b.bestAgileRow(player, c)
	}
	if targetRow != nil {
		return *targetRow
	}
	return c.HomeRow
}

func (b *Board) bestAgileRow(player string, c card.Card) card.Row {
	choices := c.CombatRows
	if len(choices) == 0 {
		choices = []card.Row{c.HomeRow}
	}
	best := choices[0]
	bestGain := -1 << 31
	for _, r := range choices {
		rs := b.rows[player][r]
		gain := IncrementalStrength(rs.Cards, rs.WeatherActive, rs.HornActive, c)
		if gain > bestGain {
			bestGain = gain
			best = r
		}
	}
	return best
}

func (b *Board) resurrectBest(player string) (card.Card, bool) {
	gy := b.graveyards[player]
	best := -1
	bestIdx := -1
	for i, c := range gy {
		if c.IsUnit() && !c.IsHero() && c.BasePower > best {
			best = c.BasePower
			bestIdx = i
		}
	}
	if bestIdx < 0 {
		return card.Card{}, false
	}
	res := gy[bestIdx]
	b.graveyards[player] = append(gy[:bestIdx], gy[bestIdx+1:]...)
	row := b.resolveRow(player, res, nil)
	b.rows[player][row].add(res)
	return res, true
}

func (b *Board) pullMuster(player, group string) {
	deck := b.decks[player]
	var pulled []card.Card
	remaining := deck[:0:0]
	for _, c := range deck {
		if c.GroupKey() == group && c.IsUnit() {
			pulled = append(pulled, c)
		} else {
			remaining = append(remaining, c)
		}
	}
	b.decks[player] = remaining
	for _, c := range pulled {
		// Recursive play with suppression so the pulled card's own Muster
		// never fires — spec §3's suppression invariant.
		b.PlayCard(player, c, nil, nil, true)
	}
}

func (b *Board) applyWeather(name string) {
	rows, _ := card.WeatherRows(name)
	if name == "Clear Weather" {
		for r := range b.activeWeather {
			b.activeWeather[r] = false
		}
	} else {
		for _, r := range rows {
			b.activeWeather[r] = true
		}
	}
	b.syncWeather()
}

func (b *Board) syncWeather() {
	for _, p := range b.Players {
		for r, rs := range b.rows[p] {
			rs.WeatherActive = b.activeWeather[r]
		}
	}
}

// applyScorch implements §4.2.1: destroy the non-hero unit(s) of highest
// effective on-board value across both players, ties broken by destroying
// all top-valued candidates simultaneously. Uses a non-mutating valuation
// (RemovalValue) so the naive remove/reinsert reordering bug from spec §9
// cannot occur here.
func (b *Board) applyScorch() {
	type loc struct {
		player string
		row    card.Row
		idx    int
	}
	highest := 0
	var victims []loc
	for _, p := range b.Players {
		for _, r := range card.CombatRows() {
			rs := b.rows[p][r]
			for i, c := range rs.Cards {
				if !c.IsUnit() || c.IsHero() {
					continue
				}
				value := RemovalValue(rs.Cards, rs.WeatherActive, rs.HornActive, i)
				if value > highest {
					highest = value
					victims = []loc{{p, r, i}}
				} else if value == highest && value > 0 {
					victims = append(victims, loc{p, r, i})
				}
			}
		}
	}

	// Remove by id (not index) since multiple victims can share a row and
	// earlier removals would shift later indices.
	for _, v := range victims {
		rs := b.rows[v.player][v.row]
		id := rs.Cards[v.idx].ID
		if i := rs.indexOf(id); i >= 0 {
			removed := rs.removeAt(i)
			b.onUnitRemoved(v.player, removed, v.row)
		}
	}
}

func (b *Board) toGraveyard(player string, c card.Card) {
	b.graveyards[player] = append(b.graveyards[player], c)
}

// onUnitRemoved implements §4.2.3: append to the owner's graveyard, then fire
// Avenger once per physical card if present and not yet spent.
func (b *Board) onUnitRemoved(player string, c card.Card, row card.Row) {
	b.toGraveyard(player, c)
	if c.Abilities.Has(card.AbilityAvenger) && !b.flags.Avenged(c.ID) {
		b.flags.SetAvenged(c.ID)
		gy := b.graveyards[player]
		if i := len(gy) - 1; i >= 0 && gy[i].ID == c.ID {
			b.graveyards[player] = gy[:i]
		}
		b.rows[player][row].add(c)
		b.syncWeather()
	}
}

// CleanupAfterRound implements §4.4.1: move every row's cards to the owner's
// graveyard and reset per-row flags. Graveyards persist across rounds.
func (b *Board) CleanupAfterRound() {
	for _, p := range b.Players {
		for _, rs := range b.rows[p] {
			if len(rs.Cards) > 0 {
				b.graveyards[p] = append(b.graveyards[p], rs.Cards...)
				rs.Cards = nil
			}
			rs.HornActive = false
			rs.WeatherActive = false
		}
	}
}

// ApplyNamedWeather lets a leader ability (internal/leader) trigger the same
// weather effect a Weather-type card would, without constructing one.
func (b *Board) ApplyNamedWeather(name string) { b.applyWeather(name) }

// SetHornActive lets a leader ability set horn_active on one of player's
// rows directly, matching the source's Commander's-Horn-like leader effects.
func (b *Board) SetHornActive(player string, row card.Row) {
	if rs := b.rows[player][row]; rs != nil {
		rs.HornActive = true
	}
}

// ResetWeather clears active_weather for all rows, called from Match.StartRound.
func (b *Board) ResetWeather() {
	for _, r := range card.CombatRows() {
		b.activeWeather[r] = false
	}
	b.syncWeather()
}

func transformBerserker(c card.Card) card.Card {
	power := c.BasePower
	if power < 8 {
		power = 8
	}
	return card.Card{
		ID:         c.ID + ":t",
		Name:       c.Name + " (Transformed)",
		Faction:    c.Faction,
		Type:       c.Type,
		HomeRow:    c.HomeRow,
		CombatRows: c.CombatRows,
		BasePower:  power,
		HeroFlag:   c.HeroFlag,
		Abilities:  c.Abilities &^ card.AbilityBerserker,
		Group:      c.Group,
		Meta:       c.Meta,
	}
}
