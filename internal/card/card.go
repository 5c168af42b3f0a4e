// Package card defines the immutable card descriptor shared by every other
// engine package. Cards are values: once built they are never mutated in
// place, following spec's copy-safe design note — the only per-card mutable
// flags (meta.avenged, meta.transformed) live on a side table keyed by ID,
// not on the Card itself.
package card

// Faction identifies the card's origin deck.
type Faction int

const (
	FactionNeutral Faction = iota
	FactionNorthernRealms
	FactionNilfgaard
	FactionScoiatael
	FactionMonsters
	FactionSkellige
)

func (f Faction) String() string {
	switch f {
	case FactionNorthernRealms:
		return "Northern Realms"
	case FactionNilfgaard:
		return "Nilfgaardian Empire"
	case FactionScoiatael:
		return "Scoia'tael"
	case FactionMonsters:
		return "Monsters"
	case FactionSkellige:
		return "Skellige"
	default:
		return "Neutral"
	}
}

// Type is the card's kind: unit, weather special, ability special, or leader.
type Type int

const (
	TypeUnit Type = iota
	TypeWeather
	TypeSpecial
	TypeLeader
)

// Row identifies a combat lane. RowAll stands for "no single row" — used as
// home_row for weather/specials/leaders and as a placeholder target_row
// meaning "let the resolver choose".
type Row int

const (
	RowMelee Row = iota
	RowRanged
	RowSiege
	RowAll
)

func (r Row) String() string {
	switch r {
	case RowMelee:
		return "Melee"
	case RowRanged:
		return "Ranged"
	case RowSiege:
		return "Siege"
	default:
		return "All"
	}
}

// CombatRows lists the rows eligible for row-scoped iteration (excludes RowAll).
func CombatRows() []Row { return []Row{RowMelee, RowRanged, RowSiege} }

// Ability is a bitmask so a card can carry any combination cheaply.
type Ability uint32

const (
	AbilityTightBond Ability = 1 << iota
	AbilityMoraleBoost
	AbilityMedic
	AbilitySpy
	AbilityDecoy
	AbilityScorch
	AbilityHorn
	AbilityWeather
	AbilityHero
	AbilityMuster
	AbilityAgile
	AbilityAvenger
	AbilityBerserker
	AbilityMardroeme
)

// Has reports whether the set contains ability a.
func (s Ability) Has(a Ability) bool { return s&a != 0 }

// Card is the immutable value shared across hand, row, deck and graveyard.
type Card struct {
	ID         string
	Name       string
	Faction    Faction
	Type       Type
	HomeRow    Row
	CombatRows []Row // non-empty only for agile units; nil otherwise
	BasePower  int
	HeroFlag   bool
	Abilities  Ability
	Group      string // muster/avenger sibling tag; falls back to Name
	Meta       map[string]string
}

// IsUnit reports whether the card occupies board space and contributes power.
func (c Card) IsUnit() bool { return c.Type == TypeUnit }

// IsHero reports immunity to weather, scorch and horn doubling. hero=true OR
// the Hero ability is interchangeable per spec §3.
func (c Card) IsHero() bool { return c.HeroFlag || c.Abilities.Has(AbilityHero) }

// IsAgile reports whether the card may be placed on more than one row.
func (c Card) IsAgile() bool { return len(c.CombatRows) > 0 }

// GroupKey is the tag Muster/Avenger use to find siblings: Group if set,
// otherwise Name.
func (c Card) GroupKey() string {
	if c.Group != "" {
		return c.Group
	}
	return c.Name
}

// WeatherRows returns the rows a named weather card affects. An empty,
// non-nil slice paired with ok=true means "clear all weather" (Clear Weather).
func WeatherRows(name string) (rows []Row, ok bool) {
	switch name {
	case "Biting Frost":
		return []Row{RowMelee}, true
	case "Impenetrable Fog":
		return []Row{RowRanged}, true
	case "Torrential Rain":
		return []Row{RowSiege}, true
	case "Skellige Storm":
		return []Row{RowMelee, RowRanged, RowSiege}, true
	case "Clear Weather":
		return []Row{}, true
	default:
		return nil, false
	}
}
