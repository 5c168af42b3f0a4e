package card

// FlagTable tracks the two mutable per-physical-card flags — avenged and
// transformed — outside the immutable Card value, keyed by Card.ID. Keeping
// Card copy-safe means these can never live on the struct itself.
type FlagTable struct {
	avenged     map[string]bool
	transformed map[string]bool
}

// NewFlagTable returns an empty flag table.
func NewFlagTable() *FlagTable {
	return &FlagTable{
		avenged:     make(map[string]bool),
		transformed: make(map[string]bool),
	}
}

// Avenged reports whether Avenger has already fired once for this card id.
func (t *FlagTable) Avenged(id string) bool { return t.avenged[id] }

// SetAvenged marks Avenger as spent for this card id. It never resets —
// Avenger fires at most once per physical card per match.
func (t *FlagTable) SetAvenged(id string) { t.avenged[id] = true }

// Transformed reports whether Mardroeme already transformed this card id.
func (t *FlagTable) Transformed(id string) bool { return t.transformed[id] }

// SetTransformed marks a card id as the product of a Mardroeme transform.
func (t *FlagTable) SetTransformed(id string) { t.transformed[id] = true }

// Clone returns an independent copy, used by the AI to evaluate candidate
// plays on a scratch board without mutating the real match's flags.
func (t *FlagTable) Clone() *FlagTable {
	c := NewFlagTable()
	for k, v := range t.avenged {
		c.avenged[k] = v
	}
	for k, v := range t.transformed {
		c.transformed[k] = v
	}
	return c
}
