// Package notation implements a line-based match transcript format: one
// instruction per line, parsed into a LogItem the replay package can step
// through. Grounded on the teacher's notation package shape (a flat item
// list consumed index-by-index by a simulator) but a purpose-built line
// grammar replaces the teacher's BGA-HTML-log parser, which has no Gwent
// analogue.
package notation

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lukev/gwent_server/internal/card"
)

// LogItem is one parsed transcript line.
type LogItem interface {
	isLogItem()
}

// PlayItem plays a card from hand, with optional row/target.
type PlayItem struct {
	PlayerID   string
	CardID     string
	TargetRow  *card.Row
	TargetUnit string // card id, empty if none
}

func (PlayItem) isLogItem() {}

// PassItem records a player passing their turn.
type PassItem struct {
	PlayerID string
}

func (PassItem) isLogItem() {}

// LeaderItem records a player activating their leader ability.
type LeaderItem struct {
	PlayerID string
}

func (LeaderItem) isLogItem() {}

// Parse reads a transcript, one instruction per line. Blank lines and lines
// starting with '#' are ignored. Grammar:
//
//	PLAY <player> <card_id> [row=<melee|ranged|siege|all>] [target=<card_id>]
//	PASS <player>
//	LEADER <player>
func Parse(transcript string) ([]LogItem, error) {
	var items []LogItem
	for lineNo, line := range strings.Split(transcript, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch strings.ToUpper(fields[0]) {
		case "PLAY":
			item, err := parsePlay(fields)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo+1, err)
			}
			items = append(items, item)
		case "PASS":
			if len(fields) != 2 {
				return nil, fmt.Errorf("line %d: PASS requires exactly a player id", lineNo+1)
			}
			items = append(items, PassItem{PlayerID: fields[1]})
		case "LEADER":
			if len(fields) != 2 {
				return nil, fmt.Errorf("line %d: LEADER requires exactly a player id", lineNo+1)
			}
			items = append(items, LeaderItem{PlayerID: fields[1]})
		default:
			return nil, fmt.Errorf("line %d: unrecognized instruction %q", lineNo+1, fields[0])
		}
	}
	return items, nil
}

func parsePlay(fields []string) (PlayItem, error) {
	if len(fields) < 3 {
		return PlayItem{}, fmt.Errorf("PLAY requires at least player and card_id")
	}
	item := PlayItem{PlayerID: fields[1], CardID: fields[2]}
	for _, f := range fields[3:] {
		kv := strings.SplitN(f, "=", 2)
		if len(kv) != 2 {
			return PlayItem{}, fmt.Errorf("malformed attribute %q", f)
		}
		switch kv[0] {
		case "row":
			row, ok := parseRow(kv[1])
			if !ok {
				return PlayItem{}, fmt.Errorf("unrecognized row %q", kv[1])
			}
			item.TargetRow = &row
		case "target":
			item.TargetUnit = kv[1]
		default:
			return PlayItem{}, fmt.Errorf("unrecognized attribute %q", kv[0])
		}
	}
	return item, nil
}

func parseRow(s string) (card.Row, bool) {
	switch strings.ToLower(s) {
	case "melee":
		return card.RowMelee, true
	case "ranged":
		return card.RowRanged, true
	case "siege":
		return card.RowSiege, true
	case "all":
		return card.RowAll, true
	default:
		return 0, false
	}
}

// Generate renders items back into transcript text, the inverse of Parse.
func Generate(items []LogItem) string {
	var b strings.Builder
	for i, it := range items {
		if i > 0 {
			b.WriteByte('\n')
		}
		switch v := it.(type) {
		case PlayItem:
			b.WriteString("PLAY " + v.PlayerID + " " + v.CardID)
			if v.TargetRow != nil {
				b.WriteString(" row=" + rowName(*v.TargetRow))
			}
			if v.TargetUnit != "" {
				b.WriteString(" target=" + v.TargetUnit)
			}
		case PassItem:
			b.WriteString("PASS " + v.PlayerID)
		case LeaderItem:
			b.WriteString("LEADER " + v.PlayerID)
		}
	}
	return b.String()
}

func rowName(r card.Row) string {
	switch r {
	case card.RowMelee:
		return "melee"
	case card.RowRanged:
		return "ranged"
	case card.RowSiege:
		return "siege"
	default:
		return "all"
	}
}

// FormatIndex renders a 1-based position, used in simulator error messages.
func FormatIndex(i int) string { return strconv.Itoa(i + 1) }
