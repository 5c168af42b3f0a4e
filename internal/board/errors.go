package board

import (
	"fmt"

	"github.com/lukev/gwent_server/internal/card"
)

// InvalidRowError is returned when a target row is not one of Melee/Ranged/Siege
// where the operation requires a concrete combat row.
type InvalidRowError struct {
	Row card.Row
}

func (e *InvalidRowError) Error() string {
	return fmt.Sprintf("invalid row: %v", e.Row)
}

// MissingTargetError is returned when Decoy or Mardroeme is played without a
// target_unit.
type MissingTargetError struct {
	CardID string
}

func (e *MissingTargetError) Error() string {
	return fmt.Sprintf("card %s requires a target_unit", e.CardID)
}

// TargetNotOnBoardError is returned when target_unit is not currently on the
// acting player's rows.
type TargetNotOnBoardError struct {
	CardID string
}

func (e *TargetNotOnBoardError) Error() string {
	return fmt.Sprintf("target %s is not on the acting player's board", e.CardID)
}
