package operations

import (
	"fmt"

	"issueboard/internal/kanban/models"
)

// ReorderColumn moves the column activeID to the display position
// currently held by overID
func ReorderColumn(board *models.Board, activeID, overID string) error {
	fromIndex := indexOf(board.ColumnOrder, activeID)
	if fromIndex < 0 {
		return fmt.Errorf("column %q not found", activeID)
	}
	toIndex := indexOf(board.ColumnOrder, overID)
	if toIndex < 0 {
		return fmt.Errorf("column %q not found", overID)
	}
	board.ColumnOrder = arrayMove(board.ColumnOrder, fromIndex, toIndex)
	return nil
}

// ValidateColumnOrder checks that ids is a permutation of the board's columns
func ValidateColumnOrder(board *models.Board, ids []string) error {
	if len(ids) != len(board.Columns) {
		return fmt.Errorf("expected %d column ids, got %d", len(board.Columns), len(ids))
	}
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := board.ColumnByID(id); !ok {
			return fmt.Errorf("unknown column %q", id)
		}
		if seen[id] {
			return fmt.Errorf("duplicate column %q", id)
		}
		seen[id] = true
	}
	return nil
}

func indexOf(ids []string, id string) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
