package operations

import (
	"sort"

	"issueboard/internal/kanban/models"
)

// BuildFromCanonical builds a fresh board from canonical data. Each column
// receives the cards whose status equals its key, in canonical order.
// Cards with an unknown status go to the first column in display order.
// Used for the first load and for hard resets.
func BuildFromCanonical(projectID string, cards []models.Card, columns []models.Column) models.Board {
	board := emptyBoard(projectID, columns, positionOrder(columns))

	placed := make(map[string]bool, len(cards))
	for _, card := range cards {
		if placed[card.ID] {
			continue
		}
		placed[card.ID] = true
		lane := board.Lane(laneKeyFor(&board, card.Status))
		if lane != nil {
			lane.Cards = append(lane.Cards, card.Clone())
		}
	}
	return board
}

// Reconcile folds a freshly fetched canonical card list into a previously
// held board without discarding local order.
//
// Retention pass: every card of previous whose canonical status still maps
// to the lane it sits in stays at its relative position, refreshed with
// canonical field values. Cards that moved or disappeared canonically are
// dropped from their old lane.
//
// Placement pass: every canonical card not retained is appended to the lane
// matching its canonical status, in canonical order.
//
// Reconcile is idempotent once canonical data stops changing. It must not
// be called while a drag session is active.
func Reconcile(previous models.Board, cards []models.Card, columns []models.Column) models.Board {
	board := emptyBoard(previous.ProjectID, columns, mergeColumnOrder(previous.ColumnOrder, columns))

	canonical := make(map[string]models.Card, len(cards))
	for _, card := range cards {
		if _, dup := canonical[card.ID]; !dup {
			canonical[card.ID] = card
		}
	}

	consumed := make(map[string]bool, len(cards))
	for _, prevLane := range previous.Lanes {
		lane := board.Lane(prevLane.Key)
		if lane == nil {
			continue
		}
		for _, card := range prevLane.Cards {
			fresh, ok := canonical[card.ID]
			if !ok || consumed[card.ID] {
				continue
			}
			if laneKeyFor(&board, fresh.Status) != prevLane.Key {
				continue
			}
			lane.Cards = append(lane.Cards, fresh.Clone())
			consumed[card.ID] = true
		}
	}

	for _, card := range cards {
		if consumed[card.ID] {
			continue
		}
		consumed[card.ID] = true
		if lane := board.Lane(laneKeyFor(&board, card.Status)); lane != nil {
			lane.Cards = append(lane.Cards, card.Clone())
		}
	}

	return board
}

func emptyBoard(projectID string, columns []models.Column, order []string) models.Board {
	board := models.Board{
		ProjectID:   projectID,
		Columns:     append([]models.Column(nil), columns...),
		Lanes:       make([]models.Lane, len(columns)),
		ColumnOrder: order,
	}
	for i, col := range columns {
		board.Lanes[i] = models.Lane{Key: col.Key, Cards: []models.Card{}}
	}
	return board
}

// laneKeyFor applies the orphan policy to a card status
func laneKeyFor(board *models.Board, status string) string {
	if board.LaneIndex(status) >= 0 {
		return status
	}
	return board.FirstColumnKey()
}

// positionOrder returns column IDs sorted by persisted position
func positionOrder(columns []models.Column) []string {
	sorted := append([]models.Column(nil), columns...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Position < sorted[j].Position
	})
	ids := make([]string, len(sorted))
	for i, col := range sorted {
		ids[i] = col.ID
	}
	return ids
}

// mergeColumnOrder keeps the previous order of surviving columns and
// appends new ones in position order
func mergeColumnOrder(previous []string, columns []models.Column) []string {
	known := make(map[string]bool, len(columns))
	for _, col := range columns {
		known[col.ID] = true
	}

	order := make([]string, 0, len(columns))
	used := make(map[string]bool, len(columns))
	for _, id := range previous {
		if known[id] && !used[id] {
			order = append(order, id)
			used[id] = true
		}
	}
	for _, id := range positionOrder(columns) {
		if !used[id] {
			order = append(order, id)
			used[id] = true
		}
	}
	return order
}
