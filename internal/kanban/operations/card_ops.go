package operations

import (
	"fmt"
	"sort"

	"issueboard/internal/kanban/models"
)

// InsertIndex returns where the active card lands in cards when dropped
// before or after overCardID. The active card is ignored when counting,
// so the index is valid after it has been removed. An unknown overCardID
// (e.g. dropping on the column itself) appends.
func InsertIndex(cards []models.Card, overCardID, activeCardID string, after bool) int {
	idx := 0
	for _, card := range cards {
		if card.ID == activeCardID {
			continue
		}
		if card.ID == overCardID {
			if after {
				return idx + 1
			}
			return idx
		}
		idx++
	}
	return idx
}

// MoveCard removes a card from wherever it sits and inserts it into the
// lane toKey at index (clamped), setting its status to toKey
func MoveCard(board *models.Board, cardID, toKey string, index int) error {
	fromLane, cardIndex := board.FindCard(cardID)
	if fromLane < 0 {
		return fmt.Errorf("card %q not found", cardID)
	}
	to := board.Lane(toKey)
	if to == nil {
		return fmt.Errorf("column %q not found", toKey)
	}

	from := &board.Lanes[fromLane]
	card := from.Cards[cardIndex]
	from.Cards = append(from.Cards[:cardIndex:cardIndex], from.Cards[cardIndex+1:]...)

	if index < 0 {
		index = 0
	}
	if index > len(to.Cards) {
		index = len(to.Cards)
	}

	card.Status = toKey
	to.Cards = append(to.Cards[:index:index], append([]models.Card{card}, to.Cards[index:]...)...)
	return nil
}

// CollectLabels gathers all unique labels across all cards in a board
func CollectLabels(board *models.Board) []string {
	labelSet := make(map[string]bool)
	for _, lane := range board.Lanes {
		for _, card := range lane.Cards {
			for _, label := range card.Labels {
				labelSet[label] = true
			}
		}
	}

	labels := make([]string, 0, len(labelSet))
	for label := range labelSet {
		labels = append(labels, label)
	}
	sort.Strings(labels)
	return labels
}

// arrayMove returns a copy of s with the element at from moved to to
func arrayMove[T any](s []T, from, to int) []T {
	out := append([]T(nil), s...)
	if from == to {
		return out
	}
	item := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]T{item}, out[to:]...)...)
	return out
}
