package models

import "fmt"

// Lane is the ordered card sequence held under one column key
type Lane struct {
	Key   string
	Cards []Card
}

// Board is the locally held column model: one lane per known column,
// kept in the same order as Columns, plus the display order of columns.
// ColumnOrder is only consulted for rendering and for persisting the
// column order, never for card placement.
type Board struct {
	ProjectID   string
	Columns     []Column // Known columns, canonical order
	Lanes       []Lane   // Lanes[i].Key == Columns[i].Key
	ColumnOrder []string // Column IDs in display order
}

// Lane returns a pointer to the lane with the given column key
func (b *Board) Lane(key string) *Lane {
	for i := range b.Lanes {
		if b.Lanes[i].Key == key {
			return &b.Lanes[i]
		}
	}
	return nil
}

// LaneIndex returns the index of the lane with the given key, or -1
func (b *Board) LaneIndex(key string) int {
	for i := range b.Lanes {
		if b.Lanes[i].Key == key {
			return i
		}
	}
	return -1
}

// FindCard returns the lane and card index of a card, or (-1, -1)
func (b *Board) FindCard(id string) (int, int) {
	for li := range b.Lanes {
		for ci := range b.Lanes[li].Cards {
			if b.Lanes[li].Cards[ci].ID == id {
				return li, ci
			}
		}
	}
	return -1, -1
}

// Card returns the card with the given ID
func (b *Board) Card(id string) (Card, bool) {
	li, ci := b.FindCard(id)
	if li < 0 {
		return Card{}, false
	}
	return b.Lanes[li].Cards[ci], true
}

// ColumnByID returns the column with the given ID
func (b *Board) ColumnByID(id string) (Column, bool) {
	for _, col := range b.Columns {
		if col.ID == id {
			return col, true
		}
	}
	return Column{}, false
}

// ColumnByKey returns the column with the given key
func (b *Board) ColumnByKey(key string) (Column, bool) {
	for _, col := range b.Columns {
		if col.Key == key {
			return col, true
		}
	}
	return Column{}, false
}

// OrderedColumns returns the known columns in display order
func (b *Board) OrderedColumns() []Column {
	cols := make([]Column, 0, len(b.ColumnOrder))
	for _, id := range b.ColumnOrder {
		if col, ok := b.ColumnByID(id); ok {
			cols = append(cols, col)
		}
	}
	return cols
}

// FirstColumnKey returns the key of the first column in display order.
// Cards whose status matches no column land here.
func (b *Board) FirstColumnKey() string {
	for _, id := range b.ColumnOrder {
		if col, ok := b.ColumnByID(id); ok {
			return col.Key
		}
	}
	if len(b.Columns) > 0 {
		return b.Columns[0].Key
	}
	return ""
}

// CardCount returns the number of cards across all lanes
func (b *Board) CardCount() int {
	n := 0
	for _, lane := range b.Lanes {
		n += len(lane.Cards)
	}
	return n
}

// ChildCounts returns the number of cards on the board per parent ID
func (b *Board) ChildCounts() map[string]int {
	counts := make(map[string]int)
	for _, lane := range b.Lanes {
		for _, card := range lane.Cards {
			if card.HasParent() {
				counts[card.ParentID]++
			}
		}
	}
	return counts
}

// Clone returns a deep copy of the board
func (b Board) Clone() Board {
	out := Board{
		ProjectID:   b.ProjectID,
		Columns:     append([]Column(nil), b.Columns...),
		ColumnOrder: append([]string(nil), b.ColumnOrder...),
		Lanes:       make([]Lane, len(b.Lanes)),
	}
	for i, lane := range b.Lanes {
		cards := make([]Card, len(lane.Cards))
		for j, card := range lane.Cards {
			cards[j] = card.Clone()
		}
		out.Lanes[i] = Lane{Key: lane.Key, Cards: cards}
	}
	return out
}

// Equal reports whether two boards are structurally identical
func (b Board) Equal(o Board) bool {
	if b.ProjectID != o.ProjectID || len(b.Columns) != len(o.Columns) ||
		len(b.Lanes) != len(o.Lanes) || len(b.ColumnOrder) != len(o.ColumnOrder) {
		return false
	}
	for i := range b.Columns {
		if b.Columns[i] != o.Columns[i] {
			return false
		}
	}
	for i := range b.ColumnOrder {
		if b.ColumnOrder[i] != o.ColumnOrder[i] {
			return false
		}
	}
	for i := range b.Lanes {
		if b.Lanes[i].Key != o.Lanes[i].Key || len(b.Lanes[i].Cards) != len(o.Lanes[i].Cards) {
			return false
		}
		for j := range b.Lanes[i].Cards {
			if !b.Lanes[i].Cards[j].Equal(o.Lanes[i].Cards[j]) {
				return false
			}
		}
	}
	return true
}

// Validate checks the partition and column order invariants
func (b *Board) Validate() error {
	if len(b.Lanes) != len(b.Columns) {
		return fmt.Errorf("lane count %d does not match column count %d", len(b.Lanes), len(b.Columns))
	}
	for i := range b.Columns {
		if b.Lanes[i].Key != b.Columns[i].Key {
			return fmt.Errorf("lane %d key %q does not match column key %q", i, b.Lanes[i].Key, b.Columns[i].Key)
		}
	}

	seen := make(map[string]string)
	for _, lane := range b.Lanes {
		for _, card := range lane.Cards {
			if other, dup := seen[card.ID]; dup {
				return fmt.Errorf("card %q appears in %q and %q", card.ID, other, lane.Key)
			}
			seen[card.ID] = lane.Key
		}
	}

	if len(b.ColumnOrder) != len(b.Columns) {
		return fmt.Errorf("column order has %d ids, want %d", len(b.ColumnOrder), len(b.Columns))
	}
	ids := make(map[string]bool, len(b.Columns))
	for _, col := range b.Columns {
		ids[col.ID] = true
	}
	used := make(map[string]bool, len(b.ColumnOrder))
	for _, id := range b.ColumnOrder {
		if !ids[id] {
			return fmt.Errorf("column order references unknown column %q", id)
		}
		if used[id] {
			return fmt.Errorf("column order repeats %q", id)
		}
		used[id] = true
	}
	return nil
}
