package kanban

import (
	"issueboard/internal/kanban/collision"
	"issueboard/internal/kanban/models"
)

const (
	// Layout constants, in terminal cells
	columnWidth           = 30 // inside the border, padding included
	columnPadding         = 1
	columnStride          = columnWidth + 2 + 1 // borders and gap
	columnChromeRows      = 3                   // top border, title, scroll hint
	cardPaddingHorizontal = 1
	cardWidth             = columnWidth - 2*columnPadding - 1 // minus the card's left border
	cardContentRows       = 2
	cardRows              = cardContentRows + 1 // blank separator below each card
	headerRows            = 2                   // board title, filter bar
	indicatorWidth        = 3                   // horizontal scroll hint
)

// layout places every lane and visible card in board space: column i
// starts at x = i*columnStride and the first card of each lane sits at
// y = columnChromeRows, before any scrolling. Screen coordinates are
// mapped into this space so that drag geometry does not depend on which
// part of the board is on screen.
type layout struct {
	columns []collision.Region
	cards   []collision.Region
	bounds  collision.Rect
}

// computeLayout builds regions for board in column display order. visible
// returns the cards shown for a lane; minRows is the on-screen height of a
// column so the drop area never ends above the visible border.
func computeLayout(board *models.Board, visible func(key string) []models.Card, minRows int) layout {
	ordered := board.OrderedColumns()

	maxCards := 0
	lanes := make([][]models.Card, len(ordered))
	for i, col := range ordered {
		lanes[i] = visible(col.Key)
		if n := len(lanes[i]); n > maxCards {
			maxCards = n
		}
	}

	height := columnChromeRows + (maxCards+1)*cardRows
	if height < minRows {
		height = minRows
	}
	height += cardRows

	var l layout
	for i, col := range ordered {
		x := float64(i * columnStride)
		l.columns = append(l.columns, collision.Region{
			ID:        "column:" + col.ID,
			Kind:      collision.RegionColumn,
			ColumnID:  col.ID,
			ColumnKey: col.Key,
			Rect:      collision.Rect{X: x, Y: 0, W: columnWidth + 2, H: float64(height)},
		})
		for j, card := range lanes[i] {
			l.cards = append(l.cards, collision.Region{
				ID:        "card:" + card.ID,
				Kind:      collision.RegionCard,
				ColumnID:  col.ID,
				ColumnKey: col.Key,
				CardID:    card.ID,
				Rect:      cardRect(x, j),
			})
		}
	}

	l.bounds = collision.Rect{X: 0, Y: 0, W: float64(len(ordered) * columnStride), H: float64(height)}
	return l
}

func cardRect(columnX float64, slot int) collision.Rect {
	return collision.Rect{
		X: columnX + 1 + columnPadding,
		Y: float64(columnChromeRows + slot*cardRows),
		W: columnWidth - 2*columnPadding,
		H: cardContentRows,
	}
}

// regions returns every drop region, columns first
func (l layout) regions() []collision.Region {
	out := make([]collision.Region, 0, len(l.columns)+len(l.cards))
	out = append(out, l.columns...)
	return append(out, l.cards...)
}

func (l layout) column(id string) (collision.Region, bool) {
	for _, r := range l.columns {
		if r.ColumnID == id {
			return r, true
		}
	}
	return collision.Region{}, false
}

func (l layout) card(id string) (collision.Region, bool) {
	for _, r := range l.cards {
		if r.CardID == id {
			return r, true
		}
	}
	return collision.Region{}, false
}

// lane returns the column region for key followed by its card regions,
// leaving out excludeCardID
func (l layout) lane(key, excludeCardID string) (collision.Region, []collision.Region, bool) {
	var col collision.Region
	found := false
	for _, r := range l.columns {
		if r.ColumnKey == key {
			col = r
			found = true
			break
		}
	}
	if !found {
		return collision.Region{}, nil, false
	}
	var cards []collision.Region
	for _, r := range l.cards {
		if r.ColumnKey == key && r.CardID != excludeCardID {
			cards = append(cards, r)
		}
	}
	return col, cards, true
}

// hit returns the card under p, or the column when p is on no card
func (l layout) hit(p collision.Point) (collision.Region, bool) {
	for _, r := range l.cards {
		if r.Rect.Contains(p) {
			return r, true
		}
	}
	for _, r := range l.columns {
		if r.Rect.Contains(p) {
			return r, true
		}
	}
	return collision.Region{}, false
}
