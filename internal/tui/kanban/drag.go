package kanban

import (
	"issueboard/internal/kanban/collision"
	"issueboard/internal/kanban/commit"
	"issueboard/internal/kanban/drag"
	"issueboard/internal/kanban/models"

	tea "github.com/charmbracelet/bubbletea"
)

// mouseDrag tracks a left button held down on a card or column title.
// It only becomes a drag once the pointer moves; a release without
// motion is a click.
type mouseDrag struct {
	itemID   string
	isCard   bool
	origin   collision.Rect  // region grabbed, board space
	start    collision.Point // pointer at press, board space
	dragging bool
}

func (p *mouseDrag) active(at collision.Point) collision.Rect {
	return p.origin.Translate(at.X-p.start.X, at.Y-p.start.Y)
}

// layoutFor computes drop regions for board and hands the bounds to the
// controller
func (m *BoardModel) layoutFor(board *models.Board) layout {
	lay := computeLayout(board, func(key string) []models.Card {
		return m.visibleCards(board, key)
	}, m.columnHeight()+2)
	m.ctrl.SetBounds(lay.bounds)
	return lay
}

// toBoardPoint maps a terminal cell to board space, undoing horizontal
// and per-column vertical scrolling. The column chrome (border, title,
// scroll hint) never scrolls.
func (m *BoardModel) toBoardPoint(board *models.Board, x, y int) collision.Point {
	bx := x - indicatorWidth + m.columnHorizontalOffset*columnStride
	by := y - headerRows
	if bx >= 0 && by >= columnChromeRows {
		if ci := bx / columnStride; ci < len(board.ColumnOrder) {
			by += m.columnScrollOffsets[board.ColumnOrder[ci]] * cardRows
		}
	}
	return collision.Point{X: float64(bx) + 0.5, Y: float64(by) + 0.5}
}

func (m BoardModel) startCardDrag() (BoardModel, tea.Cmd) {
	board := m.ctrl.Board()
	id := m.selectedCardID(&board)
	if id == "" {
		return m, nil
	}
	if _, err := m.ctrl.Handle(drag.Start{ItemID: id}); err != nil {
		m.err = err
		return m, nil
	}
	m.mode = boardModeDrag
	m.ghostCol = m.selectedCol
	m.ghostSlot = m.selectedCard
	return m.dragOver()
}

func (m BoardModel) startColumnDrag() (BoardModel, tea.Cmd) {
	board := m.ctrl.Board()
	if m.selectedCol >= len(board.ColumnOrder) {
		return m, nil
	}
	if _, err := m.ctrl.Handle(drag.Start{ItemID: board.ColumnOrder[m.selectedCol]}); err != nil {
		m.err = err
		return m, nil
	}
	m.mode = boardModeDrag
	m.ghostCol = m.selectedCol
	m.ghostSlot = 0
	return m.dragOver()
}

func (m BoardModel) updateDrag(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	session := m.ctrl.Session()
	if session.Kind == drag.KindNone {
		m.mode = boardModeNormal
		return m, nil
	}
	board := m.ctrl.Board()

	switch msg.String() {
	case "esc", "q":
		_, err := m.ctrl.Handle(drag.Cancel{})
		m.mode = boardModeNormal
		m.press = nil
		return m.afterDrop(session, nil, err)
	}

	// The pointer drives a mouse drag; only cancelling is left to the keyboard
	if m.press != nil {
		return m, nil
	}

	switch msg.String() {

	case "enter", " ", "m", "C":
		return m.dropDrag()

	case "h", "left":
		if m.ghostCol > 0 {
			m.ghostCol--
			m.ghostSlot = min(m.ghostSlot, m.ghostSlots(&board, session))
			return m.dragOver()
		}

	case "l", "right":
		if m.ghostCol < len(board.ColumnOrder)-1 {
			m.ghostCol++
			m.ghostSlot = min(m.ghostSlot, m.ghostSlots(&board, session))
			return m.dragOver()
		}

	case "j", "down":
		if session.Kind == drag.KindCard && m.ghostSlot < m.ghostSlots(&board, session) {
			m.ghostSlot++
			return m.dragOver()
		}

	case "k", "up":
		if session.Kind == drag.KindCard && m.ghostSlot > 0 {
			m.ghostSlot--
			return m.dragOver()
		}
	}

	return m, nil
}

// ghostSlots is the last slot a keyboard-dragged card can take in the
// ghost column: one past the other cards shown there
func (m *BoardModel) ghostSlots(board *models.Board, session drag.Session) int {
	ordered := board.OrderedColumns()
	if m.ghostCol >= len(ordered) {
		return 0
	}
	n := 0
	for _, card := range m.visibleCards(board, ordered[m.ghostCol].Key) {
		if card.ID != session.ActiveCardID {
			n++
		}
	}
	return n
}

// keyboardGeometry synthesises the dragged rectangle for the ghost
// position. A card ghost sits just above the card in its slot, or just
// below the last card when the slot is past the end.
func (m *BoardModel) keyboardGeometry() (collision.Rect, []collision.Region, bool) {
	board := m.ctrl.Board()
	lay := m.layoutFor(&board)
	session := m.ctrl.Session()
	ordered := board.OrderedColumns()
	if m.ghostCol >= len(ordered) {
		return collision.Rect{}, nil, false
	}
	col := ordered[m.ghostCol]

	switch session.Kind {
	case drag.KindColumn:
		r, ok := lay.column(col.ID)
		return r.Rect, lay.columns, ok

	case drag.KindCard:
		colRegion, cards, ok := lay.lane(col.Key, session.ActiveCardID)
		if !ok {
			return collision.Rect{}, nil, false
		}
		regions := append([]collision.Region{colRegion}, cards...)
		switch {
		case m.ghostSlot < len(cards):
			return cards[m.ghostSlot].Rect.Translate(0, -1), regions, true
		case len(cards) > 0:
			return cards[len(cards)-1].Rect.Translate(0, 1), regions, true
		default:
			return cardRect(colRegion.Rect.X, 0), regions, true
		}
	}
	return collision.Rect{}, nil, false
}

func (m BoardModel) dragOver() (BoardModel, tea.Cmd) {
	active, regions, ok := m.keyboardGeometry()
	if !ok {
		return m, nil
	}
	if _, err := m.ctrl.Handle(drag.Over{Active: active, Regions: regions}); err != nil {
		m.err = err
	}
	m.followSession(m.ctrl.Session())
	return m, nil
}

func (m BoardModel) dropDrag() (BoardModel, tea.Cmd) {
	session := m.ctrl.Session()
	m.mode = boardModeNormal

	active, regions, ok := m.keyboardGeometry()
	if !ok {
		_, err := m.ctrl.Handle(drag.Cancel{})
		return m.afterDrop(session, nil, err)
	}
	req, err := m.ctrl.Handle(drag.End{Active: active, Regions: regions})
	return m.afterDrop(session, req, err)
}

// afterDrop settles the view once a drag has ended and starts persisting
// the move, if it needs persisting
func (m BoardModel) afterDrop(session drag.Session, req *commit.Request, err error) (BoardModel, tea.Cmd) {
	if err != nil {
		m.err = err
	}
	m.followSession(session)
	m.reloadBoardState()

	var cmds []tea.Cmd
	if req != nil {
		m.message = "Saving..."
		cmds = append(cmds, m.runCommit(req))
	}
	cmds = append(cmds, m.refetchIfOwed())
	return m, tea.Batch(cmds...)
}

// followSession keeps the cursor on the dragged item
func (m *BoardModel) followSession(session drag.Session) {
	board := m.ctrl.Board()
	switch session.Kind {
	case drag.KindCard:
		m.selectCard(&board, session.ActiveCardID)
	case drag.KindColumn:
		m.selectColumn(&board, session.ActiveColumnID)
	}
	m.adjustScrollPosition()
	m.adjustHorizontalScrollPosition()
}

func (m BoardModel) updateMouse(msg tea.MouseMsg) (BoardModel, tea.Cmd) {
	if m.mode == boardModeFilter || m.mode == boardModeDetail {
		return m, nil
	}
	// A keyboard drag owns the board until it is dropped
	if m.mode == boardModeDrag && m.press == nil {
		return m, nil
	}

	board := m.ctrl.Board()
	p := m.toBoardPoint(&board, msg.X, msg.Y)

	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		if msg.Action == tea.MouseActionPress && m.press == nil {
			m.scrollColumnAt(&board, p, msg.Button == tea.MouseButtonWheelDown)
		}
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || m.press != nil {
			return m, nil
		}
		lay := m.layoutFor(&board)
		region, ok := lay.hit(p)
		if !ok {
			return m, nil
		}
		if region.Kind == collision.RegionCard {
			m.press = &mouseDrag{itemID: region.CardID, isCard: true, origin: region.Rect, start: p}
			m.selectCard(&board, region.CardID)
		} else {
			m.selectColumn(&board, region.ColumnID)
			// Only the title row picks up a column
			if p.Y < columnChromeRows {
				m.press = &mouseDrag{itemID: region.ColumnID, origin: region.Rect, start: p}
			}
		}
		return m, nil

	case tea.MouseActionMotion:
		if m.press == nil {
			return m, nil
		}
		if !m.press.dragging {
			if p == m.press.start {
				return m, nil
			}
			if _, err := m.ctrl.Handle(drag.Start{ItemID: m.press.itemID}); err != nil {
				m.err = err
				m.press = nil
				return m, nil
			}
			m.press.dragging = true
			m.mode = boardModeDrag
		}
		lay := m.layoutFor(&board)
		if _, err := m.ctrl.Handle(drag.Over{Active: m.press.active(p), Regions: lay.regions()}); err != nil {
			m.err = err
		}
		m.followSession(m.ctrl.Session())
		return m, nil

	case tea.MouseActionRelease:
		press := m.press
		m.press = nil
		if press == nil {
			return m, nil
		}
		if !press.dragging {
			if press.isCard {
				m.ctrl.Click(press.itemID)
				return m, m.drainHooks()
			}
			return m, nil
		}
		session := m.ctrl.Session()
		m.mode = boardModeNormal
		lay := m.layoutFor(&board)
		req, err := m.ctrl.Handle(drag.End{Active: press.active(p), Regions: lay.regions()})
		return m.afterDrop(session, req, err)
	}

	return m, nil
}

// scrollColumnAt scrolls the column under p by one card
func (m *BoardModel) scrollColumnAt(board *models.Board, p collision.Point, down bool) {
	if p.X < 0 {
		return
	}
	ci := int(p.X) / columnStride
	if ci >= len(board.ColumnOrder) {
		return
	}
	col, ok := board.ColumnByID(board.ColumnOrder[ci])
	if !ok {
		return
	}
	offset := m.columnScrollOffsets[col.ID]
	if down {
		offset++
	} else {
		offset--
	}
	limit := len(m.visibleCards(board, col.Key)) - m.visibleSlots()
	if offset > limit {
		offset = limit
	}
	if offset < 0 {
		offset = 0
	}
	m.columnScrollOffsets[col.ID] = offset
}
