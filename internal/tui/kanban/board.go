package kanban

import (
	"context"
	"fmt"
	"strings"
	"time"

	"issueboard/internal/config"
	"issueboard/internal/kanban/commit"
	"issueboard/internal/kanban/controller"
	"issueboard/internal/kanban/models"
	"issueboard/internal/kanban/store"
	"issueboard/internal/logs"
	"issueboard/internal/tui/messages"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

const (
	fetchTimeout    = 10 * time.Second
	persistTimeout  = 10 * time.Second
	notificationTTL = 5 * time.Second
)

type boardMode int

const (
	boardModeNormal boardMode = iota
	boardModeDrag
	boardModeFilter
	boardModeDetail
)

// hookEvents collects controller callbacks. The model is passed around by
// value, so the callbacks write here and the model drains them after each
// controller call.
type hookEvents struct {
	clicked   *models.Card
	reordered []string
	failure   error
}

type BoardModel struct {
	svc          store.Service
	projectID    string
	ctrl         *controller.Controller
	events       *hookEvents
	refreshEvery time.Duration
	mouseEnabled bool

	selectedCol  int
	selectedCard int
	mode         boardMode
	width        int
	height       int
	err          error
	message      string
	notification string
	notifySeq    int

	columnScrollOffsets    map[string]int // first visible card per column ID
	columnCursorPos        map[string]int // remembered cursor per column ID
	columnHorizontalOffset int            // first visible column index

	filterInput   textinput.Model
	filterQuery   string
	filterActive  bool
	filterMatches map[string]bool // card IDs matching filterQuery

	ghostCol  int // keyboard drag: column index under the ghost
	ghostSlot int // keyboard drag: slot among the other cards of that column
	press     *mouseDrag
	detail    *models.Card
	fetching  bool
}

// NewBoardModel builds the board view from a first fetch of the project
func NewBoardModel(svc store.Service, cfg *config.Config, data models.BoardData) BoardModel {
	events := &hookEvents{}
	hooks := controller.Hooks{
		OnIssueClick: func(card models.Card) {
			events.clicked = &card
		},
		OnColumnsReorder: func(ids []string) {
			events.reordered = ids
		},
		OnFailure: func(err error) {
			events.failure = err
		},
	}

	return BoardModel{
		svc:                 svc,
		projectID:           cfg.Project,
		ctrl:                controller.New(cfg.Project, data, hooks),
		events:              events,
		refreshEvery:        cfg.RefreshInterval,
		mouseEnabled:        cfg.Mouse,
		mode:                boardModeNormal,
		columnScrollOffsets: make(map[string]int),
		columnCursorPos:     make(map[string]int),
	}
}

// SetSize updates the view dimensions
func (m *BoardModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.adjustScrollPosition()
	m.adjustHorizontalScrollPosition()
}

// IsModal returns true if the board is capturing keys (drag, filter, popup)
func (m BoardModel) IsModal() bool {
	return m.mode != boardModeNormal
}

// Board returns a copy of the column model currently shown
func (m BoardModel) Board() models.Board {
	return m.ctrl.Board()
}

func (m BoardModel) Init() tea.Cmd {
	return messages.RefreshTick(m.refreshEvery)
}

// Update handles board events as a child view
func (m BoardModel) Update(msg tea.Msg) (BoardModel, tea.Cmd) {
	switch msg := msg.(type) {
	case messages.BoardDataMsg:
		m.fetching = false
		if msg.Err != nil {
			m.err = msg.Err
			logs.Logger.Printf("Board: fetch failed: %v", msg.Err)
			return m, nil
		}
		if m.ctrl.Refresh(msg.Data) {
			m.reloadBoardState()
		}
		return m, nil

	case messages.RefreshTickMsg:
		cmds := []tea.Cmd{messages.RefreshTick(m.refreshEvery)}
		if !m.fetching {
			m.fetching = true
			cmds = append(cmds, m.fetch())
		}
		return m, tea.Batch(cmds...)

	case messages.CommitResultMsg:
		m.ctrl.Resolve(msg.Request, msg.Err)
		cmd := m.drainHooks()
		if msg.Err == nil && msg.Request != nil && msg.Request.Move.Kind == commit.MoveCrossColumn {
			m.message = "Saved"
		}
		if !m.ctrl.Dragging() {
			if m.mode == boardModeDrag {
				m.mode = boardModeNormal
			}
			if m.press != nil && m.press.dragging {
				m.press = nil
			}
		}
		m.reloadBoardState()
		return m, tea.Batch(cmd, m.refetchIfOwed())

	case messages.NotificationExpiredMsg:
		if msg.Seq == m.notifySeq {
			m.notification = ""
		}
		return m, nil

	case tea.MouseMsg:
		if !m.mouseEnabled {
			return m, nil
		}
		return m.updateMouse(msg)

	case tea.KeyMsg:
		switch m.mode {
		case boardModeNormal:
			return m.updateNormal(msg)
		case boardModeDrag:
			return m.updateDrag(msg)
		case boardModeFilter:
			return m.updateFilter(msg)
		case boardModeDetail:
			return m.updateDetail(msg)
		}
	}

	return m, nil
}

func (m BoardModel) updateNormal(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	m.message = ""
	m.err = nil

	board := m.ctrl.Board()
	ordered := board.OrderedColumns()

	switch msg.String() {
	case "esc":
		if m.filterActive {
			m.clearFilter()
		}

	case "/":
		ti := textinput.New()
		ti.Placeholder = "filter..."
		ti.CharLimit = 100
		ti.Width = 40
		ti.SetValue(m.filterQuery)
		ti.Focus()
		m.filterInput = ti
		m.mode = boardModeFilter
		m.selectedCard = 0
		m.rememberCursor(ordered)
		return m, textinput.Blink

	case "h", "left":
		if m.selectedCol > 0 {
			m.selectedCol--
			m.restoreCursor(&board)
		}

	case "l", "right":
		if m.selectedCol < len(ordered)-1 {
			m.selectedCol++
			m.restoreCursor(&board)
		}

	case "j", "down":
		if m.selectedCol < len(ordered) {
			maxCard := len(m.visibleCards(&board, ordered[m.selectedCol].Key)) - 1
			if m.selectedCard < maxCard {
				m.selectedCard++
				m.rememberCursor(ordered)
				m.adjustScrollPosition()
			}
		}

	case "k", "up":
		if m.selectedCard > 0 {
			m.selectedCard--
			m.rememberCursor(ordered)
			m.adjustScrollPosition()
		}

	case "m", " ":
		return m.startCardDrag()

	case "C":
		return m.startColumnDrag()

	case "enter":
		if id := m.selectedCardID(&board); id != "" {
			m.ctrl.Click(id)
			return m, m.drainHooks()
		}

	case "r":
		if !m.fetching {
			m.fetching = true
			m.message = "Refreshing..."
			return m, m.fetch()
		}
	}

	return m, nil
}

func (m BoardModel) updateFilter(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	switch msg.String() {
	case "enter":
		// Lock filter and return to normal mode
		m.filterQuery = m.filterInput.Value()
		m.filterActive = m.filterQuery != ""
		m.recomputeFilter()
		m.selectedCard = 0
		m.mode = boardModeNormal
		m.reloadBoardState()
		return m, nil

	case "esc":
		m.clearFilter()
		m.mode = boardModeNormal
		return m, nil

	default:
		// Forward to textinput
		var cmd tea.Cmd
		m.filterInput, cmd = m.filterInput.Update(msg)
		// Live recompute
		m.filterQuery = m.filterInput.Value()
		m.filterActive = m.filterQuery != ""
		m.recomputeFilter()
		m.reloadBoardState()
		return m, cmd
	}
}

func (m BoardModel) updateDetail(msg tea.KeyMsg) (BoardModel, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "q":
		m.detail = nil
		m.mode = boardModeNormal
	}
	return m, nil
}

func (m *BoardModel) clearFilter() {
	m.filterQuery = ""
	m.filterActive = false
	m.filterMatches = nil
	m.selectedCard = 0
	m.reloadBoardState()
}

// drainHooks turns collected controller callbacks into view state
func (m *BoardModel) drainHooks() tea.Cmd {
	var cmd tea.Cmd
	if err := m.events.failure; err != nil {
		m.events.failure = nil
		m.notifySeq++
		m.notification = fmt.Sprintf("Move not saved, board restored: %v", err)
		cmd = messages.ExpireNotification(m.notifySeq, notificationTTL)
	}
	if m.events.reordered != nil {
		m.events.reordered = nil
		m.message = "Columns reordered"
	}
	if m.events.clicked != nil {
		m.detail = m.events.clicked
		m.events.clicked = nil
		m.mode = boardModeDetail
	}
	return cmd
}

func (m BoardModel) fetch() tea.Cmd {
	svc, projectID := m.svc, m.projectID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		data, err := svc.FetchBoardData(ctx, projectID)
		return messages.BoardDataMsg{ProjectID: projectID, Data: data, Err: err}
	}
}

func (m BoardModel) runCommit(req *commit.Request) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		return messages.CommitResultMsg{Request: req, Err: req.Run(ctx, svc)}
	}
}

// refetchIfOwed fetches again once a skipped refresh can be applied
func (m *BoardModel) refetchIfOwed() tea.Cmd {
	if !m.ctrl.RefreshOwed() || m.ctrl.Dragging() || m.ctrl.InFlight() > 0 || m.fetching {
		return nil
	}
	m.fetching = true
	return m.fetch()
}

// cardSearchString builds a single string from card fields for fuzzy matching
func cardSearchString(card models.Card) string {
	parts := []string{card.ID, card.Title}
	for _, label := range card.Labels {
		parts = append(parts, "#"+label)
	}
	if card.Priority > 0 {
		parts = append(parts, fmt.Sprintf("priority:%d", card.Priority))
	}
	return strings.Join(parts, " ")
}

// recomputeFilter rebuilds filterMatches from the current filterQuery
func (m *BoardModel) recomputeFilter() {
	if !m.filterActive || m.filterQuery == "" {
		m.filterMatches = nil
		return
	}

	board := m.ctrl.Board()
	m.filterMatches = make(map[string]bool)
	for _, lane := range board.Lanes {
		searchStrings := make([]string, len(lane.Cards))
		for i, card := range lane.Cards {
			searchStrings[i] = cardSearchString(card)
		}
		for _, match := range fuzzy.Find(m.filterQuery, searchStrings) {
			m.filterMatches[lane.Cards[match.Index].ID] = true
		}
	}
}

// visibleCards returns the cards shown for a lane, in lane order,
// respecting the active filter
func (m *BoardModel) visibleCards(board *models.Board, key string) []models.Card {
	lane := board.Lane(key)
	if lane == nil {
		return nil
	}
	if !m.filterActive || m.filterMatches == nil {
		return lane.Cards
	}
	cards := make([]models.Card, 0, len(lane.Cards))
	for _, card := range lane.Cards {
		if m.filterMatches[card.ID] {
			cards = append(cards, card)
		}
	}
	return cards
}

func (m *BoardModel) selectedCardID(board *models.Board) string {
	ordered := board.OrderedColumns()
	if m.selectedCol >= len(ordered) {
		return ""
	}
	cards := m.visibleCards(board, ordered[m.selectedCol].Key)
	if m.selectedCard >= len(cards) {
		return ""
	}
	return cards[m.selectedCard].ID
}

func (m *BoardModel) rememberCursor(ordered []models.Column) {
	if m.selectedCol < len(ordered) {
		m.columnCursorPos[ordered[m.selectedCol].ID] = m.selectedCard
	}
}

// restoreCursor moves the card cursor to the remembered position of the
// newly selected column
func (m *BoardModel) restoreCursor(board *models.Board) {
	ordered := board.OrderedColumns()
	if m.selectedCol >= len(ordered) {
		return
	}
	col := ordered[m.selectedCol]
	m.selectedCard = m.columnCursorPos[col.ID]
	visibleCount := len(m.visibleCards(board, col.Key))
	if m.selectedCard >= visibleCount {
		m.selectedCard = max(0, visibleCount-1)
		m.columnCursorPos[col.ID] = m.selectedCard
	}
	m.adjustScrollPosition()
	m.adjustHorizontalScrollPosition()
}

// selectCard points the cursor at a card wherever it now sits
func (m *BoardModel) selectCard(board *models.Board, cardID string) {
	li, _ := board.FindCard(cardID)
	if li < 0 {
		return
	}
	key := board.Lanes[li].Key
	for i, col := range board.OrderedColumns() {
		if col.Key != key {
			continue
		}
		m.selectedCol = i
		for j, card := range m.visibleCards(board, key) {
			if card.ID == cardID {
				m.selectedCard = j
				m.columnCursorPos[col.ID] = j
				break
			}
		}
	}
}

// selectColumn points the cursor at a column by ID
func (m *BoardModel) selectColumn(board *models.Board, columnID string) {
	for i, id := range board.ColumnOrder {
		if id == columnID {
			m.selectedCol = i
			m.restoreCursor(board)
			return
		}
	}
}

// reloadBoardState refreshes the filter and validates cursors after the
// board changed underneath the view
func (m *BoardModel) reloadBoardState() {
	if m.filterActive {
		m.recomputeFilter()
	}

	board := m.ctrl.Board()
	ordered := board.OrderedColumns()
	if m.selectedCol >= len(ordered) {
		m.selectedCol = max(0, len(ordered)-1)
	}
	if m.selectedCol < len(ordered) {
		visibleCount := len(m.visibleCards(&board, ordered[m.selectedCol].Key))
		if m.selectedCard >= visibleCount {
			m.selectedCard = max(0, visibleCount-1)
		}
		m.columnCursorPos[ordered[m.selectedCol].ID] = m.selectedCard
	}

	if m.columnHorizontalOffset >= len(ordered) {
		m.columnHorizontalOffset = max(0, len(ordered)-1)
	}
	m.adjustScrollPosition()
	m.adjustHorizontalScrollPosition()
}

// columnHeight is the number of rows inside a column's border
func (m *BoardModel) columnHeight() int {
	statusLines := 4 // message line and padded help line
	h := m.height - headerRows - 2 - statusLines
	if h < columnChromeRows+cardRows {
		h = columnChromeRows + cardRows
	}
	return h
}

// visibleSlots is how many cards fit in a column at once
func (m *BoardModel) visibleSlots() int {
	slots := (m.columnHeight() - columnChromeRows) / cardRows
	if slots < 1 {
		slots = 1
	}
	return slots
}

// adjustScrollPosition ensures the selected card is visible by adjusting scroll offset
func (m *BoardModel) adjustScrollPosition() {
	board := m.ctrl.Board()
	ordered := board.OrderedColumns()
	if m.selectedCol >= len(ordered) {
		return
	}
	col := ordered[m.selectedCol]
	count := len(m.visibleCards(&board, col.Key))
	slots := m.visibleSlots()

	offset := m.columnScrollOffsets[col.ID]
	if m.selectedCard < offset {
		offset = m.selectedCard
	}
	if m.selectedCard >= offset+slots {
		offset = m.selectedCard - slots + 1
	}
	if offset > count-slots {
		offset = count - slots
	}
	if offset < 0 {
		offset = 0
	}
	m.columnScrollOffsets[col.ID] = offset
}

// calculateVisibleColumns determines which columns fit in terminal width
func (m *BoardModel) calculateVisibleColumns(total int) (startCol, endCol int) {
	startCol = m.columnHorizontalOffset

	visibleCount := (m.width - 2*indicatorWidth) / columnStride
	if visibleCount < 1 {
		visibleCount = 1
	}

	endCol = min(startCol+visibleCount, total)
	if endCol <= startCol && total > 0 {
		endCol = startCol + 1
	}
	return startCol, endCol
}

// adjustHorizontalScrollPosition ensures the selected column is visible
func (m *BoardModel) adjustHorizontalScrollPosition() {
	board := m.ctrl.Board()
	total := len(board.ColumnOrder)
	if total == 0 {
		return
	}

	startCol, endCol := m.calculateVisibleColumns(total)

	if m.selectedCol < startCol {
		m.columnHorizontalOffset = m.selectedCol
		return
	}

	if m.selectedCol >= endCol {
		visibleCount := endCol - startCol
		m.columnHorizontalOffset = m.selectedCol - visibleCount + 1
		if m.columnHorizontalOffset < 0 {
			m.columnHorizontalOffset = 0
		}
	}
}
