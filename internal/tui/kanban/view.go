package kanban

import (
	"fmt"
	"strings"

	"issueboard/internal/kanban/collision"
	"issueboard/internal/kanban/drag"
	"issueboard/internal/kanban/models"
	"issueboard/internal/kanban/operations"

	"github.com/charmbracelet/lipgloss"
)

func (m BoardModel) View() string {
	if m.mode == boardModeDetail && m.detail != nil {
		return m.renderDetail()
	}

	board := m.ctrl.Board()
	ordered := board.OrderedColumns()
	session := m.ctrl.Session()
	childCounts := board.ChildCounts()

	var s strings.Builder

	// Title
	title := fmt.Sprintf("Board: %s", board.ProjectID)
	if n := m.ctrl.InFlight(); n > 0 {
		title += fmt.Sprintf("  saving %d...", n)
	}
	s.WriteString(titleStyle.Render(title))
	s.WriteString("\n")

	// Filter bar
	if m.mode == boardModeFilter {
		s.WriteString("  / " + m.filterInput.View())
		if labels := operations.CollectLabels(&board); len(labels) > 0 {
			s.WriteString("  " + cardLabelStyle.Render("#"+strings.Join(labels, " #")))
		}
	} else if m.filterActive {
		s.WriteString("  " + filterIndicatorStyle.Render("Filter: "+m.filterQuery))
	}
	s.WriteString("\n")

	height := m.columnHeight()
	startCol, endCol := m.calculateVisibleColumns(len(ordered))
	views := []string{}

	// Left scroll indicator space (always allocated)
	if startCol > 0 {
		views = append(views, m.renderScrollIndicator("◀", height+2))
	} else {
		views = append(views, m.renderScrollIndicator(" ", height+2))
	}

	for i := startCol; i < endCol; i++ {
		col := ordered[i]
		cards := m.visibleCards(&board, col.Key)
		views = append(views, m.renderColumn(i, col, cards, height, session, childCounts))
	}

	// Right scroll indicator space (always allocated)
	if endCol < len(ordered) {
		views = append(views, m.renderScrollIndicator("▶", height+2))
	} else {
		views = append(views, m.renderScrollIndicator(" ", height+2))
	}

	s.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, views...))
	s.WriteString("\n")

	// Status message, notification or error
	switch {
	case m.notification != "":
		s.WriteString(notificationStyle.Render(m.notification))
	case m.err != nil:
		s.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	case m.message != "":
		s.WriteString(successStyle.Render(m.message))
	}
	s.WriteString("\n")

	// Mode-specific help
	switch m.mode {
	case boardModeDrag:
		if session.Kind == drag.KindColumn {
			s.WriteString(helpStyle.Render("h/l: move column • enter: drop • esc: cancel"))
		} else if m.press != nil {
			s.WriteString(warningStyle.Render("release to drop • esc: cancel"))
		} else {
			s.WriteString(helpStyle.Render("h/l: column • j/k: position • enter: drop • esc: cancel"))
		}
	case boardModeFilter:
		s.WriteString(helpStyle.Render("type to filter • enter: lock filter • esc: cancel"))
	default:
		helpText := "hjkl: navigate • m/space: drag card • C: drag column • enter: open • /: filter • r: refresh • q: quit"
		if m.filterActive {
			helpText = "hjkl: navigate • m/space: drag card • enter: open • /: edit filter • esc: clear filter"
		}
		s.WriteString(helpStyle.Render(helpText))
	}

	return s.String()
}

func (m BoardModel) renderColumn(index int, col models.Column, cards []models.Card, height int, session drag.Session, childCounts map[string]int) string {
	var s strings.Builder

	// Column title
	colTitleStyle := columnTitleStyle.Foreground(columnAccent(col.Color))
	if index == m.selectedCol {
		colTitleStyle = selectedColumnTitleStyle
	}
	s.WriteString(colTitleStyle.Render(truncate(col.Name, columnWidth-2*columnPadding-6)))
	s.WriteString(" ")
	s.WriteString(columnCountStyle.Render(fmt.Sprintf("(%d)", len(cards))))
	s.WriteString("\n")

	offset := m.columnScrollOffsets[col.ID]
	if offset > len(cards) {
		offset = len(cards)
	}
	if offset > 0 {
		s.WriteString(scrollIndicatorStyle.Render(fmt.Sprintf("▲ +%d above", offset)))
	}
	s.WriteString("\n")

	if len(cards) == 0 {
		s.WriteString(cardPreviewStyle.Render("(empty)"))
		s.WriteString("\n")
	}

	end := min(offset+m.visibleSlots(), len(cards))
	for i := offset; i < end; i++ {
		s.WriteString(m.renderCard(index, i, cards[i], session, childCounts[cards[i].ID]))
		s.WriteString("\n\n")
	}

	if below := len(cards) - end; below > 0 {
		s.WriteString(scrollIndicatorStyle.Render(fmt.Sprintf("▼ +%d below", below)))
	}

	style := columnStyle
	switch {
	case session.Kind == drag.KindColumn && session.ActiveColumnID == col.ID:
		style = dragColumnStyle
	case session.Kind == drag.KindColumn && session.Over != nil && session.Over.ColumnID == col.ID:
		style = dropColumnStyle
	case session.Kind == drag.KindCard && session.Over != nil && !session.Over.OnCard() && session.Over.ColumnKey == col.Key:
		style = dropColumnStyle
	case index == m.selectedCol:
		style = selectedColumnStyle
	}

	return style.Height(height).Render(strings.TrimSuffix(s.String(), "\n"))
}

func (m BoardModel) renderCard(colIndex, cardIndex int, card models.Card, session drag.Session, children int) string {
	maxWidth := cardWidth - 2*cardPaddingHorizontal

	isActive := session.Kind == drag.KindCard && session.ActiveCardID == card.ID
	isTarget := session.Kind == drag.KindCard && !isActive && session.Over != nil && session.Over.CardID == card.ID
	isSelected := session.Kind == drag.KindNone && colIndex == m.selectedCol && cardIndex == m.selectedCard

	// Line 1: priority and title
	prefix := ""
	if isTarget {
		if session.Over.Bias == collision.BiasBefore {
			prefix = "↑ "
		} else {
			prefix = "↓ "
		}
	}
	if card.Priority > 0 {
		prefix += fmt.Sprintf("%d ", card.Priority)
	}
	title := truncate(card.Title, maxWidth-lipgloss.Width(prefix))

	var line1 string
	if card.Priority > 0 && !isTarget {
		pStyle := lipgloss.NewStyle().Bold(true).Foreground(priorityColor(card.Priority))
		line1 = pStyle.Render(prefix) + cardTitleStyle.Render(title)
	} else {
		line1 = cardTitleStyle.Render(prefix + title)
	}

	// Line 2: id, children, labels
	meta := cardIDStyle.Render(card.ID)
	used := lipgloss.Width(card.ID)
	if children > 0 {
		c := fmt.Sprintf(" ↳%d", children)
		meta += cardChildStyle.Render(c)
		used += lipgloss.Width(c)
	}
	if len(card.Labels) > 0 && used+2 < maxWidth {
		labels := truncate(" #"+strings.Join(card.Labels, " #"), maxWidth-used)
		meta += cardLabelStyle.Render(labels)
	}

	style := cardStyle
	switch {
	case isActive:
		style = dragCardStyle
	case isTarget:
		style = dropCardStyle
	case isSelected:
		style = selectedCardStyle
	}

	return style.Render(line1 + "\n" + meta)
}

func (m BoardModel) renderDetail() string {
	card := *m.detail
	board := m.ctrl.Board()

	status := card.Status
	if li, _ := board.FindCard(card.ID); li >= 0 {
		status = board.Lanes[li].Key
	}
	if col, ok := board.ColumnByKey(status); ok {
		status = col.Name
	}

	row := func(k, v string) string {
		return detailKeyStyle.Render(k) + v + "\n"
	}

	var s strings.Builder
	s.WriteString(detailTitleStyle.Render(card.Title))
	s.WriteString("\n\n")
	s.WriteString(row("ID", card.ID))
	s.WriteString(row("Status", status))
	if card.Priority > 0 {
		s.WriteString(row("Priority", fmt.Sprintf("%d", card.Priority)))
	}
	if card.HasParent() {
		s.WriteString(row("Parent", card.ParentID))
	}
	if n := board.ChildCounts()[card.ID]; n > 0 {
		s.WriteString(row("Children", fmt.Sprintf("%d", n)))
	}
	if len(card.Labels) > 0 {
		s.WriteString(row("Labels", strings.Join(card.Labels, ", ")))
	}
	s.WriteString("\n")
	s.WriteString(cardPreviewStyle.Render("esc/enter: close"))

	box := detailBoxStyle.Render(s.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// renderScrollIndicator renders ◀ and ▶ indicators for horizontal scrolling
func (m BoardModel) renderScrollIndicator(symbol string, height int) string {
	indicatorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("11")).
		Bold(true)

	indicator := indicatorStyle.Render(symbol)
	return lipgloss.NewStyle().
		Width(indicatorWidth).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(indicator)
}

// truncate shortens s to at most n cells, marking the cut with an ellipsis
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= n {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > n {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
