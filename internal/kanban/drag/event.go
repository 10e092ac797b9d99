package drag

import "issueboard/internal/kanban/collision"

// Event is a drag input: Start, Over, End or Cancel
type Event interface {
	isEvent()
}

// Start picks up a card or column by ID
type Start struct {
	ItemID string
}

// Over reports the dragged rectangle and the current drop regions
type Over struct {
	Active  collision.Rect
	Regions []collision.Region
}

// End releases the dragged item at the given geometry
type End struct {
	Active  collision.Rect
	Regions []collision.Region
}

// Cancel aborts the drag
type Cancel struct{}

func (Start) isEvent()  {}
func (Over) isEvent()   {}
func (End) isEvent()    {}
func (Cancel) isEvent() {}
