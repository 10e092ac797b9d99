package collision

import "math"

// RegionKind distinguishes column-level from card-level drop zones
type RegionKind int

const (
	RegionColumn RegionKind = iota
	RegionCard
)

func (k RegionKind) String() string {
	if k == RegionCard {
		return "card"
	}
	return "column"
}

// Region is a droppable area. Column regions carry the column ID and key;
// card regions carry the card ID and the key of the column holding it.
type Region struct {
	ID        string
	Kind      RegionKind
	ColumnID  string
	ColumnKey string
	CardID    string
	Rect      Rect
}

// DragKind selects the collision strategy
type DragKind int

const (
	DragCard DragKind = iota
	DragColumn
)

// Bias says whether a drop lands before or after the target card
type Bias int

const (
	BiasNone Bias = iota
	BiasBefore
	BiasAfter
)

func (b Bias) String() string {
	switch b {
	case BiasBefore:
		return "before"
	case BiasAfter:
		return "after"
	}
	return "none"
}

// Target is a resolved drop target
type Target struct {
	RegionID  string
	Kind      RegionKind
	ColumnID  string
	ColumnKey string
	CardID    string // Set for card regions only
	Bias      Bias   // Set for card regions only
}

// OnCard reports whether the target is a specific card
func (t Target) OnCard() bool {
	return t.Kind == RegionCard && t.CardID != ""
}

// ClosestCorners returns the index of the region whose corners are
// nearest, summed, to the corners of active. Ties keep the earlier region.
func ClosestCorners(active Rect, regions []Region) int {
	best := -1
	bestDist := math.Inf(1)
	ac := active.Corners()
	for i, region := range regions {
		rc := region.Rect.Corners()
		d := 0.0
		for c := range ac {
			d += distance(ac[c], rc[c])
		}
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// ClosestCenter returns the index of the region whose centre is nearest
// to the centre of active
func ClosestCenter(active Rect, regions []Region) int {
	best := -1
	bestDist := math.Inf(1)
	center := active.Center()
	for i, region := range regions {
		d := distance(center, region.Rect.Center())
		if d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best
}

// Resolver picks drop targets. A zero Bounds disables the bounds check.
type Resolver struct {
	Bounds Rect
}

// Resolve returns the drop target for the dragged rectangle.
//
// Column drags only consider column regions; a card region under the
// pointer would otherwise win and the reorder would silently fail.
// Card drags consider every region and prefer the closest corners.
//
// There is no target when nothing is eligible or when the centre of
// active lies outside Bounds.
func (r Resolver) Resolve(kind DragKind, active Rect, regions []Region) (Target, bool) {
	if r.Bounds.W > 0 && r.Bounds.H > 0 && !r.Bounds.Contains(active.Center()) {
		return Target{}, false
	}

	var candidates []Region
	var idx int
	switch kind {
	case DragColumn:
		for _, region := range regions {
			if region.Kind == RegionColumn {
				candidates = append(candidates, region)
			}
		}
		idx = ClosestCenter(active, candidates)
	default:
		candidates = regions
		idx = ClosestCorners(active, candidates)
	}
	if idx < 0 {
		return Target{}, false
	}

	hit := candidates[idx]
	target := Target{
		RegionID:  hit.ID,
		Kind:      hit.Kind,
		ColumnID:  hit.ColumnID,
		ColumnKey: hit.ColumnKey,
	}
	if hit.Kind == RegionCard {
		target.CardID = hit.CardID
		if active.Center().Y < hit.Rect.MidY() {
			target.Bias = BiasBefore
		} else {
			target.Bias = BiasAfter
		}
	}
	return target, true
}
