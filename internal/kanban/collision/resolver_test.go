package collision

import "testing"

// Two columns side by side, each holding one card at the top
func testRegions() []Region {
	return []Region{
		{ID: "col-a", Kind: RegionColumn, ColumnID: "col-a", ColumnKey: "a", Rect: Rect{X: 0, Y: 0, W: 40, H: 30}},
		{ID: "card-1", Kind: RegionCard, ColumnID: "col-a", ColumnKey: "a", CardID: "1", Rect: Rect{X: 2, Y: 4, W: 36, H: 4}},
		{ID: "col-b", Kind: RegionColumn, ColumnID: "col-b", ColumnKey: "b", Rect: Rect{X: 40, Y: 0, W: 40, H: 30}},
		{ID: "card-2", Kind: RegionCard, ColumnID: "col-b", ColumnKey: "b", CardID: "2", Rect: Rect{X: 42, Y: 4, W: 36, H: 4}},
	}
}

func TestResolve_CardDragPrefersCard(t *testing.T) {
	var r Resolver
	active := Rect{X: 42, Y: 3, W: 36, H: 4}

	target, ok := r.Resolve(DragCard, active, testRegions())
	if !ok {
		t.Fatal("expected a target")
	}
	if target.Kind != RegionCard || target.CardID != "2" {
		t.Errorf("expected card 2, got %+v", target)
	}
	if target.ColumnKey != "b" {
		t.Errorf("expected column b, got %q", target.ColumnKey)
	}
	if target.Bias != BiasBefore {
		t.Errorf("expected before bias, got %s", target.Bias)
	}
}

func TestResolve_CardDragBiasAfter(t *testing.T) {
	var r Resolver
	active := Rect{X: 42, Y: 5, W: 36, H: 4}

	target, ok := r.Resolve(DragCard, active, testRegions())
	if !ok {
		t.Fatal("expected a target")
	}
	if target.Bias != BiasAfter {
		t.Errorf("expected after bias, got %s", target.Bias)
	}
}

func TestResolve_ColumnDragIgnoresCards(t *testing.T) {
	var r Resolver
	// Exactly over card 2: a naive search would pick the card
	active := Rect{X: 42, Y: 4, W: 36, H: 4}

	target, ok := r.Resolve(DragColumn, active, testRegions())
	if !ok {
		t.Fatal("expected a target")
	}
	if target.Kind != RegionColumn || target.ColumnID != "col-b" {
		t.Errorf("expected column col-b, got %+v", target)
	}
	if target.CardID != "" || target.Bias != BiasNone {
		t.Errorf("expected no card data on a column target, got %+v", target)
	}
}

func TestResolve_EmptyColumn(t *testing.T) {
	var r Resolver
	regions := []Region{
		{ID: "col-a", Kind: RegionColumn, ColumnID: "col-a", ColumnKey: "a", Rect: Rect{X: 0, Y: 0, W: 40, H: 30}},
		{ID: "col-b", Kind: RegionColumn, ColumnID: "col-b", ColumnKey: "b", Rect: Rect{X: 40, Y: 0, W: 40, H: 30}},
	}
	target, ok := r.Resolve(DragCard, Rect{X: 41, Y: 2, W: 36, H: 4}, regions)
	if !ok {
		t.Fatal("expected a target")
	}
	if target.ColumnKey != "b" || target.OnCard() {
		t.Errorf("expected column b, got %+v", target)
	}
}

func TestResolve_NoTarget(t *testing.T) {
	r := Resolver{Bounds: Rect{X: 0, Y: 0, W: 80, H: 30}}

	if _, ok := r.Resolve(DragCard, Rect{X: 200, Y: 200, W: 36, H: 4}, testRegions()); ok {
		t.Error("expected no target outside bounds")
	}
	if _, ok := r.Resolve(DragCard, Rect{X: 2, Y: 2, W: 36, H: 4}, nil); ok {
		t.Error("expected no target without regions")
	}
	cardsOnly := []Region{testRegions()[1]}
	if _, ok := r.Resolve(DragColumn, Rect{X: 2, Y: 2, W: 36, H: 4}, cardsOnly); ok {
		t.Error("expected no target for a column drag over cards only")
	}
}

func TestClosestCorners_TieKeepsFirst(t *testing.T) {
	regions := []Region{
		{ID: "x", Rect: Rect{X: 0, Y: 0, W: 10, H: 10}},
		{ID: "y", Rect: Rect{X: 0, Y: 0, W: 10, H: 10}},
	}
	if got := ClosestCorners(Rect{X: 1, Y: 1, W: 10, H: 10}, regions); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 0, Y: 0, W: 10, H: 10}
	if !r.Contains(Point{X: 0, Y: 0}) {
		t.Error("expected top-left corner inside")
	}
	if r.Contains(Point{X: 10, Y: 5}) {
		t.Error("expected right edge outside")
	}
}
