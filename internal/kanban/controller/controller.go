package controller

import (
	"context"
	"errors"
	"fmt"

	"issueboard/internal/kanban/collision"
	"issueboard/internal/kanban/commit"
	"issueboard/internal/kanban/drag"
	"issueboard/internal/kanban/models"
	"issueboard/internal/kanban/operations"
	"issueboard/internal/logs"
)

// Hooks are the callbacks the board exposes to the page layer
type Hooks struct {
	OnIssueClick     func(card models.Card)
	OnColumnsReorder func(orderedIDs []string)
	OnFailure        func(err error)
}

// writer is the single party allowed to mutate the board
type writer int

const (
	writerReconciler writer = iota
	writerGesture
)

// Controller owns the column model. It routes drag events through the
// session machine and the collision resolver, applies previews and
// optimistic commits, and folds canonical refreshes in when no gesture
// holds the board.
type Controller struct {
	board     models.Board
	confirmed models.Board // last state known to match the server
	pristine  models.Board // board as it was when the current drag started

	machine  drag.Machine
	resolver collision.Resolver
	hooks    Hooks
	writer   writer

	seq         uint64
	inflight    map[uint64]*commit.Request
	refreshOwed bool
}

// New builds a controller from the first fetch of a project
func New(projectID string, data models.BoardData, hooks Hooks) *Controller {
	board := operations.BuildFromCanonical(projectID, data.Issues, data.Statuses)
	return &Controller{
		board:     board,
		confirmed: board.Clone(),
		pristine:  board.Clone(),
		hooks:     hooks,
		inflight:  make(map[uint64]*commit.Request),
	}
}

// SetBounds limits where a drop may resolve to a target
func (c *Controller) SetBounds(bounds collision.Rect) {
	c.resolver.Bounds = bounds
}

// Board returns a copy of the current column model
func (c *Controller) Board() models.Board {
	return c.board.Clone()
}

// Session returns the current drag session
func (c *Controller) Session() drag.Session {
	return c.machine.Session()
}

// Dragging reports whether a gesture currently owns the board
func (c *Controller) Dragging() bool {
	return c.writer == writerGesture
}

// InFlight returns the number of unresolved persistence requests
func (c *Controller) InFlight() int {
	return len(c.inflight)
}

// RefreshOwed reports whether a canonical refresh was skipped and should
// be fetched again once the board is free
func (c *Controller) RefreshOwed() bool {
	return c.refreshOwed
}

// Refresh reconciles canonical data into the board. It is skipped while a
// gesture owns the board or a persistence call is unresolved; the skip is
// remembered in RefreshOwed.
func (c *Controller) Refresh(data models.BoardData) bool {
	if c.writer == writerGesture || len(c.inflight) > 0 {
		c.refreshOwed = true
		logs.Logger.Printf("Board: refresh deferred (dragging=%v inflight=%d)", c.Dragging(), len(c.inflight))
		return false
	}
	c.board = operations.Reconcile(c.board, data.Issues, data.Statuses)
	c.confirmed = c.board.Clone()
	c.refreshOwed = false
	return true
}

// Click fires OnIssueClick for a tap that is not part of a drag
func (c *Controller) Click(cardID string) bool {
	if c.Dragging() {
		return false
	}
	card, ok := c.board.Card(cardID)
	if !ok {
		return false
	}
	if c.hooks.OnIssueClick != nil {
		c.hooks.OnIssueClick(card)
	}
	return true
}

// Handle feeds one drag event through the controller. A released drag
// that needs persisting returns the request; the caller runs it and
// reports back through Resolve.
func (c *Controller) Handle(event drag.Event) (*commit.Request, error) {
	switch ev := event.(type) {
	case drag.Start:
		return nil, c.start(ev)
	case drag.Over:
		return nil, c.over(ev)
	case drag.End:
		return c.end(ev)
	case drag.Cancel:
		return nil, c.cancel()
	}
	return nil, fmt.Errorf("unknown drag event %T", event)
}

func (c *Controller) start(ev drag.Start) error {
	session, err := c.machine.Start(&c.board, ev.ItemID)
	if err != nil {
		return err
	}
	c.writer = writerGesture
	c.pristine = c.board.Clone()
	if len(c.inflight) == 0 {
		c.confirmed = c.board.Clone()
	}
	logs.Logger.Printf("Board: drag start %s %s", session.Kind, ev.ItemID)
	return nil
}

func (c *Controller) over(ev drag.Over) error {
	if !c.machine.Active() {
		return drag.ErrNoSession
	}
	session := c.machine.Session()
	target, ok := c.resolver.Resolve(session.Kind.CollisionKind(), ev.Active, ev.Regions)
	if !ok {
		return c.machine.Over(nil)
	}
	if err := c.machine.Over(&target); err != nil {
		return err
	}
	if session.Kind == drag.KindCard {
		c.preview(session, target)
	}
	return nil
}

// preview moves a dragged card into the lane under the pointer so the
// view follows the gesture. Moves within the card's current lane are left
// to the final commit.
func (c *Controller) preview(session drag.Session, target collision.Target) {
	li, _ := c.board.FindCard(session.ActiveCardID)
	if li < 0 {
		return
	}
	destKey := target.ColumnKey
	if target.OnCard() {
		tli, _ := c.board.FindCard(target.CardID)
		if tli < 0 {
			return
		}
		destKey = c.board.Lanes[tli].Key
	}
	if destKey == c.board.Lanes[li].Key {
		return
	}
	dest := c.board.Lane(destKey)
	if dest == nil {
		return
	}
	index := len(dest.Cards)
	if target.OnCard() {
		index = operations.InsertIndex(dest.Cards, target.CardID, session.ActiveCardID, target.Bias == collision.BiasAfter)
	}
	if err := operations.MoveCard(&c.board, session.ActiveCardID, destKey, index); err != nil {
		logs.Logger.Printf("Board: preview failed: %v", err)
	}
}

func (c *Controller) end(ev drag.End) (*commit.Request, error) {
	if !c.machine.Active() {
		return nil, drag.ErrNoSession
	}
	session := c.machine.Session()
	target, ok := c.resolver.Resolve(session.Kind.CollisionKind(), ev.Active, ev.Regions)
	c.finish()

	if !ok {
		logs.Logger.Printf("Board: drop with no target, restoring")
		c.board = c.pristine.Clone()
		return nil, nil
	}

	move, err := commit.Plan(&c.board, session, target)
	if err != nil {
		c.board = c.pristine.Clone()
		if errors.Is(err, commit.ErrTargetVanished) {
			logs.Logger.Printf("Board: %v", err)
			return nil, nil
		}
		return nil, err
	}
	if move.Kind == commit.MoveNone {
		c.board = c.pristine.Clone()
		return nil, nil
	}

	if err := commit.Apply(&c.board, move); err != nil {
		c.board = c.pristine.Clone()
		return nil, err
	}

	c.seq++
	req := commit.NewRequest(c.seq, c.board.ProjectID, move)
	if req != nil {
		c.inflight[req.Seq] = req
	}
	logs.Logger.Printf("Board: drop %s %s -> %s", move.Kind, session.ActiveID(), move.ToKey)
	return req, nil
}

func (c *Controller) cancel() error {
	if !c.machine.Active() {
		return drag.ErrNoSession
	}
	c.finish()
	c.board = c.pristine.Clone()
	logs.Logger.Printf("Board: drag cancelled")
	return nil
}

func (c *Controller) finish() {
	c.machine.Finish()
	c.writer = writerReconciler
}

// Resolve reports the outcome of a persistence request. Success folds the
// move into the confirmed snapshot. Failure reverts the whole board to the
// confirmed snapshot, ends any drag in progress and fires OnFailure once.
// Unknown or already resolved requests are ignored.
func (c *Controller) Resolve(req *commit.Request, err error) {
	if req == nil {
		return
	}
	if _, ok := c.inflight[req.Seq]; !ok {
		return
	}
	delete(c.inflight, req.Seq)

	if err == nil {
		if applyErr := commit.Apply(&c.confirmed, req.Move); applyErr != nil {
			logs.Logger.Printf("Board: confirmed snapshot diverged: %v", applyErr)
			c.refreshOwed = true
		}
		if req.Move.Kind == commit.MoveReorderColumns && c.hooks.OnColumnsReorder != nil {
			c.hooks.OnColumnsReorder(append([]string(nil), req.Move.ColumnOrder...))
		}
		return
	}

	logs.Logger.Printf("Board: %v, reverting", err)
	if c.machine.Active() {
		c.finish()
	}
	c.board = c.confirmed.Clone()
	c.pristine = c.confirmed.Clone()
	c.refreshOwed = true
	if c.hooks.OnFailure != nil {
		c.hooks.OnFailure(err)
	}
}

// Commit runs a request against p and resolves it
func (c *Controller) Commit(ctx context.Context, p commit.Persister, req *commit.Request) error {
	if req == nil {
		return nil
	}
	err := req.Run(ctx, p)
	c.Resolve(req, err)
	return err
}
