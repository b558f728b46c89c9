package table

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/roach88/acquire/internal/engine"
)

// Store persists games and their moves. *store.Store implements it.
type Store interface {
	CreateGame(ctx context.Context, id string, snap engine.Snapshot) error
	AppendMove(ctx context.Context, gameID string, m engine.MoveRecord) (bool, error)
	ReplayGame(ctx context.Context, gameID string) (*engine.Game, error)
}

// Clock supplies move timestamps in milliseconds. Timestamps are metadata;
// the engine never reads them.
type Clock interface {
	Now() int64
}

// Table owns one game and serializes every submission to it.
//
// Thread-safety: all methods are safe for concurrent use. Moves are applied
// one at a time in the order the table lock is acquired.
type Table struct {
	mu        sync.Mutex
	id        string
	game      *engine.Game
	store     Store
	clock     Clock
	listeners map[*Listener]struct{}
}

func newTable(id string, g *engine.Game, s Store, c Clock) *Table {
	return &Table{
		id:        id,
		game:      g,
		store:     s,
		clock:     c,
		listeners: make(map[*Listener]struct{}),
	}
}

// ID returns the game id.
func (t *Table) ID() string { return t.id }

// Submit applies an action on behalf of a user.
//
// Users who are not seated, or whose seat is not named by the pending
// decision, are rejected with a TableError before the engine sees the
// action. Engine rejections are returned unchanged. When a store is
// configured the move is persisted before Submit returns; if persisting
// fails the move is rolled back.
func (t *Table) Submit(ctx context.Context, userID int, action engine.Action) (engine.MoveRecord, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	seat := t.game.SeatOf(userID)
	if seat < 0 {
		return engine.MoveRecord{}, &TableError{
			Code:    ErrCodeNotSeated,
			GameID:  t.id,
			Message: fmt.Sprintf("user %d is not seated", userID),
		}
	}
	if top := t.game.Top(); top.PlayerID() != seat && top.Kind() != engine.KindGameOver {
		return engine.MoveRecord{}, &TableError{
			Code:    ErrCodeOutOfTurn,
			GameID:  t.id,
			Message: fmt.Sprintf("waiting for seat %d to %s, not seat %d", top.PlayerID(), top.Kind(), seat),
		}
	}

	ts := t.clock.Now()
	if _, err := t.game.Apply(seat, action, &ts); err != nil {
		slog.Debug("move rejected", "game", t.id, "user", userID, "error", err)
		return engine.MoveRecord{}, err
	}
	moves := t.game.Moves()
	rec := moves[len(moves)-1]

	if t.store != nil {
		if _, err := t.store.AppendMove(ctx, t.id, rec); err != nil {
			if rbErr := t.rollback(); rbErr != nil {
				slog.Error("rollback failed", "game", t.id, "seq", rec.Seq, "error", rbErr)
			}
			return engine.MoveRecord{}, &TableError{
				Code:    ErrCodePersist,
				GameID:  t.id,
				Message: fmt.Sprintf("persist move %d", rec.Seq),
				Err:     err,
			}
		}
	}

	for l := range t.listeners {
		l.queue.enqueue(engine.RedactMove(rec, l.viewer))
	}
	slog.Debug("move applied", "game", t.id, "seq", rec.Seq, "kind", rec.Kind, "player", seat)
	return rec, nil
}

// rollback rebuilds the game without its last move.
func (t *Table) rollback() error {
	snap := t.game.Snapshot()
	snap.Moves = snap.Moves[:len(snap.Moves)-1]
	g, err := engine.FromSnapshot(snap)
	if err != nil {
		return err
	}
	t.game = g
	return nil
}

// View returns the game as seen by a user. Users who are not seated see the
// spectator view.
func (t *Table) View(userID int) engine.View {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.View(t.viewer(userID))
}

// History returns every move's history as seen by a user.
func (t *Table) History(userID int) [][]engine.HistoryMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.RedactedHistory(t.viewer(userID))
}

func (t *Table) viewer(userID int) int {
	if seat := t.game.SeatOf(userID); seat >= 0 {
		return seat
	}
	return engine.Spectator
}

// Snapshot returns the game's snapshot.
func (t *Table) Snapshot() engine.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.Snapshot()
}

// Pending returns the user id expected to act next and the decision kind.
func (t *Table) Pending() (userID int, kind engine.DecisionKind) {
	t.mu.Lock()
	defer t.mu.Unlock()
	top := t.game.Top()
	return t.game.UserID(top.PlayerID()), top.Kind()
}

// Over reports whether the game has ended.
func (t *Table) Over() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.game.Over()
}

// Listener receives every move applied after it was created, redacted for
// one viewer.
type Listener struct {
	table  *Table
	viewer int
	queue  *moveQueue
}

// Listen registers a listener for a user. Users who are not seated receive
// the spectator projection.
func (t *Table) Listen(userID int) *Listener {
	t.mu.Lock()
	defer t.mu.Unlock()
	l := &Listener{table: t, viewer: t.viewer(userID), queue: newMoveQueue()}
	t.listeners[l] = struct{}{}
	return l
}

// Next blocks until a move is available, the listener is closed, or ctx is
// done. Returns ok=false once the listener is closed and drained.
func (l *Listener) Next(ctx context.Context) (m engine.MoveRecord, ok bool, err error) {
	for {
		if m, ok := l.queue.tryDequeue(); ok {
			return m, true, nil
		}
		if l.queue.isDrained() {
			return engine.MoveRecord{}, false, nil
		}
		select {
		case <-ctx.Done():
			return engine.MoveRecord{}, false, ctx.Err()
		case <-l.queue.wait():
		}
	}
}

// Pending returns the number of queued moves.
func (l *Listener) Pending() int {
	return l.queue.len()
}

// Close unregisters the listener. Queued moves stay readable.
func (l *Listener) Close() {
	l.table.mu.Lock()
	delete(l.table.listeners, l)
	l.table.mu.Unlock()
	l.queue.close()
}
