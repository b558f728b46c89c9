package table

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/acquire/internal/engine"
	"github.com/roach88/acquire/internal/store"
	"github.com/roach88/acquire/internal/testutil"
)

func newTestManager(t *testing.T, opts ...Option) *Manager {
	t.Helper()
	base := []Option{
		WithIDGenerator(testutil.NewSequentialIDs("")),
		WithClock(testutil.NewStepClock(1000, 1000)),
	}
	return NewManager(append(base, opts...)...)
}

func openStore(t *testing.T, path string) *store.Store {
	t.Helper()
	s, err := store.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

// drive plays n moves on tbl, choosing actions with ap on a mirror game.
func drive(t *testing.T, tbl *Table, mirror *engine.Game, ap *testutil.Autoplayer, n int) {
	t.Helper()
	for i := 0; i < n && !mirror.Over(); i++ {
		p, action, err := ap.Action(mirror)
		require.NoError(t, err)
		_, err = tbl.Submit(context.Background(), mirror.UserID(p), action)
		require.NoError(t, err)
		_, err = mirror.Apply(p, action, nil)
		require.NoError(t, err)
	}
}

func TestSubmit_RejectsUnseatedUser(t *testing.T) {
	m := newTestManager(t)
	tbl, err := m.Create(context.Background(), testutil.Config(engine.Singles2, nil))
	require.NoError(t, err)

	_, err = tbl.Submit(context.Background(), 99, engine.StartGame())
	require.Error(t, err)
	assert.Equal(t, ErrCodeNotSeated, ErrorCode(err))
}

func TestSubmit_RejectsOutOfTurn(t *testing.T) {
	m := newTestManager(t)
	tbl, err := m.Create(context.Background(), testutil.Config(engine.Singles2, nil))
	require.NoError(t, err)

	_, err = tbl.Submit(context.Background(), 2, engine.StartGame())
	require.Error(t, err)
	assert.Equal(t, ErrCodeOutOfTurn, ErrorCode(err))

	user, kind := tbl.Pending()
	assert.Equal(t, 1, user)
	assert.Equal(t, engine.KindStartGame, kind)
}

func TestSubmit_PassesEngineErrors(t *testing.T) {
	m := newTestManager(t)
	tbl, err := m.Create(context.Background(), testutil.Config(engine.Singles2, nil))
	require.NoError(t, err)

	_, err = tbl.Submit(context.Background(), 1, engine.PlayTile(0))
	require.Error(t, err)
	assert.False(t, IsTableError(err))
	assert.Equal(t, engine.ErrCodeWrongDecision, engine.ValidationCode(err))
}

func TestSubmit_TimestampsMoves(t *testing.T) {
	m := newTestManager(t)
	tbl, err := m.Create(context.Background(), testutil.Config(engine.Singles2, nil))
	require.NoError(t, err)

	rec, err := tbl.Submit(context.Background(), 1, engine.StartGame())
	require.NoError(t, err)

	require.NotNil(t, rec.Timestamp)
	assert.Equal(t, int64(1000), *rec.Timestamp)
	assert.Equal(t, "game-0001", tbl.ID())
}

func TestSubmit_SerializesConcurrentRequests(t *testing.T) {
	m := newTestManager(t)
	tbl, err := m.Create(context.Background(), testutil.Config(engine.Singles2, nil))
	require.NoError(t, err)

	const workers = 20
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
	)
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if _, err := tbl.Submit(context.Background(), 1, engine.StartGame()); err == nil {
				mu.Lock()
				succeeded++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Len(t, tbl.Snapshot().Moves, 1)
}

func TestView_RedactsOtherRacks(t *testing.T) {
	m := newTestManager(t)
	tbl, err := m.Create(context.Background(), testutil.Config(engine.Singles2, nil))
	require.NoError(t, err)
	_, err = tbl.Submit(context.Background(), 1, engine.StartGame())
	require.NoError(t, err)

	v := tbl.View(2)
	assert.Equal(t, 1, v.Viewer)
	for _, tile := range v.Racks[0] {
		assert.Equal(t, engine.TileUnknown, tile)
	}
	for _, tile := range v.Racks[1] {
		assert.True(t, tile.Valid())
	}

	spectator := tbl.View(42)
	assert.Equal(t, engine.Spectator, spectator.Viewer)
	assert.Len(t, tbl.History(42), 1)
}

func TestListener_ReceivesRedactedMoves(t *testing.T) {
	m := newTestManager(t)
	tbl, err := m.Create(context.Background(), testutil.Config(engine.Singles2, nil))
	require.NoError(t, err)

	l := tbl.Listen(2)
	defer l.Close()

	_, err = tbl.Submit(context.Background(), 1, engine.StartGame())
	require.NoError(t, err)
	assert.Equal(t, 1, l.Pending())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	rec, ok, err := l.Next(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, int64(1), rec.Seq)

	drew := 0
	for _, h := range rec.History {
		if h.Kind != engine.DrewTile {
			continue
		}
		drew++
		if h.Player == 0 {
			assert.Equal(t, engine.TileUnknown, h.Tile)
		} else {
			assert.True(t, h.Tile.Valid())
		}
	}
	assert.Equal(t, 2*engine.RackSize, drew)
}

func TestListener_CloseAndCancel(t *testing.T) {
	m := newTestManager(t)
	tbl, err := m.Create(context.Background(), testutil.Config(engine.Singles2, nil))
	require.NoError(t, err)

	l := tbl.Listen(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, ok, err := l.Next(ctx)
	assert.False(t, ok)
	assert.ErrorIs(t, err, context.Canceled)

	_, err = tbl.Submit(context.Background(), 1, engine.StartGame())
	require.NoError(t, err)
	l.Close()

	_, ok, err = l.Next(context.Background())
	require.NoError(t, err)
	assert.True(t, ok, "queued moves stay readable after close")

	_, ok, err = l.Next(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestManager_PersistsAndReloads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.db")
	cfg := testutil.Config(engine.Singles3, testutil.ShuffledBag(11))

	m := newTestManager(t, WithStore(openStore(t, path)))
	tbl, err := m.Create(context.Background(), cfg)
	require.NoError(t, err)

	mirror, err := engine.NewGame(cfg)
	require.NoError(t, err)
	drive(t, tbl, mirror, testutil.NewAutoplayer(11), 40)
	want, err := tbl.Snapshot().MarshalJSON()
	require.NoError(t, err)

	m2 := newTestManager(t, WithStore(openStore(t, path)))
	reloaded, err := m2.Get(context.Background(), tbl.ID())
	require.NoError(t, err)
	got, err := reloaded.Snapshot().MarshalJSON()
	require.NoError(t, err)

	assert.Equal(t, string(want), string(got))
	assert.Equal(t, []string{tbl.ID()}, m2.Loaded())
}

func TestManager_GetUnknown(t *testing.T) {
	_, err := newTestManager(t).Get(context.Background(), "nope")
	assert.Equal(t, ErrCodeNotFound, ErrorCode(err))

	path := filepath.Join(t.TempDir(), "games.db")
	_, err = newTestManager(t, WithStore(openStore(t, path))).Get(context.Background(), "nope")
	assert.Equal(t, ErrCodeNotFound, ErrorCode(err))
}

func TestManager_Unload(t *testing.T) {
	m := newTestManager(t)
	tbl, err := m.Create(context.Background(), testutil.Config(engine.Singles2, nil))
	require.NoError(t, err)

	m.Unload(tbl.ID())
	assert.Empty(t, m.Loaded())
}

func TestManager_RejectsInvalidConfig(t *testing.T) {
	cfg := testutil.Config(engine.Singles2, nil)
	cfg.HostUserID = 77

	_, err := newTestManager(t).Create(context.Background(), cfg)
	require.Error(t, err)
	assert.Equal(t, ErrCodeTableSetup, ErrorCode(err))
	assert.True(t, engine.IsValidationError(err))
}

// failingStore fails the next AppendMove when fail is set.
type failingStore struct {
	Store
	fail bool
}

func (s *failingStore) AppendMove(ctx context.Context, id string, m engine.MoveRecord) (bool, error) {
	if s.fail {
		s.fail = false
		return false, errors.New("disk full")
	}
	return s.Store.AppendMove(ctx, id, m)
}

func TestSubmit_RollsBackWhenPersistFails(t *testing.T) {
	fs := &failingStore{Store: openStore(t, filepath.Join(t.TempDir(), "games.db")), fail: true}
	m := newTestManager(t, WithStore(fs))
	tbl, err := m.Create(context.Background(), testutil.Config(engine.Singles2, nil))
	require.NoError(t, err)

	_, err = tbl.Submit(context.Background(), 1, engine.StartGame())
	require.Error(t, err)
	assert.Equal(t, ErrCodePersist, ErrorCode(err))
	assert.Empty(t, tbl.Snapshot().Moves)

	_, kind := tbl.Pending()
	assert.Equal(t, engine.KindStartGame, kind)

	_, err = tbl.Submit(context.Background(), 1, engine.StartGame())
	require.NoError(t, err)
	assert.Len(t, tbl.Snapshot().Moves, 1)
}

func TestUUIDv7Generator(t *testing.T) {
	gen := UUIDv7Generator{}
	a, b := gen.Generate(), gen.Generate()

	id, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())
	assert.NotEqual(t, a, b)
}
