package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/acquire/internal/engine"
	"github.com/roach88/acquire/internal/testutil"
)

func TestReadMoves_Empty(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.CreateGame(ctx, "g1", createTestGame(t, 1).Snapshot()))

	moves, err := s.ReadMoves(ctx, "g1")
	require.NoError(t, err)
	assert.NotNil(t, moves)
	assert.Empty(t, moves)
}

func TestReadMoves_OrderedBySeq(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	g := createTestGame(t, 1)
	require.NoError(t, s.CreateGame(ctx, "g1", g.Snapshot()))
	recs := playAndStore(t, s, "g1", g, testutil.NewAutoplayer(1), 10)

	moves, err := s.ReadMoves(ctx, "g1")
	require.NoError(t, err)
	require.Len(t, moves, len(recs))
	for i, m := range moves {
		assert.Equal(t, recs[i].Seq, m.Seq)
		assert.Equal(t, recs[i].Player, m.Player)
		assert.Equal(t, recs[i].Kind, m.Kind)
		assert.Equal(t, recs[i].Action.Value(), m.Action.Value())
		assert.Equal(t, recs[i].StateHash, m.StateHash)
		require.NotNil(t, m.Timestamp)
		assert.Equal(t, *recs[i].Timestamp, *m.Timestamp)
	}
}

func TestReadSnapshot_MatchesGame(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()
	g := createTestGame(t, 1)
	require.NoError(t, s.CreateGame(ctx, "g1", g.Snapshot()))
	playAndStore(t, s, "g1", g, testutil.NewAutoplayer(1), 12)

	snap, err := s.ReadSnapshot(ctx, "g1")
	require.NoError(t, err)

	want, err := g.Snapshot().MarshalJSON()
	require.NoError(t, err)
	got, err := snap.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, string(want), string(got))
}

func TestReadSnapshot_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadSnapshot(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrGameNotFound))
}

func TestListGames(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	g1 := createTestGame(t, 1)
	require.NoError(t, s.CreateGame(ctx, "b", g1.Snapshot()))
	playAndStore(t, s, "b", g1, testutil.NewAutoplayer(1), 5000)

	g2, err := engine.NewGame(testutil.Config(engine.Singles3, nil))
	require.NoError(t, err)
	require.NoError(t, s.CreateGame(ctx, "a", g2.Snapshot()))

	games, err := s.ListGames(ctx, false)
	require.NoError(t, err)
	require.Len(t, games, 2)

	assert.Equal(t, "a", games[0].ID)
	assert.Equal(t, engine.Singles3, games[0].Mode)
	assert.Equal(t, []string{"p1", "p2", "p3"}, games[0].Usernames)
	assert.Equal(t, int64(0), games[0].Moves)
	assert.False(t, games[0].Finished)

	assert.Equal(t, "b", games[1].ID)
	assert.True(t, games[1].Finished)
	assert.Equal(t, g1.Seq(), games[1].Moves)

	unfinished, err := s.ListGames(ctx, true)
	require.NoError(t, err)
	require.Len(t, unfinished, 1)
	assert.Equal(t, "a", unfinished[0].ID)
}

func TestLastSeq_NoMoves(t *testing.T) {
	s := createTestStore(t)

	seq, err := s.LastSeq(context.Background(), "missing")
	require.NoError(t, err)
	assert.Equal(t, int64(0), seq)
}
