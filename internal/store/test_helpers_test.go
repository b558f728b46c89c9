package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/acquire/internal/engine"
	"github.com/roach88/acquire/internal/testutil"
)

// createTestStore creates a new store in a temporary directory.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestGame creates a two player game with a seeded bag.
func createTestGame(t *testing.T, seed int64) *engine.Game {
	t.Helper()
	g, err := engine.NewGame(testutil.Config(engine.Singles2, testutil.ShuffledBag(seed)))
	require.NoError(t, err)
	return g
}

// playAndStore plays n moves of g and appends each to the store.
func playAndStore(t *testing.T, s *Store, id string, g *engine.Game, ap *testutil.Autoplayer, n int) []engine.MoveRecord {
	t.Helper()
	var recs []engine.MoveRecord
	for i := 0; i < n && !g.Over(); i++ {
		ts := int64(1000 * (i + 1))
		rec, err := ap.Step(g, &ts)
		require.NoError(t, err)
		inserted, err := s.AppendMove(context.Background(), id, rec)
		require.NoError(t, err)
		require.True(t, inserted)
		recs = append(recs, rec)
	}
	return recs
}
