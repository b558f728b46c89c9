package harness

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/acquire/internal/engine"
	"github.com/roach88/acquire/internal/testutil"
)

func TestCheckProperties(t *testing.T) {
	modes := []engine.GameMode{engine.Singles2, engine.Singles4, engine.Teams2vs2vs2}

	for _, mode := range modes {
		t.Run(mode.String(), func(t *testing.T) {
			report, err := New().CheckProperties(context.Background(), mode, []int64{1, 2, 3}, 2000)
			require.NoError(t, err)

			assert.True(t, report.Pass(), "violations: %v", report.Violations)
			assert.Equal(t, 3, report.Games)
			assert.Equal(t, 3, report.Finished)
			assert.Greater(t, report.Moves, 3)
		})
	}
}

func TestCheckProperties_Termination(t *testing.T) {
	report, err := New().CheckProperties(context.Background(), engine.Singles2, []int64{9}, 5)
	require.NoError(t, err)

	assert.False(t, report.Pass())
	assert.Equal(t, 0, report.Finished)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, PropTermination, report.Violations[0].Property)
	assert.Equal(t, int64(9), report.Violations[0].Seed)
	assert.Equal(t, "seed 9 move 5: termination: not over after 5 moves", report.Violations[0].String())
}

func TestCheckProperties_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New().CheckProperties(ctx, engine.Singles2, []int64{1}, 10)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCheckMove_FreshGame(t *testing.T) {
	g, err := engine.NewGame(testutil.Config(engine.Singles2, nil))
	require.NoError(t, err)
	rec, err := testutil.NewAutoplayer(1).Step(g, nil)
	require.NoError(t, err)

	assert.Empty(t, checkMove(g, rec))
	assert.Nil(t, checkReplay(g))
}
