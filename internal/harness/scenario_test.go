package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/acquire/internal/engine"
)

func TestLoadScenario_Founding(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/founding.yaml")
	require.NoError(t, err)

	assert.Equal(t, "founding", s.Name)
	assert.Equal(t, "Singles2", s.Game.Mode)
	assert.Len(t, s.Game.Users, 2)
	assert.Len(t, s.Flow, 10)
	require.NotNil(t, s.Flow[0].Timestamp)
	assert.Equal(t, int64(1000), *s.Flow[0].Timestamp)
	assert.Equal(t, "WRONG_PLAYER", s.Flow[1].Expect.Error)
	assert.Len(t, s.Assertions, 10)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestParseScenario_Errors(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "unknown field",
			yaml:    "name: x\ngame: {mode: Singles1, users: [{id: 1, name: a}], host: 1}\nflwo: []\n",
			wantErr: "failed to parse YAML",
		},
		{
			name:    "missing name",
			yaml:    "game: {mode: Singles1, users: [{id: 1, name: a}], host: 1}\n",
			wantErr: "name is required",
		},
		{
			name:    "unknown mode",
			yaml:    "name: x\ngame: {mode: Singles9, users: [{id: 1, name: a}], host: 1}\n",
			wantErr: "unknown game mode",
		},
		{
			name:    "bad tile",
			yaml:    "name: x\ngame: {mode: Singles1, tile_bag: [13A], users: [{id: 1, name: a}], host: 1}\n",
			wantErr: "tile_bag[0]",
		},
		{
			name:    "me not seated",
			yaml:    "name: x\ngame: {mode: Singles1, users: [{id: 1, name: a}], host: 1, me: 4}\n",
			wantErr: "me: user 4 is not seated",
		},
		{
			name:    "action without seat",
			yaml:    "name: x\ngame: {mode: Singles1, users: [{id: 1, name: a}], host: 1}\nflow:\n  - action: StartGame\n",
			wantErr: "flow[0]",
		},
		{
			name:    "bad seat",
			yaml:    "name: x\ngame: {mode: Singles1, users: [{id: 1, name: a}], host: 1}\nflow:\n  - action: a StartGame\n",
			wantErr: "bad seat",
		},
		{
			name:    "error with next",
			yaml:    "name: x\ngame: {mode: Singles1, users: [{id: 1, name: a}], host: 1}\nflow:\n  - action: 0 StartGame\n    expect: {error: GAME_OVER, next: 0 PlayTile}\n",
			wantErr: "error cannot be combined",
		},
		{
			name:    "unknown assertion",
			yaml:    "name: x\ngame: {mode: Singles1, users: [{id: 1, name: a}], host: 1}\nassertions:\n  - type: vibes\n",
			wantErr: "unknown assertion type",
		},
		{
			name:    "cash without player",
			yaml:    "name: x\ngame: {mode: Singles1, users: [{id: 1, name: a}], host: 1}\nassertions:\n  - type: cash\n    value: 1\n",
			wantErr: "player is required",
		},
		{
			name:    "shares with bad chain",
			yaml:    "name: x\ngame: {mode: Singles1, users: [{id: 1, name: a}], host: 1}\nassertions:\n  - {type: shares, player: 0, chain: Q, value: 1}\n",
			wantErr: "assertions[0]",
		},
		{
			name:    "over without value",
			yaml:    "name: x\ngame: {mode: Singles1, users: [{id: 1, name: a}], host: 1}\nassertions:\n  - type: over\n",
			wantErr: "over is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGameSetupConfig(t *testing.T) {
	start, inc := int64(60000), int64(5000)
	me := 2
	gs := GameSetup{
		Mode:                       "Teams2vs2",
		Arrangement:                "SpecifyTeams",
		TileBag:                    []string{"1A", "12I"},
		Users:                      []User{{1, "a"}, {2, "b"}, {3, "c"}, {4, "d"}},
		Host:                       3,
		Me:                         &me,
		TimeControlStartingAmount:  &start,
		TimeControlIncrementAmount: &inc,
	}

	cfg, err := gs.Config()
	require.NoError(t, err)
	assert.Equal(t, engine.Teams2vs2, cfg.Mode)
	assert.Equal(t, engine.SpecifyTeams, cfg.Arrangement)
	assert.Equal(t, []engine.Tile{0, 107}, cfg.TileBag)
	assert.Equal(t, []int{1, 2, 3, 4}, cfg.UserIDs)
	assert.Equal(t, []string{"a", "b", "c", "d"}, cfg.Usernames)
	assert.Equal(t, 3, cfg.HostUserID)
	assert.Equal(t, &start, cfg.TimeControlStartingAmount)
}

func TestGameSetupConfig_DefaultArrangement(t *testing.T) {
	cfg, err := GameSetup{Mode: "Singles1", Users: []User{{7, "solo"}}, Host: 7}.Config()
	require.NoError(t, err)
	assert.Equal(t, engine.ExactOrder, cfg.Arrangement)
	assert.Empty(t, cfg.TileBag)
}

func TestParseStep(t *testing.T) {
	seat, action, err := parseStep("  1 PurchaseShares L,T 1 ")
	require.NoError(t, err)
	assert.Equal(t, 1, seat)
	kind, err := action.Kind()
	require.NoError(t, err)
	assert.Equal(t, engine.KindPurchaseShares, kind)
	assert.Equal(t, []engine.Chain{engine.Luxor, engine.Tower}, action.PurchaseShares.Chains)
	assert.True(t, action.PurchaseShares.EndGame)

	_, _, err = parseStep("0 PlayTile")
	assert.Error(t, err)
}

func TestScenarioFilesParse(t *testing.T) {
	paths, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, paths)
	for _, p := range paths {
		data, err := os.ReadFile(p)
		require.NoError(t, err)
		_, err = ParseScenario(data)
		assert.NoError(t, err, p)
	}
}
